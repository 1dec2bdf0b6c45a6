// Package csvseed loads labeled ground truth from CSV into training
// examples, so a corpus curated in a spreadsheet can bootstrap the models
// before any examples exist in the database.
package csvseed

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/common"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/textnorm"
)

// Required header columns. Any additional column whose name matches a money
// field becomes a ground-truth label for that field.
var requiredColumns = []string{"category", "subject", "body"}

// Load reads and parses the CSV file at path.
func Load(path string, logger *slog.Logger) ([]entity.TrainingExample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.WrapError(err, "open seed file")
	}
	defer func() { _ = f.Close() }()
	return Parse(f, logger)
}

// Parse reads a headered CSV stream. Rows with an unrecognizable category
// are skipped with a warning rather than failing the whole seed.
func Parse(r io.Reader, logger *slog.Logger) ([]entity.TrainingExample, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, common.WrapError(err, "read seed header")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, common.MalformedInput(fmt.Sprintf("seed CSV is missing the %q column", name))
		}
	}

	labelCols := labelColumns(header)

	var out []entity.TrainingExample
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, common.WrapError(err, fmt.Sprintf("read seed row %d", line+1))
		}
		line++

		cat, ok := constants.Canonicalize(row[cols["category"]])
		if !ok {
			logger.Warn("csvseed.skip_row", "line", line, "category", row[cols["category"]])
			continue
		}

		ex := entity.TrainingExample{
			Subject:  row[cols["subject"]],
			Text:     row[cols["body"]],
			Category: cat,
			Labels:   make(map[constants.Field]float64),
		}
		if i, ok := cols["sender"]; ok {
			ex.Sender = row[i]
		}
		for field, i := range labelCols {
			raw := strings.TrimSpace(row[i])
			if raw == "" {
				continue
			}
			if v := textnorm.Amount(raw); v > 0 {
				ex.Labels[field] = v
			}
		}
		out = append(out, ex)
	}

	logger.Info("csvseed.loaded", "examples", len(out))
	return out, nil
}

// labelColumns maps money-field columns to their positions. Comparison is
// case-insensitive against the field identifiers themselves.
func labelColumns(header []string) map[constants.Field]int {
	out := make(map[constants.Field]int)
	for i, name := range header {
		name = strings.TrimSpace(name)
		for _, f := range constants.AmountFields {
			if f == constants.FieldOther {
				continue
			}
			if strings.EqualFold(name, string(f)) {
				out[f] = i
			}
		}
	}
	return out
}
