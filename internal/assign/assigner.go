package assign

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/linmodel"
	"github.com/villosa/bookingmail/internal/scan"
	"github.com/villosa/bookingmail/internal/textnorm"
)

// labelEpsilon is the tolerance when matching a candidate's normalized value
// against a ground-truth amount at training time.
const labelEpsilon = 0.01

// Model is the versioned assigner artifact. Replaced whole on retrain.
type Model struct {
	Version   string          `json:"version"`
	TrainedAt time.Time       `json:"trained_at"`
	Examples  int             `json:"examples"`
	Linear    *linmodel.Model `json:"linear"`
}

// Assigner is the learned extraction path. Safe for concurrent use; the
// model pointer is swapped atomically and never mutated after load.
type Assigner struct {
	model     atomic.Pointer[Model]
	scanner   *scan.Scanner
	logger    *slog.Logger
	threshold float64
}

// NewAssigner returns an assigner gated at threshold: predictions below it
// are discarded rather than guessed. Zero or negative means the default 0.5.
func NewAssigner(logger *slog.Logger, scanner *scan.Scanner, threshold float64) *Assigner {
	if logger == nil {
		logger = slog.Default()
	}
	if scanner == nil {
		scanner = scan.NewScanner(logger, 0)
	}
	if threshold <= 0 {
		threshold = 0.5
	}
	return &Assigner{scanner: scanner, logger: logger, threshold: threshold}
}

// SetModel installs a new artifact. nil clears it.
func (a *Assigner) SetModel(m *Model) {
	a.model.Store(m)
}

// HasModel reports whether a trained artifact is loaded.
func (a *Assigner) HasModel() bool {
	return a.model.Load() != nil
}

type fieldHit struct {
	value float64
	prob  float64
}

// Assign binds amount candidates in text to money fields. Returns false when
// no model is loaded or nothing cleared the confidence gate; the caller then
// stays on the heuristic path.
func (a *Assigner) Assign(cat constants.EmailCategory, text string) (entity.ExtractedRecord, bool) {
	m := a.model.Load()
	if m == nil || m.Linear == nil {
		return entity.ExtractedRecord{}, false
	}

	best := make(map[constants.Field]fieldHit)
	for _, c := range a.scanner.Scan(text) {
		if c.Kind != entity.KindAmount {
			continue
		}
		class, prob := m.Linear.Predict(CandidateFeatures(cat, c, len(text)))
		if class < 0 || class >= len(constants.AmountFields) {
			continue
		}
		field := constants.AmountFields[class]
		if field == constants.FieldOther || prob < a.threshold {
			continue
		}
		v := textnorm.Amount(c.RawValue)
		if v <= 0 {
			continue
		}
		if h, taken := best[field]; !taken || prob > h.prob {
			best[field] = fieldHit{value: v, prob: prob}
		}
	}
	if len(best) == 0 {
		return entity.ExtractedRecord{}, false
	}

	// Earnings currencies are mutually exclusive; the stronger prediction
	// keeps the slot.
	if eur, hasEur := best[constants.FieldHostEarningsEur]; hasEur {
		if sek, hasSek := best[constants.FieldHostEarningsSek]; hasSek {
			if sek.prob > eur.prob {
				delete(best, constants.FieldHostEarningsEur)
			} else {
				delete(best, constants.FieldHostEarningsSek)
			}
		}
	}

	var rec entity.ExtractedRecord
	for field, h := range best {
		rec.SetAmount(field, h.value)
	}
	a.logger.Debug("assign.learned", "category", cat, "fields", len(best))
	return rec, true
}

// TrainModel fits the assigner on the labeled log. Each scanned amount
// candidate is labeled by value: within labelEpsilon of a ground-truth
// amount takes that field, everything else is "other". Deterministic for a
// fixed corpus order.
func TrainModel(scanner *scan.Scanner, examples []entity.TrainingExample, cfg linmodel.TrainConfig) (*Model, error) {
	if scanner == nil {
		scanner = scan.NewScanner(nil, 0)
	}

	var (
		xs        [][]float64
		ys        []int
		fieldHits int
	)
	for _, ex := range examples {
		for _, c := range scanner.Scan(ex.Text) {
			if c.Kind != entity.KindAmount {
				continue
			}
			v := textnorm.Amount(c.RawValue)
			if v <= 0 {
				continue
			}
			label := constants.FieldOther
			for _, field := range constants.AmountFields {
				want, labeled := ex.Labels[field]
				if labeled && math.Abs(v-want) <= labelEpsilon {
					label = field
					break
				}
			}
			if label != constants.FieldOther {
				fieldHits++
			}
			xs = append(xs, CandidateFeatures(ex.Category, c, len(ex.Text)))
			ys = append(ys, constants.AmountFieldIndex(label))
		}
	}
	if len(xs) < 2 || fieldHits == 0 {
		return nil, fmt.Errorf("train assigner: %d candidates with %d labeled, need at least 2 and 1", len(xs), fieldHits)
	}

	linear := linmodel.Train(xs, ys, len(constants.AmountFields), cfg)
	if linear == nil {
		return nil, fmt.Errorf("train assigner: degenerate corpus")
	}
	return &Model{
		Version:   fmt.Sprintf("assigner-%d-candidates-%d", len(constants.AmountFields), len(xs)),
		TrainedAt: time.Now().UTC(),
		Examples:  len(examples),
		Linear:    linear,
	}, nil
}
