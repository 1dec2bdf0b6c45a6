// Package extract turns scanned candidates into named structured fields, one
// deterministic rule set per email category. A failed field is left absent;
// no field failure aborts the rest of the record.
package extract

import (
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/dates"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/scan"
)

// Engine is the heuristic extraction path. Stateless apart from its logger
// and scanner; safe for concurrent use.
type Engine struct {
	logger  *slog.Logger
	scanner *scan.Scanner
}

func NewEngine(logger *slog.Logger, scanner *scan.Scanner) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if scanner == nil {
		scanner = scan.NewScanner(logger, 0)
	}
	return &Engine{logger: logger, scanner: scanner}
}

// Extract populates a record for the given category. The body is expected to
// be cleaned already (textnorm.CleanForExtraction).
func (e *Engine) Extract(cat constants.EmailCategory, msg entity.RawMessage) entity.ExtractedRecord {
	var rec entity.ExtractedRecord

	if code := scan.BookingCodePattern.FindString(msg.FullText()); code != "" {
		rec.BookingCode = &code
	}

	switch cat {
	case constants.BookingConfirmation:
		e.extractConfirmation(&rec, msg)
	case constants.BookingReminder:
		e.extractReminder(&rec, msg)
	case constants.Payout:
		e.extractPayout(&rec, msg)
	case constants.Cancellation:
		e.extractCancellation(&rec, msg)
	case constants.ChangeRequest:
		e.extractChangeRequest(&rec, msg)
	case constants.Modification:
		e.extractModification(&rec, msg)
	}

	e.finishDates(&rec)
	return rec
}

// finishDates repairs inverted date pairs and derives nights. The engine
// never emits nights <= 0.
func (e *Engine) finishDates(rec *entity.ExtractedRecord) {
	if rec.CheckInDate == nil || rec.CheckOutDate == nil {
		return
	}
	if rec.CheckOutDate.Before(*rec.CheckInDate) {
		e.logger.Warn("extract.date_order_swapped",
			"check_in", rec.CheckInDate.Format(time.DateOnly),
			"check_out", rec.CheckOutDate.Format(time.DateOnly),
		)
		rec.CheckInDate, rec.CheckOutDate = rec.CheckOutDate, rec.CheckInDate
	}
	nights := int(rec.CheckOutDate.Sub(*rec.CheckInDate).Hours() / 24)
	if nights > 0 {
		rec.Nights = &nights
	}
}

// anchorTime mirrors the year resolver's anchor preference for rules that
// need a concrete reference point of their own.
func anchorTime(msg entity.RawMessage) time.Time {
	switch {
	case msg.ReferenceDate != nil:
		r := *msg.ReferenceDate
		return time.Date(r.Year(), r.Month(), r.Day(), 0, 0, 0, 0, time.UTC)
	case msg.ScanningPeriodHint != nil:
		return time.Date(msg.ScanningPeriodHint.Year(), time.June, 15, 0, 0, 0, 0, time.UTC)
	default:
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func dayMonth(dayRaw, monthRaw string) (int, time.Month, bool) {
	day, err := strconv.Atoi(dayRaw)
	if err != nil || day < 1 || day > 31 {
		return 0, 0, false
	}
	month, ok := dates.MonthNumber(monthRaw)
	if !ok {
		return 0, 0, false
	}
	return day, month, true
}

// resolveDay turns a year-less day/month into a concrete date using the
// message's anchors.
func resolveDay(day int, month time.Month, msg entity.RawMessage) (time.Time, bool) {
	year := dates.ResolveYear(month, day, msg.ReferenceDate, msg.ScanningPeriodHint)
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// resolveCandidateDates prepares scanned date candidates for pair selection,
// inferring years for the year-less ones.
func resolveCandidateDates(cands []entity.Candidate, msg entity.RawMessage) []dates.Resolved {
	out := make([]dates.Resolved, 0, len(cands))
	for _, c := range cands {
		if c.Kind != entity.KindDate {
			continue
		}
		year := c.Year
		if !c.ExplicitYear {
			year = dates.ResolveYear(time.Month(c.Month), c.Day, msg.ReferenceDate, msg.ScanningPeriodHint)
		}
		t := time.Date(year, time.Month(c.Month), c.Day, 0, 0, 0, 0, time.UTC)
		if t.Day() != c.Day {
			continue
		}
		out = append(out, dates.Resolved{Date: t, ExplicitYear: c.ExplicitYear})
	}
	return out
}

var nightsPattern = regexp.MustCompile(`(?i)(?:antal nätter|nätter):\s*(\d+)|(\d+)\s+nätter`)

func parseNightsMention(body string) (int, bool) {
	m := nightsPattern.FindStringSubmatch(body)
	if m == nil {
		return 0, false
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
