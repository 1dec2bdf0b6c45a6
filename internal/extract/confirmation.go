package extract

import (
	"regexp"
	"strconv"
	"time"

	"github.com/villosa/bookingmail/internal/dates"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/scan"
)

// Subject name tiers, most specific first. The first tier whose cleaned hit
// is at least three runes wins.
var confirmationNameTiers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bokning bekräftad\s*[-–]\s*(.+?)\s+anländer`),
	regexp.MustCompile(`(?i)bokning.*?bekräftad.*?([\p{Lu}][\p{L}\s-]+?)\s+anländer`),
	regexp.MustCompile(`([\p{Lu}][\p{L}\s-]+?)\s+anländer`),
	regexp.MustCompile(`(?i)reservation confirmed\s*[-–]\s*(.+?)\s+arrives`),
	regexp.MustCompile(`(?i)confirmed.*?([A-Z][A-Za-z\s-]+?)\s+arrives`),
	regexp.MustCompile(`([A-Z][A-Za-z\s-]+?)\s+arrives`),
}

// Owner-initiated blocks have no guest; the subject names the location.
var privateBookingPattern = regexp.MustCompile(`(?i)(?:bokning bekräftad för|reservation confirmed for)\s+(.+)`)

var (
	subjectArrivalSv = regexp.MustCompile(`(?i)anländer\s+(?:den\s+)?(\d{1,2})\s+(\p{L}+)`)
	subjectArrivalEn = regexp.MustCompile(`(?i)arrives\s+(\p{L}+)\s+(\d{1,2})`)

	// Statement tables list both dates under one header row, weekday
	// abbreviations ("mån", "tors") and years optional.
	combinedStayPattern = regexp.MustCompile(`(?i)incheckning\s+utcheckning\s+` +
		`(?:\p{L}{3,4}\.?,?\s+)?(\d{1,2})\s+(\p{L}+)\.?\s*(\d{4})?\s+` +
		`(?:\p{L}{3,4}\.?,?\s+)?(\d{1,2})\s+(\p{L}+)\.?\s*(\d{4})?`)
	checkInPattern  = regexp.MustCompile(`(?i)(?:incheckning|check-?in)\s*:?\s*(?:\p{L}{3,4}\.?,?\s+)?(\d{1,2})\s+(\p{L}+)\.?\s*(\d{4})?`)
	checkOutPattern = regexp.MustCompile(`(?i)(?:utcheckning|check-?out)\s*:?\s*(?:\p{L}{3,4}\.?,?\s+)?(\d{1,2})\s+(\p{L}+)\.?\s*(\d{4})?`)
)

func (e *Engine) extractConfirmation(rec *entity.ExtractedRecord, msg entity.RawMessage) {
	e.confirmationGuestName(rec, msg.Subject)
	e.confirmationDates(rec, msg)

	text := msg.FullText()
	cands := e.scanner.Scan(text)
	resolveHostEarnings(rec, text, cands)
	resolveLabeledFields(rec, text)
	resolveSekBreakdown(rec, text)

	if rec.Nights == nil && (rec.CheckInDate == nil || rec.CheckOutDate == nil) {
		if n, ok := parseNightsMention(msg.Body); ok {
			rec.Nights = &n
		}
	}
}

func (e *Engine) confirmationGuestName(rec *entity.ExtractedRecord, subject string) {
	for _, tier := range confirmationNameTiers {
		m := tier.FindStringSubmatch(subject)
		if m == nil {
			continue
		}
		name, ok := scan.CleanGuestName(m[1])
		if !ok || len([]rune(name)) < 3 {
			continue
		}
		rec.GuestName = &name
		return
	}
	if m := privateBookingPattern.FindStringSubmatch(subject); m != nil {
		if loc, ok := scan.CleanGuestName(m[1]); ok {
			name := "Private booking (" + loc + ")"
			rec.GuestName = &name
		}
	}
}

func (e *Engine) confirmationDates(rec *entity.ExtractedRecord, msg entity.RawMessage) {
	if m := combinedStayPattern.FindStringSubmatch(msg.Body); m != nil {
		in, inOK := datedFromGroups(m[1], m[2], m[3], msg)
		out, outOK := datedFromGroups(m[4], m[5], m[6], msg)
		if inOK && outOK {
			out = adjustCrossYear(in, out, m[6] != "")
			rec.CheckInDate, rec.CheckOutDate = &in, &out
			return
		}
	}

	inM := checkInPattern.FindStringSubmatch(msg.Body)
	outM := checkOutPattern.FindStringSubmatch(msg.Body)
	if inM != nil {
		if in, ok := datedFromGroups(inM[1], inM[2], inM[3], msg); ok {
			rec.CheckInDate = &in
		}
	}
	if outM != nil && rec.CheckInDate != nil {
		if out, ok := datedFromGroups(outM[1], outM[2], outM[3], msg); ok {
			out = adjustCrossYear(*rec.CheckInDate, out, outM[3] != "")
			rec.CheckOutDate = &out
		}
	}
	if rec.CheckInDate != nil {
		return
	}

	if in, ok := subjectArrival(msg); ok {
		rec.CheckInDate = &in
	}
	if rec.CheckInDate != nil && rec.CheckOutDate == nil {
		return
	}

	// Last resort: pick the most plausible pair out of every scanned date.
	resolved := resolveCandidateDates(e.scanner.Scan(msg.FullText()), msg)
	if in, out, ok := dates.SelectBestPair(resolved); ok {
		rec.CheckInDate, rec.CheckOutDate = &in, &out
	}
}

func subjectArrival(msg entity.RawMessage) (time.Time, bool) {
	if m := subjectArrivalSv.FindStringSubmatch(msg.Subject); m != nil {
		if t, ok := datedFromGroups(m[1], m[2], "", msg); ok {
			return t, true
		}
	}
	if m := subjectArrivalEn.FindStringSubmatch(msg.Subject); m != nil {
		if t, ok := datedFromGroups(m[2], m[1], "", msg); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// datedFromGroups builds a date from captured day, month-name and optional
// year groups, inferring the year when absent.
func datedFromGroups(dayRaw, monthRaw, yearRaw string, msg entity.RawMessage) (time.Time, bool) {
	day, err := strconv.Atoi(dayRaw)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, ok := dates.MonthNumber(monthRaw)
	if !ok {
		return time.Time{}, false
	}
	if yearRaw != "" {
		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			return time.Time{}, false
		}
		t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if t.Day() != day {
			return time.Time{}, false
		}
		return t, true
	}
	return resolveDay(day, month, msg)
}

// adjustCrossYear rolls an inferred check-out into the next year when it
// lands before check-in (a December stay ending in January).
func adjustCrossYear(in, out time.Time, explicitYear bool) time.Time {
	if !explicitYear && out.Before(in) {
		return out.AddDate(1, 0, 0)
	}
	return out
}
