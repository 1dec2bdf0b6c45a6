package dates

import (
	"time"
)

const (
	// bookingHorizonDays is how far ahead a booking may plausibly lie.
	// Beyond it the date more likely references the previous year.
	bookingHorizonDays = 540

	// crossYearGapDays is the naive day-difference below which a Nov/Dec
	// anchor with a Jan/Feb candidate is read as a New-Year crossing.
	crossYearGapDays = -300
)

// ResolveYear infers the year of a year-less day/month. The anchor is the
// email's send date; scanHint is a coarse scanning-period fallback whose
// mid-year stands in when no anchor exists. Deterministic for a fixed
// (month, day, anchor) triple.
func ResolveYear(month time.Month, day int, anchor, scanHint *time.Time) int {
	var ref time.Time
	switch {
	case anchor != nil:
		ref = dateOnly(*anchor)
	case scanHint != nil:
		ref = time.Date(scanHint.Year(), time.June, 15, 0, 0, 0, 0, time.UTC)
	default:
		ref = dateOnly(time.Now().UTC())
	}

	candidate := time.Date(ref.Year(), month, day, 0, 0, 0, 0, time.UTC)
	diff := daysBetween(ref, candidate)

	// New-Year crossing: Nov/Dec email about a Jan/Feb stay.
	if ref.Month() >= time.November && month <= time.February && diff < crossYearGapDays {
		return ref.Year() + 1
	}

	if diff < 0 {
		nextYear := candidate.AddDate(1, 0, 0)
		if d := daysBetween(ref, nextYear); d >= 1 && d <= bookingHorizonDays {
			return ref.Year() + 1
		}
		return ref.Year()
	}

	if diff > bookingHorizonDays {
		// Far-future candidates usually reference last year's stay.
		return ref.Year() - 1
	}

	return ref.Year()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
