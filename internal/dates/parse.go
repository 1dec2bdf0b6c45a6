package dates

import (
	"regexp"
	"strconv"
	"time"
)

var longFormPattern = regexp.MustCompile(`(\d{1,2})\s+([\p{L}]+)\.?\s+(\d{4})`)

// ParseLongForm parses a fully dated Swedish or English literal like
// "28 oktober 2025" or "3 March 2024". The zero time and false on failure.
func ParseLongForm(s string) (time.Time, bool) {
	m := longFormPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, ok := MonthNumber(m[2])
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// Day overflowed the month (e.g. 31 feb).
		return time.Time{}, false
	}
	return t, true
}
