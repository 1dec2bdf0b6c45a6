// Package dates resolves year-less day/month tokens against an anchor date
// and picks chronologically consistent check-in/check-out pairs.
package dates

import (
	"strings"
	"time"
)

// monthNames covers Swedish and English month names and their short forms.
// Swedish emails abbreviate with a trailing dot ("5 apr."); callers strip it.
var monthNames = map[string]time.Month{
	"jan": time.January, "januari": time.January, "january": time.January,
	"feb": time.February, "februari": time.February, "february": time.February,
	"mar": time.March, "mars": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"maj": time.May, "may": time.May,
	"jun": time.June, "juni": time.June, "june": time.June,
	"jul": time.July, "juli": time.July, "july": time.July,
	"aug": time.August, "augusti": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"okt": time.October, "oktober": time.October, "oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// MonthNumber resolves a Swedish or English month name, full or abbreviated,
// case-insensitive, tolerating a trailing abbreviation dot.
func MonthNumber(name string) (time.Month, bool) {
	n := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	if m, ok := monthNames[n]; ok {
		return m, true
	}
	// Long forms sometimes arrive truncated ("septemb"); try the first
	// three letters, which are unambiguous in both languages.
	if len(n) > 3 {
		if m, ok := monthNames[n[:3]]; ok {
			return m, true
		}
	}
	return 0, false
}

// MonthNamesAlternation returns the regex alternation of every known month
// name, longest first so short forms never shadow long ones.
func MonthNamesAlternation() string {
	long := []string{
		"januari", "january", "februari", "february", "mars", "march",
		"april", "juni", "june", "juli", "july", "augusti", "august",
		"september", "oktober", "october", "november", "december", "maj", "may",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "okt", "oct", "nov", "dec",
	}
	return strings.Join(long, "|")
}
