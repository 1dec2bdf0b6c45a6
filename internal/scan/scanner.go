// Package scan locates amount-, date- and name-shaped substrings in cleaned
// email text and hands them to the extraction engines as candidates with
// context windows.
package scan

import (
	"log/slog"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/dates"
	"github.com/villosa/bookingmail/internal/entity"
)

// Pattern tiers, ordered by specificity. These are compiled once and never
// mutated after init; the tier order is part of the extraction contract
// (currency-marked before unmarked, explicit-year before year-less).
var (
	amountTiers = []amountPattern{
		{regexp.MustCompile(`€\s*(\d+(?:[ \x{00a0}\x{202f},.]\d{3})*(?:[.,]\d{1,2})?)`), constants.CurrencyEUR},
		{regexp.MustCompile(`(\d+(?:[ \x{00a0}\x{202f},.]\d{3})*(?:[.,]\d{1,2})?)\s*(?:€|EUR\b)`), constants.CurrencyEUR},
		{regexp.MustCompile(`(\d+(?:[ \x{00a0}\x{202f},]\d{3})*(?:[.,]\d{1,2})?)[ \x{00a0}]*kr\b`), constants.CurrencySEK},
		{regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})+\.\d{2}|\d+[.,]\d{2})\b`), constants.CurrencyNone},
	}

	monthAlt = dates.MonthNamesAlternation()

	dateTiers = []datePattern{
		{regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + monthAlt + `)\.?\s+(\d{4})\b`), true, false},
		{regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`), true, true},
		{regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + monthAlt + `)\b\.?`), false, false},
	}

	// Names ride on the locale's arrival verb: "Anna Svensson anländer",
	// "John Smith arrives".
	namePattern = regexp.MustCompile(`([\p{Lu}][\p{L}]*(?:[\s-][\p{L}][\p{L}]*)*)\s+(?:anländer|arrives)`)
)

type amountPattern struct {
	re       *regexp.Regexp
	currency constants.Currency
}

type datePattern struct {
	re           *regexp.Regexp
	explicitYear bool
	iso          bool
}

// Scanner finds candidate entities in normalized text.
type Scanner struct {
	logger *slog.Logger
	window int
}

// NewScanner returns a scanner with the given context-window radius in bytes
// (0 means the default of 50).
func NewScanner(logger *slog.Logger, window int) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if window <= 0 {
		window = 50
	}
	return &Scanner{logger: logger, window: window}
}

// Scan runs every pattern tier over text. Spans already claimed by an
// earlier tier of the same kind are skipped.
func (s *Scanner) Scan(text string) []entity.Candidate {
	out := make([]entity.Candidate, 0, 16)
	out = append(out, s.scanAmounts(text)...)
	out = append(out, s.scanDates(text)...)
	out = append(out, s.scanNames(text)...)
	return out
}

func (s *Scanner) scanAmounts(text string) []entity.Candidate {
	var claimed []entity.Candidate
	for _, tier := range amountTiers {
		for _, m := range tier.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[0], m[1]
			if overlapsAny(claimed, start, end) {
				continue
			}
			claimed = append(claimed, entity.Candidate{
				Kind:     entity.KindAmount,
				RawValue: text[m[2]:m[3]],
				Start:    start,
				End:      end,
				Context:  s.contextWindow(text, start, end),
				Currency: tier.currency,
			})
		}
	}
	return claimed
}

func (s *Scanner) scanDates(text string) []entity.Candidate {
	var claimed []entity.Candidate
	for _, tier := range dateTiers {
		for _, m := range tier.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[0], m[1]
			if overlapsAny(claimed, start, end) {
				continue
			}
			cand, ok := buildDateCandidate(text, tier, m)
			if !ok {
				continue
			}
			cand.Context = s.contextWindow(text, start, end)
			claimed = append(claimed, cand)
		}
	}
	return claimed
}

func buildDateCandidate(text string, tier datePattern, m []int) (entity.Candidate, bool) {
	cand := entity.Candidate{
		Kind:         entity.KindDate,
		RawValue:     text[m[0]:m[1]],
		Start:        m[0],
		End:          m[1],
		Currency:     constants.CurrencyNone,
		ExplicitYear: tier.explicitYear,
	}
	if tier.iso {
		year, _ := strconv.Atoi(text[m[2]:m[3]])
		month, _ := strconv.Atoi(text[m[4]:m[5]])
		day, _ := strconv.Atoi(text[m[6]:m[7]])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return entity.Candidate{}, false
		}
		cand.Year, cand.Month, cand.Day = year, month, day
		return cand, true
	}
	day, _ := strconv.Atoi(text[m[2]:m[3]])
	month, ok := dates.MonthNumber(text[m[4]:m[5]])
	if !ok || day < 1 || day > 31 {
		return entity.Candidate{}, false
	}
	cand.Day, cand.Month = day, int(month)
	if tier.explicitYear {
		cand.Year, _ = strconv.Atoi(text[m[6]:m[7]])
	}
	return cand, true
}

func (s *Scanner) scanNames(text string) []entity.Candidate {
	var claimed []entity.Candidate
	for _, m := range namePattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		if overlapsAny(claimed, start, end) {
			continue
		}
		name, ok := CleanGuestName(text[start:end])
		if !ok {
			continue
		}
		claimed = append(claimed, entity.Candidate{
			Kind:     entity.KindName,
			RawValue: name,
			Start:    start,
			End:      end,
			Context:  s.contextWindow(text, start, end),
			Currency: constants.CurrencyNone,
		})
	}
	return claimed
}

func (s *Scanner) contextWindow(text string, start, end int) string {
	lo := start - s.window
	if lo < 0 {
		lo = 0
	}
	hi := end + s.window
	if hi > len(text) {
		hi = len(text)
	}
	// Back off to rune boundaries so the window never splits a multi-byte
	// character.
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}

func overlapsAny(claimed []entity.Candidate, start, end int) bool {
	for _, c := range claimed {
		if c.Overlaps(start, end) {
			return true
		}
	}
	return false
}
