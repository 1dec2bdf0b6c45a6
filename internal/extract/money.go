package extract

import (
	"regexp"
	"sort"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/textnorm"
)

// Labeled money patterns. Group 1 is always the raw numeric token, handed to
// textnorm.Amount for locale normalization.
var (
	totalEurLabeled     = regexp.MustCompile(`(?i)TOTALT?\s*\(EUR\)\s*€\s*([\d\s\x{00a0}\x{202f},.]+)`)
	hostEarnsEurLabeled = regexp.MustCompile(`(?i)(?:du tjänar|dina intäkter|your earnings|you earn|host earnings)\s*:?\s*€\s*([\d\s\x{00a0}\x{202f},.]+)`)
	hostEarnsSekLabeled = regexp.MustCompile(`(?i)(?:du tjänar|dina intäkter|your earnings|you earn|host earnings)\s*:?\s*([\d\s\x{00a0}\x{202f},.]+)\s*kr`)
	guestTotalEurLabel  = regexp.MustCompile(`(?i)(?:gästens totala kostnad|guest total|guest paid)\s*:?\s*€\s*([\d\s\x{00a0}\x{202f},.]+)`)
	cleaningEurLabel    = regexp.MustCompile(`(?i)(?:städavgift|cleaning fee)\s*:?\s*€\s*([\d\s\x{00a0}\x{202f},.]+)`)
	serviceEurLabel     = regexp.MustCompile(`(?i)(?:serviceavgift(?:\s+för\s+värd(?:ar)?)?|service fee)\s*:?\s*-?\s*€\s*([\d\s\x{00a0}\x{202f},.]+)`)
	propertyTaxLabel    = regexp.MustCompile(`(?i)(?:fastighetsskatt|occupancy tax|property tax)\s*:?\s*€\s*([\d\s\x{00a0}\x{202f},.]+)`)
	nightlyRateEur      = regexp.MustCompile(`€\s*([\d\s\x{00a0}\x{202f},.]+)\s*x\s*\d+\s*(?:nätter|nights)`)
	guestCountPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:gäster|vuxna|guests?|adults?)`)

	// Older breakdowns are SEK-only with the amount after the label.
	payoutSekLabel   = regexp.MustCompile(`(?i)utbetalning\s*:?\s*([\d\s\x{00a0}\x{202f},.]+)\s*kr`)
	totalSekLabel    = regexp.MustCompile(`(?i)totalt\s*:?\s*([\d\s\x{00a0}\x{202f},.]+)\s*kr`)
	cleaningSekLabel = regexp.MustCompile(`(?i)(?:städavgift|cleaning fee)\s*:?\s*([\d\s\x{00a0}\x{202f},.]+)\s*kr`)
	serviceSekLabel  = regexp.MustCompile(`(?i)(?:serviceavgift(?:\s+för\s+värd(?:ar)?)?|service fee)\s*:?\s*-?\s*([\d\s\x{00a0}\x{202f},.]+)\s*kr`)
)

func labeledAmount(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v := textnorm.Amount(m[1])
	if v <= 0 {
		return 0, false
	}
	return v, true
}

// resolveHostEarnings applies the strict earnings priority over the full
// text, then over the candidate table:
//
//	TOTALT (EUR) label > labeled earnings line > banded table fallback.
//
// EUR and SEK earnings are mutually exclusive; the highest-priority hit
// decides the currency.
func resolveHostEarnings(rec *entity.ExtractedRecord, text string, cands []entity.Candidate) {
	if v, ok := labeledAmount(totalEurLabeled, text); ok {
		rec.SetAmount(constants.FieldHostEarningsEur, v)
		return
	}
	if v, ok := labeledAmount(hostEarnsEurLabeled, text); ok {
		rec.SetAmount(constants.FieldHostEarningsEur, v)
		return
	}
	if v, ok := labeledAmount(hostEarnsSekLabeled, text); ok {
		rec.SetAmount(constants.FieldHostEarningsSek, v)
		return
	}
	if v, ok := bandedFallback(cands, constants.CurrencyEUR); ok {
		rec.SetAmount(constants.FieldHostEarningsEur, v)
	}
}

const (
	earningsBandLow     = 1.0
	earningsBandHigh    = 1000.0
	earningsSmallMax    = 100.0
	earningsBandMinHits = 4
)

// bandedFallback picks an earnings value from unlabeled table amounts: the
// smallest in-band amount when it is small enough to be a per-night figure,
// otherwise the largest. Requires enough amounts to look like a price table.
func bandedFallback(cands []entity.Candidate, cur constants.Currency) (float64, bool) {
	var vals []float64
	for _, c := range cands {
		if c.Kind != entity.KindAmount || c.Currency != cur {
			continue
		}
		v := textnorm.Amount(c.RawValue)
		if v >= earningsBandLow && v <= earningsBandHigh {
			vals = append(vals, v)
		}
	}
	if len(vals) < earningsBandMinHits {
		return 0, false
	}
	sort.Float64s(vals)
	if vals[0] <= earningsSmallMax {
		return vals[0], true
	}
	return vals[len(vals)-1], true
}

// resolveLabeledFields fills the remaining money fields from direct labels.
// Each field is independent; a miss leaves the field absent.
func resolveLabeledFields(rec *entity.ExtractedRecord, text string) {
	if v, ok := labeledAmount(guestTotalEurLabel, text); ok {
		rec.SetAmount(constants.FieldGuestTotalEur, v)
	}
	if v, ok := labeledAmount(cleaningEurLabel, text); ok {
		rec.SetAmount(constants.FieldCleaningFeeEur, v)
	}
	if v, ok := labeledAmount(serviceEurLabel, text); ok {
		rec.SetAmount(constants.FieldServiceFeeEur, v)
	}
	if v, ok := labeledAmount(propertyTaxLabel, text); ok {
		rec.SetAmount(constants.FieldPropertyTaxEur, v)
	}
	if v, ok := labeledAmount(nightlyRateEur, text); ok {
		rec.SetAmount(constants.FieldNightlyRateEur, v)
	}
	if m := guestCountPattern.FindStringSubmatch(text); m != nil {
		if n := int(textnorm.Amount(m[1])); n > 0 {
			rec.GuestCount = &n
		}
	}
}

// resolveSekBreakdown handles the older all-SEK statement layout. Only
// applied when no EUR earnings were found.
func resolveSekBreakdown(rec *entity.ExtractedRecord, text string) {
	if rec.HostEarningsEur != nil || rec.HostEarningsSek != nil {
		if v, ok := labeledAmount(cleaningSekLabel, text); ok && rec.CleaningFeeEur == nil {
			rec.SetAmount(constants.FieldCleaningFeeSek, v)
		}
		return
	}
	if v, ok := labeledAmount(payoutSekLabel, text); ok {
		rec.SetAmount(constants.FieldHostEarningsSek, v)
	} else if v, ok := labeledAmount(totalSekLabel, text); ok {
		rec.SetAmount(constants.FieldHostEarningsSek, v)
	}
	if rec.HostEarningsSek == nil {
		return
	}
	if v, ok := labeledAmount(totalSekLabel, text); ok {
		rec.SetAmount(constants.FieldGuestTotalSek, v)
	}
	if v, ok := labeledAmount(cleaningSekLabel, text); ok {
		rec.SetAmount(constants.FieldCleaningFeeSek, v)
	}
	if v, ok := labeledAmount(serviceSekLabel, text); ok {
		rec.SetAmount(constants.FieldServiceFeeSek, v)
	}
}
