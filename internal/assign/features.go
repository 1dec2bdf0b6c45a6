// Package assign binds scanned amount candidates to money fields with a
// trained model, falling back to nothing: callers keep the heuristic engine
// as the safety net.
package assign

import (
	"regexp"
	"strings"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/textnorm"
)

// FeatureDim is the width of a candidate feature vector: twelve context and
// value signals plus a category one-hot.
const FeatureDim = 12 + 6

var nightlyMarker = regexp.MustCompile(`(?i)x\s*\d+\s*(?:nätter|nights)`)

// CandidateFeatures encodes one amount candidate for the assigner model.
// Everything derives from the candidate's context window, its currency
// marker and the email category; the absolute offset is reduced to a
// position ratio so message length does not leak into the geometry.
func CandidateFeatures(cat constants.EmailCategory, cand entity.Candidate, textLen int) []float64 {
	ctx := strings.ToLower(cand.Context)

	v := make([]float64, 0, FeatureDim)
	v = append(v,
		boolFeature(strings.Contains(ctx, "totalt") || strings.Contains(ctx, "total")),
		boolFeature(strings.Contains(ctx, "tjänar") || strings.Contains(ctx, "intäkter") || strings.Contains(ctx, "earn")),
		boolFeature(strings.Contains(ctx, "utbetalning") || strings.Contains(ctx, "payout")),
		boolFeature(strings.Contains(ctx, "gäst") || strings.Contains(ctx, "guest")),
		boolFeature(strings.Contains(ctx, "städ") || strings.Contains(ctx, "cleaning")),
		boolFeature(strings.Contains(ctx, "serviceavgift") || strings.Contains(ctx, "service fee")),
		boolFeature(strings.Contains(ctx, "skatt") || strings.Contains(ctx, "tax")),
		boolFeature(nightlyMarker.MatchString(ctx)),
		boolFeature(cand.Currency == constants.CurrencyEUR),
		boolFeature(cand.Currency == constants.CurrencySEK),
		positionRatio(cand.Start, textLen),
		squashValue(textnorm.Amount(cand.RawValue)),
	)

	oneHot := make([]float64, constants.NumCategories())
	if idx, ok := constants.CategoryIndex(cat); ok {
		oneHot[idx] = 1
	}
	return append(v, oneHot...)
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func positionRatio(start, textLen int) float64 {
	if textLen <= 0 || start < 0 {
		return 0
	}
	r := float64(start) / float64(textLen)
	if r > 1 {
		return 1
	}
	return r
}

// squashValue maps an amount into [0, 1]; anything above a thousand looks
// the same to the model.
func squashValue(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if v >= 1000 {
		return 1
	}
	return v / 1000
}
