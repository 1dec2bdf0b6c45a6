package entity

import (
	"github.com/villosa/bookingmail/constants"
)

// CandidateKind is the entity family a scanned span belongs to.
type CandidateKind string

const (
	KindAmount CandidateKind = "amount"
	KindDate   CandidateKind = "date"
	KindName   CandidateKind = "name"
)

// Candidate is a span of text tentatively recognized as an amount, date or
// name, before it is bound to a structured field. Candidates may repeat in
// content but never overlap in span; the first, more specific pattern tier
// wins a span.
type Candidate struct {
	Kind     CandidateKind      `json:"kind"`
	RawValue string             `json:"raw_value"`
	Start    int                `json:"start"`
	End      int                `json:"end"`
	Context  string             `json:"context"`
	Currency constants.Currency `json:"currency"`

	// ExplicitYear marks date candidates whose source text carried a
	// four-digit year. Zero-valued for other kinds.
	ExplicitYear bool `json:"explicit_year,omitempty"`

	// Day and Month are filled for date candidates (Year only when explicit).
	Day   int `json:"day,omitempty"`
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`
}

// Overlaps reports whether the candidate's span intersects [start, end).
func (c Candidate) Overlaps(start, end int) bool {
	return c.Start < end && start < c.End
}
