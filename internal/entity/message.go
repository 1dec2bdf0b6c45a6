package entity

import (
	"time"
)

// RawMessage is the immutable extraction input. ReferenceDate is the email's
// send date and anchors year inference; nil when unknown. ScanningPeriodHint
// is a coarse "this mailbox scan covers year X" anchor used only when
// ReferenceDate is absent.
type RawMessage struct {
	Subject            string     `json:"subject"`
	Sender             string     `json:"sender"`
	Body               string     `json:"body"`
	ReferenceDate      *time.Time `json:"reference_date,omitempty"`
	ScanningPeriodHint *time.Time `json:"scanning_period_hint,omitempty"`
}

// FullText returns subject and body joined for patterns that search both.
func (m RawMessage) FullText() string {
	return m.Subject + " " + m.Body
}
