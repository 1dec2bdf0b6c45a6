package extract

import (
	"regexp"

	"github.com/villosa/bookingmail/internal/dates"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/scan"
)

var changeGuestTiers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.+?)\s+vill ändra`),
	regexp.MustCompile(`(?i)^(.+?)\s+wants to change`),
}

// extractChangeRequest reads the before/after date blocks. The requested
// dates become the record's effective stay; the original pair is kept
// separately so downstream reconciliation can find the booking it amends.
func (e *Engine) extractChangeRequest(rec *entity.ExtractedRecord, msg entity.RawMessage) {
	for _, tier := range changeGuestTiers {
		m := tier.FindStringSubmatch(msg.Subject)
		if m == nil {
			continue
		}
		if name, ok := scan.CleanGuestName(m[1]); ok {
			rec.GuestName = &name
			break
		}
	}

	if m := scan.OriginalDatesPattern.FindStringSubmatch(msg.Body); m != nil {
		if in, ok := dates.ParseLongForm(m[1]); ok {
			if out, ok := dates.ParseLongForm(m[2]); ok {
				rec.OriginalCheckInDate, rec.OriginalCheckOutDate = &in, &out
			}
		}
	}
	if m := scan.RequestedDatesPattern.FindStringSubmatch(msg.Body); m != nil {
		if in, ok := dates.ParseLongForm(m[1]); ok {
			if out, ok := dates.ParseLongForm(m[2]); ok {
				rec.CheckInDate, rec.CheckOutDate = &in, &out
			}
		}
	}
}
