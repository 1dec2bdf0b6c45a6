package extract

import (
	"regexp"

	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/scan"
)

var modificationGuestTiers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)din bokning med\s+(.+?)\s+har uppdaterats`),
	regexp.MustCompile(`(?i)your (?:booking|reservation) with\s+(.+?)\s+(?:has been|was) updated`),
}

// extractModification handles confirmed booking updates. These emails carry
// the new stay details in the same table layout as confirmations, plus an
// itinerary link whose path holds the booking code.
func (e *Engine) extractModification(rec *entity.ExtractedRecord, msg entity.RawMessage) {
	for _, tier := range modificationGuestTiers {
		m := tier.FindStringSubmatch(msg.FullText())
		if m == nil {
			continue
		}
		if name, ok := scan.CleanGuestName(m[1]); ok {
			rec.GuestName = &name
			break
		}
	}

	if rec.BookingCode == nil {
		if m := scan.BookingCodeURLPattern.FindStringSubmatch(msg.Body); m != nil {
			code := m[1]
			rec.BookingCode = &code
		}
	}

	e.confirmationDates(rec, msg)
}
