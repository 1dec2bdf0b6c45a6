package extract

import (
	"regexp"

	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/scan"
)

var reminderNameTiers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bokningspåminnelse\s*:?\s*(.+?)\s+anländer`),
	regexp.MustCompile(`(?i)påminnelse.*?([\p{Lu}][\p{L}\s-]+?)\s+anländer`),
	regexp.MustCompile(`(?i)reminder\s*:?\s*(.+?)\s+arrives`),
}

// Reminders repeat the confirmation's stay details in condensed form, so the
// date rules are shared; only the subject shape differs.
func (e *Engine) extractReminder(rec *entity.ExtractedRecord, msg entity.RawMessage) {
	for _, tier := range reminderNameTiers {
		m := tier.FindStringSubmatch(msg.Subject)
		if m == nil {
			continue
		}
		if name, ok := scan.CleanGuestName(m[1]); ok {
			rec.GuestName = &name
			break
		}
	}

	e.confirmationDates(rec, msg)
	if rec.Nights == nil && (rec.CheckInDate == nil || rec.CheckOutDate == nil) {
		if n, ok := parseNightsMention(msg.Body); ok {
			rec.Nights = &n
		}
	}
}
