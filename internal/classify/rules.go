package classify

import (
	"github.com/villosa/bookingmail/constants"
)

// classifyByRules is the deterministic fallback used when no trained model
// is loaded. Rule order matters: cancellation vocabulary outranks the
// confirmation keyword because cancellation emails quote the original
// confirmation subject.
func classifyByRules(f Features) (constants.EmailCategory, float64) {
	switch {
	case f.SubjectCancelled || f.HasCancellationText:
		return constants.Cancellation, 0.8
	case f.SubjectChangeRequest || (f.HasOriginalDates && f.HasRequestedDates):
		return constants.ChangeRequest, 0.8
	case f.SubjectModification:
		return constants.Modification, 0.7
	case f.SubjectPayout:
		return constants.Payout, 0.85
	case f.SubjectReminder:
		return constants.BookingReminder, 0.8
	case f.SubjectConfirmed:
		return constants.BookingConfirmation, 0.85
	default:
		return constants.Unknown, 0
	}
}
