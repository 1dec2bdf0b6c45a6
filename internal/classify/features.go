// Package classify assigns an email category from hand-crafted features,
// through a trained multi-class model when one is loaded and through
// deterministic keyword rules otherwise.
package classify

import (
	"strings"

	"github.com/villosa/bookingmail/internal/scan"
)

// Features is the enumerated feature schema shared by training and
// inference. Adding a field here changes FeatureDim and invalidates stored
// model artifacts, which is the point: feature drift is a compile-time
// concern, not a silent one.
type Features struct {
	SenderAutomated bool
	SenderExpress   bool
	SenderNoreply   bool

	SubjectConfirmed     bool
	SubjectReminder      bool
	SubjectPayout        bool
	SubjectCancelled     bool
	SubjectChangeRequest bool
	SubjectModification  bool

	HasBookingCode      bool
	HasAmountSek        bool
	HasAmountEur        bool
	HasOriginalDates    bool
	HasRequestedDates   bool
	HasBookingURL       bool
	HasCancellationText bool
	IsSwedish           bool

	SubjectLength int
	BodyLength    int
}

// FeatureDim is the model input width.
const FeatureDim = 19

var (
	cancelledSubjectWords = []string{"avbokad", "cancelled", "inställd", "avbruten", "annullerad"}
	cancellationWords     = []string{
		"avbokad av", "cancelled by", "inställd av", "avbruten av",
		"bokning avbokad", "booking cancelled", "har avbokats",
		"has been cancelled", "annullerad", "bokning annullerad",
	}
	swedishMarkers = []string{
		"anländer", "bekräftad", "utbetalning", "avbokad", "inställd",
		"avbruten", "annullerad", "vill ändra", "uppdaterad",
		"ursprungliga datum", "efterfrågade datum",
	}
)

// ExtractFeatures builds the feature struct for one message.
func ExtractFeatures(subject, sender, body string) Features {
	subjectLower := strings.ToLower(subject)
	combined := subject + " " + body
	combinedLower := strings.ToLower(combined)

	return Features{
		SenderAutomated: strings.Contains(sender, "automated@airbnb.com"),
		SenderExpress:   strings.Contains(sender, "express@airbnb.com"),
		SenderNoreply:   strings.Contains(sender, "noreply@airbnb.com"),

		SubjectConfirmed: strings.Contains(subjectLower, "bekräftad") ||
			strings.Contains(subjectLower, "confirmed"),
		SubjectReminder: strings.Contains(subjectLower, "påminnelse") ||
			strings.Contains(subjectLower, "anländer snart"),
		SubjectPayout: strings.Contains(subjectLower, "utbetalning") &&
			strings.Contains(subjectLower, "kr skickades") ||
			strings.Contains(subjectLower, "payout was sent"),
		SubjectCancelled:     containsAny(subjectLower, cancelledSubjectWords),
		SubjectChangeRequest: strings.Contains(subjectLower, "vill ändra"),
		SubjectModification: strings.Contains(subjectLower, "uppdaterad") ||
			strings.Contains(subjectLower, "uppdaterats") ||
			strings.Contains(subjectLower, "has been updated"),

		HasBookingCode:      scan.BookingCodePattern.MatchString(combined),
		HasAmountSek:        scan.AmountSekPattern.MatchString(combined),
		HasAmountEur:        scan.AmountEurPattern.MatchString(combined),
		HasOriginalDates:    scan.OriginalDatesPattern.MatchString(body),
		HasRequestedDates:   scan.RequestedDatesPattern.MatchString(body),
		HasBookingURL:       scan.BookingCodeURLPattern.MatchString(body),
		HasCancellationText: containsAny(combinedLower, cancellationWords),
		IsSwedish:           containsAny(combinedLower, swedishMarkers),

		SubjectLength: len(subject),
		BodyLength:    len(body),
	}
}

// Vector flattens the schema in fixed order. Lengths are squashed into
// [0, 1] so they coexist with the boolean flags in one linear model.
func (f Features) Vector() []float64 {
	v := make([]float64, 0, FeatureDim)
	for _, b := range []bool{
		f.SenderAutomated, f.SenderExpress, f.SenderNoreply,
		f.SubjectConfirmed, f.SubjectReminder, f.SubjectPayout,
		f.SubjectCancelled, f.SubjectChangeRequest, f.SubjectModification,
		f.HasBookingCode, f.HasAmountSek, f.HasAmountEur,
		f.HasOriginalDates, f.HasRequestedDates, f.HasBookingURL,
		f.HasCancellationText, f.IsSwedish,
	} {
		v = append(v, boolToFloat(b))
	}
	v = append(v, squashLength(f.SubjectLength, 200))
	v = append(v, squashLength(f.BodyLength, 5000))
	return v
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func squashLength(n, limit int) float64 {
	if n > limit {
		n = limit
	}
	return float64(n) / float64(limit)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
