package constants

import (
	"strings"
)

// EmailCategory is the transactional email type. Exactly one per message;
// the category decides which field set the extractor may populate.
type EmailCategory string

const (
	BookingConfirmation EmailCategory = "booking_confirmation"
	BookingReminder     EmailCategory = "booking_reminder"
	Payout              EmailCategory = "payout"
	Cancellation        EmailCategory = "cancellation"
	ChangeRequest       EmailCategory = "change_request"
	Modification        EmailCategory = "modification"

	// Unknown is the designated category when no trained model is available
	// and no classification rule fires. Never produced by a trained model.
	Unknown EmailCategory = "unknown"
)

var allCategories = []EmailCategory{
	BookingConfirmation,
	BookingReminder,
	Payout,
	Cancellation,
	ChangeRequest,
	Modification,
}

// AsStringSlice returns the trainable categories (Unknown excluded).
func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// CategoryIndex returns the fixed label index used by the classifier model.
// The order is stable across train and inference.
func CategoryIndex(cat EmailCategory) (int, bool) {
	for i, c := range allCategories {
		if c == cat {
			return i, true
		}
	}
	return -1, false
}

// CategoryAt is the inverse of CategoryIndex.
func CategoryAt(idx int) (EmailCategory, bool) {
	if idx < 0 || idx >= len(allCategories) {
		return Unknown, false
	}
	return allCategories[idx], true
}

// NumCategories is the classifier's class count.
func NumCategories() int { return len(allCategories) }

// Canonicalize maps free-form labels (training CSVs, external callers) onto a
// known category.
func Canonicalize(input string) (EmailCategory, bool) {
	if input == "" {
		return Unknown, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]EmailCategory{
		"confirmation": BookingConfirmation,
		"booking":      BookingConfirmation,
		"bekräftad":    BookingConfirmation,
		"reminder":     BookingReminder,
		"påminnelse":   BookingReminder,
		"utbetalning":  Payout,
		"payment":      Payout,
		"cancelled":    Cancellation,
		"canceled":     Cancellation,
		"avbokad":      Cancellation,
		"change":       ChangeRequest,
		"ändring":      ChangeRequest,
		"updated":      Modification,
		"uppdaterad":   Modification,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}

	return Unknown, false
}
