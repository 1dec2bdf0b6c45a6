package constants

// Field names shared by the heuristic engine, the learned assigner and the
// training pipeline. Training labels and inference output must use the same
// identifiers or value matching silently breaks.
type Field string

const (
	FieldGuestName        Field = "guestName"
	FieldBookingCode      Field = "bookingCode"
	FieldCheckInDate      Field = "checkInDate"
	FieldCheckOutDate     Field = "checkOutDate"
	FieldOriginalCheckIn  Field = "originalCheckInDate"
	FieldOriginalCheckOut Field = "originalCheckOutDate"
	FieldNights           Field = "nights"
	FieldGuestCount       Field = "guestCount"
	FieldHostEarningsEur  Field = "hostEarningsEur"
	FieldHostEarningsSek  Field = "hostEarningsSek"
	FieldGuestTotalEur    Field = "guestTotalEur"
	FieldGuestTotalSek    Field = "guestTotalSek"
	FieldCleaningFeeEur   Field = "cleaningFeeEur"
	FieldCleaningFeeSek   Field = "cleaningFeeSek"
	FieldServiceFeeEur    Field = "serviceFeeEur"
	FieldServiceFeeSek    Field = "serviceFeeSek"
	FieldNightlyRateEur   Field = "nightlyRateEur"
	FieldPropertyTaxEur   Field = "propertyTaxEur"
	FieldPayoutSek        Field = "payoutSek"

	// FieldOther labels amount candidates that match no ground-truth value.
	FieldOther Field = "other"
)

// AmountFields are the money fields the learned assigner can predict, in the
// fixed label order its model uses. FieldOther is always last.
var AmountFields = []Field{
	FieldHostEarningsEur,
	FieldHostEarningsSek,
	FieldGuestTotalEur,
	FieldGuestTotalSek,
	FieldCleaningFeeEur,
	FieldCleaningFeeSek,
	FieldServiceFeeEur,
	FieldPayoutSek,
	FieldOther,
}

// AmountFieldIndex returns the model label index for f, or the FieldOther
// index when f is not a predictable amount field.
func AmountFieldIndex(f Field) int {
	for i, af := range AmountFields {
		if af == f {
			return i
		}
	}
	return len(AmountFields) - 1
}
