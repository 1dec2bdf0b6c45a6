package entity

import (
	"time"

	"github.com/villosa/bookingmail/constants"
)

// ExtractedRecord is the structured output of one extraction. Absent fields
// stay nil; a numeric zero is written only where zero is the domain-correct
// value (cancelled payout).
type ExtractedRecord struct {
	GuestName   *string `json:"guest_name,omitempty"`
	BookingCode *string `json:"booking_code,omitempty"`

	CheckInDate          *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate         *time.Time `json:"check_out_date,omitempty"`
	OriginalCheckInDate  *time.Time `json:"original_check_in_date,omitempty"`
	OriginalCheckOutDate *time.Time `json:"original_check_out_date,omitempty"`

	Nights     *int `json:"nights,omitempty"`
	GuestCount *int `json:"guest_count,omitempty"`

	HostEarningsEur *float64 `json:"host_earnings_eur,omitempty"`
	HostEarningsSek *float64 `json:"host_earnings_sek,omitempty"`
	GuestTotalEur   *float64 `json:"guest_total_eur,omitempty"`
	GuestTotalSek   *float64 `json:"guest_total_sek,omitempty"`
	CleaningFeeEur  *float64 `json:"cleaning_fee_eur,omitempty"`
	CleaningFeeSek  *float64 `json:"cleaning_fee_sek,omitempty"`
	ServiceFeeEur   *float64 `json:"service_fee_eur,omitempty"`
	ServiceFeeSek   *float64 `json:"service_fee_sek,omitempty"`
	NightlyRateEur  *float64 `json:"nightly_rate_eur,omitempty"`
	PropertyTaxEur  *float64 `json:"property_tax_eur,omitempty"`
	PayoutSek       *float64 `json:"payout_sek,omitempty"`

	// ExchangeRate is derived (PayoutSek / total EUR) when a payout email
	// carries both currencies.
	ExchangeRate *float64 `json:"exchange_rate,omitempty"`

	// Currency is the currency of the host-earnings figure, when one was
	// found. SEK and EUR earnings are mutually exclusive per record.
	Currency constants.Currency `json:"currency,omitempty"`
}

// SetAmount writes value into the record slot named by field. Unknown fields
// are ignored; the caller decides whether that is worth logging.
func (r *ExtractedRecord) SetAmount(field constants.Field, value float64) {
	v := value
	switch field {
	case constants.FieldHostEarningsEur:
		r.HostEarningsEur = &v
		r.Currency = constants.CurrencyEUR
	case constants.FieldHostEarningsSek:
		r.HostEarningsSek = &v
		r.Currency = constants.CurrencySEK
	case constants.FieldGuestTotalEur:
		r.GuestTotalEur = &v
	case constants.FieldGuestTotalSek:
		r.GuestTotalSek = &v
	case constants.FieldCleaningFeeEur:
		r.CleaningFeeEur = &v
	case constants.FieldCleaningFeeSek:
		r.CleaningFeeSek = &v
	case constants.FieldServiceFeeEur:
		r.ServiceFeeEur = &v
	case constants.FieldServiceFeeSek:
		r.ServiceFeeSek = &v
	case constants.FieldNightlyRateEur:
		r.NightlyRateEur = &v
	case constants.FieldPropertyTaxEur:
		r.PropertyTaxEur = &v
	case constants.FieldPayoutSek:
		r.PayoutSek = &v
	}
}

// Amount reads the record slot named by field, mirroring SetAmount.
func (r *ExtractedRecord) Amount(field constants.Field) (float64, bool) {
	var p *float64
	switch field {
	case constants.FieldHostEarningsEur:
		p = r.HostEarningsEur
	case constants.FieldHostEarningsSek:
		p = r.HostEarningsSek
	case constants.FieldGuestTotalEur:
		p = r.GuestTotalEur
	case constants.FieldGuestTotalSek:
		p = r.GuestTotalSek
	case constants.FieldCleaningFeeEur:
		p = r.CleaningFeeEur
	case constants.FieldCleaningFeeSek:
		p = r.CleaningFeeSek
	case constants.FieldServiceFeeEur:
		p = r.ServiceFeeEur
	case constants.FieldServiceFeeSek:
		p = r.ServiceFeeSek
	case constants.FieldNightlyRateEur:
		p = r.NightlyRateEur
	case constants.FieldPropertyTaxEur:
		p = r.PropertyTaxEur
	case constants.FieldPayoutSek:
		p = r.PayoutSek
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// ExtractionPath tells callers which strategy produced the record.
type ExtractionPath string

const (
	PathLearned   ExtractionPath = "learned"
	PathHeuristic ExtractionPath = "heuristic"
)

// Result is the full response of one classify-and-extract call.
type Result struct {
	Category   constants.EmailCategory `json:"category"`
	Confidence float64                 `json:"confidence"`
	Fields     ExtractedRecord         `json:"fields"`
	Path       ExtractionPath          `json:"extraction_path"`
}
