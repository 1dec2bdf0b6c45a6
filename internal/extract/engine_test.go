package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/entity"
)

func testEngine() *Engine {
	return NewEngine(nil, nil)
}

func anchor(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestConfirmationSubjectOnly(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{
		Subject:       "Bokning bekräftad - Anna Svensson anländer 12 maj",
		Sender:        "automated@booking.example.com",
		ReferenceDate: anchor(2025, time.March, 1),
	})

	require.NotNil(t, rec.GuestName)
	assert.Equal(t, "Anna Svensson", *rec.GuestName)
	require.NotNil(t, rec.CheckInDate)
	assert.Equal(t, date(2025, time.May, 12), *rec.CheckInDate)
	assert.Nil(t, rec.CheckOutDate)
	assert.Nil(t, rec.Nights)
}

func TestConfirmationEnglishSubject(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{
		Subject:       "Reservation confirmed - John Smith arrives May 12",
		ReferenceDate: anchor(2025, time.March, 1),
	})

	require.NotNil(t, rec.GuestName)
	assert.Equal(t, "John Smith", *rec.GuestName)
	require.NotNil(t, rec.CheckInDate)
	assert.Equal(t, date(2025, time.May, 12), *rec.CheckInDate)
}

func TestConfirmationPrivateBooking(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{
		Subject: "Bokning bekräftad för Stugan",
	})

	require.NotNil(t, rec.GuestName)
	assert.Equal(t, "Private booking (Stugan)", *rec.GuestName)
}

func TestMoneyPriorityTotalBeatsEarningsLine(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{
		Subject: "Bokning bekräftad - Anna Svensson anländer 12 maj",
		Body:    "TOTALT (EUR) € 389,13\nDu tjänar € 128,50",
	})

	require.NotNil(t, rec.HostEarningsEur)
	assert.InDelta(t, 389.13, *rec.HostEarningsEur, 1e-9)
	assert.Equal(t, constants.CurrencyEUR, rec.Currency)
	assert.Nil(t, rec.HostEarningsSek)
}

func TestMoneyLabeledEarningsLine(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{
		Body: "Du tjänar € 128,50 för vistelsen",
	})

	require.NotNil(t, rec.HostEarningsEur)
	assert.InDelta(t, 128.50, *rec.HostEarningsEur, 1e-9)
}

func TestMoneyBandedFallback(t *testing.T) {
	e := testEngine()
	// No labels anywhere, just a price table. The smallest in-band amount is
	// small enough to be a nightly figure and wins.
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{
		Body: "€ 85,00 per natt\n€ 120,00 avgifter\n€ 45,00 övrigt\n€ 250,00 summa",
	})

	require.NotNil(t, rec.HostEarningsEur)
	assert.InDelta(t, 45.0, *rec.HostEarningsEur, 1e-9)
}

func TestConfirmationLabeledFields(t *testing.T) {
	e := testEngine()
	body := "Gästens totala kostnad: € 450,00\n" +
		"Städavgift: € 45,60\n" +
		"Serviceavgift för värdar: -€ 12,30\n" +
		"Fastighetsskatt: € 8,10\n" +
		"€ 92,15 x 4 nätter\n" +
		"2 gäster\n" +
		"Du tjänar € 368,60"
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{Body: body})

	require.NotNil(t, rec.GuestTotalEur)
	assert.InDelta(t, 450.0, *rec.GuestTotalEur, 1e-9)
	require.NotNil(t, rec.CleaningFeeEur)
	assert.InDelta(t, 45.60, *rec.CleaningFeeEur, 1e-9)
	require.NotNil(t, rec.ServiceFeeEur)
	assert.InDelta(t, 12.30, *rec.ServiceFeeEur, 1e-9)
	require.NotNil(t, rec.PropertyTaxEur)
	assert.InDelta(t, 8.10, *rec.PropertyTaxEur, 1e-9)
	require.NotNil(t, rec.NightlyRateEur)
	assert.InDelta(t, 92.15, *rec.NightlyRateEur, 1e-9)
	require.NotNil(t, rec.GuestCount)
	assert.Equal(t, 2, *rec.GuestCount)
}

func TestConfirmationSekBreakdown(t *testing.T) {
	e := testEngine()
	body := "Utbetalning: 4 238 kr\nTotalt: 5 100 kr\nStädavgift: 400 kr\nServiceavgift: 150 kr"
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{Body: body})

	require.NotNil(t, rec.HostEarningsSek)
	assert.InDelta(t, 4238.0, *rec.HostEarningsSek, 1e-9)
	assert.Equal(t, constants.CurrencySEK, rec.Currency)
	require.NotNil(t, rec.GuestTotalSek)
	assert.InDelta(t, 5100.0, *rec.GuestTotalSek, 1e-9)
	require.NotNil(t, rec.CleaningFeeSek)
	assert.InDelta(t, 400.0, *rec.CleaningFeeSek, 1e-9)
	require.NotNil(t, rec.ServiceFeeSek)
	assert.InDelta(t, 150.0, *rec.ServiceFeeSek, 1e-9)
	assert.Nil(t, rec.HostEarningsEur)
}

func TestConfirmationStayTable(t *testing.T) {
	e := testEngine()
	body := "Incheckning\nmån 12 maj\nUtcheckning\ntors 15 maj\nAntal nätter: 3"
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{
		Body:          body,
		ReferenceDate: anchor(2025, time.March, 1),
	})

	require.NotNil(t, rec.CheckInDate)
	require.NotNil(t, rec.CheckOutDate)
	assert.Equal(t, date(2025, time.May, 12), *rec.CheckInDate)
	assert.Equal(t, date(2025, time.May, 15), *rec.CheckOutDate)
	require.NotNil(t, rec.Nights)
	assert.Equal(t, 3, *rec.Nights)
}

func TestConfirmationCrossYearCheckout(t *testing.T) {
	e := testEngine()
	body := "Incheckning: sön 28 dec.\nUtcheckning: fre 2 jan."
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{
		Body:          body,
		ReferenceDate: anchor(2025, time.December, 20),
	})

	require.NotNil(t, rec.CheckInDate)
	require.NotNil(t, rec.CheckOutDate)
	assert.Equal(t, date(2025, time.December, 28), *rec.CheckInDate)
	assert.Equal(t, date(2026, time.January, 2), *rec.CheckOutDate)
	require.NotNil(t, rec.Nights)
	assert.Equal(t, 5, *rec.Nights)
}

func TestBookingCodeFromText(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.BookingConfirmation, entity.RawMessage{
		Body: "Bekräftelsekod: HMABC12345",
	})

	require.NotNil(t, rec.BookingCode)
	assert.Equal(t, "HMABC12345", *rec.BookingCode)
}

func TestReminderGuestName(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.BookingReminder, entity.RawMessage{
		Subject:       "Bokningspåminnelse: Erik Lund anländer 3 juni",
		ReferenceDate: anchor(2025, time.May, 1),
	})

	require.NotNil(t, rec.GuestName)
	assert.Equal(t, "Erik Lund", *rec.GuestName)
	require.NotNil(t, rec.CheckInDate)
	assert.Equal(t, date(2025, time.June, 3), *rec.CheckInDate)
}

func TestPayoutBreakdownWithCleaning(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.Payout, entity.RawMessage{
		Subject:       "En utbetalning på 4 612,87 kr skickades",
		Body:          "€368,60 + €45,60 = 4 612,87 kr\n12 maj – 15 maj",
		ReferenceDate: anchor(2025, time.May, 16),
	})

	require.NotNil(t, rec.HostEarningsEur)
	assert.InDelta(t, 368.60, *rec.HostEarningsEur, 1e-9)
	require.NotNil(t, rec.CleaningFeeEur)
	assert.InDelta(t, 45.60, *rec.CleaningFeeEur, 1e-9)
	require.NotNil(t, rec.PayoutSek)
	assert.InDelta(t, 4612.87, *rec.PayoutSek, 1e-9)
	require.NotNil(t, rec.ExchangeRate)
	assert.InDelta(t, 11.1368, *rec.ExchangeRate, 1e-4)

	require.NotNil(t, rec.CheckInDate)
	require.NotNil(t, rec.CheckOutDate)
	assert.Equal(t, date(2025, time.May, 12), *rec.CheckInDate)
	assert.Equal(t, date(2025, time.May, 15), *rec.CheckOutDate)
}

func TestPayoutSekOnly(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.Payout, entity.RawMessage{
		Subject: "En utbetalning på 1 350,96 kr skickades",
	})

	require.NotNil(t, rec.PayoutSek)
	assert.InDelta(t, 1350.96, *rec.PayoutSek, 1e-9)
	require.NotNil(t, rec.HostEarningsSek)
	assert.InDelta(t, 1350.96, *rec.HostEarningsSek, 1e-9)
	assert.Nil(t, rec.ExchangeRate)
}

func TestCancellationZeroesEarnings(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.Cancellation, entity.RawMessage{
		Subject:       "Avbokad: 12–15 maj",
		Body:          "Gästen har avbokat sin vistelse. Du tjänar € 128,50 utgår.",
		ReferenceDate: anchor(2025, time.April, 1),
	})

	require.NotNil(t, rec.HostEarningsEur)
	assert.Zero(t, *rec.HostEarningsEur)
	require.NotNil(t, rec.HostEarningsSek)
	assert.Zero(t, *rec.HostEarningsSek)

	require.NotNil(t, rec.CheckInDate)
	require.NotNil(t, rec.CheckOutDate)
	assert.Equal(t, date(2025, time.May, 12), *rec.CheckInDate)
	assert.Equal(t, date(2025, time.May, 15), *rec.CheckOutDate)
}

func TestCancellationPartialPayout(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.Cancellation, entity.RawMessage{
		Body: "Avbokning med delvis utbetalning € 64,25 enligt policyn",
	})

	require.NotNil(t, rec.HostEarningsEur)
	assert.InDelta(t, 64.25, *rec.HostEarningsEur, 1e-9)
	assert.Nil(t, rec.HostEarningsSek)
}

func TestChangeRequestDateBlocks(t *testing.T) {
	e := testEngine()
	body := "URSPRUNGLIGA DATUM\n12 maj 2025 - 15 maj 2025\n" +
		"EFTERFRÅGADE DATUM\n20 augusti 2025 - 25 augusti 2025"
	rec := e.Extract(constants.ChangeRequest, entity.RawMessage{
		Subject: "Maria Öberg vill ändra sin bokning",
		Body:    body,
	})

	require.NotNil(t, rec.GuestName)
	assert.Equal(t, "Maria Öberg", *rec.GuestName)

	require.NotNil(t, rec.OriginalCheckInDate)
	require.NotNil(t, rec.OriginalCheckOutDate)
	assert.Equal(t, date(2025, time.May, 12), *rec.OriginalCheckInDate)
	assert.Equal(t, date(2025, time.May, 15), *rec.OriginalCheckOutDate)

	require.NotNil(t, rec.CheckInDate)
	require.NotNil(t, rec.CheckOutDate)
	assert.Equal(t, date(2025, time.August, 20), *rec.CheckInDate)
	assert.Equal(t, date(2025, time.August, 25), *rec.CheckOutDate)
	require.NotNil(t, rec.Nights)
	assert.Equal(t, 5, *rec.Nights)
}

func TestInvertedDatesAreSwapped(t *testing.T) {
	e := testEngine()
	body := "EFTERFRÅGADE DATUM\n25 augusti 2025 - 20 augusti 2025"
	rec := e.Extract(constants.ChangeRequest, entity.RawMessage{Body: body})

	require.NotNil(t, rec.CheckInDate)
	require.NotNil(t, rec.CheckOutDate)
	assert.True(t, rec.CheckInDate.Before(*rec.CheckOutDate))
	require.NotNil(t, rec.Nights)
	assert.Equal(t, 5, *rec.Nights)
}

func TestModificationGuestAndCode(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.Modification, entity.RawMessage{
		Subject: "DIN BOKNING MED KLARA NILSSON HAR UPPDATERATS",
		Body:    "Se din uppdaterade resplan: https://booking.example.com/details/RESV123456?euid=abc",
	})

	require.NotNil(t, rec.GuestName)
	assert.Equal(t, "Klara Nilsson", *rec.GuestName)
	require.NotNil(t, rec.BookingCode)
	assert.Equal(t, "RESV123456", *rec.BookingCode)
}

func TestUnknownCategoryStillFindsBookingCode(t *testing.T) {
	e := testEngine()
	rec := e.Extract(constants.Unknown, entity.RawMessage{
		Body: "Angående HMXYZ98765 hör av dig.",
	})

	require.NotNil(t, rec.BookingCode)
	assert.Equal(t, "HMXYZ98765", *rec.BookingCode)
	assert.Nil(t, rec.GuestName)
}
