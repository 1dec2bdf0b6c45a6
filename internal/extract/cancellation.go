package extract

import (
	"regexp"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/textnorm"
)

var (
	// "Avbokad: 12–15 maj" style compact ranges share one month token.
	cancelCompactRange = regexp.MustCompile(`(?i)(\d{1,2})\s*[–-]\s*(\d{1,2})\s+(\p{L}+)`)

	partialPayoutEur = regexp.MustCompile(`(?i)(?:delvis utbetalning|delutbetalning|partial payout)\D*?€\s*([\d\s\x{00a0}\x{202f},.]+)`)
	partialPayoutSek = regexp.MustCompile(`(?i)(?:delvis utbetalning|delutbetalning|partial payout)\D*?([\d\s\x{00a0}\x{202f},.]+)\s*kr`)
)

// extractCancellation zeroes the earnings figures: a cancelled stay earned
// nothing unless the message itself claims a partial payout. Dates are kept
// when present so the record can be matched against the original booking.
func (e *Engine) extractCancellation(rec *entity.ExtractedRecord, msg entity.RawMessage) {
	text := msg.FullText()

	switch {
	case partialPayoutEur.MatchString(text):
		m := partialPayoutEur.FindStringSubmatch(text)
		if v := textnorm.Amount(m[1]); v > 0 {
			rec.SetAmount(constants.FieldHostEarningsEur, v)
		}
	case partialPayoutSek.MatchString(text):
		m := partialPayoutSek.FindStringSubmatch(text)
		if v := textnorm.Amount(m[1]); v > 0 {
			rec.SetAmount(constants.FieldHostEarningsSek, v)
		}
	}
	if rec.HostEarningsEur == nil && rec.HostEarningsSek == nil {
		zero := 0.0
		rec.HostEarningsEur = &zero
		zeroSek := 0.0
		rec.HostEarningsSek = &zeroSek
	}

	e.cancellationDates(rec, msg)
}

func (e *Engine) cancellationDates(rec *entity.ExtractedRecord, msg entity.RawMessage) {
	if m := payoutRangePattern.FindStringSubmatch(msg.Subject); m != nil {
		in, inOK := datedFromGroups(m[1], m[2], "", msg)
		out, outOK := datedFromGroups(m[3], m[4], "", msg)
		if inOK && outOK {
			out = adjustCrossYear(in, out, false)
			rec.CheckInDate, rec.CheckOutDate = &in, &out
			return
		}
	}
	if m := cancelCompactRange.FindStringSubmatch(msg.Subject); m != nil {
		in, inOK := datedFromGroups(m[1], m[3], "", msg)
		out, outOK := datedFromGroups(m[2], m[3], "", msg)
		if inOK && outOK {
			out = adjustCrossYear(in, out, false)
			rec.CheckInDate, rec.CheckOutDate = &in, &out
		}
	}
}
