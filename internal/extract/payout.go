package extract

import (
	"math"
	"regexp"
	"time"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/textnorm"
)

var (
	payoutSentSv = regexp.MustCompile(`(?i)en utbetalning på\s*([\d\s\x{00a0}\x{202f},.]+)\s*kr`)
	payoutSentEn = regexp.MustCompile(`(?i)a\s*([\d\s,.]+)\s*kr payout (?:was sent|is on its way)`)

	// Remittance breakdowns tie the EUR earnings to the SEK transfer:
	// "€368,60 + €45,60 = 4 612,87 kr".
	payoutBreakdownTwo = regexp.MustCompile(`€\s*([\d\s\x{00a0}\x{202f},.]+?)\s*\+\s*€\s*([\d\s\x{00a0}\x{202f},.]+?)\s*=\s*([\d\s\x{00a0}\x{202f},.]+?)\s*kr`)
	payoutBreakdownOne = regexp.MustCompile(`€\s*([\d\s\x{00a0}\x{202f},.]+?)\s*=\s*([\d\s\x{00a0}\x{202f},.]+?)\s*kr`)

	payoutRangePattern = regexp.MustCompile(`(?i)(\d{1,2})\s+(\p{L}+)\.?\s*[–-]\s*(\d{1,2})\s+(\p{L}+)`)
)

func (e *Engine) extractPayout(rec *entity.ExtractedRecord, msg entity.RawMessage) {
	text := msg.FullText()

	if m := payoutBreakdownTwo.FindStringSubmatch(text); m != nil {
		earnings := textnorm.Amount(m[1])
		cleaning := textnorm.Amount(m[2])
		sek := textnorm.Amount(m[3])
		rec.SetAmount(constants.FieldHostEarningsEur, earnings)
		rec.SetAmount(constants.FieldCleaningFeeEur, cleaning)
		rec.SetAmount(constants.FieldPayoutSek, sek)
		setExchangeRate(rec, earnings+cleaning, sek)
	} else if m := payoutBreakdownOne.FindStringSubmatch(text); m != nil {
		earnings := textnorm.Amount(m[1])
		sek := textnorm.Amount(m[2])
		rec.SetAmount(constants.FieldHostEarningsEur, earnings)
		rec.SetAmount(constants.FieldPayoutSek, sek)
		setExchangeRate(rec, earnings, sek)
	}

	if rec.PayoutSek == nil {
		for _, re := range []*regexp.Regexp{payoutSentSv, payoutSentEn} {
			if m := re.FindStringSubmatch(text); m != nil {
				if v := textnorm.Amount(m[1]); v > 0 {
					rec.SetAmount(constants.FieldPayoutSek, v)
					if rec.HostEarningsEur == nil {
						rec.SetAmount(constants.FieldHostEarningsSek, v)
					}
					break
				}
			}
		}
	}

	e.payoutStayRange(rec, msg)
}

// payoutStayRange reads the "12 maj – 15 maj" stay summary. Payouts arrive
// after the stay, so the year resolution looks backward: the check-in takes
// the anchor's year unless that would put it in the future.
func (e *Engine) payoutStayRange(rec *entity.ExtractedRecord, msg entity.RawMessage) {
	m := payoutRangePattern.FindStringSubmatch(msg.FullText())
	if m == nil {
		return
	}
	in, inOK := pastDate(m[1], m[2], msg)
	if !inOK {
		return
	}
	outDay, outMonth, outOK := dayMonth(m[3], m[4])
	if !outOK {
		return
	}
	out := time.Date(in.Year(), outMonth, outDay, 0, 0, 0, 0, time.UTC)
	if out.Day() != outDay {
		return
	}
	out = adjustCrossYear(in, out, false)
	rec.CheckInDate, rec.CheckOutDate = &in, &out
}

func pastDate(dayRaw, monthRaw string, msg entity.RawMessage) (time.Time, bool) {
	day, month, ok := dayMonth(dayRaw, monthRaw)
	if !ok {
		return time.Time{}, false
	}
	ref := anchorTime(msg)
	t := time.Date(ref.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false
	}
	if t.After(ref) {
		t = t.AddDate(-1, 0, 0)
	}
	return t, true
}

func setExchangeRate(rec *entity.ExtractedRecord, totalEur, sek float64) {
	if totalEur <= 0 || sek <= 0 {
		return
	}
	rate := math.Round(sek/totalEur*10000) / 10000
	rec.ExchangeRate = &rate
}
