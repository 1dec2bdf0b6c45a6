package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/villosa/bookingmail/internal/entity"
)

// Service turns extraction results into an XLSX workbook for the host's
// bookkeeping.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportResultsXLSX returns an XLSX workbook (as bytes) with one row per
// extraction result. Absent fields become empty cells, never zeros, so a
// missing amount is distinguishable from a cancelled one.
func (s *Service) ExportResultsXLSX(results []entity.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Bookings"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Category",
		"Confidence",
		"Guest",
		"Booking Code",
		"Check-in",
		"Check-out",
		"Nights",
		"Guests",
		"Host Earnings (EUR)",
		"Host Earnings (SEK)",
		"Guest Total (EUR)",
		"Cleaning Fee (EUR)",
		"Service Fee (EUR)",
		"Payout (SEK)",
		"Exchange Rate",
		"Path",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, res := range results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		rec := res.Fields
		write(1, string(res.Category))
		write(2, res.Confidence)
		write(3, stringOrEmpty(rec.GuestName))
		write(4, stringOrEmpty(rec.BookingCode))
		write(5, dateOrEmpty(rec.CheckInDate))
		write(6, dateOrEmpty(rec.CheckOutDate))
		writeInt(write, 7, rec.Nights)
		writeInt(write, 8, rec.GuestCount)
		writeFloat(write, 9, rec.HostEarningsEur)
		writeFloat(write, 10, rec.HostEarningsSek)
		writeFloat(write, 11, rec.GuestTotalEur)
		writeFloat(write, 12, rec.CleaningFeeEur)
		writeFloat(write, 13, rec.ServiceFeeEur)
		writeFloat(write, 14, rec.PayoutSek)
		writeFloat(write, 15, rec.ExchangeRate)
		write(16, string(res.Path))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 22)
	_ = f.SetColWidth(sheet, "C", "C", 28)
	_ = f.SetColWidth(sheet, "D", "D", 14)
	_ = f.SetColWidth(sheet, "E", "F", 12)
	_ = f.SetColWidth(sheet, "I", "O", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func stringOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func dateOrEmpty(p *time.Time) string {
	if p == nil || p.IsZero() {
		return ""
	}
	return p.Format("2006-01-02")
}

func writeInt(write func(int, any), col int, p *int) {
	if p != nil {
		write(col, *p)
	}
}

func writeFloat(write func(int, any), col int, p *float64) {
	if p != nil {
		write(col, *p)
	}
}
