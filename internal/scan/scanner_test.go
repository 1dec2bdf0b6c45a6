package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/entity"
)

func candidatesOfKind(cands []entity.Candidate, kind entity.CandidateKind) []entity.Candidate {
	var out []entity.Candidate
	for _, c := range cands {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func TestScanAmounts(t *testing.T) {
	s := NewScanner(nil, 0)
	text := "TOTALT (EUR) € 389,13 något Du tjänar: 1 350,96 kr och 45.60 övrigt"

	amounts := candidatesOfKind(s.Scan(text), entity.KindAmount)
	require.Len(t, amounts, 3)

	assert.Equal(t, "389,13", amounts[0].RawValue)
	assert.Equal(t, constants.CurrencyEUR, amounts[0].Currency)

	assert.Equal(t, "1 350,96", amounts[1].RawValue)
	assert.Equal(t, constants.CurrencySEK, amounts[1].Currency)

	assert.Equal(t, "45.60", amounts[2].RawValue)
	assert.Equal(t, constants.CurrencyNone, amounts[2].Currency)
}

func TestScanAmountsNoOverlap(t *testing.T) {
	s := NewScanner(nil, 0)
	// The SEK tier must not re-claim digits inside the EUR match, and the
	// unmarked tier must not re-claim either amount.
	text := "€ 128,50 = 1 412,70 kr"
	amounts := candidatesOfKind(s.Scan(text), entity.KindAmount)
	require.Len(t, amounts, 2)
	assert.Equal(t, constants.CurrencyEUR, amounts[0].Currency)
	assert.Equal(t, constants.CurrencySEK, amounts[1].Currency)
	for i, a := range amounts {
		for j, b := range amounts {
			if i != j {
				assert.False(t, a.Overlaps(b.Start, b.End))
			}
		}
	}
}

func TestScanDates(t *testing.T) {
	s := NewScanner(nil, 0)
	text := "Incheckning fre 13 juni 2025 Utcheckning sön 15 juni och 27 juli"

	ds := candidatesOfKind(s.Scan(text), entity.KindDate)
	require.Len(t, ds, 3)

	assert.True(t, ds[0].ExplicitYear)
	assert.Equal(t, 13, ds[0].Day)
	assert.Equal(t, int(time.June), ds[0].Month)
	assert.Equal(t, 2025, ds[0].Year)

	assert.False(t, ds[1].ExplicitYear)
	assert.Equal(t, 15, ds[1].Day)

	assert.False(t, ds[2].ExplicitYear)
	assert.Equal(t, int(time.July), ds[2].Month)
}

func TestScanISODate(t *testing.T) {
	s := NewScanner(nil, 0)
	ds := candidatesOfKind(s.Scan("utbetalning 2025-07-14 klar"), entity.KindDate)
	require.Len(t, ds, 1)
	assert.True(t, ds[0].ExplicitYear)
	assert.Equal(t, 2025, ds[0].Year)
	assert.Equal(t, 7, ds[0].Month)
	assert.Equal(t, 14, ds[0].Day)
}

func TestScanNames(t *testing.T) {
	s := NewScanner(nil, 0)
	names := candidatesOfKind(s.Scan("Bokning bekräftad - Anna Svensson anländer 12 maj"), entity.KindName)
	require.NotEmpty(t, names)
	assert.Equal(t, "Anna Svensson", names[0].RawValue)
}

func TestScanContextWindow(t *testing.T) {
	s := NewScanner(nil, 10)
	text := "aaaaaaaaaaaaaaaaaaaa € 10,00 bbbbbbbbbbbbbbbbbbbb"
	amounts := candidatesOfKind(s.Scan(text), entity.KindAmount)
	require.Len(t, amounts, 1)
	assert.Contains(t, amounts[0].Context, "€ 10,00")
	assert.LessOrEqual(t, len(amounts[0].Context), len("€ 10,00")+20)
}

func TestCleanGuestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"already clean", "Anna Svensson", "Anna Svensson", true},
		{"lowercase input", "anna svensson", "Anna Svensson", true},
		{"currency prefix", "128,50 kr Anna", "Anna", true},
		{"collapses whitespace", "Anna\n  Svensson", "Anna Svensson", true},
		{"hyphenated", "anna-karin berg", "Anna-Karin Berg", true},
		{"swedish letters", "åsa öberg", "Åsa Öberg", true},
		{"too short", "A", "", false},
		{"only junk", "€ 128,50", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanGuestName(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
