package csvseed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villosa/bookingmail/constants"
)

func TestParseSeed(t *testing.T) {
	csv := `category,subject,sender,body,hostEarningsEur,payoutSek
booking_confirmation,"Bokning bekräftad - Anna Svensson anländer 12 maj",automated@airbnb.com,"Du tjänar € 368,60","368,60",
payout,"En utbetalning på 1 350,96 kr skickades",express@airbnb.com,"Utbetalningen är på väg",,"1 350,96"
okänd,"Något annat",noreply@airbnb.com,"Hej",,
`
	examples, err := Parse(strings.NewReader(csv), nil)
	require.NoError(t, err)
	require.Len(t, examples, 2)

	first := examples[0]
	assert.Equal(t, constants.BookingConfirmation, first.Category)
	assert.Equal(t, "automated@airbnb.com", first.Sender)
	assert.InDelta(t, 368.60, first.Labels[constants.FieldHostEarningsEur], 1e-9)
	assert.NotContains(t, first.Labels, constants.FieldPayoutSek)

	second := examples[1]
	assert.Equal(t, constants.Payout, second.Category)
	assert.InDelta(t, 1350.96, second.Labels[constants.FieldPayoutSek], 1e-9)
}

func TestParseSeedSwedishCategoryNames(t *testing.T) {
	csv := "category,subject,body\nbekräftad,Bokning bekräftad,hej\n"
	examples, err := Parse(strings.NewReader(csv), nil)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, constants.BookingConfirmation, examples[0].Category)
}

func TestParseSeedMissingColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("subject,body\na,b\n"), nil)
	require.Error(t, err)
}
