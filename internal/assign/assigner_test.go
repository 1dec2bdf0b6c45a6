package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/linmodel"
	"github.com/villosa/bookingmail/internal/scan"
)

// The lines are padded past the context-window radius so each amount keeps
// its own label words and the classes stay separable.
func labeledCorpus() []entity.TrainingExample {
	confirmation := func(earn, clean, total string, earnV, cleanV, totalV float64) entity.TrainingExample {
		return entity.TrainingExample{
			Text: "Hej och tack för att du är värd hos oss denna säsong i år.\n" +
				"Du tjänar € " + earn + " som betalas efter vistelsens slut enligt plan.\n" +
				"Priserna nedan ligger fast under hela perioden utan ändringar.\n" +
				"Städavgift: € " + clean + " debiteras separat enligt villkoren i avtalet.\n" +
				"Mellanraden här handlar om annat och fyller ut meddelandet lite.\n" +
				"TOTALT (EUR) € " + total + " visas längst ned på kvittosidan för perioden.",
			Category: constants.BookingConfirmation,
			Labels: map[constants.Field]float64{
				constants.FieldHostEarningsEur: earnV,
				constants.FieldCleaningFeeEur:  cleanV,
				constants.FieldGuestTotalEur:   totalV,
			},
		}
	}
	payout := func(amount string, v float64) entity.TrainingExample {
		return entity.TrainingExample{
			Text: "Hej, här kommer en avisering från betalningsavdelningen idag.\n" +
				"En utbetalning på " + amount + " kr skickades till ditt bankkonto nu.\n" +
				"Referensen kostade 12,50 tidigare men ingår numera utan avgift.",
			Category: constants.Payout,
			Labels: map[constants.Field]float64{
				constants.FieldPayoutSek: v,
			},
		}
	}
	sekStatement := func(amount string, v float64) entity.TrainingExample {
		return entity.TrainingExample{
			Text: "Din bokning är nu bekräftad och kvittot hittar du här nedan.\n" +
				"Utbetalning: " + amount + " kr beräknas efter avdrag enligt villkor.",
			Category: constants.BookingConfirmation,
			Labels: map[constants.Field]float64{
				constants.FieldHostEarningsSek: v,
			},
		}
	}

	return []entity.TrainingExample{
		confirmation("368,60", "45,60", "450,00", 368.60, 45.60, 450.00),
		confirmation("200,00", "30,00", "260,00", 200.00, 30.00, 260.00),
		confirmation("92,15", "25,00", "130,00", 92.15, 25.00, 130.00),
		payout("1 350,96", 1350.96),
		payout("4 612,87", 4612.87),
		sekStatement("4 238", 4238),
		sekStatement("3 100", 3100),
	}
}

func trainedAssigner(t *testing.T, threshold float64) *Assigner {
	t.Helper()
	m, err := TrainModel(nil, labeledCorpus(), linmodel.TrainConfig{Epochs: 3000, LearningRate: 0.5})
	require.NoError(t, err)

	a := NewAssigner(nil, nil, threshold)
	a.SetModel(m)
	return a
}

func TestTrainAndAssignConfirmation(t *testing.T) {
	a := trainedAssigner(t, 0.4)
	text := "Hej igen inför nästa period, kvittot för vistelsen följer här.\n" +
		"Du tjänar € 512,30 som betalas efter vistelsens slut enligt plan.\n" +
		"Priserna nedan ligger fast under hela perioden utan ändringar.\n" +
		"Städavgift: € 50,00 debiteras separat enligt villkoren i avtalet."

	rec, ok := a.Assign(constants.BookingConfirmation, text)
	require.True(t, ok)

	require.NotNil(t, rec.HostEarningsEur)
	assert.InDelta(t, 512.30, *rec.HostEarningsEur, 1e-9)
	require.NotNil(t, rec.CleaningFeeEur)
	assert.InDelta(t, 50.0, *rec.CleaningFeeEur, 1e-9)
	assert.Equal(t, constants.CurrencyEUR, rec.Currency)
}

func TestTrainAndAssignPayout(t *testing.T) {
	a := trainedAssigner(t, 0.4)
	text := "Hej, här kommer en avisering från betalningsavdelningen idag.\n" +
		"En utbetalning på 2 000,00 kr skickades till ditt bankkonto nu."

	rec, ok := a.Assign(constants.Payout, text)
	require.True(t, ok)
	require.NotNil(t, rec.PayoutSek)
	assert.InDelta(t, 2000.0, *rec.PayoutSek, 1e-9)
}

func TestAssignWithoutModel(t *testing.T) {
	a := NewAssigner(nil, nil, 0)
	assert.False(t, a.HasModel())

	_, ok := a.Assign(constants.BookingConfirmation, "Du tjänar € 100,00")
	assert.False(t, ok)
}

func TestConfidenceGateHoldsBackWeakModel(t *testing.T) {
	// A single near-zero epoch leaves the weights at chance level; nothing
	// should clear the gate.
	m, err := TrainModel(nil, labeledCorpus(), linmodel.TrainConfig{Epochs: 1, LearningRate: 1e-6})
	require.NoError(t, err)

	a := NewAssigner(nil, nil, 0.5)
	a.SetModel(m)

	_, ok := a.Assign(constants.BookingConfirmation, "Du tjänar € 512,30 för vistelsen")
	assert.False(t, ok)
}

func TestTrainDeterminism(t *testing.T) {
	cfg := linmodel.TrainConfig{Epochs: 500, LearningRate: 0.3}
	m1, err := TrainModel(nil, labeledCorpus(), cfg)
	require.NoError(t, err)
	m2, err := TrainModel(nil, labeledCorpus(), cfg)
	require.NoError(t, err)

	require.Equal(t, m1.Linear, m2.Linear)
	assert.Equal(t, m1.Version, m2.Version)
}

func TestTrainRejectsUnlabeledCorpus(t *testing.T) {
	examples := []entity.TrainingExample{
		{
			Text:     "Du tjänar € 368,60 för vistelsen",
			Category: constants.BookingConfirmation,
			Labels:   map[constants.Field]float64{constants.FieldHostEarningsEur: 999.99},
		},
	}
	_, err := TrainModel(nil, examples, linmodel.TrainConfig{})
	require.Error(t, err)
}

func TestCandidateFeatureWidth(t *testing.T) {
	s := scan.NewScanner(nil, 0)
	cands := s.Scan("Du tjänar € 368,60 för vistelsen")
	require.NotEmpty(t, cands)

	v := CandidateFeatures(constants.BookingConfirmation, cands[0], 32)
	assert.Len(t, v, FeatureDim)
}
