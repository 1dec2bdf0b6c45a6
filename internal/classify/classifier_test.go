package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/linmodel"
)

func trainingCorpus() []entity.TrainingExample {
	return []entity.TrainingExample{
		{
			Subject:  "Bokning bekräftad - Anna Svensson anländer 12 maj",
			Sender:   "Airbnb <automated@airbnb.com>",
			Text:     "Din bokning HM123ABC456 är bekräftad. Du tjänar: € 128,50",
			Category: constants.BookingConfirmation,
		},
		{
			Subject:  "Reservation confirmed - John Smith arrives May 30",
			Sender:   "Airbnb <automated@airbnb.com>",
			Text:     "Your booking HM987ZYX654 is confirmed.",
			Category: constants.BookingConfirmation,
		},
		{
			Subject:  "Bokningspåminnelse: Johan anländer snart!",
			Sender:   "Airbnb <automated@airbnb.com>",
			Text:     "Påminnelse om din gäst Johan. HM789XYZ123",
			Category: constants.BookingReminder,
		},
		{
			Subject:  "Påminnelse: din gäst anländer snart",
			Sender:   "Airbnb <automated@airbnb.com>",
			Text:     "Gör dig redo för incheckning.",
			Category: constants.BookingReminder,
		},
		{
			Subject:  "En utbetalning på 15 234,56 kr skickades",
			Sender:   "Airbnb <express@airbnb.com>",
			Text:     "Utbetalning för bokning HM456DEF789 har skickats.",
			Category: constants.Payout,
		},
		{
			Subject:  "En utbetalning på 4 612,87 kr skickades",
			Sender:   "Airbnb <express@airbnb.com>",
			Text:     "€368,60 + €45,60 = 4 612,87 kr",
			Category: constants.Payout,
		},
		{
			Subject:  "Bokning avbokad: 12–14 maj",
			Sender:   "Airbnb <automated@airbnb.com>",
			Text:     "Din bokning HM111AAA222 har avbokats av gästen.",
			Category: constants.Cancellation,
		},
		{
			Subject:  "Reservation cancelled by guest",
			Sender:   "Airbnb <automated@airbnb.com>",
			Text:     "The booking has been cancelled.",
			Category: constants.Cancellation,
		},
		{
			Subject:  "Maria vill ändra sin bokning",
			Sender:   "Airbnb <automated@airbnb.com>",
			Text:     "URSPRUNGLIGA DATUM 12 maj 2025 - 14 maj 2025 EFTERFRÅGADE DATUM 19 maj 2025 - 21 maj 2025",
			Category: constants.ChangeRequest,
		},
		{
			Subject:  "Din bokning har uppdaterats",
			Sender:   "Airbnb <automated@airbnb.com>",
			Text:     "DIN BOKNING MED Erik HAR UPPDATERATS /details/HM55AA66BB",
			Category: constants.Modification,
		},
	}
}

func TestTrainAndClassify(t *testing.T) {
	model, err := TrainModel(trainingCorpus(), linmodel.TrainConfig{Epochs: 2000, LearningRate: 0.5})
	require.NoError(t, err)

	c := NewClassifier(nil)
	c.SetModel(model)
	require.True(t, c.HasModel())

	tests := []struct {
		subject, sender, body string
		want                  constants.EmailCategory
	}{
		{
			"Bokning bekräftad - Lisa Berg anländer 3 juni",
			"Airbnb <automated@airbnb.com>",
			"Din bokning HM222BBB333 är bekräftad. Du tjänar: € 201,00",
			constants.BookingConfirmation,
		},
		{
			"En utbetalning på 2 475,08 kr skickades",
			"Airbnb <express@airbnb.com>",
			"€211,94 = 2 475,08 kr",
			constants.Payout,
		},
		{
			"Bokning avbokad: 3–5 juni",
			"Airbnb <automated@airbnb.com>",
			"Bokningen har avbokats av gästen.",
			constants.Cancellation,
		},
	}
	for _, tt := range tests {
		got, conf := c.Classify(tt.subject, tt.sender, tt.body)
		assert.Equal(t, tt.want, got, tt.subject)
		assert.Greater(t, conf, 0.3)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	model, err := TrainModel(trainingCorpus(), linmodel.TrainConfig{Epochs: 500, LearningRate: 0.5})
	require.NoError(t, err)

	c := NewClassifier(nil)
	c.SetModel(model)

	cat1, conf1 := c.Classify("En utbetalning på 500 kr skickades", "express@airbnb.com", "Utbetalning skickad.")
	for i := 0; i < 10; i++ {
		cat2, conf2 := c.Classify("En utbetalning på 500 kr skickades", "express@airbnb.com", "Utbetalning skickad.")
		assert.Equal(t, cat1, cat2)
		assert.Equal(t, conf1, conf2)
	}
}

func TestTrainDeterministicWeights(t *testing.T) {
	a, err := TrainModel(trainingCorpus(), linmodel.TrainConfig{Epochs: 300, LearningRate: 0.5})
	require.NoError(t, err)
	b, err := TrainModel(trainingCorpus(), linmodel.TrainConfig{Epochs: 300, LearningRate: 0.5})
	require.NoError(t, err)
	assert.Equal(t, a.Linear, b.Linear)
}

func TestRuleFallback(t *testing.T) {
	c := NewClassifier(nil)
	require.False(t, c.HasModel())

	cat, conf := c.Classify("Bokning bekräftad - Anna Svensson anländer 12 maj", "automated@airbnb.com", "")
	assert.Equal(t, constants.BookingConfirmation, cat)
	assert.Greater(t, conf, 0.0)

	cat, conf = c.Classify("hello there", "someone@example.com", "nothing transactional")
	assert.Equal(t, constants.Unknown, cat)
	assert.Zero(t, conf)
}

func TestRuleFallbackCancellationOutranksConfirmation(t *testing.T) {
	c := NewClassifier(nil)
	cat, _ := c.Classify(
		"Bokning avbokad: Anna Svensson",
		"automated@airbnb.com",
		"Din bekräftade bokning har avbokats av gästen.",
	)
	assert.Equal(t, constants.Cancellation, cat)
}

func TestTrainModelNeedsExamples(t *testing.T) {
	_, err := TrainModel(nil, linmodel.TrainConfig{})
	assert.Error(t, err)
}

func TestFeatureVectorWidth(t *testing.T) {
	f := ExtractFeatures("subject", "sender", "body")
	assert.Len(t, f.Vector(), FeatureDim)
}
