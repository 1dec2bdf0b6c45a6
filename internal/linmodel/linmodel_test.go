package linmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func separableCorpus() ([][]float64, []int) {
	xs := [][]float64{
		{1, 0, 0}, {1, 0, 0.1}, {1, 0.1, 0},
		{0, 1, 0}, {0, 1, 0.1}, {0.1, 1, 0},
		{0, 0, 1}, {0.1, 0, 1}, {0, 0.1, 1},
	}
	ys := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	return xs, ys
}

func TestTrainSeparable(t *testing.T) {
	xs, ys := separableCorpus()
	m := Train(xs, ys, 3, DefaultTrainConfig())
	require.NotNil(t, m)

	for i, x := range xs {
		class, prob := m.Predict(x)
		assert.Equal(t, ys[i], class, "row %d", i)
		assert.Greater(t, prob, 0.5)
	}
}

func TestTrainDeterministic(t *testing.T) {
	xs, ys := separableCorpus()
	a := Train(xs, ys, 3, DefaultTrainConfig())
	b := Train(xs, ys, 3, DefaultTrainConfig())
	require.NotNil(t, a)
	require.NotNil(t, b)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
}

func TestTrainRejectsBadInput(t *testing.T) {
	assert.Nil(t, Train(nil, nil, 3, TrainConfig{}))
	assert.Nil(t, Train([][]float64{{1}}, []int{0}, 1, TrainConfig{}))
	assert.Nil(t, Train([][]float64{{1}}, []int{5}, 2, TrainConfig{}))
	assert.Nil(t, Train([][]float64{{1}, {1, 2}}, []int{0, 1}, 2, TrainConfig{}))
}

func TestPredictDimensionMismatch(t *testing.T) {
	xs, ys := separableCorpus()
	m := Train(xs, ys, 3, DefaultTrainConfig())
	require.NotNil(t, m)

	class, prob := m.Predict([]float64{1})
	assert.Equal(t, -1, class)
	assert.Zero(t, prob)
}

func TestModelRoundTripsThroughJSON(t *testing.T) {
	xs, ys := separableCorpus()
	m := Train(xs, ys, 3, DefaultTrainConfig())
	require.NotNil(t, m)

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	var back Model
	require.NoError(t, json.Unmarshal(raw, &back))

	class, _ := back.Predict(xs[4])
	assert.Equal(t, 1, class)
}
