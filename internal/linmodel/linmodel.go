// Package linmodel implements the multinomial logistic regression backing
// both the email-type classifier and the learned field assigner. Training is
// full-batch gradient descent from zero initialization: the same corpus
// always yields the same weights, and inference has no randomness.
package linmodel

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Model holds the fitted weights. Shape is Classes x (Dim+1); the final
// column is the bias. JSON-serializable so artifacts can be stored and
// reloaded byte-identically.
type Model struct {
	Classes int         `json:"classes"`
	Dim     int         `json:"dim"`
	Weights [][]float64 `json:"weights"`
}

// TrainConfig holds the fitting knobs.
type TrainConfig struct {
	Epochs       int
	LearningRate float64
}

// DefaultTrainConfig matches the values the binaries use.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{Epochs: 400, LearningRate: 0.1}
}

// Train fits a softmax classifier over xs (feature vectors of equal length)
// with integer labels ys in [0, classes). Returns nil when there is nothing
// to fit (no rows, single class).
func Train(xs [][]float64, ys []int, classes int, cfg TrainConfig) *Model {
	if len(xs) == 0 || len(xs) != len(ys) || classes < 2 {
		return nil
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = DefaultTrainConfig().Epochs
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = DefaultTrainConfig().LearningRate
	}

	n := len(xs)
	dim := len(xs[0])
	cols := dim + 1

	// Design matrix with a trailing bias column.
	x := mat.NewDense(n, cols, nil)
	for i, row := range xs {
		if len(row) != dim {
			return nil
		}
		for j, v := range row {
			x.Set(i, j, v)
		}
		x.Set(i, dim, 1)
	}

	// One-hot labels.
	y := mat.NewDense(n, classes, nil)
	for i, label := range ys {
		if label < 0 || label >= classes {
			return nil
		}
		y.Set(i, label, 1)
	}

	w := mat.NewDense(classes, cols, nil)
	logits := mat.NewDense(n, classes, nil)
	grad := mat.NewDense(classes, cols, nil)

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		logits.Mul(x, w.T())
		softmaxRows(logits)
		logits.Sub(logits, y)
		grad.Mul(logits.T(), x)
		grad.Scale(cfg.LearningRate/float64(n), grad)
		w.Sub(w, grad)
	}

	weights := make([][]float64, classes)
	for c := 0; c < classes; c++ {
		weights[c] = append([]float64(nil), w.RawRowView(c)...)
	}
	return &Model{Classes: classes, Dim: dim, Weights: weights}
}

// Predict returns the argmax class and its softmax probability. A dimension
// mismatch returns (-1, 0) so callers can treat the model as unavailable.
func (m *Model) Predict(x []float64) (int, float64) {
	probs := m.Probabilities(x)
	if probs == nil {
		return -1, 0
	}
	best, bestP := 0, probs[0]
	for c, p := range probs {
		if p > bestP {
			best, bestP = c, p
		}
	}
	return best, bestP
}

// Probabilities returns the softmax distribution over classes, or nil when
// the input width does not match the model.
func (m *Model) Probabilities(x []float64) []float64 {
	if m == nil || len(x) != m.Dim || len(m.Weights) != m.Classes {
		return nil
	}
	logits := make([]float64, m.Classes)
	for c := 0; c < m.Classes; c++ {
		row := m.Weights[c]
		if len(row) != m.Dim+1 {
			return nil
		}
		z := row[m.Dim] // bias
		for j, v := range x {
			z += row[j] * v
		}
		logits[c] = z
	}
	softmax(logits)
	return logits
}

func softmaxRows(d *mat.Dense) {
	rows, _ := d.Dims()
	for i := 0; i < rows; i++ {
		softmax(d.RawRowView(i))
	}
}

func softmax(z []float64) {
	max := z[0]
	for _, v := range z {
		if v > max {
			max = v
		}
	}
	var sum float64
	for i, v := range z {
		z[i] = math.Exp(v - max)
		sum += z[i]
	}
	for i := range z {
		z[i] /= sum
	}
}
