package classify

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/linmodel"
)

// Model is the versioned classifier artifact. Fully reproducible from the
// labeled corpus; replaced whole on retrain, never mutated in place.
type Model struct {
	Version   string          `json:"version"`
	TrainedAt time.Time       `json:"trained_at"`
	Examples  int             `json:"examples"`
	Linear    *linmodel.Model `json:"linear"`
}

// Classifier assigns email categories. Concurrent use is safe: the model
// pointer is swapped atomically and treated as immutable after load.
type Classifier struct {
	model  atomic.Pointer[Model]
	logger *slog.Logger
}

func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger}
}

// SetModel installs a new artifact. nil clears it, dropping back to rules.
func (c *Classifier) SetModel(m *Model) {
	c.model.Store(m)
}

// HasModel reports whether a trained artifact is loaded.
func (c *Classifier) HasModel() bool {
	return c.model.Load() != nil
}

// Classify returns the category and a probability. With a trained model the
// result is the model's argmax; without one the deterministic keyword rules
// decide, and when no rule fires the category is Unknown with confidence 0.
func (c *Classifier) Classify(subject, sender, body string) (constants.EmailCategory, float64) {
	features := ExtractFeatures(subject, sender, body)

	if m := c.model.Load(); m != nil && m.Linear != nil {
		class, prob := m.Linear.Predict(features.Vector())
		if cat, ok := constants.CategoryAt(class); ok {
			c.logger.Debug("classify.model", "category", cat, "confidence", prob)
			return cat, prob
		}
		c.logger.Warn("classify.model_out_of_range", "class", class)
	}

	cat, conf := classifyByRules(features)
	c.logger.Debug("classify.rules", "category", cat, "confidence", conf)
	return cat, conf
}

// TrainModel fits a classifier on the labeled corpus. Deterministic: the
// same examples in the same order produce a byte-identical linear model.
func TrainModel(examples []entity.TrainingExample, cfg linmodel.TrainConfig) (*Model, error) {
	xs := make([][]float64, 0, len(examples))
	ys := make([]int, 0, len(examples))
	for _, ex := range examples {
		idx, ok := constants.CategoryIndex(ex.Category)
		if !ok {
			continue
		}
		xs = append(xs, ExtractFeatures(ex.Subject, ex.Sender, ex.Text).Vector())
		ys = append(ys, idx)
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("train classifier: %d usable examples, need at least 2", len(xs))
	}

	linear := linmodel.Train(xs, ys, constants.NumCategories(), cfg)
	if linear == nil {
		return nil, fmt.Errorf("train classifier: degenerate corpus")
	}
	return &Model{
		Version:   fmt.Sprintf("classifier-%d-examples-%d", constants.NumCategories(), len(xs)),
		TrainedAt: time.Now().UTC(),
		Examples:  len(xs),
		Linear:    linear,
	}, nil
}
