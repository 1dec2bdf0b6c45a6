// Package engine wires classification, scanning and both extraction paths
// into the classify-and-extract operation the binaries expose.
package engine

import (
	"log/slog"
	"strings"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/assign"
	"github.com/villosa/bookingmail/internal/classify"
	"github.com/villosa/bookingmail/internal/common"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/extract"
	"github.com/villosa/bookingmail/internal/linmodel"
	"github.com/villosa/bookingmail/internal/scan"
	"github.com/villosa/bookingmail/internal/textnorm"
)

// Engine owns the classifier and both extraction paths. Safe for concurrent
// use; model swaps are atomic inside the owned components.
type Engine struct {
	logger     *slog.Logger
	scanner    *scan.Scanner
	classifier *classify.Classifier
	heuristic  *extract.Engine
	assigner   *assign.Assigner
}

func New(logger *slog.Logger, cfg common.EngineConfig) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	scanner := scan.NewScanner(logger, cfg.ContextWindow)
	return &Engine{
		logger:     logger,
		scanner:    scanner,
		classifier: classify.NewClassifier(logger),
		heuristic:  extract.NewEngine(logger, scanner),
		assigner:   assign.NewAssigner(logger, scanner, cfg.AssignConfidence),
	}
}

// SetModels installs trained artifacts. Either may be nil to clear that
// path; extraction then stays on rules and heuristics.
func (e *Engine) SetModels(cm *classify.Model, am *assign.Model) {
	e.classifier.SetModel(cm)
	e.assigner.SetModel(am)
}

// HasModels reports whether both trained artifacts are loaded.
func (e *Engine) HasModels() bool {
	return e.classifier.HasModel() && e.assigner.HasModel()
}

// ClassifyAndExtract cleans, classifies and extracts one message. The only
// error it returns is malformed input; extraction itself degrades field by
// field instead of failing.
func (e *Engine) ClassifyAndExtract(msg entity.RawMessage) (entity.Result, error) {
	if strings.TrimSpace(msg.Subject) == "" && strings.TrimSpace(msg.Body) == "" {
		return entity.Result{}, common.MalformedInput("subject and body are both empty")
	}

	cleaned := msg
	cleaned.Subject = textnorm.CleanForExtraction(msg.Subject)
	cleaned.Body = textnorm.CleanForExtraction(msg.Body)

	cat, conf := e.classifier.Classify(cleaned.Subject, cleaned.Sender, cleaned.Body)

	rec := e.heuristic.Extract(cat, cleaned)
	path := entity.PathHeuristic

	// Cancelled stays keep their zeroed earnings; the learned path only
	// refines categories where money is actually owed.
	if cat != constants.Cancellation {
		if learned, ok := e.assigner.Assign(cat, cleaned.FullText()); ok {
			mergeAmounts(&rec, learned)
			path = entity.PathLearned
		}
	}

	e.logger.Info("engine.extract",
		"category", cat,
		"confidence", conf,
		"path", path,
	)
	return entity.Result{Category: cat, Confidence: conf, Fields: rec, Path: path}, nil
}

// Train fits both artifacts from the labeled log and installs them.
func (e *Engine) Train(examples []entity.TrainingExample, cfg linmodel.TrainConfig) (*classify.Model, *assign.Model, error) {
	cm, err := classify.TrainModel(examples, cfg)
	if err != nil {
		return nil, nil, err
	}
	am, err := assign.TrainModel(e.scanner, examples, cfg)
	if err != nil {
		return nil, nil, err
	}
	e.SetModels(cm, am)
	e.logger.Info("engine.trained",
		"classifier_version", cm.Version,
		"assigner_version", am.Version,
		"examples", len(examples),
	)
	return cm, am, nil
}

// mergeAmounts lets learned money fields override their heuristic values.
// The overriding record decides the earnings currency.
func mergeAmounts(dst *entity.ExtractedRecord, learned entity.ExtractedRecord) {
	for _, f := range constants.AmountFields {
		if f == constants.FieldOther {
			continue
		}
		if v, ok := learned.Amount(f); ok {
			dst.SetAmount(f, v)
		}
	}
	if learned.HostEarningsEur != nil && learned.HostEarningsSek == nil {
		dst.HostEarningsSek = nil
		dst.Currency = constants.CurrencyEUR
	}
	if learned.HostEarningsSek != nil && learned.HostEarningsEur == nil {
		dst.HostEarningsEur = nil
		dst.Currency = constants.CurrencySEK
	}
}
