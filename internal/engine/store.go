package engine

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/villosa/bookingmail/internal/assign"
	"github.com/villosa/bookingmail/internal/classify"
	"github.com/villosa/bookingmail/internal/common"
	"github.com/villosa/bookingmail/internal/repository"
)

// SaveModels serializes both artifacts into the store.
func SaveModels(ctx context.Context, repo repository.ModelArtifactRepository, cm *classify.Model, am *assign.Model) error {
	cp, err := json.Marshal(cm)
	if err != nil {
		return common.WrapError(err, "encode classifier artifact")
	}
	if err := repo.Save(ctx, repository.ModelArtifact{
		Kind:      repository.ArtifactClassifier,
		Version:   cm.Version,
		Payload:   cp,
		TrainedAt: cm.TrainedAt,
	}); err != nil {
		return err
	}

	ap, err := json.Marshal(am)
	if err != nil {
		return common.WrapError(err, "encode assigner artifact")
	}
	return repo.Save(ctx, repository.ModelArtifact{
		Kind:      repository.ArtifactAssigner,
		Version:   am.Version,
		Payload:   ap,
		TrainedAt: am.TrainedAt,
	})
}

// LoadModels restores the newest stored artifacts and installs them. A
// missing artifact is not an error; that path simply stays on rules and
// heuristics.
func (e *Engine) LoadModels(ctx context.Context, repo repository.ModelArtifactRepository) error {
	var cm *classify.Model
	a, err := repo.LoadLatest(ctx, repository.ArtifactClassifier)
	switch {
	case errors.Is(err, common.ErrNotFound):
	case err != nil:
		return err
	default:
		cm = new(classify.Model)
		if err := json.Unmarshal(a.Payload, cm); err != nil {
			return common.WrapError(err, "decode classifier artifact")
		}
	}

	var am *assign.Model
	a, err = repo.LoadLatest(ctx, repository.ArtifactAssigner)
	switch {
	case errors.Is(err, common.ErrNotFound):
	case err != nil:
		return err
	default:
		am = new(assign.Model)
		if err := json.Unmarshal(a.Payload, am); err != nil {
			return common.WrapError(err, "decode assigner artifact")
		}
	}

	e.SetModels(cm, am)
	return nil
}
