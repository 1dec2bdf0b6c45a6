package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/villosa/bookingmail/internal/common"
)

// Artifact kinds. One row per trained model; loading always takes the newest
// row of a kind, so rollback is an insert of the previous payload.
const (
	ArtifactClassifier = "classifier"
	ArtifactAssigner   = "assigner"
)

// ModelArtifact is a stored, versioned model payload (the JSON form of the
// classify or assign model).
type ModelArtifact struct {
	Kind      string
	Version   string
	Payload   []byte
	TrainedAt time.Time
}

type ModelArtifactRepository interface {
	Save(ctx context.Context, a ModelArtifact) error
	LoadLatest(ctx context.Context, kind string) (ModelArtifact, error)
}

type modelArtifactRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewModelArtifactRepository(pool *pgxpool.Pool, logger *slog.Logger) ModelArtifactRepository {
	return &modelArtifactRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *modelArtifactRepository) Save(ctx context.Context, a ModelArtifact) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO model_artifacts (kind, version, payload, trained_at)
		VALUES ($1, $2, $3::jsonb, $4)`,
		a.Kind, a.Version, string(a.Payload), a.TrainedAt)
	if err != nil {
		r.logger.Error("failed to save model artifact", "kind", a.Kind, "version", a.Version, "error", err)
		return common.WrapError(common.ErrDatabase, err.Error())
	}
	r.logger.Info("model artifact saved", "kind", a.Kind, "version", a.Version)
	return nil
}

func (r *modelArtifactRepository) LoadLatest(ctx context.Context, kind string) (ModelArtifact, error) {
	var a ModelArtifact
	err := r.pool.QueryRow(ctx, `
		SELECT kind, version, payload, trained_at
		FROM model_artifacts
		WHERE kind = $1
		ORDER BY id DESC
		LIMIT 1`, kind).Scan(&a.Kind, &a.Version, &a.Payload, &a.TrainedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ModelArtifact{}, common.WrapError(common.ErrNotFound, "no "+kind+" artifact")
	}
	if err != nil {
		return ModelArtifact{}, common.WrapError(common.ErrDatabase, err.Error())
	}
	return a, nil
}
