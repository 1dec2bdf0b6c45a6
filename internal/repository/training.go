package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/villosa/bookingmail/constants"
	"github.com/villosa/bookingmail/internal/common"
	"github.com/villosa/bookingmail/internal/entity"
)

// TrainingExampleRepository is the append-only labeled-message log. Examples
// are never updated or deleted; retraining always replays the whole log in
// insertion order so training stays reproducible.
type TrainingExampleRepository interface {
	Add(ctx context.Context, ex entity.TrainingExample) (uuid.UUID, error)
	List(ctx context.Context) ([]entity.TrainingExample, error)
	Count(ctx context.Context) (int, error)
}

type trainingExampleRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewTrainingExampleRepository(pool *pgxpool.Pool, logger *slog.Logger) TrainingExampleRepository {
	return &trainingExampleRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *trainingExampleRepository) Add(ctx context.Context, ex entity.TrainingExample) (uuid.UUID, error) {
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	labels, err := json.Marshal(ex.Labels)
	if err != nil {
		return uuid.Nil, common.WrapError(err, "encode labels")
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO training_examples (id, subject, sender, body, category, labels)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)`,
		ex.ID, ex.Subject, ex.Sender, ex.Text, string(ex.Category), string(labels))
	if err != nil {
		r.logger.Error("failed to add training example", "id", ex.ID, "error", err)
		return uuid.Nil, common.WrapError(common.ErrDatabase, err.Error())
	}
	return ex.ID, nil
}

func (r *trainingExampleRepository) List(ctx context.Context) ([]entity.TrainingExample, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, subject, sender, body, category, labels, created_at
		FROM training_examples
		ORDER BY created_at, id`)
	if err != nil {
		r.logger.Error("failed to list training examples", "error", err)
		return nil, common.WrapError(common.ErrDatabase, err.Error())
	}
	defer rows.Close()

	var out []entity.TrainingExample
	for rows.Next() {
		var (
			ex       entity.TrainingExample
			category string
			labels   []byte
		)
		if err := rows.Scan(&ex.ID, &ex.Subject, &ex.Sender, &ex.Text, &category, &labels, &ex.CreatedAt); err != nil {
			return nil, common.WrapError(err, "scan training example")
		}
		ex.Category = constants.EmailCategory(category)
		if err := json.Unmarshal(labels, &ex.Labels); err != nil {
			return nil, common.WrapError(err, "decode labels")
		}
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(common.ErrDatabase, err.Error())
	}
	return out, nil
}

func (r *trainingExampleRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM training_examples`).Scan(&n); err != nil {
		return 0, common.WrapError(common.ErrDatabase, err.Error())
	}
	return n, nil
}
