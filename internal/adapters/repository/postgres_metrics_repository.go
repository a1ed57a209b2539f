package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/habitloop/streakboard/internal/core/domain"
)

var _ domain.MetricsRepository = (*PostgresMetricsRepository)(nil)

type PostgresMetricsRepository struct {
	db *sqlx.DB
}

func NewPostgresMetricsRepository(db *sqlx.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) Get(ctx context.Context, challengeID, userID string) (*domain.Metrics, error) {
	var metrics domain.Metrics
	query := `
		SELECT challenge_id, user_id, current_streak, best_streak,
		       completion_rate, total_completions, missed_days, updated_at
		FROM metrics
		WHERE challenge_id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &metrics, query, challengeID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMetricsNotFound
		}
		return nil, err
	}
	return &metrics, nil
}

// Upsert replaces the row for a (challenge, user) pair. created_at is kept
// from the first insert so ListByChallenge stays in insertion order.
func (r *PostgresMetricsRepository) Upsert(ctx context.Context, metrics *domain.Metrics) error {
	query := `
		INSERT INTO metrics (
			challenge_id, user_id, current_streak, best_streak,
			completion_rate, total_completions, missed_days,
			created_at, updated_at
		) VALUES (
			:challenge_id, :user_id, :current_streak, :best_streak,
			:completion_rate, :total_completions, :missed_days,
			:updated_at, :updated_at
		)
		ON CONFLICT (challenge_id, user_id) DO UPDATE
		SET current_streak    = EXCLUDED.current_streak,
		    best_streak       = EXCLUDED.best_streak,
		    completion_rate   = EXCLUDED.completion_rate,
		    total_completions = EXCLUDED.total_completions,
		    missed_days       = EXCLUDED.missed_days,
		    updated_at        = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, metrics)
	return err
}

func (r *PostgresMetricsRepository) ListByChallenge(ctx context.Context, challengeID string) ([]*domain.Metrics, error) {
	rows := []*domain.Metrics{}

	query := `
		SELECT challenge_id, user_id, current_streak, best_streak,
		       completion_rate, total_completions, missed_days, updated_at
		FROM metrics
		WHERE challenge_id = $1
		ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &rows, query, challengeID); err != nil {
		return nil, err
	}
	return rows, nil
}
