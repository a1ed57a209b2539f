package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/habitloop/streakboard/internal/core/domain"
)

var _ domain.CheckInRepository = (*PostgresCheckInRepository)(nil)

type PostgresCheckInRepository struct {
	db *sqlx.DB
}

func NewPostgresCheckInRepository(db *sqlx.DB) *PostgresCheckInRepository {
	return &PostgresCheckInRepository{db: db}
}

// Upsert relies on the unique index over (challenge_id, user_id, day) for
// last-write-wins semantics: the conflicting row keeps its id and
// created_at, only status, notes and updated_at are overwritten.
func (r *PostgresCheckInRepository) Upsert(ctx context.Context, checkIn *domain.CheckIn) error {
	if checkIn.ID == "" {
		checkIn.ID = uuid.NewString()
	}

	query := `
		INSERT INTO check_ins (
			id, challenge_id, user_id,
			day, status, notes,
			created_at, updated_at
		) VALUES (
			:id, :challenge_id, :user_id,
			:day, :status, :notes,
			:created_at, :updated_at
		)
		ON CONFLICT (challenge_id, user_id, day) DO UPDATE
		SET status     = EXCLUDED.status,
		    notes      = EXCLUDED.notes,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, checkIn)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return domain.ErrChallengeNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresCheckInRepository) GetByDay(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error) {
	var found domain.CheckIn
	query := `
		SELECT * FROM check_ins
		WHERE challenge_id = $1 AND user_id = $2 AND day = $3`

	err := r.db.GetContext(ctx, &found, query, checkIn.ChallengeID, checkIn.UserID, checkIn.Day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresCheckInRepository) ListByMember(ctx context.Context, challengeID, userID string) ([]*domain.CheckIn, error) {
	checkIns := []*domain.CheckIn{}

	query := `
		SELECT * FROM check_ins
		WHERE challenge_id = $1 AND user_id = $2
		ORDER BY day ASC`

	err := r.db.SelectContext(ctx, &checkIns, query, challengeID, userID)
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

// CreateBatch inserts freeze rows inside a single transaction: one
// conflicting day rolls the whole batch back.
func (r *PostgresCheckInRepository) CreateBatch(ctx context.Context, checkIns []*domain.CheckIn) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO check_ins (
			id, challenge_id, user_id,
			day, status, notes,
			created_at, updated_at
		) VALUES (
			:id, :challenge_id, :user_id,
			:day, :status, :notes,
			:created_at, :updated_at
		)`

	for _, checkIn := range checkIns {
		if checkIn.ID == "" {
			checkIn.ID = uuid.NewString()
		}
		if _, err := tx.NamedExecContext(ctx, query, checkIn); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				if pqErr.Code == "23505" {
					return domain.ErrFreezeConflict
				}
				if pqErr.Code == "23503" {
					return domain.ErrChallengeNotFound
				}
			}
			return err
		}
	}

	return tx.Commit()
}
