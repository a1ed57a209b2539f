package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/habitloop/streakboard/internal/core/domain"
)

var _ domain.ChallengeRepository = (*PostgresChallengeRepository)(nil)

type PostgresChallengeRepository struct {
	db *sqlx.DB
}

func NewPostgresChallengeRepository(db *sqlx.DB) *PostgresChallengeRepository {
	return &PostgresChallengeRepository{db: db}
}

func (r *PostgresChallengeRepository) Create(ctx context.Context, challenge *domain.Challenge) error {
	query := `
		INSERT INTO challenges (id, title, description, created_by, created_at, updated_at)
		VALUES (:id, :title, :description, :created_by, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, challenge)
	return err
}

func (r *PostgresChallengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	var challenge domain.Challenge
	query := `SELECT * FROM challenges WHERE id = $1`

	err := r.db.GetContext(ctx, &challenge, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *PostgresChallengeRepository) List(ctx context.Context) ([]*domain.Challenge, error) {
	challenges := []*domain.Challenge{}

	query := `SELECT * FROM challenges ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &challenges, query); err != nil {
		return nil, err
	}
	return challenges, nil
}

var _ domain.MembershipRepository = (*PostgresMembershipRepository)(nil)

type PostgresMembershipRepository struct {
	db *sqlx.DB
}

func NewPostgresMembershipRepository(db *sqlx.DB) *PostgresMembershipRepository {
	return &PostgresMembershipRepository{db: db}
}

func (r *PostgresMembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	query := `
		INSERT INTO memberships (challenge_id, user_id, joined_at)
		VALUES (:challenge_id, :user_id, :joined_at)`

	_, err := r.db.NamedExecContext(ctx, query, membership)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return domain.ErrAlreadyMember
			}
			if pqErr.Code == "23503" {
				return domain.ErrChallengeNotFound
			}
		}
		return err
	}
	return nil
}

func (r *PostgresMembershipRepository) Exists(ctx context.Context, challengeID, userID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM memberships WHERE challenge_id = $1 AND user_id = $2`

	if err := r.db.GetContext(ctx, &count, query, challengeID, userID); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresMembershipRepository) ListByChallenge(ctx context.Context, challengeID string) ([]*domain.Membership, error) {
	memberships := []*domain.Membership{}

	query := `
		SELECT * FROM memberships
		WHERE challenge_id = $1
		ORDER BY joined_at ASC`

	if err := r.db.SelectContext(ctx, &memberships, query, challengeID); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *PostgresMembershipRepository) ListAll(ctx context.Context) ([]*domain.Membership, error) {
	memberships := []*domain.Membership{}

	query := `SELECT * FROM memberships ORDER BY challenge_id, joined_at ASC`

	if err := r.db.SelectContext(ctx, &memberships, query); err != nil {
		return nil, err
	}
	return memberships, nil
}
