package domain

import (
	"context"
)

type CheckInRepository interface {
	// Upsert writes a check-in keyed by (challenge_id, user_id, day).
	// An existing row for that day gets its status and notes overwritten
	// in place; last write wins.
	Upsert(ctx context.Context, checkIn *CheckIn) error

	// GetByDay retrieves the check-in for an exact (challenge, user, day)
	// triple, or ErrCheckInNotFound.
	GetByDay(ctx context.Context, checkIn *CheckIn) (*CheckIn, error)

	// ListByMember retrieves the full check-in history for a (challenge, user)
	// pair ordered by day ascending.
	ListByMember(ctx context.Context, challengeID, userID string) ([]*CheckIn, error)

	// CreateBatch inserts new rows only, all-or-nothing. A conflicting day
	// fails the whole batch with ErrFreezeConflict. Used for freeze
	// scheduling, where every date is in the future and no upsert-merge
	// ambiguity can arise.
	CreateBatch(ctx context.Context, checkIns []*CheckIn) error
}
