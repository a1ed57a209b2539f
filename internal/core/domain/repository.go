package domain

import "context"

type ChallengeRepository interface {
	// Create persists a new challenge.
	Create(ctx context.Context, challenge *Challenge) error

	// GetByID retrieves a challenge by its unique identifier.
	GetByID(ctx context.Context, id string) (*Challenge, error)

	// List retrieves all challenges, newest first.
	List(ctx context.Context) ([]*Challenge, error)
}

type MembershipRepository interface {
	// Create persists a new membership. Returns ErrAlreadyMember when the
	// (challenge, user) pair already exists.
	Create(ctx context.Context, membership *Membership) error

	// Exists reports whether the user is a member of the challenge.
	Exists(ctx context.Context, challengeID, userID string) (bool, error)

	// ListByChallenge retrieves all memberships of a challenge in join order.
	ListByChallenge(ctx context.Context, challengeID string) ([]*Membership, error)

	// ListAll retrieves every membership across challenges. Used by the
	// nightly metrics reconciliation sweep.
	ListAll(ctx context.Context) ([]*Membership, error)
}
