package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrChallengeTitleEmpty = errors.New("challenge title cannot be empty")
	ErrChallengeTitleLong  = errors.New("challenge title is too long (max 100 chars)")
	ErrChallengeDescLong   = errors.New("challenge description is too long (max 500 chars)")
	ErrNotMember           = errors.New("user is not a member of this challenge")
	ErrAlreadyMember       = errors.New("user is already a member of this challenge")
)

const (
	MaxChallengeTitleLen = 100
	MaxChallengeDescLen  = 500
)

type Challenge struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Membership authorizes a user to check in on a challenge. It is the
// precondition for every check-in and freeze operation; callers never
// auto-provision it.
type Membership struct {
	ChallengeID string    `json:"challenge_id" db:"challenge_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	JoinedAt    time.Time `json:"joined_at" db:"joined_at"`
}

func NewChallenge(createdBy, title, description string) (*Challenge, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return nil, ErrChallengeTitleEmpty
	}
	if len(title) > MaxChallengeTitleLen {
		return nil, ErrChallengeTitleLong
	}
	if len(description) > MaxChallengeDescLen {
		return nil, ErrChallengeDescLong
	}
	if strings.TrimSpace(createdBy) == "" {
		return nil, errors.New("challenge creator is required")
	}

	now := time.Now().UTC()
	return &Challenge{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func NewMembership(challengeID, userID string) *Membership {
	return &Membership{
		ChallengeID: challengeID,
		UserID:      userID,
		JoinedAt:    time.Now().UTC(),
	}
}
