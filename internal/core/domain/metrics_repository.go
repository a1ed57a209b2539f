package domain

import (
	"context"
	"errors"
)

var ErrMetricsNotFound = errors.New("metrics not found")

type MetricsRepository interface {
	// Get retrieves the metrics row for a (challenge, user) pair, or
	// ErrMetricsNotFound before the first recompute.
	Get(ctx context.Context, challengeID, userID string) (*Metrics, error)

	// Upsert writes the metrics row keyed by (challenge_id, user_id),
	// replacing any previous values atomically.
	Upsert(ctx context.Context, metrics *Metrics) error

	// ListByChallenge retrieves all metrics rows of a challenge in row
	// creation order, so that leaderboard ties stay deterministic.
	ListByChallenge(ctx context.Context, challengeID string) ([]*Metrics, error)
}
