package domain

import (
	"errors"
	"time"
)

// ErrMetricsStale signals that a check-in write committed but the
// synchronous recompute that follows it failed. The caller knows the
// check-in persisted and that the stored metrics may lag behind it.
var ErrMetricsStale = errors.New("check-in saved but metrics recompute failed")

// Metrics is the denormalized per-membership projection the leaderboard
// ranks on. It is owned by the metrics service: everything else reads it,
// nothing else writes it.
type Metrics struct {
	ChallengeID string `json:"challenge_id" db:"challenge_id"`
	UserID      string `json:"user_id" db:"user_id"`

	CurrentStreak    int     `json:"current_streak" db:"current_streak"`
	BestStreak       int     `json:"best_streak" db:"best_streak"`
	CompletionRate   float64 `json:"completion_rate" db:"completion_rate"`
	TotalCompletions int     `json:"total_completions" db:"total_completions"`
	MissedDays       int     `json:"missed_days" db:"missed_days"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
