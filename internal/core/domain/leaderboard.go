package domain

import "errors"

var ErrInvalidSortCriterion = errors.New("invalid sort criterion")

// Supported leaderboard sort criteria. All of them rank descending on the
// selected metric; ties keep insertion order.
const (
	SortByCurrentStreak  = "current-streak"
	SortByBestStreak     = "best-streak"
	SortByCompletionRate = "completion-rate"
	SortByMissedDays     = "missed-days"
)

// LeaderboardLimit caps every leaderboard read.
const LeaderboardLimit = 20

// ParseSortCriterion validates a criterion coming from the request layer.
// An empty value defaults to current-streak.
func ParseSortCriterion(s string) (string, error) {
	switch s {
	case "":
		return SortByCurrentStreak, nil
	case SortByCurrentStreak, SortByBestStreak, SortByCompletionRate, SortByMissedDays:
		return s, nil
	default:
		return "", ErrInvalidSortCriterion
	}
}

// LeaderboardEntry is computed per request and never persisted.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`

	CurrentStreak    int     `json:"current_streak"`
	BestStreak       int     `json:"best_streak"`
	CompletionRate   float64 `json:"completion_rate"`
	TotalCompletions int     `json:"total_completions"`
	MissedDays       int     `json:"missed_days"`

	Achievements []*UserAchievement `json:"achievements"`
}
