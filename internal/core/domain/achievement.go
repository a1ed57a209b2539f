package domain

import "time"

// Achievement is a static catalog entry. Criteria evaluation happens
// outside this service; we only read what was earned.
type Achievement struct {
	ID          string `json:"id" db:"id"`
	Code        string `json:"code" db:"code"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	IconURL     string `json:"icon_url" db:"icon_url"`
}

type UserAchievement struct {
	AchievementID string    `json:"achievement_id" db:"achievement_id"`
	Code          string    `json:"code" db:"code"`
	Title         string    `json:"title" db:"title"`
	IconURL       string    `json:"icon_url" db:"icon_url"`
	EarnedAt      time.Time `json:"earned_at" db:"earned_at"`
}
