package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCheckInNotFound = errors.New("check-in not found")
	ErrInvalidStatus   = errors.New("invalid check-in status")
	ErrInvalidDate     = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrDateInFuture    = errors.New("check-in date cannot be in the future")
	ErrNotesTooLong    = errors.New("check-in notes are too long (max 500 chars)")

	ErrFreezeBatchEmpty    = errors.New("freeze batch cannot be empty")
	ErrFreezeBatchTooLarge = errors.New("freeze batch exceeds the maximum of 3 dates")
	ErrFreezeNotFuture     = errors.New("freeze dates must be strictly in the future")
	ErrFreezeTooFar        = errors.New("freeze dates must be within the 90-day horizon")
	ErrFreezeDuplicateDate = errors.New("freeze batch contains duplicate dates")
	ErrFreezeConflict      = errors.New("a check-in already exists for one of the requested dates")
)

const (
	StatusCompleted = "completed"
	StatusMissed    = "missed"
	StatusFreeze    = "freeze"
	StatusPending   = "pending"

	DayLayout   = "2006-01-02"
	MaxNotesLen = 500

	// MaxFreezeBatch caps a single scheduling call. The cap is per call,
	// not cumulative across calls.
	MaxFreezeBatch = 3

	// FreezeHorizonDays bounds how far ahead freeze days can be booked.
	FreezeHorizonDays = 90
)

// CheckIn is the per-day status record of a user within a challenge.
// At most one row exists per (ChallengeID, UserID, Day); re-submissions
// overwrite the status in place.
type CheckIn struct {
	ID          string    `json:"id" db:"id"`
	ChallengeID string    `json:"challenge_id" db:"challenge_id"`
	UserID      string    `json:"user_id" db:"user_id"`

	Day    time.Time `json:"day" db:"day"`
	Status string    `json:"status" db:"status"`
	Notes  string    `json:"notes" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewCheckIn(challengeID, userID string, day time.Time, status string) *CheckIn {
	now := time.Now().UTC()

	return &CheckIn{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		UserID:      userID,
		Day:         Midnight(day),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (c *CheckIn) Validate() error {
	if strings.TrimSpace(c.ChallengeID) == "" {
		return errors.New("challenge_id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id is required")
	}
	if c.Day.IsZero() {
		return ErrInvalidDate
	}
	switch c.Status {
	case StatusCompleted, StatusMissed, StatusFreeze, StatusPending:
	default:
		return ErrInvalidStatus
	}
	if len(c.Notes) > MaxNotesLen {
		return ErrNotesTooLong
	}
	return nil
}

// IsContinuing reports whether this day keeps a streak alive.
// Freeze days preserve continuity without counting as completions.
func (c *CheckIn) IsContinuing() bool {
	return c.Status == StatusCompleted || c.Status == StatusFreeze
}

// ParseDay parses a YYYY-MM-DD calendar date into a UTC midnight instant.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// Midnight truncates an instant to its UTC calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar day.
func Today() time.Time {
	return Midnight(time.Now())
}
