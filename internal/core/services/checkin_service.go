package services

import (
	"context"
	"fmt"

	"github.com/habitloop/streakboard/internal/core/domain"
	"github.com/habitloop/streakboard/internal/logger"
)

// CheckInService is the single entry point for daily check-in writes. It
// validates membership, upserts the day's row and recomputes the metrics
// projection synchronously, so a leaderboard read that follows a
// successful submit always sees the new streak.
type CheckInService struct {
	checkInRepo    domain.CheckInRepository
	membershipRepo domain.MembershipRepository
	metrics        *MetricsService
}

func NewCheckInService(checkInRepo domain.CheckInRepository, membershipRepo domain.MembershipRepository, metrics *MetricsService) *CheckInService {
	return &CheckInService{
		checkInRepo:    checkInRepo,
		membershipRepo: membershipRepo,
		metrics:        metrics,
	}
}

type SubmitCheckInInput struct {
	ChallengeID string
	UserID      string
	Date        string
	Status      string
	Notes       string
}

// Submit applies a completed or missed check-in for a calendar day. The
// write is keyed on (challenge, user, day): resubmitting overwrites the
// status in place, last write wins. Freeze days go through FreezeService.
func (s *CheckInService) Submit(ctx context.Context, input SubmitCheckInInput) error {
	switch input.Status {
	case domain.StatusCompleted, domain.StatusMissed:
	default:
		return domain.ErrInvalidStatus
	}

	day, err := domain.ParseDay(input.Date)
	if err != nil {
		return err
	}
	// Past dates are fine (admin backdate); future days belong to the
	// freeze scheduler.
	if day.After(domain.Today()) {
		return domain.ErrDateInFuture
	}

	isMember, err := s.membershipRepo.Exists(ctx, input.ChallengeID, input.UserID)
	if err != nil {
		return fmt.Errorf("checkin: membership lookup: %w", err)
	}
	if !isMember {
		return domain.ErrNotMember
	}

	checkIn := domain.NewCheckIn(input.ChallengeID, input.UserID, day, input.Status)
	checkIn.Notes = input.Notes
	if err := checkIn.Validate(); err != nil {
		return err
	}

	if err := s.checkInRepo.Upsert(ctx, checkIn); err != nil {
		return fmt.Errorf("checkin: upserting %s: %w", input.Date, err)
	}

	if _, err := s.metrics.Recompute(ctx, input.ChallengeID, input.UserID); err != nil {
		// The check-in row is already committed. Surface this distinctly
		// so the caller knows the write landed even though the stored
		// metrics lag behind it.
		logger.S.Warnw("metrics recompute failed after check-in write",
			"challenge_id", input.ChallengeID,
			"user_id", input.UserID,
			"date", input.Date,
			"error", err,
		)
		return fmt.Errorf("%w: %w", domain.ErrMetricsStale, err)
	}

	return nil
}

// History returns the caller's full check-in history for a challenge,
// ordered by day ascending.
func (s *CheckInService) History(ctx context.Context, challengeID, userID string) ([]*domain.CheckIn, error) {
	isMember, err := s.membershipRepo.Exists(ctx, challengeID, userID)
	if err != nil {
		return nil, fmt.Errorf("checkin: membership lookup: %w", err)
	}
	if !isMember {
		return nil, domain.ErrNotMember
	}

	return s.checkInRepo.ListByMember(ctx, challengeID, userID)
}
