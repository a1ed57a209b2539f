package services

import (
	"context"
	"fmt"

	"github.com/habitloop/streakboard/internal/core/domain"
)

// FreezeService books future freeze days. A freeze preserves streak
// continuity when its date arrives but never counts as a completion.
type FreezeService struct {
	checkInRepo    domain.CheckInRepository
	membershipRepo domain.MembershipRepository
}

func NewFreezeService(checkInRepo domain.CheckInRepository, membershipRepo domain.MembershipRepository) *FreezeService {
	return &FreezeService{
		checkInRepo:    checkInRepo,
		membershipRepo: membershipRepo,
	}
}

// Schedule validates and inserts one freeze row per date, all-or-nothing.
// Every date must be strictly after today and inside the 90-day horizon,
// and a single call takes at most 3 dates. No metrics recompute happens
// here: a future freeze only matters once its date is reached.
func (s *FreezeService) Schedule(ctx context.Context, challengeID, userID string, dates []string) (int, error) {
	if len(dates) == 0 {
		return 0, domain.ErrFreezeBatchEmpty
	}
	if len(dates) > domain.MaxFreezeBatch {
		return 0, domain.ErrFreezeBatchTooLarge
	}

	today := domain.Today()
	horizon := today.AddDate(0, 0, domain.FreezeHorizonDays)

	seen := make(map[string]bool, len(dates))
	checkIns := make([]*domain.CheckIn, 0, len(dates))

	for _, raw := range dates {
		day, err := domain.ParseDay(raw)
		if err != nil {
			return 0, err
		}
		if !day.After(today) {
			return 0, domain.ErrFreezeNotFuture
		}
		if day.After(horizon) {
			return 0, domain.ErrFreezeTooFar
		}

		key := day.Format(domain.DayLayout)
		if seen[key] {
			return 0, domain.ErrFreezeDuplicateDate
		}
		seen[key] = true

		checkIns = append(checkIns, domain.NewCheckIn(challengeID, userID, day, domain.StatusFreeze))
	}

	isMember, err := s.membershipRepo.Exists(ctx, challengeID, userID)
	if err != nil {
		return 0, fmt.Errorf("freeze: membership lookup: %w", err)
	}
	if !isMember {
		return 0, domain.ErrNotMember
	}

	if err := s.checkInRepo.CreateBatch(ctx, checkIns); err != nil {
		return 0, err
	}

	return len(checkIns), nil
}
