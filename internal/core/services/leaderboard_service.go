package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/habitloop/streakboard/internal/core/domain"
	"github.com/habitloop/streakboard/internal/logger"
)

// LeaderboardService ranks a challenge's members on their metrics rows and
// enriches each entry with identity and earned achievements.
type LeaderboardService struct {
	challengeRepo   domain.ChallengeRepository
	metricsRepo     domain.MetricsRepository
	userRepo        domain.UserRepository
	achievementRepo domain.AchievementRepository
}

func NewLeaderboardService(
	challengeRepo domain.ChallengeRepository,
	metricsRepo domain.MetricsRepository,
	userRepo domain.UserRepository,
	achievementRepo domain.AchievementRepository,
) *LeaderboardService {
	return &LeaderboardService{
		challengeRepo:   challengeRepo,
		metricsRepo:     metricsRepo,
		userRepo:        userRepo,
		achievementRepo: achievementRepo,
	}
}

// Get returns at most LeaderboardLimit entries ordered descending by the
// requested criterion. The sort is stable, so ties keep row creation
// order, and ranks are dense 1..N with no gaps: two equal values still get
// consecutive distinct ranks.
func (s *LeaderboardService) Get(ctx context.Context, challengeID, sortBy string) ([]*domain.LeaderboardEntry, error) {
	criterion, err := domain.ParseSortCriterion(sortBy)
	if err != nil {
		return nil, err
	}

	if _, err := s.challengeRepo.GetByID(ctx, challengeID); err != nil {
		return nil, err
	}

	rows, err := s.metricsRepo.ListByChallenge(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: listing metrics for %s: %w", challengeID, err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return metricValue(rows[i], criterion) > metricValue(rows[j], criterion)
	})

	if len(rows) > domain.LeaderboardLimit {
		rows = rows[:domain.LeaderboardLimit]
	}

	entries := make([]*domain.LeaderboardEntry, 0, len(rows))
	for i, m := range rows {
		profile, err := s.userRepo.GetProfile(ctx, m.UserID)
		if err != nil {
			return nil, fmt.Errorf("leaderboard: resolving identity of %s: %w", m.UserID, err)
		}

		// An achievement lookup failure degrades that one entry to an
		// empty list instead of failing the whole board.
		achievements, err := s.achievementRepo.ListByUser(ctx, m.UserID)
		if err != nil {
			logger.S.Warnw("achievement lookup failed, returning empty list",
				"challenge_id", challengeID,
				"user_id", m.UserID,
				"error", err,
			)
			achievements = nil
		}
		if achievements == nil {
			achievements = make([]*domain.UserAchievement, 0)
		}

		entries = append(entries, &domain.LeaderboardEntry{
			Rank:             i + 1,
			UserID:           m.UserID,
			Username:         profile.Username,
			AvatarURL:        profile.AvatarURL,
			CurrentStreak:    m.CurrentStreak,
			BestStreak:       m.BestStreak,
			CompletionRate:   m.CompletionRate,
			TotalCompletions: m.TotalCompletions,
			MissedDays:       m.MissedDays,
			Achievements:     achievements,
		})
	}

	return entries, nil
}

func metricValue(m *domain.Metrics, criterion string) float64 {
	switch criterion {
	case domain.SortByBestStreak:
		return float64(m.BestStreak)
	case domain.SortByCompletionRate:
		return m.CompletionRate
	case domain.SortByMissedDays:
		return float64(m.MissedDays)
	default:
		return float64(m.CurrentStreak)
	}
}
