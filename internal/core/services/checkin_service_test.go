package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/streakboard/internal/adapters/repository"
	"github.com/habitloop/streakboard/internal/core/domain"
	"github.com/habitloop/streakboard/internal/core/services"
)

// The happy paths run against the in-memory repositories so that the
// upsert-by-day semantics are exercised for real, not mocked away.
func newCheckInFixture(t *testing.T) (*services.CheckInService, *repository.InMemoryCheckInRepository, *repository.InMemoryMetricsRepository) {
	t.Helper()

	checkInRepo := repository.NewInMemoryCheckInRepository()
	membershipRepo := repository.NewInMemoryMembershipRepository()
	metricsRepo := repository.NewInMemoryMetricsRepository()

	require.NoError(t, membershipRepo.Create(context.Background(), domain.NewMembership("ch-1", "u-1")))

	metricsSvc := services.NewMetricsService(checkInRepo, metricsRepo)
	return services.NewCheckInService(checkInRepo, membershipRepo, metricsSvc), checkInRepo, metricsRepo
}

func TestCheckInService_Submit(t *testing.T) {
	ctx := context.Background()
	today := domain.Today().Format(domain.DayLayout)

	t.Run("Success: writes the row and recomputes metrics synchronously", func(t *testing.T) {
		svc, checkInRepo, metricsRepo := newCheckInFixture(t)

		err := svc.Submit(ctx, services.SubmitCheckInInput{
			ChallengeID: "ch-1", UserID: "u-1", Date: today, Status: domain.StatusCompleted,
		})
		require.NoError(t, err)

		history, err := checkInRepo.ListByMember(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, domain.StatusCompleted, history[0].Status)

		metrics, err := metricsRepo.Get(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		assert.Equal(t, 1, metrics.CurrentStreak)
		assert.Equal(t, 1, metrics.TotalCompletions)
	})

	t.Run("Resubmission overwrites in place, no duplicate row", func(t *testing.T) {
		svc, checkInRepo, metricsRepo := newCheckInFixture(t)

		input := services.SubmitCheckInInput{
			ChallengeID: "ch-1", UserID: "u-1", Date: today, Status: domain.StatusCompleted,
		}
		require.NoError(t, svc.Submit(ctx, input))
		require.NoError(t, svc.Submit(ctx, input))

		history, err := checkInRepo.ListByMember(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, domain.StatusCompleted, history[0].Status)

		// last write wins on a status change too
		input.Status = domain.StatusMissed
		require.NoError(t, svc.Submit(ctx, input))

		history, err = checkInRepo.ListByMember(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, domain.StatusMissed, history[0].Status)

		metrics, err := metricsRepo.Get(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		assert.Equal(t, 0, metrics.CurrentStreak)
		assert.Equal(t, 1, metrics.MissedDays)
	})

	t.Run("Fail: freeze status must go through the scheduler", func(t *testing.T) {
		svc, _, _ := newCheckInFixture(t)

		err := svc.Submit(ctx, services.SubmitCheckInInput{
			ChallengeID: "ch-1", UserID: "u-1", Date: today, Status: domain.StatusFreeze,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("Fail: malformed date", func(t *testing.T) {
		svc, _, _ := newCheckInFixture(t)

		err := svc.Submit(ctx, services.SubmitCheckInInput{
			ChallengeID: "ch-1", UserID: "u-1", Date: "03/08/2026", Status: domain.StatusCompleted,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})

	t.Run("Fail: future date", func(t *testing.T) {
		svc, _, _ := newCheckInFixture(t)

		tomorrow := domain.Today().AddDate(0, 0, 1).Format(domain.DayLayout)
		err := svc.Submit(ctx, services.SubmitCheckInInput{
			ChallengeID: "ch-1", UserID: "u-1", Date: tomorrow, Status: domain.StatusCompleted,
		})
		assert.ErrorIs(t, err, domain.ErrDateInFuture)
	})

	t.Run("Fail: non-member is rejected before any write", func(t *testing.T) {
		svc, checkInRepo, _ := newCheckInFixture(t)

		err := svc.Submit(ctx, services.SubmitCheckInInput{
			ChallengeID: "ch-1", UserID: "stranger", Date: today, Status: domain.StatusCompleted,
		})
		assert.ErrorIs(t, err, domain.ErrNotMember)

		history, err := checkInRepo.ListByMember(ctx, "ch-1", "stranger")
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("Fail: recompute failure after a committed write surfaces as stale metrics", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		membershipRepo := new(MockMembershipRepo)
		metricsRepo := new(MockMetricsRepo)

		membershipRepo.On("Exists", ctx, "ch-1", "u-1").Return(true, nil)
		checkInRepo.On("Upsert", ctx, mock.Anything).Return(nil)

		dbErr := errors.New("history query failed")
		checkInRepo.On("ListByMember", ctx, "ch-1", "u-1").Return(nil, dbErr)

		metricsSvc := services.NewMetricsService(checkInRepo, metricsRepo)
		svc := services.NewCheckInService(checkInRepo, membershipRepo, metricsSvc)

		err := svc.Submit(ctx, services.SubmitCheckInInput{
			ChallengeID: "ch-1", UserID: "u-1", Date: today, Status: domain.StatusCompleted,
		})

		assert.ErrorIs(t, err, domain.ErrMetricsStale)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestCheckInService_AdminBackdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Past dates are accepted and overwrite history", func(t *testing.T) {
		svc, _, metricsRepo := newCheckInFixture(t)

		twoDaysAgo := domain.Today().AddDate(0, 0, -2).Format(domain.DayLayout)
		yesterday := domain.Today().AddDate(0, 0, -1).Format(domain.DayLayout)

		for _, date := range []string{twoDaysAgo, yesterday} {
			require.NoError(t, svc.Submit(ctx, services.SubmitCheckInInput{
				ChallengeID: "ch-1", UserID: "u-1", Date: date, Status: domain.StatusCompleted,
			}))
		}

		metrics, err := metricsRepo.Get(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		assert.Equal(t, 2, metrics.CurrentStreak)

		// admin flips yesterday to missed; the streak collapses
		require.NoError(t, svc.Submit(ctx, services.SubmitCheckInInput{
			ChallengeID: "ch-1", UserID: "u-1", Date: yesterday, Status: domain.StatusMissed,
		}))

		metrics, err = metricsRepo.Get(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		assert.Equal(t, 0, metrics.CurrentStreak)
		assert.Equal(t, 2, metrics.BestStreak, "best streak survives the overwrite")
	})
}
