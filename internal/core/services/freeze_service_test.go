package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/streakboard/internal/adapters/repository"
	"github.com/habitloop/streakboard/internal/core/domain"
	"github.com/habitloop/streakboard/internal/core/services"
)

func newFreezeFixture(t *testing.T) (*services.FreezeService, *repository.InMemoryCheckInRepository) {
	t.Helper()

	checkInRepo := repository.NewInMemoryCheckInRepository()
	membershipRepo := repository.NewInMemoryMembershipRepository()
	require.NoError(t, membershipRepo.Create(context.Background(), domain.NewMembership("ch-1", "u-1")))

	return services.NewFreezeService(checkInRepo, membershipRepo), checkInRepo
}

func futureDates(offsets ...int) []string {
	today := domain.Today()
	dates := make([]string, 0, len(offsets))
	for _, n := range offsets {
		dates = append(dates, today.AddDate(0, 0, n).Format(domain.DayLayout))
	}
	return dates
}

func TestFreezeService_Schedule(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: books up to three future freeze days", func(t *testing.T) {
		svc, checkInRepo := newFreezeFixture(t)

		created, err := svc.Schedule(ctx, "ch-1", "u-1", futureDates(1, 2, 3))

		require.NoError(t, err)
		assert.Equal(t, 3, created)

		history, err := checkInRepo.ListByMember(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		require.Len(t, history, 3)
		for _, c := range history {
			assert.Equal(t, domain.StatusFreeze, c.Status)
		}
	})

	t.Run("Fail: empty batch", func(t *testing.T) {
		svc, _ := newFreezeFixture(t)

		_, err := svc.Schedule(ctx, "ch-1", "u-1", nil)
		assert.ErrorIs(t, err, domain.ErrFreezeBatchEmpty)
	})

	t.Run("Fail: four dates rejected entirely even when three are valid", func(t *testing.T) {
		svc, checkInRepo := newFreezeFixture(t)

		_, err := svc.Schedule(ctx, "ch-1", "u-1", futureDates(1, 2, 3, 4))
		assert.ErrorIs(t, err, domain.ErrFreezeBatchTooLarge)

		history, err := checkInRepo.ListByMember(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		assert.Empty(t, history, "no partial insert")
	})

	t.Run("Fail: today is not strictly future", func(t *testing.T) {
		svc, _ := newFreezeFixture(t)

		_, err := svc.Schedule(ctx, "ch-1", "u-1", futureDates(0))
		assert.ErrorIs(t, err, domain.ErrFreezeNotFuture)
	})

	t.Run("Fail: past date", func(t *testing.T) {
		svc, _ := newFreezeFixture(t)

		_, err := svc.Schedule(ctx, "ch-1", "u-1", futureDates(-1))
		assert.ErrorIs(t, err, domain.ErrFreezeNotFuture)
	})

	t.Run("Fail: beyond the 90-day horizon", func(t *testing.T) {
		svc, _ := newFreezeFixture(t)

		_, err := svc.Schedule(ctx, "ch-1", "u-1", futureDates(91))
		assert.ErrorIs(t, err, domain.ErrFreezeTooFar)
	})

	t.Run("Fail: duplicate dates in the batch", func(t *testing.T) {
		svc, _ := newFreezeFixture(t)

		_, err := svc.Schedule(ctx, "ch-1", "u-1", futureDates(1, 1))
		assert.ErrorIs(t, err, domain.ErrFreezeDuplicateDate)
	})

	t.Run("Fail: malformed date fails the whole batch", func(t *testing.T) {
		svc, checkInRepo := newFreezeFixture(t)

		dates := append(futureDates(1, 2), "not-a-date")
		_, err := svc.Schedule(ctx, "ch-1", "u-1", dates)
		assert.ErrorIs(t, err, domain.ErrInvalidDate)

		history, err := checkInRepo.ListByMember(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("Fail: non-member", func(t *testing.T) {
		svc, _ := newFreezeFixture(t)

		_, err := svc.Schedule(ctx, "ch-1", "stranger", futureDates(1))
		assert.ErrorIs(t, err, domain.ErrNotMember)
	})

	t.Run("Fail: already-booked day conflicts, batch rolls back", func(t *testing.T) {
		svc, checkInRepo := newFreezeFixture(t)

		_, err := svc.Schedule(ctx, "ch-1", "u-1", futureDates(2))
		require.NoError(t, err)

		_, err = svc.Schedule(ctx, "ch-1", "u-1", futureDates(1, 2))
		assert.ErrorIs(t, err, domain.ErrFreezeConflict)

		history, err := checkInRepo.ListByMember(ctx, "ch-1", "u-1")
		require.NoError(t, err)
		assert.Len(t, history, 1, "the conflicting batch must not partially apply")
	})
}
