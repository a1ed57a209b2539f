package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/streakboard/internal/adapters/repository"
	"github.com/habitloop/streakboard/internal/core/domain"
)

func TestInMemoryCheckInUpsertOverwrites(t *testing.T) {
	repo := repository.NewInMemoryCheckInRepository()
	ctx := context.Background()
	day := domain.Today()

	first := domain.NewCheckIn("challenge-1", "user-1", day, domain.StatusMissed)
	require.NoError(t, repo.Upsert(ctx, first))

	second := domain.NewCheckIn("challenge-1", "user-1", day, domain.StatusCompleted)
	second.Notes = "corrected"
	require.NoError(t, repo.Upsert(ctx, second))

	stored, err := repo.GetByDay(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Equal(t, "corrected", stored.Notes)

	history, err := repo.ListByMember(ctx, "challenge-1", "user-1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestInMemoryCheckInListIsDayOrdered(t *testing.T) {
	repo := repository.NewInMemoryCheckInRepository()
	ctx := context.Background()
	today := domain.Today()

	for _, offset := range []int{0, -3, -1} {
		c := domain.NewCheckIn("challenge-1", "user-1", today.AddDate(0, 0, offset), domain.StatusCompleted)
		require.NoError(t, repo.Upsert(ctx, c))
	}
	other := domain.NewCheckIn("challenge-1", "user-2", today, domain.StatusCompleted)
	require.NoError(t, repo.Upsert(ctx, other))

	history, err := repo.ListByMember(ctx, "challenge-1", "user-1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, history[0].Day.Before(history[1].Day))
	assert.True(t, history[1].Day.Before(history[2].Day))
}

func TestInMemoryCheckInBatchIsAllOrNothing(t *testing.T) {
	repo := repository.NewInMemoryCheckInRepository()
	ctx := context.Background()
	today := domain.Today()

	existing := domain.NewCheckIn("challenge-1", "user-1", today.AddDate(0, 0, 2), domain.StatusFreeze)
	require.NoError(t, repo.Upsert(ctx, existing))

	batch := []*domain.CheckIn{
		domain.NewCheckIn("challenge-1", "user-1", today.AddDate(0, 0, 1), domain.StatusFreeze),
		domain.NewCheckIn("challenge-1", "user-1", today.AddDate(0, 0, 2), domain.StatusFreeze),
	}
	err := repo.CreateBatch(ctx, batch)
	assert.ErrorIs(t, err, domain.ErrFreezeConflict)

	// the non-conflicting row must not have been written
	_, err = repo.GetByDay(ctx, batch[0])
	assert.ErrorIs(t, err, domain.ErrCheckInNotFound)
}

func TestInMemoryMembershipDuplicate(t *testing.T) {
	repo := repository.NewInMemoryMembershipRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewMembership("challenge-1", "user-1")))
	err := repo.Create(ctx, domain.NewMembership("challenge-1", "user-1"))
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)

	exists, err := repo.Exists(ctx, "challenge-1", "user-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "challenge-1", "user-2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInMemoryMetricsInsertionOrder(t *testing.T) {
	repo := repository.NewInMemoryMetricsRepository()
	ctx := context.Background()

	for _, userID := range []string{"user-b", "user-a", "user-c"} {
		require.NoError(t, repo.Upsert(ctx, &domain.Metrics{ChallengeID: "challenge-1", UserID: userID}))
	}
	// updating an existing row must not move it
	require.NoError(t, repo.Upsert(ctx, &domain.Metrics{ChallengeID: "challenge-1", UserID: "user-b", CurrentStreak: 5}))

	rows, err := repo.ListByChallenge(ctx, "challenge-1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "user-b", rows[0].UserID)
	assert.Equal(t, 5, rows[0].CurrentStreak)
	assert.Equal(t, "user-a", rows[1].UserID)
	assert.Equal(t, "user-c", rows[2].UserID)
}

func TestInMemoryMetricsGetMissing(t *testing.T) {
	repo := repository.NewInMemoryMetricsRepository()

	_, err := repo.Get(context.Background(), "challenge-1", "user-1")
	assert.ErrorIs(t, err, domain.ErrMetricsNotFound)
}

func TestInMemoryChallengeListNewestFirst(t *testing.T) {
	repo := repository.NewInMemoryChallengeRepository()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		challenge, err := domain.NewChallenge("user-1", title, "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, challenge))
	}

	challenges, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, challenges, 3)
	assert.Equal(t, "third", challenges[0].Title)
	assert.Equal(t, "first", challenges[2].Title)
}
