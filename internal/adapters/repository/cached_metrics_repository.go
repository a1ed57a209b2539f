package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/habitloop/streakboard/internal/core/domain"
	"github.com/habitloop/streakboard/internal/logger"
)

var _ domain.MetricsRepository = (*CachedMetricsRepository)(nil)

// metricsCacheTTL is short on purpose: the leaderboard tolerates a few
// seconds of staleness, not minutes.
const metricsCacheTTL = 30 * time.Second

// CachedMetricsRepository is a read-through decorator over the metrics
// store. Per-challenge lists are cached and invalidated on every write
// for that challenge; cache trouble always degrades to the source of
// truth, never to an error.
type CachedMetricsRepository struct {
	next  domain.MetricsRepository
	cache *redis.Client
}

func NewCachedMetricsRepository(next domain.MetricsRepository, cache *redis.Client) *CachedMetricsRepository {
	return &CachedMetricsRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedMetricsRepository) cacheKey(challengeID string) string {
	return fmt.Sprintf("metrics:challenge:%s", challengeID)
}

func (r *CachedMetricsRepository) invalidate(ctx context.Context, challengeID string) {
	if err := r.cache.Del(ctx, r.cacheKey(challengeID)).Err(); err != nil {
		logger.S.Warnw("metrics cache invalidation failed", "challenge_id", challengeID, "error", err)
	}
}

func (r *CachedMetricsRepository) Get(ctx context.Context, challengeID, userID string) (*domain.Metrics, error) {
	return r.next.Get(ctx, challengeID, userID)
}

func (r *CachedMetricsRepository) Upsert(ctx context.Context, metrics *domain.Metrics) error {
	if err := r.next.Upsert(ctx, metrics); err != nil {
		return err
	}
	r.invalidate(ctx, metrics.ChallengeID)
	return nil
}

func (r *CachedMetricsRepository) ListByChallenge(ctx context.Context, challengeID string) ([]*domain.Metrics, error) {
	key := r.cacheKey(challengeID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var rows []*domain.Metrics
		if err := json.Unmarshal([]byte(val), &rows); err == nil {
			return rows, nil
		}

		logger.S.Warnw("corrupted metrics cache entry, deleting", "challenge_id", challengeID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		logger.S.Warnw("metrics cache read failed", "challenge_id", challengeID, "error", err)
	}

	rows, err := r.next.ListByChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rows); err == nil {
		if setErr := r.cache.Set(ctx, key, data, metricsCacheTTL).Err(); setErr != nil {
			logger.S.Warnw("metrics cache write failed", "challenge_id", challengeID, "error", setErr)
		}
	}

	return rows, nil
}
