package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/habitloop/streakboard/internal/core/domain"
)

// MetricsService owns the denormalized metrics rows. It is the only
// writer; the leaderboard and the HTTP layer read what it produces.
type MetricsService struct {
	checkInRepo domain.CheckInRepository
	metricsRepo domain.MetricsRepository
}

func NewMetricsService(checkInRepo domain.CheckInRepository, metricsRepo domain.MetricsRepository) *MetricsService {
	return &MetricsService{
		checkInRepo: checkInRepo,
		metricsRepo: metricsRepo,
	}
}

// Recompute rebuilds the metrics row for a (challenge, user) pair from the
// full check-in history and persists it. It is idempotent, and a history
// fetch failure leaves the previously stored row untouched.
func (s *MetricsService) Recompute(ctx context.Context, challengeID, userID string) (*domain.Metrics, error) {
	history, err := s.checkInRepo.ListByMember(ctx, challengeID, userID)
	if err != nil {
		return nil, fmt.Errorf("metrics: fetching history for %s/%s: %w", challengeID, userID, err)
	}

	metrics := computeMetrics(challengeID, userID, history, domain.Today())

	// Best streak is monotonic: an admin overwrite can split a historical
	// run, but a best once recorded never goes back down.
	prev, err := s.metricsRepo.Get(ctx, challengeID, userID)
	switch {
	case err == nil:
		if prev.BestStreak > metrics.BestStreak {
			metrics.BestStreak = prev.BestStreak
		}
	case errors.Is(err, domain.ErrMetricsNotFound):
		// first recompute for this membership
	default:
		return nil, fmt.Errorf("metrics: loading previous row for %s/%s: %w", challengeID, userID, err)
	}

	if err := s.metricsRepo.Upsert(ctx, metrics); err != nil {
		return nil, fmt.Errorf("metrics: persisting row for %s/%s: %w", challengeID, userID, err)
	}

	return metrics, nil
}

// Get returns the stored metrics row for a membership. A membership with
// no check-ins yet reads as all zeros.
func (s *MetricsService) Get(ctx context.Context, challengeID, userID string) (*domain.Metrics, error) {
	metrics, err := s.metricsRepo.Get(ctx, challengeID, userID)
	if errors.Is(err, domain.ErrMetricsNotFound) {
		return &domain.Metrics{ChallengeID: challengeID, UserID: userID}, nil
	}
	return metrics, err
}

// computeMetrics walks the history and derives every metric in one pass
// over a day-keyed index. Days after today are ignored entirely: a
// scheduled freeze is inert until its date arrives.
//
// Streak semantics: completed and freeze days continue a streak; a missed
// day breaks it, and so does a day with no record at all once its date has
// passed. Unbroken continuity requires unbroken daily entries, not just
// unbroken completions.
func computeMetrics(challengeID, userID string, history []*domain.CheckIn, today time.Time) *domain.Metrics {
	m := &domain.Metrics{
		ChallengeID: challengeID,
		UserID:      userID,
		UpdatedAt:   time.Now().UTC(),
	}

	byDay := make(map[string]string, len(history))
	var continuingDays []time.Time
	eligible := 0

	for _, c := range history {
		day := domain.Midnight(c.Day)
		if day.After(today) {
			continue
		}

		key := day.Format(domain.DayLayout)
		byDay[key] = c.Status

		switch c.Status {
		case domain.StatusCompleted:
			m.TotalCompletions++
			eligible++
			continuingDays = append(continuingDays, day)
		case domain.StatusFreeze:
			eligible++
			continuingDays = append(continuingDays, day)
		case domain.StatusMissed:
			m.MissedDays++
			eligible++
		}
	}

	if eligible > 0 {
		rate := float64(m.TotalCompletions) / float64(eligible) * 100
		if rate < 0 {
			rate = 0
		}
		if rate > 100 {
			rate = 100
		}
		m.CompletionRate = rate
	}

	// Current streak walks backward from today if today has an actionable
	// record, otherwise from yesterday. A pending row reads like no row.
	anchor := today
	if st, ok := byDay[today.Format(domain.DayLayout)]; !ok || st == domain.StatusPending {
		anchor = today.AddDate(0, 0, -1)
	}
	for d := anchor; ; d = d.AddDate(0, 0, -1) {
		st, ok := byDay[d.Format(domain.DayLayout)]
		if !ok || (st != domain.StatusCompleted && st != domain.StatusFreeze) {
			break
		}
		m.CurrentStreak++
	}

	// Best streak is the longest run of consecutive continuing days
	// anywhere in history. A missed or absent day is simply not in the
	// set, so it ends the run.
	sort.Slice(continuingDays, func(i, j int) bool {
		return continuingDays[i].Before(continuingDays[j])
	})

	run := 0
	var prev time.Time
	for _, d := range continuingDays {
		if !prev.IsZero() && d.Sub(prev).Hours() == 24 {
			run++
		} else {
			run = 1
		}
		if run > m.BestStreak {
			m.BestStreak = run
		}
		prev = d
	}

	return m
}
