package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/habitloop/streakboard/internal/core/domain"
)

// In-memory repositories, used by tests and local development. They
// reproduce the store semantics that matter to the core: upsert keyed on
// (challenge, user, day), all-or-nothing batches, insertion-ordered
// metrics listings.

type InMemoryCheckInRepository struct {
	store map[string]*domain.CheckIn

	mu sync.RWMutex
}

func NewInMemoryCheckInRepository() *InMemoryCheckInRepository {
	return &InMemoryCheckInRepository{
		store: make(map[string]*domain.CheckIn),
	}
}

func dayKey(challengeID, userID string, c *domain.CheckIn) string {
	return challengeID + "|" + userID + "|" + c.Day.Format(domain.DayLayout)
}

func (r *InMemoryCheckInRepository) Upsert(ctx context.Context, checkIn *domain.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(checkIn.ChallengeID, checkIn.UserID, checkIn)
	if existing, ok := r.store[key]; ok {
		existing.Status = checkIn.Status
		existing.Notes = checkIn.Notes
		existing.UpdatedAt = checkIn.UpdatedAt
		return nil
	}

	copied := *checkIn
	r.store[key] = &copied
	return nil
}

func (r *InMemoryCheckInRepository) GetByDay(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found, ok := r.store[dayKey(checkIn.ChallengeID, checkIn.UserID, checkIn)]
	if !ok {
		return nil, domain.ErrCheckInNotFound
	}
	copied := *found
	return &copied, nil
}

func (r *InMemoryCheckInRepository) ListByMember(ctx context.Context, challengeID, userID string) ([]*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var checkIns []*domain.CheckIn
	for _, c := range r.store {
		if c.ChallengeID == challengeID && c.UserID == userID {
			copied := *c
			checkIns = append(checkIns, &copied)
		}
	}

	sort.Slice(checkIns, func(i, j int) bool {
		return checkIns[i].Day.Before(checkIns[j].Day)
	})

	return checkIns, nil
}

func (r *InMemoryCheckInRepository) CreateBatch(ctx context.Context, checkIns []*domain.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// validate the whole batch before touching the store
	for _, c := range checkIns {
		if _, ok := r.store[dayKey(c.ChallengeID, c.UserID, c)]; ok {
			return domain.ErrFreezeConflict
		}
	}

	for _, c := range checkIns {
		copied := *c
		r.store[dayKey(c.ChallengeID, c.UserID, c)] = &copied
	}
	return nil
}

type InMemoryMembershipRepository struct {
	memberships []*domain.Membership

	mu sync.RWMutex
}

func NewInMemoryMembershipRepository() *InMemoryMembershipRepository {
	return &InMemoryMembershipRepository{}
}

func (r *InMemoryMembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.memberships {
		if m.ChallengeID == membership.ChallengeID && m.UserID == membership.UserID {
			return domain.ErrAlreadyMember
		}
	}

	copied := *membership
	r.memberships = append(r.memberships, &copied)
	return nil
}

func (r *InMemoryMembershipRepository) Exists(ctx context.Context, challengeID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.memberships {
		if m.ChallengeID == challengeID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryMembershipRepository) ListByChallenge(ctx context.Context, challengeID string) ([]*domain.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Membership
	for _, m := range r.memberships {
		if m.ChallengeID == challengeID {
			copied := *m
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *InMemoryMembershipRepository) ListAll(ctx context.Context) ([]*domain.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Membership, 0, len(r.memberships))
	for _, m := range r.memberships {
		copied := *m
		result = append(result, &copied)
	}
	return result, nil
}

type InMemoryMetricsRepository struct {
	rows  map[string]*domain.Metrics
	order []string

	mu sync.RWMutex
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{
		rows: make(map[string]*domain.Metrics),
	}
}

func metricsKey(challengeID, userID string) string {
	return challengeID + "|" + userID
}

func (r *InMemoryMetricsRepository) Get(ctx context.Context, challengeID, userID string) (*domain.Metrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.rows[metricsKey(challengeID, userID)]
	if !ok {
		return nil, domain.ErrMetricsNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *InMemoryMetricsRepository) Upsert(ctx context.Context, metrics *domain.Metrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := metricsKey(metrics.ChallengeID, metrics.UserID)
	if _, ok := r.rows[key]; !ok {
		r.order = append(r.order, key)
	}
	copied := *metrics
	r.rows[key] = &copied
	return nil
}

// ListByChallenge returns rows in first-insert order, matching the
// Postgres implementation's created_at ordering.
func (r *InMemoryMetricsRepository) ListByChallenge(ctx context.Context, challengeID string) ([]*domain.Metrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Metrics
	for _, key := range r.order {
		m := r.rows[key]
		if m.ChallengeID == challengeID {
			copied := *m
			result = append(result, &copied)
		}
	}
	return result, nil
}

type InMemoryChallengeRepository struct {
	store map[string]*domain.Challenge
	order []string

	mu sync.RWMutex
}

func NewInMemoryChallengeRepository() *InMemoryChallengeRepository {
	return &InMemoryChallengeRepository{
		store: make(map[string]*domain.Challenge),
	}
}

func (r *InMemoryChallengeRepository) Create(ctx context.Context, challenge *domain.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *challenge
	if _, ok := r.store[challenge.ID]; !ok {
		r.order = append(r.order, challenge.ID)
	}
	r.store[challenge.ID] = &copied
	return nil
}

func (r *InMemoryChallengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	challenge, ok := r.store[id]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	copied := *challenge
	return &copied, nil
}

func (r *InMemoryChallengeRepository) List(ctx context.Context) ([]*domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Challenge, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		copied := *r.store[r.order[i]]
		result = append(result, &copied)
	}
	return result, nil
}
