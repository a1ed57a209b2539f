package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/habitloop/streakboard/internal/core/domain"
)

type MockCheckInRepo struct {
	mock.Mock
}

func (m *MockCheckInRepo) Upsert(ctx context.Context, checkIn *domain.CheckIn) error {
	args := m.Called(ctx, checkIn)
	return args.Error(0)
}

func (m *MockCheckInRepo) GetByDay(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error) {
	args := m.Called(ctx, checkIn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepo) ListByMember(ctx context.Context, challengeID, userID string) ([]*domain.CheckIn, error) {
	args := m.Called(ctx, challengeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepo) CreateBatch(ctx context.Context, checkIns []*domain.CheckIn) error {
	args := m.Called(ctx, checkIns)
	return args.Error(0)
}

type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) Create(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepo) Exists(ctx context.Context, challengeID, userID string) (bool, error) {
	args := m.Called(ctx, challengeID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepo) ListByChallenge(ctx context.Context, challengeID string) ([]*domain.Membership, error) {
	args := m.Called(ctx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepo) ListAll(ctx context.Context) ([]*domain.Membership, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Membership), args.Error(1)
}

type MockMetricsRepo struct {
	mock.Mock
}

func (m *MockMetricsRepo) Get(ctx context.Context, challengeID, userID string) (*domain.Metrics, error) {
	args := m.Called(ctx, challengeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Metrics), args.Error(1)
}

func (m *MockMetricsRepo) Upsert(ctx context.Context, metrics *domain.Metrics) error {
	args := m.Called(ctx, metrics)
	return args.Error(0)
}

func (m *MockMetricsRepo) ListByChallenge(ctx context.Context, challengeID string) ([]*domain.Metrics, error) {
	args := m.Called(ctx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Metrics), args.Error(1)
}

type MockChallengeRepo struct {
	mock.Mock
}

func (m *MockChallengeRepo) Create(ctx context.Context, challenge *domain.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepo) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *MockChallengeRepo) List(ctx context.Context) ([]*domain.Challenge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Challenge), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

type MockAchievementRepo struct {
	mock.Mock
}

func (m *MockAchievementRepo) ListByUser(ctx context.Context, userID string) ([]*domain.UserAchievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserAchievement), args.Error(1)
}
