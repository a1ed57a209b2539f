package services

import (
	"context"
	"fmt"

	"github.com/habitloop/streakboard/internal/core/domain"
)

type ChallengeService struct {
	challengeRepo  domain.ChallengeRepository
	membershipRepo domain.MembershipRepository
}

func NewChallengeService(challengeRepo domain.ChallengeRepository, membershipRepo domain.MembershipRepository) *ChallengeService {
	return &ChallengeService{
		challengeRepo:  challengeRepo,
		membershipRepo: membershipRepo,
	}
}

type CreateChallengeInput struct {
	CreatedBy   string
	Title       string
	Description string
}

// Create persists a new challenge and joins the creator to it.
func (s *ChallengeService) Create(ctx context.Context, input CreateChallengeInput) (*domain.Challenge, error) {
	challenge, err := domain.NewChallenge(input.CreatedBy, input.Title, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("challenge: creating %q: %w", challenge.Title, err)
	}

	if err := s.membershipRepo.Create(ctx, domain.NewMembership(challenge.ID, input.CreatedBy)); err != nil {
		return nil, fmt.Errorf("challenge: joining creator to %s: %w", challenge.ID, err)
	}

	return challenge, nil
}

func (s *ChallengeService) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	return s.challengeRepo.GetByID(ctx, id)
}

func (s *ChallengeService) List(ctx context.Context) ([]*domain.Challenge, error) {
	return s.challengeRepo.List(ctx)
}

// Join creates the membership that authorizes a user to check in.
func (s *ChallengeService) Join(ctx context.Context, challengeID, userID string) (*domain.Membership, error) {
	if _, err := s.challengeRepo.GetByID(ctx, challengeID); err != nil {
		return nil, err
	}

	membership := domain.NewMembership(challengeID, userID)
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}

func (s *ChallengeService) Members(ctx context.Context, challengeID string) ([]*domain.Membership, error) {
	if _, err := s.challengeRepo.GetByID(ctx, challengeID); err != nil {
		return nil, err
	}
	return s.membershipRepo.ListByChallenge(ctx, challengeID)
}
