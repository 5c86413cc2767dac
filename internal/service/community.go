package service

import (
	"context"

	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
)

const similarGoalsLimit = 10

type CommunityService struct {
	repo repository.CommunityRepository
}

func NewCommunityService(repo repository.CommunityRepository) *CommunityService {
	return &CommunityService{repo: repo}
}

// SimilarGoals finds other users pursuing goals in the same categories as the caller.
func (s *CommunityService) SimilarGoals(ctx context.Context, userID string) ([]*model.SimilarGoal, error) {
	return s.repo.SimilarGoals(ctx, userID, similarGoalsLimit)
}
