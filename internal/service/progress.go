package service

import (
	"context"
	"fmt"
	"time"

	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
	"github.com/templui/goalmaster/internal/validation"
)

type ProgressService struct {
	repo  repository.ProgressLogRepository
	goals *GoalService
	now   func() time.Time
}

func NewProgressService(repo repository.ProgressLogRepository, goals *GoalService) *ProgressService {
	return &ProgressService{
		repo:  repo,
		goals: goals,
		now:   now,
	}
}

// Create records a log against one of the user's goals. A progress log with a
// value overwrites the goal's current value; it does not add to it.
func (s *ProgressService) Create(ctx context.Context, userID string, in model.ProgressLogCreate) (*model.ProgressLog, error) {
	err := validation.ValidateProgressLogCreate(in)
	if err != nil {
		return nil, err
	}

	goal, err := s.goals.ByID(ctx, userID, in.GoalID)
	if err != nil {
		return nil, err
	}

	log := &model.ProgressLog{
		ID:          newID(),
		UserID:      userID,
		GoalID:      goal.ID,
		LogType:     in.LogType,
		Value:       in.Value,
		Description: in.Description,
		MoodScore:   in.MoodScore,
		CreatedAt:   s.now(),
	}

	err = s.repo.Create(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress log: %w", err)
	}

	return log, nil
}

// ForGoal lists the user's logs for a goal, newest first. limit <= 0 returns all.
func (s *ProgressService) ForGoal(ctx context.Context, userID, goalID string, limit int) ([]*model.ProgressLog, error) {
	id, err := parseID(goalID, repository.ErrGoalNotFound)
	if err != nil {
		return nil, err
	}

	return s.repo.ForGoal(ctx, userID, id, limit)
}

// Update edits a log in place. The goal's current value is left alone.
func (s *ProgressService) Update(ctx context.Context, userID, logID string, in model.ProgressLogUpdate) (*model.ProgressLog, error) {
	id, err := parseID(logID, repository.ErrProgressLogNotFound)
	if err != nil {
		return nil, err
	}

	err = validation.ValidateProgressLogUpdate(in)
	if err != nil {
		return nil, err
	}

	log, err := s.repo.ByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.LogType != nil {
		log.LogType = *in.LogType
	}
	if in.Value != nil {
		log.Value = in.Value
	}
	if in.Description != nil {
		log.Description = *in.Description
	}
	if in.MoodScore != nil {
		log.MoodScore = in.MoodScore
	}

	err = s.repo.Update(ctx, log)
	if err != nil {
		return nil, err
	}

	return log, nil
}
