package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
	"github.com/templui/goalmaster/internal/validation"
)

type GoalService struct {
	repo repository.GoalRepository
	now  func() time.Time
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{
		repo: repo,
		now:  now,
	}
}

func (s *GoalService) Create(ctx context.Context, userID string, in model.GoalCreate) (*model.Goal, error) {
	err := validation.ValidateGoalCreate(in)
	if err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	var current float64
	if in.CurrentValue != nil {
		current = *in.CurrentValue
	}

	ts := s.now()
	goal := &model.Goal{
		ID:           newID(),
		UserID:       userID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Category:     in.Category,
		TargetValue:  in.TargetValue,
		CurrentValue: current,
		Unit:         in.Unit,
		Deadline:     in.Deadline.UTC().Truncate(time.Microsecond),
		Priority:     priority,
		Status:       model.GoalStatusActive,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	err = s.repo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) Goals(ctx context.Context, userID string, filter model.GoalFilter) ([]*model.Goal, error) {
	err := validation.ValidateGoalFilter(filter)
	if err != nil {
		return nil, err
	}

	return s.repo.Goals(ctx, userID, filter)
}

func (s *GoalService) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	id, err := parseID(goalID, repository.ErrGoalNotFound)
	if err != nil {
		return nil, err
	}

	return s.repo.ByID(ctx, userID, id)
}

// Update applies the supplied fields. An empty update returns the goal as stored.
func (s *GoalService) Update(ctx context.Context, userID, goalID string, in model.GoalUpdate) (*model.Goal, error) {
	goal, err := s.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if in.IsEmpty() {
		return goal, nil
	}

	err = validation.ValidateGoalUpdate(in)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		goal.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		goal.Description = *in.Description
	}
	if in.Category != nil {
		goal.Category = *in.Category
	}
	if in.TargetValue != nil {
		goal.TargetValue = *in.TargetValue
	}
	if in.CurrentValue != nil {
		goal.CurrentValue = *in.CurrentValue
	}
	if in.Unit != nil {
		goal.Unit = *in.Unit
	}
	if in.Deadline != nil {
		goal.Deadline = in.Deadline.UTC().Truncate(time.Microsecond)
	}
	if in.Priority != nil {
		goal.Priority = *in.Priority
	}
	if in.Status != nil {
		goal.Status = *in.Status
	}

	goal.UpdatedAt = s.now()

	err = s.repo.Update(ctx, goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	id, err := parseID(goalID, repository.ErrGoalNotFound)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, userID, id)
}

// MergeAIAnalysis overwrites the goal's analysis without an ownership check.
func (s *GoalService) MergeAIAnalysis(ctx context.Context, goalID string, analysis model.AIAnalysis) error {
	return s.repo.MergeAIAnalysis(ctx, goalID, analysis, s.now())
}
