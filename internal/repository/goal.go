package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalmaster/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, userID, goalID string) (*model.Goal, error)
	Goals(ctx context.Context, userID string, filter model.GoalFilter) ([]*model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, userID, goalID string) error
	MergeAIAnalysis(ctx context.Context, goalID string, analysis model.AIAnalysis, at time.Time) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, category, target_value, current_value,
	                             unit, deadline, priority, status, ai_analysis, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		goal.Deadline,
		goal.Priority,
		goal.Status,
		goal.AIAnalysis,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, goal, query, goalID, userID)
	if err != nil {
		return nil, notFound(err, ErrGoalNotFound)
	}

	return goal, nil
}

// Goals lists a user's goals newest first. Filter fields are AND-combined.
func (r *goalRepository) Goals(ctx context.Context, userID string, filter model.GoalFilter) ([]*model.Goal, error) {
	goals := []*model.Goal{}

	query := `SELECT * FROM goals WHERE user_id = $1`
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	query += ` ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &goals, query, args...)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, category = $3, target_value = $4, current_value = $5,
	              unit = $6, deadline = $7, priority = $8, status = $9, updated_at = $10
	          WHERE id = $11 AND user_id = $12`

	result, err := r.db.ExecContext(ctx, query,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		goal.Deadline,
		goal.Priority,
		goal.Status,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	return expectRows(result, ErrGoalNotFound)
}

func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, goalID, userID)
	if err != nil {
		return err
	}

	return expectRows(result, ErrGoalNotFound)
}

// MergeAIAnalysis overwrites the stored analysis. Ownership is checked by the caller.
func (r *goalRepository) MergeAIAnalysis(ctx context.Context, goalID string, analysis model.AIAnalysis, at time.Time) error {
	query := `UPDATE goals SET ai_analysis = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, analysis, at, goalID)
	if err != nil {
		return err
	}

	return expectRows(result, ErrGoalNotFound)
}
