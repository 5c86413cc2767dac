package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalmaster/internal/model"
)

type ActionPlanRepository interface {
	Create(ctx context.Context, plan *model.ActionPlan) error
	ForGoal(ctx context.Context, userID, goalID string) ([]*model.ActionPlan, error)
}

type actionPlanRepository struct {
	db *sqlx.DB
}

func NewActionPlanRepository(db *sqlx.DB) ActionPlanRepository {
	return &actionPlanRepository{db: db}
}

func (r *actionPlanRepository) Create(ctx context.Context, plan *model.ActionPlan) error {
	query := `INSERT INTO action_plans (id, goal_id, user_id, title, description, steps, ai_generated, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		plan.ID,
		plan.GoalID,
		plan.UserID,
		plan.Title,
		plan.Description,
		plan.Steps,
		plan.AIGenerated,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	return err
}

func (r *actionPlanRepository) ForGoal(ctx context.Context, userID, goalID string) ([]*model.ActionPlan, error) {
	plans := []*model.ActionPlan{}
	query := `SELECT * FROM action_plans WHERE goal_id = $1 AND user_id = $2 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &plans, query, goalID, userID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}
