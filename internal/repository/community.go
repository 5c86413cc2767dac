package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalmaster/internal/model"
)

type CommunityRepository interface {
	SimilarGoals(ctx context.Context, userID string, limit int) ([]*model.SimilarGoal, error)
}

type communityRepository struct {
	db *sqlx.DB
}

func NewCommunityRepository(db *sqlx.DB) CommunityRepository {
	return &communityRepository{db: db}
}

// SimilarGoals returns other users' active goals in any category the user
// has an active goal in.
func (r *communityRepository) SimilarGoals(ctx context.Context, userID string, limit int) ([]*model.SimilarGoal, error) {
	goals := []*model.SimilarGoal{}
	query := `SELECT g.user_id, u.name, u.avatar_url, g.title AS goal_title, g.category AS goal_category
	          FROM goals g
	          JOIN users u ON u.id = g.user_id
	          WHERE g.status = $1
	            AND g.user_id <> $2
	            AND g.category IN (SELECT category FROM goals WHERE user_id = $3 AND status = $4)
	          ORDER BY g.created_at DESC
	          LIMIT $5`

	err := r.db.SelectContext(ctx, &goals, query,
		model.GoalStatusActive, userID, userID, model.GoalStatusActive, limit)
	if err != nil {
		return nil, err
	}

	return goals, nil
}
