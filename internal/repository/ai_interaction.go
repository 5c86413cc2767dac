package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalmaster/internal/model"
)

// AIInteractionRepository is append-only. There is no update or delete.
type AIInteractionRepository interface {
	Create(ctx context.Context, interaction *model.AIInteraction) error
	ForGoal(ctx context.Context, userID, goalID string) ([]*model.AIInteraction, error)
}

type aiInteractionRepository struct {
	db *sqlx.DB
}

func NewAIInteractionRepository(db *sqlx.DB) AIInteractionRepository {
	return &aiInteractionRepository{db: db}
}

func (r *aiInteractionRepository) Create(ctx context.Context, interaction *model.AIInteraction) error {
	query := `INSERT INTO ai_interactions (id, user_id, goal_id, interaction_type, user_input, ai_response, tokens_used, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		interaction.ID,
		interaction.UserID,
		interaction.GoalID,
		interaction.InteractionType,
		interaction.UserInput,
		interaction.AIResponse,
		interaction.TokensUsed,
		interaction.CreatedAt,
	)

	return err
}

func (r *aiInteractionRepository) ForGoal(ctx context.Context, userID, goalID string) ([]*model.AIInteraction, error) {
	interactions := []*model.AIInteraction{}
	query := `SELECT * FROM ai_interactions WHERE goal_id = $1 AND user_id = $2 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &interactions, query, goalID, userID)
	if err != nil {
		return nil, err
	}

	return interactions, nil
}
