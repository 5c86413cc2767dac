package model

import "time"

const (
	InteractionAnalysis = "analysis"
	InteractionPlanning = "planning"
	InteractionCoaching = "coaching"
)

// AIInteraction is an append-only audit record of one advisor call.
type AIInteraction struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	GoalID          string    `db:"goal_id" json:"goal_id"`
	InteractionType string    `db:"interaction_type" json:"interaction_type"`
	UserInput       string    `db:"user_input" json:"user_input"`
	AIResponse      string    `db:"ai_response" json:"ai_response"`
	TokensUsed      int       `db:"tokens_used" json:"tokens_used"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
