package model

// SimilarGoal is another user's active goal in a category the caller also pursues.
type SimilarGoal struct {
	UserID       string  `db:"user_id" json:"user_id"`
	Name         string  `db:"name" json:"name"`
	AvatarURL    *string `db:"avatar_url" json:"avatar_url"`
	GoalTitle    string  `db:"goal_title" json:"goal_title"`
	GoalCategory string  `db:"goal_category" json:"goal_category"`
}
