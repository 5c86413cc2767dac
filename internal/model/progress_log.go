package model

import "time"

const (
	LogTypeProgress  = "progress"
	LogTypeMilestone = "milestone"
	LogTypeSetback   = "setback"
	LogTypeNote      = "note"
)

var LogTypes = []string{LogTypeProgress, LogTypeMilestone, LogTypeSetback, LogTypeNote}

type ProgressLog struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	GoalID      string    `db:"goal_id" json:"goal_id"`
	LogType     string    `db:"log_type" json:"log_type"`
	Value       *float64  `db:"value" json:"value"`
	Description string    `db:"description" json:"description"`
	MoodScore   *int      `db:"mood_score" json:"mood_score"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// UpdatesGoalValue reports whether recording this log overwrites the goal's current value.
func (l *ProgressLog) UpdatesGoalValue() bool {
	return l.LogType == LogTypeProgress && l.Value != nil
}

type ProgressLogCreate struct {
	GoalID      string   `json:"goal_id"`
	LogType     string   `json:"log_type"`
	Value       *float64 `json:"value"`
	Description string   `json:"description"`
	MoodScore   *int     `json:"mood_score"`
}

type ProgressLogUpdate struct {
	LogType     *string  `json:"log_type"`
	Value       *float64 `json:"value"`
	Description *string  `json:"description"`
	MoodScore   *int     `json:"mood_score"`
}
