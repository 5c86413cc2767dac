package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ActionPlan struct {
	ID          string      `db:"id" json:"id"`
	GoalID      string      `db:"goal_id" json:"goal_id"`
	UserID      string      `db:"user_id" json:"user_id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Steps       ActionSteps `db:"steps" json:"steps"`
	AIGenerated bool        `db:"ai_generated" json:"ai_generated"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

type ActionStep struct {
	StepNumber    int        `json:"step_number"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	EstimatedTime int        `json:"estimated_time"` // minutes
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// ActionSteps is stored as a JSON array column.
type ActionSteps []ActionStep

func (s ActionSteps) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *ActionSteps) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("steps: %w", err)
	}
	out := ActionSteps{}
	if len(raw) > 0 {
		err = json.Unmarshal(raw, &out)
		if err != nil {
			return fmt.Errorf("steps: %w", err)
		}
	}
	*s = out
	return nil
}
