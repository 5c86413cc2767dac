package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusCancelled = "cancelled"
)

const (
	CategoryHealth    = "health"
	CategoryEducation = "education"
	CategoryCareer    = "career"
	CategoryPersonal  = "personal"
	CategoryFinance   = "finance"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var (
	GoalStatuses   = []string{GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled}
	GoalCategories = []string{CategoryHealth, CategoryEducation, CategoryCareer, CategoryPersonal, CategoryFinance}
	GoalPriorities = []string{PriorityHigh, PriorityMedium, PriorityLow}
)

type Goal struct {
	ID           string      `db:"id" json:"id"`
	UserID       string      `db:"user_id" json:"user_id"`
	Title        string      `db:"title" json:"title"`
	Description  string      `db:"description" json:"description"`
	Category     string      `db:"category" json:"category"`
	TargetValue  float64     `db:"target_value" json:"target_value"`
	CurrentValue float64     `db:"current_value" json:"current_value"`
	Unit         string      `db:"unit" json:"unit"`
	Deadline     time.Time   `db:"deadline" json:"deadline"`
	Priority     string      `db:"priority" json:"priority"`
	Status       string      `db:"status" json:"status"`
	AIAnalysis   *AIAnalysis `db:"ai_analysis" json:"ai_analysis"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// ProgressRate is current/target as a fraction. A zero target yields 0.
func (g *Goal) ProgressRate() float64 {
	if g.TargetValue == 0 {
		return 0
	}
	return g.CurrentValue / g.TargetValue
}

// Remaining is the amount left to reach the target, in the goal's unit.
func (g *Goal) Remaining() float64 {
	return g.TargetValue - g.CurrentValue
}

// AIAnalysis is the latest advisor estimate merged onto a goal.
type AIAnalysis struct {
	DifficultyScore    float64 `json:"difficulty_score"`
	EstimatedDuration  int     `json:"estimated_duration"`
	SuccessProbability float64 `json:"success_probability"`
}

func (a AIAnalysis) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *AIAnalysis) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("ai_analysis: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, a)
}

// GoalCreate holds the caller-supplied fields of a new goal.
type GoalCreate struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	TargetValue  float64   `json:"target_value"`
	CurrentValue *float64  `json:"current_value"`
	Unit         string    `json:"unit"`
	Deadline     time.Time `json:"deadline"`
	Priority     string    `json:"priority"`
}

// GoalUpdate is a partial update; nil fields are left unchanged.
type GoalUpdate struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Category     *string    `json:"category"`
	TargetValue  *float64   `json:"target_value"`
	CurrentValue *float64   `json:"current_value"`
	Unit         *string    `json:"unit"`
	Deadline     *time.Time `json:"deadline"`
	Priority     *string    `json:"priority"`
	Status       *string    `json:"status"`
}

func (u GoalUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Category == nil &&
		u.TargetValue == nil && u.CurrentValue == nil && u.Unit == nil &&
		u.Deadline == nil && u.Priority == nil && u.Status == nil
}

// GoalFilter narrows a goal listing. Empty fields match everything.
type GoalFilter struct {
	Status   string
	Category string
}
