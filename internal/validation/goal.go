package validation

import (
	"math"
	"slices"
	"strings"

	"github.com/templui/goalmaster/internal/model"
)

const maxTitleLength = 200

func ValidateGoalCreate(in model.GoalCreate) error {
	err := validateTitle(in.Title)
	if err != nil {
		return err
	}

	err = oneOf("category", in.Category, model.GoalCategories)
	if err != nil {
		return err
	}

	if in.Priority != "" {
		err = oneOf("priority", in.Priority, model.GoalPriorities)
		if err != nil {
			return err
		}
	}

	err = finite("target_value", in.TargetValue)
	if err != nil {
		return err
	}

	if in.CurrentValue != nil {
		err = finite("current_value", *in.CurrentValue)
		if err != nil {
			return err
		}
	}

	if in.Deadline.IsZero() {
		return invalid("deadline", "deadline is required")
	}

	return nil
}

// ValidateGoalUpdate checks only the supplied fields. Any status may follow any other.
func ValidateGoalUpdate(in model.GoalUpdate) error {
	if in.Title != nil {
		err := validateTitle(*in.Title)
		if err != nil {
			return err
		}
	}

	if in.Category != nil {
		err := oneOf("category", *in.Category, model.GoalCategories)
		if err != nil {
			return err
		}
	}

	if in.Priority != nil {
		err := oneOf("priority", *in.Priority, model.GoalPriorities)
		if err != nil {
			return err
		}
	}

	if in.Status != nil {
		err := oneOf("status", *in.Status, model.GoalStatuses)
		if err != nil {
			return err
		}
	}

	if in.TargetValue != nil {
		err := finite("target_value", *in.TargetValue)
		if err != nil {
			return err
		}
	}

	if in.CurrentValue != nil {
		err := finite("current_value", *in.CurrentValue)
		if err != nil {
			return err
		}
	}

	if in.Deadline != nil && in.Deadline.IsZero() {
		return invalid("deadline", "deadline must not be empty")
	}

	return nil
}

func ValidateGoalFilter(f model.GoalFilter) error {
	if f.Status != "" {
		err := oneOf("status", f.Status, model.GoalStatuses)
		if err != nil {
			return err
		}
	}

	if f.Category != "" {
		return oneOf("category", f.Category, model.GoalCategories)
	}

	return nil
}

func ValidateProgressLogCreate(in model.ProgressLogCreate) error {
	if in.GoalID == "" {
		return invalid("goal_id", "goal_id is required")
	}

	err := oneOf("log_type", in.LogType, model.LogTypes)
	if err != nil {
		return err
	}

	if in.Value != nil {
		err = finite("value", *in.Value)
		if err != nil {
			return err
		}
	}

	return validateMood(in.MoodScore)
}

func ValidateProgressLogUpdate(in model.ProgressLogUpdate) error {
	if in.LogType != nil {
		err := oneOf("log_type", *in.LogType, model.LogTypes)
		if err != nil {
			return err
		}
	}

	if in.Value != nil {
		err := finite("value", *in.Value)
		if err != nil {
			return err
		}
	}

	return validateMood(in.MoodScore)
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return invalid("title", "title is required")
	}

	if len(trimmed) > maxTitleLength {
		return invalid("title", "title is too long (max %d characters)", maxTitleLength)
	}

	return nil
}

func validateMood(score *int) error {
	if score != nil && (*score < 1 || *score > 10) {
		return invalid("mood_score", "mood_score must be between 1 and 10")
	}
	return nil
}

func oneOf(field, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return invalid(field, "must be one of %s", strings.Join(allowed, ", "))
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	return nil
}
