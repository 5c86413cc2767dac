package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalmaster/internal/model"
)

var (
	ErrProgressLogNotFound = errors.New("progress log not found")
)

type ProgressLogRepository interface {
	Create(ctx context.Context, log *model.ProgressLog) error
	ByID(ctx context.Context, userID, logID string) (*model.ProgressLog, error)
	ForGoal(ctx context.Context, userID, goalID string, limit int) ([]*model.ProgressLog, error)
	Update(ctx context.Context, log *model.ProgressLog) error
}

type progressLogRepository struct {
	db *sqlx.DB
}

func NewProgressLogRepository(db *sqlx.DB) ProgressLogRepository {
	return &progressLogRepository{db: db}
}

// Create inserts the log and, for a progress log carrying a value, overwrites
// the goal's current_value in the same transaction. Either both land or neither.
func (r *progressLogRepository) Create(ctx context.Context, log *model.ProgressLog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO progress_logs (id, user_id, goal_id, log_type, value, description, mood_score, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.ExecContext(ctx, query,
		log.ID,
		log.UserID,
		log.GoalID,
		log.LogType,
		log.Value,
		log.Description,
		log.MoodScore,
		log.CreatedAt,
	)
	if err != nil {
		return err
	}

	if log.UpdatesGoalValue() {
		query = `UPDATE goals SET current_value = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

		result, err := tx.ExecContext(ctx, query, *log.Value, log.CreatedAt, log.GoalID, log.UserID)
		if err != nil {
			return err
		}

		err = expectRows(result, ErrGoalNotFound)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *progressLogRepository) ByID(ctx context.Context, userID, logID string) (*model.ProgressLog, error) {
	log := &model.ProgressLog{}
	query := `SELECT * FROM progress_logs WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, log, query, logID, userID)
	if err != nil {
		return nil, notFound(err, ErrProgressLogNotFound)
	}

	return log, nil
}

// ForGoal lists logs newest first. A limit <= 0 means no limit.
func (r *progressLogRepository) ForGoal(ctx context.Context, userID, goalID string, limit int) ([]*model.ProgressLog, error) {
	logs := []*model.ProgressLog{}

	query := `SELECT * FROM progress_logs WHERE goal_id = $1 AND user_id = $2 ORDER BY created_at DESC`
	args := []any{goalID, userID}

	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	err := r.db.SelectContext(ctx, &logs, query, args...)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

// Update rewrites the log's mutable fields. It never touches the goal.
func (r *progressLogRepository) Update(ctx context.Context, log *model.ProgressLog) error {
	query := `UPDATE progress_logs
	          SET log_type = $1, value = $2, description = $3, mood_score = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.ExecContext(ctx, query,
		log.LogType,
		log.Value,
		log.Description,
		log.MoodScore,
		log.ID,
		log.UserID,
	)
	if err != nil {
		return err
	}

	return expectRows(result, ErrProgressLogNotFound)
}
