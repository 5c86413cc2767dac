package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalmaster/internal/db"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	database, err := db.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func createUser(t *testing.T, database *sqlx.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "hash",
		Profile: model.Profile{
			Name:        "Test User",
			Timezone:    "UTC",
			Preferences: model.Preferences{},
		},
		CreatedAt: epoch,
		UpdatedAt: epoch,
	}
	require.NoError(t, repository.NewUserRepository(database).Create(context.Background(), user))

	return user
}

func createGoal(t *testing.T, database *sqlx.DB, userID, category string, createdAt time.Time) *model.Goal {
	t.Helper()

	goal := &model.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       "Run 5k",
		Category:    category,
		TargetValue: 5,
		Unit:        "km",
		Deadline:    epoch.AddDate(0, 2, 0),
		Priority:    model.PriorityMedium,
		Status:      model.GoalStatusActive,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, repository.NewGoalRepository(database).Create(context.Background(), goal))

	return goal
}

func ptr[T any](v T) *T {
	return &v
}
