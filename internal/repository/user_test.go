package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
)

func TestUserRepositoryRoundTrip(t *testing.T) {
	database := newTestDB(t)
	repo := repository.NewUserRepository(database)
	ctx := context.Background()

	user := createUser(t, database, "ada@example.com")

	got, err := repo.ByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "Test User", got.Profile.Name)
	assert.Equal(t, "UTC", got.Profile.Timezone)
	assert.Nil(t, got.Profile.AvatarURL)
	assert.Empty(t, got.Profile.Preferences)
	assert.True(t, got.CreatedAt.Equal(epoch))

	got.Profile.AvatarURL = ptr("https://cdn.example.com/a.png")
	got.Profile.Preferences = model.Preferences{"theme": "dark"}
	got.UpdatedAt = epoch.Add(time.Hour)
	require.NoError(t, repo.UpdateProfile(ctx, got))

	again, err := repo.ByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, again.Profile.AvatarURL)
	assert.Equal(t, "https://cdn.example.com/a.png", *again.Profile.AvatarURL)
	assert.Equal(t, "dark", again.Profile.Preferences["theme"])
	assert.True(t, again.UpdatedAt.Equal(epoch.Add(time.Hour)))
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	database := newTestDB(t)
	createUser(t, database, "ada@example.com")

	dup := &model.User{ID: "other", Email: "ada@example.com", PasswordHash: "x", CreatedAt: epoch, UpdatedAt: epoch}
	err := repository.NewUserRepository(database).Create(context.Background(), dup)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	_, err := repo.ByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.ByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = repo.UpdateProfile(context.Background(), &model.User{ID: "missing"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
