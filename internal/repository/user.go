package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalmaster/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Profile columns are aliased so sqlx fills the embedded model.Profile.
const userColumns = `id, email, password_hash,
	name AS "profile.name", avatar_url AS "profile.avatar_url",
	timezone AS "profile.timezone", preferences AS "profile.preferences",
	created_at, updated_at`

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ByID(ctx context.Context, id string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, email, password_hash, name, avatar_url, timezone, preferences, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Profile.Name,
		user.Profile.AvatarURL,
		user.Profile.Timezone,
		user.Profile.Preferences,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, user, query, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	return user, nil
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, user, query, email)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `UPDATE users
	          SET name = $1, avatar_url = $2, timezone = $3, preferences = $4, updated_at = $5
	          WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		user.Profile.Name,
		user.Profile.AvatarURL,
		user.Profile.Timezone,
		user.Profile.Preferences,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return err
	}

	return expectRows(result, ErrUserNotFound)
}
