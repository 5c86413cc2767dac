package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
	"github.com/templui/goalmaster/internal/validation"
)

func TestRegisterNormalizesAndDefaults(t *testing.T) {
	env := newTestEnv(t, nil)

	user, err := env.auth.Register(context.Background(), RegisterInput{
		Email:    "  Ada@Example.COM ",
		Password: testPassword,
		Profile:  model.Profile{Name: " Ada "},
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.Profile.Name)
	assert.Equal(t, "UTC", user.Profile.Timezone)
	assert.NotNil(t, user.Profile.Preferences)
	assert.NotEqual(t, testPassword, user.PasswordHash)
	assert.NoError(t, env.auth.ComparePassword(testPassword, user.PasswordHash))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, nil)
	env.register(t, "ada@example.com")

	_, err := env.auth.Register(context.Background(), RegisterInput{
		Email:    "ADA@example.com",
		Password: testPassword,
		Profile:  model.Profile{Name: "Imposter"},
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	cases := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"bad email", RegisterInput{Email: "not-an-email", Password: testPassword, Profile: model.Profile{Name: "A"}}, "email"},
		{"short password", RegisterInput{Email: "a@example.com", Password: "short", Profile: model.Profile{Name: "A"}}, "password"},
		{"common password", RegisterInput{Email: "a@example.com", Password: "mypassword123456", Profile: model.Profile{Name: "A"}}, "password"},
		{"missing name", RegisterInput{Email: "a@example.com", Password: testPassword}, "name"},
		{"bad timezone", RegisterInput{Email: "a@example.com", Password: testPassword, Profile: model.Profile{Name: "A", Timezone: "Mars/Olympus"}}, "timezone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.auth.Register(context.Background(), tc.in)
			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, nil)
	registered := env.register(t, "ada@example.com")

	user, err := env.auth.Login(context.Background(), "ADA@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = env.auth.Login(context.Background(), "ada@example.com", "wrong password here")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(context.Background(), "nobody@example.com", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)
	registered := env.register(t, "ada@example.com")

	token, err := env.auth.IssueToken(registered.ID)
	require.NoError(t, err)

	userID, ok := env.auth.VerifyToken(token)
	require.True(t, ok)
	assert.Equal(t, registered.ID, userID)

	user, err := env.auth.ResolveUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)
}

func TestVerifyTokenRejects(t *testing.T) {
	env := newTestEnv(t, nil)
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	env.auth.now = func() time.Time { return fixed }

	token, err := env.auth.IssueToken("user-1")
	require.NoError(t, err)

	_, ok := env.auth.VerifyToken(token + "x")
	assert.False(t, ok, "tampered signature")

	other := NewAuthService(env.users, nil, "another-secret", time.Hour)
	other.now = env.auth.now
	_, ok = other.VerifyToken(token)
	assert.False(t, ok, "wrong secret")

	env.auth.now = func() time.Time { return fixed.Add(2 * time.Hour) }
	_, ok = env.auth.VerifyToken(token)
	assert.False(t, ok, "expired")

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	signed, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, ok = env.auth.VerifyToken(signed)
	assert.False(t, ok, "missing exp")

	_, ok = env.auth.VerifyToken("garbage")
	assert.False(t, ok)
}

func TestResolveUserForDeletedAccount(t *testing.T) {
	env := newTestEnv(t, nil)

	token, err := env.auth.IssueToken("4f0a3c1e-1111-4222-8333-944444444444")
	require.NoError(t, err)

	_, err = env.auth.ResolveUser(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
