package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
	"github.com/templui/goalmaster/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUnauthenticated    = errors.New("could not validate credentials")
)

const defaultTimezone = "UTC"

type RegisterInput struct {
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Profile  model.Profile `json:"profile"`
}

type AuthService struct {
	userRepository repository.UserRepository
	emailService   *EmailService
	jwtSecret      string
	jwtExpiry      time.Duration
	now            func() time.Time
}

func NewAuthService(
	userRepository repository.UserRepository,
	emailService *EmailService,
	jwtSecret string,
	jwtExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		emailService:   emailService,
		jwtSecret:      jwtSecret,
		jwtExpiry:      jwtExpiry,
		now:            now,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, err
	}

	err = validation.ValidatePassword(in.Password)
	if err != nil {
		return nil, err
	}

	profile := in.Profile
	profile.Name = strings.TrimSpace(profile.Name)
	err = validation.ValidateName(profile.Name)
	if err != nil {
		return nil, err
	}

	if profile.Timezone == "" {
		profile.Timezone = defaultTimezone
	}
	err = validation.ValidateTimezone(profile.Timezone)
	if err != nil {
		return nil, err
	}

	if profile.Preferences == nil {
		profile.Preferences = model.Preferences{}
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ts := s.now()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		Profile:      profile,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	err = s.userRepository.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailService != nil {
		err = s.emailService.SendWelcomeEmail(ctx, user.Email, user.Profile.Name)
		if err != nil {
			slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
		}
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IssueToken signs an access token bound to userID.
func (s *AuthService) IssueToken(userID string) (string, error) {
	issued := s.now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": issued.Add(s.jwtExpiry).Unix(),
		"iat": issued.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken returns the user id a token was issued for. Bad signatures,
// malformed payloads and expired tokens all report ok=false.
func (s *AuthService) VerifyToken(tokenString string) (string, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}

	return sub, true
}

// ResolveUser turns a bearer token into the user it was issued for.
func (s *AuthService) ResolveUser(ctx context.Context, tokenString string) (*model.User, error) {
	userID, ok := s.VerifyToken(tokenString)
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
