package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/templui/goalmaster/internal/logger"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/repository"
	"github.com/templui/goalmaster/internal/storage"
	"github.com/templui/goalmaster/internal/validation"
)

var ErrStorageUnavailable = errors.New("file storage is not configured")

type UserService struct {
	userRepository repository.UserRepository
	storage        storage.Storage
	now            func() time.Time
}

// NewUserService accepts a nil storage; avatar uploads then fail with ErrStorageUnavailable.
func NewUserService(userRepository repository.UserRepository, storage storage.Storage) *UserService {
	return &UserService{
		userRepository: userRepository,
		storage:        storage,
		now:            now,
	}
}

func (s *UserService) ByID(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepository.ByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in model.ProfileUpdate) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		err = validation.ValidateName(name)
		if err != nil {
			return nil, err
		}
		user.Profile.Name = name
	}

	if in.Timezone != nil {
		err = validation.ValidateTimezone(*in.Timezone)
		if err != nil {
			return nil, err
		}
		user.Profile.Timezone = *in.Timezone
	}

	if in.AvatarURL != nil {
		user.Profile.AvatarURL = in.AvatarURL
		if *in.AvatarURL == "" {
			user.Profile.AvatarURL = nil
		}
	}

	if in.Preferences != nil {
		user.Profile.Preferences = *in.Preferences
	}

	user.UpdatedAt = s.now()

	err = s.userRepository.UpdateProfile(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// UploadAvatar stores an already validated image and points the profile at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, body io.Reader, filename, contentType string) (*model.User, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := path.Join("public", "avatars", user.ID, newID()+strings.ToLower(path.Ext(filename)))

	err = s.storage.Save(ctx, key, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	url := s.storage.PublicURL(ctx, key)
	user.Profile.AvatarURL = &url
	user.UpdatedAt = s.now()

	err = s.userRepository.UpdateProfile(ctx, user)
	if err != nil {
		delErr := s.storage.Delete(ctx, key)
		if delErr != nil {
			logger.FromContext(ctx).Error("failed to delete avatar during cleanup", "error", delErr, "path", key)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
