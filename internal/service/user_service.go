package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/e3lany/e3lany_api/internal/models"
	"github.com/e3lany/e3lany_api/internal/utils"
)

// Display-name bounds for profile updates.
const (
	minNameRunes = 2
	maxNameRunes = 50
)

// UserProfileStore provides profile reads and updates.
type UserProfileStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateNameByEmail(ctx context.Context, email, name string) (*models.User, error)
}

// UserService serves the profile endpoints.
type UserService struct {
	users UserProfileStore
}

// NewUserService constructs a UserService.
func NewUserService(users UserProfileStore) *UserService {
	return &UserService{users: users}
}

// GetProfile returns the account matching the authenticated email.
func (s *UserService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateName validates and stores a new display name for the account.
func (s *UserService) UpdateName(ctx context.Context, email, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.ErrNameRequired
	}
	if utf8.RuneCountInString(name) < minNameRunes {
		return nil, utils.ErrNameTooShort
	}
	if utf8.RuneCountInString(name) > maxNameRunes {
		return nil, utils.ErrNameTooLong
	}

	u, err := s.users.UpdateNameByEmail(ctx, email, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
