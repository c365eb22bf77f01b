package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e3lany/e3lany_api/internal/models"
	"github.com/e3lany/e3lany_api/internal/utils"
)

type stubUserProfileStore struct {
	user        *models.User
	updatedName string
}

func (s *stubUserProfileStore) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	if s.user == nil {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func (s *stubUserProfileStore) UpdateNameByEmail(_ context.Context, _, name string) (*models.User, error) {
	if s.user == nil {
		return nil, sql.ErrNoRows
	}
	s.updatedName = name
	u := *s.user
	u.Name = &name
	return &u, nil
}

func TestGetProfileNotFound(t *testing.T) {
	svc := NewUserService(&stubUserProfileStore{})

	_, err := svc.GetProfile(context.Background(), "a@b.com")
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestUpdateNameValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", utils.ErrNameRequired},
		{"whitespace only", "   ", utils.ErrNameRequired},
		{"single rune", "م", utils.ErrNameTooShort},
		{"too long", strings.Repeat("م", 51), utils.ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&stubUserProfileStore{user: &models.User{ID: "u1", Email: "a@b.com"}})
			_, err := svc.UpdateName(context.Background(), "a@b.com", tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateNameTrimsAndStores(t *testing.T) {
	store := &stubUserProfileStore{user: &models.User{ID: "u1", Email: "a@b.com"}}
	svc := NewUserService(store)

	u, err := svc.UpdateName(context.Background(), "a@b.com", "  أحمد  ")
	require.NoError(t, err)
	assert.Equal(t, "أحمد", store.updatedName)
	require.NotNil(t, u.Name)
	assert.Equal(t, "أحمد", *u.Name)
}

func TestUpdateNameAcceptsArabicBoundaryLengths(t *testing.T) {
	store := &stubUserProfileStore{user: &models.User{ID: "u1", Email: "a@b.com"}}
	svc := NewUserService(store)

	_, err := svc.UpdateName(context.Background(), "a@b.com", strings.Repeat("م", 2))
	assert.NoError(t, err)

	_, err = svc.UpdateName(context.Background(), "a@b.com", strings.Repeat("م", 50))
	assert.NoError(t, err)
}
