package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/e3lany/e3lany_api/internal/models"
)

// UserRepository handles data access for marketplace users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, image, role, created_at, updated_at`

// GetByID returns a user by id, or sql.ErrNoRows.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a user by email, or sql.ErrNoRows.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = $1`, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureExists creates the user row on first write access; existing rows are
// left untouched so profile edits are never clobbered by identity claims.
func (r *UserRepository) EnsureExists(ctx context.Context, u *models.User) error {
	const query = `
		INSERT INTO users (id, email, name, image)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.Name, u.Image)
	return err
}

// UpdateNameByEmail sets the display name and returns the updated user, or
// sql.ErrNoRows when no account matches the email.
func (r *UserRepository) UpdateNameByEmail(ctx context.Context, email, name string) (*models.User, error) {
	const query = `
		UPDATE users SET name = $1, updated_at = now()
		WHERE email = $2
		RETURNING ` + userColumns

	var u models.User
	if err := r.db.GetContext(ctx, &u, query, name, email); err != nil {
		return nil, err
	}
	return &u, nil
}
