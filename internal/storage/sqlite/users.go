package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/storage"
)

const userColumns = `id, username, display_name, password_hash, is_staff, created_at, updated_at`

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.DisplayName,
		user.PasswordHash,
		user.Staff,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", user.Username, storage.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves a user by their login name.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.GetContext(ctx, user, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := s.db.GetContext(ctx, user, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// UpdateUser writes the user's display name, password hash and staff flag.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET display_name = ?, password_hash = ?, is_staff = ?, updated_at = ? WHERE id = ?`,
		user.DisplayName, user.PasswordHash, user.Staff, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", user.ID, storage.ErrNotFound)
	}
	return nil
}
