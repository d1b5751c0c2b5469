package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/amazona/e2e/internal/models"
)

// CreateUser creates a new user in the database
func (r *PostgresStore) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by id
func (r *PostgresStore) GetUserByID(id string) (*models.User, error) {
	return r.getUser("id = $1", id)
}

// GetUserByEmail retrieves a user by email
func (r *PostgresStore) GetUserByEmail(email string) (*models.User, error) {
	return r.getUser("email = $1", models.NormalizeEmail(email))
}

func (r *PostgresStore) getUser(where string, arg string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, is_admin, created_at
		FROM users
		WHERE ` + where

	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
