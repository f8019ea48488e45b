package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todo-api/internal/models"
)

// CreateUser inserts u. The password must already be hashed.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO
			users(id, email, password, created_at)
			VALUES($1, $2, $3, $4)`,
		u.ID, u.Email, u.Password, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	u.Password = ""
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

// UserByEmail returns the user including its password hash.
func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password, created_at
		FROM users
		WHERE email = $1`, email)

	user := models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}
