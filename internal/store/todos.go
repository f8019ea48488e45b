package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"todo-api/internal/models"
)

const todoColumns = "id, title, completed, user_id, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (models.Todo, error) {
	todo := models.Todo{}
	err := row.Scan(&todo.ID, &todo.Title, &todo.Completed, &todo.UserID, &todo.CreatedAt, &todo.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	if err != nil {
		return models.Todo{}, err
	}
	todo.CreatedAt = todo.CreatedAt.UTC()
	todo.UpdatedAt = todo.UpdatedAt.UTC()
	return todo, nil
}

// ListTodos returns a window of owner's todos, newest first.
func (s *Store) ListTodos(ctx context.Context, owner uuid.UUID, limit, offset int) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+todoColumns+`
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, owner, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select todos: %w", err)
	}
	defer rows.Close()

	results := make([]models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		results = append(results, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select todos: %w", err)
	}
	return results, nil
}

func (s *Store) CountTodos(ctx context.Context, owner uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM todos WHERE user_id = $1", owner).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return n, nil
}

func (s *Store) CreateTodo(ctx context.Context, t models.Todo) (models.Todo, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO
			todos(id, title, completed, user_id, created_at, updated_at)
			VALUES($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Title, t.Completed, t.UserID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return models.Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

// GetTodo returns ErrNotFound both when id does not exist and when it
// belongs to someone other than owner.
func (s *Store) GetTodo(ctx context.Context, owner, id uuid.UUID) (models.Todo, error) {
	return getTodo(ctx, s.db, owner, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getTodo(ctx context.Context, q querier, owner, id uuid.UUID) (models.Todo, error) {
	row := q.QueryRowContext(ctx, `SELECT `+todoColumns+`
		FROM todos
		WHERE id = $1 AND user_id = $2`, id, owner)

	todo, err := scanTodo(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.Todo{}, fmt.Errorf("select todo: %w", err)
	}
	return todo, err
}

// UpdateTodo sets the non-nil fields and updated_at.
func (s *Store) UpdateTodo(ctx context.Context, owner, id uuid.UUID, title *string, completed *bool, now time.Time) (models.Todo, error) {
	return s.mutateTodo(ctx, owner, id, `UPDATE todos
		SET title = COALESCE($1, title),
			completed = COALESCE($2, completed),
			updated_at = $3
		WHERE id = $4 AND user_id = $5`,
		title, completed, now, id, owner)
}

// ToggleTodo negates completed in the database, so concurrent toggles of
// the same row never act on a stale value.
func (s *Store) ToggleTodo(ctx context.Context, owner, id uuid.UUID, now time.Time) (models.Todo, error) {
	return s.mutateTodo(ctx, owner, id, `UPDATE todos
		SET completed = NOT completed,
			updated_at = $1
		WHERE id = $2 AND user_id = $3`,
		now, id, owner)
}

// mutateTodo runs an update scoped to id and owner and reads the row back
// in the same transaction.
func (s *Store) mutateTodo(ctx context.Context, owner, id uuid.UUID, query string, args ...any) (models.Todo, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Todo{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	if rowsAffected == 0 {
		return models.Todo{}, ErrNotFound
	}

	todo, err := getTodo(ctx, tx, owner, id)
	if err != nil {
		return models.Todo{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Todo{}, fmt.Errorf("commit: %w", err)
	}
	return todo, nil
}

func (s *Store) DeleteTodo(ctx context.Context, owner, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = $1 AND user_id = $2", id, owner)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
