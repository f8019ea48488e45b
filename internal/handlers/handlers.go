package handlers

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todo-api/internal/models"
	"todo-api/internal/todos"
)

type UserStore interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	todos    *todos.Service
	users    UserStore
	tokens   TokenIssuer
	db       Pinger
	pageSize int
	logger   *log.Logger
}

type Config struct {
	Todos    *todos.Service
	Users    UserStore
	Tokens   TokenIssuer
	DB       Pinger
	PageSize int
	Logger   *log.Logger
}

func New(cfg Config) *Handler {
	return &Handler{
		todos:    cfg.Todos,
		users:    cfg.Users,
		tokens:   cfg.Tokens,
		db:       cfg.DB,
		pageSize: cfg.PageSize,
		logger:   cfg.Logger,
	}
}

// parseId reports ok=false for anything that is not a UUID. Callers treat
// that the same as an unknown id.
func parseId(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}
