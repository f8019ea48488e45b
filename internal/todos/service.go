// Package todos implements the todo resource. Every operation is scoped to
// the calling user; single-item lookups filter on id and owner together so
// another user's todo is indistinguishable from a missing one.
package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"todo-api/internal/models"
	"todo-api/internal/store"
)

const MaxTitleLength = 255

// Store is the persistence the service needs. *store.Store implements it.
type Store interface {
	ListTodos(ctx context.Context, owner uuid.UUID, limit, offset int) ([]models.Todo, error)
	CountTodos(ctx context.Context, owner uuid.UUID) (int, error)
	CreateTodo(ctx context.Context, t models.Todo) (models.Todo, error)
	GetTodo(ctx context.Context, owner, id uuid.UUID) (models.Todo, error)
	UpdateTodo(ctx context.Context, owner, id uuid.UUID, title *string, completed *bool, now time.Time) (models.Todo, error)
	ToggleTodo(ctx context.Context, owner, id uuid.UUID, now time.Time) (models.Todo, error)
	DeleteTodo(ctx context.Context, owner, id uuid.UUID) error
}

type Service struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(st Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp is truncated to what Postgres stores so values returned from
// writes compare equal to values read back later.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// Page selects a window of a listing. Number starts at 1.
type Page struct {
	Number int
	Size   int
}

type ListResult struct {
	Todos   []models.Todo
	Count   int
	HasNext bool
}

// List returns the caller's todos, newest first.
func (s *Service) List(ctx context.Context, caller uuid.UUID, page Page) (ListResult, error) {
	if caller == uuid.Nil {
		return ListResult{}, ErrUnauthenticated
	}
	if page.Number < 1 || page.Size < 1 {
		return ListResult{}, ErrInvalidPage
	}

	count, err := s.store.CountTodos(ctx, caller)
	if err != nil {
		return ListResult{}, err
	}
	// Checked before computing the offset so huge page numbers cannot
	// overflow. An empty first page is valid.
	lastPage := 1
	if count > 0 {
		lastPage = (count-1)/page.Size + 1
	}
	if page.Number > lastPage {
		return ListResult{}, ErrInvalidPage
	}
	offset := (page.Number - 1) * page.Size

	todos, err := s.store.ListTodos(ctx, caller, page.Size, offset)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{
		Todos:   todos,
		Count:   count,
		HasNext: offset+len(todos) < count,
	}, nil
}

var titleRules = fmt.Sprintf("required,max=%d", MaxTitleLength)

func (s *Service) checkTitle(title string) (string, error) {
	clean := strings.TrimSpace(title)
	err := s.validate.Var(clean, titleRules)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return "", &ValidationError{Field: "title", Message: "This field may not be blank."}
		case "max":
			return "", &ValidationError{Field: "title", Message: fmt.Sprintf("Ensure this field has no more than %d characters.", MaxTitleLength)}
		}
	}
	if err != nil {
		return "", err
	}
	return clean, nil
}

// Create adds a todo owned by caller. A nil title means the field was not
// supplied at all.
func (s *Service) Create(ctx context.Context, caller uuid.UUID, title *string) (models.Todo, error) {
	if caller == uuid.Nil {
		return models.Todo{}, ErrUnauthenticated
	}
	if title == nil {
		return models.Todo{}, &ValidationError{Field: "title", Message: "This field is required."}
	}
	clean, err := s.checkTitle(*title)
	if err != nil {
		return models.Todo{}, err
	}

	now := s.timestamp()
	return s.store.CreateTodo(ctx, models.Todo{
		ID:        uuid.New(),
		Title:     clean,
		Completed: false,
		UserID:    caller,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) Retrieve(ctx context.Context, caller, id uuid.UUID) (models.Todo, error) {
	if caller == uuid.Nil {
		return models.Todo{}, ErrUnauthenticated
	}
	todo, err := s.store.GetTodo(ctx, caller, id)
	return todo, mapStoreErr(err)
}

// Patch holds the client-mutable fields. Nil fields are left unchanged.
type Patch struct {
	Title     *string
	Completed *bool
}

func (s *Service) Update(ctx context.Context, caller, id uuid.UUID, patch Patch) (models.Todo, error) {
	if caller == uuid.Nil {
		return models.Todo{}, ErrUnauthenticated
	}
	if patch.Title != nil {
		clean, err := s.checkTitle(*patch.Title)
		if err != nil {
			return models.Todo{}, err
		}
		patch.Title = &clean
	}
	todo, err := s.store.UpdateTodo(ctx, caller, id, patch.Title, patch.Completed, s.timestamp())
	return todo, mapStoreErr(err)
}

func (s *Service) Delete(ctx context.Context, caller, id uuid.UUID) error {
	if caller == uuid.Nil {
		return ErrUnauthenticated
	}
	return mapStoreErr(s.store.DeleteTodo(ctx, caller, id))
}

func (s *Service) Toggle(ctx context.Context, caller, id uuid.UUID) (models.Todo, error) {
	if caller == uuid.Nil {
		return models.Todo{}, ErrUnauthenticated
	}
	todo, err := s.store.ToggleTodo(ctx, caller, id, s.timestamp())
	return todo, mapStoreErr(err)
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
