package todos

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("authentication credentials were not provided")

	// ErrNotFound covers both a missing todo and a todo owned by someone
	// else. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	ErrInvalidPage = errors.New("invalid page")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
