package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Todo is a single task owned by one user. The owner is never serialized.
type Todo struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	UserID    uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TodoRequest is the writable part of a todo. Absent fields are left
// untouched by PATCH; explicit nulls are rejected.
type TodoRequest struct {
	Title     Optional[string] `json:"title"`
	Completed Optional[bool]   `json:"completed"`
}

// Optional records whether a JSON key was present and whether it was null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value, or nil when the key was absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// TodoPage is the paginated list envelope.
type TodoPage struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Todo  `json:"results"`
}
