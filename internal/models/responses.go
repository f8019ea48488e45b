package models

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string

type HealthResponse struct {
	Status string `json:"status,omitempty"`
}

type Token struct {
	Token string `json:"token"`
}
