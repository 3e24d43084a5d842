package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCredentials is returned for a bad username/password pair. The
// message is deliberately uniform so callers cannot probe which usernames
// exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned for a malformed, expired, revoked or otherwise
// unusable JWT.
var ErrInvalidToken = errors.New("invalid token")

// ValidationError carries per-field messages for a rejected write. Handlers
// render it as an HTTP 400 body keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}
