package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrSlugExists      = errors.New("slug already exists")
)

// ValidationError reports a single invalid or missing field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func invalidField(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// FieldError is one entry of a form validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is returned when a form fails validation.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func slugTaken(slug string) error {
	return fmt.Errorf("%w: %q", ErrSlugExists, slug)
}
