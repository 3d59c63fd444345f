package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// FieldError describes a validation error for a specific field.
// Location identifies where the offending value came from (for seed errors:
// the topic directory and file).
type FieldError struct {
	Location string
	Field    string
	Message  string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		fe := e.Errors[0]
		if fe.Location != "" {
			return fmt.Sprintf("validation: %s: %s: %s", fe.Location, fe.Field, fe.Message)
		}
		return fmt.Sprintf("validation: %s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(location, field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Location: location, Field: field, Message: message}},
	}
}
