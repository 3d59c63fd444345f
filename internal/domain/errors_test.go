package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	err := NewValidationError("content/frontend/beginner/react-router", "topic.slug", "is required")

	msg := err.Error()
	if !strings.Contains(msg, "react-router") {
		t.Errorf("message should include the location, got %q", msg)
	}
	if !strings.Contains(msg, "topic.slug") {
		t.Errorf("message should include the field, got %q", msg)
	}

	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should unwrap to ErrValidation")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "lesson.title", Message: "is required"},
		{Field: "lesson.content", Message: "is required"},
	}}

	if !strings.Contains(err.Error(), "2 errors") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidationError_NoLocation(t *testing.T) {
	err := NewValidationError("", "email", "invalid format")
	if strings.HasPrefix(err.Error(), "validation: :") {
		t.Errorf("empty location should be omitted, got %q", err.Error())
	}
}
