package auth

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/codetrail/codetrail-backend/internal/domain"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72
	maxDisplayName = 100
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

func (in *RegisterInput) normalize() {
	in.Email = normalizeEmail(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
}

// Validate checks the input and returns domain.ValidationError on failure.
func (in RegisterInput) Validate() error {
	if in.Email == "" {
		return domain.NewValidationError("body", "email", "is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.NewValidationError("body", "email", "is not a valid email address")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return domain.NewValidationError("body", "password", "must be at least 8 characters")
	}
	if len(in.Password) > maxPasswordLen {
		return domain.NewValidationError("body", "password", "is too long")
	}
	if utf8.RuneCountInString(in.DisplayName) > maxDisplayName {
		return domain.NewValidationError("body", "display_name", "is too long")
	}
	return nil
}

// LoginInput carries the fields of a login request.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks that both credentials are present.
func (in LoginInput) Validate() error {
	if in.Email == "" {
		return domain.NewValidationError("body", "email", "is required")
	}
	if in.Password == "" {
		return domain.NewValidationError("body", "password", "is required")
	}
	return nil
}
