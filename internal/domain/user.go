package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that tracks progress through the catalog.
// Users reference lessons but do not own them; a content re-seed never
// touches the users table.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}

// UserProgress records a user's state on a single lesson.
// Primary key is (UserID, LessonID).
type UserProgress struct {
	UserID      uuid.UUID
	LessonID    uuid.UUID
	Status      ProgressStatus
	QuizScore   *int
	CompletedAt *time.Time
	UpdatedAt   time.Time
}
