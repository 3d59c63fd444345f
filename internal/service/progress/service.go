// Package progress tracks per-user lesson completion state.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/codetrail/codetrail-backend/internal/domain"
)

// progressRepo defines the storage operations needed by the progress service.
type progressRepo interface {
	Upsert(ctx context.Context, p domain.UserProgress) error
	Get(ctx context.Context, userID, lessonID uuid.UUID) (*domain.UserProgress, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserProgress, error)
}

// lessonGetter resolves lesson ids against the catalog.
type lessonGetter interface {
	GetLessonByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
}

// Service implements progress operations.
type Service struct {
	log     *slog.Logger
	repo    progressRepo
	lessons lessonGetter
}

// NewService creates a progress service.
func NewService(logger *slog.Logger, repo progressRepo, lessons lessonGetter) *Service {
	return &Service{
		log:     logger.With("service", "progress"),
		repo:    repo,
		lessons: lessons,
	}
}

// RecordInput carries the fields of a progress update.
type RecordInput struct {
	LessonID  uuid.UUID
	Status    domain.ProgressStatus
	QuizScore *int
}

// Validate checks the input and returns domain.ValidationError on failure.
func (in RecordInput) Validate() error {
	if in.LessonID == uuid.Nil {
		return domain.NewValidationError("body", "lesson_id", "is required")
	}
	if !in.Status.IsValid() {
		return domain.NewValidationError("body", "status", "must be 'started' or 'completed'")
	}
	if in.QuizScore != nil && (*in.QuizScore < 0 || *in.QuizScore > 100) {
		return domain.NewValidationError("body", "quiz_score", "must be between 0 and 100")
	}
	return nil
}

// Record upserts the user's progress on a lesson. The lesson must exist
// in the catalog; CompletedAt is stamped server-side when the status is
// completed.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, input RecordInput) (*domain.UserProgress, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.lessons.GetLessonByID(ctx, input.LessonID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("lesson %s: %w", input.LessonID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("progress.Record resolve lesson: %w", err)
	}

	p := domain.UserProgress{
		UserID:    userID,
		LessonID:  input.LessonID,
		Status:    input.Status,
		QuizScore: input.QuizScore,
		UpdatedAt: time.Now().UTC(),
	}
	if p.Status == domain.ProgressStatusCompleted {
		now := time.Now().UTC()
		p.CompletedAt = &now
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("progress.Record upsert: %w", err)
	}

	s.log.Debug("progress recorded",
		slog.String("user_id", userID.String()),
		slog.String("lesson_id", input.LessonID.String()),
		slog.String("status", p.Status.String()))
	return &p, nil
}

// Get returns the user's progress on one lesson.
func (s *Service) Get(ctx context.Context, userID, lessonID uuid.UUID) (*domain.UserProgress, error) {
	p, err := s.repo.Get(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("progress.Get: %w", err)
	}
	return p, nil
}

// List returns all of the user's progress rows, most recently updated first.
// Rows whose lesson has been removed from the catalog are omitted.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.UserProgress, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress.List: %w", err)
	}
	return rows, nil
}
