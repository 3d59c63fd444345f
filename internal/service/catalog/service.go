// Package catalog exposes read access to the published content catalog.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/codetrail/codetrail-backend/internal/config"
	"github.com/codetrail/codetrail-backend/internal/domain"
)

// catalogRepo defines the storage operations needed by the catalog service.
type catalogRepo interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListTopicsByCategory(ctx context.Context, categorySlug string) ([]domain.Topic, error)
	GetTopicBySlug(ctx context.Context, slug string) (*domain.Topic, error)
	GetLessonByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	SearchLessons(ctx context.Context, term string, limit int) ([]domain.LessonSearchHit, error)
}

// Service implements catalog read operations.
type Service struct {
	log  *slog.Logger
	repo catalogRepo
	cfg  config.ContentConfig
}

// NewService creates a catalog service.
func NewService(logger *slog.Logger, repo catalogRepo, cfg config.ContentConfig) *Service {
	return &Service{
		log:  logger.With("service", "catalog"),
		repo: repo,
		cfg:  cfg,
	}
}

// ListCategories returns all categories ordered for display.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.ListCategories: %w", err)
	}
	return categories, nil
}

// ListTopics returns the topics of one category.
// Returns domain.ErrNotFound when the category slug is unknown.
func (s *Service) ListTopics(ctx context.Context, categorySlug string) ([]domain.Topic, error) {
	topics, err := s.repo.ListTopicsByCategory(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("catalog.ListTopics %q: %w", categorySlug, err)
	}
	return topics, nil
}

// GetTopic returns one topic with its lesson list.
func (s *Service) GetTopic(ctx context.Context, slug string) (*domain.Topic, error) {
	topic, err := s.repo.GetTopicBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetTopic %q: %w", slug, err)
	}
	return topic, nil
}

// GetLesson returns one lesson with its code examples and quiz questions.
func (s *Service) GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	lesson, err := s.repo.GetLessonByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetLesson %s: %w", id, err)
	}
	return lesson, nil
}

// Search runs a ranked full-text search over lesson titles and content.
// An empty term returns an empty result set without touching storage.
func (s *Service) Search(ctx context.Context, term string) ([]domain.LessonSearchHit, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []domain.LessonSearchHit{}, nil
	}
	if utf8.RuneCountInString(term) > s.cfg.MaxSearchTerm {
		return nil, domain.NewValidationError("query", "q", "search term is too long")
	}

	hits, err := s.repo.SearchLessons(ctx, term, s.cfg.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("catalog.Search: %w", err)
	}
	return hits, nil
}
