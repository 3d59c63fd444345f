// Package domain contains the pure content-catalog types shared by all layers.
// No database or transport imports are allowed here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level grouping of topics (e.g. "frontend", "backend").
// Identity is the slug; categories are bootstrapped by the seeder.
type Category struct {
	ID          uuid.UUID
	Slug        string
	Name        string
	Description string
	Icon        string
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	TopicCount int
}

// Topic is a unit of authored content inside a category. Its slug is
// globally unique and is the semantic key for the seed upsert.
type Topic struct {
	ID               uuid.UUID
	CategoryID       uuid.UUID
	Slug             string
	Name             string
	Description      string
	Difficulty       Difficulty
	EstimatedMinutes int
	OrderIndex       int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Lessons []Lesson
}

// Lesson is a single learning unit within a topic. Its slug is unique
// within the parent topic.
type Lesson struct {
	ID               uuid.UUID
	TopicID          uuid.UUID
	Slug             string
	Title            string
	Summary          string
	Content          string
	Difficulty       Difficulty
	EstimatedMinutes int
	OrderIndex       int
	KeyPoints        []string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Examples  []CodeExample
	Questions []QuizQuestion
}

// CodeExample is a runnable snippet attached to a lesson.
type CodeExample struct {
	ID          uuid.UUID
	LessonID    uuid.UUID
	Title       string
	Description string
	Language    string
	Code        string
	Explanation string
	OrderIndex  int
}

// QuizQuestion is a self-check question attached to a lesson.
// Options holds the canonical JSON encoding produced by the seed normalizer;
// it is empty for free-form questions.
type QuizQuestion struct {
	ID            uuid.UUID
	LessonID      uuid.UUID
	Question      string
	Kind          QuestionKind
	Options       string
	CorrectAnswer string
	Explanation   string
	Difficulty    Difficulty
	Points        int
	OrderIndex    int
}

// LessonSearchHit is a ranked full-text search result.
type LessonSearchHit struct {
	Lesson    Lesson
	TopicSlug string
	Rank      float32
}

// LessonCounts reports how many rows one lesson replacement wrote.
type LessonCounts struct {
	Lessons   int
	Examples  int
	Questions int
}
