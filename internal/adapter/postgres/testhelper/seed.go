package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codetrail/codetrail-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting
// test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with a dummy password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "learner-" + suffix + "@example.com",
		PasswordHash: "$2a$10$" + suffix + "not.a.real.hash",
		DisplayName:  "Learner " + suffix,
		CreatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, display_name, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return user
}

// SeedCategory inserts a category with a unique slug.
func SeedCategory(t *testing.T, pool *pgxpool.Pool) domain.Category {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	cat := domain.Category{
		ID:        uuid.New(),
		Slug:      "category-" + suffix,
		Name:      "Category " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO categories (id, slug, name, description, icon, order_index, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cat.ID, cat.Slug, cat.Name, cat.Description, cat.Icon, cat.OrderIndex, cat.CreatedAt, cat.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	return cat
}

// SeedTopic inserts a beginner topic into the given category.
func SeedTopic(t *testing.T, pool *pgxpool.Pool, categoryID uuid.UUID) domain.Topic {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	topic := domain.Topic{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Slug:       "topic-" + suffix,
		Name:       "Topic " + suffix,
		Difficulty: domain.DifficultyBeginner,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO topics (id, category_id, slug, name, description, difficulty, estimated_minutes, order_index, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		topic.ID, topic.CategoryID, topic.Slug, topic.Name, topic.Description,
		string(topic.Difficulty), topic.EstimatedMinutes, topic.OrderIndex, topic.CreatedAt, topic.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTopic: %v", err)
	}
	return topic
}

// SeedLesson inserts a lesson into the given topic.
func SeedLesson(t *testing.T, pool *pgxpool.Pool, topicID uuid.UUID) domain.Lesson {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	lesson := domain.Lesson{
		ID:         uuid.New(),
		TopicID:    topicID,
		Slug:       "lesson-" + suffix,
		Title:      "Lesson " + suffix,
		Content:    "Body of lesson " + suffix + ".",
		Difficulty: domain.DifficultyBeginner,
		OrderIndex: 1,
		KeyPoints:  []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO lessons (id, topic_id, slug, title, summary, content, difficulty, estimated_minutes, order_index, key_points, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		lesson.ID, lesson.TopicID, lesson.Slug, lesson.Title, lesson.Summary, lesson.Content,
		string(lesson.Difficulty), lesson.EstimatedMinutes, lesson.OrderIndex, lesson.KeyPoints,
		lesson.CreatedAt, lesson.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLesson: %v", err)
	}
	return lesson
}
