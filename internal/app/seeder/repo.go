// Package seeder turns an authored content tree into catalog rows inside a
// single transaction.
package seeder

import (
	"context"

	"github.com/google/uuid"

	"github.com/codetrail/codetrail-backend/internal/domain"
)

// CatalogSeedRepo is the write contract the pipeline needs from the catalog
// store. All methods use only domain types and respect a transaction bound
// to the context. Implemented by catalog.Repo.
type CatalogSeedRepo interface {
	// UpsertCategories inserts the bootstrap categories or refreshes their
	// metadata when they already exist. Slugs never change.
	UpsertCategories(ctx context.Context, categories []domain.Category) error

	// UpsertTopic inserts or refreshes a topic keyed by its slug and
	// returns the topic id. The category is resolved by slug.
	UpsertTopic(ctx context.Context, categorySlug string, topic domain.Topic) (uuid.UUID, error)

	// ReplaceLessons drops the topic's lessons and bulk-inserts the given
	// set together with their examples and questions.
	ReplaceLessons(ctx context.Context, topicID uuid.UUID, lessons []domain.Lesson) (domain.LessonCounts, error)

	// DeleteTopicsNotIn removes topics whose slug is absent from keep and
	// returns how many were removed. Used by full refreshes only.
	DeleteTopicsNotIn(ctx context.Context, keep []string) (int, error)
}

// TxRunner runs fn inside one database transaction.
// Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
