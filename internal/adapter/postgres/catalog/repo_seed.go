package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/codetrail/codetrail-backend/internal/adapter/postgres"
	"github.com/codetrail/codetrail-backend/internal/domain"
)

// Write side of the catalog, consumed by the seeder pipeline. All methods
// honor a transaction bound to the context; the pipeline wraps a whole run
// in one.

// UpsertCategories inserts the bootstrap categories or refreshes their
// display metadata by slug.
func (r *Repo) UpsertCategories(ctx context.Context, categories []domain.Category) error {
	if len(categories) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(
			`INSERT INTO categories (id, slug, name, description, icon, order_index)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (slug) DO UPDATE SET
			     name = EXCLUDED.name,
			     description = EXCLUDED.description,
			     icon = EXCLUDED.icon,
			     order_index = EXCLUDED.order_index,
			     updated_at = now()`,
			uuid.New(), c.Slug, c.Name, c.Description, c.Icon, c.OrderIndex,
		)
	}

	if _, err := r.sendBatchExec(ctx, batch); err != nil {
		return postgres.MapError(err, "category", "")
	}
	return nil
}

// UpsertTopic inserts or refreshes a topic keyed by slug and returns its
// id. Returns domain.ErrNotFound when the category does not exist.
func (r *Repo) UpsertTopic(ctx context.Context, categorySlug string, topic domain.Topic) (uuid.UUID, error) {
	const upsertSQL = `
		INSERT INTO topics (id, category_id, slug, name, description, difficulty, estimated_minutes, order_index)
		SELECT $1, c.id, $2, $3, $4, $5, $6, $7
		FROM categories c
		WHERE c.slug = $8
		ON CONFLICT (slug) DO UPDATE SET
		    category_id = EXCLUDED.category_id,
		    name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    difficulty = EXCLUDED.difficulty,
		    estimated_minutes = EXCLUDED.estimated_minutes,
		    order_index = EXCLUDED.order_index,
		    updated_at = now()
		RETURNING id`

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var id uuid.UUID
	err := q.QueryRow(ctx, upsertSQL,
		uuid.New(), topic.Slug, topic.Name, topic.Description,
		string(topic.Difficulty), topic.EstimatedMinutes, topic.OrderIndex,
		categorySlug,
	).Scan(&id)
	if err != nil {
		// No source row means the category slug resolved nothing.
		return uuid.Nil, postgres.MapError(err, "category", categorySlug)
	}
	return id, nil
}

// ReplaceLessons drops a topic's lessons and bulk-inserts the new set with
// examples and questions. Children cascade away with their lessons.
func (r *Repo) ReplaceLessons(ctx context.Context, topicID uuid.UUID, lessons []domain.Lesson) (domain.LessonCounts, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `DELETE FROM lessons WHERE topic_id = $1`, topicID); err != nil {
		return domain.LessonCounts{}, postgres.MapError(err, "lesson", topicID.String())
	}
	if len(lessons) == 0 {
		return domain.LessonCounts{}, nil
	}

	var counts domain.LessonCounts

	batch := &pgx.Batch{}
	for _, l := range lessons {
		keyPoints := l.KeyPoints
		if keyPoints == nil {
			keyPoints = []string{}
		}
		batch.Queue(
			`INSERT INTO lessons (id, topic_id, slug, title, summary, content, difficulty, estimated_minutes, order_index, key_points)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			l.ID, topicID, l.Slug, l.Title, l.Summary, l.Content,
			string(l.Difficulty), l.EstimatedMinutes, l.OrderIndex, keyPoints,
		)
	}
	inserted, err := r.sendBatchExec(ctx, batch)
	if err != nil {
		return counts, postgres.MapError(err, "lesson", topicID.String())
	}
	counts.Lessons = inserted

	examples := &pgx.Batch{}
	questions := &pgx.Batch{}
	for _, l := range lessons {
		for _, e := range l.Examples {
			examples.Queue(
				`INSERT INTO code_examples (id, lesson_id, title, description, language, code, explanation, order_index)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				e.ID, l.ID, e.Title, e.Description, e.Language, e.Code, e.Explanation, e.OrderIndex,
			)
		}
		for _, qq := range l.Questions {
			questions.Queue(
				`INSERT INTO quiz_questions (id, lesson_id, question, kind, options, correct_answer, explanation, difficulty, points, order_index)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				qq.ID, l.ID, qq.Question, string(qq.Kind), qq.Options, qq.CorrectAnswer,
				qq.Explanation, string(qq.Difficulty), qq.Points, qq.OrderIndex,
			)
		}
	}

	if counts.Examples, err = r.sendBatchExec(ctx, examples); err != nil {
		return counts, postgres.MapError(err, "code_example", topicID.String())
	}
	if counts.Questions, err = r.sendBatchExec(ctx, questions); err != nil {
		return counts, postgres.MapError(err, "quiz_question", topicID.String())
	}
	return counts, nil
}

// DeleteTopicsNotIn removes topics whose slug is not in keep. Lessons and
// their children cascade.
func (r *Repo) DeleteTopicsNotIn(ctx context.Context, keep []string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM topics WHERE NOT (slug = ANY($1))`, keep)
	if err != nil {
		return 0, postgres.MapError(err, "topic", "")
	}
	return int(tag.RowsAffected()), nil
}

// sendBatchExec runs a batch and sums affected rows.
func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	if batch.Len() == 0 {
		return 0, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("batch exec: %w", err)
		}
		affected += int(tag.RowsAffected())
	}
	return affected, nil
}
