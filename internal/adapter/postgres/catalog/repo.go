// Package catalog implements the content catalog repository using
// PostgreSQL. It manages the categories, topics, lessons, code_examples and
// quiz_questions tables as one aggregate. Published content is only ever
// written by the seeder; the read side serves the API.
package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/codetrail/codetrail-backend/internal/adapter/postgres"
	"github.com/codetrail/codetrail-backend/internal/domain"
)

// psql builds queries with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var topicColumns = []string{"id", "category_id", "slug", "name", "description", "difficulty", "estimated_minutes", "order_index", "created_at", "updated_at"}

var lessonColumns = []string{"id", "topic_id", "slug", "title", "summary", "content", "difficulty", "estimated_minutes", "order_index", "key_points", "created_at", "updated_at"}

// Repo provides catalog persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListCategories returns all categories ordered for display, each with its
// topic count.
func (r *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	sql, args, err := psql.
		Select(
			"c.id", "c.slug", "c.name", "c.description", "c.icon", "c.order_index",
			"c.created_at", "c.updated_at", "COUNT(t.id)").
		From("categories c").
		LeftJoin("topics t ON t.category_id = c.id").
		GroupBy("c.id").
		OrderBy("c.order_index", "c.slug").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "category", "")
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.Icon, &c.OrderIndex,
			&c.CreatedAt, &c.UpdatedAt, &c.TopicCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCategoryBySlug returns one category with its topic count.
func (r *Repo) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	sql, args, err := psql.
		Select(
			"c.id", "c.slug", "c.name", "c.description", "c.icon", "c.order_index",
			"c.created_at", "c.updated_at", "COUNT(t.id)").
		From("categories c").
		LeftJoin("topics t ON t.category_id = c.id").
		Where(squirrel.Eq{"c.slug": slug}).
		GroupBy("c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get category: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var c domain.Category
	err = q.QueryRow(ctx, sql, args...).Scan(
		&c.ID, &c.Slug, &c.Name, &c.Description, &c.Icon, &c.OrderIndex,
		&c.CreatedAt, &c.UpdatedAt, &c.TopicCount)
	if err != nil {
		return nil, postgres.MapError(err, "category", slug)
	}
	return &c, nil
}

// ListTopicsByCategory returns a category's topics ordered for display.
// Returns domain.ErrNotFound when the category does not exist.
func (r *Repo) ListTopicsByCategory(ctx context.Context, categorySlug string) ([]domain.Topic, error) {
	cat, err := r.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	sql, args, err := psql.
		Select(prefixed("t", topicColumns)...).
		From("topics t").
		Where(squirrel.Eq{"t.category_id": cat.ID}).
		OrderBy("t.order_index", "t.slug").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list topics: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "topic", categorySlug)
	}
	defer rows.Close()

	var out []domain.Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTopicBySlug returns a topic with its lessons in display order. Lesson
// children are not loaded; GetLessonByID serves the full lesson.
func (r *Repo) GetTopicBySlug(ctx context.Context, slug string) (*domain.Topic, error) {
	sql, args, err := psql.
		Select(topicColumns...).
		From("topics").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get topic: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var t domain.Topic
	err = q.QueryRow(ctx, sql, args...).Scan(
		&t.ID, &t.CategoryID, &t.Slug, &t.Name, &t.Description, &t.Difficulty,
		&t.EstimatedMinutes, &t.OrderIndex, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "topic", slug)
	}

	lessonsSQL, lessonsArgs, err := psql.
		Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"topic_id": t.ID}).
		OrderBy("order_index").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list lessons: %w", err)
	}

	rows, err := q.Query(ctx, lessonsSQL, lessonsArgs...)
	if err != nil {
		return nil, postgres.MapError(err, "lesson", slug)
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		t.Lessons = append(t.Lessons, l)
	}
	return &t, rows.Err()
}

// GetLessonByID returns a lesson with its examples and questions.
func (r *Repo) GetLessonByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	sql, args, err := psql.
		Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get lesson: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lesson", id.String())
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, postgres.MapError(err, "lesson", id.String())
		}
		return nil, fmt.Errorf("lesson %s: %w", id, domain.ErrNotFound)
	}
	l, err := scanLesson(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.loadLessonChildren(ctx, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) loadLessonChildren(ctx context.Context, l *domain.Lesson) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, lesson_id, title, description, language, code, explanation, order_index
		 FROM code_examples WHERE lesson_id = $1 ORDER BY order_index`, l.ID)
	if err != nil {
		return postgres.MapError(err, "code_example", l.ID.String())
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.CodeExample
		if err := rows.Scan(&e.ID, &e.LessonID, &e.Title, &e.Description, &e.Language,
			&e.Code, &e.Explanation, &e.OrderIndex); err != nil {
			return fmt.Errorf("scan code example: %w", err)
		}
		l.Examples = append(l.Examples, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	qrows, err := q.Query(ctx,
		`SELECT id, lesson_id, question, kind, options, correct_answer, explanation, difficulty, points, order_index
		 FROM quiz_questions WHERE lesson_id = $1 ORDER BY order_index`, l.ID)
	if err != nil {
		return postgres.MapError(err, "quiz_question", l.ID.String())
	}
	defer qrows.Close()
	for qrows.Next() {
		var qq domain.QuizQuestion
		if err := qrows.Scan(&qq.ID, &qq.LessonID, &qq.Question, &qq.Kind, &qq.Options,
			&qq.CorrectAnswer, &qq.Explanation, &qq.Difficulty, &qq.Points, &qq.OrderIndex); err != nil {
			return fmt.Errorf("scan quiz question: %w", err)
		}
		l.Questions = append(l.Questions, qq)
	}
	return qrows.Err()
}

// SearchLessons runs a ranked full-text search over lesson titles,
// summaries and bodies.
func (r *Repo) SearchLessons(ctx context.Context, term string, limit int) ([]domain.LessonSearchHit, error) {
	const searchSQL = `
		SELECT l.id, l.topic_id, l.slug, l.title, l.summary, l.content,
		       l.difficulty, l.estimated_minutes, l.order_index, l.key_points,
		       l.created_at, l.updated_at,
		       t.slug, ts_rank(l.search, query) AS rank
		FROM lessons l
		JOIN topics t ON t.id = l.topic_id,
		     websearch_to_tsquery('english', $1) AS query
		WHERE l.search @@ query
		ORDER BY rank DESC, l.id
		LIMIT $2`

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, searchSQL, term, limit)
	if err != nil {
		return nil, postgres.MapError(err, "lesson", term)
	}
	defer rows.Close()

	var out []domain.LessonSearchHit
	for rows.Next() {
		var hit domain.LessonSearchHit
		l := &hit.Lesson
		if err := rows.Scan(&l.ID, &l.TopicID, &l.Slug, &l.Title, &l.Summary, &l.Content,
			&l.Difficulty, &l.EstimatedMinutes, &l.OrderIndex, &l.KeyPoints,
			&l.CreatedAt, &l.UpdatedAt, &hit.TopicSlug, &hit.Rank); err != nil {
			return nil, fmt.Errorf("scan search hit: %w", err)
		}
		out = append(out, hit)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTopic(row scanner) (domain.Topic, error) {
	var t domain.Topic
	err := row.Scan(&t.ID, &t.CategoryID, &t.Slug, &t.Name, &t.Description, &t.Difficulty,
		&t.EstimatedMinutes, &t.OrderIndex, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, fmt.Errorf("scan topic: %w", err)
	}
	return t, nil
}

func scanLesson(row scanner) (domain.Lesson, error) {
	var l domain.Lesson
	err := row.Scan(&l.ID, &l.TopicID, &l.Slug, &l.Title, &l.Summary, &l.Content,
		&l.Difficulty, &l.EstimatedMinutes, &l.OrderIndex, &l.KeyPoints,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return l, fmt.Errorf("scan lesson: %w", err)
	}
	return l, nil
}

func prefixed(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
