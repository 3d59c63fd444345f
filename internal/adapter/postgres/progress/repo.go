// Package progress implements the user progress repository using
// PostgreSQL.
//
// user_progress.lesson_id is a soft reference: lesson rows are replaced by
// the seeder but keep deterministic ids, so progress rows stay valid across
// re-seeds. Rows pointing at lessons that no longer exist are kept but
// filtered out of every read.
package progress

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/codetrail/codetrail-backend/internal/adapter/postgres"
	"github.com/codetrail/codetrail-backend/internal/domain"
)

// Repo provides progress persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert records or updates a user's progress on a lesson.
func (r *Repo) Upsert(ctx context.Context, p domain.UserProgress) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO user_progress (user_id, lesson_id, status, quiz_score, completed_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (user_id, lesson_id) DO UPDATE SET
		     status = EXCLUDED.status,
		     quiz_score = EXCLUDED.quiz_score,
		     completed_at = EXCLUDED.completed_at,
		     updated_at = now()`,
		p.UserID, p.LessonID, string(p.Status), p.QuizScore, p.CompletedAt,
	)
	if err != nil {
		return postgres.MapError(err, "progress", p.LessonID.String())
	}
	return nil
}

// Get returns one progress row.
func (r *Repo) Get(ctx context.Context, userID, lessonID uuid.UUID) (*domain.UserProgress, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.UserProgress
	var status string
	err := q.QueryRow(ctx,
		`SELECT user_id, lesson_id, status, quiz_score, completed_at, updated_at
		 FROM user_progress WHERE user_id = $1 AND lesson_id = $2`,
		userID, lessonID,
	).Scan(&p.UserID, &p.LessonID, &status, &p.QuizScore, &p.CompletedAt, &p.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "progress", lessonID.String())
	}
	p.Status = domain.ProgressStatus(status)
	return &p, nil
}

// ListByUser returns a user's progress rows whose lessons still exist,
// most recently updated first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserProgress, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	// The join drops rows whose lesson was removed from the catalog.
	rows, err := q.Query(ctx,
		`SELECT up.user_id, up.lesson_id, up.status, up.quiz_score, up.completed_at, up.updated_at
		 FROM user_progress up
		 JOIN lessons l ON l.id = up.lesson_id
		 WHERE up.user_id = $1
		 ORDER BY up.updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, postgres.MapError(err, "progress", userID.String())
	}
	defer rows.Close()

	var out []domain.UserProgress
	for rows.Next() {
		var p domain.UserProgress
		var status string
		if err := rows.Scan(&p.UserID, &p.LessonID, &status, &p.QuizScore, &p.CompletedAt, &p.UpdatedAt); err != nil {
			return nil, postgres.MapError(err, "progress", userID.String())
		}
		p.Status = domain.ProgressStatus(status)
		out = append(out, p)
	}
	return out, rows.Err()
}
