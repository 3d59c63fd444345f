package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/codetrail/codetrail-backend/internal/adapter/postgres/progress"
	"github.com/codetrail/codetrail-backend/internal/adapter/postgres/testhelper"
	"github.com/codetrail/codetrail-backend/internal/domain"
)

func TestUpsert_InsertThenUpdate(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := progress.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	cat := testhelper.SeedCategory(t, pool)
	topic := testhelper.SeedTopic(t, pool, cat.ID)
	lesson := testhelper.SeedLesson(t, pool, topic.ID)

	err := repo.Upsert(ctx, domain.UserProgress{
		UserID:   user.ID,
		LessonID: lesson.ID,
		Status:   domain.ProgressStatusStarted,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, user.ID, lesson.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ProgressStatusStarted, got.Status)
	require.Nil(t, got.QuizScore)

	score := 80
	completed := time.Now().UTC().Truncate(time.Microsecond)
	err = repo.Upsert(ctx, domain.UserProgress{
		UserID:      user.ID,
		LessonID:    lesson.ID,
		Status:      domain.ProgressStatusCompleted,
		QuizScore:   &score,
		CompletedAt: &completed,
	})
	require.NoError(t, err)

	got, err = repo.Get(ctx, user.ID, lesson.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ProgressStatusCompleted, got.Status)
	require.NotNil(t, got.QuizScore)
	require.Equal(t, 80, *got.QuizScore)
}

func TestUpsert_UnknownUser(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := progress.New(pool)

	err := repo.Upsert(context.Background(), domain.UserProgress{
		UserID:   uuid.New(),
		LessonID: uuid.New(),
		Status:   domain.ProgressStatusStarted,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_NotFound(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := progress.New(pool)

	user := testhelper.SeedUser(t, pool)
	_, err := repo.Get(context.Background(), user.ID, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByUser_SkipsDanglingLessons(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := progress.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	cat := testhelper.SeedCategory(t, pool)
	topic := testhelper.SeedTopic(t, pool, cat.ID)
	kept := testhelper.SeedLesson(t, pool, topic.ID)

	require.NoError(t, repo.Upsert(ctx, domain.UserProgress{
		UserID: user.ID, LessonID: kept.ID, Status: domain.ProgressStatusStarted,
	}))

	// Progress on a lesson that was later removed from the catalog. There
	// is no FK, so the row inserts fine but reads must skip it.
	danglingID := uuid.New()
	require.NoError(t, repo.Upsert(ctx, domain.UserProgress{
		UserID: user.ID, LessonID: danglingID, Status: domain.ProgressStatusCompleted,
	}))

	rows, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, kept.ID, rows[0].LessonID)
}
