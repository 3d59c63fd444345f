//go:build integration

package seeder_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	postgres "github.com/codetrail/codetrail-backend/internal/adapter/postgres"
	"github.com/codetrail/codetrail-backend/internal/adapter/postgres/catalog"
	"github.com/codetrail/codetrail-backend/internal/adapter/postgres/testhelper"
	"github.com/codetrail/codetrail-backend/internal/app/seeder"
	"github.com/codetrail/codetrail-backend/internal/domain"
)

func integrationLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func writeTreeFile(t *testing.T, root string, rel, data string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

// seedTree writes a small tree with one backend topic.
func seedTree(t *testing.T, topicSlug string) string {
	t.Helper()
	root := t.TempDir()
	writeTreeFile(t, root, filepath.Join("backend", "beginner", topicSlug, "content.yaml"), fmt.Sprintf(`
topic:
  slug: %s
  name: Integration Topic
lessons:
  - slug: intro
    title: Introduction
    summary: Opening lesson.
    content: The xylographic introduction body.
  - slug: recap
    title: Recap
    content: Closing notes.
`, topicSlug))
	writeTreeFile(t, root, filepath.Join("backend", "beginner", topicSlug, "quiz.yaml"), `
intro:
  - question: Ready?
    kind: single_choice
    options: [Yes, No]
    correct_answer: a
`)
	return root
}

func runSeed(t *testing.T, repo seeder.CatalogSeedRepo, tx seeder.TxRunner, cfg seeder.Config) *seeder.Summary {
	t.Helper()
	p := seeder.NewPipeline(integrationLogger(), tx, repo, cfg)
	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	return summary
}

func TestSeed_EndToEndAndIdempotent(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := catalog.New(pool)
	txm := postgres.NewTxManager(pool)
	topicSlug := "it-topic-" + uuid.New().String()[:8]
	cfg := seeder.Config{ContentRoot: seedTree(t, topicSlug)}

	first := runSeed(t, repo, txm, cfg)
	require.Equal(t, 1, first.Topics)
	require.Equal(t, 2, first.Lessons)
	require.Equal(t, 1, first.Questions)

	topic, err := repo.GetTopicBySlug(context.Background(), topicSlug)
	require.NoError(t, err)
	require.Len(t, topic.Lessons, 2)
	firstIDs := []uuid.UUID{topic.Lessons[0].ID, topic.Lessons[1].ID}

	// Second run must produce the identical state, including lesson ids.
	second := runSeed(t, repo, txm, cfg)
	require.Equal(t, first.Lessons, second.Lessons)

	topic, err = repo.GetTopicBySlug(context.Background(), topicSlug)
	require.NoError(t, err)
	require.Len(t, topic.Lessons, 2)
	require.Equal(t, firstIDs, []uuid.UUID{topic.Lessons[0].ID, topic.Lessons[1].ID})
}

func TestSeed_EditedLessonOnly(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := catalog.New(pool)
	txm := postgres.NewTxManager(pool)
	topicSlug := "it-edit-" + uuid.New().String()[:8]
	root := seedTree(t, topicSlug)
	ctx := context.Background()

	runSeed(t, repo, txm, seeder.Config{ContentRoot: root})

	introID := seeder.LessonID(topicSlug, "intro")
	recapID := seeder.LessonID(topicSlug, "recap")
	recapBefore, err := repo.GetLessonByID(ctx, recapID)
	require.NoError(t, err)

	// Change only the intro body and run again.
	writeTreeFile(t, root, filepath.Join("backend", "beginner", topicSlug, "content.yaml"), fmt.Sprintf(`
topic:
  slug: %s
  name: Integration Topic
lessons:
  - slug: intro
    title: Introduction
    summary: Opening lesson.
    content: The rewritten introduction body.
  - slug: recap
    title: Recap
    content: Closing notes.
`, topicSlug))
	runSeed(t, repo, txm, seeder.Config{ContentRoot: root})

	intro, err := repo.GetLessonByID(ctx, introID)
	require.NoError(t, err)
	require.Equal(t, "The rewritten introduction body.", intro.Content)

	recapAfter, err := repo.GetLessonByID(ctx, recapID)
	require.NoError(t, err)
	require.Equal(t, recapBefore.ID, recapAfter.ID)
	require.Equal(t, recapBefore.Title, recapAfter.Title)
	require.Equal(t, recapBefore.Content, recapAfter.Content)
	require.Equal(t, recapBefore.OrderIndex, recapAfter.OrderIndex)
	require.Equal(t, recapBefore.Difficulty, recapAfter.Difficulty)
}

// flakyRepo fails ReplaceLessons after the real repo has already written
// the topic row, exercising rollback of a partially applied run.
type flakyRepo struct {
	*catalog.Repo
}

func (f *flakyRepo) ReplaceLessons(ctx context.Context, topicID uuid.UUID, lessons []domain.Lesson) (domain.LessonCounts, error) {
	if _, err := f.Repo.ReplaceLessons(ctx, topicID, lessons[:1]); err != nil {
		return domain.LessonCounts{}, err
	}
	return domain.LessonCounts{}, fmt.Errorf("simulated mid-run failure")
}

func TestSeed_FailureRollsBackEverything(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := catalog.New(pool)
	txm := postgres.NewTxManager(pool)
	topicSlug := "it-rollback-" + uuid.New().String()[:8]
	cfg := seeder.Config{ContentRoot: seedTree(t, topicSlug)}

	p := seeder.NewPipeline(integrationLogger(), txm, &flakyRepo{Repo: repo}, cfg)
	_, err := p.Run(context.Background())
	require.Error(t, err)

	// Neither the topic nor its partial lessons may remain.
	_, err = repo.GetTopicBySlug(context.Background(), topicSlug)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeed_ProgressSurvivesReseed(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := catalog.New(pool)
	txm := postgres.NewTxManager(pool)
	topicSlug := "it-progress-" + uuid.New().String()[:8]
	cfg := seeder.Config{ContentRoot: seedTree(t, topicSlug)}
	ctx := context.Background()

	runSeed(t, repo, txm, cfg)

	user := testhelper.SeedUser(t, pool)
	lessonID := seeder.LessonID(topicSlug, "intro")
	_, err := pool.Exec(ctx,
		`INSERT INTO user_progress (user_id, lesson_id, status) VALUES ($1, $2, 'completed')`,
		user.ID, lessonID)
	require.NoError(t, err)

	// Re-seed replaces every lesson row; progress must still resolve.
	runSeed(t, repo, txm, cfg)

	var status string
	err = pool.QueryRow(ctx,
		`SELECT up.status
		 FROM user_progress up
		 JOIN lessons l ON l.id = up.lesson_id
		 WHERE up.user_id = $1 AND up.lesson_id = $2`,
		user.ID, lessonID).Scan(&status)
	require.NoError(t, err)
	require.Equal(t, "completed", status)
}

func TestSeed_FullClearRemovesStaleTopics(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := catalog.New(pool)
	txm := postgres.NewTxManager(pool)
	ctx := context.Background()

	staleSlug := "it-stale-" + uuid.New().String()[:8]
	runSeed(t, repo, txm, seeder.Config{ContentRoot: seedTree(t, staleSlug)})

	keptSlug := "it-kept-" + uuid.New().String()[:8]
	summary := runSeed(t, repo, txm, seeder.Config{
		ContentRoot: seedTree(t, keptSlug),
		FullClear:   true,
	})
	require.GreaterOrEqual(t, summary.RemovedTopics, 1)

	_, err := repo.GetTopicBySlug(ctx, staleSlug)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetTopicBySlug(ctx, keptSlug)
	require.NoError(t, err)
}
