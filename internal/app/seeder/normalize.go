package seeder

import (
	"fmt"
	"path"
	"sort"

	"github.com/google/uuid"

	"github.com/codetrail/codetrail-backend/internal/app/seeder/contentfile"
	"github.com/codetrail/codetrail-backend/internal/domain"
)

// contentNamespace is the fixed UUIDv5 namespace for content identifiers.
// Deriving lesson ids from slugs keeps them stable across re-seeds, which
// is what lets user progress survive the delete-then-insert refresh.
var contentNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// LessonID returns the deterministic identifier for a lesson.
func LessonID(topicSlug, lessonSlug string) uuid.UUID {
	return uuid.NewSHA1(contentNamespace, []byte("lesson:"+topicSlug+"/"+lessonSlug))
}

func exampleID(topicSlug, lessonSlug string, n int) uuid.UUID {
	return uuid.NewSHA1(contentNamespace, []byte(fmt.Sprintf("example:%s/%s/%d", topicSlug, lessonSlug, n)))
}

func questionID(topicSlug, lessonSlug string, n int) uuid.UUID {
	return uuid.NewSHA1(contentNamespace, []byte(fmt.Sprintf("question:%s/%s/%d", topicSlug, lessonSlug, n)))
}

// NormalizedModule is a content module validated and converted to domain
// form, ready for the upsert engine. Warnings carry non-fatal findings
// such as dropped child records.
type NormalizedModule struct {
	CategorySlug string
	Topic        domain.Topic
	Warnings     []string
}

// Normalize validates one parsed module and produces its domain form.
// Fatal problems return a *domain.ValidationError whose location names the
// offending file relative to the content root.
func Normalize(ref ModuleRef, m *contentfile.Module) (*NormalizedModule, error) {
	loc := path.Join(ref.CategorySlug, ref.Difficulty, ref.TopicDir, contentfile.ContentFileName)

	difficulty := domain.Difficulty(ref.Difficulty)
	if !difficulty.IsValid() {
		return nil, domain.NewValidationError(loc, "difficulty",
			fmt.Sprintf("directory segment %q is not a known difficulty", ref.Difficulty))
	}
	if !domain.IsValidSlug(ref.CategorySlug) {
		return nil, domain.NewValidationError(loc, "category",
			fmt.Sprintf("directory segment %q is not a valid slug", ref.CategorySlug))
	}

	if m.Topic.Slug == "" {
		return nil, domain.NewValidationError(loc, "topic.slug", "is required")
	}
	if !domain.IsValidSlug(m.Topic.Slug) {
		return nil, domain.NewValidationError(loc, "topic.slug",
			fmt.Sprintf("%q is not a valid slug", m.Topic.Slug))
	}
	if m.Topic.Name == "" {
		return nil, domain.NewValidationError(loc, "topic.name", "is required")
	}

	out := &NormalizedModule{
		CategorySlug: ref.CategorySlug,
		Topic: domain.Topic{
			Slug:             m.Topic.Slug,
			Name:             m.Topic.Name,
			Description:      m.Topic.Description,
			Difficulty:       difficulty,
			EstimatedMinutes: m.Topic.EstimatedMinutes,
			OrderIndex:       m.Topic.OrderIndex,
		},
	}
	if dir := path.Base(ref.TopicDir); m.Topic.Slug != dir {
		out.warnf("%s: topic slug %q differs from directory name %q", loc, m.Topic.Slug, dir)
	}

	lessons, err := normalizeLessons(loc, difficulty, m)
	if err != nil {
		return nil, err
	}
	out.Topic.Lessons = lessons

	out.attachExamples(ref, m)
	if err := out.attachQuestions(ref, m); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeLessons(loc string, topicDifficulty domain.Difficulty, m *contentfile.Module) ([]domain.Lesson, error) {
	seen := make(map[string]struct{}, len(m.Lessons))
	lessons := make([]domain.Lesson, 0, len(m.Lessons))

	for i, rec := range m.Lessons {
		field := fmt.Sprintf("lessons[%d]", i)
		if rec.Slug == "" {
			return nil, domain.NewValidationError(loc, field+".slug", "is required")
		}
		if !domain.IsValidSlug(rec.Slug) {
			return nil, domain.NewValidationError(loc, field+".slug",
				fmt.Sprintf("%q is not a valid slug", rec.Slug))
		}
		if _, dup := seen[rec.Slug]; dup {
			return nil, domain.NewValidationError(loc, field+".slug",
				fmt.Sprintf("duplicate lesson slug %q", rec.Slug))
		}
		seen[rec.Slug] = struct{}{}

		if rec.Title == "" {
			return nil, domain.NewValidationError(loc, field+".title", "is required")
		}
		if rec.Content == "" {
			return nil, domain.NewValidationError(loc, field+".content", "is required")
		}

		difficulty := topicDifficulty
		if rec.Difficulty != "" {
			difficulty = domain.Difficulty(rec.Difficulty)
			if !difficulty.IsValid() {
				return nil, domain.NewValidationError(loc, field+".difficulty",
					fmt.Sprintf("unknown difficulty %q", rec.Difficulty))
			}
		}

		lessons = append(lessons, domain.Lesson{
			ID:               LessonID(m.Topic.Slug, rec.Slug),
			Slug:             rec.Slug,
			Title:            rec.Title,
			Summary:          rec.Summary,
			Content:          rec.Content,
			Difficulty:       difficulty,
			EstimatedMinutes: rec.EstimatedMinutes,
			OrderIndex:       rec.OrderIndex,
			KeyPoints:        rec.KeyPoints,
		})
	}

	// Authored order_index values sort first; unset records keep their
	// file position after them. Stored indices are always dense and
	// 1-based regardless of what authors wrote.
	sort.SliceStable(lessons, func(a, b int) bool {
		ai, bi := lessons[a].OrderIndex, lessons[b].OrderIndex
		if ai == 0 || bi == 0 {
			return bi == 0 && ai != 0
		}
		return ai < bi
	})
	for i := range lessons {
		lessons[i].OrderIndex = i + 1
	}
	return lessons, nil
}

func (nm *NormalizedModule) attachExamples(ref ModuleRef, m *contentfile.Module) {
	loc := path.Join(ref.CategorySlug, ref.Difficulty, ref.TopicDir, contentfile.ExamplesFileName)

	for _, slug := range sortedKeys(m.Examples) {
		recs := m.Examples[slug]
		lesson := nm.lessonBySlug(slug)
		if lesson == nil {
			nm.warnf("%s: no lesson with slug %q, %d example(s) dropped", loc, slug, len(recs))
			continue
		}
		for i, rec := range recs {
			lesson.Examples = append(lesson.Examples, domain.CodeExample{
				ID:          exampleID(nm.Topic.Slug, slug, i),
				LessonID:    lesson.ID,
				Title:       rec.Title,
				Description: rec.Description,
				Language:    rec.Language,
				Code:        rec.Code,
				Explanation: rec.Explanation,
				OrderIndex:  rec.OrderIndex,
			})
		}
		renumberExamples(lesson.Examples)
	}
}

func (nm *NormalizedModule) attachQuestions(ref ModuleRef, m *contentfile.Module) error {
	loc := path.Join(ref.CategorySlug, ref.Difficulty, ref.TopicDir, contentfile.QuizFileName)

	for _, slug := range sortedKeys(m.Quiz) {
		recs := m.Quiz[slug]
		lesson := nm.lessonBySlug(slug)
		if lesson == nil {
			nm.warnf("%s: no lesson with slug %q, %d question(s) dropped", loc, slug, len(recs))
			continue
		}
		for i, rec := range recs {
			field := fmt.Sprintf("%s[%d]", slug, i)
			if rec.Question == "" {
				return domain.NewValidationError(loc, field+".question", "is required")
			}
			kind := domain.QuestionKind(rec.Kind)
			if rec.Kind == "" {
				kind = domain.QuestionKindSingleChoice
			}
			if !kind.IsValid() {
				return domain.NewValidationError(loc, field+".kind",
					fmt.Sprintf("unknown question kind %q", rec.Kind))
			}
			if kind == domain.QuestionKindSingleChoice && rec.Options.IsZero() {
				return domain.NewValidationError(loc, field+".options",
					"required for single_choice questions")
			}
			if rec.CorrectAnswer == "" {
				return domain.NewValidationError(loc, field+".correct_answer", "is required")
			}

			difficulty := lesson.Difficulty
			if rec.Difficulty != "" {
				difficulty = domain.Difficulty(rec.Difficulty)
				if !difficulty.IsValid() {
					return domain.NewValidationError(loc, field+".difficulty",
						fmt.Sprintf("unknown difficulty %q", rec.Difficulty))
				}
			}
			points := rec.Points
			if points <= 0 {
				points = 1
			}

			lesson.Questions = append(lesson.Questions, domain.QuizQuestion{
				ID:            questionID(nm.Topic.Slug, slug, i),
				LessonID:      lesson.ID,
				Question:      rec.Question,
				Kind:          kind,
				Options:       rec.Options.Canonical(),
				CorrectAnswer: rec.CorrectAnswer,
				Explanation:   rec.Explanation,
				Difficulty:    difficulty,
				Points:        points,
				OrderIndex:    rec.OrderIndex,
			})
		}
		renumberQuestions(lesson.Questions)
	}
	return nil
}

func (nm *NormalizedModule) lessonBySlug(slug string) *domain.Lesson {
	for i := range nm.Topic.Lessons {
		if nm.Topic.Lessons[i].Slug == slug {
			return &nm.Topic.Lessons[i]
		}
	}
	return nil
}

func (nm *NormalizedModule) warnf(format string, args ...any) {
	nm.Warnings = append(nm.Warnings, fmt.Sprintf(format, args...))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func renumberExamples(xs []domain.CodeExample) {
	sort.SliceStable(xs, func(a, b int) bool {
		ai, bi := xs[a].OrderIndex, xs[b].OrderIndex
		if ai == 0 || bi == 0 {
			return bi == 0 && ai != 0
		}
		return ai < bi
	})
	for i := range xs {
		xs[i].OrderIndex = i + 1
	}
}

func renumberQuestions(qs []domain.QuizQuestion) {
	sort.SliceStable(qs, func(a, b int) bool {
		ai, bi := qs[a].OrderIndex, qs[b].OrderIndex
		if ai == 0 || bi == 0 {
			return bi == 0 && ai != 0
		}
		return ai < bi
	})
	for i := range qs {
		qs[i].OrderIndex = i + 1
	}
}
