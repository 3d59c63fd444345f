package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/codetrail/codetrail-backend/internal/domain"
	"github.com/codetrail/codetrail-backend/internal/service/auth"
	"github.com/codetrail/codetrail-backend/internal/service/progress"
	"github.com/codetrail/codetrail-backend/pkg/ctxutil"
)

type authServiceMock struct {
	registerErr error
	loginErr    error
}

func (m *authServiceMock) Register(_ context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return &auth.AuthResult{
		AccessToken: "test-token",
		User:        &domain.User{ID: uuid.New(), Email: input.Email, CreatedAt: time.Now()},
	}, nil
}

func (m *authServiceMock) Login(_ context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return &auth.AuthResult{
		AccessToken: "test-token",
		User:        &domain.User{ID: uuid.New(), Email: input.Email, CreatedAt: time.Now()},
	}, nil
}

func (m *authServiceMock) Me(_ context.Context, userID uuid.UUID) (*domain.User, error) {
	return &domain.User{ID: userID, Email: "dev@example.com", CreatedAt: time.Now()}, nil
}

type catalogServiceMock struct {
	topic  *domain.Topic
	lesson *domain.Lesson
}

func (m *catalogServiceMock) ListCategories(context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: uuid.New(), Slug: "backend", Name: "Backend", TopicCount: 3}}, nil
}

func (m *catalogServiceMock) ListTopics(_ context.Context, categorySlug string) ([]domain.Topic, error) {
	if categorySlug != "backend" {
		return nil, domain.ErrNotFound
	}
	return []domain.Topic{{ID: uuid.New(), Slug: "go-fundamentals", Difficulty: domain.DifficultyBeginner}}, nil
}

func (m *catalogServiceMock) GetTopic(_ context.Context, slug string) (*domain.Topic, error) {
	if m.topic == nil || m.topic.Slug != slug {
		return nil, domain.ErrNotFound
	}
	return m.topic, nil
}

func (m *catalogServiceMock) GetLesson(_ context.Context, id uuid.UUID) (*domain.Lesson, error) {
	if m.lesson == nil || m.lesson.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.lesson, nil
}

func (m *catalogServiceMock) Search(_ context.Context, term string) ([]domain.LessonSearchHit, error) {
	return []domain.LessonSearchHit{}, nil
}

type progressServiceMock struct {
	recorded []progress.RecordInput
}

func (m *progressServiceMock) Record(_ context.Context, _ uuid.UUID, input progress.RecordInput) (*domain.UserProgress, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	m.recorded = append(m.recorded, input)
	return &domain.UserProgress{
		LessonID:  input.LessonID,
		Status:    input.Status,
		QuizScore: input.QuizScore,
		UpdatedAt: time.Now(),
	}, nil
}

func (m *progressServiceMock) Get(context.Context, uuid.UUID, uuid.UUID) (*domain.UserProgress, error) {
	return nil, domain.ErrNotFound
}

func (m *progressServiceMock) List(context.Context, uuid.UUID) ([]domain.UserProgress, error) {
	return []domain.UserProgress{}, nil
}

func newTestRouter(cat *catalogServiceMock, prog *progressServiceMock) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noLimit := func(next http.Handler) http.Handler { return next }
	return NewRouter(Handlers{
		Health:   NewHealthHandler(&dbPingerMock{}, "test"),
		Auth:     NewAuthHandler(&authServiceMock{}, logger),
		Catalog:  NewCatalogHandler(cat, logger),
		Progress: NewProgressHandler(prog, logger),
	}, noLimit)
}

func TestRouter_ListCategories(t *testing.T) {
	router := newTestRouter(&catalogServiceMock{}, &progressServiceMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []categoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Slug != "backend" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestRouter_GetTopic_NotFound(t *testing.T) {
	router := newTestRouter(&catalogServiceMock{}, &progressServiceMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/topics/no-such-topic", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_GetLesson_BadID(t *testing.T) {
	router := newTestRouter(&catalogServiceMock{}, &progressServiceMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lessons/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_Register(t *testing.T) {
	router := newTestRouter(&catalogServiceMock{}, &progressServiceMock{})

	body := bytes.NewBufferString(`{"email":"dev@example.com","password":"hunter2hunter2"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp authResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected access token in response")
	}
}

func TestRouter_Register_InvalidBody(t *testing.T) {
	router := newTestRouter(&catalogServiceMock{}, &progressServiceMock{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_Progress_RequiresAuth(t *testing.T) {
	router := newTestRouter(&catalogServiceMock{}, &progressServiceMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_Progress_Record(t *testing.T) {
	prog := &progressServiceMock{}
	router := newTestRouter(&catalogServiceMock{}, prog)
	lessonID := uuid.New()

	body := bytes.NewBufferString(`{"status":"completed","quizScore":90}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/progress/"+lessonID.String(), body)
	req = req.WithContext(ctxutil.WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(prog.recorded) != 1 || prog.recorded[0].LessonID != lessonID {
		t.Errorf("unexpected record calls: %+v", prog.recorded)
	}
}

func TestRouter_Progress_InvalidStatus(t *testing.T) {
	router := newTestRouter(&catalogServiceMock{}, &progressServiceMock{})
	lessonID := uuid.New()

	body := bytes.NewBufferString(`{"status":"paused"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/progress/"+lessonID.String(), body)
	req = req.WithContext(ctxutil.WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_GetLesson_WithholdsAnswers(t *testing.T) {
	lesson := &domain.Lesson{
		ID:         uuid.New(),
		Slug:       "error-handling",
		Title:      "Errors Are Values",
		Difficulty: domain.DifficultyBeginner,
		Questions: []domain.QuizQuestion{{
			ID:            uuid.New(),
			Question:      "Which verb wraps an error?",
			Kind:          domain.QuestionKindFreeForm,
			CorrectAnswer: "%w",
			Explanation:   "The %w verb records the cause.",
			Difficulty:    domain.DifficultyBeginner,
			Points:        1,
			OrderIndex:    1,
		}},
	}
	router := newTestRouter(&catalogServiceMock{lesson: lesson}, &progressServiceMock{})

	// Anonymous request: answer and explanation stripped.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lessons/"+lesson.ID.String()+"?include_answers=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp lessonResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(resp.Questions))
	}
	if resp.Questions[0].CorrectAnswer != "" || resp.Questions[0].Explanation != "" {
		t.Errorf("answers should be withheld for anonymous callers: %+v", resp.Questions[0])
	}

	// Authenticated request asking for answers gets them.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/lessons/"+lesson.ID.String()+"?include_answers=true", nil)
	req = req.WithContext(ctxutil.WithUserID(req.Context(), uuid.New()))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	resp = lessonResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Questions[0].CorrectAnswer != "%w" {
		t.Errorf("expected correct answer for authenticated caller, got %q", resp.Questions[0].CorrectAnswer)
	}
}
