package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/codetrail/codetrail-backend/internal/domain"
	"github.com/codetrail/codetrail-backend/pkg/ctxutil"
)

// catalogService defines the minimal interface needed by CatalogHandler.
type catalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListTopics(ctx context.Context, categorySlug string) ([]domain.Topic, error)
	GetTopic(ctx context.Context, slug string) (*domain.Topic, error)
	GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	Search(ctx context.Context, term string) ([]domain.LessonSearchHit, error)
}

// CatalogHandler serves the public read-only catalog endpoints.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

type categoryResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	OrderIndex  int    `json:"orderIndex"`
	TopicCount  int    `json:"topicCount"`
}

type topicResponse struct {
	ID               string           `json:"id"`
	Slug             string           `json:"slug"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	Difficulty       string           `json:"difficulty"`
	EstimatedMinutes int              `json:"estimatedMinutes,omitempty"`
	OrderIndex       int              `json:"orderIndex"`
	Lessons          []lessonResponse `json:"lessons,omitempty"`
}

type lessonResponse struct {
	ID               string             `json:"id"`
	Slug             string             `json:"slug"`
	Title            string             `json:"title"`
	Summary          string             `json:"summary,omitempty"`
	Content          string             `json:"content,omitempty"`
	Difficulty       string             `json:"difficulty"`
	EstimatedMinutes int                `json:"estimatedMinutes,omitempty"`
	OrderIndex       int                `json:"orderIndex"`
	KeyPoints        []string           `json:"keyPoints,omitempty"`
	Examples         []exampleResponse  `json:"examples,omitempty"`
	Questions        []questionResponse `json:"questions,omitempty"`
}

type exampleResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Explanation string `json:"explanation,omitempty"`
	OrderIndex  int    `json:"orderIndex"`
}

type questionResponse struct {
	ID            string `json:"id"`
	Question      string `json:"question"`
	Kind          string `json:"kind"`
	Options       string `json:"options,omitempty"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
	Difficulty    string `json:"difficulty"`
	Points        int    `json:"points"`
	OrderIndex    int    `json:"orderIndex"`
}

type searchHitResponse struct {
	Lesson    lessonResponse `json:"lesson"`
	TopicSlug string         `json:"topicSlug"`
	Rank      float32        `json:"rank"`
}

// ListCategories handles GET /api/v1/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTopics handles GET /api/v1/categories/{slug}/topics.
func (h *CatalogHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.svc.ListTopics(r.Context(), r.PathValue("slug"))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]topicResponse, 0, len(topics))
	for _, t := range topics {
		resp = append(resp, toTopicResponse(t, false))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTopic handles GET /api/v1/topics/{slug}. The response includes the
// topic's lesson list without lesson bodies.
func (h *CatalogHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.svc.GetTopic(r.Context(), r.PathValue("slug"))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicResponse(*topic, true))
}

// GetLesson handles GET /api/v1/lessons/{id}. The response includes the
// full lesson body with code examples and quiz questions. Correct answers
// and their explanations are withheld unless the caller is authenticated
// and asked for them with ?include_answers=true.
func (h *CatalogHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	lesson, err := h.svc.GetLesson(r.Context(), id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	_, authed := ctxutil.UserIDFromCtx(r.Context())
	withAnswers := authed && r.URL.Query().Get("include_answers") == "true"

	resp := toLessonResponse(*lesson, true)
	if !withAnswers {
		for i := range resp.Questions {
			resp.Questions[i].CorrectAnswer = ""
			resp.Questions[i].Explanation = ""
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Search handles GET /api/v1/search?q=term.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	hits, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]searchHitResponse, 0, len(hits))
	for _, hit := range hits {
		resp = append(resp, searchHitResponse{
			Lesson:    toLessonResponse(hit.Lesson, false),
			TopicSlug: hit.TopicSlug,
			Rank:      hit.Rank,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID.String(),
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		OrderIndex:  c.OrderIndex,
		TopicCount:  c.TopicCount,
	}
}

func toTopicResponse(t domain.Topic, withLessons bool) topicResponse {
	resp := topicResponse{
		ID:               t.ID.String(),
		Slug:             t.Slug,
		Name:             t.Name,
		Description:      t.Description,
		Difficulty:       t.Difficulty.String(),
		EstimatedMinutes: t.EstimatedMinutes,
		OrderIndex:       t.OrderIndex,
	}
	if withLessons {
		resp.Lessons = make([]lessonResponse, 0, len(t.Lessons))
		for _, l := range t.Lessons {
			resp.Lessons = append(resp.Lessons, toLessonResponse(l, false))
		}
	}
	return resp
}

func toLessonResponse(l domain.Lesson, full bool) lessonResponse {
	resp := lessonResponse{
		ID:               l.ID.String(),
		Slug:             l.Slug,
		Title:            l.Title,
		Summary:          l.Summary,
		Difficulty:       l.Difficulty.String(),
		EstimatedMinutes: l.EstimatedMinutes,
		OrderIndex:       l.OrderIndex,
	}
	if !full {
		return resp
	}

	resp.Content = l.Content
	resp.KeyPoints = l.KeyPoints
	for _, e := range l.Examples {
		resp.Examples = append(resp.Examples, exampleResponse{
			ID:          e.ID.String(),
			Title:       e.Title,
			Description: e.Description,
			Language:    e.Language,
			Code:        e.Code,
			Explanation: e.Explanation,
			OrderIndex:  e.OrderIndex,
		})
	}
	for _, q := range l.Questions {
		resp.Questions = append(resp.Questions, questionResponse{
			ID:            q.ID.String(),
			Question:      q.Question,
			Kind:          q.Kind.String(),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    q.Difficulty.String(),
			Points:        q.Points,
			OrderIndex:    q.OrderIndex,
		})
	}
	return resp
}
