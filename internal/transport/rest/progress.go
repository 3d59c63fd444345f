package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/codetrail/codetrail-backend/internal/domain"
	"github.com/codetrail/codetrail-backend/internal/service/progress"
	"github.com/codetrail/codetrail-backend/pkg/ctxutil"
)

// progressService defines the minimal interface needed by ProgressHandler.
type progressService interface {
	Record(ctx context.Context, userID uuid.UUID, input progress.RecordInput) (*domain.UserProgress, error)
	Get(ctx context.Context, userID, lessonID uuid.UUID) (*domain.UserProgress, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.UserProgress, error)
}

// ProgressHandler serves per-user progress endpoints. All routes are
// wrapped in RequireAuth.
type ProgressHandler struct {
	svc progressService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc progressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: logger.With("handler", "progress")}
}

type recordProgressRequest struct {
	Status    string `json:"status"`
	QuizScore *int   `json:"quizScore"`
}

type progressResponse struct {
	LessonID    string     `json:"lessonId"`
	Status      string     `json:"status"`
	QuizScore   *int       `json:"quizScore,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Record handles PUT /api/v1/progress/{lessonID}.
func (h *ProgressHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	lessonID, err := uuid.Parse(r.PathValue("lessonID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	var req recordProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Record(r.Context(), userID, progress.RecordInput{
		LessonID:  lessonID,
		Status:    domain.ProgressStatus(req.Status),
		QuizScore: req.QuizScore,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProgressResponse(*p))
}

// Get handles GET /api/v1/progress/{lessonID}.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	lessonID, err := uuid.Parse(r.PathValue("lessonID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	p, err := h.svc.Get(r.Context(), userID, lessonID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProgressResponse(*p))
}

// List handles GET /api/v1/progress.
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rows, err := h.svc.List(r.Context(), userID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]progressResponse, 0, len(rows))
	for _, p := range rows {
		resp = append(resp, toProgressResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toProgressResponse(p domain.UserProgress) progressResponse {
	return progressResponse{
		LessonID:    p.LessonID.String(),
		Status:      p.Status.String(),
		QuizScore:   p.QuizScore,
		CompletedAt: p.CompletedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
