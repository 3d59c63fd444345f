package rest

import (
	"net/http"

	"github.com/codetrail/codetrail-backend/internal/transport/middleware"
)

// Handlers bundles the endpoint handlers the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Progress *ProgressHandler
}

// NewRouter mounts all routes on a ServeMux. loginLimit is applied to the
// credential endpoints only; requireAuth wraps everything that needs an
// authenticated user.
func NewRouter(h Handlers, loginLimit middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.Handle("POST /api/v1/auth/register", loginLimit(http.HandlerFunc(h.Auth.Register)))
	mux.Handle("POST /api/v1/auth/login", loginLimit(http.HandlerFunc(h.Auth.Login)))
	mux.Handle("GET /api/v1/auth/me", middleware.RequireAuth(http.HandlerFunc(h.Auth.Me)))

	mux.HandleFunc("GET /api/v1/categories", h.Catalog.ListCategories)
	mux.HandleFunc("GET /api/v1/categories/{slug}/topics", h.Catalog.ListTopics)
	mux.HandleFunc("GET /api/v1/topics/{slug}", h.Catalog.GetTopic)
	mux.HandleFunc("GET /api/v1/lessons/{id}", h.Catalog.GetLesson)
	mux.HandleFunc("GET /api/v1/search", h.Catalog.Search)

	mux.Handle("GET /api/v1/progress", middleware.RequireAuth(http.HandlerFunc(h.Progress.List)))
	mux.Handle("GET /api/v1/progress/{lessonID}", middleware.RequireAuth(http.HandlerFunc(h.Progress.Get)))
	mux.Handle("PUT /api/v1/progress/{lessonID}", middleware.RequireAuth(http.HandlerFunc(h.Progress.Record)))

	return mux
}
