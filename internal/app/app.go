package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/codetrail/codetrail-backend/internal/adapter/postgres"
	catalogrepo "github.com/codetrail/codetrail-backend/internal/adapter/postgres/catalog"
	progressrepo "github.com/codetrail/codetrail-backend/internal/adapter/postgres/progress"
	userrepo "github.com/codetrail/codetrail-backend/internal/adapter/postgres/user"
	"github.com/codetrail/codetrail-backend/internal/auth"
	"github.com/codetrail/codetrail-backend/internal/config"
	authsvc "github.com/codetrail/codetrail-backend/internal/service/auth"
	catalogsvc "github.com/codetrail/codetrail-backend/internal/service/catalog"
	progresssvc "github.com/codetrail/codetrail-backend/internal/service/progress"
	"github.com/codetrail/codetrail-backend/internal/transport/middleware"
	"github.com/codetrail/codetrail-backend/internal/transport/rest"
)

const loginRateLimitPerMinute = 30

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and handlers, and serves HTTP until the
// context is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateForServer(); err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	users := userrepo.New(pool)
	catalog := catalogrepo.New(pool)
	progress := progressrepo.New(pool)

	authService := authsvc.NewService(logger, users, jwtManager, cfg.Auth)
	catalogService := catalogsvc.NewService(logger, catalog, cfg.Content)
	progressService := progresssvc.NewService(logger, progress, catalog)

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
		Auth:     rest.NewAuthHandler(authService, logger),
		Catalog:  rest.NewCatalogHandler(catalogService, logger),
		Progress: rest.NewProgressHandler(progressService, logger),
	}, limiter.Limit(loginRateLimitPerMinute))

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
