// Package api provides the HTTP server exposing the sync trigger and
// observability endpoints.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	v0 "github.com/curtail-dev/curtail-sync-server/internal/api/v0"
	"github.com/curtail-dev/curtail-sync-server/internal/edge"
	syncpkg "github.com/curtail-dev/curtail-sync-server/internal/sync"
)

// ServerOption configures the sync API server
type ServerOption func(*serverConfig)

// serverConfig holds the server configuration
type serverConfig struct {
	middlewares []func(http.Handler) http.Handler
}

// WithMiddlewares adds middleware to the server
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// NewServer creates and configures the HTTP router. The cron secret guards the
// sync trigger endpoint; an empty secret makes the trigger unavailable rather
// than open.
func NewServer(syncer syncpkg.Syncer, store edge.Store, cronSecret string, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{
		middlewares: []func(http.Handler) http.Handler{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()

	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	// Liveness and version endpoints live at root, unauthenticated.
	r.Mount("/", v0.HealthRouter())

	r.Mount("/api/v0", v0.Router(syncer, store, cronSecret))

	return r
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
