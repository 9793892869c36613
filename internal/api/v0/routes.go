// Package v0 provides the REST API handlers for sync triggering and status.
package v0

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/curtail-dev/curtail-sync-server/internal/edge"
	syncpkg "github.com/curtail-dev/curtail-sync-server/internal/sync"
	"github.com/curtail-dev/curtail-sync-server/internal/versions"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Routes defines the routes for the sync API with dependency injection
type Routes struct {
	syncer     syncpkg.Syncer
	store      edge.Store
	cronSecret string
}

// NewRoutes creates a new Routes instance with the provided collaborators
func NewRoutes(syncer syncpkg.Syncer, store edge.Store, cronSecret string) *Routes {
	return &Routes{
		syncer:     syncer,
		store:      store,
		cronSecret: cronSecret,
	}
}

// Router creates a new router for the sync API
func Router(syncer syncpkg.Syncer, store edge.Store, cronSecret string) http.Handler {
	routes := NewRoutes(syncer, store, cronSecret)

	r := chi.NewRouter()

	r.Post("/sync", routes.triggerSync)
	r.Get("/sync/status", routes.getSyncStatus)

	return r
}

// triggerSync handles POST /api/v0/sync, the endpoint external cron services
// call on a fixed schedule.
//
// The caller authenticates with the shared cron secret, via either an
// "Authorization: Bearer <secret>" header or a "?secret=" query parameter.
// A deployment without the secret configured gets 500 on every call: an
// unauthenticated trigger must never fall open.
func (rr *Routes) triggerSync(w http.ResponseWriter, r *http.Request) {
	if rr.cronSecret == "" {
		slog.Error("Sync trigger called but no cron secret is configured")
		rr.writeErrorResponse(w, "sync secret is not configured", http.StatusInternalServerError)
		return
	}

	if !rr.authorized(r) {
		rr.writeErrorResponse(w, "invalid sync secret", http.StatusUnauthorized)
		return
	}

	if !rr.store.IsConfigured() {
		rr.writeErrorResponse(w, "edge store not configured", http.StatusServiceUnavailable)
		return
	}

	result := rr.syncer.Sync(r.Context())
	rr.writeJSONResponse(w, result)
}

// authorized checks the presented secret against the configured one in
// constant time.
func (rr *Routes) authorized(r *http.Request) bool {
	presented := r.URL.Query().Get("secret")
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			presented = token
		}
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(rr.cronSecret)) == 1
}

// getSyncStatus handles GET /api/v0/sync/status, returning the derived health
// summary for dashboards.
func (rr *Routes) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	status := rr.syncer.Health(r.Context())
	rr.writeJSONResponse(w, status)
}

// HealthRouter creates a router for health check endpoints
func HealthRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles liveness check requests
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// versionHandler handles version requests
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(versions.GetVersionInfo()); err != nil {
		slog.Error("Failed to encode version info", "error", err)
	}
}

// writeJSONResponse writes a JSON response with proper headers
func (*Routes) writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// writeErrorResponse writes a standardized error response
func (*Routes) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}
