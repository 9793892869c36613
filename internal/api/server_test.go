package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/curtail-dev/curtail-sync-server/internal/api"
	edgemocks "github.com/curtail-dev/curtail-sync-server/internal/edge/mocks"
	syncpkg "github.com/curtail-dev/curtail-sync-server/internal/sync"
	syncmocks "github.com/curtail-dev/curtail-sync-server/internal/sync/mocks"
)

func TestNewServer_RouteWiring(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	syncer := syncmocks.NewMockSyncer(ctrl)
	syncer.EXPECT().Sync(gomock.Any()).Return(syncpkg.Result{Synced: 1, Total: 1}).AnyTimes()
	syncer.EXPECT().Health(gomock.Any()).Return(syncpkg.HealthStatus{History: []syncpkg.HistoryEntry{}}).AnyTimes()

	store := edgemocks.NewMockStore(ctrl)
	store.EXPECT().IsConfigured().Return(true).AnyTimes()

	router := api.NewServer(syncer, store, "secret",
		api.WithMiddlewares(middleware.RequestID, api.LoggingMiddleware))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"liveness", http.MethodGet, "/health", http.StatusOK},
		{"version", http.MethodGet, "/version", http.StatusOK},
		{"sync status", http.MethodGet, "/api/v0/sync/status", http.StatusOK},
		{"sync trigger without secret", http.MethodPost, "/api/v0/sync", http.StatusUnauthorized},
		{"sync trigger with secret", http.MethodPost, "/api/v0/sync?secret=secret", http.StatusOK},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound},
		{"sync trigger wrong method", http.MethodGet, "/api/v0/sync", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
