package edge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_IsConfigured(t *testing.T) {
	t.Parallel()

	assert.False(t, NewClient("", "prod").IsConfigured())
	assert.True(t, NewClient("https://edge.example.com", "prod").IsConfigured())
}

func TestClient_MaxBatchSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultMaxBatchSize, NewClient("https://edge.example.com", "prod").MaxBatchSize())
	assert.Equal(t, 25, NewClient("https://edge.example.com", "prod", WithMaxBatchSize(25)).MaxBatchSize())
	assert.Equal(t, DefaultMaxBatchSize, NewClient("https://edge.example.com", "prod", WithMaxBatchSize(0)).MaxBatchSize())
}

func TestClient_BulkPut(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	expires := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Key: "promo", Value: CacheValue{ID: id, TargetURL: "https://example.com/promo", ExpiresAt: &expires}},
		{Key: "docs", Value: CacheValue{ID: uuid.New(), TargetURL: "https://example.com/docs"}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/namespaces/prod/bulk", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))

		var got []Entry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Len(t, got, 2)
		assert.Equal(t, "promo", got[0].Key)
		assert.Equal(t, "https://example.com/promo", got[0].Value.TargetURL)
		require.NotNil(t, got[0].Value.ExpiresAt)
		assert.Nil(t, got[1].Value.ExpiresAt)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"successCount": 2, "failedCount": 0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "prod", WithToken("secret-token"))

	result, err := client.BulkPut(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, BulkPutResult{SuccessCount: 2}, result)
}

func TestClient_BulkPut_PartialFailureCounts(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"successCount": 1, "failedCount": 1}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "prod")

	result, err := client.BulkPut(context.Background(), []Entry{{Key: "a"}, {Key: "b"}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
}

func TestClient_BulkPut_NoAuthHeaderWithoutToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"successCount": 1, "failedCount": 0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "prod")

	_, err := client.BulkPut(context.Background(), []Entry{{Key: "a"}})
	require.NoError(t, err)
}

func TestClient_BulkPut_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "prod")

	_, err := client.BulkPut(context.Background(), []Entry{{Key: "a"}})
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
}

func TestClient_BulkPut_Unconfigured(t *testing.T) {
	t.Parallel()

	client := NewClient("", "prod")

	_, err := client.BulkPut(context.Background(), []Entry{{Key: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestClient_BulkPut_InvalidResponseBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "prod")

	_, err := client.BulkPut(context.Background(), []Entry{{Key: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
