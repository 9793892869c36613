package links

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pgx pool is required")
}

func TestRedirectRecord_JSONShape(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	rec := RedirectRecord{
		ID:        uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Slug:      "promo",
		TargetURL: "https://example.com/promo",
		ExpiresAt: &expires,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"slug": "promo",
		"targetUrl": "https://example.com/promo",
		"expiresAt": "2026-12-31T00:00:00Z"
	}`, string(data))
}

func TestRedirectRecord_OmitsNilExpiry(t *testing.T) {
	t.Parallel()

	rec := RedirectRecord{
		ID:        uuid.New(),
		Slug:      "docs",
		TargetURL: "https://example.com/docs",
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "expiresAt")
}
