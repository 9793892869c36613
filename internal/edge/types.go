package edge

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CacheValue is the compact payload stored against a slug in the edge cache.
type CacheValue struct {
	ID        uuid.UUID  `json:"id"`
	TargetURL string     `json:"targetUrl"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Entry is one key-value pair written to the edge store. The key is the slug
// the routing path resolves.
type Entry struct {
	Key   string     `json:"key"`
	Value CacheValue `json:"value"`
}

// BulkPutResult reports per-batch write outcomes. Bulk writes are not
// all-or-nothing: individual keys can fail while the rest propagate.
type BulkPutResult struct {
	SuccessCount int `json:"successCount"`
	FailedCount  int `json:"failedCount"`
}

// HTTPError represents an HTTP error returned by the edge store API.
type HTTPError struct {
	StatusCode int
	Message    string
	URL        string
}

// Error returns the error message.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s: %s", e.StatusCode, e.URL, e.Message)
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, url, message string) error {
	return &HTTPError{
		StatusCode: statusCode,
		URL:        url,
		Message:    message,
	}
}
