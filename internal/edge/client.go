// Package edge provides the client for the low-latency key-value edge cache
// consulted by the redirect-routing path.
package edge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the default timeout for edge store requests.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBatchSize is the maximum number of entries per bulk put
	// unless configured otherwise.
	DefaultMaxBatchSize = 100

	// MaxResponseSize is the maximum allowed response size (1MB). Bulk put
	// responses are tiny; anything larger indicates a misbehaving backend.
	MaxResponseSize = 1 * 1024 * 1024

	// UserAgent is the user agent string for edge store requests.
	UserAgent = "curtail-syncd/1.0"
)

// Store is the interface to the edge cache backend.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/curtail-dev/curtail-sync-server/internal/edge Store
type Store interface {
	// IsConfigured reports whether an edge backend has been configured.
	IsConfigured() bool

	// MaxBatchSize returns the maximum number of entries accepted per bulk
	// put request.
	MaxBatchSize() int

	// BulkPut writes entries to the edge store and returns per-batch success
	// and failure counts. Writes are idempotent overwrites keyed by slug.
	BulkPut(ctx context.Context, entries []Entry) (BulkPutResult, error)
}

// Client is the HTTP implementation of Store, talking to the edge KV bulk
// write API.
type Client struct {
	endpoint     string
	namespace    string
	token        string
	maxBatchSize int
	client       *http.Client
}

var _ Store = (*Client)(nil)

// ClientOption configures the edge store client.
type ClientOption func(*Client)

// WithToken sets the bearer token used to authenticate against the edge API.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the per-request timeout. Zero keeps DefaultTimeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithMaxBatchSize overrides the maximum bulk put batch size. Zero or
// negative keeps DefaultMaxBatchSize.
func WithMaxBatchSize(size int) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.maxBatchSize = size
		}
	}
}

// NewClient creates an edge store client for the given API endpoint and
// namespace. An empty endpoint yields an unconfigured client: IsConfigured
// reports false and BulkPut refuses to run.
func NewClient(endpoint, namespace string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:     endpoint,
		namespace:    namespace,
		maxBatchSize: DefaultMaxBatchSize,
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// IsConfigured reports whether an edge backend endpoint has been configured.
func (c *Client) IsConfigured() bool {
	return c.endpoint != ""
}

// MaxBatchSize returns the maximum number of entries per bulk put request.
func (c *Client) MaxBatchSize() int {
	return c.maxBatchSize
}

// BulkPut writes entries to the edge store in a single request. The caller is
// responsible for keeping len(entries) within MaxBatchSize.
func (c *Client) BulkPut(ctx context.Context, entries []Entry) (BulkPutResult, error) {
	if !c.IsConfigured() {
		return BulkPutResult{}, fmt.Errorf("edge store not configured")
	}

	body, err := json.Marshal(entries)
	if err != nil {
		return BulkPutResult{}, fmt.Errorf("failed to encode cache entries: %w", err)
	}

	url := fmt.Sprintf("%s/v1/namespaces/%s/bulk", c.endpoint, c.namespace)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return BulkPutResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return BulkPutResult{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return BulkPutResult{}, NewHTTPError(resp.StatusCode, url, resp.Status)
	}

	// Bound the read; +1 to detect responses past the limit.
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	respBody, err := io.ReadAll(limitedReader)
	if err != nil {
		return BulkPutResult{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(respBody)) > MaxResponseSize {
		return BulkPutResult{}, fmt.Errorf("response size exceeds maximum allowed size of %d bytes", MaxResponseSize)
	}

	var result BulkPutResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return BulkPutResult{}, fmt.Errorf("failed to decode bulk put response: %w", err)
	}

	return result, nil
}
