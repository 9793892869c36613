package sync

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/curtail-dev/curtail-sync-server/internal/edge"
	"github.com/curtail-dev/curtail-sync-server/internal/links"
	otelutil "github.com/curtail-dev/curtail-sync-server/internal/otel"
	"github.com/curtail-dev/curtail-sync-server/internal/telemetry"
)

// DefaultTimeout bounds one full sync attempt, fetch through last batch.
const DefaultTimeout = 60 * time.Second

// fetchFailedMessage is the operator-facing message recorded when the
// authoritative store cannot be read.
const fetchFailedMessage = "Failed to fetch records from source"

// Result is the outcome of one reconciliation attempt. For completed
// (non-skipped) attempts, Synced + Failed == Total.
type Result struct {
	Synced     int    `json:"synced"`
	Failed     int    `json:"failed"`
	Total      int    `json:"total"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// RecordSource lists the full snapshot of redirect records from the
// authoritative store.
//
//go:generate mockgen -destination=mocks/mock_sync.go -package=mocks github.com/curtail-dev/curtail-sync-server/internal/sync RecordSource,Syncer
type RecordSource interface {
	ListRedirects(ctx context.Context) ([]links.RedirectRecord, error)
}

// Syncer reconciles the edge cache with the authoritative store.
type Syncer interface {
	// Sync performs one reconciliation attempt. It never returns a Go
	// error; every failure mode is represented in the Result.
	Sync(ctx context.Context) Result

	// Health derives the operational status from the attempt history,
	// triggering one sync first if no attempts have been recorded yet.
	Health(ctx context.Context) HealthStatus
}

// defaultSyncer is the default implementation of Syncer.
type defaultSyncer struct {
	source  RecordSource
	store   edge.Store
	tracker *DirtyTracker
	history *History
	timeout time.Duration
	metrics *telemetry.SyncMetrics
	tracer  trace.Tracer
}

// Option configures the syncer.
type Option func(*defaultSyncer)

// WithTimeout bounds each sync attempt. Zero keeps DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *defaultSyncer) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithMetrics sets the sync metrics. Nil metrics are safe no-ops.
func WithMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(s *defaultSyncer) {
		s.metrics = metrics
	}
}

// WithTracer sets the OpenTelemetry tracer for sync attempts.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *defaultSyncer) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// NewSyncer creates a syncer with injected collaborators. The tracker and
// history are shared with the trigger surfaces and mutation paths.
func NewSyncer(
	source RecordSource,
	store edge.Store,
	tracker *DirtyTracker,
	history *History,
	opts ...Option,
) Syncer {
	s := &defaultSyncer{
		source:  source,
		store:   store,
		tracker: tracker,
		history: history,
		timeout: DefaultTimeout,
		tracer:  tracenoop.NewTracerProvider().Tracer(telemetry.SyncMetricsMeterName),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sync performs one full-snapshot reconciliation attempt.
//
// Branch order matters: an unconfigured edge store is a configuration
// problem, not an operational event, so it returns before any history is
// recorded. A clean tracker records a skipped attempt and touches neither
// store. Otherwise the full snapshot is fetched, mapped, and written in
// bounded batches; the dirty flag is cleared only when zero writes failed.
func (s *defaultSyncer) Sync(ctx context.Context) Result {
	ctx, span := otelutil.StartSpan(ctx, s.tracer, "sync.attempt")
	defer span.End()

	if !s.store.IsConfigured() {
		slog.Warn("Edge store not configured, sync unavailable")
		return Result{Error: "edge store not configured"}
	}

	if !s.tracker.IsDirty() {
		s.history.Record(HistoryEntry{
			Timestamp: time.Now().UTC(),
			Status:    StatusSkipped,
		})
		span.SetAttributes(otelutil.AttrSyncStatus.String(string(StatusSkipped)))
		slog.Debug("Cache is clean, sync skipped")
		return Result{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()

	records, err := s.source.ListRedirects(ctx)
	if err != nil {
		durationMs := time.Since(start).Milliseconds()
		slog.Error("Failed to fetch redirect records from authoritative store", "error", err)
		s.history.Record(HistoryEntry{
			Timestamp:  time.Now().UTC(),
			Status:     StatusError,
			DurationMs: durationMs,
			Error:      fetchFailedMessage,
		})
		otelutil.RecordError(span, err)
		span.SetAttributes(otelutil.AttrSyncStatus.String(string(StatusError)))
		s.metrics.RecordSyncDuration(ctx, time.Since(start), false)
		// Dirty flag stays set so the next trigger retries the full snapshot.
		return Result{DurationMs: durationMs, Error: fetchFailedMessage}
	}

	entries := make([]edge.Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, edge.Entry{
			Key: rec.Slug,
			Value: edge.CacheValue{
				ID:        rec.ID,
				TargetURL: rec.TargetURL,
				ExpiresAt: rec.ExpiresAt,
			},
		})
	}

	synced, failed := s.writeBatches(ctx, entries)
	durationMs := time.Since(start).Milliseconds()

	status := StatusSuccess
	if failed > 0 {
		status = StatusError
	}
	s.history.Record(HistoryEntry{
		Timestamp:  time.Now().UTC(),
		Status:     status,
		Synced:     synced,
		Failed:     failed,
		Total:      synced + failed,
		DurationMs: durationMs,
	})

	if failed == 0 {
		s.tracker.Clear()
	}

	span.SetAttributes(
		otelutil.AttrSyncStatus.String(string(status)),
		otelutil.AttrSyncSynced.Int(synced),
		otelutil.AttrSyncFailed.Int(failed),
		otelutil.AttrSyncTotal.Int(synced+failed),
	)
	s.metrics.RecordSyncDuration(ctx, time.Since(start), failed == 0)
	s.metrics.RecordRecordsTotal(ctx, int64(synced))

	slog.Info("Sync attempt finished",
		"status", status,
		"synced", synced,
		"failed", failed,
		"duration_ms", durationMs)

	return Result{
		Synced:     synced,
		Failed:     failed,
		Total:      synced + failed,
		DurationMs: durationMs,
	}
}

// writeBatches writes entries in chunks bounded by the store's maximum batch
// size and accumulates per-entry outcomes. A transport error counts the whole
// chunk as failed. Failed entries are not retried within the attempt: the
// next full re-sync is the retry mechanism, which is safe because writes are
// idempotent overwrites keyed by slug.
func (s *defaultSyncer) writeBatches(ctx context.Context, entries []edge.Entry) (synced, failed int) {
	batchSize := s.store.MaxBatchSize()
	if batchSize <= 0 {
		batchSize = edge.DefaultMaxBatchSize
	}

	for begin := 0; begin < len(entries); begin += batchSize {
		end := min(begin+batchSize, len(entries))
		batch := entries[begin:end]

		res, err := s.store.BulkPut(ctx, batch)
		if err != nil {
			slog.Error("Bulk put to edge store failed",
				"batch_start", begin,
				"batch_size", len(batch),
				"error", err)
			failed += len(batch)
			continue
		}
		synced += res.SuccessCount
		failed += res.FailedCount
	}

	return synced, failed
}

// Health derives the operational status from the attempt history. A
// freshly-deployed instance has no history yet, so one sync is triggered
// first to keep the dashboard from reporting an empty state.
func (s *defaultSyncer) Health(ctx context.Context) HealthStatus {
	if s.history.Len() == 0 {
		s.Sync(ctx)
	}
	return DeriveHealth(s.history.List())
}
