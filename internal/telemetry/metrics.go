package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// SyncMetricsMeterName is the name used for the sync metrics meter
	SyncMetricsMeterName = "github.com/curtail-dev/curtail-sync-server/sync"
)

// SyncMetrics holds the OpenTelemetry instruments for sync operation metrics
type SyncMetrics struct {
	syncDuration metric.Float64Histogram
	recordsTotal metric.Int64Gauge
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter
// provider. If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	syncDuration, err := meter.Float64Histogram(
		"curtail_sync_duration_seconds",
		metric.WithDescription("Duration of edge-cache sync attempts in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	recordsTotal, err := meter.Int64Gauge(
		"curtail_sync_records_total",
		metric.WithDescription("Number of redirect records propagated by the last full sync"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		syncDuration: syncDuration,
		recordsTotal: recordsTotal,
	}, nil
}

// RecordSyncDuration records the duration of one sync attempt
func (m *SyncMetrics) RecordSyncDuration(ctx context.Context, duration time.Duration, success bool) {
	if m == nil || m.syncDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}

	m.syncDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordRecordsTotal records the number of records written by a full sync
func (m *SyncMetrics) RecordRecordsTotal(ctx context.Context, count int64) {
	if m == nil || m.recordsTotal == nil {
		return
	}

	m.recordsTotal.Record(ctx, count)
}
