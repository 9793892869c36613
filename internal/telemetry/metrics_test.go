package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewSyncMetrics_NilProvider(t *testing.T) {
	t.Parallel()

	metrics, err := NewSyncMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, metrics)
}

func TestNewSyncMetrics_NoopProvider(t *testing.T) {
	t.Parallel()

	metrics, err := NewSyncMetrics(noop.NewMeterProvider())
	require.NoError(t, err)
	require.NotNil(t, metrics)

	// Recording through a no-op provider must not panic.
	ctx := context.Background()
	assert.NotPanics(t, func() {
		metrics.RecordSyncDuration(ctx, 2*time.Second, true)
		metrics.RecordSyncDuration(ctx, 500*time.Millisecond, false)
		metrics.RecordRecordsTotal(ctx, 42)
	})
}

func TestSyncMetrics_NilReceiverSafety(t *testing.T) {
	t.Parallel()

	var metrics *SyncMetrics

	ctx := context.Background()
	assert.NotPanics(t, func() {
		metrics.RecordSyncDuration(ctx, time.Second, true)
		metrics.RecordRecordsTotal(ctx, 1)
	})
}
