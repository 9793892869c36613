package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveHealth_EmptyHistory(t *testing.T) {
	t.Parallel()

	status := DeriveHealth(nil)

	assert.NotNil(t, status.History)
	assert.Empty(t, status.History)
	assert.Nil(t, status.LastSyncTime)
	assert.Nil(t, status.ApproxCacheSize)
	assert.Nil(t, status.SuccessRatePercent)
}

func TestDeriveHealth_MostRecentSuccessBehindNewerErrors(t *testing.T) {
	t.Parallel()

	successTime := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	olderTime := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	// Newest first: two failures ahead of the last good sync.
	history := []HistoryEntry{
		{Timestamp: successTime.Add(2 * time.Hour), Status: StatusError, Error: "boom"},
		{Timestamp: successTime.Add(time.Hour), Status: StatusError, Error: "boom"},
		{Timestamp: successTime, Status: StatusSuccess, Synced: 42, Total: 42},
		{Timestamp: olderTime, Status: StatusSuccess, Synced: 40, Total: 40},
	}

	status := DeriveHealth(history)

	require.NotNil(t, status.LastSyncTime)
	assert.Equal(t, successTime, *status.LastSyncTime)

	require.NotNil(t, status.ApproxCacheSize)
	assert.Equal(t, 42, *status.ApproxCacheSize, "cache size comes from the most recent success, not the older one")

	require.NotNil(t, status.SuccessRatePercent)
	assert.Equal(t, 50, *status.SuccessRatePercent)
}

func TestDeriveHealth_SuccessRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		statuses []Status
		want     int
	}{
		{
			name:     "all success",
			statuses: []Status{StatusSuccess, StatusSuccess, StatusSuccess},
			want:     100,
		},
		{
			name:     "all failure",
			statuses: []Status{StatusError, StatusError},
			want:     0,
		},
		{
			name:     "skipped counts against the denominator",
			statuses: []Status{StatusSkipped, StatusSkipped, StatusSuccess, StatusSuccess},
			want:     50,
		},
		{
			name:     "rounds to nearest integer",
			statuses: []Status{StatusSuccess, StatusSuccess, StatusError},
			want:     67,
		},
		{
			name:     "rounds down below the midpoint",
			statuses: []Status{StatusSuccess, StatusError, StatusError},
			want:     33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			history := make([]HistoryEntry, 0, len(tt.statuses))
			for _, s := range tt.statuses {
				history = append(history, HistoryEntry{Status: s})
			}

			status := DeriveHealth(history)

			require.NotNil(t, status.SuccessRatePercent)
			assert.Equal(t, tt.want, *status.SuccessRatePercent)
		})
	}
}

func TestDeriveHealth_NoSuccessInHistory(t *testing.T) {
	t.Parallel()

	history := []HistoryEntry{
		{Status: StatusError, Error: "boom"},
		{Status: StatusSkipped},
	}

	status := DeriveHealth(history)

	assert.Nil(t, status.LastSyncTime)
	assert.Nil(t, status.ApproxCacheSize)
	require.NotNil(t, status.SuccessRatePercent)
	assert.Equal(t, 0, *status.SuccessRatePercent)
}
