package sync

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_RecordAndList(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	assert.Empty(t, h.List())
	assert.Equal(t, 0, h.Len())

	first := HistoryEntry{
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    StatusSuccess,
		Synced:    10,
		Total:     10,
	}
	second := HistoryEntry{
		Timestamp: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Status:    StatusError,
		Error:     "boom",
	}

	h.Record(first)
	h.Record(second)

	entries := h.List()
	require.Len(t, entries, 2)
	assert.Equal(t, second, entries[0], "most recent entry must come first")
	assert.Equal(t, first, entries[1])
}

func TestHistory_EvictsOldestAtCapacity(t *testing.T) {
	t.Parallel()

	h := NewHistory()

	for i := 0; i < HistoryCapacity+5; i++ {
		h.Record(HistoryEntry{
			Status: StatusSuccess,
			Error:  fmt.Sprintf("entry-%d", i),
		})
	}

	entries := h.List()
	require.Len(t, entries, HistoryCapacity)

	// Newest first: the last recorded entry heads the list, and the five
	// oldest entries were evicted.
	assert.Equal(t, fmt.Sprintf("entry-%d", HistoryCapacity+4), entries[0].Error)
	assert.Equal(t, "entry-5", entries[HistoryCapacity-1].Error)
}

func TestHistory_ListReturnsCopy(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	h.Record(HistoryEntry{Status: StatusSuccess, Synced: 3, Total: 3})

	entries := h.List()
	entries[0].Synced = 999

	fresh := h.List()
	assert.Equal(t, 3, fresh[0].Synced, "mutating the returned slice must not affect internal state")
}

func TestHistory_Reset(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	h.Record(HistoryEntry{Status: StatusSkipped})
	h.Record(HistoryEntry{Status: StatusSuccess})
	require.Equal(t, 2, h.Len())

	h.Reset()

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.List())
}
