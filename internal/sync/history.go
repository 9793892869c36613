package sync

import (
	"sync"
	"time"
)

// HistoryCapacity is the maximum number of sync attempts kept in memory.
const HistoryCapacity = 50

// Status classifies the outcome of one sync attempt.
type Status string

const (
	// StatusSuccess means every cache entry propagated to the edge store.
	StatusSuccess Status = "success"

	// StatusError means the fetch failed or at least one write failed.
	StatusError Status = "error"

	// StatusSkipped means the cache was clean and neither store was touched.
	StatusSkipped Status = "skipped"
)

// HistoryEntry is an immutable record of one sync attempt.
// For non-skipped entries, Synced + Failed == Total.
type HistoryEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Status     Status    `json:"status"`
	Synced     int       `json:"synced"`
	Failed     int       `json:"failed"`
	Total      int       `json:"total"`
	DurationMs int64     `json:"durationMs"`
	Error      string    `json:"error,omitempty"`
}

// History is a bounded, newest-first log of recent sync attempts. It exists
// for observability only and resets on process restart.
type History struct {
	mu       sync.Mutex
	entries  []HistoryEntry
	capacity int
}

// NewHistory returns an empty history bounded at HistoryCapacity entries.
func NewHistory() *History {
	return &History{capacity: HistoryCapacity}
}

// Record prepends an entry, evicting the oldest entry once the buffer is at
// capacity.
func (h *History) Record(entry HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) < h.capacity {
		h.entries = append(h.entries, HistoryEntry{})
	}
	// Shift right by one; when already at capacity this drops the tail.
	copy(h.entries[1:], h.entries)
	h.entries[0] = entry
}

// List returns a copy of the entries, newest first. Callers cannot mutate
// internal state through the returned slice.
func (h *History) List() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len reports the current number of recorded attempts.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

// Reset empties the buffer. Administrative and test use only.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
}
