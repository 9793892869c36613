package sync

import "sync/atomic"

// DirtyTracker records whether the authoritative store may have changed since
// the last fully-successful sync.
//
// The flag only ever transitions false->true (by mutators) or true->false (by
// a sync attempt with zero write failures), so races resolve safely: a
// mutation arriving mid-sync simply guarantees the next sync is not skipped.
type DirtyTracker struct {
	dirty atomic.Bool
}

// NewDirtyTracker returns a tracker that starts dirty. After a fresh deploy
// the edge cache must be assumed stale.
func NewDirtyTracker() *DirtyTracker {
	t := &DirtyTracker{}
	t.dirty.Store(true)
	return t
}

// MarkDirty flags that the authoritative store has changed.
func (t *DirtyTracker) MarkDirty() {
	t.dirty.Store(true)
}

// IsDirty reports whether the edge cache may need a resync.
func (t *DirtyTracker) IsDirty() bool {
	return t.dirty.Load()
}

// Clear resets the flag. Only the sync engine calls this, and only after an
// attempt that completed with zero write failures.
func (t *DirtyTracker) Clear() {
	t.dirty.Store(false)
}
