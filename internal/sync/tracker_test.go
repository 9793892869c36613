package sync

import (
	stdsync "sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDirtyTracker_StartsDirty(t *testing.T) {
	t.Parallel()

	tracker := NewDirtyTracker()

	assert.True(t, tracker.IsDirty(), "a fresh tracker must report dirty so the first sync runs")
}

func TestDirtyTracker_ClearAndMark(t *testing.T) {
	t.Parallel()

	tracker := NewDirtyTracker()

	tracker.Clear()
	assert.False(t, tracker.IsDirty())

	tracker.MarkDirty()
	assert.True(t, tracker.IsDirty())

	// Marking an already-dirty tracker is a no-op.
	tracker.MarkDirty()
	assert.True(t, tracker.IsDirty())

	tracker.Clear()
	assert.False(t, tracker.IsDirty())
}

func TestDirtyTracker_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	tracker := NewDirtyTracker()

	var wg stdsync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			tracker.MarkDirty()
		}()
		go func() {
			defer wg.Done()
			_ = tracker.IsDirty()
		}()
	}
	wg.Wait()

	assert.True(t, tracker.IsDirty())
}
