package sync_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	syncpkg "github.com/curtail-dev/curtail-sync-server/internal/sync"
	syncmocks "github.com/curtail-dev/curtail-sync-server/internal/sync/mocks"
)

func TestScheduler_TriggersPeriodicSyncs(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	syncer := syncmocks.NewMockSyncer(ctrl)
	syncer.EXPECT().Sync(gomock.Any()).Return(syncpkg.Result{}).MinTimes(1)

	scheduler := syncpkg.NewScheduler(syncer, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- scheduler.Start(context.Background())
	}()

	// Let a few ticks fire, then stop and wait for a clean exit.
	time.Sleep(60 * time.Millisecond)
	require.NoError(t, scheduler.Stop())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop in time")
	}
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	syncer := syncmocks.NewMockSyncer(ctrl)
	syncer.EXPECT().Sync(gomock.Any()).Return(syncpkg.Result{}).AnyTimes()

	scheduler := syncpkg.NewScheduler(syncer, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- scheduler.Start(ctx)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not exit after context cancellation")
	}
}
