package sync

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Scheduler triggers periodic sync attempts for deployments that run as a
// long-lived process instead of relying on an external cron.
type Scheduler interface {
	// Start begins the periodic trigger loop. Blocks until the context is
	// cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the scheduler.
	Stop() error
}

// tickerScheduler is the default implementation of Scheduler.
type tickerScheduler struct {
	syncer   Syncer
	interval time.Duration

	// Lifecycle management
	cancelFunc context.CancelFunc
	done       chan struct{}
}

// NewScheduler creates a scheduler that triggers a sync every interval, with
// jitter applied so multiple instances do not hit the stores simultaneously.
func NewScheduler(syncer Syncer, interval time.Duration) Scheduler {
	return &tickerScheduler{
		syncer:   syncer,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// jitteredInterval returns the configured interval with a random offset of up
// to ±10% applied.
func (s *tickerScheduler) jitteredInterval() time.Duration {
	jitter := s.interval / 10
	if jitter <= 0 {
		return s.interval
	}
	//nolint:gosec // G404: Non-cryptographic randomness is sufficient for scheduling jitter
	offset := time.Duration(rand.Int64N(int64(2*jitter))) - jitter
	return s.interval + offset
}

// Start begins the periodic trigger loop.
func (s *tickerScheduler) Start(ctx context.Context) error {
	slog.Info("Starting background sync scheduler", "interval", s.interval)

	schedCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	defer func() {
		close(s.done)
		slog.Info("Background sync scheduler shutting down")
	}()

	ticker := time.NewTicker(s.jitteredInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.syncer.Sync(schedCtx)

			// Recalculate the interval with fresh jitter for the next tick.
			ticker.Reset(s.jitteredInterval())
		case <-schedCtx.Done():
			slog.Info("Sync scheduler stopping")
			return nil
		}
	}
}

// Stop gracefully stops the scheduler and waits for the loop to exit.
func (s *tickerScheduler) Stop() error {
	if s.cancelFunc != nil {
		slog.Info("Stopping sync scheduler")
		s.cancelFunc()
		<-s.done
	}
	return nil
}
