package poller

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Scheduler runs at most one recurring job on a fixed delay. Start replaces
// any running job; Stop is idempotent. The single-handle invariant is what
// keeps a mode re-entry from leaking timers or doubling network traffic.
type Scheduler struct {
	logger *logrus.Logger

	mu     sync.Mutex
	cancel chan struct{}
	done   chan struct{}
}

func NewScheduler(logger *logrus.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Start cancels any running job, then invokes callback every interval until
// Stop or a later Start. A callback error is logged and the next tick
// proceeds; a missed refresh is tolerated.
func (s *Scheduler) Start(interval time.Duration, callback func() error) {
	s.mu.Lock()
	s.stopLocked()

	cancel := make(chan struct{})
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-cancel:
				return
			case <-ticker.C:
				if err := callback(); err != nil {
					s.logger.WithError(err).Warn("Poll tick failed")
				}
			}
		}
	}()
}

// Stop cancels the running job, if any, and waits for its goroutine to
// finish. Stopping an idle scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()
}

// Running reports whether a job is currently scheduled.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) stopLocked() {
	if s.cancel == nil {
		return
	}
	close(s.cancel)
	<-s.done
	s.cancel = nil
	s.done = nil
}
