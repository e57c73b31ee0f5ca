package sync

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/world"
)

// Scheduler keeps at most one pending respawn per entity.
type Scheduler struct {
	logger    *zap.Logger
	afterFunc func(d time.Duration, f func()) *time.Timer

	mu     sync.Mutex
	timers map[world.NetworkID]*time.Timer
}

// NewScheduler creates an idle Scheduler.
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger:    logger,
		afterFunc: time.AfterFunc,
		timers:    make(map[world.NetworkID]*time.Timer),
	}
}

// Schedule runs fn for id after delay. It returns false and does nothing
// when a timer for id is already pending.
func (s *Scheduler) Schedule(id world.NetworkID, delay time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[id]; ok {
		return false
	}

	var t *time.Timer
	t = s.afterFunc(delay, func() {
		s.mu.Lock()
		current, ok := s.timers[id]
		if !ok || current != t {
			s.mu.Unlock()
			return
		}
		delete(s.timers, id)
		s.mu.Unlock()

		fn()
	})
	s.timers[id] = t

	s.logger.Debug("Respawn scheduled", zap.Uint64("entity", uint64(id)), zap.Duration("delay", delay))
	return true
}

// Cancel stops the pending timer of id.
func (s *Scheduler) Cancel(id world.NetworkID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[id]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, id)
	return true
}

// Pending reports whether id has a timer.
func (s *Scheduler) Pending(id world.NetworkID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
