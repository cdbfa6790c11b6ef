package store

import (
	"sync"
	"time"
)

// Scheduler expires notifications after a fixed window. Every scheduled id owns one timer;
// cancelling the id stops the timer, and a timer that fires after it was cancelled or replaced
// does nothing.
type Scheduler struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[int64]*time.Timer
	expire  func(id int64)
}

// NewScheduler creates a scheduler that calls expire for every id whose window has passed.
func NewScheduler(ttl time.Duration, expire func(id int64)) *Scheduler {
	return &Scheduler{
		ttl:     ttl,
		pending: make(map[int64]*time.Timer),
		expire:  expire,
	}
}

// Schedule starts the expiry timer for id, replacing any timer already running for it.
func (s *Scheduler) Schedule(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.pending[id]; ok {
		old.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(s.ttl, func() {
		s.mu.Lock()
		current, ok := s.pending[id]
		if !ok || current != timer {
			s.mu.Unlock()
			return
		}
		delete(s.pending, id)
		s.mu.Unlock()
		s.expire(id)
	})
	s.pending[id] = timer
}

// Cancel stops the timer for id if one is pending.
func (s *Scheduler) Cancel(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.pending[id]; ok {
		timer.Stop()
		delete(s.pending, id)
	}
}

// Pending returns the number of running timers.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.pending {
		timer.Stop()
		delete(s.pending, id)
	}
}
