package store

import (
	"sync"
	"time"
)

// IDSource hands out notification ids derived from the clock in milliseconds. Ids are strictly
// increasing even when the clock stands still or goes backwards.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource creates an id source reading the given clock.
func NewIDSource(now func() time.Time) *IDSource {
	return &IDSource{now: now}
}

// Next returns the next id.
func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
