package api

import (
	"sync"
	"time"

	"github.com/example/ec-showcase/internal/domain/showcase"
)

// SharedClock is the server-wide rotation clock behind the JSON and HTML
// homepage. Reset replaces the running clock when the interval changes.
type SharedClock struct {
	mu    sync.RWMutex
	clock *showcase.RotationClock
	opts  []showcase.ClockOption
}

func NewSharedClock(interval time.Duration, opts ...showcase.ClockOption) *SharedClock {
	return &SharedClock{
		clock: showcase.NewRotationClock(interval, opts...),
		opts:  opts,
	}
}

func (s *SharedClock) Tick() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.Tick()
}

func (s *SharedClock) Interval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.Interval()
}

// Reset stops the current clock and starts a new one at tick 0.
// It does nothing when interval is unchanged.
func (s *SharedClock) Reset(interval time.Duration) {
	if interval <= 0 {
		interval = showcase.DefaultRotationInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if interval == s.clock.Interval() {
		return
	}
	s.clock.Stop()
	s.clock = showcase.NewRotationClock(interval, s.opts...)
}

func (s *SharedClock) Stop() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.clock.Stop()
}
