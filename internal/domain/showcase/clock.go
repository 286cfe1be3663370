package showcase

import (
	"sync"
	"time"
)

const (
	// DefaultRotationInterval is used when a clock is created without a positive interval
	DefaultRotationInterval = 4 * time.Second
	// HomepageRotationInterval is the homepage showcase's rotation pace
	HomepageRotationInterval = 7 * time.Second
)

// Ticker delivers timer fires. It mirrors the parts of *time.Ticker the clock uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d
type TickerFunc func(d time.Duration) Ticker

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

func newStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// ClockOption customizes a RotationClock
type ClockOption func(*RotationClock)

// WithTicker replaces the wall-clock ticker, mainly for tests
func WithTicker(f TickerFunc) ClockOption {
	return func(c *RotationClock) { c.newTicker = f }
}

// RotationClock is the shared counter that keeps rotating cards of one
// showcase session in lockstep. It starts at 0 and increments by exactly
// one per interval until Stop. After Stop returns the tick is frozen.
type RotationClock struct {
	mu       sync.Mutex
	tick     int
	stopped  bool
	subs     map[int]chan int
	nextSub  int
	interval time.Duration

	newTicker TickerFunc
	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once
}

// NewRotationClock creates a clock and starts it ticking
func NewRotationClock(interval time.Duration, opts ...ClockOption) *RotationClock {
	if interval <= 0 {
		interval = DefaultRotationInterval
	}
	c := &RotationClock{
		subs:      make(map[int]chan int),
		interval:  interval,
		newTicker: newStdTicker,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	t := c.newTicker(interval)
	go c.run(t)
	return c
}

func (c *RotationClock) run(t Ticker) {
	defer close(c.doneCh)
	defer t.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-t.C():
			c.advance()
		}
	}
}

// advance is a no-op once the clock is stopped, so a fire that raced
// with Stop never reaches a subscriber.
func (c *RotationClock) advance() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.tick++
	for _, ch := range c.subs {
		offerLatest(ch, c.tick)
	}
}

// offerLatest replaces any undelivered value so a slow reader only sees the newest tick
func offerLatest(ch chan int, v int) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

// Tick returns the current tick
func (c *RotationClock) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tick
}

// Interval returns the rotation interval
func (c *RotationClock) Interval() time.Duration {
	return c.interval
}

// Subscribe returns a channel receiving each new tick and a cancel func.
// The channel is closed on cancel or when the clock stops.
func (c *RotationClock) Subscribe() (<-chan int, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan int, 1)
	if c.stopped {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// Stop cancels the timer and waits for the ticking goroutine to exit.
// It is safe to call more than once.
func (c *RotationClock) Stop() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.stopped = true
		for id, ch := range c.subs {
			delete(c.subs, id)
			close(ch)
		}
		c.mu.Unlock()

		close(c.stopCh)
		<-c.doneCh
	})
}

// Stopped reports whether Stop has been called
func (c *RotationClock) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
