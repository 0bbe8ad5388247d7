package schedule

import (
	"sync"
	"time"
)

// Clock abstracts "now" so due-date arithmetic, urgency buckets and
// streaks can be pinned to a fixed calendar date in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock follows the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock stands still until moved. Scheduling tests set it to a
// known date and advance it across due-date boundaries.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps to an absolute instant.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward from its current instant.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
