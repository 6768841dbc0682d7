package session

import (
	"math"
	"time"
)

// Clock tracks elapsed time from the first qualifying keystroke. Expiry is
// computed from elapsed time rather than tick count, so late or missed ticks
// do not shift the deadline.
type Clock struct {
	duration  time.Duration
	startedAt time.Time
	started   bool
	expired   bool
}

// NewClock returns a clock that has not started.
func NewClock(duration time.Duration) *Clock {
	return &Clock{duration: duration}
}

// Start records now as the start instant. Later calls keep the first instant.
func (c *Clock) Start(now time.Time) {
	if c.started {
		return
	}
	c.started = true
	c.startedAt = now
}

// Started reports whether Start has been called.
func (c *Clock) Started() bool {
	return c.started
}

// StartedAt returns the recorded start instant.
func (c *Clock) StartedAt() time.Time {
	return c.startedAt
}

// Duration returns the configured time budget.
func (c *Clock) Duration() time.Duration {
	return c.duration
}

// Expired reports whether the budget has run out.
func (c *Clock) Expired() bool {
	return c.expired
}

// Tick checks the deadline. It returns true only on the tick that first
// observes elapsed >= duration.
func (c *Clock) Tick(now time.Time) bool {
	if !c.started || c.expired {
		return false
	}
	if now.Sub(c.startedAt) < c.duration {
		return false
	}
	c.expired = true
	return true
}

// Remaining returns the whole seconds left on the readout, never negative.
func (c *Clock) Remaining(now time.Time) int {
	total := int(c.duration / time.Second)
	if !c.started {
		return total
	}
	if c.expired {
		return 0
	}
	passed := int(math.Round(now.Sub(c.startedAt).Seconds()))
	if left := total - passed; left > 0 {
		return left
	}
	return 0
}
