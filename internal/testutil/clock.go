package testutil

import (
	"sync"
	"time"
)

// StepClock is a deterministic clock for elapsed-time assertions. Every
// call to Now advances it by a fixed step, so a measured interval between
// two readings is always exactly one step.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu       sync.Mutex
	start    time.Time
	now      time.Time
	step     time.Duration
	readings int
}

// NewStepClock creates a clock at start that advances by step per reading.
// The first call to Now returns start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{start: start, now: start, step: step}
}

// Now returns the current reading and advances the clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	c.readings++
	return t
}

// Readings reports how many times Now has been called.
func (c *StepClock) Readings() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readings
}

// Reset rewinds the clock to its start.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
	c.readings = 0
}
