package testutil

import (
	"sync"

	"github.com/roach88/inventory/internal/product"
)

// FixedClock is a settable calendar clock for tests.
//
// It satisfies engine.Clock. Unlike the system clock, the day only changes
// when the test calls Set or Advance.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu    sync.Mutex
	today product.Date
}

// NewFixedClock creates a clock pinned to today.
func NewFixedClock(today product.Date) *FixedClock {
	return &FixedClock{today: today}
}

// Today returns the pinned day.
func (c *FixedClock) Today() product.Date {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.today
}

// Set pins the clock to a new day.
func (c *FixedClock) Set(today product.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = today
}

// Advance moves the clock forward by the given number of days.
func (c *FixedClock) Advance(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = c.today.AddDays(days)
}
