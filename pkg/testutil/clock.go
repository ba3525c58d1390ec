package testutil

import "time"

// FixedClock always returns the same instant until advanced.
type FixedClock struct {
	T time.Time
}

// NewFixedClock returns a clock pinned at 2024-03-01 12:30:45 UTC.
func NewFixedClock() *FixedClock {
	return &FixedClock{T: time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)}
}

// Now implements types.Clock.
func (c *FixedClock) Now() time.Time { return c.T }

// Advance moves the clock forward.
func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// Stamp is the default backup suffix for the current instant.
func (c *FixedClock) Stamp() string { return c.T.UTC().Format("20060102150405") }
