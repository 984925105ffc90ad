// Package clock provides the substitutable time source used for every
// "now" read in the service. Nothing else calls time.Now directly.
package clock

import (
	"fmt"
	"sync"
	"time"
)

// Clock returns the current date-time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock and reports it in a fixed location.
type System struct {
	loc *time.Location
}

// NewSystem creates a wall clock reporting times in loc.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{loc: loc}
}

// Now returns the current time in the clock's location.
func (c *System) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location returns the location all times are reported in.
func (c *System) Location() *time.Location {
	return c.loc
}

// LoadLocation resolves an IANA zone name. Empty and "Local" mean the host zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Fixed is a settable clock for tests and simulations.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed creates a clock frozen at now.
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

// Now returns the frozen time.
func (c *Fixed) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now.
func (c *Fixed) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by d.
func (c *Fixed) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
