// Package clock provides the ports.Clock implementations used to stamp
// lifecycle results and registry rows.
package clock

import (
	"sync"
	"time"

	"github.com/fakester/radcomponents/ports"
)

// System reads the wall clock in UTC.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Frozen is a clock that only moves when told to.
type Frozen struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFrozen returns a clock stopped at t.
func NewFrozen(t time.Time) *Frozen {
	return &Frozen{now: t}
}

func (f *Frozen) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

// Advance moves the clock forward by d and returns the new time.
func (f *Frozen) Advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	return f.now
}

// Or returns c, or System when c is nil.
func Or(c ports.Clock) ports.Clock {
	if c == nil {
		return System{}
	}
	return c
}

var (
	_ ports.Clock = System{}
	_ ports.Clock = (*Frozen)(nil)
)
