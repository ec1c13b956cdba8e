// Package timing provides the time source and the Deadline primitive used by
// the scheduler.
//
// Every "now" read by the runtime goes through the package clock so tests can
// freeze and advance time deterministically with a fake clock.
package timing

import (
	"sync/atomic"
	"time"
)

// Clock provides the current instant. The default implementation uses
// system time with its monotonic reading. Tests can inject a fake clock via
// SetClock to control timers deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type clockBox struct{ c Clock }

var clock atomic.Pointer[clockBox]

func init() {
	clock.Store(&clockBox{c: realClock{}})
}

// SetClock replaces the runtime clock. Returns the previous clock
// so callers can restore it during cleanup. Nil restores system time.
func SetClock(c Clock) Clock {
	if c == nil {
		c = realClock{}
	}
	return clock.Swap(&clockBox{c: c}).c
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Load().c.Now() }

// Since returns the time elapsed since t according to the active clock.
func Since(t time.Time) time.Duration { return Now().Sub(t) }
