// Package update holds the pieces shared by every service that takes part in
// an app update pass: the loop timer, the app wake signal, widget identity and
// delivery lists.
package update

import (
	"time"

	"github.com/go-drift/weave/pkg/timing"
)

// LoopTimer aggregates the wake time of one app loop iteration.
//
// Every service with a pending deadline registers it here; the loop sleeps
// until the earliest one. Now is frozen for the whole iteration so every
// service sees the same instant.
type LoopTimer struct {
	now  time.Time
	next timing.Deadline
	has  bool
}

// NewLoopTimer returns a loop timer frozen at now.
func NewLoopTimer(now time.Time) *LoopTimer {
	return &LoopTimer{now: now}
}

// Poll resets the timer for a new iteration frozen at now.
func (t *LoopTimer) Poll(now time.Time) {
	t.now = now
	t.next = timing.Deadline{}
	t.has = false
}

// Now returns the frozen instant of the iteration.
func (t *LoopTimer) Now() time.Time {
	return t.now
}

// Register requests a wake-up at d. The earliest registration wins.
func (t *LoopTimer) Register(d timing.Deadline) {
	if !t.has || d.Before(t.next) {
		t.next = d
		t.has = true
	}
}

// Elapsed reports whether d has elapsed at the frozen instant. If it has not,
// d is registered as a wake time.
func (t *LoopTimer) Elapsed(d timing.Deadline) bool {
	if d.ElapsedAt(t.now) {
		return true
	}
	t.Register(d)
	return false
}

// Next returns the earliest registered deadline.
func (t *LoopTimer) Next() (timing.Deadline, bool) {
	return t.next, t.has
}

// Sleep returns how long the loop may sleep before the earliest registered
// deadline, measured from the frozen instant. The boolean is false when
// nothing is registered and the loop may sleep until woken.
func (t *LoopTimer) Sleep() (time.Duration, bool) {
	if !t.has {
		return 0, false
	}
	if t.next.IsMax() {
		return 0, false
	}
	d := t.next.Time().Sub(t.now)
	if d < 0 {
		d = 0
	}
	return d, true
}
