package timer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/weave/pkg/timing"
)

// TimerState is the state shared by every reference to an interval timer.
// The service only polls it; all control happens through Timer.
type TimerState struct {
	paused atomic.Bool
	count  atomic.Uint64

	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func newTimerState(interval time.Duration, paused bool, now time.Time) *TimerState {
	s := &TimerState{interval: interval, last: now}
	s.paused.Store(paused)
	return s
}

// Deadline returns the next elapse instant, last + interval.
func (s *TimerState) Deadline() timing.Deadline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return timing.At(s.last.Add(s.interval))
}

func (s *TimerState) elapse(now time.Time) timing.Deadline {
	s.count.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = now
	return timing.At(now.Add(s.interval))
}

// DeadlineState is the state shared by every reference to a one-shot
// deadline handler.
type DeadlineState struct {
	deadline timing.Deadline
	executed atomic.Bool
}

// DeadlineArgs is the value of a DeadlineVar and the argument of
// OnDeadline handlers.
type DeadlineArgs struct {
	// Timestamp is when the deadline was observed elapsed, or when it was
	// registered for the initial value of a DeadlineVar.
	Timestamp time.Time
	// Deadline is the registered deadline.
	Deadline timing.Deadline
}

// HasElapsed reports whether the args were produced by the deadline elapsing.
func (a DeadlineArgs) HasElapsed() bool {
	return a.Deadline.ElapsedAt(a.Timestamp)
}

// TimerArgs is the argument of OnInterval handlers.
type TimerArgs struct {
	// Timestamp is when the timer was observed elapsed.
	Timestamp time.Time
	// Deadline is the deadline that elapsed.
	Deadline timing.Deadline
	// Timer controls the timer from inside the handler. It does not keep
	// the timer alive.
	Timer Timer
}
