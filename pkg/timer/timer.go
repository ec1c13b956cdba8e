package timer

import (
	"time"

	"github.com/go-drift/weave/pkg/handle"
	"github.com/go-drift/weave/pkg/timing"
	"github.com/go-drift/weave/pkg/update"
	"github.com/go-drift/weave/pkg/vars"
)

// Timer controls an interval timer. Every method mutates the shared state
// directly; the service picks the change up on its next pass.
//
// A Timer obtained from TimerArgs does not keep the timer alive.
type Timer struct {
	strong *handle.Handle[*TimerState]
	weak   handle.WeakHandle[*TimerState]
	signal *update.Signal
}

// TimerVar is a var that updates every time its interval elapses. The timer
// lives while the var is reachable and not stopped.
type TimerVar = vars.ReadOnly[Timer]

func (t Timer) state() *TimerState {
	return t.weak.Data()
}

func (t Timer) wake() {
	if t.signal != nil {
		t.signal.Wake()
	}
}

// Stop cancels the timer for every reference. It cannot be restarted.
func (t Timer) Stop() {
	if t.strong != nil {
		t.strong.ForceDrop()
		return
	}
	if h, ok := t.weak.Upgrade(); ok {
		h.ForceDrop()
	}
}

// IsStopped reports whether the timer was stopped or every handle was
// released.
func (t Timer) IsStopped() bool {
	return t.weak.IsDead()
}

// Interval returns the timer interval.
func (t Timer) Interval() time.Duration {
	s := t.state()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// SetInterval changes the interval. The next deadline is last elapse plus
// the new interval.
func (t Timer) SetInterval(interval time.Duration) {
	s := t.state()
	s.mu.Lock()
	s.interval = interval
	s.mu.Unlock()
	t.wake()
}

// Timestamp returns the last elapse instant, or the start instant if it
// never elapsed.
func (t Timer) Timestamp() time.Time {
	s := t.state()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Deadline returns the next elapse deadline.
func (t Timer) Deadline() timing.Deadline {
	return t.state().Deadline()
}

// IsPaused reports whether the timer is paused.
func (t Timer) IsPaused() bool {
	return t.state().paused.Load()
}

// IsPlaying reports whether the timer is neither paused nor stopped.
func (t Timer) IsPlaying() bool {
	return !t.IsPaused() && !t.IsStopped()
}

// Pause stops the timer from elapsing. Timestamp is kept.
func (t Timer) Pause() {
	t.state().paused.Store(true)
}

// Play resumes the timer. If reset is true the interval restarts now,
// otherwise the original timestamp is kept and the timer elapses as soon as
// last + interval is reached.
func (t Timer) Play(reset bool) {
	s := t.state()
	if reset {
		s.mu.Lock()
		s.last = timing.Now()
		s.mu.Unlock()
	}
	s.paused.Store(false)
	t.wake()
}

// Count returns how many times the timer elapsed.
func (t Timer) Count() uint64 {
	return t.state().count.Load()
}

// SetCount overrides the elapse count.
func (t Timer) SetCount(count uint64) {
	t.state().count.Store(count)
}

// TimerHandle controls a callback interval timer registered with OnInterval.
//
// Release the handle to cancel the timer, or call Perm to keep it running
// with no handle.
type TimerHandle struct {
	Timer
}

// Perm keeps the timer running after this handle is released.
func (h TimerHandle) Perm() {
	h.strong.Perm()
}

// Release drops this handle. The timer stops once every clone is released,
// unless Perm was called.
func (h TimerHandle) Release() {
	h.strong.Release()
}

// Clone returns a new strong handle to the same timer.
func (h TimerHandle) Clone() TimerHandle {
	c := h.strong.Clone()
	return TimerHandle{Timer{strong: c, weak: c.Downgrade(), signal: h.signal}}
}
