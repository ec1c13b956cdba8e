package timer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/handle"
	"github.com/go-drift/weave/pkg/timing"
	"github.com/go-drift/weave/pkg/update"
	"github.com/go-drift/weave/pkg/vars"
)

type deadlineVarEntry struct {
	deadline timing.Deadline
	v        vars.WeakVar[DeadlineArgs]
}

type timerVarEntry struct {
	owner *handle.Owner[*TimerState]
	v     vars.WeakVar[Timer]
}

type deadlineHandlerEntry struct {
	owner   *handle.Owner[*DeadlineState]
	handler func(DeadlineArgs)
	pending bool
	args    DeadlineArgs
}

type timerHandlerEntry struct {
	owner   *handle.Owner[*TimerState]
	handler func(TimerArgs)
	pending bool
	args    TimerArgs
}

// Stats counts the live registrations of a Service.
type Stats struct {
	Deadlines        int
	Waiters          int
	Timers           int
	DeadlineHandlers int
	TimerHandlers    int
	// Fired counts handler executions since the service was created.
	Fired uint64
}

// Service owns every pending timer of an app.
type Service struct {
	signal *update.Signal
	vars   *vars.Service

	mu                 sync.Mutex
	deadlines          []deadlineVarEntry
	waiters            []*Waiter
	timers             []timerVarEntry
	deadlineHandlers   []*deadlineHandlerEntry
	timerHandlers      []*timerHandlerEntry
	hasPendingHandlers bool

	fired atomic.Uint64
}

// NewService returns a service that wakes the app through signal and binds
// its vars to varsService. Either may be nil: a nil signal never wakes and a
// nil vars service means vars.Current at registration time.
func NewService(signal *update.Signal, varsService *vars.Service) *Service {
	return &Service{signal: signal, vars: varsService}
}

var current atomic.Pointer[Service]

func init() {
	current.Store(NewService(nil, nil))
}

// Current returns the installed service.
func Current() *Service {
	return current.Load()
}

// Install makes s the current service and returns the previous one.
func Install(s *Service) *Service {
	return current.Swap(s)
}

func (s *Service) varsService() *vars.Service {
	if s.vars != nil {
		return s.vars
	}
	return vars.Current()
}

func (s *Service) wake() {
	if s.signal != nil {
		s.signal.Wake()
	}
}

// Deadline returns a var that updates once, when d elapses.
func (s *Service) Deadline(d timing.Deadline) DeadlineVar {
	v := vars.NewIn(s.varsService(), DeadlineArgs{Timestamp: timing.Now(), Deadline: d})
	s.mu.Lock()
	s.deadlines = append(s.deadlines, deadlineVarEntry{deadline: d, v: v.Downgrade()})
	s.mu.Unlock()
	s.wake()
	return v.ReadOnly()
}

// WaitDeadline returns a waiter released when d elapses. A deadline that
// already elapsed returns a released waiter.
func (s *Service) WaitDeadline(d timing.Deadline) *Waiter {
	w := newWaiter(d)
	if d.HasElapsed() {
		w.wake()
		return w
	}
	s.mu.Lock()
	s.waiters = append(s.waiters, w)
	s.mu.Unlock()
	s.wake()
	return w
}

// Wait blocks until d elapses or ctx is done.
func (s *Service) Wait(ctx context.Context, d timing.Deadline) error {
	return s.WaitDeadline(d).Wait(ctx)
}

// Interval returns a var that updates every time interval elapses.
func (s *Service) Interval(interval time.Duration, paused bool) TimerVar {
	owner, h := handle.New(newTimerState(interval, paused, timing.Now()))
	t := Timer{strong: h, weak: h.Downgrade(), signal: s.signal}
	v := vars.NewIn(s.varsService(), t)
	s.mu.Lock()
	s.timers = append(s.timers, timerVarEntry{owner: owner, v: v.Downgrade()})
	s.mu.Unlock()
	s.wake()
	return v.ReadOnly()
}

// OnDeadline registers handler to run once when d elapses.
func (s *Service) OnDeadline(d timing.Deadline, handler func(DeadlineArgs)) DeadlineHandle {
	owner, h := handle.New(&DeadlineState{deadline: d})
	s.mu.Lock()
	s.deadlineHandlers = append(s.deadlineHandlers, &deadlineHandlerEntry{owner: owner, handler: handler})
	s.mu.Unlock()
	s.wake()
	return DeadlineHandle{h: h}
}

// OnInterval registers handler to run every time interval elapses.
func (s *Service) OnInterval(interval time.Duration, paused bool, handler func(TimerArgs)) TimerHandle {
	owner, h := handle.New(newTimerState(interval, paused, timing.Now()))
	s.mu.Lock()
	s.timerHandlers = append(s.timerHandlers, &timerHandlerEntry{owner: owner, handler: handler})
	s.mu.Unlock()
	s.wake()
	return TimerHandle{Timer{strong: h, weak: h.Downgrade(), signal: s.signal}}
}

// NextDeadline registers the next deadline of every live entry into timer.
// Dead entries are left for ApplyUpdates to purge.
func (s *Service) NextDeadline(timer *update.LoopTimer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasPendingHandlers {
		timer.Register(timing.Epoch)
	}
	for _, e := range s.deadlines {
		if _, ok := e.v.Upgrade(); ok {
			timer.Register(e.deadline)
		}
	}
	for _, w := range s.waiters {
		if !w.canceled.Load() {
			timer.Register(w.deadline)
		}
	}
	for _, e := range s.timers {
		if _, ok := e.v.Upgrade(); !ok || e.owner.IsDropped() {
			continue
		}
		if st := e.owner.Data(); !st.paused.Load() {
			timer.Register(st.Deadline())
		}
	}
	for _, e := range s.deadlineHandlers {
		if !e.pending && !e.owner.IsDropped() {
			timer.Register(e.owner.Data().deadline)
		}
	}
	for _, e := range s.timerHandlers {
		if e.owner.IsDropped() {
			continue
		}
		if st := e.owner.Data(); !st.paused.Load() {
			timer.Register(st.Deadline())
		}
	}
}

// ApplyUpdates detects elapsed timers at timer.Now(), updates timer vars,
// releases waiters and flags handlers for Notify. Dead entries are purged.
func (s *Service) ApplyUpdates(timer *update.LoopTimer) {
	now := timer.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	deadlines := s.deadlines[:0]
	for _, e := range s.deadlines {
		v, ok := e.v.Upgrade()
		if !ok {
			continue
		}
		if timer.Elapsed(e.deadline) {
			v.Set(DeadlineArgs{Timestamp: now, Deadline: e.deadline})
			continue
		}
		deadlines = append(deadlines, e)
	}
	clear(s.deadlines[len(deadlines):])
	s.deadlines = deadlines

	waiters := s.waiters[:0]
	for _, w := range s.waiters {
		if w.canceled.Load() {
			continue
		}
		if timer.Elapsed(w.deadline) {
			w.wake()
			continue
		}
		waiters = append(waiters, w)
	}
	clear(s.waiters[len(waiters):])
	s.waiters = waiters

	timers := s.timers[:0]
	for _, e := range s.timers {
		v, ok := e.v.Upgrade()
		if !ok || e.owner.IsDropped() {
			continue
		}
		if st := e.owner.Data(); !st.paused.Load() && timer.Elapsed(st.Deadline()) {
			timer.Register(st.elapse(now))
			v.Update()
		}
		timers = append(timers, e)
	}
	clear(s.timers[len(timers):])
	s.timers = timers

	deadlineHandlers := s.deadlineHandlers[:0]
	for _, e := range s.deadlineHandlers {
		if e.owner.IsDropped() {
			continue
		}
		if !e.pending {
			d := e.owner.Data().deadline
			if timer.Elapsed(d) {
				e.pending = true
				e.args = DeadlineArgs{Timestamp: now, Deadline: d}
				s.hasPendingHandlers = true
			}
		}
		deadlineHandlers = append(deadlineHandlers, e)
	}
	clear(s.deadlineHandlers[len(deadlineHandlers):])
	s.deadlineHandlers = deadlineHandlers

	timerHandlers := s.timerHandlers[:0]
	for _, e := range s.timerHandlers {
		if e.owner.IsDropped() {
			continue
		}
		st := e.owner.Data()
		if !e.pending && !st.paused.Load() {
			d := st.Deadline()
			if timer.Elapsed(d) {
				timer.Register(st.elapse(now))
				e.pending = true
				e.args = TimerArgs{
					Timestamp: now,
					Deadline:  d,
					Timer:     Timer{weak: e.owner.Downgrade(), signal: s.signal},
				}
				s.hasPendingHandlers = true
			}
		}
		timerHandlers = append(timerHandlers, e)
	}
	clear(s.timerHandlers[len(timerHandlers):])
	s.timerHandlers = timerHandlers
}

// HasPendingHandlers reports whether Notify has handlers to run.
func (s *Service) HasPendingHandlers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasPendingHandlers
}

// Notify runs every handler flagged by ApplyUpdates. One-shot handlers are
// never kept after running; interval handlers are kept unless they were
// stopped or released.
//
// The handler lists are detached while handlers run, so handlers may
// register new timers. Those are appended after the kept entries and do not
// run in this call.
func (s *Service) Notify() {
	s.mu.Lock()
	if !s.hasPendingHandlers {
		s.mu.Unlock()
		return
	}
	s.hasPendingHandlers = false
	deadlineHandlers := s.deadlineHandlers
	timerHandlers := s.timerHandlers
	s.deadlineHandlers = nil
	s.timerHandlers = nil
	s.mu.Unlock()

	keptDeadlines := make([]*deadlineHandlerEntry, 0, len(deadlineHandlers))
	for _, e := range deadlineHandlers {
		if !e.pending {
			keptDeadlines = append(keptDeadlines, e)
			continue
		}
		if e.owner.IsDropped() {
			continue
		}
		e.owner.Data().executed.Store(true)
		s.fired.Add(1)
		errors.Guard("timer.OnDeadline", func() { e.handler(e.args) })
	}

	keptTimers := make([]*timerHandlerEntry, 0, len(timerHandlers))
	for _, e := range timerHandlers {
		if e.pending {
			e.pending = false
			if e.owner.IsDropped() {
				continue
			}
			s.fired.Add(1)
			errors.Guard("timer.OnInterval", func() { e.handler(e.args) })
			if e.owner.IsDropped() {
				continue
			}
		}
		keptTimers = append(keptTimers, e)
	}

	s.mu.Lock()
	s.deadlineHandlers = append(keptDeadlines, s.deadlineHandlers...)
	s.timerHandlers = append(keptTimers, s.timerHandlers...)
	s.mu.Unlock()
}

// Stats returns registration counts, including entries not purged yet.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Deadlines:        len(s.deadlines),
		Waiters:          len(s.waiters),
		Timers:           len(s.timers),
		DeadlineHandlers: len(s.deadlineHandlers),
		TimerHandlers:    len(s.timerHandlers),
		Fired:            s.fired.Load(),
	}
}
