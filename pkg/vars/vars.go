// Package vars is the reactive variable system the scheduler feeds.
//
// A [Var] is never mutated in place by Set, Modify or Update: those calls
// enqueue a modification on the var's [Service], and the app applies every
// queued modification at a fixed point of its update pass. Hooks run after
// the batch is applied, so a hook always observes settled values.
package vars

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/update"
)

// maxApplyLoops bounds how many times hooks may schedule further
// modifications within one ApplyUpdates call.
const maxApplyLoops = 1000

type modification func(cycle uint64) (notify func())

// Service queues and applies variable modifications.
type Service struct {
	mu     sync.Mutex
	queue  []modification
	cycle  atomic.Uint64
	signal *update.Signal
}

// NewService returns a service that requests an app update on signal
// whenever a modification is scheduled. signal may be nil.
func NewService(signal *update.Signal) *Service {
	s := &Service{signal: signal}
	s.cycle.Store(1)
	return s
}

var current atomic.Pointer[Service]

func init() {
	current.Store(NewService(nil))
}

// Current returns the service used by New.
func Current() *Service {
	return current.Load()
}

// Install makes s the service used by New and returns the previous one.
func Install(s *Service) *Service {
	return current.Swap(s)
}

func (s *Service) schedule(m modification) {
	s.mu.Lock()
	s.queue = append(s.queue, m)
	s.mu.Unlock()
	if s.signal != nil {
		s.signal.Request(update.FlagUpdate)
	}
}

// HasPending reports whether modifications are waiting for ApplyUpdates.
func (s *Service) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) > 0
}

// Cycle returns the current update cycle. Vars modified by the latest
// ApplyUpdates report IsNew until the next call.
func (s *Service) Cycle() uint64 {
	return s.cycle.Load()
}

// ApplyUpdates applies every scheduled modification in order, then calls the
// hooks of changed vars. Modifications scheduled by hooks are applied in the
// same call.
func (s *Service) ApplyUpdates() {
	cycle := s.cycle.Add(1)
	for loops := 0; ; loops++ {
		s.mu.Lock()
		queue := s.queue
		s.queue = nil
		s.mu.Unlock()

		if len(queue) == 0 {
			return
		}
		if loops >= maxApplyLoops {
			errors.Report(&errors.WeaveError{
				Op:   "vars.ApplyUpdates",
				Kind: errors.KindVar,
				Err:  fmt.Errorf("hooks kept scheduling modifications after %d loops, dropped %d", loops, len(queue)),
			})
			return
		}

		var notify []func()
		for _, m := range queue {
			if n := m(cycle); n != nil {
				notify = append(notify, n)
			}
		}
		for _, n := range notify {
			errors.Guard("vars.hook", n)
		}
	}
}
