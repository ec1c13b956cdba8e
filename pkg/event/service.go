package event

import (
	"sync"
	"sync/atomic"

	"github.com/go-drift/weave/pkg/update"
)

// Service queues event notifications until the app applies them.
type Service struct {
	signal *update.Signal

	mu    sync.Mutex
	queue []*Update

	notified atomic.Uint64
}

// NewService returns a service that wakes the app through signal. signal may
// be nil.
func NewService(signal *update.Signal) *Service {
	return &Service{signal: signal}
}

var current atomic.Pointer[Service]

func init() {
	current.Store(NewService(nil))
}

// Current returns the installed service.
func Current() *Service {
	return current.Load()
}

// Install makes s the current service and returns the previous one.
func Install(s *Service) *Service {
	return current.Swap(s)
}

// Notify queues u for the next update pass.
func (s *Service) Notify(u *Update) {
	s.mu.Lock()
	s.queue = append(s.queue, u)
	s.mu.Unlock()
	s.notified.Add(1)
	if s.signal != nil {
		s.signal.Request(update.FlagUpdate)
	}
}

// HasPending reports whether notifications are queued.
func (s *Service) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) > 0
}

// Notified counts notifications since the service was created.
func (s *Service) Notified() uint64 {
	return s.notified.Load()
}

// ApplyUpdates takes the queued updates, runs the hooks of each event in
// notification order and returns the updates for delivery. Events notified
// by hooks are left for the next call.
func (s *Service) ApplyUpdates() []*Update {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, u := range queue {
		u.event.runHooks(u)
	}
	return queue
}
