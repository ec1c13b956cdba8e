package timer

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-drift/weave/pkg/timing"
)

// Waiter is a suspension point released by the scheduler when its deadline
// elapses. It can be awaited from any goroutine.
type Waiter struct {
	deadline timing.Deadline
	done     chan struct{}
	once     sync.Once
	canceled atomic.Bool
}

func newWaiter(d timing.Deadline) *Waiter {
	return &Waiter{deadline: d, done: make(chan struct{})}
}

func (w *Waiter) wake() {
	w.once.Do(func() { close(w.done) })
}

// Deadline returns the awaited deadline.
func (w *Waiter) Deadline() timing.Deadline {
	return w.deadline
}

// Done is closed when the scheduler observes the deadline elapsed.
func (w *Waiter) Done() <-chan struct{} {
	return w.done
}

// Wait blocks until the deadline elapses or ctx is done. A canceled wait
// unregisters the waiter.
func (w *Waiter) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.Cancel()
		return ctx.Err()
	}
}

// Cancel stops waiting; the scheduler drops the waiter on its next pass.
func (w *Waiter) Cancel() {
	w.canceled.Store(true)
}
