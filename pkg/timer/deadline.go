package timer

import (
	"github.com/go-drift/weave/pkg/handle"
	"github.com/go-drift/weave/pkg/timing"
	"github.com/go-drift/weave/pkg/vars"
)

// DeadlineVar is a var that updates once when its deadline elapses.
type DeadlineVar = vars.ReadOnly[DeadlineArgs]

// DeadlineHandle controls a one-shot handler registered with OnDeadline.
//
// Releasing the handle before the deadline cancels the handler, unless Perm
// was called.
type DeadlineHandle struct {
	h *handle.Handle[*DeadlineState]
}

// Perm keeps the handler registered after the handle is released.
func (d DeadlineHandle) Perm() {
	d.h.Perm()
}

// Release drops this handle.
func (d DeadlineHandle) Release() {
	d.h.Release()
}

// Cancel drops the handler for every clone of the handle.
func (d DeadlineHandle) Cancel() {
	d.h.ForceDrop()
}

// Clone returns a new handle to the same handler.
func (d DeadlineHandle) Clone() DeadlineHandle {
	return DeadlineHandle{h: d.h.Clone()}
}

// Deadline returns the registered deadline.
func (d DeadlineHandle) Deadline() timing.Deadline {
	return d.h.Data().deadline
}

// HasExecuted reports whether the handler ran.
func (d DeadlineHandle) HasExecuted() bool {
	return d.h.Data().executed.Load()
}

// IsCanceled reports whether the handler was dropped without running.
func (d DeadlineHandle) IsCanceled() bool {
	return !d.HasExecuted() && d.h.IsDropped()
}
