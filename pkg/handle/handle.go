// Package handle implements reference-counted cancellation handles.
//
// A registration (a timer, an event hook, a subscription) is represented by
// an [Owner] kept by the service and any number of [Handle] clones kept by
// callers. The service checks [Owner.IsDropped] lazily on its next pass to
// decide whether to keep the registration.
//
// Go has no deterministic destruction, so a strong handle is dropped by
// calling [Handle.Release]. Calling [Handle.Perm] instead keeps the
// registration alive with no handle at all, and [Handle.ForceDrop] cancels
// it for every clone.
package handle

import (
	"sync/atomic"
)

const (
	flagPermanent uint32 = 1 << iota
	flagForceDropped
	flagDummy
)

type shared[T any] struct {
	data   T
	strong atomic.Int64
	flags  atomic.Uint32
}

func (s *shared[T]) isDropped() bool {
	f := s.flags.Load()
	if f&flagForceDropped != 0 {
		return true
	}
	if f&flagPermanent != 0 {
		return false
	}
	return s.strong.Load() <= 0
}

// Owner is the service side of a handle.
type Owner[T any] struct {
	s *shared[T]
}

// Handle is a strong, clonable reference to a registration.
type Handle[T any] struct {
	s        *shared[T]
	released atomic.Bool
}

// WeakHandle references a registration without keeping it alive.
type WeakHandle[T any] struct {
	s *shared[T]
}

// New allocates the shared state and returns its owner and the first strong handle.
func New[T any](data T) (*Owner[T], *Handle[T]) {
	s := &shared[T]{data: data}
	s.strong.Store(1)
	return &Owner[T]{s: s}, &Handle[T]{s: s}
}

// Dummy returns a handle that is not connected to any owner. Releasing,
// cancelling or making it permanent does nothing.
func Dummy[T any](data T) *Handle[T] {
	s := &shared[T]{data: data}
	s.flags.Store(flagDummy | flagForceDropped)
	h := &Handle[T]{s: s}
	h.released.Store(true)
	return h
}

// IsDropped reports whether every strong handle was released and none was
// made permanent, or whether the handle was force dropped.
func (o *Owner[T]) IsDropped() bool {
	return o.s.isDropped()
}

// Data returns the shared data. Use a pointer type for T when the data is
// mutable.
func (o *Owner[T]) Data() T {
	return o.s.data
}

// Reanimate returns a new strong handle. If the owner was already dropped
// the returned handle keeps it alive again, unless it was force dropped.
func (o *Owner[T]) Reanimate() *Handle[T] {
	o.s.strong.Add(1)
	return &Handle[T]{s: o.s}
}

// Downgrade returns a weak handle to the registration.
func (o *Owner[T]) Downgrade() WeakHandle[T] {
	return WeakHandle[T]{s: o.s}
}

// ForceDrop drops the registration for every handle.
func (o *Owner[T]) ForceDrop() {
	o.s.flags.Or(flagForceDropped)
}

// Data returns the shared data.
func (h *Handle[T]) Data() T {
	return h.s.data
}

// Clone returns a new strong handle to the same registration.
func (h *Handle[T]) Clone() *Handle[T] {
	if h.IsDummy() {
		return Dummy(h.s.data)
	}
	h.s.strong.Add(1)
	return &Handle[T]{s: h.s}
}

// Release drops this strong reference. It is safe to call more than once.
func (h *Handle[T]) Release() {
	if h.released.CompareAndSwap(false, true) {
		h.s.strong.Add(-1)
	}
}

// Perm marks the registration permanent and releases this handle. The
// registration then lives until it completes naturally or is force dropped.
func (h *Handle[T]) Perm() {
	if h.IsDummy() {
		return
	}
	h.s.flags.Or(flagPermanent)
	h.Release()
}

// ForceDrop drops the registration for every clone and releases this handle.
func (h *Handle[T]) ForceDrop() {
	h.s.flags.Or(flagForceDropped)
	h.Release()
}

// IsPermanent reports whether Perm was called on any clone.
func (h *Handle[T]) IsPermanent() bool {
	return h.s.flags.Load()&flagPermanent != 0
}

// IsDropped reports whether the registration is dropped. A handle that was
// released can still observe this.
func (h *Handle[T]) IsDropped() bool {
	return h.s.isDropped()
}

// IsDummy reports whether the handle was created by Dummy.
func (h *Handle[T]) IsDummy() bool {
	return h.s.flags.Load()&flagDummy != 0
}

// IsReleased reports whether Release was called on this clone.
func (h *Handle[T]) IsReleased() bool {
	return h.released.Load()
}

// Downgrade returns a weak handle to the registration.
func (h *Handle[T]) Downgrade() WeakHandle[T] {
	return WeakHandle[T]{s: h.s}
}

// Same reports whether h and other refer to the same registration.
func (h *Handle[T]) Same(other *Handle[T]) bool {
	return h != nil && other != nil && h.s == other.s
}

// Upgrade returns a new strong handle if the registration is still alive.
func (w WeakHandle[T]) Upgrade() (*Handle[T], bool) {
	if w.s == nil || w.s.isDropped() {
		return nil, false
	}
	w.s.strong.Add(1)
	if w.s.isDropped() {
		// force dropped between the check and the increment
		w.s.strong.Add(-1)
		return nil, false
	}
	return &Handle[T]{s: w.s}, true
}

// IsDead reports whether the registration is dropped.
func (w WeakHandle[T]) IsDead() bool {
	return w.s == nil || w.s.isDropped()
}

// Data returns the shared data, or the zero T for the zero WeakHandle. The
// data stays readable after the registration is dropped.
func (w WeakHandle[T]) Data() T {
	if w.s == nil {
		var zero T
		return zero
	}
	return w.s.data
}
