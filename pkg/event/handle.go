package event

import "github.com/go-drift/weave/pkg/handle"

// Handle keeps a subscription or hook alive. Release it to unsubscribe, or
// call Perm to keep it for the lifetime of the process.
type Handle struct {
	h *handle.Handle[struct{}]
}

// DummyHandle returns a handle that is not connected to anything.
func DummyHandle() Handle {
	return Handle{h: handle.Dummy(struct{}{})}
}

// Release drops this handle.
func (h Handle) Release() {
	if h.h != nil {
		h.h.Release()
	}
}

// Perm keeps the registration after the handle is released.
func (h Handle) Perm() {
	if h.h != nil {
		h.h.Perm()
	}
}

// Clone returns another handle to the same registration.
func (h Handle) Clone() Handle {
	if h.h == nil {
		return h
	}
	return Handle{h: h.h.Clone()}
}

// IsDropped reports whether the registration ended.
func (h Handle) IsDropped() bool {
	return h.h == nil || h.h.IsDropped()
}

// IsDummy reports whether h is not connected to a registration.
func (h Handle) IsDummy() bool {
	return h.h == nil || h.h.IsDummy()
}
