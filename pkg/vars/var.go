package vars

import (
	"sync"
	"sync/atomic"
	"weak"
)

type hook[T any] struct {
	fn      func(T) bool
	removed atomic.Bool
}

// Var is a reactive value.
type Var[T any] struct {
	svc        *Service
	mu         sync.RWMutex
	value      T
	version    uint64
	lastUpdate uint64
	hooks      []*hook[T]
}

// New returns a var bound to the current service.
func New[T any](value T) *Var[T] {
	return NewIn(Current(), value)
}

// NewIn returns a var bound to svc.
func NewIn[T any](svc *Service, value T) *Var[T] {
	return &Var[T]{svc: svc, value: value}
}

// Get returns a copy of the value.
func (v *Var[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// With calls read with the value under the read lock.
func (v *Var[T]) With(read func(*T)) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	read(&v.value)
}

// Version increments every time the var updates.
func (v *Var[T]) Version() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.version
}

// IsNew reports whether the var updated in the current update cycle.
func (v *Var[T]) IsNew() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastUpdate == v.svc.Cycle()
}

// Set schedules a replacement of the value.
func (v *Var[T]) Set(value T) {
	v.Modify(func(p *T) bool {
		*p = value
		return true
	})
}

// Update schedules an update notification without changing the value.
func (v *Var[T]) Update() {
	v.Modify(func(*T) bool { return true })
}

// Modify schedules modify to run on the value. modify returns whether the
// value changed; only changes notify hooks.
func (v *Var[T]) Modify(modify func(*T) bool) {
	v.svc.schedule(func(cycle uint64) func() {
		v.mu.Lock()
		if !modify(&v.value) {
			v.mu.Unlock()
			return nil
		}
		v.version++
		v.lastUpdate = cycle
		value := v.value
		hooks := append([]*hook[T](nil), v.hooks...)
		v.mu.Unlock()

		return func() { v.callHooks(hooks, value) }
	})
}

func (v *Var[T]) callHooks(hooks []*hook[T], value T) {
	removed := false
	for _, h := range hooks {
		if h.removed.Load() {
			continue
		}
		if !h.fn(value) {
			h.removed.Store(true)
			removed = true
		}
	}
	if removed {
		v.mu.Lock()
		v.hooks = filterHooks(v.hooks)
		v.mu.Unlock()
	}
}

func filterHooks[T any](hooks []*hook[T]) []*hook[T] {
	out := hooks[:0]
	for _, h := range hooks {
		if !h.removed.Load() {
			out = append(out, h)
		}
	}
	return out
}

// Hook registers fn to be called after every update with the new value.
// fn returns false to unregister itself. The returned function unregisters
// the hook early.
func (v *Var[T]) Hook(fn func(T) bool) (unhook func()) {
	h := &hook[T]{fn: fn}
	v.mu.Lock()
	v.hooks = append(v.hooks, h)
	v.mu.Unlock()
	return func() {
		v.mu.Lock()
		h.removed.Store(true)
		v.hooks = filterHooks(v.hooks)
		v.mu.Unlock()
	}
}

// HookCount returns the number of registered hooks.
func (v *Var[T]) HookCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.hooks)
}

// ReadOnly returns a view of v that cannot be modified.
func (v *Var[T]) ReadOnly() ReadOnly[T] {
	return ReadOnly[T]{v: v}
}

// Downgrade returns a weak reference to v.
func (v *Var[T]) Downgrade() WeakVar[T] {
	return WeakVar[T]{p: weak.Make(v)}
}

// ReadOnly is a read-only view of a Var.
type ReadOnly[T any] struct {
	v *Var[T]
}

// Get returns a copy of the value.
func (r ReadOnly[T]) Get() T { return r.v.Get() }

// With calls read with the value under the read lock.
func (r ReadOnly[T]) With(read func(*T)) { r.v.With(read) }

// Version increments every time the var updates.
func (r ReadOnly[T]) Version() uint64 { return r.v.Version() }

// IsNew reports whether the var updated in the current update cycle.
func (r ReadOnly[T]) IsNew() bool { return r.v.IsNew() }

// Hook registers fn to be called after every update.
func (r ReadOnly[T]) Hook(fn func(T) bool) (unhook func()) { return r.v.Hook(fn) }

// Downgrade returns a weak reference to the underlying var.
func (r ReadOnly[T]) Downgrade() WeakVar[T] { return r.v.Downgrade() }

// WeakVar references a Var without keeping it reachable.
type WeakVar[T any] struct {
	p weak.Pointer[Var[T]]
}

// Upgrade returns the var if it is still reachable.
func (w WeakVar[T]) Upgrade() (*Var[T], bool) {
	v := w.p.Value()
	return v, v != nil
}
