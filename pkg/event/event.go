// Package event is the app-wide publish/subscribe core.
//
// An [Event] is a named, process-wide value carrying arguments of one type.
// Notifying an event queues an [Update] on the [Service]; the app applies the
// queue once per update pass, runs the event hooks and then delivers the
// update through the widget tree in three steps: preview actions, node
// dispatch, main actions. Any handler can stop propagation, which skips every
// handler after it in all three steps.
package event

import (
	"fmt"
	"sync"

	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/handle"
	"github.com/go-drift/weave/pkg/update"
)

// AnyEvent is implemented by every Event regardless of its argument type.
type AnyEvent interface {
	Name() string
	HasSubscribers() bool
	// Subscribe registers widget id, at path, as a receiver.
	Subscribe(id update.WidgetID, path update.WidgetPath) Handle
	// Hook registers fn to run on every update of the event.
	Hook(fn func(*Update) bool) Handle

	runHooks(u *Update)
	subscribers() map[update.WidgetID]update.WidgetPath
}

var registry sync.Map // name -> AnyEvent

// Lookup returns the event registered under name.
func Lookup(name string) (AnyEvent, bool) {
	ev, ok := registry.Load(name)
	if !ok {
		return nil, false
	}
	return ev.(AnyEvent), true
}

type subscription struct {
	owner *handle.Owner[struct{}]
	path  update.WidgetPath
}

type hookEntry struct {
	owner *handle.Owner[struct{}]
	fn    func(*Update) bool
}

// Event identifies one event type with arguments A.
type Event[A Args] struct {
	name string

	mu    sync.Mutex
	subs  map[update.WidgetID]*subscription
	hooks []*hookEntry
}

// New registers an event. It panics if name is already taken; events are
// meant to be declared once as package-level variables.
func New[A Args](name string) *Event[A] {
	e := &Event[A]{name: name, subs: make(map[update.WidgetID]*subscription)}
	if _, loaded := registry.LoadOrStore(name, AnyEvent(e)); loaded {
		panic(fmt.Sprintf("event: %q is already registered", name))
	}
	return e
}

// Name returns the registered name.
func (e *Event[A]) Name() string {
	return e.name
}

func (e *Event[A]) String() string {
	return e.name
}

// Subscribe registers widget id as a receiver of the event. Subscribing a
// widget that is already subscribed returns a new handle to the same
// subscription and updates its path.
func (e *Event[A]) Subscribe(id update.WidgetID, path update.WidgetPath) Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.subs[id]; ok && !s.owner.IsDropped() {
		s.path = path
		return Handle{h: s.owner.Reanimate()}
	}
	owner, h := handle.New(struct{}{})
	e.subs[id] = &subscription{owner: owner, path: path}
	return Handle{h: h}
}

// Hook registers fn to be called for every update of the event, before the
// update is delivered to widgets. fn returns false to remove itself.
func (e *Event[A]) Hook(fn func(*Update) bool) Handle {
	owner, h := handle.New(struct{}{})
	e.mu.Lock()
	e.hooks = append(e.hooks, &hookEntry{owner: owner, fn: fn})
	e.mu.Unlock()
	return Handle{h: h}
}

// OnPreEvent registers handler to run before the update reaches the widget
// tree. It is skipped once propagation stops.
func (e *Event[A]) OnPreEvent(handler func(A)) Handle {
	return e.onEvent(handler, true)
}

// OnEvent registers handler to run after the update went through the widget
// tree. It is skipped once propagation stops.
func (e *Event[A]) OnEvent(handler func(A)) Handle {
	return e.onEvent(handler, false)
}

func (e *Event[A]) onEvent(handler func(A), preview bool) Handle {
	var h Handle
	h = e.Hook(func(u *Update) bool {
		if h.IsDropped() {
			return false
		}
		action := func(u *Update) {
			args := u.args.(A)
			if h.IsDropped() || args.Propagation().IsStopped() {
				return
			}
			handler(args)
		}
		if preview {
			u.PushPreAction(action)
		} else {
			u.PushPosAction(action)
		}
		return true
	})
	return h
}

// Notify queues args on the current service.
func (e *Event[A]) Notify(args A) {
	Current().Notify(e.NewUpdate(args))
}

// NewUpdate returns an update of the event, delivered to the subscribers
// args targets.
func (e *Event[A]) NewUpdate(args A) *Update {
	list := update.NewSubscriberDeliveryList(e.subscribers())
	args.DeliveryList(list)
	return &Update{event: e, args: args, delivery: list}
}

// On returns the args of u if u is an update of this event.
func (e *Event[A]) On(u *Update) (A, bool) {
	if u == nil || u.event != AnyEvent(e) {
		var zero A
		return zero, false
	}
	return u.args.(A), true
}

// OnUnhandled is like On but also requires propagation not to be stopped.
func (e *Event[A]) OnUnhandled(u *Update) (A, bool) {
	args, ok := e.On(u)
	if !ok || args.Propagation().IsStopped() {
		var zero A
		return zero, false
	}
	return args, true
}

// HasSubscribers reports whether any widget subscription or hook is alive.
func (e *Event[A]) HasSubscribers() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pruneLocked()
	return len(e.subs) > 0 || len(e.hooks) > 0
}

func (e *Event[A]) pruneLocked() {
	for id, s := range e.subs {
		if s.owner.IsDropped() {
			delete(e.subs, id)
		}
	}
	hooks := e.hooks[:0]
	for _, h := range e.hooks {
		if !h.owner.IsDropped() {
			hooks = append(hooks, h)
		}
	}
	clear(e.hooks[len(hooks):])
	e.hooks = hooks
}

func (e *Event[A]) subscribers() map[update.WidgetID]update.WidgetPath {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pruneLocked()
	out := make(map[update.WidgetID]update.WidgetPath, len(e.subs))
	for id, s := range e.subs {
		out[id] = s.path
	}
	return out
}

// runHooks calls every hook without holding the lock, so hooks may register
// more hooks. Those run from the next update on.
func (e *Event[A]) runHooks(u *Update) {
	e.mu.Lock()
	hooks := append([]*hookEntry(nil), e.hooks...)
	e.mu.Unlock()

	removed := false
	for _, h := range hooks {
		if h.owner.IsDropped() {
			removed = true
			continue
		}
		keep := true
		errors.Guard("event.hook", func() { keep = h.fn(u) })
		if !keep {
			h.owner.ForceDrop()
			removed = true
		}
	}
	if removed {
		e.mu.Lock()
		e.pruneLocked()
		e.mu.Unlock()
	}
}
