package widget

import (
	"sync"
	"sync/atomic"

	"github.com/go-drift/weave/internal/scope"
	"github.com/go-drift/weave/pkg/event"
	"github.com/go-drift/weave/pkg/update"
	"github.com/go-drift/weave/pkg/vars"
)

// Context is the state of one widget that nodes inside it reach through the
// WIDGET context functions.
type Context struct {
	id     ID
	parent *Context
	path   update.WidgetPath
	flags  atomic.Uint32

	mu      sync.Mutex
	handles []event.Handle
	unhooks []func()
	inited  atomic.Bool
}

// ID returns the widget id.
func (c *Context) ID() ID {
	return c.id
}

// Path returns the ids from the root widget to this one.
func (c *Context) Path() update.WidgetPath {
	return c.path
}

// Pending returns the requests the widget has not served.
func (c *Context) Pending() update.Flags {
	return update.Flags(c.flags.Load())
}

// Request marks flags pending on the widget and every ancestor and wakes
// the app.
func (c *Context) Request(flags update.Flags) {
	for p := c; p != nil; p = p.parent {
		p.flags.Or(uint32(flags))
	}
	if flags&update.FlagUpdate != 0 && c.inited.Load() {
		pendingMu.Lock()
		pendingUpdates[c.id] = c.path
		pendingMu.Unlock()
	}
	if s := signal.Load(); s != nil {
		s.Request(flags)
	}
}

func (c *Context) take(flags update.Flags) update.Flags {
	return update.Flags(c.flags.And(^uint32(flags))) & flags
}

// PushEventHandle keeps h alive until the widget deinits.
func (c *Context) PushEventHandle(h event.Handle) {
	c.mu.Lock()
	c.handles = append(c.handles, h)
	c.mu.Unlock()
}

// PushUnhook calls unhook when the widget deinits.
func (c *Context) PushUnhook(unhook func()) {
	c.mu.Lock()
	c.unhooks = append(c.unhooks, unhook)
	c.mu.Unlock()
}

func (c *Context) release() {
	c.mu.Lock()
	handles, unhooks := c.handles, c.unhooks
	c.handles, c.unhooks = nil, nil
	c.mu.Unlock()
	for _, h := range handles {
		h.Release()
	}
	for _, u := range unhooks {
		u()
	}
}

var (
	ctxStack scope.Stack[*Context]
	contexts sync.Map // ID -> *Context, inited widgets only
	signal   atomic.Pointer[update.Signal]

	pendingMu      sync.Mutex
	pendingUpdates = map[ID]update.WidgetPath{}
)

// InstallSignal sets the signal widget requests wake and returns the
// previous one.
func InstallSignal(s *update.Signal) *update.Signal {
	return signal.Swap(s)
}

// CurrentContext returns the innermost widget context.
func CurrentContext() (*Context, bool) {
	return ctxStack.Top()
}

// CurrentID returns the innermost widget id, or zero outside widgets.
func CurrentID() ID {
	if c, ok := ctxStack.Top(); ok {
		return c.id
	}
	return 0
}

// CurrentPath returns the innermost widget path.
func CurrentPath() update.WidgetPath {
	if c, ok := ctxStack.Top(); ok {
		return c.path
	}
	return nil
}

// Request marks flags pending on the innermost widget. Outside widgets the
// request goes to the app only.
func Request(flags update.Flags) {
	if c, ok := ctxStack.Top(); ok {
		c.Request(flags)
		return
	}
	if s := signal.Load(); s != nil {
		s.Request(flags)
	}
}

// RequestFor marks flags pending on the inited widget id. It reports false
// if the widget is not inited.
func RequestFor(id ID, flags update.Flags) bool {
	v, ok := contexts.Load(id)
	if !ok {
		return false
	}
	v.(*Context).Request(flags)
	return true
}

// Lookup returns the context of the inited widget id.
func Lookup(id ID) (*Context, bool) {
	v, ok := contexts.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Context), true
}

// TakeUpdates returns the widgets that requested an update since the last
// call, or nil if none did.
func TakeUpdates() *update.WidgetUpdates {
	pendingMu.Lock()
	pending := pendingUpdates
	pendingUpdates = map[ID]update.WidgetPath{}
	pendingMu.Unlock()
	if len(pending) == 0 {
		return nil
	}
	paths := make([]update.WidgetPath, 0, len(pending))
	for _, p := range pending {
		paths = append(paths, p)
	}
	return update.NewWidgetUpdates(paths...)
}

// SubVar requests flags on the innermost widget every time v updates, until
// the widget deinits. It must be called inside a widget, usually on init.
func SubVar[T any](v vars.ReadOnly[T], flags update.Flags) {
	c, ok := ctxStack.Top()
	if !ok {
		panic("widget: SubVar called outside of a widget")
	}
	c.PushUnhook(v.Hook(func(T) bool {
		if !c.inited.Load() {
			return false
		}
		c.Request(flags)
		return true
	}))
}
