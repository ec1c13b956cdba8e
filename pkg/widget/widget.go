package widget

import (
	"sync/atomic"

	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/event"
	"github.com/go-drift/weave/pkg/layout"
	"github.com/go-drift/weave/pkg/update"
)

// CacheStats counts layout cache hits and misses of every widget.
type CacheStats struct {
	MeasureHits   uint64
	MeasureMisses uint64
	LayoutHits    uint64
	LayoutMisses  uint64
}

var cacheStats struct {
	measureHits, measureMisses atomic.Uint64
	layoutHits, layoutMisses   atomic.Uint64
}

// ReadCacheStats returns the process-wide cache counters.
func ReadCacheStats() CacheStats {
	return CacheStats{
		MeasureHits:   cacheStats.measureHits.Load(),
		MeasureMisses: cacheStats.measureMisses.Load(),
		LayoutHits:    cacheStats.layoutHits.Load(),
		LayoutMisses:  cacheStats.layoutMisses.Load(),
	}
}

type sizeCache struct {
	valid bool
	snap  layout.Snapshot
	mask  layout.Mask
	size  layout.PxSize
}

func (c *sizeCache) get(snap layout.Snapshot) (layout.PxSize, bool) {
	if !c.valid || !snap.MaskedEqual(c.snap, c.mask) {
		return layout.PxSize{}, false
	}
	layout.RegisterMetricsUse(c.mask)
	return c.size, true
}

func (c *sizeCache) set(snap layout.Snapshot, mask layout.Mask, size layout.PxSize) {
	*c = sizeCache{valid: true, snap: snap, mask: mask, size: size}
	layout.RegisterMetricsUse(mask)
}

// WidgetNode is a widget boundary. It gives its child a widget context,
// tracks the init state, serves request flags, delivers events and updates
// only on the routes that reach it and caches measure and layout by the
// metrics the child read.
type WidgetNode struct {
	ctx   *Context
	child UiNode

	measure sizeCache
	layout  sizeCache
	size    layout.PxSize
	offset  layout.PxVector
}

// New returns a widget boundary around child. A zero id gets a new unique
// id.
func New(id ID, child UiNode) *WidgetNode {
	if id.IsZero() {
		id = update.NewWidgetID()
	}
	return &WidgetNode{ctx: &Context{id: id}, child: child}
}

// WidgetID returns the widget id.
func (w *WidgetNode) WidgetID() ID {
	return w.ctx.id
}

// Context returns the widget context.
func (w *WidgetNode) Context() *Context {
	return w.ctx
}

// PendingFlags returns the requests the widget has not served.
func (w *WidgetNode) PendingFlags() update.Flags {
	return w.ctx.Pending()
}

// IsInited reports whether the widget is between Init and Deinit.
func (w *WidgetNode) IsInited() bool {
	return w.ctx.inited.Load()
}

// Size returns the size of the last layout.
func (w *WidgetNode) Size() layout.PxSize {
	return w.size
}

// Offset returns the offset of the last layout.
func (w *WidgetNode) Offset() layout.PxVector {
	return w.offset
}

// Child returns the wrapped node.
func (w *WidgetNode) Child() UiNode {
	return w.child
}

func (w *WidgetNode) with(f func()) {
	ctxStack.With(w.ctx, f)
}

func (w *WidgetNode) check(kind OpKind) bool {
	if w.ctx.inited.Load() {
		return true
	}
	errors.Contractf("widget."+kind.String(), w.ctx.id.String(), "%v called on a widget that is not inited", kind)
	return false
}

func (w *WidgetNode) invalidate() {
	w.measure = sizeCache{}
	w.layout = sizeCache{}
}

func (w *WidgetNode) Init() {
	if w.ctx.inited.Load() {
		errors.Contractf("widget.init", w.ctx.id.String(), "widget is already inited")
		return
	}
	parent, _ := ctxStack.Top()
	w.ctx.parent = parent
	w.ctx.path = parent.childPath(w.ctx.id)
	w.ctx.inited.Store(true)
	contexts.Store(w.ctx.id, w.ctx)
	w.invalidate()

	w.with(w.child.Init)
	w.ctx.Request(update.FlagInfo | update.FlagLayout | update.FlagRender)
}

func (c *Context) childPath(id ID) update.WidgetPath {
	if c == nil {
		return update.WidgetPath{id}
	}
	return c.path.Child(id)
}

func (w *WidgetNode) Deinit() {
	if !w.check(KindDeinit) {
		return
	}
	w.with(w.child.Deinit)
	w.ctx.release()
	w.ctx.inited.Store(false)
	contexts.CompareAndDelete(w.ctx.id, w.ctx)
	w.ctx.flags.Store(0)
	w.ctx.parent = nil
	w.invalidate()
	if parent, ok := ctxStack.Top(); ok {
		parent.Request(update.FlagInfo | update.FlagLayout | update.FlagRender)
	}
}

func (w *WidgetNode) Info(info InfoBuilder) {
	if !w.check(KindInfo) {
		return
	}
	w.ctx.take(update.FlagInfo)
	info.PushWidget(w.ctx.id, func(b InfoBuilder) {
		w.with(func() { w.child.Info(b) })
	})
}

func (w *WidgetNode) Event(u *event.Update) {
	if !w.check(KindEvent) || !u.Delivery().EnterWidget(w.ctx.id) {
		return
	}
	w.with(func() { w.child.Event(u) })
}

func (w *WidgetNode) Update(updates *update.WidgetUpdates) {
	if !w.check(KindUpdate) || !updates.EnterWidget(w.ctx.id) {
		return
	}
	w.ctx.take(update.FlagUpdate)
	w.with(func() { w.child.Update(updates) })
}

func (w *WidgetNode) Measure(wm *WidgetMeasure) layout.PxSize {
	if !w.check(KindMeasure) {
		return layout.PxSize{}
	}
	snap := layout.Current().Snapshot()
	if w.ctx.Pending()&update.FlagLayout == 0 {
		if size, ok := w.measure.get(snap); ok {
			cacheStats.measureHits.Add(1)
			return size
		}
	}
	cacheStats.measureMisses.Add(1)
	mask, size := layout.CaptureMetricsUse(func() layout.PxSize {
		var size layout.PxSize
		w.with(func() { size = w.child.Measure(wm) })
		return size
	})
	w.measure.set(snap, mask, size)
	return size
}

func (w *WidgetNode) Layout(wl *WidgetLayout) layout.PxSize {
	if !w.check(KindLayout) {
		return layout.PxSize{}
	}
	snap := layout.Current().Snapshot()
	offset := wl.Offset()
	if w.ctx.Pending()&update.FlagLayout == 0 {
		if size, ok := w.layout.get(snap); ok {
			cacheStats.layoutHits.Add(1)
			if offset != w.offset {
				w.offset = offset
				w.ctx.Request(update.FlagRenderUpdate)
			}
			return size
		}
	}
	cacheStats.layoutMisses.Add(1)
	w.ctx.take(update.FlagLayout)
	w.measure = sizeCache{}
	mask, size := layout.CaptureMetricsUse(func() layout.PxSize {
		var size layout.PxSize
		w.with(func() { size = w.child.Layout(wl) })
		return size
	})
	w.layout.set(snap, mask, size)

	if size != w.size || offset != w.offset {
		w.ctx.Request(update.FlagRender)
	}
	w.size, w.offset = size, offset
	return size
}

func (w *WidgetNode) Render(frame FrameBuilder) {
	if !w.check(KindRender) {
		return
	}
	w.ctx.take(update.FlagRender | update.FlagRenderUpdate)
	frame.PushWidget(w.ctx.id, func(f FrameBuilder) {
		w.with(func() { w.child.Render(f) })
	})
}

func (w *WidgetNode) RenderUpdate(u FrameUpdate) {
	if !w.check(KindRenderUpdate) {
		return
	}
	w.ctx.take(update.FlagRenderUpdate)
	u.UpdateWidget(w.ctx.id, func(fu FrameUpdate) {
		w.with(func() { w.child.RenderUpdate(fu) })
	})
}
