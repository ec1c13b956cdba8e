package widget

import (
	"github.com/go-drift/weave/pkg/event"
	"github.com/go-drift/weave/pkg/layout"
	"github.com/go-drift/weave/pkg/update"
)

// ID identifies a widget.
type ID = update.WidgetID

// UiNode is a node of the UI tree. Init must be called before any other
// method; after Deinit, only Init is valid.
type UiNode interface {
	Init()
	Deinit()
	Info(info InfoBuilder)
	Event(u *event.Update)
	Update(updates *update.WidgetUpdates)
	Measure(wm *WidgetMeasure) layout.PxSize
	Layout(wl *WidgetLayout) layout.PxSize
	Render(frame FrameBuilder)
	RenderUpdate(u FrameUpdate)
}

// OpKind names a node operation.
type OpKind uint8

const (
	KindInit OpKind = iota
	KindDeinit
	KindInfo
	KindEvent
	KindUpdate
	KindMeasure
	KindLayout
	KindRender
	KindRenderUpdate
)

var opKindNames = [...]string{
	KindInit:         "init",
	KindDeinit:       "deinit",
	KindInfo:         "info",
	KindEvent:        "event",
	KindUpdate:       "update",
	KindMeasure:      "measure",
	KindLayout:       "layout",
	KindRender:       "render",
	KindRenderUpdate: "render_update",
}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "unknown"
}

// UiNodeOp is one node operation with its arguments. The op only lives for
// the call it is passed to.
type UiNodeOp interface {
	Kind() OpKind
}

type (
	OpInit   struct{}
	OpDeinit struct{}
	OpInfo   struct{ Info InfoBuilder }
	OpEvent  struct{ Update *event.Update }
	OpUpdate struct{ Updates *update.WidgetUpdates }
	// OpMeasure asks for the desired size. The handler writes DesiredSize.
	OpMeasure struct {
		WM          *WidgetMeasure
		DesiredSize *layout.PxSize
	}
	// OpLayout lays the node out. The handler writes FinalSize.
	OpLayout struct {
		WL        *WidgetLayout
		FinalSize *layout.PxSize
	}
	OpRender       struct{ Frame FrameBuilder }
	OpRenderUpdate struct{ Update FrameUpdate }
)

func (OpInit) Kind() OpKind         { return KindInit }
func (OpDeinit) Kind() OpKind       { return KindDeinit }
func (OpInfo) Kind() OpKind         { return KindInfo }
func (OpEvent) Kind() OpKind        { return KindEvent }
func (OpUpdate) Kind() OpKind       { return KindUpdate }
func (OpMeasure) Kind() OpKind      { return KindMeasure }
func (OpLayout) Kind() OpKind       { return KindLayout }
func (OpRender) Kind() OpKind       { return KindRender }
func (OpRenderUpdate) Kind() OpKind { return KindRenderUpdate }

// Dispatch calls the method of node that matches op.
func Dispatch(node UiNode, op UiNodeOp) {
	switch o := op.(type) {
	case OpInit:
		node.Init()
	case OpDeinit:
		node.Deinit()
	case OpInfo:
		node.Info(o.Info)
	case OpEvent:
		node.Event(o.Update)
	case OpUpdate:
		node.Update(o.Updates)
	case OpMeasure:
		*o.DesiredSize = node.Measure(o.WM)
	case OpLayout:
		*o.FinalSize = node.Layout(o.WL)
	case OpRender:
		node.Render(o.Frame)
	case OpRenderUpdate:
		node.RenderUpdate(o.Update)
	}
}

// NodeFunc adapts an op handler to a UiNode.
type NodeFunc func(op UiNodeOp)

func (f NodeFunc) Init()                                { f(OpInit{}) }
func (f NodeFunc) Deinit()                              { f(OpDeinit{}) }
func (f NodeFunc) Info(info InfoBuilder)                { f(OpInfo{Info: info}) }
func (f NodeFunc) Event(u *event.Update)                { f(OpEvent{Update: u}) }
func (f NodeFunc) Update(updates *update.WidgetUpdates) { f(OpUpdate{Updates: updates}) }
func (f NodeFunc) Render(frame FrameBuilder)            { f(OpRender{Frame: frame}) }
func (f NodeFunc) RenderUpdate(u FrameUpdate)           { f(OpRenderUpdate{Update: u}) }

func (f NodeFunc) Measure(wm *WidgetMeasure) layout.PxSize {
	var size layout.PxSize
	f(OpMeasure{WM: wm, DesiredSize: &size})
	return size
}

func (f NodeFunc) Layout(wl *WidgetLayout) layout.PxSize {
	var size layout.PxSize
	f(OpLayout{WL: wl, FinalSize: &size})
	return size
}

type nilNode struct{}

// NilNode returns a node that does nothing and has zero size.
func NilNode() UiNode {
	return nilNode{}
}

func (nilNode) Init()                                {}
func (nilNode) Deinit()                              {}
func (nilNode) Info(InfoBuilder)                     {}
func (nilNode) Event(*event.Update)                  {}
func (nilNode) Update(*update.WidgetUpdates)         {}
func (nilNode) Measure(*WidgetMeasure) layout.PxSize { return layout.PxSize{} }
func (nilNode) Layout(*WidgetLayout) layout.PxSize   { return layout.PxSize{} }
func (nilNode) Render(FrameBuilder)                  {}
func (nilNode) RenderUpdate(FrameUpdate)             {}

// FillNode returns a leaf that takes the fill size of its constraints.
func FillNode() UiNode {
	return MatchNodeLeaf(func(op UiNodeOp) {
		switch o := op.(type) {
		case OpMeasure:
			*o.DesiredSize = layout.Constraints().FillSize()
		case OpLayout:
			*o.FinalSize = layout.Constraints().FillSize()
		}
	})
}
