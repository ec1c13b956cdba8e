package widget

import (
	"github.com/go-drift/weave/pkg/event"
	"github.com/go-drift/weave/pkg/layout"
	"github.com/go-drift/weave/pkg/update"
)

// NodeList is an ordered list of child nodes.
type NodeList []UiNode

// FoldMax combines sizes into their component-wise maximum.
func FoldMax(acc, size layout.PxSize) layout.PxSize {
	return acc.Max(size)
}

// FoldStackY combines sizes of a vertical stack: widest width, summed
// height.
func FoldStackY(acc, size layout.PxSize) layout.PxSize {
	return layout.PxSize{
		Width:  max(acc.Width, size.Width),
		Height: acc.Height.SaturatingAdd(size.Height),
	}
}

// FoldStackX combines sizes of a horizontal stack: summed width, tallest
// height.
func FoldStackX(acc, size layout.PxSize) layout.PxSize {
	return layout.PxSize{
		Width:  acc.Width.SaturatingAdd(size.Width),
		Height: max(acc.Height, size.Height),
	}
}

// MatchList is the children of a MatchNodeList closure. Calling any op
// method marks the op as delegated.
type MatchList struct {
	list      NodeList
	delegated bool
}

// Len returns the number of children.
func (l *MatchList) Len() int {
	return len(l.list)
}

// Node returns child i without marking the op as delegated.
func (l *MatchList) Node(i int) UiNode {
	return l.list[i]
}

// Delegated reports whether the closure delegated the current op.
func (l *MatchList) Delegated() bool {
	return l.delegated
}

// Op delegates op to every child. Measure and layout fold with FoldMax.
func (l *MatchList) Op(op UiNodeOp) {
	switch o := op.(type) {
	case OpMeasure:
		*o.DesiredSize = l.MeasureEach(o.WM, nil, FoldMax)
	case OpLayout:
		*o.FinalSize = l.LayoutEach(o.WL, nil, FoldMax)
	default:
		l.delegated = true
		for _, n := range l.list {
			Dispatch(n, op)
		}
	}
}

func (l *MatchList) Init()                                { l.Op(OpInit{}) }
func (l *MatchList) Deinit()                              { l.Op(OpDeinit{}) }
func (l *MatchList) Info(info InfoBuilder)                { l.Op(OpInfo{Info: info}) }
func (l *MatchList) Event(u *event.Update)                { l.Op(OpEvent{Update: u}) }
func (l *MatchList) Update(updates *update.WidgetUpdates) { l.Op(OpUpdate{Updates: updates}) }
func (l *MatchList) Render(frame FrameBuilder)            { l.Op(OpRender{Frame: frame}) }
func (l *MatchList) RenderUpdate(u FrameUpdate)           { l.Op(OpRenderUpdate{Update: u}) }

// MeasureEach measures every child with transform and folds the results,
// starting from the zero size. A nil transform measures the child as is.
func (l *MatchList) MeasureEach(
	wm *WidgetMeasure,
	transform func(i int, child UiNode, wm *WidgetMeasure) layout.PxSize,
	fold func(acc, size layout.PxSize) layout.PxSize,
) layout.PxSize {
	l.delegated = true
	var acc layout.PxSize
	for i, n := range l.list {
		var size layout.PxSize
		if transform != nil {
			size = transform(i, n, wm)
		} else {
			size = n.Measure(wm)
		}
		acc = fold(acc, size)
	}
	return acc
}

// LayoutEach lays out every child with transform and folds the results,
// starting from the zero size. A nil transform lays the child out as is.
func (l *MatchList) LayoutEach(
	wl *WidgetLayout,
	transform func(i int, child UiNode, wl *WidgetLayout) layout.PxSize,
	fold func(acc, size layout.PxSize) layout.PxSize,
) layout.PxSize {
	l.delegated = true
	var acc layout.PxSize
	for i, n := range l.list {
		var size layout.PxSize
		if transform != nil {
			size = transform(i, n, wl)
		} else {
			size = n.Layout(wl)
		}
		acc = fold(acc, size)
	}
	return acc
}

// MatchNodeList returns a node over children that calls f for every op and
// then, unless f delegated the op or returned Handled, forwards it to every
// child. Forwarded measure and layout fold with FoldMax. The contract on
// measure and layout sizes is the one of MatchNode.
func MatchNodeList(children NodeList, f func(l *MatchList, op UiNodeOp) Outcome) UiNode {
	n := &matchList{list: MatchList{list: children}, f: f}
	return NodeFunc(n.op)
}

type matchList struct {
	list MatchList
	f    func(*MatchList, UiNodeOp) Outcome
}

func (n *matchList) op(op UiNodeOp) {
	n.list.delegated = false
	if n.f(&n.list, op) == Continue && !n.list.delegated {
		forward(&listNode{&n.list}, op, "widget.MatchNodeList")
	}
}

// listNode lets forward dispatch to a MatchList.
type listNode struct {
	*MatchList
}

func (n *listNode) Measure(wm *WidgetMeasure) layout.PxSize {
	return n.MeasureEach(wm, nil, FoldMax)
}

func (n *listNode) Layout(wl *WidgetLayout) layout.PxSize {
	return n.LayoutEach(wl, nil, FoldMax)
}
