package widget

import (
	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/event"
	"github.com/go-drift/weave/pkg/layout"
	"github.com/go-drift/weave/pkg/update"
)

// Outcome is returned by match closures.
type Outcome uint8

const (
	// Continue lets the adapter forward the op to the child if the closure
	// did not delegate it.
	Continue Outcome = iota
	// Handled means the closure handled the op completely.
	Handled
)

// MatchChild is the child of a MatchNode closure. Calling any op method
// marks the op as delegated.
type MatchChild struct {
	node      UiNode
	delegated bool
}

// Node returns the child node. Calling it directly does not mark the op as
// delegated.
func (c *MatchChild) Node() UiNode {
	return c.node
}

// Delegated reports whether the closure delegated the current op.
func (c *MatchChild) Delegated() bool {
	return c.delegated
}

// Op delegates op.
func (c *MatchChild) Op(op UiNodeOp) {
	c.delegated = true
	Dispatch(c.node, op)
}

func (c *MatchChild) Init() {
	c.delegated = true
	c.node.Init()
}

func (c *MatchChild) Deinit() {
	c.delegated = true
	c.node.Deinit()
}

func (c *MatchChild) Info(info InfoBuilder) {
	c.delegated = true
	c.node.Info(info)
}

func (c *MatchChild) Event(u *event.Update) {
	c.delegated = true
	c.node.Event(u)
}

func (c *MatchChild) Update(updates *update.WidgetUpdates) {
	c.delegated = true
	c.node.Update(updates)
}

func (c *MatchChild) Measure(wm *WidgetMeasure) layout.PxSize {
	c.delegated = true
	return c.node.Measure(wm)
}

func (c *MatchChild) Layout(wl *WidgetLayout) layout.PxSize {
	c.delegated = true
	return c.node.Layout(wl)
}

func (c *MatchChild) Render(frame FrameBuilder) {
	c.delegated = true
	c.node.Render(frame)
}

func (c *MatchChild) RenderUpdate(u FrameUpdate) {
	c.delegated = true
	c.node.RenderUpdate(u)
}

// MatchNode returns a node that calls f for every op and then, unless f
// delegated the op or returned Handled, forwards the op to child.
//
// A measure or layout closure that returns Continue without delegating must
// leave the size zero. A non-zero size is reported as a contract violation
// and replaced by the child's result.
func MatchNode(child UiNode, f func(c *MatchChild, op UiNodeOp) Outcome) UiNode {
	n := &matchNode{child: MatchChild{node: child}, f: f}
	return NodeFunc(n.op)
}

type matchNode struct {
	child MatchChild
	f     func(*MatchChild, UiNodeOp) Outcome
}

func (n *matchNode) op(op UiNodeOp) {
	n.child.delegated = false
	if n.f(&n.child, op) == Continue && !n.child.delegated {
		forward(n.child.node, op, "widget.MatchNode")
		n.child.delegated = true
	}
}

// forward dispatches op to node for a closure that neither delegated nor
// handled it.
func forward(node UiNode, op UiNodeOp, site string) {
	switch o := op.(type) {
	case OpMeasure:
		if !o.DesiredSize.IsZero() {
			errors.Contractf(site, CurrentID().String(),
				"measure closure set desired size %v without delegating; using the child's measure", *o.DesiredSize)
		}
	case OpLayout:
		if !o.FinalSize.IsZero() {
			errors.Contractf(site, CurrentID().String(),
				"layout closure set final size %v without delegating; using the child's layout", *o.FinalSize)
		}
	}
	Dispatch(node, op)
}

// MatchNodeLeaf returns a node fully implemented by f. There is no child
// and no automatic forwarding.
func MatchNodeLeaf(f func(op UiNodeOp)) UiNode {
	return NodeFunc(f)
}

// Widget is a node that is a widget boundary.
type Widget interface {
	UiNode
	WidgetID() ID
	// PendingFlags returns the requests the widget has not served yet.
	PendingFlags() update.Flags
}

// AsWidget returns node as a Widget if it is a widget boundary.
func AsWidget(node UiNode) (Widget, bool) {
	w, ok := node.(Widget)
	if !ok || w.WidgetID().IsZero() {
		return nil, false
	}
	return w, true
}

// MatchWidget is MatchNode for a child widget. The returned node is a widget
// boundary with the child's identity. In DebugMode, after the child served
// an info, layout, render or render update op, the child must not have the
// same request pending again.
func MatchWidget(child UiNode, f func(c *MatchChild, op UiNodeOp) Outcome) UiNode {
	n := &matchWidget{matchNode: matchNode{child: MatchChild{node: child}, f: f}}
	n.NodeFunc = n.op
	return n
}

type matchWidget struct {
	NodeFunc
	matchNode
}

func (n *matchWidget) op(op UiNodeOp) {
	n.matchNode.op(op)
	if DebugMode && n.child.delegated {
		checkPending(n.child.node, op.Kind())
	}
}

var servedFlag = map[OpKind]update.Flags{
	KindInfo:         update.FlagInfo,
	KindLayout:       update.FlagLayout,
	KindRender:       update.FlagRender,
	KindRenderUpdate: update.FlagRenderUpdate,
}

func checkPending(child UiNode, kind OpKind) {
	flag, ok := servedFlag[kind]
	if !ok {
		return
	}
	w, ok := AsWidget(child)
	if !ok {
		return
	}
	if w.PendingFlags()&flag != 0 {
		errors.Contractf("widget.MatchWidget", w.WidgetID().String(),
			"child requested %v again during its own %v pass", flag, kind)
	}
}

// WidgetID returns the child widget id, or zero if the child is not a
// widget.
func (n *matchWidget) WidgetID() ID {
	if w, ok := AsWidget(n.child.node); ok {
		return w.WidgetID()
	}
	return 0
}

// PendingFlags returns the pending requests of the child widget.
func (n *matchWidget) PendingFlags() update.Flags {
	if w, ok := AsWidget(n.child.node); ok {
		return w.PendingFlags()
	}
	return 0
}
