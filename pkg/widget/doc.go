// Package widget defines the node operation protocol every UI element
// implements, the match adapters used to intercept operations, and the widget
// boundary node that owns widget identity, request flags and layout caching.
//
// # Core Components
//
//   - [UiNode]: the nine operations of a node, from [UiNode.Init] to
//     [UiNode.RenderUpdate]. [UiNodeOp] carries the same operations as
//     values, and [Dispatch] maps one onto the other.
//
//   - [MatchNode]: wraps a child with a closure that sees every op. The
//     closure may call the child through [MatchChild] and returns an
//     [Outcome]. On [Continue] without delegating, the adapter forwards
//     the op to the child itself. [MatchNodeLeaf], [MatchWidget] and
//     [MatchNodeList] are the leaf, widget and multi-child variants.
//
//   - [WidgetNode]: the widget boundary created with [New]. It owns the
//     widget [Context], the pending request flags and the measure and
//     layout caches, which are reused while the layout metrics they read
//     are unchanged.
//
//   - [OnPreEvent] and [OnEvent]: node properties that subscribe the
//     enclosing widget to an event and run a handler in the preview or main
//     phase.
//
// # Basic Usage
//
// A node that reserves 4px around its child when measuring. WithSubSize
// shrinks the child's constraints and adds the reserved size back to the
// result:
//
//	border := widget.MatchNode(child, func(c *widget.MatchChild, op widget.UiNodeOp) widget.Outcome {
//	    switch op := op.(type) {
//	    case widget.OpMeasure:
//	        *op.DesiredSize = layout.WithSubSize(layout.Size(8, 8), func() layout.PxSize {
//	            return c.Measure(op.WM)
//	        })
//	        return widget.Handled
//	    }
//	    return widget.Continue
//	})
//
// Every other op is forwarded to child unchanged. A real border would also
// offset the child in OpLayout; see [Padding]. Wrap the result with
// [New] to make it a widget with its own identity:
//
//	root := widget.New(0, border)
//
// Inside a widget, [Request] asks the app for another info, layout or
// render pass, and [SubVar] does so whenever a var updates:
//
//	widget.SubVar(count.ReadOnly(), update.FlagLayout|update.FlagRender)
package widget
