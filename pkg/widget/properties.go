package widget

import (
	"github.com/go-drift/weave/pkg/event"
	"github.com/go-drift/weave/pkg/layout"
)

// OnPreEvent returns child with a handler for ev that runs before the
// child sees the update. The innermost widget subscribes to ev on init and
// releases the subscription on deinit.
func OnPreEvent[A event.Args](child UiNode, ev *event.Event[A], handler func(A)) UiNode {
	return eventProperty(child, ev, handler, true)
}

// OnEvent returns child with a handler for ev that runs after the child saw
// the update, unless the child stopped propagation.
func OnEvent[A event.Args](child UiNode, ev *event.Event[A], handler func(A)) UiNode {
	return eventProperty(child, ev, handler, false)
}

func eventProperty[A event.Args](child UiNode, ev *event.Event[A], handler func(A), preview bool) UiNode {
	return MatchNode(child, func(c *MatchChild, op UiNodeOp) Outcome {
		switch o := op.(type) {
		case OpInit:
			c.Init()
			ctx, ok := CurrentContext()
			if !ok {
				panic("widget: event property used outside of a widget")
			}
			ctx.PushEventHandle(ev.Subscribe(ctx.id, ctx.path))
		case OpEvent:
			if _, ok := ev.On(o.Update); !ok {
				return Continue
			}
			if preview {
				if args, ok := ev.OnUnhandled(o.Update); ok && o.Update.Delivery().EnterWidget(CurrentID()) {
					handler(args)
				}
				c.Event(o.Update)
				return Handled
			}
			c.Event(o.Update)
			if args, ok := ev.OnUnhandled(o.Update); ok && o.Update.Delivery().EnterWidget(CurrentID()) {
				handler(args)
			}
		}
		return Continue
	})
}

// Padding returns child laid out inside the available size minus padding,
// with padding added around it.
func Padding(child UiNode, padding layout.PxSize) UiNode {
	half := layout.PxVector{X: padding.Width / 2, Y: padding.Height / 2}
	return MatchNode(child, func(c *MatchChild, op UiNodeOp) Outcome {
		switch o := op.(type) {
		case OpMeasure:
			*o.DesiredSize = layout.WithSubSize(padding, func() layout.PxSize {
				return c.Measure(o.WM)
			})
		case OpLayout:
			*o.FinalSize = layout.WithSubSize(padding, func() layout.PxSize {
				return o.WL.WithTranslate(half, func() layout.PxSize {
					return c.Layout(o.WL)
				})
			})
		}
		return Continue
	})
}
