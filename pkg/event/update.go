package event

import (
	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/update"
)

// Update is one notification of an event on its way through an update pass.
type Update struct {
	event    AnyEvent
	args     Args
	delivery *update.DeliveryList

	pre []func(*Update)
	pos []func(*Update)
}

// Event returns the notified event.
func (u *Update) Event() AnyEvent {
	return u.event
}

// Args returns the untyped event args. Use Event.On to get them typed.
func (u *Update) Args() Args {
	return u.args
}

// Delivery returns the widgets the update is delivered to.
func (u *Update) Delivery() *update.DeliveryList {
	return u.delivery
}

// Propagation returns the propagation of the args.
func (u *Update) Propagation() *Propagation {
	return u.args.Propagation()
}

// PushPreAction queues action to run before node dispatch.
func (u *Update) PushPreAction(action func(*Update)) {
	u.pre = append(u.pre, action)
}

// PushPosAction queues action to run after node dispatch.
func (u *Update) PushPosAction(action func(*Update)) {
	u.pos = append(u.pos, action)
}

// CallPreActions runs and clears the preview actions, in order.
func (u *Update) CallPreActions() {
	actions := u.pre
	u.pre = nil
	callActions(u, actions, "event.preAction")
}

// CallPosActions runs and clears the main actions, in order.
func (u *Update) CallPosActions() {
	actions := u.pos
	u.pos = nil
	callActions(u, actions, "event.posAction")
}

func callActions(u *Update, actions []func(*Update), op string) {
	for _, a := range actions {
		errors.Guard(op, func() { a(u) })
	}
}
