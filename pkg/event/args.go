package event

import (
	"sync/atomic"
	"time"

	"github.com/go-drift/weave/pkg/update"
)

// Args is implemented by every event argument type.
type Args interface {
	// Timestamp is when the event happened.
	Timestamp() time.Time
	// DeliveryList inserts the widgets the event targets into list.
	DeliveryList(list *update.DeliveryList)
	// Propagation is shared by every handler of one notification.
	Propagation() *Propagation
}

// Propagation lets a handler stop the handlers after it from running.
// A nil Propagation never stops.
type Propagation struct {
	stopped atomic.Bool
}

// Stop skips every handler that has not run yet.
func (p *Propagation) Stop() {
	if p != nil {
		p.stopped.Store(true)
	}
}

// IsStopped reports whether a handler called Stop.
func (p *Propagation) IsStopped() bool {
	return p != nil && p.stopped.Load()
}

// ArgsBase implements Args. Embed it in event argument structs.
type ArgsBase struct {
	timestamp time.Time
	targets   []update.WidgetPath
	all       bool
	prop      *Propagation
}

// NewArgs returns args targeting the widgets at the end of targets.
func NewArgs(timestamp time.Time, targets ...update.WidgetPath) ArgsBase {
	return ArgsBase{timestamp: timestamp, targets: targets, prop: &Propagation{}}
}

// Broadcast returns args targeting every subscriber.
func Broadcast(timestamp time.Time) ArgsBase {
	return ArgsBase{timestamp: timestamp, all: true, prop: &Propagation{}}
}

// Timestamp implements Args.
func (a ArgsBase) Timestamp() time.Time {
	return a.timestamp
}

// DeliveryList implements Args.
func (a ArgsBase) DeliveryList(list *update.DeliveryList) {
	if a.all {
		list.SearchAll()
		return
	}
	for _, p := range a.targets {
		list.InsertPath(p)
	}
}

// Propagation implements Args.
func (a ArgsBase) Propagation() *Propagation {
	return a.prop
}
