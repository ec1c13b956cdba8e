package update

import (
	"slices"

	"github.com/samber/lo"
)

// DeliveryList names the widgets an update must reach, plus every ancestor
// on the way so tree traversal can skip unrelated branches.
type DeliveryList struct {
	subscribers map[WidgetID]WidgetPath
	filtered    bool
	entered     map[WidgetID]struct{}
	targets     map[WidgetID]struct{}
}

// NewDeliveryList returns an unfiltered list: every inserted path is kept.
func NewDeliveryList() *DeliveryList {
	return &DeliveryList{
		entered: make(map[WidgetID]struct{}),
		targets: make(map[WidgetID]struct{}),
	}
}

// NewSubscriberDeliveryList returns a list that only keeps paths whose leaf
// is a subscriber.
func NewSubscriberDeliveryList(subscribers map[WidgetID]WidgetPath) *DeliveryList {
	l := NewDeliveryList()
	l.subscribers = subscribers
	l.filtered = true
	return l
}

// InsertPath adds the path leaf as a target and every widget on it as
// entered. A filtered list cuts the path at its innermost subscriber, which
// becomes the target, and drops paths without subscribers.
func (l *DeliveryList) InsertPath(path WidgetPath) {
	if l.filtered {
		end := -1
		for i, id := range path {
			if _, ok := l.subscribers[id]; ok {
				end = i
			}
		}
		path = path[:end+1]
	}
	if len(path) == 0 {
		return
	}
	for _, id := range path {
		l.entered[id] = struct{}{}
	}
	l.targets[path.Leaf()] = struct{}{}
}

// SearchAll inserts every subscriber.
func (l *DeliveryList) SearchAll() {
	for _, p := range l.subscribers {
		l.InsertPath(p)
	}
}

// EnterWidget reports whether id or any of its descendants is a target.
func (l *DeliveryList) EnterWidget(id WidgetID) bool {
	_, ok := l.entered[id]
	return ok
}

// IsTarget reports whether id itself is a target.
func (l *DeliveryList) IsTarget(id WidgetID) bool {
	_, ok := l.targets[id]
	return ok
}

// Targets returns the target ids in ascending order.
func (l *DeliveryList) Targets() []WidgetID {
	ids := lo.Keys(l.targets)
	slices.Sort(ids)
	return ids
}

// Len returns the number of targets.
func (l *DeliveryList) Len() int {
	return len(l.targets)
}

// IsEmpty reports whether nothing will be delivered.
func (l *DeliveryList) IsEmpty() bool {
	return len(l.targets) == 0
}

// WidgetUpdates is the delivery list of an update pass over widgets.
type WidgetUpdates struct {
	Delivery *DeliveryList
}

// NewWidgetUpdates returns updates targeting the given paths.
func NewWidgetUpdates(paths ...WidgetPath) *WidgetUpdates {
	l := NewDeliveryList()
	for _, p := range paths {
		l.InsertPath(p)
	}
	return &WidgetUpdates{Delivery: l}
}

// EnterWidget reports whether the update must visit id.
func (u *WidgetUpdates) EnterWidget(id WidgetID) bool {
	return u != nil && u.Delivery != nil && u.Delivery.EnterWidget(id)
}

// IsTarget reports whether id requested the update.
func (u *WidgetUpdates) IsTarget(id WidgetID) bool {
	return u != nil && u.Delivery != nil && u.Delivery.IsTarget(id)
}
