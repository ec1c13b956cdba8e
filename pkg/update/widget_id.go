package update

import (
	"strconv"
	"sync/atomic"
)

// WidgetID identifies a widget for the lifetime of the process.
type WidgetID uint64

var lastWidgetID atomic.Uint64

// NewWidgetID returns a process-unique id. The zero id is never returned.
func NewWidgetID() WidgetID {
	return WidgetID(lastWidgetID.Add(1))
}

// IsZero reports whether id was never assigned.
func (id WidgetID) IsZero() bool {
	return id == 0
}

func (id WidgetID) String() string {
	return "W#" + strconv.FormatUint(uint64(id), 10)
}

// WidgetPath lists widget ids from the root to a widget, inclusive.
type WidgetPath []WidgetID

// Leaf returns the widget the path leads to.
func (p WidgetPath) Leaf() WidgetID {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1]
}

// Contains reports whether id is on the path.
func (p WidgetPath) Contains(id WidgetID) bool {
	for _, w := range p {
		if w == id {
			return true
		}
	}
	return false
}

// Child returns a new path extended by id.
func (p WidgetPath) Child(id WidgetID) WidgetPath {
	out := make(WidgetPath, len(p)+1)
	copy(out, p)
	out[len(p)] = id
	return out
}
