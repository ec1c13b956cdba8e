package update

import (
	"strings"
	"sync/atomic"
)

// Flags are the kinds of work an update pass can be asked to do.
type Flags uint32

const (
	// FlagUpdate requests an update pass over widgets.
	FlagUpdate Flags = 1 << iota
	// FlagInfo requests an info tree rebuild.
	FlagInfo
	// FlagLayout requests a layout pass.
	FlagLayout
	// FlagRender requests a full render.
	FlagRender
	// FlagRenderUpdate requests a render update.
	FlagRenderUpdate
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{FlagUpdate, "update"},
	{FlagInfo, "info"},
	{FlagLayout, "layout"},
	{FlagRender, "render"},
	{FlagRenderUpdate, "render_update"},
}

// Has reports whether every bit of other is set.
func (f Flags) Has(other Flags) bool {
	return f&other == other && other != 0
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, n := range flagNames {
		if f&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Signal wakes the app loop and accumulates app-wide update requests.
// It is safe for concurrent use.
type Signal struct {
	wake  chan struct{}
	flags atomic.Uint32
}

// NewSignal returns a ready signal.
func NewSignal() *Signal {
	return &Signal{wake: make(chan struct{}, 1)}
}

// Wake asks the app loop to run an iteration. Wakes coalesce.
func (s *Signal) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Woken returns the channel the loop waits on.
func (s *Signal) Woken() <-chan struct{} {
	return s.wake
}

// Request records flags and wakes the loop.
func (s *Signal) Request(f Flags) {
	s.flags.Or(uint32(f))
	s.Wake()
}

// Pending returns the requested flags without clearing them.
func (s *Signal) Pending() Flags {
	return Flags(s.flags.Load())
}

// Take returns and clears the requested flags.
func (s *Signal) Take() Flags {
	return Flags(s.flags.Swap(0))
}
