package layout

import "strings"

// Mask is a set of layout metrics a computation depends on.
type Mask uint32

const (
	// MaskDefaultValue marks a length that resolved to its default. It has
	// no metrics field of its own.
	MaskDefaultValue Mask = 1 << iota
	// MaskConstraints covers the 2D, inline and z constraints.
	MaskConstraints
	MaskFontSize
	MaskRootFontSize
	MaskScaleFactor
	MaskViewport
	MaskScreenPPI
	MaskDirection
	MaskLeftover

	// MaskNone is the empty set.
	MaskNone Mask = 0
	// MaskAll contains every bit.
	MaskAll = MaskDefaultValue | MaskConstraints | MaskFontSize | MaskRootFontSize |
		MaskScaleFactor | MaskViewport | MaskScreenPPI | MaskDirection | MaskLeftover
)

var maskNames = []struct {
	m    Mask
	name string
}{
	{MaskDefaultValue, "default_value"},
	{MaskConstraints, "constraints"},
	{MaskFontSize, "font_size"},
	{MaskRootFontSize, "root_font_size"},
	{MaskScaleFactor, "scale_factor"},
	{MaskViewport, "viewport"},
	{MaskScreenPPI, "screen_ppi"},
	{MaskDirection, "direction"},
	{MaskLeftover, "leftover"},
}

// Has reports whether every bit of other is set in m.
func (m Mask) Has(other Mask) bool {
	return m&other == other
}

// Intersects reports whether m and other share a bit.
func (m Mask) Intersects(other Mask) bool {
	return m&other != 0
}

func (m Mask) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, n := range maskNames {
		if m&n.m != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Snapshot is the plain value of a Metrics. Two snapshots are == only when
// every field matches, direction and leftover included; caches compare with
// MaskedEqual.
type Snapshot struct {
	Constraints  PxConstraints2D
	Inline       InlineConstraints
	Z            PxConstraints
	FontSize     Px
	RootFontSize Px
	ScaleFactor  Factor
	Viewport     PxSize
	ScreenPPI    PPI
	Direction    LayoutDirection
	Leftover     LeftoverSize
}

// MaskedEqual reports whether s and o are equal in every field selected by
// mask.
func (s Snapshot) MaskedEqual(o Snapshot, mask Mask) bool {
	if mask.Has(MaskConstraints) && (s.Constraints != o.Constraints || s.Inline != o.Inline || s.Z != o.Z) {
		return false
	}
	if mask.Has(MaskFontSize) && s.FontSize != o.FontSize {
		return false
	}
	if mask.Has(MaskRootFontSize) && s.RootFontSize != o.RootFontSize {
		return false
	}
	if mask.Has(MaskScaleFactor) && s.ScaleFactor != o.ScaleFactor {
		return false
	}
	if mask.Has(MaskViewport) && s.Viewport != o.Viewport {
		return false
	}
	if mask.Has(MaskScreenPPI) && s.ScreenPPI != o.ScreenPPI {
		return false
	}
	if mask.Has(MaskDirection) && s.Direction != o.Direction {
		return false
	}
	if mask.Has(MaskLeftover) && s.Leftover != o.Leftover {
		return false
	}
	return true
}

// Metrics are the layout inputs of a node. Reading a field through a getter
// registers its mask bit with the innermost CaptureMetricsUse.
type Metrics struct {
	s Snapshot
}

// NewMetrics returns root metrics: the viewport filled, font size as both
// font and root font size, left to right, screen PPI 96.
func NewMetrics(scale Factor, viewport PxSize, fontSize Px) Metrics {
	return Metrics{s: Snapshot{
		Constraints:  Fill2D(viewport),
		Z:            Unbounded(),
		FontSize:     fontSize,
		RootFontSize: fontSize,
		ScaleFactor:  scale,
		Viewport:     viewport,
		ScreenPPI:    DefaultPPI,
		Direction:    LTR,
	}}
}

// MetricsFromSnapshot returns metrics with the values of s.
func MetricsFromSnapshot(s Snapshot) Metrics {
	return Metrics{s: s}
}

// Snapshot returns every field without registering any use.
func (m Metrics) Snapshot() Snapshot {
	return m.s
}

// Constraints returns the size constraints.
func (m Metrics) Constraints() PxConstraints2D {
	RegisterMetricsUse(MaskConstraints)
	return m.s.Constraints
}

// Inline returns the inline constraints.
func (m Metrics) Inline() InlineConstraints {
	RegisterMetricsUse(MaskConstraints)
	return m.s.Inline
}

// ZConstraints returns the depth constraints.
func (m Metrics) ZConstraints() PxConstraints {
	RegisterMetricsUse(MaskConstraints)
	return m.s.Z
}

// FontSize returns the current font size.
func (m Metrics) FontSize() Px {
	RegisterMetricsUse(MaskFontSize)
	return m.s.FontSize
}

// RootFontSize returns the font size of the root.
func (m Metrics) RootFontSize() Px {
	RegisterMetricsUse(MaskRootFontSize)
	return m.s.RootFontSize
}

// ScaleFactor returns the pixel scale factor.
func (m Metrics) ScaleFactor() Factor {
	RegisterMetricsUse(MaskScaleFactor)
	return m.s.ScaleFactor
}

// Viewport returns the size of the window viewport.
func (m Metrics) Viewport() PxSize {
	RegisterMetricsUse(MaskViewport)
	return m.s.Viewport
}

// ViewportMin returns the smaller viewport dimension.
func (m Metrics) ViewportMin() Px {
	v := m.Viewport()
	return minPx(v.Width, v.Height)
}

// ViewportMax returns the larger viewport dimension.
func (m Metrics) ViewportMax() Px {
	v := m.Viewport()
	return maxPx(v.Width, v.Height)
}

// ScreenPPI returns the screen density.
func (m Metrics) ScreenPPI() PPI {
	RegisterMetricsUse(MaskScreenPPI)
	return m.s.ScreenPPI
}

// Direction returns the flow direction.
func (m Metrics) Direction() LayoutDirection {
	RegisterMetricsUse(MaskDirection)
	return m.s.Direction
}

// Leftover returns the parent's leftover space.
func (m Metrics) Leftover() LeftoverSize {
	RegisterMetricsUse(MaskLeftover)
	return m.s.Leftover
}

// WithConstraints returns m with the size constraints replaced.
func (m Metrics) WithConstraints(c PxConstraints2D) Metrics {
	m.s.Constraints = c
	return m
}

// WithInline returns m with the inline constraints replaced.
func (m Metrics) WithInline(c InlineConstraints) Metrics {
	m.s.Inline = c
	return m
}

// WithZConstraints returns m with the depth constraints replaced.
func (m Metrics) WithZConstraints(c PxConstraints) Metrics {
	m.s.Z = c
	return m
}

// WithFontSize returns m with the font size replaced.
func (m Metrics) WithFontSize(size Px) Metrics {
	m.s.FontSize = size
	return m
}

// WithRootFontSize returns m with the root font size replaced.
func (m Metrics) WithRootFontSize(size Px) Metrics {
	m.s.RootFontSize = size
	return m
}

// WithScaleFactor returns m with the scale factor replaced.
func (m Metrics) WithScaleFactor(scale Factor) Metrics {
	m.s.ScaleFactor = scale
	return m
}

// WithViewport returns m with the viewport replaced.
func (m Metrics) WithViewport(viewport PxSize) Metrics {
	m.s.Viewport = viewport
	return m
}

// WithScreenPPI returns m with the screen density replaced.
func (m Metrics) WithScreenPPI(ppi PPI) Metrics {
	m.s.ScreenPPI = ppi
	return m
}

// WithDirection returns m with the direction replaced.
func (m Metrics) WithDirection(d LayoutDirection) Metrics {
	m.s.Direction = d
	return m
}

// WithLeftover returns m with the leftover space replaced.
func (m Metrics) WithLeftover(l LeftoverSize) Metrics {
	m.s.Leftover = l
	return m
}
