package layout

import "fmt"

// PxConstraints constrains a length along one axis.
//
// Max is MaxPx when the axis is unbounded. Fill asks the child to use the
// maximum length when it is bounded.
type PxConstraints struct {
	Min  Px
	Max  Px
	Fill bool
}

// Unbounded returns constraints with no maximum.
func Unbounded() PxConstraints {
	return PxConstraints{Max: MaxPx}
}

// Bounded returns constraints between zero and max.
func Bounded(max Px) PxConstraints {
	return PxConstraints{Max: max}
}

// Exact returns constraints that only allow length.
func Exact(length Px) PxConstraints {
	return PxConstraints{Min: length, Max: length, Fill: true}
}

// FillTo returns bounded constraints that ask the child to fill max.
func FillTo(max Px) PxConstraints {
	return PxConstraints{Max: max, Fill: true}
}

// IsBounded reports whether the axis has a maximum.
func (c PxConstraints) IsBounded() bool {
	return c.Max != MaxPx
}

// IsExact reports whether only one length is allowed.
func (c PxConstraints) IsExact() bool {
	return c.Min == c.Max
}

// IsFill reports whether the child should fill a bounded axis.
func (c PxConstraints) IsFill() bool {
	return c.Fill && c.IsBounded()
}

// Clamp returns length clamped to [Min, Max].
func (c PxConstraints) Clamp(length Px) Px {
	return maxPx(c.Min, minPx(c.Max, length))
}

// FillLength returns the length a filling child takes: Max when filling a
// bounded axis, otherwise Min.
func (c PxConstraints) FillLength() Px {
	if c.IsFill() {
		return c.Max
	}
	return c.Min
}

// FillOr returns FillLength when filling, otherwise length clamped.
func (c PxConstraints) FillOr(length Px) Px {
	if c.IsFill() {
		return c.Max
	}
	return c.Clamp(length)
}

// WithMax returns c with Max lowered to max. Min follows when it would be
// larger than the new maximum.
func (c PxConstraints) WithMax(max Px) PxConstraints {
	c.Max = minPx(c.Max, max)
	c.Min = minPx(c.Min, c.Max)
	return c
}

// WithNewMax returns c with Max replaced by max.
func (c PxConstraints) WithNewMax(max Px) PxConstraints {
	c.Max = max
	c.Min = minPx(c.Min, max)
	return c
}

// WithMin returns c with Min raised to min. Max follows when it would be
// smaller than the new minimum.
func (c PxConstraints) WithMin(min Px) PxConstraints {
	c.Min = maxPx(c.Min, min)
	c.Max = maxPx(c.Max, c.Min)
	return c
}

// WithFill returns c with Fill set.
func (c PxConstraints) WithFill(fill bool) PxConstraints {
	c.Fill = fill
	return c
}

// WithUnbounded returns c with no maximum.
func (c PxConstraints) WithUnbounded() PxConstraints {
	c.Max = MaxPx
	return c
}

// WithLess returns c with Min and Max reduced by removed, saturating at zero.
// An unbounded maximum stays unbounded.
func (c PxConstraints) WithLess(removed Px) PxConstraints {
	c.Min = maxPx(0, c.Min.SaturatingSub(removed))
	if c.IsBounded() {
		c.Max = maxPx(0, c.Max.SaturatingSub(removed))
	}
	return c
}

// WithMore returns c with Min and Max increased by added.
func (c PxConstraints) WithMore(added Px) PxConstraints {
	c.Min = c.Min.SaturatingAdd(added)
	if c.IsBounded() {
		c.Max = c.Max.SaturatingAdd(added)
	}
	return c
}

func (c PxConstraints) String() string {
	if c.IsFill() {
		return fmt.Sprintf("fill(%v..%v)", c.Min, c.Max)
	}
	return fmt.Sprintf("%v..%v", c.Min, c.Max)
}

// PxConstraints2D constrains a size.
type PxConstraints2D struct {
	X PxConstraints
	Y PxConstraints
}

// Unbounded2D returns constraints with no maximum on either axis.
func Unbounded2D() PxConstraints2D {
	return PxConstraints2D{X: Unbounded(), Y: Unbounded()}
}

// Bounded2D returns constraints between zero and max.
func Bounded2D(max PxSize) PxConstraints2D {
	return PxConstraints2D{X: Bounded(max.Width), Y: Bounded(max.Height)}
}

// Exact2D returns constraints that only allow size.
func Exact2D(size PxSize) PxConstraints2D {
	return PxConstraints2D{X: Exact(size.Width), Y: Exact(size.Height)}
}

// Fill2D returns bounded constraints that ask the child to fill max.
func Fill2D(max PxSize) PxConstraints2D {
	return PxConstraints2D{X: FillTo(max.Width), Y: FillTo(max.Height)}
}

// MaxSize returns the maximum size. ok is false when either axis is
// unbounded.
func (c PxConstraints2D) MaxSize() (size PxSize, ok bool) {
	return PxSize{Width: c.X.Max, Height: c.Y.Max}, c.X.IsBounded() && c.Y.IsBounded()
}

// MinSize returns the minimum size.
func (c PxConstraints2D) MinSize() PxSize {
	return PxSize{Width: c.X.Min, Height: c.Y.Min}
}

// IsExact reports whether both axes allow only one length.
func (c PxConstraints2D) IsExact() bool {
	return c.X.IsExact() && c.Y.IsExact()
}

// Clamp returns size clamped on both axes.
func (c PxConstraints2D) Clamp(size PxSize) PxSize {
	return PxSize{Width: c.X.Clamp(size.Width), Height: c.Y.Clamp(size.Height)}
}

// FillSize returns the size a filling child takes.
func (c PxConstraints2D) FillSize() PxSize {
	return PxSize{Width: c.X.FillLength(), Height: c.Y.FillLength()}
}

// FillSizeOr returns FillSize on filling axes and size clamped otherwise.
func (c PxConstraints2D) FillSizeOr(size PxSize) PxSize {
	return PxSize{Width: c.X.FillOr(size.Width), Height: c.Y.FillOr(size.Height)}
}

// WithMax returns c with both maximums lowered to size.
func (c PxConstraints2D) WithMax(size PxSize) PxConstraints2D {
	return PxConstraints2D{X: c.X.WithMax(size.Width), Y: c.Y.WithMax(size.Height)}
}

// WithMin returns c with both minimums raised to size.
func (c PxConstraints2D) WithMin(size PxSize) PxConstraints2D {
	return PxConstraints2D{X: c.X.WithMin(size.Width), Y: c.Y.WithMin(size.Height)}
}

// WithFill returns c with Fill set per axis.
func (c PxConstraints2D) WithFill(x, y bool) PxConstraints2D {
	return PxConstraints2D{X: c.X.WithFill(x), Y: c.Y.WithFill(y)}
}

// WithLess returns c reduced by removed on both axes.
func (c PxConstraints2D) WithLess(removed PxSize) PxConstraints2D {
	return PxConstraints2D{X: c.X.WithLess(removed.Width), Y: c.Y.WithLess(removed.Height)}
}

// WithMore returns c increased by added on both axes.
func (c PxConstraints2D) WithMore(added PxSize) PxConstraints2D {
	return PxConstraints2D{X: c.X.WithMore(added.Width), Y: c.Y.WithMore(added.Height)}
}

func (c PxConstraints2D) String() string {
	return fmt.Sprintf("{x: %v, y: %v}", c.X, c.Y)
}

// InlineKind says which inline constraints are set.
type InlineKind uint8

const (
	// InlineNone means the node is not laid out inline.
	InlineNone InlineKind = iota
	// InlineMeasuring means Measure constraints are set.
	InlineMeasuring
	// InlineLayingOut means Layout constraints are set.
	InlineLayingOut
)

// InlineMeasure constrains the first row of an inline child during measure.
type InlineMeasure struct {
	// FirstMax is the space left on the row the child starts in.
	FirstMax Px
	// MidClearMinSize is the minimum height of rows the child spans fully.
	MidClearMinSize Px
}

// InlineLayout positions the first and last row segments of an inline child.
type InlineLayout struct {
	First PxRect
	// MidClear is the vertical offset where the child's middle rows start.
	MidClear Px
	Last     PxRect
}

// InlineConstraints are the extra constraints of a node laid out inside a
// text-like flow.
type InlineConstraints struct {
	Kind    InlineKind
	Measure InlineMeasure
	Layout  InlineLayout
}

// MeasureInline returns inline measure constraints.
func MeasureInline(m InlineMeasure) InlineConstraints {
	return InlineConstraints{Kind: InlineMeasuring, Measure: m}
}

// LayoutInline returns inline layout constraints.
func LayoutInline(l InlineLayout) InlineConstraints {
	return InlineConstraints{Kind: InlineLayingOut, Layout: l}
}

// LayoutDirection is the horizontal flow direction.
type LayoutDirection uint8

const (
	// LTR flows left to right.
	LTR LayoutDirection = iota
	// RTL flows right to left.
	RTL
)

// IsRTL reports whether d is RTL.
func (d LayoutDirection) IsRTL() bool {
	return d == RTL
}

func (d LayoutDirection) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// LeftoverSize is the space a parent panel has left to distribute to
// children that asked for a share of it. An axis without a value is unset.
type LeftoverSize struct {
	Width     Px
	Height    Px
	HasWidth  bool
	HasHeight bool
}

// Leftover2D returns a LeftoverSize with both axes set.
func Leftover2D(size PxSize) LeftoverSize {
	return LeftoverSize{Width: size.Width, Height: size.Height, HasWidth: true, HasHeight: true}
}
