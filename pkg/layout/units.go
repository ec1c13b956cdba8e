// Package layout defines the pixel units, constraints and layout metrics used
// by measure and layout passes, and the LAYOUT context that carries the
// current metrics down the node tree.
//
// Widgets read metrics through the package-level getters ([Constraints],
// [FontSize], [Viewport] and so on). Every getter records which metric was
// read, so a caching node can wrap its child in [CaptureMetricsUse] and later
// reuse its result while none of the fields it depends on changed.
package layout

import (
	"fmt"
	"math"
)

// Px is a length in device pixels.
type Px int32

// MaxPx is the largest representable length. Constraints use it as
// "unbounded".
const MaxPx Px = math.MaxInt32

// SaturatingAdd returns p+o, clamped to the int32 range.
func (p Px) SaturatingAdd(o Px) Px {
	return clampPx(int64(p) + int64(o))
}

// SaturatingSub returns p-o, clamped to the int32 range.
func (p Px) SaturatingSub(o Px) Px {
	return clampPx(int64(p) - int64(o))
}

// Mul scales p by f, rounding to the nearest pixel.
func (p Px) Mul(f Factor) Px {
	return roundPx(float64(p) * float64(f))
}

// ToDip converts p to device independent pixels at scale.
func (p Px) ToDip(scale Factor) Dip {
	if scale == 0 {
		return 0
	}
	return Dip(float32(p) / float32(scale))
}

func (p Px) String() string {
	if p == MaxPx {
		return "MAXpx"
	}
	return fmt.Sprintf("%dpx", int32(p))
}

func clampPx(v int64) Px {
	if v > math.MaxInt32 {
		return MaxPx
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return Px(v)
}

// roundPx rounds v to the nearest pixel, clamped to the int32 range. NaN
// rounds to zero.
func roundPx(v float64) Px {
	switch v = math.Round(v); {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return MaxPx
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return Px(v)
}

func maxPx(a, b Px) Px {
	if a > b {
		return a
	}
	return b
}

func minPx(a, b Px) Px {
	if a < b {
		return a
	}
	return b
}

// Dip is a length in device independent pixels, 1/96 of an inch at scale
// factor 1.
type Dip float32

// ToPx converts d to device pixels at scale.
func (d Dip) ToPx(scale Factor) Px {
	return roundPx(float64(d) * float64(scale))
}

// Factor is a multiplier, 1.0 is 100%.
type Factor float32

// PPI is a pixel density in pixels per inch.
type PPI float32

// DefaultPPI is the density assumed when the screen does not report one.
const DefaultPPI PPI = 96

// PxSize is a width and height in pixels.
type PxSize struct {
	Width  Px
	Height Px
}

// Size returns a PxSize.
func Size(width, height Px) PxSize {
	return PxSize{Width: width, Height: height}
}

// IsEmpty reports whether either dimension is zero or negative.
func (s PxSize) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// IsZero reports whether s is the zero size.
func (s PxSize) IsZero() bool {
	return s == PxSize{}
}

// Add returns the component-wise saturating sum.
func (s PxSize) Add(o PxSize) PxSize {
	return PxSize{Width: s.Width.SaturatingAdd(o.Width), Height: s.Height.SaturatingAdd(o.Height)}
}

// Sub returns the component-wise saturating difference.
func (s PxSize) Sub(o PxSize) PxSize {
	return PxSize{Width: s.Width.SaturatingSub(o.Width), Height: s.Height.SaturatingSub(o.Height)}
}

// Max returns the component-wise maximum.
func (s PxSize) Max(o PxSize) PxSize {
	return PxSize{Width: maxPx(s.Width, o.Width), Height: maxPx(s.Height, o.Height)}
}

// Min returns the component-wise minimum.
func (s PxSize) Min(o PxSize) PxSize {
	return PxSize{Width: minPx(s.Width, o.Width), Height: minPx(s.Height, o.Height)}
}

func (s PxSize) String() string {
	return fmt.Sprintf("(%v, %v)", s.Width, s.Height)
}

// PxPoint is a position in pixels.
type PxPoint struct {
	X Px
	Y Px
}

// Add returns p translated by v.
func (p PxPoint) Add(v PxVector) PxPoint {
	return PxPoint{X: p.X.SaturatingAdd(v.X), Y: p.Y.SaturatingAdd(v.Y)}
}

// Sub returns the vector from o to p.
func (p PxPoint) Sub(o PxPoint) PxVector {
	return PxVector{X: p.X.SaturatingSub(o.X), Y: p.Y.SaturatingSub(o.Y)}
}

// PxVector is an offset in pixels.
type PxVector struct {
	X Px
	Y Px
}

// Add returns the component-wise saturating sum.
func (v PxVector) Add(o PxVector) PxVector {
	return PxVector{X: v.X.SaturatingAdd(o.X), Y: v.Y.SaturatingAdd(o.Y)}
}

// PxRect is an origin and size in pixels.
type PxRect struct {
	Origin PxPoint
	Size   PxSize
}

// RectFromXYWH constructs a PxRect from x, y, width, height values.
func RectFromXYWH(x, y, width, height Px) PxRect {
	return PxRect{Origin: PxPoint{X: x, Y: y}, Size: PxSize{Width: width, Height: height}}
}

// Max returns the bottom-right corner.
func (r PxRect) Max() PxPoint {
	return PxPoint{X: r.Origin.X.SaturatingAdd(r.Size.Width), Y: r.Origin.Y.SaturatingAdd(r.Size.Height)}
}

// Contains reports whether p is inside r. The right and bottom edges are
// exclusive.
func (r PxRect) Contains(p PxPoint) bool {
	m := r.Max()
	return p.X >= r.Origin.X && p.Y >= r.Origin.Y && p.X < m.X && p.Y < m.Y
}

// IsEmpty reports whether the rect has no area.
func (r PxRect) IsEmpty() bool {
	return r.Size.IsEmpty()
}

// Translate returns r moved by v.
func (r PxRect) Translate(v PxVector) PxRect {
	return PxRect{Origin: r.Origin.Add(v), Size: r.Size}
}

// Union returns the smallest rect containing r and o. Empty rects are
// ignored.
func (r PxRect) Union(o PxRect) PxRect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	rm, om := r.Max(), o.Max()
	origin := PxPoint{X: minPx(r.Origin.X, o.Origin.X), Y: minPx(r.Origin.Y, o.Origin.Y)}
	return PxRect{
		Origin: origin,
		Size: PxSize{
			Width:  maxPx(rm.X, om.X).SaturatingSub(origin.X),
			Height: maxPx(rm.Y, om.Y).SaturatingSub(origin.Y),
		},
	}
}
