package layout

import (
	"fmt"
	"strconv"
)

// Axis selects the horizontal or vertical dimension.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Unit is the unit of a Length.
type Unit uint8

const (
	// UnitDefault resolves to the default length given by the caller.
	UnitDefault Unit = iota
	UnitPx
	UnitDip
	// UnitEm is relative to the current font size.
	UnitEm
	// UnitRootEm is relative to the root font size.
	UnitRootEm
	// UnitViewportWidth is relative to the viewport width.
	UnitViewportWidth
	// UnitViewportHeight is relative to the viewport height.
	UnitViewportHeight
	// UnitFactor is relative to the fill length of the constraints on the
	// resolved axis.
	UnitFactor
)

var unitSuffix = [...]string{
	UnitDefault:        "",
	UnitPx:             "px",
	UnitDip:            "dip",
	UnitEm:             "em",
	UnitRootEm:         "rem",
	UnitViewportWidth:  "vw",
	UnitViewportHeight: "vh",
	UnitFactor:         "fct",
}

// Length is a length that resolves to pixels against the layout context.
type Length struct {
	Unit  Unit
	Value float32
}

// DefaultLength resolves to the caller's default.
func DefaultLength() Length { return Length{} }

// LengthPx is an exact pixel length.
func LengthPx(px Px) Length { return Length{Unit: UnitPx, Value: float32(px)} }

// LengthDip is a device independent length.
func LengthDip(d Dip) Length { return Length{Unit: UnitDip, Value: float32(d)} }

// Em is a multiple of the font size.
func Em(f Factor) Length { return Length{Unit: UnitEm, Value: float32(f)} }

// RootEm is a multiple of the root font size.
func RootEm(f Factor) Length { return Length{Unit: UnitRootEm, Value: float32(f)} }

// Vw is a fraction of the viewport width.
func Vw(f Factor) Length { return Length{Unit: UnitViewportWidth, Value: float32(f)} }

// Vh is a fraction of the viewport height.
func Vh(f Factor) Length { return Length{Unit: UnitViewportHeight, Value: float32(f)} }

// Relative is a fraction of the fill length.
func Relative(f Factor) Length { return Length{Unit: UnitFactor, Value: float32(f)} }

// IsDefault reports whether l resolves to the default length.
func (l Length) IsDefault() bool {
	return l.Unit == UnitDefault
}

// Resolve returns l in pixels along axis. It reads the metrics the unit
// depends on, which registers their mask bits. A default length resolves to
// def and registers MaskDefaultValue.
func (l Length) Resolve(axis Axis, def Px) Px {
	f := Factor(l.Value)
	switch l.Unit {
	case UnitPx:
		return roundPx(float64(l.Value))
	case UnitDip:
		return Dip(l.Value).ToPx(ScaleFactor())
	case UnitEm:
		return FontSize().Mul(f)
	case UnitRootEm:
		return RootFontSize().Mul(f)
	case UnitViewportWidth:
		return Viewport().Width.Mul(f)
	case UnitViewportHeight:
		return Viewport().Height.Mul(f)
	case UnitFactor:
		c := Constraints()
		if axis == AxisY {
			return c.Y.FillLength().Mul(f)
		}
		return c.X.FillLength().Mul(f)
	default:
		RegisterMetricsUse(MaskDefaultValue)
		return def
	}
}

func (l Length) String() string {
	if l.Unit == UnitDefault {
		return "default"
	}
	if int(l.Unit) >= len(unitSuffix) {
		return fmt.Sprintf("%g?%d", l.Value, l.Unit)
	}
	return strconv.FormatFloat(float64(l.Value), 'g', -1, 32) + unitSuffix[l.Unit]
}

// LengthSize is a width and height of lengths.
type LengthSize struct {
	Width  Length
	Height Length
}

// Resolve returns s in pixels, using def for default axes.
func (s LengthSize) Resolve(def PxSize) PxSize {
	return PxSize{
		Width:  s.Width.Resolve(AxisX, def.Width),
		Height: s.Height.Resolve(AxisY, def.Height),
	}
}
