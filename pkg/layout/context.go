package layout

import (
	"sync/atomic"

	"github.com/go-drift/weave/internal/scope"
)

// PassID identifies one root layout pass.
type PassID uint64

var passCounter atomic.Uint64

// NewPassID returns a process-unique pass id.
func NewPassID() PassID {
	return PassID(passCounter.Add(1))
}

type useAccumulator struct {
	mask atomic.Uint32
}

var (
	// nil entries are pushed by WithNoContext.
	metricsStack scope.Stack[*Metrics]
	passStack    scope.Stack[PassID]
	useStack     scope.Stack[*useAccumulator]
)

// WithRootContext runs f as the root of layout pass pass with metrics m.
func WithRootContext[R any](pass PassID, m Metrics, f func() R) R {
	var r R
	passStack.With(pass, func() {
		r = WithContext(m, f)
	})
	return r
}

// WithContext runs f with m as the current metrics.
func WithContext[R any](m Metrics, f func() R) R {
	var r R
	metricsStack.With(&m, func() { r = f() })
	return r
}

// WithNoContext runs f with no current metrics.
func WithNoContext[R any](f func() R) R {
	var r R
	metricsStack.With(nil, func() { r = f() })
	return r
}

// HasContext reports whether metrics are available.
func HasContext() bool {
	m, ok := metricsStack.Top()
	return ok && m != nil
}

// Current returns the current metrics without registering any use. It
// panics outside of a layout context.
func Current() Metrics {
	m, ok := metricsStack.Top()
	if !ok || m == nil {
		panic("layout: no layout context")
	}
	return *m
}

// Pass returns the current root pass id, or zero outside a root context.
func Pass() PassID {
	p, _ := passStack.Top()
	return p
}

// Constraints returns the current size constraints.
func Constraints() PxConstraints2D { return Current().Constraints() }

// Inline returns the current inline constraints.
func Inline() InlineConstraints { return Current().Inline() }

// ZConstraints returns the current depth constraints.
func ZConstraints() PxConstraints { return Current().ZConstraints() }

// FontSize returns the current font size.
func FontSize() Px { return Current().FontSize() }

// RootFontSize returns the root font size.
func RootFontSize() Px { return Current().RootFontSize() }

// ScaleFactor returns the current scale factor.
func ScaleFactor() Factor { return Current().ScaleFactor() }

// Viewport returns the current viewport.
func Viewport() PxSize { return Current().Viewport() }

// ScreenPPI returns the current screen density.
func ScreenPPI() PPI { return Current().ScreenPPI() }

// Direction returns the current flow direction.
func Direction() LayoutDirection { return Current().Direction() }

// Leftover returns the current leftover space.
func Leftover() LeftoverSize { return Current().Leftover() }

// WithConstraints runs f with the size constraints replaced.
func WithConstraints[R any](c PxConstraints2D, f func() R) R {
	return WithContext(Current().WithConstraints(c), f)
}

// WithInline runs f with the inline constraints replaced.
func WithInline[R any](c InlineConstraints, f func() R) R {
	return WithContext(Current().WithInline(c), f)
}

// WithZConstraints runs f with the depth constraints replaced.
func WithZConstraints[R any](c PxConstraints, f func() R) R {
	return WithContext(Current().WithZConstraints(c), f)
}

// WithFontSize runs f with the font size replaced.
func WithFontSize[R any](size Px, f func() R) R {
	return WithContext(Current().WithFontSize(size), f)
}

// WithScaleFactor runs f with the scale factor replaced.
func WithScaleFactor[R any](scale Factor, f func() R) R {
	return WithContext(Current().WithScaleFactor(scale), f)
}

// WithViewport runs f with the viewport replaced.
func WithViewport[R any](viewport PxSize, f func() R) R {
	return WithContext(Current().WithViewport(viewport), f)
}

// WithScreenPPI runs f with the screen density replaced.
func WithScreenPPI[R any](ppi PPI, f func() R) R {
	return WithContext(Current().WithScreenPPI(ppi), f)
}

// WithDirection runs f with the direction replaced.
func WithDirection[R any](d LayoutDirection, f func() R) R {
	return WithContext(Current().WithDirection(d), f)
}

// WithLeftover runs f with the leftover space replaced.
func WithLeftover[R any](l LeftoverSize, f func() R) R {
	return WithContext(Current().WithLeftover(l), f)
}

// WithSubSize runs f with removed taken out of the constraints and adds it
// back to the size f returns. Use it to reserve space around a child, a
// border for example.
func WithSubSize(removed PxSize, f func() PxSize) PxSize {
	return WithConstraints(Constraints().WithLess(removed), f).Add(removed)
}

// WithAddSize runs f with added put into the constraints and takes it out
// of the size f returns.
func WithAddSize(added PxSize, f func() PxSize) PxSize {
	return WithConstraints(Constraints().WithMore(added), f).Sub(added)
}

// CaptureMetricsUse runs f and returns the metrics it read together with its
// result. The mask is not registered with an enclosing capture; call
// RegisterMetricsUse with it to propagate.
func CaptureMetricsUse[R any](f func() R) (Mask, R) {
	acc := &useAccumulator{}
	var r R
	useStack.With(acc, func() { r = f() })
	return Mask(acc.mask.Load()), r
}

// RegisterMetricsUse adds mask to the innermost capture, if any.
func RegisterMetricsUse(mask Mask) {
	if acc, ok := useStack.Top(); ok && mask != 0 {
		acc.mask.Or(uint32(mask))
	}
}

// Bind returns a function that runs f with the layout context of the
// caller, so metrics can be read from another goroutine.
func Bind(f func()) func() {
	metrics := metricsStack.Snapshot()
	passes := passStack.Snapshot()
	uses := useStack.Snapshot()
	return func() {
		metricsStack.Run(metrics, func() {
			passStack.Run(passes, func() {
				useStack.Run(uses, f)
			})
		})
	}
}
