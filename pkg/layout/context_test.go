package layout

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"
)

func testMetrics() Metrics {
	return NewMetrics(1.5, Size(800, 600), 16)
}

func within(m Metrics, f func()) {
	WithContext(m, func() struct{} {
		f()
		return struct{}{}
	})
}

func capture(f func()) Mask {
	mask, _ := CaptureMetricsUse(func() struct{} {
		f()
		return struct{}{}
	})
	return mask
}

func TestGetterWithoutContextPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	FontSize()
}

func TestWithNoContext(t *testing.T) {
	WithContext(testMetrics(), func() struct{} {
		if !HasContext() {
			t.Fatal("HasContext() = false inside WithContext")
		}
		WithNoContext(func() struct{} {
			if HasContext() {
				t.Error("HasContext() = true inside WithNoContext")
			}
			return struct{}{}
		})
		if !HasContext() {
			t.Error("context not restored after WithNoContext")
		}
		return struct{}{}
	})
	if HasContext() {
		t.Error("context leaked after WithContext")
	}
}

func TestContextRestoredOnPanic(t *testing.T) {
	func() {
		defer func() { _ = recover() }()
		WithContext(testMetrics(), func() int {
			panic("layout failed")
		})
	}()
	if HasContext() {
		t.Error("context leaked after panic")
	}
}

func TestMaskRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		read func()
		want Mask
	}{
		{"font size and viewport", func() { _ = FontSize(); _ = Viewport() }, MaskFontSize | MaskViewport},
		{"repeated reads", func() { _ = FontSize(); _ = FontSize(); _ = Viewport() }, MaskFontSize | MaskViewport},
		{"nothing", func() {}, MaskNone},
		{"current does not register", func() { _ = Current() }, MaskNone},
		{"snapshot does not register", func() { _ = Current().Snapshot() }, MaskNone},
		{"constraints", func() { _ = Constraints(); _ = Inline() }, MaskConstraints},
		{"em length", func() { Em(2).Resolve(AxisX, 0) }, MaskFontSize},
		{"dip length", func() { LengthDip(10).Resolve(AxisX, 0) }, MaskScaleFactor},
		{"default length", func() { DefaultLength().Resolve(AxisX, 5) }, MaskDefaultValue},
		{"px length", func() { LengthPx(5).Resolve(AxisX, 0) }, MaskNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mask Mask
			within(testMetrics(), func() {
				mask = capture(tt.read)
			})
			if mask != tt.want {
				t.Errorf("mask = %v, want %v", mask, tt.want)
			}
		})
	}
}

func TestCaptureDoesNotPropagate(t *testing.T) {
	WithContext(testMetrics(), func() struct{} {
		outer, _ := CaptureMetricsUse(func() struct{} {
			inner, _ := CaptureMetricsUse(func() Px { return FontSize() })
			if inner != MaskFontSize {
				t.Errorf("inner = %v", inner)
			}
			_ = Viewport()
			return struct{}{}
		})
		if outer != MaskViewport {
			t.Errorf("outer = %v, want only viewport", outer)
		}

		outer, _ = CaptureMetricsUse(func() struct{} {
			inner, _ := CaptureMetricsUse(func() Px { return FontSize() })
			RegisterMetricsUse(inner)
			return struct{}{}
		})
		if outer != MaskFontSize {
			t.Errorf("outer = %v after explicit propagation", outer)
		}
		return struct{}{}
	})
}

func TestWithOverrides(t *testing.T) {
	WithRootContext(NewPassID(), testMetrics(), func() struct{} {
		if Pass() == 0 {
			t.Error("Pass() = 0 inside root context")
		}
		WithFontSize(20, func() struct{} {
			if got := FontSize(); got != 20 {
				t.Errorf("FontSize = %v", got)
			}
			if got := RootFontSize(); got != 16 {
				t.Errorf("RootFontSize = %v, override must not change it", got)
			}
			return struct{}{}
		})
		if got := FontSize(); got != 16 {
			t.Errorf("FontSize not restored: %v", got)
		}
		WithDirection(RTL, func() struct{} {
			if !Direction().IsRTL() {
				t.Error("Direction not RTL")
			}
			return struct{}{}
		})
		WithViewport(Size(10, 20), func() struct{} {
			if got := Vh(Factor(0.5)).Resolve(AxisY, 0); got != 10 {
				t.Errorf("0.5vh = %v", got)
			}
			return struct{}{}
		})
		WithFontFace(basicfont.Face7x13, func() struct{} {
			if got := FontSize(); got != 13 {
				t.Errorf("font face size = %v, want 13", got)
			}
			return struct{}{}
		})
		return struct{}{}
	})
}

func TestWithSubSize(t *testing.T) {
	root := NewMetrics(1, Size(100, 100), 16)
	got := WithContext(root, func() PxSize {
		return WithSubSize(Size(10, 20), func() PxSize {
			c := Constraints()
			if c.X.Max != 90 || c.Y.Max != 80 {
				t.Errorf("inner constraints = %v", c)
			}
			return c.FillSize()
		})
	})
	if got != Size(100, 100) {
		t.Errorf("WithSubSize = %v, want the removed size added back", got)
	}

	got = WithContext(root, func() PxSize {
		return WithAddSize(Size(10, 10), func() PxSize {
			return Constraints().FillSize()
		})
	})
	if got != Size(100, 100) {
		t.Errorf("WithAddSize = %v", got)
	}
}

func TestBindAcrossGoroutines(t *testing.T) {
	var got Px
	var mask Mask
	WithContext(testMetrics(), func() struct{} {
		mask, _ = CaptureMetricsUse(func() struct{} {
			run := Bind(func() { got = FontSize() })
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				run()
			}()
			wg.Wait()
			return struct{}{}
		})
		return struct{}{}
	})
	if got != 16 {
		t.Errorf("bound FontSize = %v", got)
	}
	if mask != MaskFontSize {
		t.Errorf("bound read not captured: %v", mask)
	}
}

func TestSnapshotMaskedEqual(t *testing.T) {
	a := testMetrics().Snapshot()
	b := testMetrics().WithDirection(RTL).WithFontSize(20).Snapshot()

	if a == b {
		t.Error("snapshots with different direction should not be ==")
	}
	if !a.MaskedEqual(b, MaskViewport|MaskConstraints|MaskScaleFactor) {
		t.Error("unmasked fields should be ignored")
	}
	if a.MaskedEqual(b, MaskFontSize) {
		t.Error("font size differs")
	}
	if a.MaskedEqual(b, MaskDirection) {
		t.Error("direction differs")
	}
	want := Snapshot{
		Constraints:  Fill2D(Size(800, 600)),
		Z:            Unbounded(),
		FontSize:     16,
		RootFontSize: 16,
		ScaleFactor:  1.5,
		Viewport:     Size(800, 600),
		ScreenPPI:    DefaultPPI,
		Direction:    LTR,
	}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("NewMetrics snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestMaskString(t *testing.T) {
	tests := []struct {
		m    Mask
		want string
	}{
		{MaskNone, "none"},
		{MaskFontSize | MaskViewport, "font_size|viewport"},
		{MaskConstraints, "constraints"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}
