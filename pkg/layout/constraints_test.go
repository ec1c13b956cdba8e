package layout

import (
	"math"
	"testing"
)

func TestPxConstraints(t *testing.T) {
	tests := []struct {
		name      string
		c         PxConstraints
		clamp     Px
		wantClamp Px
		wantFill  Px
	}{
		{"unbounded", Unbounded(), 500, 500, 0},
		{"bounded", Bounded(100), 500, 100, 0},
		{"fill", FillTo(100), 20, 20, 100},
		{"exact", Exact(50), 10, 50, 50},
		{"fill unbounded", Unbounded().WithFill(true), 20, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Clamp(tt.clamp); got != tt.wantClamp {
				t.Errorf("Clamp(%v) = %v, want %v", tt.clamp, got, tt.wantClamp)
			}
			if got := tt.c.FillLength(); got != tt.wantFill {
				t.Errorf("FillLength() = %v, want %v", got, tt.wantFill)
			}
		})
	}
}

func TestPxConstraintsLessMore(t *testing.T) {
	c := PxConstraints{Min: 5, Max: 100}
	if got := c.WithLess(10); got.Min != 0 || got.Max != 90 {
		t.Errorf("WithLess = %v", got)
	}
	if got := c.WithMore(10); got.Min != 15 || got.Max != 110 {
		t.Errorf("WithMore = %v", got)
	}
	if got := Unbounded().WithMore(10); got.IsBounded() {
		t.Errorf("unbounded WithMore became bounded: %v", got)
	}
	if got := c.WithMax(3); got.Max != 3 || got.Min != 3 {
		t.Errorf("WithMax = %v, min must follow", got)
	}
	if got := c.WithMin(200); got.Min != 200 || got.Max != 200 {
		t.Errorf("WithMin = %v, max must follow", got)
	}
}

func TestPxSaturating(t *testing.T) {
	if got := MaxPx.SaturatingAdd(1); got != MaxPx {
		t.Errorf("MaxPx+1 = %v", got)
	}
	if got := Px(10).Mul(1.5); got != 15 {
		t.Errorf("10*1.5 = %v", got)
	}
	if got := Dip(10).ToPx(2); got != 20 {
		t.Errorf("10dip@2 = %v", got)
	}
}

func TestPxRect(t *testing.T) {
	r := RectFromXYWH(10, 10, 20, 20)
	if !r.Contains(PxPoint{X: 10, Y: 29}) || r.Contains(PxPoint{X: 30, Y: 10}) {
		t.Error("Contains edges wrong")
	}
	u := r.Union(RectFromXYWH(0, 0, 5, 5))
	if u != RectFromXYWH(0, 0, 30, 30) {
		t.Errorf("Union = %v", u)
	}
	if got := r.Union(PxRect{}); got != r {
		t.Errorf("union with empty = %v", got)
	}
}

func TestLengthString(t *testing.T) {
	tests := []struct {
		l    Length
		want string
	}{
		{DefaultLength(), "default"},
		{LengthPx(12), "12px"},
		{Em(1.5), "1.5em"},
		{Vw(0.25), "0.25vw"},
	}
	for _, tt := range tests {
		if got := tt.l.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRelativeLength(t *testing.T) {
	var x, y Px
	within(NewMetrics(1, Size(200, 100), 16), func() {
		x = Relative(0.5).Resolve(AxisX, 0)
		y = Relative(0.5).Resolve(AxisY, 0)
	})
	if x != 100 || y != 50 {
		t.Errorf("50%% = (%v, %v), want (100, 50)", x, y)
	}
}

func TestPxLengthSaturates(t *testing.T) {
	tests := []struct {
		name  string
		value float32
		want  Px
	}{
		{"rounds", 2.6, 3},
		{"rounds negative", -2.6, -3},
		{"above range", 1e12, MaxPx},
		{"below range", -1e12, math.MinInt32},
		{"huge", 1e30, MaxPx},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Length{Unit: UnitPx, Value: tt.value}
			if got := l.Resolve(AxisX, 0); got != tt.want {
				t.Errorf("Resolve(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
	if got := Px(10).Mul(1e30); got != MaxPx {
		t.Errorf("Mul(1e30) = %v, want %v", got, MaxPx)
	}
}
