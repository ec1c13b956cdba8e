package timing

import (
	"testing"
	"time"
)

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

func withStubClock(t *testing.T) *stubClock {
	t.Helper()
	c := &stubClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := SetClock(c)
	t.Cleanup(func() { SetClock(prev) })
	return c
}

func TestEpochHasElapsed(t *testing.T) {
	withStubClock(t)
	if !Epoch.HasElapsed() {
		t.Error("Epoch should always be elapsed")
	}
	if MaxDeadline.HasElapsed() {
		t.Error("MaxDeadline should never elapse")
	}
	if !MaxDeadline.IsMax() {
		t.Error("MaxDeadline.IsMax() = false")
	}
}

func TestTimeoutElapses(t *testing.T) {
	c := withStubClock(t)
	d := Timeout(time.Second)

	if d.HasElapsed() {
		t.Fatal("deadline elapsed before clock advanced")
	}
	if left, ok := d.TimeLeft(); !ok || left != time.Second {
		t.Errorf("TimeLeft = %v, %v; want 1s, true", left, ok)
	}

	c.now = c.now.Add(time.Second)
	if !d.HasElapsed() {
		t.Error("deadline should elapse exactly at its instant")
	}
	if _, ok := d.TimeLeft(); ok {
		t.Error("TimeLeft should report false once elapsed")
	}
}

func TestDeadlineOrdering(t *testing.T) {
	withStubClock(t)
	a := Timeout(time.Millisecond)
	b := Timeout(time.Second)

	tests := []struct {
		name string
		got  bool
	}{
		{"a before b", a.Before(b)},
		{"b after a", b.After(a)},
		{"compare", a.Compare(b) == -1 && b.Compare(a) == 1 && a.Compare(a) == 0},
		{"min", a.Min(b) == a && b.Min(a) == a},
		{"max", a.Max(b) == b},
		{"epoch first", Epoch.Before(a)},
		{"max last", b.Before(MaxDeadline)},
		{"add max", MaxDeadline.Add(time.Hour) == MaxDeadline},
	}
	for _, tt := range tests {
		if !tt.got {
			t.Errorf("%s: ordering check failed", tt.name)
		}
	}
}

func TestSetClockNilRestoresSystem(t *testing.T) {
	prev := SetClock(nil)
	defer SetClock(prev)
	if _, ok := SetClock(nil).(realClock); !ok {
		t.Error("SetClock(nil) should install the system clock")
	}
}
