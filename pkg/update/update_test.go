package update

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/weave/pkg/timing"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestLoopTimerEarliestWins(t *testing.T) {
	lt := NewLoopTimer(t0)
	if _, ok := lt.Next(); ok {
		t.Fatal("new loop timer should have nothing registered")
	}

	lt.Register(timing.At(t0.Add(3 * time.Second)))
	lt.Register(timing.At(t0.Add(time.Second)))
	lt.Register(timing.At(t0.Add(2 * time.Second)))

	next, ok := lt.Next()
	if !ok || !next.Time().Equal(t0.Add(time.Second)) {
		t.Errorf("Next = %v, %v; want t0+1s", next.Time(), ok)
	}
	if d, ok := lt.Sleep(); !ok || d != time.Second {
		t.Errorf("Sleep = %v, %v; want 1s", d, ok)
	}
}

func TestLoopTimerElapsedRegistersPending(t *testing.T) {
	lt := NewLoopTimer(t0)
	if !lt.Elapsed(timing.At(t0)) {
		t.Error("deadline at now should be elapsed")
	}
	if _, ok := lt.Next(); ok {
		t.Error("elapsed deadlines must not be registered")
	}
	if lt.Elapsed(timing.At(t0.Add(time.Millisecond))) {
		t.Error("future deadline reported elapsed")
	}
	if _, ok := lt.Next(); !ok {
		t.Error("future deadline should be registered by Elapsed")
	}

	lt.Poll(t0.Add(time.Hour))
	if _, ok := lt.Next(); ok {
		t.Error("Poll should clear registrations")
	}
}

func TestLoopTimerMaxDeadlineSleepsForever(t *testing.T) {
	lt := NewLoopTimer(t0)
	lt.Register(timing.MaxDeadline)
	if _, ok := lt.Sleep(); ok {
		t.Error("MaxDeadline should not produce a timed sleep")
	}
}

func TestSignalCoalesces(t *testing.T) {
	s := NewSignal()
	s.Request(FlagLayout)
	s.Request(FlagRender)
	s.Wake()

	select {
	case <-s.Woken():
	default:
		t.Fatal("expected a wake")
	}
	select {
	case <-s.Woken():
		t.Fatal("wakes should coalesce")
	default:
	}

	if got := s.Take(); got != FlagLayout|FlagRender {
		t.Errorf("Take = %v, want layout|render", got)
	}
	if got := s.Pending(); got != 0 {
		t.Errorf("Pending after Take = %v", got)
	}
}

func TestFlagsString(t *testing.T) {
	tests := []struct {
		f    Flags
		want string
	}{
		{0, "none"},
		{FlagUpdate, "update"},
		{FlagLayout | FlagRenderUpdate, "layout|render_update"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("Flags(%d).String() = %q, want %q", tt.f, got, tt.want)
		}
	}
	if (FlagLayout).Has(FlagLayout | FlagRender) {
		t.Error("Has should require every bit")
	}
}

func TestDeliveryList(t *testing.T) {
	root, mid, leaf, other := NewWidgetID(), NewWidgetID(), NewWidgetID(), NewWidgetID()

	l := NewDeliveryList()
	l.InsertPath(WidgetPath{root, mid, leaf})

	if !l.EnterWidget(root) || !l.EnterWidget(mid) || !l.EnterWidget(leaf) {
		t.Error("every widget on the path should be entered")
	}
	if l.EnterWidget(other) {
		t.Error("unrelated widget entered")
	}
	if l.IsTarget(mid) || !l.IsTarget(leaf) {
		t.Error("only the leaf is a target")
	}
	if diff := cmp.Diff([]WidgetID{leaf}, l.Targets()); diff != "" {
		t.Errorf("Targets mismatch (-want +got):\n%s", diff)
	}
}

func TestSubscriberDeliveryList(t *testing.T) {
	root, a, b := NewWidgetID(), NewWidgetID(), NewWidgetID()
	subs := map[WidgetID]WidgetPath{a: {root, a}}

	l := NewSubscriberDeliveryList(subs)
	l.InsertPath(WidgetPath{root, b})
	if !l.IsEmpty() {
		t.Error("non-subscriber path should be filtered")
	}

	l.SearchAll()
	if l.Len() != 1 || !l.IsTarget(a) || !l.EnterWidget(root) {
		t.Errorf("SearchAll should insert subscriber paths, targets=%v", l.Targets())
	}
}

func TestSubscriberDeliveryListCutsAtInnermostSubscriber(t *testing.T) {
	root, mid, leaf := NewWidgetID(), NewWidgetID(), NewWidgetID()
	l := NewSubscriberDeliveryList(map[WidgetID]WidgetPath{mid: {root, mid}})

	l.InsertPath(WidgetPath{root, mid, leaf})
	if !l.IsTarget(mid) || l.IsTarget(leaf) {
		t.Errorf("targets = %v, want the subscribed ancestor", l.Targets())
	}
	if l.EnterWidget(leaf) {
		t.Error("widgets past the innermost subscriber should not be entered")
	}
}

func TestWidgetPath(t *testing.T) {
	a, b := NewWidgetID(), NewWidgetID()
	p := WidgetPath{a}.Child(b)
	if p.Leaf() != b || !p.Contains(a) {
		t.Errorf("unexpected path %v", p)
	}
	if (WidgetPath{}).Leaf() != 0 {
		t.Error("empty path leaf should be zero")
	}
	if a.IsZero() || a.String() == "" {
		t.Error("ids should be non-zero and printable")
	}
}
