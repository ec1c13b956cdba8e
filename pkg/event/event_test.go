package event_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/weave/pkg/event"
	weavetest "github.com/go-drift/weave/pkg/testing"
	"github.com/go-drift/weave/pkg/update"
)

type clickArgs struct {
	event.ArgsBase
	button int
}

var (
	root  = update.NewWidgetID()
	left  = update.NewWidgetID()
	right = update.NewWidgetID()

	leftPath  = update.WidgetPath{root, left}
	rightPath = update.WidgetPath{root, right}
)

var (
	duplicateEvent = event.New[clickArgs]("test.duplicate")
	lookupEvent    = event.New[clickArgs]("test.lookup")
	deliveryEvent  = event.New[clickArgs]("test.delivery")
	broadcastEvent = event.New[clickArgs]("test.broadcast")
	releaseEvent   = event.New[clickArgs]("test.release")
	orderEvent     = event.New[clickArgs]("test.order")
	stopEvent      = event.New[clickArgs]("test.stop")
	hookEvent      = event.New[clickArgs]("test.hook")
	releasedEvent  = event.New[clickArgs]("test.released")
	panicEvent     = event.New[clickArgs]("test.panic")
	wakeEvent      = event.New[clickArgs]("test.wake")
)

func newClick(button int, targets ...update.WidgetPath) clickArgs {
	return clickArgs{ArgsBase: event.NewArgs(time.Now(), targets...), button: button}
}

// deliver runs one update the way the app does, calling node in between the
// preview and main actions.
func deliver(svc *event.Service, node func(*event.Update)) []*event.Update {
	updates := svc.ApplyUpdates()
	for _, u := range updates {
		u.CallPreActions()
		if node != nil {
			node(u)
		}
		u.CallPosActions()
	}
	return updates
}

func installService(t *testing.T) *event.Service {
	t.Helper()
	svc := event.NewService(update.NewSignal())
	prev := event.Install(svc)
	t.Cleanup(func() { event.Install(prev) })
	return svc
}

func TestDuplicateNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate event name")
		}
	}()
	event.New[clickArgs](duplicateEvent.Name())
}

func TestLookup(t *testing.T) {
	ev := lookupEvent
	got, ok := event.Lookup("test.lookup")
	if !ok || got.Name() != ev.Name() {
		t.Errorf("Lookup = %v, %v", got, ok)
	}
	if _, ok := event.Lookup("test.missing"); ok {
		t.Error("Lookup found an unregistered name")
	}
}

func TestDeliveryFiltersSubscribers(t *testing.T) {
	ev := deliveryEvent
	h := ev.Subscribe(left, leftPath)
	defer h.Release()

	u := ev.NewUpdate(newClick(1, leftPath, rightPath))
	if diff := cmp.Diff([]update.WidgetID{left}, u.Delivery().Targets()); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
	if !u.Delivery().EnterWidget(root) {
		t.Error("ancestor of a target should be entered")
	}
	if u.Delivery().EnterWidget(right) {
		t.Error("non-subscriber should not be entered")
	}
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	ev := broadcastEvent
	a := ev.Subscribe(left, leftPath)
	b := ev.Subscribe(right, rightPath)
	defer a.Release()
	defer b.Release()

	u := ev.NewUpdate(clickArgs{ArgsBase: event.Broadcast(time.Now())})
	if u.Delivery().Len() != 2 {
		t.Errorf("Len = %d, want 2", u.Delivery().Len())
	}
}

func TestSubscriptionReleased(t *testing.T) {
	ev := releaseEvent
	h := ev.Subscribe(left, leftPath)
	clone := ev.Subscribe(left, leftPath)
	h.Release()
	if !ev.HasSubscribers() {
		t.Fatal("subscription dropped while a second handle is alive")
	}
	clone.Release()
	if ev.HasSubscribers() {
		t.Error("subscription alive after releasing every handle")
	}
}

func TestPreviewAndMainOrder(t *testing.T) {
	ev := orderEvent
	svc := installService(t)

	var order []string
	pre := ev.OnPreEvent(func(clickArgs) { order = append(order, "pre") })
	main := ev.OnEvent(func(clickArgs) { order = append(order, "main") })
	defer pre.Release()
	defer main.Release()

	ev.Notify(newClick(1))
	deliver(svc, func(u *event.Update) {
		if _, ok := ev.On(u); ok {
			order = append(order, "node")
		}
	})

	if diff := cmp.Diff([]string{"pre", "node", "main"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestStopPropagation(t *testing.T) {
	ev := stopEvent
	svc := installService(t)

	var calls []string
	h1 := ev.OnPreEvent(func(a clickArgs) {
		calls = append(calls, "pre1")
		a.Propagation().Stop()
	})
	h2 := ev.OnPreEvent(func(clickArgs) { calls = append(calls, "pre2") })
	h3 := ev.OnEvent(func(clickArgs) { calls = append(calls, "main") })
	defer h1.Release()
	defer h2.Release()
	defer h3.Release()

	ev.Notify(newClick(1))
	deliver(svc, func(u *event.Update) {
		if _, ok := ev.OnUnhandled(u); ok {
			calls = append(calls, "node")
		}
	})

	if diff := cmp.Diff([]string{"pre1"}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestHookSelfRemoval(t *testing.T) {
	ev := hookEvent
	svc := installService(t)

	calls := 0
	h := ev.Hook(func(*event.Update) bool {
		calls++
		return false
	})
	defer h.Release()

	ev.Notify(newClick(1))
	ev.Notify(newClick(2))
	deliver(svc, nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if ev.HasSubscribers() {
		t.Error("removed hook still counted")
	}
}

func TestReleasedHandlerSkipped(t *testing.T) {
	ev := releasedEvent
	svc := installService(t)

	calls := 0
	h := ev.OnEvent(func(clickArgs) { calls++ })
	ev.Notify(newClick(1))
	svc.ApplyUpdates()[0].CallPreActions()
	h.Release()

	ev.Notify(newClick(2))
	deliver(svc, nil)
	if calls != 0 {
		t.Errorf("calls = %d, want 0 after release", calls)
	}
}

func TestHookPanicIsRecovered(t *testing.T) {
	ev := panicEvent
	svc := installService(t)
	rec := weavetest.RecordErrors(t)

	got := 0
	bad := ev.Hook(func(*event.Update) bool { panic("broken hook") })
	good := ev.OnEvent(func(a clickArgs) { got = a.button })
	defer bad.Release()
	defer good.Release()

	ev.Notify(newClick(3))
	deliver(svc, nil)

	if got != 3 {
		t.Errorf("handler after a panicking hook got %d, want 3", got)
	}
	if len(rec.Panics()) != 1 {
		t.Errorf("panics = %d, want 1", len(rec.Panics()))
	}
}

func TestNotifyWakesApp(t *testing.T) {
	ev := wakeEvent
	sig := update.NewSignal()
	svc := event.NewService(sig)
	svc.Notify(ev.NewUpdate(newClick(1)))

	if !sig.Pending().Has(update.FlagUpdate) {
		t.Error("Notify should request an update")
	}
	if !svc.HasPending() || svc.Notified() != 1 {
		t.Error("notification not queued")
	}
}
