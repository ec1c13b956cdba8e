package vars

import (
	"testing"

	"github.com/go-drift/weave/pkg/update"
)

func TestModificationIsDeferred(t *testing.T) {
	svc := NewService(nil)
	v := NewIn(svc, 1)

	v.Set(2)
	if got := v.Get(); got != 1 {
		t.Fatalf("Get before ApplyUpdates = %d, want 1", got)
	}
	if !svc.HasPending() {
		t.Fatal("expected a pending modification")
	}

	svc.ApplyUpdates()
	if got := v.Get(); got != 2 {
		t.Errorf("Get after ApplyUpdates = %d, want 2", got)
	}
	if !v.IsNew() {
		t.Error("var should be new in the cycle it was updated")
	}
	if v.Version() != 1 {
		t.Errorf("Version = %d, want 1", v.Version())
	}

	svc.ApplyUpdates()
	if v.IsNew() {
		t.Error("var should not be new in the following cycle")
	}
}

func TestModifyWithoutChangeDoesNotNotify(t *testing.T) {
	svc := NewService(nil)
	v := NewIn(svc, "a")
	calls := 0
	v.Hook(func(string) bool { calls++; return true })

	v.Modify(func(*string) bool { return false })
	svc.ApplyUpdates()
	if calls != 0 || v.Version() != 0 {
		t.Errorf("calls=%d version=%d, want no notification", calls, v.Version())
	}

	v.Update()
	svc.ApplyUpdates()
	if calls != 1 {
		t.Errorf("calls = %d, want 1 after Update", calls)
	}
}

func TestHookSelfRemoval(t *testing.T) {
	svc := NewService(nil)
	v := NewIn(svc, 0)
	var seen []int
	v.Hook(func(n int) bool {
		seen = append(seen, n)
		return n < 2
	})

	for i := 1; i <= 3; i++ {
		v.Set(i)
		svc.ApplyUpdates()
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("seen = %v, want [1 2]", seen)
	}
	if v.HookCount() != 0 {
		t.Errorf("HookCount = %d, want 0", v.HookCount())
	}
}

func TestUnhook(t *testing.T) {
	svc := NewService(nil)
	v := NewIn(svc, 0)
	calls := 0
	unhook := v.Hook(func(int) bool { calls++; return true })
	unhook()

	v.Set(1)
	svc.ApplyUpdates()
	if calls != 0 {
		t.Errorf("calls = %d after unhook", calls)
	}
}

func TestHookModificationsApplySamePass(t *testing.T) {
	svc := NewService(nil)
	src := NewIn(svc, 0)
	dst := NewIn(svc, 0)
	src.Hook(func(n int) bool {
		dst.Set(n * 10)
		return true
	})

	src.Set(4)
	svc.ApplyUpdates()
	if got := dst.Get(); got != 40 {
		t.Errorf("dst = %d, want 40", got)
	}
	if !dst.IsNew() {
		t.Error("dst should be new in the same cycle")
	}
}

func TestScheduleRequestsUpdate(t *testing.T) {
	sig := update.NewSignal()
	svc := NewService(sig)
	NewIn(svc, 0).Set(1)
	if !sig.Pending().Has(update.FlagUpdate) {
		t.Error("scheduling a modification should request an update")
	}
}

func TestReadOnlyAndWeak(t *testing.T) {
	svc := NewService(nil)
	v := NewIn(svc, 5)
	ro := v.ReadOnly()
	if ro.Get() != 5 {
		t.Errorf("ReadOnly.Get = %d", ro.Get())
	}
	w := ro.Downgrade()
	if got, ok := w.Upgrade(); !ok || got != v {
		t.Error("weak var should upgrade while reachable")
	}
}
