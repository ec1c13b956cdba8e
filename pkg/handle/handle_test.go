package handle

import (
	"sync"
	"testing"
)

func TestHandleLifetime(t *testing.T) {
	owner, h := New(42)
	if owner.IsDropped() {
		t.Fatal("owner dropped while a handle is alive")
	}

	clone := h.Clone()
	h.Release()
	if owner.IsDropped() {
		t.Error("owner dropped while a clone is alive")
	}

	clone.Release()
	if !owner.IsDropped() {
		t.Error("owner should be dropped after the last handle is released")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	owner, h := New(struct{}{})
	clone := h.Clone()
	h.Release()
	h.Release()
	if owner.IsDropped() {
		t.Error("double release of one clone must not drop the other clone's count")
	}
	clone.Release()
	if !owner.IsDropped() {
		t.Error("owner should be dropped")
	}
}

func TestPermKeepsAlive(t *testing.T) {
	owner, h := New("timer")
	h.Perm()
	if owner.IsDropped() {
		t.Error("permanent handle should not be dropped")
	}
	if !h.IsPermanent() {
		t.Error("IsPermanent() = false after Perm")
	}
	if _, ok := owner.Downgrade().Upgrade(); !ok {
		t.Error("Upgrade should succeed for a permanent registration")
	}
}

func TestForceDropAffectsAllClones(t *testing.T) {
	owner, h := New(1)
	clone := h.Clone()
	h.ForceDrop()

	if !owner.IsDropped() {
		t.Error("owner should be dropped after ForceDrop")
	}
	if !clone.IsDropped() {
		t.Error("every clone should observe ForceDrop")
	}

	perm := owner.Reanimate()
	perm.Perm()
	if !owner.IsDropped() {
		t.Error("ForceDrop must win over Perm")
	}
}

func TestWeakUpgrade(t *testing.T) {
	owner, h := New(7)
	weak := h.Downgrade()

	strong, ok := weak.Upgrade()
	if !ok {
		t.Fatal("Upgrade failed while handle alive")
	}
	if !strong.Same(h) {
		t.Error("upgraded handle should refer to the same registration")
	}
	if strong.Data() != 7 {
		t.Errorf("Data = %d, want 7", strong.Data())
	}

	h.Release()
	strong.Release()
	if _, ok := weak.Upgrade(); ok {
		t.Error("Upgrade should fail after the last handle is released")
	}
	if !weak.IsDead() {
		t.Error("IsDead() = false after release")
	}
	if !owner.IsDropped() {
		t.Error("weak handles must not keep the owner alive")
	}
	if weak.Data() != 7 {
		t.Error("data should stay readable after drop")
	}
}

func TestReanimate(t *testing.T) {
	owner, h := New(0)
	h.Release()
	if !owner.IsDropped() {
		t.Fatal("expected dropped")
	}
	again := owner.Reanimate()
	if owner.IsDropped() {
		t.Error("Reanimate should revive a released registration")
	}
	again.Release()
}

func TestDummy(t *testing.T) {
	d := Dummy("x")
	if !d.IsDummy() {
		t.Error("IsDummy() = false")
	}
	if !d.IsDropped() {
		t.Error("dummy handles report dropped")
	}
	d.Perm()
	if d.IsPermanent() {
		t.Error("Perm on a dummy should do nothing")
	}
	if _, ok := d.Downgrade().Upgrade(); ok {
		t.Error("dummy should not upgrade")
	}
	if c := d.Clone(); !c.IsDummy() {
		t.Error("clone of dummy should be a dummy")
	}
}

func TestConcurrentClones(t *testing.T) {
	owner, h := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		c := h.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Release()
		}()
	}
	wg.Wait()
	if owner.IsDropped() {
		t.Fatal("original handle still alive")
	}
	h.Release()
	if !owner.IsDropped() {
		t.Error("owner should be dropped")
	}
}
