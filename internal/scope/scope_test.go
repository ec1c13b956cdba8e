package scope

import (
	"sync"
	"testing"
)

func TestStackNesting(t *testing.T) {
	var s Stack[int]
	if _, ok := s.Top(); ok {
		t.Fatal("empty stack should have no top")
	}

	s.With(1, func() {
		s.With(2, func() {
			if v, _ := s.Top(); v != 2 {
				t.Errorf("Top = %d, want 2", v)
			}
			if d := s.Depth(); d != 2 {
				t.Errorf("Depth = %d, want 2", d)
			}
		})
		if v, _ := s.Top(); v != 1 {
			t.Errorf("Top = %d, want 1 after inner scope", v)
		}
	})

	if d := s.Depth(); d != 0 {
		t.Errorf("Depth = %d, want 0 after all scopes", d)
	}
}

func TestStackRestoresOnPanic(t *testing.T) {
	var s Stack[string]
	s.With("outer", func() {
		func() {
			defer func() { _ = recover() }()
			s.With("inner", func() { panic("boom") })
		}()
		if v, _ := s.Top(); v != "outer" {
			t.Errorf("Top = %q, want outer after panic", v)
		}
	})
}

func TestStackIsGoroutineLocal(t *testing.T) {
	var s Stack[int]
	s.With(7, func() {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.Top(); ok {
				t.Error("new goroutine should not see the parent's scope")
			}
		}()
		wg.Wait()
	})
}

func TestStackSnapshotRun(t *testing.T) {
	var s Stack[int]
	var snap []int
	s.With(1, func() {
		s.With(2, func() { snap = s.Snapshot() })
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Run(snap, func() {
			if v, _ := s.Top(); v != 2 {
				t.Errorf("Top = %d, want 2 inside Run", v)
			}
			if d := s.Depth(); d != 2 {
				t.Errorf("Depth = %d, want 2 inside Run", d)
			}
		})
		if d := s.Depth(); d != 0 {
			t.Errorf("Depth = %d, want 0 after Run", d)
		}
	}()
	wg.Wait()
}
