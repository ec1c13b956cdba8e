// Package scope implements dynamically scoped values: a stack of values per
// goroutine where the last pushed value wins and every push is undone on the
// way out of the call that made it, including when that call panics.
//
// The layout and widget contexts are built on it. Values do not follow new
// goroutines; use [Stack.Snapshot] and [Stack.Run] to carry them across.
package scope

import (
	"sync"

	"github.com/petermattis/goid"
)

// Stack is a goroutine-scoped stack of T. The zero value is ready to use.
type Stack[T any] struct {
	stacks sync.Map // int64 -> *[]T
}

func (s *Stack[T]) local(create bool) *[]T {
	gid := goid.Get()
	if v, ok := s.stacks.Load(gid); ok {
		return v.(*[]T)
	}
	if !create {
		return nil
	}
	st := new([]T)
	s.stacks.Store(gid, st)
	return st
}

func (s *Stack[T]) push(v T) {
	st := s.local(true)
	*st = append(*st, v)
}

func (s *Stack[T]) pop() {
	st := s.local(false)
	if st == nil || len(*st) == 0 {
		return
	}
	var zero T
	(*st)[len(*st)-1] = zero
	*st = (*st)[:len(*st)-1]
	if len(*st) == 0 {
		s.stacks.Delete(goid.Get())
	}
}

// With pushes v, runs f and pops v.
func (s *Stack[T]) With(v T, f func()) {
	s.push(v)
	defer s.pop()
	f()
}

// Top returns the innermost value of the calling goroutine.
func (s *Stack[T]) Top() (T, bool) {
	st := s.local(false)
	if st == nil || len(*st) == 0 {
		var zero T
		return zero, false
	}
	return (*st)[len(*st)-1], true
}

// Depth returns how many values the calling goroutine has pushed.
func (s *Stack[T]) Depth() int {
	st := s.local(false)
	if st == nil {
		return 0
	}
	return len(*st)
}

// Snapshot copies the calling goroutine's stack.
func (s *Stack[T]) Snapshot() []T {
	st := s.local(false)
	if st == nil {
		return nil
	}
	return append([]T(nil), *st...)
}

// Run installs snapshot as the calling goroutine's stack for the duration of f,
// then restores whatever was there before.
func (s *Stack[T]) Run(snapshot []T, f func()) {
	gid := goid.Get()
	prev, hadPrev := s.stacks.Load(gid)
	st := append([]T(nil), snapshot...)
	s.stacks.Store(gid, &st)
	defer func() {
		if hadPrev {
			s.stacks.Store(gid, prev)
		} else {
			s.stacks.Delete(gid)
		}
	}()
	f()
}
