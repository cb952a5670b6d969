// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package reactive

import (
	"sync"
	"testing"
)

func TestBridgeEagerPull(t *testing.T) {
	s := NewSignal("a")
	b := NewBridge[string](s)
	defer b.Close()

	if got := b.Current(); got != "a" {
		t.Errorf("Current() = %q, want a", got)
	}
	if _, changed := b.Refresh(); changed {
		t.Error("Refresh() changed = true before any notification")
	}
}

func TestBridgeRefreshNoSpuriousChange(t *testing.T) {
	s := NewSignal(1)
	b := NewBridge[int](s)
	defer b.Close()

	s.Set(2)
	v, changed := b.Refresh()
	if v != 2 || !changed {
		t.Fatalf("Refresh() = (%d, %v), want (2, true)", v, changed)
	}
	v, changed = b.Refresh()
	if v != 2 || changed {
		t.Errorf("second Refresh() = (%d, %v), want (2, false)", v, changed)
	}
}

func TestBridgeCurrentDoesNotPull(t *testing.T) {
	s := NewSignal(1)
	b := NewBridge[int](s)
	defer b.Close()

	s.Set(5)
	if got := b.Current(); got != 1 {
		t.Errorf("Current() = %d, want cached 1", got)
	}
	if !b.Pending() {
		t.Error("Pending() = false after Set")
	}
}

func TestBridgeClose(t *testing.T) {
	s := NewSignal(0)
	b := NewBridge[int](s)
	if n := s.Subscribers(); n != 1 {
		t.Fatalf("Subscribers() = %d, want 1", n)
	}
	_ = b.Close()
	_ = b.Close()
	if n := s.Subscribers(); n != 0 {
		t.Errorf("Subscribers() after Close = %d, want 0", n)
	}
	s.Set(3)
	if _, changed := b.Refresh(); changed {
		t.Error("closed bridge observed a change")
	}
}

// fixed never changes and returns no cancel function.
type fixed string

func (f fixed) Get() string { return string(f) }
func (fixed) Subscribe(func()) func() { return nil }

func TestBridgeCloseNilCancel(t *testing.T) {
	b := NewBridge[string](fixed("x"))
	if got := b.Current(); got != "x" {
		t.Errorf("Current() = %q, want x", got)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestBridgeConcurrentNotify(t *testing.T) {
	s := NewSignal(0)
	b := NewBridge[int](s)
	defer b.Close()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.Set(v)
		}(i)
	}
	wg.Wait()

	v, changed := b.Refresh()
	if !changed {
		t.Fatal("Refresh() changed = false after concurrent sets")
	}
	if v != s.Get() {
		t.Errorf("Refresh() = %d, want latest %d", v, s.Get())
	}
}

func TestMapAndConst(t *testing.T) {
	s := NewSignal(2)
	sq := Map[int, int](s, func(v int) int { return v * v })
	b := NewBridge(sq)
	defer b.Close()

	s.Set(3)
	if v, changed := b.Refresh(); v != 9 || !changed {
		t.Errorf("Refresh() = (%d, %v), want (9, true)", v, changed)
	}

	c := NewBridge(Const("x"))
	defer c.Close()
	if v, changed := c.Refresh(); v != "x" || changed {
		t.Errorf("Const Refresh() = (%q, %v), want (x, false)", v, changed)
	}
}

func TestSignalUpdate(t *testing.T) {
	s := NewSignal(10)
	calls := 0
	cancel := s.Subscribe(func() { calls++ })
	s.Update(func(v int) int { return v + 1 })
	cancel()
	s.Update(func(v int) int { return v + 1 })

	if got := s.Get(); got != 12 {
		t.Errorf("Get() = %d, want 12", got)
	}
	if calls != 1 {
		t.Errorf("subscriber calls = %d, want 1", calls)
	}
}
