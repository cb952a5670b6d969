// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package reactive

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Bridge caches the last pulled value of one Source and tracks whether
// the source changed since that pull.
//
// The change flag is set from whatever goroutine the source notifies on
// and is cleared by Refresh on the render goroutine. Current and Refresh
// themselves must only be called from the render goroutine.
type Bridge[T any] struct {
	src   Source[T]
	value T
	state *bridgeState
}

// bridgeState is kept separate from Bridge so the subscription callback
// does not keep the Bridge reachable.
type bridgeState struct {
	dirty  atomic.Bool
	once   sync.Once
	cancel func()
}

func (s *bridgeState) close() {
	s.once.Do(func() {
		// sources with nothing to release may return a nil cancel
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// NewBridge pulls src's current value and subscribes to its changes.
// The subscription lives until Close, or until the Bridge is garbage
// collected.
func NewBridge[T any](src Source[T]) *Bridge[T] {
	st := &bridgeState{}
	st.cancel = src.Subscribe(func() { st.dirty.Store(true) })
	b := &Bridge[T]{
		src:   src,
		value: src.Get(),
		state: st,
	}
	runtime.AddCleanup(b, func(s *bridgeState) { s.close() }, st)
	return b
}

// Current returns the cached value without pulling.
func (b *Bridge[T]) Current() T {
	return b.value
}

// Refresh re-pulls the source if it changed since the last pull.
// It reports whether the cached value was replaced.
func (b *Bridge[T]) Refresh() (T, bool) {
	if !b.state.dirty.Swap(false) {
		return b.value, false
	}
	b.value = b.src.Get()
	return b.value, true
}

// Pending reports whether a change notification arrived since the last
// Refresh, without clearing it.
func (b *Bridge[T]) Pending() bool {
	return b.state.dirty.Load()
}

// Close cancels the subscription. It is safe to call more than once.
func (b *Bridge[T]) Close() error {
	b.state.close()
	return nil
}
