// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package reactive connects reactive values to render nodes.
//
// A Source is anything that can report its current value and notify
// subscribers of changes. Signal is the in-tree Source; Bridge is the
// per-node cache that render nodes poll between frames.
package reactive

import (
	"sync"
)

// Source is a reactive value.
//
// Subscribe registers fn to be called after the value changes and returns
// a function that cancels the subscription, or nil when there is nothing
// to cancel. fn may be called from any goroutine.
type Source[T any] interface {
	Get() T
	Subscribe(fn func()) (cancel func())
}

// Signal is a mutable reactive value. It is safe for concurrent use.
type Signal[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID uint64
	subs   map[uint64]func()
}

// NewSignal creates a Signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, subs: make(map[uint64]func())}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v and notifies every subscriber outside the lock.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Update applies fn to the current value and stores the result.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// Subscribe implements Source.
func (s *Signal[T]) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[uint64]func())
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Signal[T]) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// mapped derives a Source by applying a pure function to another one.
type mapped[S, T any] struct {
	src Source[S]
	fn  func(S) T
}

// Map returns a Source whose value is fn(src.Get()).
// Subscriptions are forwarded to src.
func Map[S, T any](src Source[S], fn func(S) T) Source[T] {
	return mapped[S, T]{src: src, fn: fn}
}

func (m mapped[S, T]) Get() T { return m.fn(m.src.Get()) }

func (m mapped[S, T]) Subscribe(fn func()) func() { return m.src.Subscribe(fn) }

// constant is a Source that never changes.
type constant[T any] struct{ v T }

// Const returns a Source that always reports v.
func Const[T any](v T) Source[T] { return constant[T]{v: v} }

func (c constant[T]) Get() T { return c.v }

func (constant[T]) Subscribe(func()) func() { return func() {} }
