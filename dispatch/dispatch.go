// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dispatch resolves opaque views to handlers by runtime type.
//
// The set of view types is open: a Dispatcher knows only the native
// shapes registered with it, and every other view is decomposed through
// its Body until a registered shape appears.
//
//	d := dispatch.New[state, parent, handle](state{})
//	dispatch.Register(d, func(s *state, p parent, v Text, e *env.Environment) handle {
//	    ...
//	})
//	h := d.DispatchAny(root, e, parent{})
package dispatch

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/view"
)

// DefaultMaxDepth bounds Body decomposition chains.
const DefaultMaxDepth = 256

// handler is a type-erased registration. It receives the concrete view
// boxed as view.View and performs the downcast itself.
type handler[S, C, R any] func(state *S, ctx C, v view.View, e *env.Environment) R

// Dispatcher maps view types to builder handlers and owns the state
// those handlers mutate.
//
// A Dispatcher is not safe for concurrent use.
type Dispatcher[S, C, R any] struct {
	state    S
	handlers map[reflect.Type]handler[S, C, R]
	sealed   bool
	maxDepth int
	logger   func() *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*options)

type options struct {
	maxDepth int
	logger   func() *slog.Logger
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = func() *slog.Logger { return l }
		}
	}
}

// WithLoggerFunc sets a function consulted for the logger on every
// diagnostic, so a logger swapped after New still takes effect.
func WithLoggerFunc(f func() *slog.Logger) Option {
	return func(o *options) {
		o.logger = f
	}
}

// New creates a Dispatcher owning state.
func New[S, C, R any](state S, opts ...Option) *Dispatcher[S, C, R] {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		discard := slog.New(slog.DiscardHandler)
		o.logger = func() *slog.Logger { return discard }
	}
	return &Dispatcher[S, C, R]{
		state:    state,
		handlers: make(map[reflect.Type]handler[S, C, R]),
		maxDepth: o.maxDepth,
		logger:   o.logger,
	}
}

// Register associates the runtime type V with fn.
//
// Registrations are fixed once the dispatcher has dispatched its first
// view; Register panics after that, and when V is already registered.
func Register[V view.View, S, C, R any](d *Dispatcher[S, C, R], fn func(state *S, ctx C, v V, e *env.Environment) R) {
	if fn == nil {
		panic("dispatch: Register handler is nil")
	}
	t := reflect.TypeFor[V]()
	if t.Kind() == reflect.Interface {
		panic(fmt.Sprintf("dispatch: Register needs a concrete type, got interface %v", t))
	}
	if d.sealed {
		panic(fmt.Sprintf("dispatch: Register(%v) after first dispatch", t))
	}
	if _, dup := d.handlers[t]; dup {
		panic(fmt.Sprintf("dispatch: Register called twice for %v", t))
	}
	d.handlers[t] = func(state *S, ctx C, v view.View, e *env.Environment) R {
		concrete, ok := v.(V)
		if !ok {
			panic(&InvariantError{Err: ErrTypeMismatch, Type: reflect.TypeOf(v), Want: t})
		}
		return fn(state, ctx, concrete, e)
	}
}

// DispatchAny resolves v and invokes the matching handler exactly once.
//
// Any wrappers are unwrapped, registered types go straight to their
// handler, and everything else is decomposed through Body. A view that
// never reaches a registered shape panics with an *InvariantError.
func (d *Dispatcher[S, C, R]) DispatchAny(v view.View, e *env.Environment, ctx C) R {
	d.sealed = true
	cur := v
	for depth := 0; ; depth++ {
		if depth > d.maxDepth {
			panic(&InvariantError{Err: ErrTooDeep, Type: reflect.TypeOf(v), Depth: depth})
		}
		switch w := cur.(type) {
		case view.Any:
			cur = w.View
			continue
		case *view.Any:
			if w == nil {
				panic(&InvariantError{Err: ErrUnresolvable, Type: reflect.TypeOf(v), Depth: depth})
			}
			cur = w.View
			continue
		case nil:
			panic(&InvariantError{Err: ErrUnresolvable, Type: reflect.TypeOf(v), Depth: depth})
		}

		t := reflect.TypeOf(cur)
		if h, ok := d.handlers[t]; ok {
			d.logger().Debug("dispatch: handled", "type", t.String(), "depth", depth)
			return h(&d.state, ctx, cur, e)
		}

		body := cur.Body(e)
		if body == nil {
			panic(&InvariantError{Err: ErrUnresolvable, Type: t, Depth: depth})
		}
		cur = body
	}
}

// State returns the dispatcher-owned state.
func (d *Dispatcher[S, C, R]) State() *S {
	return &d.state
}

// Has reports whether a handler is registered for t.
func (d *Dispatcher[S, C, R]) Has(t reflect.Type) bool {
	_, ok := d.handlers[t]
	return ok
}

// Len returns the number of registrations.
func (d *Dispatcher[S, C, R]) Len() int {
	return len(d.handlers)
}

// Sealed reports whether registrations are frozen.
func (d *Dispatcher[S, C, R]) Sealed() bool {
	return d.sealed
}

// Types returns the registered type names, sorted.
func (d *Dispatcher[S, C, R]) Types() []string {
	names := make([]string, 0, len(d.handlers))
	for t := range d.handlers {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}
