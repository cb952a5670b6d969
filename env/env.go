// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package env provides the read-only contextual store threaded through
// tree building, layout and painting.
//
// An Environment is a chain of frames. Each frame holds values keyed by
// their Go type; lookups walk from the innermost frame outwards. Deriving
// a child never mutates the parent, so an Environment can be shared
// freely once built:
//
//	base := env.New()
//	themed := env.With(base, widget.Theme{Foreground: black})
//	th := env.Get(themed, widget.DefaultTheme())
package env

import (
	"reflect"
)

// Environment is an immutable, hierarchical, type-keyed value store.
// The nil *Environment is valid and empty.
type Environment struct {
	parent *Environment
	key    reflect.Type
	value  any
	depth  int
}

// New returns an empty environment.
func New() *Environment {
	return &Environment{}
}

// With returns a child of e that additionally binds v under type T.
// The binding shadows any value of type T in e.
func With[T any](e *Environment, v T) *Environment {
	d := 0
	if e != nil {
		d = e.depth + 1
	}
	return &Environment{
		parent: e,
		key:    reflect.TypeFor[T](),
		value:  v,
		depth:  d,
	}
}

// Lookup returns the innermost value bound under type T.
func Lookup[T any](e *Environment) (T, bool) {
	key := reflect.TypeFor[T]()
	for f := e; f != nil; f = f.parent {
		if f.key == key {
			return f.value.(T), true
		}
	}
	var zero T
	return zero, false
}

// Get returns the value bound under type T, or def if there is none.
func Get[T any](e *Environment, def T) T {
	if v, ok := Lookup[T](e); ok {
		return v
	}
	return def
}

// Has reports whether a value of type T is bound.
func Has[T any](e *Environment) bool {
	_, ok := Lookup[T](e)
	return ok
}

// Parent returns the enclosing environment, or nil at the outermost frame.
func (e *Environment) Parent() *Environment {
	if e == nil {
		return nil
	}
	return e.parent
}

// Depth returns the number of bindings in the chain.
func (e *Environment) Depth() int {
	if e == nil {
		return 0
	}
	return e.depth
}
