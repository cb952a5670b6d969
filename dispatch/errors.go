// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dispatch

import (
	"errors"
	"fmt"
	"reflect"
)

// Invariant failures. These indicate static wiring bugs and are raised by
// panicking with an *InvariantError.
var (
	// ErrTypeMismatch means a handler received a view of the wrong type.
	ErrTypeMismatch = errors.New("dispatch: handler type mismatch")

	// ErrUnresolvable means a view has no handler and no body.
	ErrUnresolvable = errors.New("dispatch: view resolves to no registered shape")

	// ErrTooDeep means Body decomposition exceeded the depth bound.
	ErrTooDeep = errors.New("dispatch: body decomposition too deep")
)

// InvariantError describes a fatal dispatch failure.
type InvariantError struct {
	Err   error
	Type  reflect.Type
	Want  reflect.Type
	Depth int
}

func (e *InvariantError) Error() string {
	switch {
	case e.Want != nil:
		return fmt.Sprintf("%v: got %v, want %v", e.Err, e.Type, e.Want)
	case e.Depth > 0:
		return fmt.Sprintf("%v: %v at depth %d", e.Err, e.Type, e.Depth)
	default:
		return fmt.Sprintf("%v: %v", e.Err, e.Type)
	}
}

func (e *InvariantError) Unwrap() error { return e.Err }
