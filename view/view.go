// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package view defines the opaque view boundary consumed by the core.
//
// A View is any value with a runtime type. A view either is a native
// shape that some dispatcher registration recognises, or decomposes into
// another view through Body. Native shapes return nil from Body.
package view

import (
	"reflect"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
)

// View is a declaratively described piece of UI.
type View interface {
	// Body decomposes the view into another view.
	// Native shapes return nil.
	Body(e *env.Environment) View
}

// Stretcher is implemented by views that prefer to grow along some axes
// when their container has spare room.
type Stretcher interface {
	Stretch() geom.Axes
}

// StretchOf returns the stretch hint of v, or AxesNone.
func StretchOf(v View) geom.Axes {
	if s, ok := v.(Stretcher); ok {
		return s.Stretch()
	}
	return geom.AxesNone
}

// Any erases the concrete type of a view. Dispatch unwraps it before
// looking at the inner view, so Any{Any{v}} resolves exactly like v.
type Any struct {
	View View
}

// Erase wraps v in Any.
func Erase(v View) Any { return Any{View: v} }

// Body returns the wrapped view.
func (a Any) Body(*env.Environment) View { return a.View }

// Stretch forwards the wrapped view's hint.
func (a Any) Stretch() geom.Axes {
	if a.View == nil {
		return geom.AxesNone
	}
	return StretchOf(a.View)
}

// Unwrap returns the view inside one or more Any layers.
func Unwrap(v View) View {
	for {
		switch a := v.(type) {
		case Any:
			v = a.View
		case *Any:
			if a == nil {
				return nil
			}
			v = a.View
		default:
			return v
		}
	}
}

// TypeOf returns the runtime type identity used for dispatch.
func TypeOf(v View) reflect.Type {
	return reflect.TypeOf(v)
}

// Native is embedded by terminal shapes that never decompose.
type Native struct{}

// Body returns nil.
func (Native) Body(*env.Environment) View { return nil }
