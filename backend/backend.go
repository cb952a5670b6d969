// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend defines how a render tree reaches a presentation
// surface.
//
// A Backend is mounted once, then asked to Render a tree each frame. The
// shared frame pipeline lives in Surface: a frame with no dirty node is
// Idle; otherwise the tree is laid out, painted into a Scene in pre-order,
// and handed to the concrete Presenter. Only a successful present makes
// the Scene the last good one and clears dirty flags.
//
// Concrete backends register themselves by name, in the manner of
// database/sql drivers:
//
//	import _ "github.com/gogpu/uicore/backend/raster"
//
//	b, err := backend.New("raster", backend.Options{Width: 800, Height: 600})
package backend

import (
	"errors"
	"image/color"
	"io"
	"log/slog"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/scene"
	"github.com/gogpu/uicore/tree"
)

// FrameResult reports what a Render call did.
type FrameResult uint8

const (
	// Idle means nothing was presented.
	Idle FrameResult = iota

	// Presented means a new frame reached the surface.
	Presented
)

func (r FrameResult) String() string {
	if r == Presented {
		return "presented"
	}
	return "idle"
}

// State is a backend's lifecycle state. It only moves forward.
type State uint8

const (
	Initialising State = iota
	Mounted
)

func (s State) String() string {
	if s == Mounted {
		return "mounted"
	}
	return "initialising"
}

// Backend presents render trees.
type Backend interface {
	// Mount attaches the backend to its host. It may be called once.
	Mount() error

	// State returns the lifecycle state.
	State() State

	// Render lays out, paints and presents t if any node is dirty.
	Render(t *tree.Tree, e *env.Environment) (FrameResult, error)

	// Scene returns the last successfully presented scene, or nil.
	Scene() *scene.Scene
}

// Errors.
var (
	// ErrNotMounted is returned by Render before Mount.
	ErrNotMounted = errors.New("backend: not mounted")

	// ErrAlreadyMounted is returned by a second Mount.
	ErrAlreadyMounted = errors.New("backend: already mounted")

	// ErrNoHost is returned when a backend needs Options.Host and got none
	// of the right type.
	ErrNoHost = errors.New("backend: missing or unsupported host")

	// ErrInvalidDimensions is returned for a non-positive viewport.
	ErrInvalidDimensions = errors.New("backend: invalid dimensions")
)

// Options configures a backend.
type Options struct {
	// Width and Height are the viewport in logical pixels.
	Width, Height int

	// Writer, if set, receives each presented frame in the backend's
	// output format (PNG, HTML, terminal text).
	Writer io.Writer

	// Background clears each frame on drawing backends. Nil means white.
	Background color.Color

	// Host is the backend-specific attachment point, such as a DOM node or
	// a GPU device provider.
	Host any

	// Logger overrides the package logger for this backend.
	Logger *slog.Logger
}

// Viewport returns the viewport size.
func (o Options) Viewport() geom.Size {
	return geom.Sz(float64(o.Width), float64(o.Height))
}

// BackgroundColor returns Background, defaulting to opaque white.
func (o Options) BackgroundColor() color.NRGBA {
	if o.Background == nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return scene.Resolve(o.Background)
}

// Validate checks the viewport.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return ErrInvalidDimensions
	}
	return nil
}
