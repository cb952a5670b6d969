// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package uicore is the rendering core of a declarative UI toolkit.
//
// # Overview
//
// Application code describes the interface as a tree of immutable views.
// A Renderer resolves views into a retained render tree, lays the tree
// out, records a flat scene of draw commands and hands it to a pluggable
// backend. Between frames, views are reconciled against the existing tree
// so unchanged nodes keep their layout, and reactive sources mark only the
// nodes that read them.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/uicore"
//	    "github.com/gogpu/uicore/backend"
//	    _ "github.com/gogpu/uicore/backend/raster"
//	    "github.com/gogpu/uicore/env"
//	    "github.com/gogpu/uicore/widget"
//	)
//
//	b, _ := backend.New("raster", backend.Options{Width: 320, Height: 240})
//	_ = b.Mount()
//	r := uicore.New(b)
//	_, err := r.RenderView(env.New(), widget.VStack(
//	    widget.Text("Hello").Size(32),
//	    widget.Spacer(),
//	))
//
// # Architecture
//
// The module is organized into:
//   - view, env: the view protocol and the typed environment
//   - dispatch: open-set dispatch from view types to handlers
//   - tree: arena render tree, builder and reconciler
//   - layout: two-pass measure/place engine with a measurement cache
//   - scene: draw commands and the recorder nodes paint into
//   - reactive: signals and the bridge that marks nodes dirty
//   - widget: built-in native shapes
//   - backend: the backend contract, registry and headless backend, with
//     raster, gpu, dom and term implementations in sub-packages
//   - config: YAML settings
//
// # Logging
//
// uicore is silent by default. See SetLogger.
package uicore
