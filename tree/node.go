// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tree

import (
	"strings"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/scene"
	"github.com/gogpu/uicore/view"
)

// DirtyReason records why a node must be reprocessed.
type DirtyReason uint8

const (
	// DirtyLayout means the node's measured size may have changed.
	// It implies DirtyPaint.
	DirtyLayout DirtyReason = 1 << iota

	// DirtyPaint means only the node's drawn output changed.
	DirtyPaint

	// Clean is the absence of any reason.
	Clean DirtyReason = 0
)

// Has reports whether r includes every bit of o.
func (r DirtyReason) Has(o DirtyReason) bool { return r&o == o && o != 0 }

func (r DirtyReason) String() string {
	if r == Clean {
		return "clean"
	}
	var parts []string
	if r&DirtyLayout != 0 {
		parts = append(parts, "layout")
	}
	if r&DirtyPaint != 0 {
		parts = append(parts, "paint")
	}
	return strings.Join(parts, "|")
}

// LayoutContext is what a node sees while it is being measured. It is
// implemented by the layout engine.
type LayoutContext interface {
	// Env returns the environment for this pass.
	Env() *env.Environment

	// Children returns the node's children in order.
	Children() []Handle

	// Measure proposes p to child and returns the child's chosen size.
	Measure(child Handle, p geom.Proposal) geom.Size

	// Place positions child in the node's local coordinate space.
	Place(child Handle, origin geom.Point, size geom.Size)

	// Stretch returns the axes along which child prefers to grow.
	Stretch(child Handle) geom.Axes
}

// Node is the mutable counterpart of a resolved native view.
type Node interface {
	// Layout measures the node for proposal p, placing any children, and
	// returns the node's own size.
	Layout(ctx LayoutContext, p geom.Proposal) geom.Size

	// Paint pushes the node's own primitives. frame is the node's
	// absolute rectangle. Children are painted separately, after it.
	Paint(rec *scene.Recorder, frame geom.Rect)

	// UpdateReactive pulls the node's reactive inputs and reports how the
	// node became dirty, or Clean.
	UpdateReactive() DirtyReason
}

// Updater is implemented by nodes that can absorb a new view of the same
// type in place. Update returns how the node became dirty.
type Updater interface {
	Update(v view.View, e *env.Environment) DirtyReason
}

// Kinder is implemented by nodes that name themselves for diagnostics
// and backends that tag output per node.
type Kinder interface {
	Kind() string
}
