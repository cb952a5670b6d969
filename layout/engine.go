// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package layout measures and places the nodes of a render tree.
//
// Layout is a two-phase protocol driven by the nodes themselves:
//
//  1. A parent proposes a size to each child through Measure and collects
//     the size the child chooses.
//  2. From those sizes the parent computes its own size with its layout
//     algorithm (stack, overlay, padding, ...) and assigns each child a
//     rectangle through Place.
//
// The Engine proposes the viewport to the root, lets the recursion run,
// then resolves absolute frames in a pre-order sweep. Nodes that are not
// layout-dirty and receive the proposal they were last measured with keep
// their cached size and placements without being asked again.
package layout

import (
	"fmt"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/internal/logging"
	"github.com/gogpu/uicore/tree"
)

// Engine runs layout passes over one tree.
type Engine struct {
	tree     *tree.Tree
	env      *env.Environment
	measured int
	reused   int
}

// New creates an engine for t with environment e.
func New(t *tree.Tree, e *env.Environment) *Engine {
	return &Engine{tree: t, env: e}
}

// Run lays out the whole tree for the given viewport and returns the
// root's size. Layout dirtiness is cleared; paint dirtiness is kept.
func (en *Engine) Run(viewport geom.Size) geom.Size {
	en.measured, en.reused = 0, 0
	t := en.tree
	root := t.Root()
	if root.IsNil() {
		return geom.Size{}
	}

	size := en.measure(root, geom.ProposeSize(viewport))
	t.SetLocal(root, geom.RectOf(geom.Point{}, size))
	en.resolveFrames()

	for _, h := range t.PreOrder() {
		t.ClearReason(h, tree.DirtyLayout)
	}

	logging.Logger().Debug("layout: pass complete",
		"viewport", viewport.String(),
		"root", size.String(),
		"measured", en.measured,
		"cached", en.reused,
	)
	return size
}

// Measured returns how many nodes had Layout invoked in the last Run.
func (en *Engine) Measured() int { return en.measured }

// Cached returns how many measurements were served from cache in the
// last Run.
func (en *Engine) Cached() int { return en.reused }

func (en *Engine) measure(h tree.Handle, p geom.Proposal) geom.Size {
	t := en.tree
	if t.Dirty(h)&tree.DirtyLayout == 0 {
		if cp, cs, ok := t.Measurement(h); ok && cp == p {
			en.reused++
			return cs
		}
	}

	// Children the node does not place collapse onto its origin.
	for _, c := range t.Children(h) {
		t.SetLocal(c, geom.Rect{})
	}

	ctx := &nodeContext{engine: en, self: h}
	size := t.Node(h).Layout(ctx, p).Sanitize()
	t.SetMeasurement(h, p, size)
	en.measured++
	return size
}

// resolveFrames converts local placements to absolute frames.
func (en *Engine) resolveFrames() {
	t := en.tree
	t.Walk(func(h tree.Handle, _ int) bool {
		local := t.Local(h)
		parent := t.Parent(h)
		if parent.IsNil() {
			t.SetFrame(h, local)
			return true
		}
		t.SetFrame(h, local.Translate(t.Frame(parent).Min))
		return true
	})
}

// nodeContext is the LayoutContext handed to one node.
type nodeContext struct {
	engine *Engine
	self   tree.Handle
}

func (c *nodeContext) Env() *env.Environment { return c.engine.env }

func (c *nodeContext) Children() []tree.Handle { return c.engine.tree.Children(c.self) }

func (c *nodeContext) Measure(child tree.Handle, p geom.Proposal) geom.Size {
	c.mustOwn(child)
	return c.engine.measure(child, p)
}

func (c *nodeContext) Place(child tree.Handle, origin geom.Point, size geom.Size) {
	c.mustOwn(child)
	c.engine.tree.SetLocal(child, geom.RectOf(origin, size.Sanitize()))
}

func (c *nodeContext) Stretch(child tree.Handle) geom.Axes {
	return c.engine.tree.Stretch(child)
}

func (c *nodeContext) mustOwn(child tree.Handle) {
	if p := c.engine.tree.Parent(child); p != c.self {
		panic(fmt.Sprintf("layout: node %v measured %v, which is a child of %v", c.self, child, p))
	}
}
