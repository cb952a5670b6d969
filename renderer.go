// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uicore

import (
	"github.com/gogpu/uicore/backend"
	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/scene"
	"github.com/gogpu/uicore/tree"
	"github.com/gogpu/uicore/view"
)

// Renderer drives the frame pipeline for one backend: resolve views into
// the render tree, poll reactive sources, then let the backend lay out,
// paint and present.
//
// A Renderer is not safe for concurrent use. Reactive sources may be set
// from any goroutine; their changes are picked up by the next RenderView
// or Refresh.
type Renderer struct {
	b       backend.Backend
	builder *tree.Builder
	tree    *tree.Tree
	opts    options
	last    tree.Stats

	// environment of the previous frame; environments are immutable, so
	// pointer identity tells whether it changed
	env *env.Environment
}

// New creates a Renderer presenting through b. b must be mounted before
// the first frame.
func New(b backend.Backend, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		b:       b,
		builder: tree.NewBuilder(o.regs...),
		tree:    tree.New(),
		opts:    o,
	}
}

// RenderView renders v as the next frame.
//
// By default v is reconciled against the previous tree, so only nodes
// whose content changed are laid out again. With WithFullRebuild the
// previous tree is discarded and rebuilt from scratch.
//
// RenderView panics with a *dispatch.InvariantError if v cannot be
// resolved to registered shapes.
func (r *Renderer) RenderView(e *env.Environment, v view.View) (backend.FrameResult, error) {
	if r.opts.fullRebuild {
		old := r.tree
		r.tree = r.builder.Build(e, v)
		r.last = tree.Stats{Created: r.tree.Len(), Removed: old.Len()}
		old.Clear()
	} else {
		r.last = r.builder.Reconcile(r.tree, e, v)
	}
	return r.Refresh(e)
}

// Refresh presents the current tree again, picking up reactive changes
// and a changed environment. It returns Idle when nothing changed.
//
// A different e than the previous frame's marks every node for layout,
// since any node may read text metrics or theme colours from it.
func (r *Renderer) Refresh(e *env.Environment) (backend.FrameResult, error) {
	if e != r.env {
		if r.env != nil {
			r.tree.MarkAll(tree.DirtyLayout)
			Logger().Debug("uicore: environment changed", "nodes", r.tree.Len())
		}
		r.env = e
	}
	if n := r.tree.PollReactive(); n > 0 {
		Logger().Debug("uicore: reactive changes", "nodes", n)
	}
	return r.b.Render(r.tree, e)
}

// Tree returns the current render tree.
func (r *Renderer) Tree() *tree.Tree { return r.tree }

// Scene returns the last successfully presented scene, or nil.
func (r *Renderer) Scene() *scene.Scene { return r.b.Scene() }

// Stats returns the counts from the last RenderView.
func (r *Renderer) Stats() tree.Stats { return r.last }

// Backend returns the backend the Renderer presents through.
func (r *Renderer) Backend() backend.Backend { return r.b }

// Close releases every node, cancelling reactive subscriptions.
func (r *Renderer) Close() error {
	r.tree.Clear()
	return nil
}
