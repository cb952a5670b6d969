// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package widget

import (
	"image/color"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/reactive"
	"github.com/gogpu/uicore/scene"
	"github.com/gogpu/uicore/tree"
	"github.com/gogpu/uicore/view"
)

// FillView paints its frame with a solid colour. Without a fixed size it
// takes all the space it is offered.
type FillView struct {
	view.Native
	color color.NRGBA
	size  geom.Size
}

// Fill returns a greedy solid-colour view.
func Fill(c color.Color) FillView {
	return FillView{color: scene.Resolve(c)}
}

// Frame fixes the fill's size.
func (v FillView) Frame(w, h float64) FillView {
	v.size = geom.Sz(w, h)
	return v
}

// Stretch implements view.Stretcher.
func (v FillView) Stretch() geom.Axes {
	if v.size.IsZero() {
		return geom.AxesBoth
	}
	return geom.AxesNone
}

func fillLayout(fixed geom.Size, p geom.Proposal) geom.Size {
	if !fixed.IsZero() {
		return fixed
	}
	return geom.Size{Width: p.OrZero(geom.Horizontal), Height: p.OrZero(geom.Vertical)}
}

type fillNode struct {
	color color.NRGBA
	size  geom.Size
}

func (n *fillNode) Kind() string { return "fill" }

func (n *fillNode) Layout(_ tree.LayoutContext, p geom.Proposal) geom.Size {
	return fillLayout(n.size, p)
}

func (n *fillNode) Paint(rec *scene.Recorder, frame geom.Rect) {
	rec.Push(scene.SolidRect{Rect: frame, Color: n.color})
}

func (n *fillNode) UpdateReactive() tree.DirtyReason { return tree.Clean }

func (n *fillNode) Update(v view.View, _ *env.Environment) tree.DirtyReason {
	fv := v.(FillView)
	r := tree.Clean
	if fv.size != n.size {
		r |= tree.DirtyLayout
	}
	if fv.color != n.color {
		r |= tree.DirtyPaint
	}
	n.color, n.size = fv.color, fv.size
	return r
}

// FillSourceView is a fill whose colour follows a reactive source. A
// colour change repaints without relayout.
type FillSourceView struct {
	view.Native
	src  reactive.Source[color.NRGBA]
	size geom.Size
}

// FillSource returns a greedy fill bound to src.
func FillSource(src reactive.Source[color.NRGBA]) FillSourceView {
	return FillSourceView{src: src}
}

// Frame fixes the fill's size.
func (v FillSourceView) Frame(w, h float64) FillSourceView {
	v.size = geom.Sz(w, h)
	return v
}

// Stretch implements view.Stretcher.
func (v FillSourceView) Stretch() geom.Axes {
	if v.size.IsZero() {
		return geom.AxesBoth
	}
	return geom.AxesNone
}

type fillSourceNode struct {
	src    reactive.Source[color.NRGBA]
	bridge *reactive.Bridge[color.NRGBA]
	color  color.NRGBA
	size   geom.Size
}

func newFillSourceNode(v FillSourceView) *fillSourceNode {
	b := reactive.NewBridge(v.src)
	return &fillSourceNode{src: v.src, bridge: b, color: b.Current(), size: v.size}
}

func (n *fillSourceNode) Kind() string { return "fill" }

func (n *fillSourceNode) Layout(_ tree.LayoutContext, p geom.Proposal) geom.Size {
	return fillLayout(n.size, p)
}

func (n *fillSourceNode) Paint(rec *scene.Recorder, frame geom.Rect) {
	rec.Push(scene.SolidRect{Rect: frame, Color: n.color})
}

func (n *fillSourceNode) UpdateReactive() tree.DirtyReason {
	c, changed := n.bridge.Refresh()
	if !changed || c == n.color {
		return tree.Clean
	}
	n.color = c
	return tree.DirtyPaint
}

func (n *fillSourceNode) Update(v view.View, _ *env.Environment) tree.DirtyReason {
	fv := v.(FillSourceView)
	r := tree.Clean
	if fv.size != n.size {
		n.size = fv.size
		r |= tree.DirtyLayout
	}
	if !sameSource(fv.src, n.src) {
		_ = n.bridge.Close()
		n.src = fv.src
		n.bridge = reactive.NewBridge(fv.src)
		if c := n.bridge.Current(); c != n.color {
			n.color = c
			r |= tree.DirtyPaint
		}
	}
	return r
}

func (n *fillSourceNode) Close() error { return n.bridge.Close() }
