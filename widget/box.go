// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package widget

import (
	"math"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/scene"
	"github.com/gogpu/uicore/tree"
	"github.com/gogpu/uicore/view"
)

// SpacerView is empty space that grows to fill its container.
type SpacerView struct {
	view.Native
	min float64
}

// Spacer returns a flexible gap.
func Spacer() SpacerView { return SpacerView{} }

// Min sets the smallest length the spacer collapses to.
func (v SpacerView) Min(length float64) SpacerView {
	v.min = length
	return v
}

// Stretch implements view.Stretcher.
func (SpacerView) Stretch() geom.Axes { return geom.AxesBoth }

type spacerNode struct {
	min float64
}

func (n *spacerNode) Kind() string { return "spacer" }

func (n *spacerNode) Layout(_ tree.LayoutContext, p geom.Proposal) geom.Size {
	return geom.Size{
		Width:  math.Max(n.min, p.OrZero(geom.Horizontal)),
		Height: math.Max(n.min, p.OrZero(geom.Vertical)),
	}
}

func (n *spacerNode) Paint(*scene.Recorder, geom.Rect) {}

func (n *spacerNode) UpdateReactive() tree.DirtyReason { return tree.Clean }

func (n *spacerNode) Update(v view.View, _ *env.Environment) tree.DirtyReason {
	sv := v.(SpacerView)
	if sv.min == n.min {
		return tree.Clean
	}
	n.min = sv.min
	return tree.DirtyLayout
}

// PaddingView insets its content.
type PaddingView struct {
	view.Native
	insets  geom.Insets
	content view.View
}

// Padding surrounds content with in.
func Padding(in geom.Insets, content view.View) PaddingView {
	return PaddingView{insets: in, content: content}
}

// Stretch forwards the content's hint.
func (v PaddingView) Stretch() geom.Axes { return view.StretchOf(v.content) }

type paddingNode struct {
	insets geom.Insets
}

func (n *paddingNode) Kind() string { return "padding" }

func (n *paddingNode) Layout(ctx tree.LayoutContext, p geom.Proposal) geom.Size {
	in := n.insets
	var inner geom.Size
	for _, c := range ctx.Children() {
		inner = ctx.Measure(c, p.Inset(in))
		ctx.Place(c, geom.Pt(in.Left, in.Top), inner)
	}
	return geom.Size{
		Width:  inner.Width + in.Horizontal(),
		Height: inner.Height + in.Vertical(),
	}
}

func (n *paddingNode) Paint(*scene.Recorder, geom.Rect) {}

func (n *paddingNode) UpdateReactive() tree.DirtyReason { return tree.Clean }

func (n *paddingNode) Update(v view.View, _ *env.Environment) tree.DirtyReason {
	pv := v.(PaddingView)
	if pv.insets == n.insets {
		return tree.Clean
	}
	n.insets = pv.insets
	return tree.DirtyLayout
}

// PlaceholderView stands in for a native shape the current backend cannot
// draw. It sizes itself like a line of text showing its label.
type PlaceholderView struct {
	view.Native
	label string
}

// Placeholder returns a placeholder labelled label.
func Placeholder(label string) PlaceholderView {
	return PlaceholderView{label: label}
}

type placeholderNode struct {
	label string
}

func (n *placeholderNode) Kind() string { return "placeholder" }

func (n *placeholderNode) Layout(ctx tree.LayoutContext, _ geom.Proposal) geom.Size {
	r := run{content: n.label}
	return r.measure(ctx.Env())
}

func (n *placeholderNode) Paint(rec *scene.Recorder, _ geom.Rect) {
	rec.Push(scene.Placeholder{Label: n.label})
}

func (n *placeholderNode) UpdateReactive() tree.DirtyReason { return tree.Clean }

func (n *placeholderNode) Update(v view.View, _ *env.Environment) tree.DirtyReason {
	pv, ok := v.(PlaceholderView)
	if !ok || pv.label == n.label {
		return tree.Clean
	}
	n.label = pv.label
	return tree.DirtyLayout
}
