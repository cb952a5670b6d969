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

// Alignment positions a child on the cross axis of its container.
type Alignment uint8

const (
	AlignCenter Alignment = iota
	AlignLeading
	AlignTrailing
)

func (a Alignment) offset(space, length float64) float64 {
	switch a {
	case AlignLeading:
		return 0
	case AlignTrailing:
		return space - length
	default:
		return (space - length) / 2
	}
}

// StackView arranges its children one after another along an axis.
type StackView struct {
	view.Native
	axis     geom.Axis
	spacing  float64
	align    Alignment
	children []view.View
}

// VStack stacks children top to bottom.
func VStack(children ...view.View) StackView {
	return StackView{axis: geom.Vertical, children: children}
}

// HStack stacks children left to right.
func HStack(children ...view.View) StackView {
	return StackView{axis: geom.Horizontal, children: children}
}

// Spacing sets the gap between adjacent children.
func (v StackView) Spacing(gap float64) StackView {
	v.spacing = gap
	return v
}

// Align sets the cross-axis alignment of children.
func (v StackView) Align(a Alignment) StackView {
	v.align = a
	return v
}

// Children returns the stacked views.
func (v StackView) Children() []view.View { return v.children }

// Stretch is the union of the children's hints.
func (v StackView) Stretch() geom.Axes {
	var s geom.Axes
	for _, c := range v.children {
		s |= view.StretchOf(c)
	}
	return s
}

type stackNode struct {
	axis    geom.Axis
	spacing float64
	align   Alignment
}

func (n *stackNode) Kind() string {
	if n.axis == geom.Vertical {
		return "vstack"
	}
	return "hstack"
}

// Layout measures non-stretching children at their natural size, then
// splits what is left of a bounded main axis evenly between stretching
// children. The cross extent is the largest child that does not stretch
// across; stretching children are then sized to it.
func (n *stackNode) Layout(ctx tree.LayoutContext, p geom.Proposal) geom.Size {
	kids := ctx.Children()
	if len(kids) == 0 {
		return geom.Size{}
	}
	main, cross := n.axis, n.axis.Cross()
	gaps := n.spacing * float64(len(kids)-1)

	sizes := make([]geom.Size, len(kids))
	var stretchers []int
	used := gaps
	for i, c := range kids {
		if ctx.Stretch(c).Has(main) {
			stretchers = append(stretchers, i)
			continue
		}
		sizes[i] = ctx.Measure(c, p)
		used += sizes[i].Along(main)
	}
	if len(stretchers) > 0 {
		share := 0.0
		if p.Bounded(main) {
			share = math.Max(0, p.Along(main)-used) / float64(len(stretchers))
		}
		for _, i := range stretchers {
			sizes[i] = ctx.Measure(kids[i], p.With(main, share))
		}
	}

	extent, contributors := 0.0, 0
	for i, c := range kids {
		if ctx.Stretch(c).Has(cross) {
			continue
		}
		extent = math.Max(extent, sizes[i].Along(cross))
		contributors++
	}
	if contributors == 0 {
		extent = p.OrZero(cross)
		for _, s := range sizes {
			extent = math.Max(extent, s.Along(cross))
		}
	}

	offset := 0.0
	for i, c := range kids {
		length := sizes[i].Along(main)
		breadth := sizes[i].Along(cross)
		if ctx.Stretch(c).Has(cross) && breadth != extent {
			sizes[i] = ctx.Measure(c, geom.ProposeSize(geom.SizeAlong(main, length, extent)))
			length, breadth = sizes[i].Along(main), extent
		}
		at := geom.PointAlong(main, offset, n.align.offset(extent, breadth))
		ctx.Place(c, at, geom.SizeAlong(main, length, breadth))
		offset += length + n.spacing
	}
	return geom.SizeAlong(main, offset-n.spacing, extent)
}

func (n *stackNode) Paint(*scene.Recorder, geom.Rect) {}

func (n *stackNode) UpdateReactive() tree.DirtyReason { return tree.Clean }

func (n *stackNode) Update(v view.View, _ *env.Environment) tree.DirtyReason {
	sv := v.(StackView)
	if sv.axis == n.axis && sv.spacing == n.spacing && sv.align == n.align {
		return tree.Clean
	}
	n.axis, n.spacing, n.align = sv.axis, sv.spacing, sv.align
	return tree.DirtyLayout
}

// ZStackView overlays its children, first child at the back, each centred
// in the overlay.
type ZStackView struct {
	view.Native
	children []view.View
}

// ZStack overlays children back to front.
func ZStack(children ...view.View) ZStackView {
	return ZStackView{children: children}
}

// Stretch is the union of the children's hints.
func (v ZStackView) Stretch() geom.Axes {
	var s geom.Axes
	for _, c := range v.children {
		s |= view.StretchOf(c)
	}
	return s
}

type zstackNode struct{}

func (zstackNode) Kind() string { return "zstack" }

// Layout sizes the overlay on each axis to its largest child that does
// not stretch on that axis, then fits stretching children to it.
func (zstackNode) Layout(ctx tree.LayoutContext, p geom.Proposal) geom.Size {
	kids := ctx.Children()
	sizes := make([]geom.Size, len(kids))
	for i, c := range kids {
		sizes[i] = ctx.Measure(c, p)
	}

	var out geom.Size
	for _, a := range []geom.Axis{geom.Horizontal, geom.Vertical} {
		extent, contributors := 0.0, 0
		for i, c := range kids {
			if ctx.Stretch(c).Has(a) {
				continue
			}
			extent = math.Max(extent, sizes[i].Along(a))
			contributors++
		}
		if contributors == 0 {
			extent = p.OrZero(a)
		}
		out = out.With(a, extent)
	}

	for i, c := range kids {
		s := sizes[i]
		st := ctx.Stretch(c)
		if st != geom.AxesNone {
			want := s
			if st.Has(geom.Horizontal) {
				want.Width = out.Width
			}
			if st.Has(geom.Vertical) {
				want.Height = out.Height
			}
			if want != s {
				ctx.Measure(c, geom.ProposeSize(want))
				s = want
			}
		}
		at := geom.Pt(
			AlignCenter.offset(out.Width, s.Width),
			AlignCenter.offset(out.Height, s.Height),
		)
		ctx.Place(c, at, s)
	}
	return out
}

func (zstackNode) Paint(*scene.Recorder, geom.Rect) {}

func (zstackNode) UpdateReactive() tree.DirtyReason { return tree.Clean }

func (zstackNode) Update(view.View, *env.Environment) tree.DirtyReason { return tree.Clean }
