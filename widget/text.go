// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package widget

import (
	"image/color"
	"reflect"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/reactive"
	"github.com/gogpu/uicore/scene"
	"github.com/gogpu/uicore/text"
	"github.com/gogpu/uicore/tree"
	"github.com/gogpu/uicore/view"
)

// TextView is a single line of static text.
type TextView struct {
	view.Native
	content  string
	size     float64
	color    color.NRGBA
	hasColor bool
}

// Text returns a text view using the environment's default size and the
// theme's foreground colour.
func Text(s string) TextView {
	return TextView{content: s}
}

// Size sets the font size in logical pixels.
func (v TextView) Size(px float64) TextView {
	v.size = px
	return v
}

// Color overrides the theme colour.
func (v TextView) Color(c color.Color) TextView {
	v.color = scene.Resolve(c)
	v.hasColor = true
	return v
}

// Content returns the text.
func (v TextView) Content() string { return v.content }

// run is the state shared by static and reactive text nodes.
type run struct {
	content  string
	size     float64
	color    color.NRGBA
	hasColor bool
}

func (r *run) fontSize(e *env.Environment) float64 {
	if r.size > 0 {
		return r.size
	}
	return text.SizeFrom(e)
}

func (r *run) measure(e *env.Environment) geom.Size {
	size := r.fontSize(e)
	return geom.Size{
		Width:  text.MeasurerFrom(e).Advance(r.content, size),
		Height: size * text.LineHeightFrom(e),
	}
}

func (r *run) paint(rec *scene.Recorder, frame geom.Rect) {
	c := r.color
	if !r.hasColor {
		c = ThemeFrom(rec.Env()).Foreground
	}
	rec.Push(scene.Text{
		Content: r.content,
		Origin:  frame.Min,
		Color:   c,
		Size:    r.fontSize(rec.Env()),
	})
}

type textNode struct {
	run
}

func newTextNode(v TextView) *textNode {
	return &textNode{run{content: v.content, size: v.size, color: v.color, hasColor: v.hasColor}}
}

func (n *textNode) Kind() string { return "text" }

func (n *textNode) Layout(ctx tree.LayoutContext, _ geom.Proposal) geom.Size {
	return n.measure(ctx.Env())
}

func (n *textNode) Paint(rec *scene.Recorder, frame geom.Rect) { n.paint(rec, frame) }

func (n *textNode) UpdateReactive() tree.DirtyReason { return tree.Clean }

func (n *textNode) Update(v view.View, _ *env.Environment) tree.DirtyReason {
	tv := v.(TextView)
	r := tree.Clean
	if tv.content != n.content || tv.size != n.size {
		r |= tree.DirtyLayout
	}
	if tv.color != n.color || tv.hasColor != n.hasColor {
		r |= tree.DirtyPaint
	}
	n.run = run{content: tv.content, size: tv.size, color: tv.color, hasColor: tv.hasColor}
	return r
}

// LabelView is text whose content follows a reactive source.
type LabelView struct {
	view.Native
	src  reactive.Source[string]
	size float64
}

// Label returns a view that displays src's current value.
func Label(src reactive.Source[string]) LabelView {
	return LabelView{src: src}
}

// Size sets the font size in logical pixels.
func (v LabelView) Size(px float64) LabelView {
	v.size = px
	return v
}

type labelNode struct {
	run
	src    reactive.Source[string]
	bridge *reactive.Bridge[string]
}

func newLabelNode(v LabelView) *labelNode {
	b := reactive.NewBridge(v.src)
	return &labelNode{
		run:    run{content: b.Current(), size: v.size},
		src:    v.src,
		bridge: b,
	}
}

func (n *labelNode) Kind() string { return "label" }

func (n *labelNode) Layout(ctx tree.LayoutContext, _ geom.Proposal) geom.Size {
	return n.measure(ctx.Env())
}

func (n *labelNode) Paint(rec *scene.Recorder, frame geom.Rect) { n.paint(rec, frame) }

func (n *labelNode) UpdateReactive() tree.DirtyReason {
	s, changed := n.bridge.Refresh()
	if !changed || s == n.content {
		return tree.Clean
	}
	n.content = s
	return tree.DirtyLayout
}

func (n *labelNode) Update(v view.View, _ *env.Environment) tree.DirtyReason {
	lv := v.(LabelView)
	r := tree.Clean
	if lv.size != n.size {
		n.size = lv.size
		r |= tree.DirtyLayout
	}
	if !sameSource(lv.src, n.src) {
		_ = n.bridge.Close()
		n.src = lv.src
		n.bridge = reactive.NewBridge(lv.src)
		if s := n.bridge.Current(); s != n.content {
			n.content = s
			r |= tree.DirtyLayout
		}
	}
	return r
}

func (n *labelNode) Close() error { return n.bridge.Close() }

// sameSource reports whether a and b are provably the same source.
// Sources whose dynamic type is not comparable are never the same.
func sameSource(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}
