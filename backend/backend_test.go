// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/scene"
	"github.com/gogpu/uicore/tree"
	"github.com/gogpu/uicore/view"
)

// swatch is a fixed-size coloured square.
type swatch struct {
	view.Native
	c color.NRGBA
}

// row lays out swatches left to right.
type row struct {
	view.Native
	kids []view.View
}

type swatchNode struct{ c color.NRGBA }

func (n *swatchNode) Layout(tree.LayoutContext, geom.Proposal) geom.Size { return geom.Sz(10, 10) }

func (n *swatchNode) Paint(rec *scene.Recorder, frame geom.Rect) {
	rec.Push(scene.SolidRect{Rect: frame, Color: n.c})
}

func (n *swatchNode) UpdateReactive() tree.DirtyReason { return tree.Clean }

func (n *swatchNode) Update(v view.View, _ *env.Environment) tree.DirtyReason {
	c := v.(swatch).c
	if c == n.c {
		return tree.Clean
	}
	n.c = c
	return tree.DirtyPaint
}

type rowNode struct{}

func (rowNode) Layout(ctx tree.LayoutContext, p geom.Proposal) geom.Size {
	x := 0.0
	for _, c := range ctx.Children() {
		s := ctx.Measure(c, p)
		ctx.Place(c, geom.Pt(x, 0), s)
		x += s.Width
	}
	return geom.Sz(x, 10)
}

func (rowNode) Paint(*scene.Recorder, geom.Rect) {}

func (rowNode) UpdateReactive() tree.DirtyReason { return tree.Clean }

func (rowNode) Update(view.View, *env.Environment) tree.DirtyReason { return tree.Clean }

func builder() *tree.Builder {
	return tree.NewBuilder(func(d *tree.Dispatcher) {
		tree.Register(d, func(b *tree.Build, parent tree.Handle, v swatch, e *env.Environment) tree.Handle {
			return b.Node(parent, v, e, func() tree.Node { return &swatchNode{c: v.c} })
		})
		tree.Register(d, func(b *tree.Build, parent tree.Handle, v row, e *env.Environment) tree.Handle {
			h := b.Node(parent, v, e, func() tree.Node { return rowNode{} })
			b.Children(h, e, v.kids...)
			return h
		})
	})
}

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	green = color.NRGBA{G: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

func TestLifecycle(t *testing.T) {
	h := NewHeadless(Options{Width: 100, Height: 100})
	if h.State() != Initialising {
		t.Fatalf("State() = %v, want initialising", h.State())
	}
	tr := builder().Build(env.New(), swatch{c: red})
	if _, err := h.Render(tr, env.New()); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Render before Mount = %v, want ErrNotMounted", err)
	}
	if err := h.Mount(); err != nil {
		t.Fatalf("Mount() = %v", err)
	}
	if h.State() != Mounted {
		t.Errorf("State() = %v, want mounted", h.State())
	}
	if err := h.Mount(); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("second Mount() = %v, want ErrAlreadyMounted", err)
	}
	if h.State() != Mounted {
		t.Errorf("State() after second Mount = %v", h.State())
	}
}

func TestRenderPresentsThenIdles(t *testing.T) {
	e := env.New()
	b := builder()
	tr := b.Build(e, row{kids: []view.View{swatch{c: red}, swatch{c: green}, swatch{c: blue}}})
	h := NewHeadless(Options{Width: 100, Height: 100})
	if err := h.Mount(); err != nil {
		t.Fatal(err)
	}

	res, err := h.Render(tr, e)
	if err != nil || res != Presented {
		t.Fatalf("Render() = %v, %v, want presented", res, err)
	}
	want := []scene.Command{
		scene.SolidRect{Rect: geom.XYWH(0, 0, 10, 10), Color: red},
		scene.SolidRect{Rect: geom.XYWH(10, 0, 10, 10), Color: green},
		scene.SolidRect{Rect: geom.XYWH(20, 0, 10, 10), Color: blue},
	}
	if diff := cmp.Diff(want, h.Scene().Commands()); diff != "" {
		t.Errorf("scene (-want +got):\n%s", diff)
	}
	if tr.IsDirty() {
		t.Error("tree still dirty after present")
	}

	res, err = h.Render(tr, e)
	if err != nil || res != Idle {
		t.Errorf("clean Render() = %v, %v, want idle", res, err)
	}
	if len(h.Presented()) != 1 || h.Frames() != 1 {
		t.Errorf("presented %d scenes, %d frames, want 1", len(h.Presented()), h.Frames())
	}

	b.Reconcile(tr, e, row{kids: []view.View{swatch{c: red}, swatch{c: red}, swatch{c: blue}}})
	res, _ = h.Render(tr, e)
	if res != Presented {
		t.Errorf("Render after paint change = %v", res)
	}
	if got := h.Scene().At(1).(scene.SolidRect).Color; got != red {
		t.Errorf("repainted colour = %v, want red", got)
	}
}

func TestFailedPresentKeepsLastScene(t *testing.T) {
	e := env.New()
	b := builder()
	tr := b.Build(e, swatch{c: red})
	h := NewHeadless(Options{Width: 10, Height: 10})
	if err := h.Mount(); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Render(tr, e); err != nil {
		t.Fatal(err)
	}
	good := h.Scene()

	b.Reconcile(tr, e, swatch{c: blue})
	boom := errors.New("device lost")
	h.FailNext(boom)
	res, err := h.Render(tr, e)
	if !errors.Is(err, boom) || res != Idle {
		t.Fatalf("Render() = %v, %v, want idle and device lost", res, err)
	}
	if h.Scene() != good {
		t.Error("failed present replaced the last good scene")
	}
	if !tr.IsDirty() {
		t.Error("dirty flags cleared by a failed present")
	}

	res, err = h.Render(tr, e)
	if err != nil || res != Presented {
		t.Fatalf("retry Render() = %v, %v", res, err)
	}
	if got := h.Scene().At(0).(scene.SolidRect).Color; got != blue {
		t.Errorf("colour after retry = %v, want blue", got)
	}
}

func TestResizeForcesFrame(t *testing.T) {
	e := env.New()
	tr := builder().Build(e, swatch{c: red})
	h := NewHeadless(Options{Width: 10, Height: 10})
	_ = h.Mount()
	_, _ = h.Render(tr, e)

	h.Resize(geom.Sz(20, 20))
	if res, _ := h.Render(tr, e); res != Presented {
		t.Errorf("Render after Resize = %v, want presented", res)
	}
	if res, _ := h.Render(tr, e); res != Idle {
		t.Errorf("second Render after Resize = %v, want idle", res)
	}
}

func TestRenderNilTree(t *testing.T) {
	h := NewHeadless(Options{})
	_ = h.Mount()
	if res, err := h.Render(nil, nil); res != Idle || err != nil {
		t.Errorf("Render(nil) = %v, %v", res, err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"ok", Options{Width: 1, Height: 1}, nil},
		{"zero width", Options{Height: 1}, ErrInvalidDimensions},
		{"negative height", Options{Width: 1, Height: -1}, ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStrings(t *testing.T) {
	if Presented.String() != "presented" || Idle.String() != "idle" {
		t.Error("FrameResult strings")
	}
	if Mounted.String() != "mounted" || Initialising.String() != "initialising" {
		t.Error("State strings")
	}
}
