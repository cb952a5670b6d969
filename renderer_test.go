// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uicore

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/uicore/backend"
	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/reactive"
	"github.com/gogpu/uicore/scene"
	"github.com/gogpu/uicore/text"
	"github.com/gogpu/uicore/view"
	"github.com/gogpu/uicore/widget"
)

func mountedHeadless(t *testing.T) *backend.Headless {
	t.Helper()
	h := backend.NewHeadless(backend.Options{Width: 400, Height: 300})
	if err := h.Mount(); err != nil {
		t.Fatal(err)
	}
	return h
}

func estimated() *env.Environment {
	return env.With(env.New(), text.Measurer(text.Estimate))
}

func TestRenderViewHello(t *testing.T) {
	r := New(mountedHeadless(t))
	res, err := r.RenderView(env.New(), widget.Text("Hello").Size(32))
	if err != nil || res != backend.Presented {
		t.Fatalf("RenderView() = %v, %v, want Presented", res, err)
	}
	tr := r.Tree()
	f := tr.Frame(tr.Root())
	if math.Abs(f.Dy()-38.4) > 1e-9 {
		t.Errorf("height = %v, want 38.4", f.Dy())
	}
	if f.Dx() <= 0 {
		t.Errorf("width = %v, want > 0", f.Dx())
	}
	sc := r.Scene()
	if sc.Len() != 1 || sc.Count(scene.KindText) != 1 {
		t.Errorf("scene = %v, want one Text", sc)
	}
}

func TestRenderViewReconcilesUnchangedToIdle(t *testing.T) {
	h := mountedHeadless(t)
	r := New(h)
	e := estimated()
	v := func(s string) widget.StackView {
		return widget.VStack(widget.Text(s), widget.Fill(widget.DefaultTheme().Accent).Frame(10, 10))
	}

	if res, _ := r.RenderView(e, v("a")); res != backend.Presented {
		t.Fatalf("first frame = %v", res)
	}
	if res, _ := r.RenderView(e, v("a")); res != backend.Idle {
		t.Errorf("unchanged frame = %v, want Idle", res)
	}
	if st := r.Stats(); st.Created != 0 || st.Reused != 3 {
		t.Errorf("Stats() = %v, want 3 reused", st)
	}
	if res, _ := r.RenderView(e, v("b")); res != backend.Presented {
		t.Errorf("changed frame = %v, want Presented", res)
	}
	if n := len(h.Presented()); n != 2 {
		t.Errorf("presented %d scenes, want 2", n)
	}
}

func TestFullRebuildPresentsEveryFrame(t *testing.T) {
	h := mountedHeadless(t)
	r := New(h, WithFullRebuild())
	e := estimated()
	v := widget.HStack(widget.Text("x"), widget.Spacer())
	for i := range 3 {
		if res, err := r.RenderView(e, v); err != nil || res != backend.Presented {
			t.Fatalf("frame %d = %v, %v", i, res, err)
		}
	}
	if st := r.Stats(); st.Created != 3 || st.Removed != 3 {
		t.Errorf("Stats() = %v, want created=3 removed=3", st)
	}
	if n := len(h.Presented()); n != 3 {
		t.Errorf("presented %d scenes, want 3", n)
	}
}

func TestRefreshPicksUpSignals(t *testing.T) {
	r := New(mountedHeadless(t))
	e := estimated()
	count := reactive.NewSignal("0")
	if _, err := r.RenderView(e, widget.VStack(widget.Label(count))); err != nil {
		t.Fatal(err)
	}
	if res, _ := r.Refresh(e); res != backend.Idle {
		t.Errorf("Refresh() without change = %v, want Idle", res)
	}

	count.Set("42")
	if res, _ := r.Refresh(e); res != backend.Presented {
		t.Fatalf("Refresh() after Set = %v, want Presented", res)
	}
	got, ok := r.Scene().At(0).(scene.Text)
	if !ok || got.Content != "42" {
		t.Errorf("scene[0] = %v, want Text 42", r.Scene().At(0))
	}

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if n := count.Subscribers(); n != 0 {
		t.Errorf("Subscribers() after Close = %d, want 0", n)
	}
}

func TestRenderViewBeforeMount(t *testing.T) {
	r := New(backend.NewHeadless(backend.Options{}))
	if _, err := r.RenderView(env.New(), widget.Text("x")); !errors.Is(err, backend.ErrNotMounted) {
		t.Errorf("RenderView() = %v, want ErrNotMounted", err)
	}
}

func TestPresentFailureKeepsLastScene(t *testing.T) {
	h := mountedHeadless(t)
	r := New(h)
	e := estimated()
	if _, err := r.RenderView(e, widget.Text("one")); err != nil {
		t.Fatal(err)
	}
	first := r.Scene()

	boom := errors.New("boom")
	h.FailNext(boom)
	if _, err := r.RenderView(e, widget.Text("two")); !errors.Is(err, boom) {
		t.Fatalf("RenderView() = %v, want boom", err)
	}
	if r.Scene() != first {
		t.Error("failed frame replaced the last scene")
	}
	if res, err := r.Refresh(e); err != nil || res != backend.Presented {
		t.Errorf("retry = %v, %v, want Presented", res, err)
	}
}

func TestEnvironmentChangeInvalidatesTree(t *testing.T) {
	r := New(mountedHeadless(t))
	e1 := estimated()
	v := widget.Text("Hello")
	if _, err := r.RenderView(e1, v); err != nil {
		t.Fatal(err)
	}
	if res, _ := r.RenderView(e1, v); res != backend.Idle {
		t.Errorf("same environment = %v, want Idle", res)
	}

	e2 := env.With(e1, text.Size(40))
	if res, err := r.RenderView(e2, v); err != nil || res != backend.Presented {
		t.Fatalf("larger text size = %v, %v, want Presented", res, err)
	}
	tr := r.Tree()
	if h := tr.Frame(tr.Root()).Dy(); math.Abs(h-48) > 1e-9 {
		t.Errorf("height = %v, want 48", h)
	}
	got, ok := r.Scene().At(0).(scene.Text)
	if !ok || got.Size != 40 {
		t.Errorf("scene[0] = %v, want Text of size 40", r.Scene().At(0))
	}

	red := color.NRGBA{R: 0xff, A: 0xff}
	theme := widget.DefaultTheme()
	theme.Foreground = red
	e3 := env.With(e2, theme)
	if res, err := r.Refresh(e3); err != nil || res != backend.Presented {
		t.Fatalf("theme change = %v, %v, want Presented", res, err)
	}
	got, ok = r.Scene().At(0).(scene.Text)
	if !ok || got.Color != red {
		t.Errorf("scene[0] = %v, want red Text", r.Scene().At(0))
	}
	if res, _ := r.Refresh(e3); res != backend.Idle {
		t.Errorf("unchanged environment = %v, want Idle", res)
	}
}

type gauge struct{ value float64 }

func (gauge) Body(*env.Environment) view.View { return nil }

func TestWithRegistrations(t *testing.T) {
	r := New(mountedHeadless(t), WithRegistrations(widget.RegisterPlaceholder[gauge]("gauge")))
	if _, err := r.RenderView(env.New(), widget.ZStack(gauge{value: 1})); err != nil {
		t.Fatal(err)
	}
	if n := r.Scene().Count(scene.KindPlaceholder); n != 1 {
		t.Errorf("placeholders = %d, want 1", n)
	}
}
