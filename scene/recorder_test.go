// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
)

var red = color.NRGBA{R: 255, A: 255}

func TestRecorderOrder(t *testing.T) {
	rec := NewRecorder(env.New())
	a := SolidRect{Rect: geom.XYWH(0, 0, 10, 10), Color: red}
	b := Text{Content: "B", Size: 12}
	c := Placeholder{Label: "C"}
	for _, cmd := range []Command{a, b, c} {
		rec.Push(cmd)
	}
	s := rec.Finish()

	want := []Command{a, b, c}
	if diff := cmp.Diff(want, s.Commands()); diff != "" {
		t.Errorf("Commands() mismatch (-want +got):\n%s", diff)
	}
	if rec.Len() != 0 {
		t.Errorf("recorder Len() after Finish = %d, want 0", rec.Len())
	}
}

func TestSceneImmutable(t *testing.T) {
	rec := NewRecorder(nil)
	rec.Push(Placeholder{Label: "x"})
	s := rec.Finish()

	cmds := s.Commands()
	cmds[0] = Placeholder{Label: "mutated"}
	if got := s.At(0).(Placeholder).Label; got != "x" {
		t.Errorf("scene changed through Commands() copy: %q", got)
	}

	rec.Push(Placeholder{Label: "later"})
	if s.Len() != 1 {
		t.Errorf("scene Len() = %d after recorder reuse, want 1", s.Len())
	}
}

func TestSubAndAppend(t *testing.T) {
	e := env.New()
	rec := NewRecorder(e)
	sub := rec.Sub()
	if sub.Env() != e {
		t.Error("Sub() must share the environment")
	}
	sub.Push(Text{Content: "a"})
	rec.Push(Placeholder{Label: "p"})
	rec.Append(sub.Finish())
	s := rec.Finish()
	if s.Len() != 2 || s.At(1).Kind() != KindText {
		t.Errorf("unexpected scene:\n%v", s)
	}
	if s.Count(KindText) != 1 {
		t.Errorf("Count(Text) = %d, want 1", s.Count(KindText))
	}
}

func TestSceneEqualAndNil(t *testing.T) {
	a := New(Placeholder{Label: "x"}, Text{Content: "y"})
	b := New(Placeholder{Label: "x"}, Text{Content: "y"})
	if !a.Equal(b) {
		t.Error("Equal() = false for identical scenes")
	}
	var empty *Scene
	if empty.Len() != 0 || empty.Commands() != nil {
		t.Error("nil scene must be empty")
	}
	if a.Equal(empty) {
		t.Error("Equal(nil) = true")
	}
	rec := NewRecorder(nil)
	rec.Push(nil)
	if rec.Len() != 0 {
		t.Error("Push(nil) recorded a command")
	}
}

func TestKindString(t *testing.T) {
	if KindText.String() != "Text" || Kind(99).String() != "Unknown" {
		t.Error("unexpected Kind names")
	}
	if got := Hex(red); got != "#ff0000ff" {
		t.Errorf("Hex() = %q", got)
	}
	if got := Resolve(color.Black); got != (color.NRGBA{A: 255}) {
		t.Errorf("Resolve(Black) = %v", got)
	}
}
