// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"testing"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
)

type leaf struct{ Native }

func (leaf) Stretch() geom.Axes { return geom.AxesVertical }

func TestUnwrap(t *testing.T) {
	l := leaf{}
	tests := []struct {
		name string
		in   View
	}{
		{"plain", l},
		{"once", Erase(l)},
		{"twice", Erase(Erase(l))},
		{"pointer", &Any{View: Erase(l)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unwrap(tt.in); got != View(l) {
				t.Errorf("Unwrap() = %#v, want leaf", got)
			}
		})
	}
	if got := Unwrap((*Any)(nil)); got != nil {
		t.Errorf("Unwrap(nil *Any) = %v, want nil", got)
	}
}

func TestStretchForwarding(t *testing.T) {
	if got := StretchOf(Erase(leaf{})); got != geom.AxesVertical {
		t.Errorf("StretchOf(Any) = %v, want vertical", got)
	}
	if got := StretchOf(Any{}); got != geom.AxesNone {
		t.Errorf("StretchOf(empty Any) = %v, want none", got)
	}
}

func TestNativeBody(t *testing.T) {
	if b := (leaf{}).Body(env.New()); b != nil {
		t.Errorf("Body() = %v, want nil", b)
	}
	if TypeOf(leaf{}) == TypeOf(Any{}) {
		t.Error("TypeOf must distinguish concrete types")
	}
}
