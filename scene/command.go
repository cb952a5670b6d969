// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene records the backend-agnostic output of a paint pass.
//
// Render nodes push typed Commands into a Recorder while the tree is
// traversed in pre-order. Finish freezes the buffer into a Scene that
// backends replay onto their own substrate: pixels, GPU textures, DOM
// elements or terminal cells.
//
// The command set is additive only: SolidRect, Text and Placeholder.
package scene

import (
	"fmt"
	"image/color"

	"github.com/gogpu/uicore/geom"
)

// Kind identifies a command variant.
type Kind uint8

const (
	KindSolidRect Kind = iota
	KindText
	KindPlaceholder
)

var kindNames = [...]string{
	KindSolidRect:   "SolidRect",
	KindText:        "Text",
	KindPlaceholder: "Placeholder",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Command is one drawing primitive. Commands are plain values.
type Command interface {
	Kind() Kind
}

// SolidRect fills Rect with a resolved colour.
type SolidRect struct {
	Rect  geom.Rect
	Color color.NRGBA
}

// Kind implements Command.
func (SolidRect) Kind() Kind { return KindSolidRect }

func (c SolidRect) String() string {
	return fmt.Sprintf("SolidRect{%v %s}", c.Rect, Hex(c.Color))
}

// Text draws a single-line run. Origin is the top-left corner of the
// run's line box; Size is the font size in logical pixels.
type Text struct {
	Content string
	Origin  geom.Point
	Color   color.NRGBA
	Size    float64
}

// Kind implements Command.
func (Text) Kind() Kind { return KindText }

func (c Text) String() string {
	return fmt.Sprintf("Text{%q at %v %s %gpx}", c.Content, c.Origin, Hex(c.Color), c.Size)
}

// Placeholder marks a shape the recorder has no primitive for.
type Placeholder struct {
	Label string
}

// Kind implements Command.
func (Placeholder) Kind() Kind { return KindPlaceholder }

func (c Placeholder) String() string {
	return fmt.Sprintf("Placeholder{%s}", c.Label)
}

// Hex formats c as #rrggbbaa.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Resolve converts any color.Color to non-premultiplied RGBA.
func Resolve(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
