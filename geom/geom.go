// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom defines the float geometry shared by layout, painting and
// the presentation backends.
//
// All coordinates are in logical pixels with the origin at the top-left
// corner and Y growing downwards.
package geom

import (
	"fmt"
	"image"
	"math"
)

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h float64) Size { return Size{Width: w, Height: h} }

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Along returns the dimension of s on axis a.
func (s Size) Along(a Axis) float64 {
	if a == Vertical {
		return s.Height
	}
	return s.Width
}

// With returns s with the dimension on axis a set to v.
func (s Size) With(a Axis, v float64) Size {
	if a == Vertical {
		s.Height = v
	} else {
		s.Width = v
	}
	return s
}

// Sanitize replaces negative and NaN dimensions with zero.
func (s Size) Sanitize() Size {
	if math.IsNaN(s.Width) || s.Width < 0 {
		s.Width = 0
	}
	if math.IsNaN(s.Height) || s.Height < 0 {
		s.Height = 0
	}
	return s
}

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

// Rect is an axis-aligned rectangle. Max is exclusive.
type Rect struct {
	Min, Max Point
}

// XYWH builds a rectangle from an origin and a size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
}

// RectOf builds a rectangle at origin with size s.
func RectOf(origin Point, s Size) Rect {
	return XYWH(origin.X, origin.Y, s.Width, s.Height)
}

// Dx returns the width of r.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Size returns the dimensions of r.
func (r Rect) Size() Size { return Size{Width: r.Dx(), Height: r.Dy()} }

// Empty reports whether r contains no area.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Intersect returns the largest rectangle contained by both r and s.
func (r Rect) Intersect(s Rect) Rect {
	r.Min.X = math.Max(r.Min.X, s.Min.X)
	r.Min.Y = math.Max(r.Min.Y, s.Min.Y)
	r.Max.X = math.Min(r.Max.X, s.Max.X)
	r.Max.Y = math.Min(r.Max.Y, s.Max.Y)
	if r.Empty() {
		return Rect{}
	}
	return r
}

// Image rounds r outwards to integer pixel bounds.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X)), int(math.Ceil(r.Max.Y)),
	)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// Insets are edge offsets used by padding.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// UniformInsets returns insets of v on every edge.
func UniformInsets(v float64) Insets {
	return Insets{Top: v, Left: v, Bottom: v, Right: v}
}

// Horizontal returns Left+Right.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns Top+Bottom.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }
