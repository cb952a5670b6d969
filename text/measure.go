// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package text provides the text metrics used by layout.
//
// Layout only needs the advance width of a single-line run at a given
// size; the line box height is size × LineHeight. A Measurer is looked up
// from the environment so hosts can plug in their own metrics; the
// default Shaper shapes with go-text/typesetting over the Go Regular font.
package text

import (
	"unicode/utf8"

	"github.com/gogpu/uicore/env"
)

// DefaultLineHeight is the line box height as a multiple of font size.
const DefaultLineHeight = 1.2

// DefaultSize is the font size used when a text view sets none.
const DefaultSize = 17.0

// LineHeight is the environment key for the line height multiplier.
type LineHeight float64

// Size is the environment key for the default font size.
type Size float64

// Measurer reports the advance width of a single-line run.
type Measurer interface {
	Advance(s string, size float64) float64
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(s string, size float64) float64

// Advance implements Measurer.
func (f MeasurerFunc) Advance(s string, size float64) float64 { return f(s, size) }

// Estimate approximates the advance as half an em per rune. It is used
// when no font is available.
var Estimate Measurer = MeasurerFunc(func(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.5
})

// MeasurerFrom returns the environment's Measurer, or Default().
func MeasurerFrom(e *env.Environment) Measurer {
	if m, ok := env.Lookup[Measurer](e); ok && m != nil {
		return m
	}
	return Default()
}

// LineHeightFrom returns the environment's line height multiplier.
func LineHeightFrom(e *env.Environment) float64 {
	if lh := env.Get(e, LineHeight(0)); lh > 0 {
		return float64(lh)
	}
	return DefaultLineHeight
}

// SizeFrom returns the environment's default font size.
func SizeFrom(e *env.Environment) float64 {
	if s := env.Get(e, Size(0)); s > 0 {
		return float64(s)
	}
	return DefaultSize
}
