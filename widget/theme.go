// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package widget provides the built-in native shapes: text, reactive
// labels, colour fills, stacks, overlays, spacers, padding and
// placeholders, together with the render nodes that lay them out and
// paint them.
//
// Register installs every built-in shape on a tree dispatcher:
//
//	b := tree.NewBuilder(widget.Register)
//	t := b.Build(e, widget.VStack(
//	    widget.Text("Hello").Size(32),
//	    widget.Spacer(),
//	))
package widget

import (
	"image/color"

	"github.com/gogpu/uicore/env"
)

// Theme holds the colours widgets resolve when a view sets none.
type Theme struct {
	Foreground color.NRGBA
	Background color.NRGBA
	Accent     color.NRGBA
}

// DefaultTheme is black text on white.
func DefaultTheme() Theme {
	return Theme{
		Foreground: color.NRGBA{A: 0xff},
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Accent:     color.NRGBA{R: 0x1a, G: 0x73, B: 0xe8, A: 0xff},
	}
}

// ThemeFrom returns the environment's Theme, or DefaultTheme.
func ThemeFrom(e *env.Environment) Theme {
	return env.Get(e, DefaultTheme())
}
