// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"fmt"
	"math"
)

// Axis names a layout direction.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Axes is a set of axes along which a view prefers to stretch.
type Axes uint8

const (
	AxesNone       Axes = 0
	AxesHorizontal Axes = 1 << Horizontal
	AxesVertical   Axes = 1 << Vertical
	AxesBoth            = AxesHorizontal | AxesVertical
)

// Has reports whether a is part of the set.
func (s Axes) Has(a Axis) bool { return s&(1<<a) != 0 }

func (s Axes) String() string {
	switch s {
	case AxesNone:
		return "none"
	case AxesHorizontal:
		return "horizontal"
	case AxesVertical:
		return "vertical"
	default:
		return "both"
	}
}

// Unbounded is the proposal component meaning "no constraint".
var Unbounded = math.Inf(1)

// Proposal is the space a parent offers a child during measurement.
// Either component may be Unbounded.
type Proposal struct {
	Width, Height float64
}

// Propose is shorthand for Proposal{w, h}.
func Propose(w, h float64) Proposal { return Proposal{Width: w, Height: h} }

// ProposeSize proposes exactly s.
func ProposeSize(s Size) Proposal { return Proposal{Width: s.Width, Height: s.Height} }

// UnboundedProposal leaves both axes unconstrained.
func UnboundedProposal() Proposal { return Proposal{Width: Unbounded, Height: Unbounded} }

// Along returns the proposed length on axis a.
func (p Proposal) Along(a Axis) float64 {
	if a == Vertical {
		return p.Height
	}
	return p.Width
}

// With returns p with axis a set to v.
func (p Proposal) With(a Axis, v float64) Proposal {
	if a == Vertical {
		p.Height = v
	} else {
		p.Width = v
	}
	return p
}

// Inset shrinks p by in, never below zero. Unbounded stays unbounded.
func (p Proposal) Inset(in Insets) Proposal {
	return Proposal{
		Width:  math.Max(0, p.Width-in.Horizontal()),
		Height: math.Max(0, p.Height-in.Vertical()),
	}
}

// Bounded reports whether the proposal constrains axis a.
func (p Proposal) Bounded(a Axis) bool { return !math.IsInf(p.Along(a), 1) }

// OrZero returns the proposed length on a, or 0 if unbounded.
func (p Proposal) OrZero(a Axis) float64 {
	if !p.Bounded(a) {
		return 0
	}
	return p.Along(a)
}

func (p Proposal) String() string { return fmt.Sprintf("propose(%g,%g)", p.Width, p.Height) }

// SizeAlong builds a size from main and cross lengths for a main axis.
func SizeAlong(main Axis, mainLen, crossLen float64) Size {
	if main == Vertical {
		return Size{Width: crossLen, Height: mainLen}
	}
	return Size{Width: mainLen, Height: crossLen}
}

// PointAlong builds a point from main and cross offsets for a main axis.
func PointAlong(main Axis, mainOff, crossOff float64) Point {
	if main == Vertical {
		return Point{X: crossOff, Y: mainOff}
	}
	return Point{X: mainOff, Y: crossOff}
}
