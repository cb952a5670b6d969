// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uicore

import (
	"github.com/gogpu/uicore/tree"
	"github.com/gogpu/uicore/widget"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r := uicore.New(b,
//	    uicore.WithRegistrations(widget.RegisterPlaceholder[chart.View]("chart")),
//	)
type Option func(*options)

type options struct {
	fullRebuild bool
	regs        []tree.Registration
}

func defaultOptions() options {
	return options{
		regs: []tree.Registration{widget.Register},
	}
}

// WithFullRebuild makes every RenderView build a fresh tree instead of
// reconciling the previous one. Every node is then dirty on every frame.
func WithFullRebuild() Option {
	return func(o *options) {
		o.fullRebuild = true
	}
}

// WithRegistrations adds dispatcher registrations after the built-in
// widgets. Registering a view type twice panics.
func WithRegistrations(regs ...tree.Registration) Option {
	return func(o *options) {
		o.regs = append(o.regs, regs...)
	}
}
