// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"github.com/gogpu/uicore/scene"
)

// Headless keeps every presented scene in memory. It is the backend of
// tests and of hosts that consume scenes themselves.
type Headless struct {
	*Surface
	scenes []*scene.Scene
	fail   error
}

// NewHeadless creates a headless backend. Unlike drawing backends it
// accepts a zero viewport.
func NewHeadless(opts Options) *Headless {
	h := &Headless{}
	h.Surface = NewSurface("headless", opts, h)
	return h
}

// Attach implements Presenter.
func (h *Headless) Attach() error { return nil }

// Present implements Presenter.
func (h *Headless) Present(f Frame) error {
	if err := h.fail; err != nil {
		h.fail = nil
		return err
	}
	h.scenes = append(h.scenes, f.Scene)
	return nil
}

// FailNext makes the next Present return err.
func (h *Headless) FailNext(err error) { h.fail = err }

// Presented returns every scene presented so far, oldest first.
func (h *Headless) Presented() []*scene.Scene { return h.scenes }

func init() {
	Register("headless", 0, func(opts Options) (Backend, error) {
		return NewHeadless(opts), nil
	}, nil)
}
