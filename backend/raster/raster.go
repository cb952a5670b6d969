// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster is a CPU backend that rasterizes scenes into an
// *image.RGBA with golang.org/x/image. Importing it registers the
// "raster" backend.
//
// When Options.Writer is set every presented frame is also encoded to it
// as PNG. Frames are drawn into a back canvas and only become visible
// through Image once the encode succeeded.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/gogpu/uicore/backend"
)

// Backend rasterizes presented scenes.
type Backend struct {
	*backend.Surface
	opts  backend.Options
	front *Canvas // last presented frame
	back  *Canvas
	out   io.Writer
}

// New creates a raster backend. The canvases are allocated on Mount.
func New(opts backend.Options) (*Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b := &Backend{opts: opts, out: opts.Writer}
	b.Surface = backend.NewSurface("raster", opts, b)
	return b, nil
}

// Attach implements backend.Presenter.
func (b *Backend) Attach() error {
	bg := b.opts.BackgroundColor()
	front, err := NewCanvas(b.opts.Width, b.opts.Height, bg)
	if err != nil {
		return err
	}
	back, err := NewCanvas(b.opts.Width, b.opts.Height, bg)
	if err != nil {
		_ = front.Close()
		return err
	}
	b.front, b.back = front, back
	return nil
}

// Present implements backend.Presenter.
func (b *Backend) Present(f backend.Frame) error {
	if err := b.back.Draw(f.Scene); err != nil {
		return err
	}
	if b.out != nil {
		if err := png.Encode(b.out, b.back.Image()); err != nil {
			return fmt.Errorf("raster: encode png: %w", err)
		}
	}
	b.front, b.back = b.back, b.front
	return nil
}

// Image returns the last rasterized frame, or nil before Mount.
func (b *Backend) Image() *image.RGBA {
	if b.front == nil {
		return nil
	}
	return b.front.Image()
}

// Close releases font faces. It is idempotent.
func (b *Backend) Close() error {
	if b.front == nil {
		return nil
	}
	err := errors.Join(b.front.Close(), b.back.Close())
	b.front, b.back = nil, nil
	return err
}

func init() {
	backend.Register("raster", 50, func(opts backend.Options) (backend.Backend, error) {
		return New(opts)
	}, nil)
}
