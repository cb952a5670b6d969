// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu presents scenes as a texture on a host GPU device.
//
// Scenes are rasterized on the CPU by the raster canvas, converted to the
// host surface's texture format and uploaded through the host's texture
// creator. The host owns the device and the swapchain; this backend only
// keeps one texture up to date. Importing the package registers the "gpu"
// backend, which needs a *Host in Options.Host.
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/uicore/backend"
	"github.com/gogpu/uicore/backend/raster"
)

// TextureCreator creates a texture from tightly packed pixels in the
// surface format.
type TextureCreator interface {
	NewTextureFromRGBA(width, height int, data []byte) (any, error)
}

// Host is what the gpu backend needs from its embedder.
type Host struct {
	Provider gpucontext.DeviceProvider
	Creator  TextureCreator
}

// textureUpdater is implemented by textures that accept new pixels in
// place.
type textureUpdater interface {
	UpdateData(data []byte)
}

type textureDestroyer interface {
	Destroy()
}

// ErrUnsupportedFormat is returned when the surface format is neither
// RGBA8 nor BGRA8.
var ErrUnsupportedFormat = errors.New("gpu: unsupported surface format")

// Backend uploads each presented frame to a texture.
type Backend struct {
	*backend.Surface
	opts    backend.Options
	host    *Host
	canvas  *raster.Canvas
	format  gputypes.TextureFormat
	staging []byte
	texture any
	uploads int
}

// New creates a gpu backend. opts.Host must be a *Host with a provider
// and a texture creator.
func New(opts backend.Options) (*Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	host, ok := opts.Host.(*Host)
	if !ok || host == nil || host.Provider == nil || host.Creator == nil {
		return nil, fmt.Errorf("%w: gpu needs *gpu.Host, got %T", backend.ErrNoHost, opts.Host)
	}
	b := &Backend{opts: opts, host: host}
	b.Surface = backend.NewSurface("gpu", opts, b)
	return b, nil
}

// Attach implements backend.Presenter.
func (b *Backend) Attach() error {
	switch f := b.host.Provider.SurfaceFormat(); f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		b.format = f
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	c, err := raster.NewCanvas(b.opts.Width, b.opts.Height, b.opts.BackgroundColor())
	if err != nil {
		return err
	}
	b.canvas = c
	return nil
}

// Present implements backend.Presenter.
func (b *Backend) Present(f backend.Frame) error {
	if err := b.canvas.Draw(f.Scene); err != nil {
		return err
	}
	data := b.pixels()

	if b.texture != nil {
		if u, ok := b.texture.(textureUpdater); ok {
			u.UpdateData(data)
			b.uploads++
			return nil
		}
	}
	// the previous texture stays current until its replacement exists
	tex, err := b.host.Creator.NewTextureFromRGBA(b.opts.Width, b.opts.Height, data)
	if err != nil {
		return fmt.Errorf("gpu: create texture: %w", err)
	}
	b.destroyTexture()
	b.texture = tex
	b.uploads++
	return nil
}

// pixels returns the canvas in the surface format.
func (b *Backend) pixels() []byte {
	pix := b.canvas.Image().Pix
	if b.format != gputypes.TextureFormatBGRA8Unorm {
		return pix
	}
	if cap(b.staging) < len(pix) {
		b.staging = make([]byte, len(pix))
	}
	dst := b.staging[:len(pix)]
	for i := 0; i+3 < len(pix); i += 4 {
		dst[i+0] = pix[i+2]
		dst[i+1] = pix[i+1]
		dst[i+2] = pix[i+0]
		dst[i+3] = pix[i+3]
	}
	return dst
}

// Texture returns the host texture holding the last frame, or nil.
func (b *Backend) Texture() any { return b.texture }

// Format returns the negotiated surface format.
func (b *Backend) Format() gputypes.TextureFormat { return b.format }

// Uploads returns how many frames reached the device.
func (b *Backend) Uploads() int { return b.uploads }

func (b *Backend) destroyTexture() {
	if d, ok := b.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	b.texture = nil
}

// Close destroys the texture and releases the canvas. It is idempotent.
func (b *Backend) Close() error {
	b.destroyTexture()
	if b.canvas != nil {
		_ = b.canvas.Close()
		b.canvas = nil
	}
	return nil
}

func init() {
	backend.Register("gpu", 100, func(opts backend.Options) (backend.Backend, error) {
		return New(opts)
	}, nil)
}
