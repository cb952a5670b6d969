// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/uicore/scene"
)

// Canvas rasterizes scenes into an RGBA image.
type Canvas struct {
	img   *image.RGBA
	bg    *image.Uniform
	font  *opentype.Font
	faces map[float64]font.Face

	// Skipped counts commands the last Draw could not rasterize.
	Skipped int
}

var (
	regularOnce sync.Once
	regular     *opentype.Font
	regularErr  error
)

func goRegular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// NewCanvas allocates a w×h canvas cleared to bg on every Draw.
func NewCanvas(w, h int, bg color.Color) (*Canvas, error) {
	f, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		bg:    image.NewUniform(scene.Resolve(bg)),
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// Image returns the canvas pixels. The image is reused across draws.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Draw clears the canvas and rasterizes s in order.
func (c *Canvas) Draw(s *scene.Scene) error {
	b := c.img.Bounds()
	draw.Draw(c.img, b, c.bg, image.Point{}, draw.Src)
	c.Skipped = 0
	for _, cmd := range s.All() {
		switch cmd := cmd.(type) {
		case scene.SolidRect:
			r := cmd.Rect.Image().Intersect(b)
			if r.Empty() {
				continue
			}
			draw.Draw(c.img, r, image.NewUniform(cmd.Color), image.Point{}, draw.Over)
		case scene.Text:
			if err := c.text(cmd); err != nil {
				return err
			}
		default:
			// placeholders carry no geometry
			c.Skipped++
		}
	}
	return nil
}

func (c *Canvas) text(t scene.Text) error {
	if t.Content == "" || t.Size <= 0 {
		return nil
	}
	face, err := c.face(t.Size)
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(t.Color),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(t.Origin.X * 64),
			Y: fixed.Int26_6(t.Origin.Y*64) + face.Metrics().Ascent,
		},
	}
	d.DrawString(t.Content)
	return nil
}

func (c *Canvas) face(size float64) (font.Face, error) {
	if f, ok := c.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: face at %gpx: %w", size, err)
	}
	c.faces[size] = f
	return f, nil
}

// Close releases cached font faces.
func (c *Canvas) Close() error {
	for size, f := range c.faces {
		_ = f.Close()
		delete(c.faces, size)
	}
	return nil
}
