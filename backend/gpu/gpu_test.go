// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/uicore/backend"
	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/tree"
	"github.com/gogpu/uicore/widget"
)

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

type mockProvider struct {
	format gputypes.TextureFormat
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

type mockTexture struct {
	data      []byte
	updated   int
	destroyed bool
}

func (m *mockTexture) UpdateData(data []byte) {
	m.data = append(m.data[:0], data...)
	m.updated++
}

func (m *mockTexture) Destroy() { m.destroyed = true }

type mockCreator struct {
	textures []*mockTexture
	fail     error
}

func (m *mockCreator) NewTextureFromRGBA(width, height int, data []byte) (any, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	tex := &mockTexture{data: append([]byte(nil), data...)}
	m.textures = append(m.textures, tex)
	return tex, nil
}

func mounted(t *testing.T, format gputypes.TextureFormat, c *mockCreator) *Backend {
	t.Helper()
	b, err := New(backend.Options{
		Width:  8,
		Height: 8,
		Host:   &Host{Provider: &mockProvider{format: format}, Creator: c},
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if err := b.Mount(); err != nil {
		t.Fatalf("Mount() = %v", err)
	}
	return b
}

func TestNewNeedsHost(t *testing.T) {
	_, err := New(backend.Options{Width: 8, Height: 8})
	if !errors.Is(err, backend.ErrNoHost) {
		t.Errorf("New(no host) = %v, want ErrNoHost", err)
	}
}

func TestPresentUploadsBGRA(t *testing.T) {
	c := &mockCreator{}
	b := mounted(t, gputypes.TextureFormatBGRA8Unorm, c)
	defer b.Close()

	e := env.New()
	bl := tree.NewBuilder(widget.Register)
	tr := bl.Build(e, widget.Fill(color.NRGBA{R: 0xff, A: 0xff}))
	if res, err := b.Render(tr, e); err != nil || res != backend.Presented {
		t.Fatalf("Render() = %v, %v", res, err)
	}
	if len(c.textures) != 1 {
		t.Fatalf("created %d textures, want 1", len(c.textures))
	}
	px := c.textures[0].data[:4]
	if px[0] != 0 || px[2] != 0xff || px[3] != 0xff {
		t.Errorf("first pixel = %v, want BGRA red", px)
	}

	bl.Reconcile(tr, e, widget.Fill(color.NRGBA{B: 0xff, A: 0xff}))
	if _, err := b.Render(tr, e); err != nil {
		t.Fatal(err)
	}
	if len(c.textures) != 1 || c.textures[0].updated != 1 {
		t.Errorf("second frame: %d textures, %d updates", len(c.textures), c.textures[0].updated)
	}
	if px := c.textures[0].data[:4]; px[0] != 0xff || px[2] != 0 {
		t.Errorf("updated pixel = %v, want BGRA blue", px)
	}
	if b.Uploads() != 2 {
		t.Errorf("Uploads() = %d, want 2", b.Uploads())
	}

	tex := c.textures[0]
	_ = b.Close()
	if !tex.destroyed {
		t.Error("Close did not destroy the texture")
	}
}

func TestPresentRGBAIsUnswizzled(t *testing.T) {
	c := &mockCreator{}
	b := mounted(t, gputypes.TextureFormatRGBA8Unorm, c)
	defer b.Close()

	e := env.New()
	tr := tree.NewBuilder(widget.Register).Build(e, widget.Fill(color.NRGBA{R: 0xff, A: 0xff}))
	if _, err := b.Render(tr, e); err != nil {
		t.Fatal(err)
	}
	if px := c.textures[0].data[:4]; px[0] != 0xff || px[2] != 0 {
		t.Errorf("first pixel = %v, want RGBA red", px)
	}
}

func TestCreateFailureKeepsScene(t *testing.T) {
	lost := errors.New("device lost")
	c := &mockCreator{fail: lost}
	b := mounted(t, gputypes.TextureFormatRGBA8Unorm, c)
	defer b.Close()

	e := env.New()
	tr := tree.NewBuilder(widget.Register).Build(e, widget.Fill(color.Black))
	if _, err := b.Render(tr, e); !errors.Is(err, lost) {
		t.Errorf("Render() = %v, want device lost", err)
	}
	if b.Scene() != nil {
		t.Error("failed upload produced a last good scene")
	}
}
