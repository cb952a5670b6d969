// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads renderer settings from YAML.
//
// A minimal file:
//
//	backend: raster
//	viewport:
//	  width: 800
//	  height: 600
//	log_level: info
//	theme:
//	  foreground: "#202124"
//	  background: "#ffffff"
//	text:
//	  size: 15
//
// Omitted fields keep the values from Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/uicore/backend"
	"github.com/gogpu/uicore/backend/term"
	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/text"
	"github.com/gogpu/uicore/widget"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the root of a configuration file.
type Config struct {
	Backend  string   `yaml:"backend"`
	Viewport Viewport `yaml:"viewport"`
	LogLevel string   `yaml:"log_level"`
	Theme    Theme    `yaml:"theme"`
	Text     Text     `yaml:"text"`
	Terminal Terminal `yaml:"terminal"`
}

// Viewport is the root proposal in logical pixels.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Theme colours are "#rrggbb" or "#rrggbbaa". Empty keeps the default.
type Theme struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Accent     string `yaml:"accent"`
}

// Text sets default text metrics.
type Text struct {
	Size       float64 `yaml:"size"`
	LineHeight float64 `yaml:"line_height"`
}

// Terminal sets the pixel size of a character cell for the term backend.
type Terminal struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:  "",
		Viewport: Viewport{Width: 800, Height: 600},
		LogLevel: "warn",
		Text:     Text{Size: text.DefaultSize, LineHeight: text.DefaultLineHeight},
		Terminal: Terminal{
			CellWidth:  term.DefaultCellSize.Width,
			CellHeight: term.DefaultCellSize.Height,
		},
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks ranges and colour syntax.
func (c *Config) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: viewport %dx%d", ErrInvalid, c.Viewport.Width, c.Viewport.Height))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.theme(); err != nil {
		errs = append(errs, err)
	}
	if c.Text.Size < 0 || c.Text.LineHeight < 0 {
		errs = append(errs, fmt.Errorf("%w: negative text metrics", ErrInvalid))
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: terminal cell %gx%g", ErrInvalid, c.Terminal.CellWidth, c.Terminal.CellHeight))
	}
	return errors.Join(errs...)
}

// Level parses LogLevel. Empty means warn.
func (c *Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// Environment returns a child of parent seeded with the theme and text
// metrics. A nil parent starts from an empty environment.
func (c *Config) Environment(parent *env.Environment) (*env.Environment, error) {
	th, err := c.theme()
	if err != nil {
		return nil, err
	}
	e := parent
	if e == nil {
		e = env.New()
	}
	e = env.With(e, th)
	if c.Text.Size > 0 {
		e = env.With(e, text.Size(c.Text.Size))
	}
	if c.Text.LineHeight > 0 {
		e = env.With(e, text.LineHeight(c.Text.LineHeight))
	}
	return e, nil
}

// BackendOptions returns backend options for the viewport. The term
// backend gets the configured cell size as its host.
func (c *Config) BackendOptions(w io.Writer) backend.Options {
	th, _ := c.theme()
	opts := backend.Options{
		Width:      c.Viewport.Width,
		Height:     c.Viewport.Height,
		Writer:     w,
		Background: th.Background,
	}
	if c.Backend == "term" {
		opts.Host = term.CellSize{Width: c.Terminal.CellWidth, Height: c.Terminal.CellHeight}
	}
	return opts
}

func (c *Config) theme() (widget.Theme, error) {
	th := widget.DefaultTheme()
	for _, f := range []struct {
		name string
		src  string
		dst  *color.NRGBA
	}{
		{"foreground", c.Theme.Foreground, &th.Foreground},
		{"background", c.Theme.Background, &th.Background},
		{"accent", c.Theme.Accent, &th.Accent},
	} {
		if f.src == "" {
			continue
		}
		col, err := ParseColor(f.src)
		if err != nil {
			return th, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		*f.dst = col
	}
	return th, nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	h, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: colour %q must start with #", ErrInvalid, s)
	}
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: colour %q", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: colour %q", ErrInvalid, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
