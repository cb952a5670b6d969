// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package term presents scenes on a character-cell terminal.
//
// The viewport stays in logical pixels; each cell covers CellSize pixels.
// Solid rectangles paint the background of every cell whose centre they
// cover, and text is written from the cell containing its origin. East
// Asian wide runes take two cells. Frames are written to Options.Writer
// styled with lipgloss; when the writer is a terminal the screen is
// cleared first. Importing the package registers the "term" backend.
package term

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/width"

	"github.com/gogpu/uicore/backend"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/scene"
)

// CellSize is the pixel size of one terminal cell. Pass it as
// Options.Host to override DefaultCellSize.
type CellSize struct {
	Width, Height float64
}

// DefaultCellSize approximates a 17px monospace font.
var DefaultCellSize = CellSize{Width: 8, Height: 20}

const clearScreen = "\x1b[H\x1b[2J"

type cell struct {
	r    rune
	fg   color.NRGBA
	bg   color.NRGBA
	tail bool // right half of a wide rune
}

// Backend renders to a cell grid.
type Backend struct {
	*backend.Surface
	opts  backend.Options
	size  CellSize
	cols  int
	rows  int
	cells []cell
	out   io.Writer
	tty   bool
}

// New creates a term backend.
func New(opts backend.Options) (*Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	size := DefaultCellSize
	switch h := opts.Host.(type) {
	case nil:
	case CellSize:
		size = h
	case *CellSize:
		size = *h
	default:
		return nil, fmt.Errorf("%w: term takes a CellSize host, got %T", backend.ErrNoHost, opts.Host)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: cell %gx%g", backend.ErrInvalidDimensions, size.Width, size.Height)
	}
	b := &Backend{opts: opts, size: size, out: opts.Writer}
	b.Surface = backend.NewSurface("term", opts, b)
	return b, nil
}

// Attach implements backend.Presenter.
func (b *Backend) Attach() error {
	b.cols = max(1, int(float64(b.opts.Width)/b.size.Width))
	b.rows = max(1, int(float64(b.opts.Height)/b.size.Height))
	b.cells = make([]cell, b.cols*b.rows)
	if f, ok := b.out.(*os.File); ok {
		fd := f.Fd()
		b.tty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return nil
}

// Present implements backend.Presenter.
func (b *Backend) Present(f backend.Frame) error {
	b.clear(b.opts.BackgroundColor())
	for _, cmd := range f.Scene.All() {
		switch cmd := cmd.(type) {
		case scene.SolidRect:
			b.fill(cmd.Rect, cmd.Color)
		case scene.Text:
			b.write(cmd)
		}
	}
	if b.out == nil {
		return nil
	}
	var sb strings.Builder
	if b.tty {
		sb.WriteString(clearScreen)
	}
	sb.WriteString(b.styled())
	sb.WriteByte('\n')
	if _, err := io.WriteString(b.out, sb.String()); err != nil {
		return fmt.Errorf("term: write frame: %w", err)
	}
	return nil
}

// Grid returns the grid dimensions in cells.
func (b *Backend) Grid() (cols, rows int) { return b.cols, b.rows }

func (b *Backend) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= b.cols || row >= b.rows {
		return nil
	}
	return &b.cells[row*b.cols+col]
}

func (b *Backend) clear(bg color.NRGBA) {
	for i := range b.cells {
		b.cells[i] = cell{r: ' ', bg: bg}
	}
}

func (b *Backend) fill(r geom.Rect, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	for row := 0; row < b.rows; row++ {
		cy := (float64(row) + 0.5) * b.size.Height
		if cy < r.Min.Y || cy >= r.Max.Y {
			continue
		}
		for col := 0; col < b.cols; col++ {
			cx := (float64(col) + 0.5) * b.size.Width
			if cx >= r.Min.X && cx < r.Max.X {
				b.cells[row*b.cols+col].bg = c
			}
		}
	}
}

func (b *Backend) write(t scene.Text) {
	col := int(t.Origin.X / b.size.Width)
	row := int(t.Origin.Y / b.size.Height)
	for _, r := range t.Content {
		w := runeWidth(r)
		if w == 0 {
			continue
		}
		c := b.at(col, row)
		if c == nil || (w == 2 && b.at(col+1, row) == nil) {
			return
		}
		b.release(col, row)
		if w == 2 {
			b.release(col+1, row)
		}
		*c = cell{r: r, fg: t.Color, bg: c.bg}
		if w == 2 {
			tail := b.at(col+1, row)
			*tail = cell{tail: true, fg: t.Color, bg: tail.bg}
		}
		col += w
	}
}

// release blanks the other half of any wide rune occupying the cell, so
// overwriting one half never leaves the other behind.
func (b *Backend) release(col, row int) {
	c := b.at(col, row)
	if c.tail {
		if head := b.at(col-1, row); head != nil {
			*head = cell{r: ' ', bg: head.bg}
		}
		*c = cell{r: ' ', bg: c.bg}
		return
	}
	if next := b.at(col+1, row); next != nil && next.tail {
		*next = cell{r: ' ', bg: next.bg}
	}
}

// runeWidth returns the number of cells r occupies.
func runeWidth(r rune) int {
	switch {
	case r < 0x20 || r == 0x7f:
		return 0
	case r >= 0x300 && r <= 0x36f:
		// combining diacritics
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// String returns the grid as plain text, one line per row, trailing
// spaces trimmed.
func (b *Backend) String() string {
	lines := make([]string, b.rows)
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		sb.Reset()
		for col := 0; col < b.cols; col++ {
			if c := b.cells[row*b.cols+col]; !c.tail {
				sb.WriteRune(c.r)
			}
		}
		lines[row] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// styled renders rows as runs of identically styled cells.
func (b *Backend) styled() string {
	lines := make([]string, b.rows)
	for row := 0; row < b.rows; row++ {
		var line, run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(style(cur).Render(run.String()))
			run.Reset()
		}
		for col := 0; col < b.cols; col++ {
			c := b.cells[row*b.cols+col]
			if c.tail {
				continue
			}
			if run.Len() > 0 && (c.fg != cur.fg || c.bg != cur.bg) {
				flush()
			}
			cur = c
			run.WriteRune(c.r)
		}
		flush()
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

func style(c cell) lipgloss.Style {
	s := lipgloss.NewStyle().Background(lipgloss.Color(hex(c.bg)))
	if c.fg.A > 0 {
		s = s.Foreground(lipgloss.Color(hex(c.fg)))
	}
	return s
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func init() {
	backend.Register("term", 20, func(opts backend.Options) (backend.Backend, error) {
		return New(opts)
	}, func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	})
}
