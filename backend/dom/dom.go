// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dom presents render trees as an HTML element tree.
//
// Mount appends a root <div> to the host node. Every frame a fresh root is
// built detached and swapped into the host once it has been written to
// Options.Writer, so a failed write leaves the previous frame in place.
// Each render node becomes an absolutely positioned
// <div> nested like the tree, styled from the commands the node paints
// into its own subtree-scoped recorder. The host is any *html.Node from
// golang.org/x/net/html, so the same backend drives a parsed document in
// tests and a bridged browser document in a WASM host. Importing the
// package registers the "dom" backend.
package dom

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gogpu/uicore/backend"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/scene"
	"github.com/gogpu/uicore/tree"
)

// Backend renders into an HTML node.
type Backend struct {
	*backend.Surface
	opts backend.Options
	host *html.Node
	root *html.Node
	out  io.Writer
}

// New creates a dom backend. opts.Host must be an element *html.Node.
func New(opts backend.Options) (*Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	host, ok := opts.Host.(*html.Node)
	if !ok || host == nil || host.Type != html.ElementNode {
		return nil, fmt.Errorf("%w: dom needs an element *html.Node, got %T", backend.ErrNoHost, opts.Host)
	}
	b := &Backend{opts: opts, host: host, out: opts.Writer}
	b.Surface = backend.NewSurface("dom", opts, b)
	return b, nil
}

// Attach implements backend.Presenter.
func (b *Backend) Attach() error {
	b.root = b.newRoot()
	b.host.AppendChild(b.root)
	return nil
}

func (b *Backend) newRoot() *html.Node {
	return element(atom.Div,
		html.Attribute{Key: "data-uicore", Val: "root"},
		html.Attribute{Key: "style", Val: style{
			"position":   "relative",
			"overflow":   "hidden",
			"width":      px(float64(b.opts.Width)),
			"height":     px(float64(b.opts.Height)),
			"background": scene.Hex(b.opts.BackgroundColor()),
		}.String()},
	)
}

// Present implements backend.Presenter.
func (b *Backend) Present(f backend.Frame) error {
	next := b.newRoot()
	t := f.Tree
	if root := t.Root(); !root.IsNil() {
		rec := scene.NewRecorder(f.Env)
		next.AppendChild(b.emit(t, root, rec))
	}
	if b.out != nil {
		if err := html.Render(b.out, next); err != nil {
			return fmt.Errorf("dom: render html: %w", err)
		}
	}
	b.host.InsertBefore(next, b.root)
	b.host.RemoveChild(b.root)
	b.root = next
	return nil
}

// Root returns the element the backend currently owns inside the host.
// It is replaced on every presented frame.
func (b *Backend) Root() *html.Node { return b.root }

// emit builds the element for h and its descendants.
func (b *Backend) emit(t *tree.Tree, h tree.Handle, rec *scene.Recorder) *html.Node {
	local := t.Local(h)
	st := style{
		"position": "absolute",
		"left":     px(local.Min.X),
		"top":      px(local.Min.Y),
		"width":    px(local.Dx()),
		"height":   px(local.Dy()),
	}
	el := element(atom.Div, html.Attribute{Key: "data-kind", Val: t.Kind(h)})

	sub := rec.Sub()
	frame := t.Frame(h)
	t.Node(h).Paint(sub, frame)
	for _, cmd := range sub.Finish().All() {
		switch cmd := cmd.(type) {
		case scene.SolidRect:
			if cmd.Rect == frame {
				st["background"] = scene.Hex(cmd.Color)
				continue
			}
			r := cmd.Rect.Translate(geom.Point{}.Sub(frame.Min))
			el.AppendChild(element(atom.Div, html.Attribute{Key: "style", Val: style{
				"position":   "absolute",
				"left":       px(r.Min.X),
				"top":        px(r.Min.Y),
				"width":      px(r.Dx()),
				"height":     px(r.Dy()),
				"background": scene.Hex(cmd.Color),
			}.String()}))
		case scene.Text:
			st["color"] = scene.Hex(cmd.Color)
			st["font-size"] = px(cmd.Size)
			st["white-space"] = "pre"
			el.AppendChild(&html.Node{Type: html.TextNode, Data: cmd.Content})
		case scene.Placeholder:
			el.Attr = append(el.Attr, html.Attribute{Key: "data-placeholder", Val: cmd.Label})
			st["outline"] = "1px dashed #888888"
			el.AppendChild(&html.Node{Type: html.TextNode, Data: cmd.Label})
		}
	}
	el.Attr = append(el.Attr, html.Attribute{Key: "style", Val: st.String()})

	for _, c := range t.Children(h) {
		el.AppendChild(b.emit(t, c, rec))
	}
	return el
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

// style is an inline CSS declaration block rendered in a stable order.
type style map[string]string

var styleOrder = []string{
	"position", "left", "top", "width", "height", "overflow",
	"background", "color", "font-size", "white-space", "outline",
}

func (s style) String() string {
	var sb strings.Builder
	for _, k := range styleOrder {
		v, ok := s[k]
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(k)
		sb.WriteByte(':')
		sb.WriteString(v)
	}
	return sb.String()
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func init() {
	backend.Register("dom", 20, func(opts backend.Options) (backend.Backend, error) {
		return New(opts)
	}, nil)
}
