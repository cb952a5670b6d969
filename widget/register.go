// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package widget

import (
	"reflect"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/tree"
	"github.com/gogpu/uicore/view"
)

// Register installs handlers for every built-in shape on d.
func Register(d *tree.Dispatcher) {
	tree.Register(d, func(b *tree.Build, parent tree.Handle, v TextView, e *env.Environment) tree.Handle {
		return b.Node(parent, v, e, func() tree.Node { return newTextNode(v) })
	})
	tree.Register(d, func(b *tree.Build, parent tree.Handle, v LabelView, e *env.Environment) tree.Handle {
		return b.Node(parent, v, e, func() tree.Node { return newLabelNode(v) })
	})
	tree.Register(d, func(b *tree.Build, parent tree.Handle, v FillView, e *env.Environment) tree.Handle {
		return b.Node(parent, v, e, func() tree.Node { return &fillNode{color: v.color, size: v.size} })
	})
	tree.Register(d, func(b *tree.Build, parent tree.Handle, v FillSourceView, e *env.Environment) tree.Handle {
		return b.Node(parent, v, e, func() tree.Node { return newFillSourceNode(v) })
	})
	tree.Register(d, func(b *tree.Build, parent tree.Handle, v StackView, e *env.Environment) tree.Handle {
		h := b.Node(parent, v, e, func() tree.Node {
			return &stackNode{axis: v.axis, spacing: v.spacing, align: v.align}
		})
		b.Children(h, e, v.children...)
		return h
	})
	tree.Register(d, func(b *tree.Build, parent tree.Handle, v ZStackView, e *env.Environment) tree.Handle {
		h := b.Node(parent, v, e, func() tree.Node { return zstackNode{} })
		b.Children(h, e, v.children...)
		return h
	})
	tree.Register(d, func(b *tree.Build, parent tree.Handle, v SpacerView, e *env.Environment) tree.Handle {
		return b.Node(parent, v, e, func() tree.Node { return &spacerNode{min: v.min} })
	})
	tree.Register(d, func(b *tree.Build, parent tree.Handle, v PaddingView, e *env.Environment) tree.Handle {
		h := b.Node(parent, v, e, func() tree.Node { return &paddingNode{insets: v.insets} })
		b.Children(h, e, v.content)
		return h
	})
	tree.Register(d, func(b *tree.Build, parent tree.Handle, v PlaceholderView, e *env.Environment) tree.Handle {
		return b.Node(parent, v, e, func() tree.Node { return &placeholderNode{label: v.label} })
	})
}

// RegisterPlaceholder returns a registration that draws native views of
// type V as placeholders. It lets a backend accept shapes it has no
// renderer for. An empty label uses V's type name.
func RegisterPlaceholder[V view.View](label string) tree.Registration {
	if label == "" {
		label = reflect.TypeFor[V]().String()
	}
	return func(d *tree.Dispatcher) {
		tree.Register(d, func(b *tree.Build, parent tree.Handle, v V, e *env.Environment) tree.Handle {
			return b.Node(parent, v, e, func() tree.Node { return &placeholderNode{label: label} })
		})
	}
}
