// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tree

import (
	"fmt"
	"reflect"

	"github.com/gogpu/uicore/dispatch"
	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/internal/logging"
	"github.com/gogpu/uicore/view"
)

// Dispatcher resolves views into tree slots. Handlers receive the build
// state, the parent handle, and return the handle they produced.
type Dispatcher = dispatch.Dispatcher[Build, Handle, Handle]

// Registration installs handlers on a Dispatcher.
type Registration func(d *Dispatcher)

// Register installs fn as the handler for native view type V.
func Register[V view.View](d *Dispatcher, fn func(b *Build, parent Handle, v V, e *env.Environment) Handle) {
	dispatch.Register(d, fn)
}

// Stats summarises one build or reconcile pass.
type Stats struct {
	Created int
	Reused  int
	Removed int
}

func (s Stats) String() string {
	return fmt.Sprintf("created=%d reused=%d removed=%d", s.Created, s.Reused, s.Removed)
}

// Build is the dispatcher state while a tree is being built. Handlers use
// it to emit nodes and to resolve their children.
type Build struct {
	tree     *Tree
	reuse    bool
	rootDone bool
	resolve  func(v view.View, e *env.Environment, parent Handle) Handle
	stats    Stats
}

// Tree returns the tree being built.
func (b *Build) Tree() *Tree { return b.tree }

// Node emits the node for native view v as the next child of parent, or
// as the root when parent is Nil.
//
// When reconciling, an existing node at the same position built from the
// same view type is updated in place if it implements Updater; otherwise
// newNode is called and the old subtree is discarded.
func (b *Build) Node(parent Handle, v view.View, e *env.Environment, newNode func() Node) Handle {
	t := b.tree
	typ := reflect.TypeOf(v)
	stretch := view.StretchOf(v)

	existing := Nil
	if parent.IsNil() {
		if b.rootDone {
			panic("tree: more than one root emitted")
		}
		existing = t.root
	} else if ps := t.slot(parent); ps.cursor < len(ps.children) {
		existing = ps.children[ps.cursor]
	}

	if b.reuse && !existing.IsNil() {
		s := t.slot(existing)
		if u, ok := s.node.(Updater); ok && s.typ == typ {
			r := u.Update(v, e)
			if s.stretch != stretch {
				s.stretch = stretch
				r |= DirtyLayout
			}
			t.MarkDirty(existing, r)
			b.advance(parent)
			b.stats.Reused++
			return existing
		}
	}

	h := t.alloc(newNode(), typ, stretch, parent)
	switch {
	case parent.IsNil():
		if !existing.IsNil() {
			b.stats.Removed += t.release(existing)
		}
		t.root = h
	case !existing.IsNil():
		ps := t.slot(parent)
		ps.children[ps.cursor] = h
		b.stats.Removed += t.release(existing)
	default:
		ps := t.slot(parent)
		ps.children = append(ps.children, h)
	}
	b.advance(parent)
	t.MarkDirty(h, DirtyLayout)
	b.stats.Created++
	return h
}

func (b *Build) advance(parent Handle) {
	if parent.IsNil() {
		b.rootDone = true
		return
	}
	b.tree.slot(parent).cursor++
}

// Children resolves views as the ordered children of h. Children left
// over from a previous build beyond the new count are removed.
func (b *Build) Children(h Handle, e *env.Environment, views ...view.View) {
	t := b.tree
	t.slot(h).cursor = 0
	for _, v := range views {
		b.resolve(v, e, h)
	}
	s := t.slot(h)
	if s.cursor >= len(s.children) {
		return
	}
	surplus := append([]Handle(nil), s.children[s.cursor:]...)
	s.children = s.children[:s.cursor]
	for _, c := range surplus {
		b.stats.Removed += t.release(c)
	}
	t.MarkDirty(h, DirtyLayout)
}

// Builder turns views into trees through a Dispatcher.
type Builder struct {
	d *Dispatcher
}

// NewBuilder creates a Builder and applies regs to its dispatcher.
// Registrations are frozen after the first build.
func NewBuilder(regs ...Registration) *Builder {
	d := dispatch.New[Build, Handle, Handle](Build{}, dispatch.WithLoggerFunc(logging.Logger))
	d.State().resolve = d.DispatchAny
	for _, r := range regs {
		r(d)
	}
	return &Builder{d: d}
}

// Dispatcher exposes the builder's dispatcher for further registration
// before the first build.
func (bl *Builder) Dispatcher() *Dispatcher { return bl.d }

// Build resolves v into a fresh tree. A nil view yields an empty tree.
func (bl *Builder) Build(e *env.Environment, v view.View) *Tree {
	t := New()
	bl.run(t, e, v, false)
	return t
}

// Reconcile updates t to describe v, reusing nodes whose position and view
// type are unchanged. Only nodes whose content changed, and their
// ancestors for layout changes, are left dirty.
func (bl *Builder) Reconcile(t *Tree, e *env.Environment, v view.View) Stats {
	return bl.run(t, e, v, true)
}

func (bl *Builder) run(t *Tree, e *env.Environment, v view.View, reuse bool) Stats {
	st := bl.d.State()
	st.tree = t
	st.reuse = reuse
	st.rootDone = false
	st.stats = Stats{}
	defer func() { st.tree = nil }()

	if view.Unwrap(v) == nil {
		st.stats.Removed = t.Len()
		t.Clear()
		return st.stats
	}
	bl.d.DispatchAny(v, e, Nil)

	logging.Logger().Debug("tree: built",
		"nodes", t.Len(),
		"reuse", reuse,
		"created", st.stats.Created,
		"reused", st.stats.Reused,
		"removed", st.stats.Removed,
	)
	return st.stats
}
