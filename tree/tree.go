// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tree holds render nodes in an arena and builds them from views.
//
// Nodes live in slots addressed by Handle. Parent and child links are
// handles, never pointers, so tearing down a tree is a single arena clear
// and a stale handle is detected by its generation instead of aliasing a
// recycled node.
package tree

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/gogpu/uicore/geom"
)

// Handle addresses a slot in a Tree. The zero value is Nil.
type Handle struct {
	index uint32
	gen   uint32
}

// Nil is the handle of no node.
var Nil Handle

// IsNil reports whether h is Nil.
func (h Handle) IsNil() bool { return h.gen == 0 }

func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

type entry struct {
	gen  uint32
	live bool

	node     Node
	typ      reflect.Type
	stretch  geom.Axes
	parent   Handle
	children []Handle
	dirty    DirtyReason

	// measurement cache, valid while the node is not layout-dirty
	measured bool
	proposal geom.Proposal
	size     geom.Size

	local geom.Rect
	frame geom.Rect

	// reconcile cursor over children
	cursor int
}

// Tree is an arena of render nodes with a distinguished root.
//
// A Tree is owned by one render pass at a time and is not safe for
// concurrent use.
type Tree struct {
	slots []entry
	free  []uint32
	root  Handle
	live  int
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Root returns the root handle, or Nil for an empty tree.
func (t *Tree) Root() Handle { return t.root }

// Len returns the number of live nodes.
func (t *Tree) Len() int { return t.live }

// Valid reports whether h refers to a live node of t.
func (t *Tree) Valid(h Handle) bool {
	if h.IsNil() || int(h.index) >= len(t.slots) {
		return false
	}
	s := &t.slots[h.index]
	return s.live && s.gen == h.gen
}

// slot returns the slot for h. The pointer is invalidated by alloc.
func (t *Tree) slot(h Handle) *entry {
	if !t.Valid(h) {
		panic(fmt.Sprintf("tree: stale or invalid handle %v", h))
	}
	return &t.slots[h.index]
}

// Node returns the node at h for mutation.
func (t *Tree) Node(h Handle) Node { return t.slot(h).node }

// Parent returns h's parent, or Nil for the root.
func (t *Tree) Parent(h Handle) Handle { return t.slot(h).parent }

// Children returns h's children in order. The slice must not be modified.
func (t *Tree) Children(h Handle) []Handle { return t.slot(h).children }

// Stretch returns the stretch hint recorded from h's view.
func (t *Tree) Stretch(h Handle) geom.Axes { return t.slot(h).stretch }

// Type returns the runtime type of the view h was built from.
func (t *Tree) Type(h Handle) reflect.Type { return t.slot(h).typ }

// Kind names the node at h.
func (t *Tree) Kind(h Handle) string {
	s := t.slot(h)
	if k, ok := s.node.(Kinder); ok {
		return k.Kind()
	}
	if s.typ != nil {
		return s.typ.Name()
	}
	return reflect.TypeOf(s.node).String()
}

// Frame returns h's absolute rectangle from the last layout.
func (t *Tree) Frame(h Handle) geom.Rect { return t.slot(h).frame }

// SetFrame records h's absolute rectangle.
func (t *Tree) SetFrame(h Handle, r geom.Rect) { t.slot(h).frame = r }

// Local returns h's rectangle relative to its parent.
func (t *Tree) Local(h Handle) geom.Rect { return t.slot(h).local }

// SetLocal records h's rectangle relative to its parent.
func (t *Tree) SetLocal(h Handle, r geom.Rect) { t.slot(h).local = r }

// Measurement returns the cached proposal and size from the last time h
// was measured.
func (t *Tree) Measurement(h Handle) (geom.Proposal, geom.Size, bool) {
	s := t.slot(h)
	return s.proposal, s.size, s.measured
}

// SetMeasurement caches h's size for proposal p.
func (t *Tree) SetMeasurement(h Handle, p geom.Proposal, size geom.Size) {
	s := t.slot(h)
	s.proposal, s.size, s.measured = p, size, true
}

// Dirty returns the reasons h is dirty.
func (t *Tree) Dirty(h Handle) DirtyReason { return t.slot(h).dirty }

// MarkDirty flags h. A layout reason also flags every ancestor, since
// their measurement depends on h's size.
func (t *Tree) MarkDirty(h Handle, r DirtyReason) {
	if r == Clean {
		return
	}
	s := t.slot(h)
	s.dirty |= r
	if r&DirtyLayout == 0 {
		return
	}
	for p := s.parent; !p.IsNil(); {
		ps := t.slot(p)
		ps.dirty |= DirtyLayout
		p = ps.parent
	}
}

// MarkAll flags every live node with r. It is used when something every
// node may read, such as the environment, has changed.
func (t *Tree) MarkAll(r DirtyReason) {
	for i := range t.slots {
		if t.slots[i].live {
			t.slots[i].dirty |= r
		}
	}
}

// ClearReason removes r from h's dirty set.
func (t *Tree) ClearReason(h Handle, r DirtyReason) {
	t.slot(h).dirty &^= r
}

// ClearDirty marks every node clean.
func (t *Tree) ClearDirty() {
	for i := range t.slots {
		t.slots[i].dirty = Clean
	}
}

// IsDirty reports whether any node is dirty.
func (t *Tree) IsDirty() bool {
	for i := range t.slots {
		if t.slots[i].live && t.slots[i].dirty != Clean {
			return true
		}
	}
	return false
}

// DirtyCount returns the number of dirty nodes.
func (t *Tree) DirtyCount() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].live && t.slots[i].dirty != Clean {
			n++
		}
	}
	return n
}

// Walk visits nodes in pre-order from the root. Returning false from fn
// skips the visited node's subtree.
func (t *Tree) Walk(fn func(h Handle, depth int) bool) {
	if t.root.IsNil() {
		return
	}
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(h Handle, depth int, fn func(Handle, int) bool) {
	if !fn(h, depth) {
		return
	}
	for _, c := range t.slot(h).children {
		t.walk(c, depth+1, fn)
	}
}

// PreOrder returns every handle in pre-order.
func (t *Tree) PreOrder() []Handle {
	out := make([]Handle, 0, t.live)
	t.Walk(func(h Handle, _ int) bool {
		out = append(out, h)
		return true
	})
	return out
}

// PollReactive asks every node to pull its reactive inputs and marks the
// nodes that changed. It returns the number of changed nodes.
func (t *Tree) PollReactive() int {
	n := 0
	for _, h := range t.PreOrder() {
		if r := t.slot(h).node.UpdateReactive(); r != Clean {
			t.MarkDirty(h, r)
			n++
		}
	}
	return n
}

// Clear removes every node, closing those that hold resources.
func (t *Tree) Clear() {
	t.free = t.free[:0]
	for i := len(t.slots) - 1; i >= 0; i-- {
		s := &t.slots[i]
		if s.live {
			closeNode(s.node)
		}
		// generations survive so old handles stay stale
		*s = entry{gen: s.gen}
		t.free = append(t.free, uint32(i))
	}
	t.root = Nil
	t.live = 0
}

func (t *Tree) alloc(n Node, typ reflect.Type, stretch geom.Axes, parent Handle) Handle {
	var idx uint32
	if k := len(t.free); k > 0 {
		idx = t.free[k-1]
		t.free = t.free[:k-1]
	} else {
		t.slots = append(t.slots, entry{})
		idx = uint32(len(t.slots) - 1)
	}
	s := &t.slots[idx]
	gen := s.gen + 1
	*s = entry{
		gen:     gen,
		live:    true,
		node:    n,
		typ:     typ,
		stretch: stretch,
		parent:  parent,
	}
	t.live++
	return Handle{index: idx, gen: gen}
}

// release frees h and its subtree without touching h's parent.
func (t *Tree) release(h Handle) int {
	s := t.slot(h)
	children := s.children
	closeNode(s.node)
	gen := s.gen
	*s = entry{gen: gen}
	t.free = append(t.free, h.index)
	t.live--
	n := 1
	for _, c := range children {
		n += t.release(c)
	}
	return n
}

func closeNode(n Node) {
	if c, ok := n.(io.Closer); ok {
		_ = c.Close()
	}
}

// ErrCorrupt is returned by Check when links are inconsistent.
var ErrCorrupt = errors.New("tree: corrupt links")

// Check verifies that every live non-root node is listed exactly once by
// its parent, the root has no parent, and every node is reachable.
func (t *Tree) Check() error {
	if t.root.IsNil() {
		if t.live != 0 {
			return fmt.Errorf("%w: %d live nodes without a root", ErrCorrupt, t.live)
		}
		return nil
	}
	if !t.Valid(t.root) {
		return fmt.Errorf("%w: invalid root %v", ErrCorrupt, t.root)
	}
	if p := t.slot(t.root).parent; !p.IsNil() {
		return fmt.Errorf("%w: root has parent %v", ErrCorrupt, p)
	}
	seen := make(map[Handle]bool, t.live)
	var visit func(h Handle) error
	visit = func(h Handle) error {
		if seen[h] {
			return fmt.Errorf("%w: %v reached twice", ErrCorrupt, h)
		}
		seen[h] = true
		for _, c := range t.slot(h).children {
			if !t.Valid(c) {
				return fmt.Errorf("%w: %v lists stale child %v", ErrCorrupt, h, c)
			}
			if p := t.slot(c).parent; p != h {
				return fmt.Errorf("%w: child %v has parent %v, want %v", ErrCorrupt, c, p, h)
			}
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(t.root); err != nil {
		return err
	}
	if len(seen) != t.live {
		return fmt.Errorf("%w: %d reachable of %d live", ErrCorrupt, len(seen), t.live)
	}
	return nil
}
