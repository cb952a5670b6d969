// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"iter"
	"slices"
	"strings"

	"github.com/gogpu/uicore/env"
)

// Recorder is the paint-time context handed to render nodes. It wraps
// the environment and an append-only command buffer.
//
// The Recorder performs no traversal; callers visit nodes in layout
// pre-order so that command order matches tree order.
type Recorder struct {
	env  *env.Environment
	cmds []Command
}

// NewRecorder returns an empty recorder bound to e.
func NewRecorder(e *env.Environment) *Recorder {
	return &Recorder{env: e, cmds: make([]Command, 0, 32)}
}

// Env returns the environment paint code resolves styles from.
func (r *Recorder) Env() *env.Environment {
	return r.env
}

// Push appends cmd. Later commands draw over earlier ones.
func (r *Recorder) Push(cmd Command) {
	if cmd == nil {
		return
	}
	r.cmds = append(r.cmds, cmd)
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.cmds)
}

// Sub returns an empty recorder sharing r's environment. Backends use it
// to capture a single node's commands.
func (r *Recorder) Sub() *Recorder {
	return &Recorder{env: r.env}
}

// Append moves every command of s onto the end of r.
func (r *Recorder) Append(s *Scene) {
	if s == nil {
		return
	}
	r.cmds = append(r.cmds, s.cmds...)
}

// Finish freezes the buffer into a Scene and resets the recorder.
func (r *Recorder) Finish() *Scene {
	s := &Scene{cmds: r.cmds}
	r.cmds = nil
	return s
}

// Scene is the immutable output of one paint pass. It shares nothing with
// the tree that produced it and may be handed to other goroutines.
type Scene struct {
	cmds []Command
}

// New builds a Scene from cmds. The slice is copied.
func New(cmds ...Command) *Scene {
	return &Scene{cmds: slices.Clone(cmds)}
}

// Len returns the number of commands.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cmds)
}

// At returns the i-th command.
func (s *Scene) At(i int) Command {
	return s.cmds[i]
}

// Commands returns a copy of the command list.
func (s *Scene) Commands() []Command {
	if s == nil {
		return nil
	}
	return slices.Clone(s.cmds)
}

// All iterates the commands in compositing order.
func (s *Scene) All() iter.Seq2[int, Command] {
	return func(yield func(int, Command) bool) {
		if s == nil {
			return
		}
		for i, c := range s.cmds {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Count returns the number of commands of kind k.
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, c := range s.All() {
		if c.Kind() == k {
			n++
		}
	}
	return n
}

// Equal reports whether s and o hold the same commands in the same order.
func (s *Scene) Equal(o *Scene) bool {
	if s.Len() != o.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if s.cmds[i] != o.cmds[i] {
			return false
		}
	}
	return true
}

func (s *Scene) String() string {
	var b strings.Builder
	for i, c := range s.All() {
		if i > 0 {
			b.WriteByte('\n')
		}
		if str, ok := c.(interface{ String() string }); ok {
			b.WriteString(str.String())
		} else {
			b.WriteString(c.Kind().String())
		}
	}
	return b.String()
}
