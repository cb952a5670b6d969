// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/uicore/env"
	"github.com/gogpu/uicore/geom"
	"github.com/gogpu/uicore/internal/logging"
	"github.com/gogpu/uicore/layout"
	"github.com/gogpu/uicore/scene"
	"github.com/gogpu/uicore/tree"
)

// Frame is one painted frame handed to a Presenter.
type Frame struct {
	// Tree has been laid out; frames and local rects are current.
	Tree *tree.Tree

	// Env is the environment the frame was painted with.
	Env *env.Environment

	// Scene is the pre-order paint of Tree.
	Scene *scene.Scene
}

// Presenter is the host-specific half of a backend.
type Presenter interface {
	// Attach connects to the host. It is called once, by Mount.
	Attach() error

	// Present shows a frame.
	Present(f Frame) error
}

// Surface implements Backend on top of a Presenter. Concrete backends
// embed it.
type Surface struct {
	name     string
	p        Presenter
	logger   *slog.Logger // Options.Logger; nil follows the package logger
	state    State
	viewport geom.Size
	last     *scene.Scene
	frames   int

	// force the next frame even if the tree is clean
	pending bool
}

var _ Backend = (*Surface)(nil)

// NewSurface wraps p. name is used in logs and errors.
func NewSurface(name string, opts Options, p Presenter) *Surface {
	return &Surface{
		name:     name,
		p:        p,
		logger:   opts.Logger,
		viewport: opts.Viewport(),
	}
}

// log returns the logger for this backend, resolved at call time so
// that a logger set after construction is honoured.
func (s *Surface) log() *slog.Logger {
	l := s.logger
	if l == nil {
		l = logging.Logger()
	}
	return l.With("backend", s.name)
}

// Name returns the backend name.
func (s *Surface) Name() string { return s.name }

// Mount implements Backend.
func (s *Surface) Mount() error {
	if s.state == Mounted {
		return ErrAlreadyMounted
	}
	if err := s.p.Attach(); err != nil {
		return fmt.Errorf("backend %s: mount: %w", s.name, err)
	}
	s.state = Mounted
	s.log().Info("backend: mounted", "viewport", s.viewport.String())
	return nil
}

// State implements Backend.
func (s *Surface) State() State { return s.state }

// Viewport returns the size the root is laid out against.
func (s *Surface) Viewport() geom.Size { return s.viewport }

// Resize changes the viewport. The next Render presents even if the tree
// is clean.
func (s *Surface) Resize(size geom.Size) {
	if size == s.viewport {
		return
	}
	s.viewport = size
	s.pending = true
}

// Frames returns the number of frames presented.
func (s *Surface) Frames() int { return s.frames }

// Scene implements Backend.
func (s *Surface) Scene() *scene.Scene { return s.last }

// Render implements Backend.
func (s *Surface) Render(t *tree.Tree, e *env.Environment) (FrameResult, error) {
	if s.state != Mounted {
		return Idle, ErrNotMounted
	}
	if t == nil || (!t.IsDirty() && !s.pending) {
		return Idle, nil
	}

	root := layout.New(t, e).Run(s.viewport)
	sc := Record(t, e)
	if err := s.p.Present(Frame{Tree: t, Env: e, Scene: sc}); err != nil {
		// layout flags are already gone; retry on the next frame
		s.pending = true
		s.log().Warn("backend: present failed", "err", err)
		return Idle, fmt.Errorf("backend %s: present: %w", s.name, err)
	}

	s.last = sc
	s.pending = false
	s.frames++
	t.ClearDirty()
	s.log().Debug("backend: presented",
		"frame", s.frames,
		"root", root.String(),
		"commands", sc.Len(),
	)
	return Presented, nil
}

// Record paints t in pre-order, so parents draw beneath their children
// and siblings in order.
func Record(t *tree.Tree, e *env.Environment) *scene.Scene {
	rec := scene.NewRecorder(e)
	for _, h := range t.PreOrder() {
		t.Node(h).Paint(rec, t.Frame(h))
	}
	return rec.Finish()
}
