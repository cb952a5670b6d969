// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uicore

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/uicore/backend"
	"github.com/gogpu/uicore/widget"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLoggerReachesBackends(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	h := backend.NewHeadless(backend.Options{Width: 100, Height: 100})
	if err := h.Mount(); err != nil {
		t.Fatal(err)
	}
	h.FailNext(errors.New("lost device"))
	r := New(h)
	_, _ = r.RenderView(estimated(), widget.Text("x"))

	out := buf.String()
	for _, want := range []string{"backend: mounted", "tree: built", "backend: present failed", "lost device"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLoggerAfterConstruction(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	h := backend.NewHeadless(backend.Options{Width: 100, Height: 100})
	r := New(h)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	if err := h.Mount(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.RenderView(estimated(), widget.Text("x")); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"backend: mounted", "backend=headless", "dispatch: handled", "backend: presented"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
