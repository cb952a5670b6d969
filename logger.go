// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uicore

import (
	"log/slog"

	"github.com/gogpu/uicore/internal/logging"
)

// SetLogger configures the logger for uicore and all its sub-packages.
// By default, uicore produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically. Pass nil to restore the silent default.
//
// Log levels used by uicore:
//   - [slog.LevelDebug]: tree builds, layout passes, presented frames
//   - [slog.LevelInfo]: backend mounts
//   - [slog.LevelWarn]: failed presents, font fallbacks
//
// Example:
//
//	uicore.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by uicore.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
