package mem

import (
	"log/slog"
	"sync/atomic"
)

// Package-wide logger, swappable at runtime and defaulting to a discard
// handler so importing mem never forces output onto a caller who hasn't
// opted in. Mirrors the atomic-swap pattern used throughout this codebase
// for ambient loggers (see gfx/logger.go).
var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(slog.New(slog.DiscardHandler))
}

// SetLogger replaces the package-wide logger used for diagnostics such as
// the transient allocator's no-reset grace-period warning.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	pkgLogger.Store(l)
}

func logger() *slog.Logger { return pkgLogger.Load() }
