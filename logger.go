package frameloop

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for frameloop and its sub-packages.
// By default, frameloop produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior. The backend of the most recently created running
// [Loop] receives the new logger if it accepts one.
//
// Log levels used by frameloop:
//   - [slog.LevelDebug]: per-frame diagnostics (acquire, submit, skipped ticks)
//   - [slog.LevelInfo]: lifecycle events (adapter selected, loop started)
//   - [slog.LevelWarn]: recoverable failures (dropped frame, surface lost)
//   - [slog.LevelError]: fatal failures that stop the loop
//
// Example:
//
//	frameloop.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// Propagate to the active backend if it supports logging.
	activeMu.RLock()
	b := active
	activeMu.RUnlock()
	if b != nil {
		propagateLogger(b, l)
	}
}

// Logger returns the current logger used by frameloop.
// Sub-packages call this to share the same logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by backends that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// active is the backend of the most recently created loop that has not
// stopped yet.
var (
	activeMu sync.RWMutex
	active   Backend
)

// activate makes b the active backend and hands it the current logger.
func activate(b Backend) {
	activeMu.Lock()
	active = b
	activeMu.Unlock()
	propagateLogger(b, Logger())
}

// deactivate clears the active backend if it is b.
func deactivate(b Backend) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active == b {
		active = nil
	}
}

// propagateLogger passes the logger to a backend if it implements
// the loggerSetter interface. Called from both SetLogger and New so the
// active backend always has the current logger.
func propagateLogger(b Backend, l *slog.Logger) {
	if ls, ok := b.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
