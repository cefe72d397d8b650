package backend

import (
	"context"
	"errors"

	"github.com/gogpu/frameloop"
)

// Backend names.
const (
	NameWebGPU   = "webgpu"
	NameSoftware = "software"
)

var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoWindowHandle is returned by GPU backends opened without a native window.
	ErrNoWindowHandle = errors.New("backend: no native window handle")
)

// Target describes where a backend presents frames.
type Target struct {
	// DisplayHandle is the platform display connection
	// (X11 Display*, wl_display*). Zero on platforms without one.
	DisplayHandle uintptr

	// WindowHandle is the native window (HWND, X11 Window, wl_surface*).
	// Zero for headless targets.
	WindowHandle uintptr
}

// Headless reports whether the target has no native window.
func (t Target) Headless() bool {
	return t.WindowHandle == 0
}

// Opener opens a backend for a target.
type Opener interface {
	Open(ctx context.Context, target Target) (frameloop.Backend, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, target Target) (frameloop.Backend, error)

// Open calls f(ctx, target).
func (f OpenerFunc) Open(ctx context.Context, target Target) (frameloop.Backend, error) {
	return f(ctx, target)
}
