package frameloop

import (
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Backend is a graphics device able to present frames to one surface.
//
// Implementations live in sub-packages (backend/webgpu, backend/software)
// and are opened through package backend. A Backend is driven from a single
// goroutine by the [Loop] and need not be safe for concurrent use.
type Backend interface {
	// Name returns the backend identifier (e.g. "webgpu", "software").
	Name() string

	// PreferredFormat returns the texture format frames are presented in.
	PreferredFormat() gputypes.TextureFormat

	// ConfigureSurface applies cfg to the presentation surface and returns
	// a handle bound to that configuration. Handles from earlier
	// configurations become stale; backends tear them down as needed.
	ConfigureSurface(cfg SurfaceConfig) (PresentableSurface, error)

	// Submit submits the commands recorded for frame and presents it.
	// The frame is consumed whether or not Submit succeeds.
	//
	// Failures of the present step are reported as an [*Error] with Op
	// [OpPresent] and are recovered like acquire failures. Any other
	// failure stops the loop.
	Submit(frame Frame, cmds Commands) error

	// Close releases all device resources.
	Close() error
}

// PresentableSurface is a presentation surface bound to one
// [SurfaceConfig].
type PresentableSurface interface {
	// Config returns the configuration the surface was created with.
	Config() SurfaceConfig

	// Acquire returns the next drawable frame. Acquire may block until the
	// presentation engine releases a texture.
	Acquire() (Frame, error)
}

// Frame is one acquired drawable texture. A Frame is exclusively owned by
// the tick that acquired it and is consumed by [Backend.Submit] or
// [Frame.Discard].
type Frame interface {
	Width() uint32
	Height() uint32

	// Target returns the backend-specific render target compositors draw
	// into. Compositors type-assert it to the targets they support.
	Target() any

	// Discard releases the frame without presenting it.
	Discard()
}

// Commands is a backend-specific batch of recorded GPU work produced by a
// [Compositor] and consumed by [Backend.Submit].
type Commands any

// FrameContext is passed to the compositor for every frame.
type FrameContext struct {
	// Frame is the acquired drawable.
	Frame Frame

	// Config is the surface configuration the frame was acquired from.
	Config SurfaceConfig

	// Elapsed is the time since the last presented frame.
	Elapsed time.Duration

	// Index counts presented frames, starting at zero.
	Index uint64
}

// Compositor records the drawing commands for a frame.
type Compositor interface {
	Compose(fc FrameContext) (Commands, error)
}

// CompositorFunc adapts a function to the [Compositor] interface.
type CompositorFunc func(fc FrameContext) (Commands, error)

// Compose calls f(fc).
func (f CompositorFunc) Compose(fc FrameContext) (Commands, error) { return f(fc) }

// CursorReporter is an optional [Compositor] extension reporting the cursor
// shape the last composed frame wants. ok is false when the compositor has
// no preference.
type CursorReporter interface {
	Cursor() (shape gpucontext.CursorShape, ok bool)
}

// Host is the windowing system the loop runs in. It reports the window
// geometry and delivers events between frame ticks.
//
// A Host that also implements [gpucontext.PlatformProvider] receives the
// cursor shape requested by the compositor.
type Host interface {
	gpucontext.WindowProvider

	// PollEvents returns the events received since the previous call.
	PollEvents() []Event
}

// EventWaiter is an optional [Host] extension that blocks until events
// arrive. [Loop.Run] uses it while presentation is suspended instead of
// polling. Implementations should return after a bounded wait so that
// cancellation is noticed.
type EventWaiter interface {
	WaitEvents() []Event
}

// FramebufferSizer is an optional [Host] extension reporting the window
// size in physical pixels directly, avoiding rounding of logical size
// times scale factor.
type FramebufferSizer interface {
	FramebufferSize() (width, height int)
}
