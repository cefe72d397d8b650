// Package scripted provides a headless frameloop host that replays a fixed
// sequence of events.
//
// Each call to PollEvents returns the next scripted batch. Once the script
// is exhausted the host requests close, so a loop driven by it always
// terminates.
//
//	host := scripted.New(800, 600).
//	    Frames(3).
//	    Then(frameloop.Resized(1024, 768)).
//	    Frames(2)
package scripted

import (
	"math"
	"sync"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/gpucontext"
)

// Host is a scripted window.
//
// Host implements frameloop.Host, frameloop.FramebufferSizer and
// gpucontext.PlatformProvider. It is safe for concurrent use.
type Host struct {
	gpucontext.NullPlatformProvider

	mu sync.Mutex

	width, height int // physical pixels
	scale         float64

	batches [][]frameloop.Event
	polled  int

	redraws int
	cursors []gpucontext.CursorShape
}

// New creates a host with the given physical size and scale factor 1.
func New(width, height int) *Host {
	return &Host{width: width, height: height, scale: 1}
}

// WithScale sets the scale factor reported to the loop.
func (h *Host) WithScale(scale float64) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	if scale > 0 {
		h.scale = scale
	}
	return h
}

// Then appends one batch of events delivered by a single poll.
func (h *Host) Then(events ...frameloop.Event) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batches = append(h.batches, events)
	return h
}

// Frames appends n batches each holding one redraw request.
func (h *Host) Frames(n int) *Host {
	for i := 0; i < n; i++ {
		h.Then(frameloop.RedrawRequested())
	}
	return h
}

// PollEvents returns the next scripted batch, or a close request once the
// script is exhausted. Size-carrying events update the reported geometry.
func (h *Host) PollEvents() []frameloop.Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.polled >= len(h.batches) {
		return []frameloop.Event{frameloop.CloseRequested()}
	}
	batch := h.batches[h.polled]
	h.polled++
	for _, ev := range batch {
		if ev.Kind == frameloop.EventResized || ev.Kind == frameloop.EventScaleFactorChanged {
			h.width, h.height = int(ev.Width), int(ev.Height)
		}
	}
	return batch
}

// Remaining returns the number of batches not yet polled.
func (h *Host) Remaining() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.batches) - h.polled
}

// Size returns the logical window size.
func (h *Host) Size() (width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return int(math.Round(float64(h.width) / h.scale)), int(math.Round(float64(h.height) / h.scale))
}

// FramebufferSize returns the window size in physical pixels.
func (h *Host) FramebufferSize() (width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// ScaleFactor returns the configured scale factor.
func (h *Host) ScaleFactor() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scale
}

// RequestRedraw counts redraw requests. Redraws are driven by the script.
func (h *Host) RequestRedraw() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.redraws++
}

// Redraws returns the number of RequestRedraw calls.
func (h *Host) Redraws() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.redraws
}

// SetCursor records the requested cursor shape.
func (h *Host) SetCursor(shape gpucontext.CursorShape) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cursors = append(h.cursors, shape)
}

// Cursors returns the cursor shapes requested so far.
func (h *Host) Cursors() []gpucontext.CursorShape {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]gpucontext.CursorShape(nil), h.cursors...)
}

var (
	_ frameloop.Host              = (*Host)(nil)
	_ frameloop.FramebufferSizer  = (*Host)(nil)
	_ gpucontext.PlatformProvider = (*Host)(nil)
)
