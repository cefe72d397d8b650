package scripted

import (
	"testing"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/gpucontext"
	"github.com/stretchr/testify/assert"
)

// TestScriptReplay verifies batches are returned in order and the host
// requests close at the end.
func TestScriptReplay(t *testing.T) {
	h := New(800, 600).Frames(2).Then(frameloop.Resized(1024, 768), frameloop.RedrawRequested())
	assert.Equal(t, 3, h.Remaining())

	assert.Equal(t, []frameloop.Event{frameloop.RedrawRequested()}, h.PollEvents())
	assert.Equal(t, []frameloop.Event{frameloop.RedrawRequested()}, h.PollEvents())
	assert.Equal(t, []frameloop.Event{frameloop.Resized(1024, 768), frameloop.RedrawRequested()}, h.PollEvents())

	w, ht := h.FramebufferSize()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, ht)

	assert.Equal(t, []frameloop.Event{frameloop.CloseRequested()}, h.PollEvents())
	assert.Equal(t, 0, h.Remaining())
}

// TestScaleFactor verifies logical size is derived from the scale factor.
func TestScaleFactor(t *testing.T) {
	h := New(1600, 1200).WithScale(2)
	w, ht := h.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, ht)
	assert.Equal(t, 2.0, h.ScaleFactor())

	h.WithScale(0)
	assert.Equal(t, 2.0, h.ScaleFactor())
}

// TestPlatformRecording verifies cursor and redraw requests are recorded.
func TestPlatformRecording(t *testing.T) {
	h := New(10, 10)
	h.SetCursor(gpucontext.CursorPointer)
	h.RequestRedraw()
	h.RequestRedraw()

	assert.Equal(t, []gpucontext.CursorShape{gpucontext.CursorPointer}, h.Cursors())
	assert.Equal(t, 2, h.Redraws())
	assert.False(t, h.DarkMode())
}
