// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glfwhost provides a frameloop host backed by a GLFW window.
//
// The window is created without a client API so that the webgpu backend
// can create its own surface from the native handles returned by
// [Window.NativeHandles]. GLFW must be used from the main thread: callers
// lock the main goroutine to its OS thread before calling [Open].
//
//	func init() { runtime.LockOSThread() }
package glfwhost

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/frameloop"
	"github.com/gogpu/gpucontext"
)

// ErrUnsupportedPlatform is returned by NativeHandles on platforms where
// the window handle cannot be passed to wgpu.
var ErrUnsupportedPlatform = errors.New("glfwhost: native handles not supported on this platform")

// waitTimeout bounds WaitEvents so a suspended loop still notices
// cancellation.
const waitTimeout = 100 * time.Millisecond

// Window is a GLFW window implementing frameloop.Host,
// frameloop.FramebufferSizer, frameloop.EventWaiter and
// gpucontext.PlatformProvider.
type Window struct {
	gpucontext.NullPlatformProvider

	win *glfw.Window

	mu      sync.Mutex
	events  []frameloop.Event
	redraw  bool
	cursors map[glfw.StandardCursor]*glfw.Cursor
	hidden  bool
}

// Open initializes GLFW and creates a window with the given logical size.
func Open(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwhost: init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfwhost: create window: %w", err)
	}

	w := &Window{
		win:     win,
		redraw:  true,
		cursors: make(map[glfw.StandardCursor]*glfw.Cursor),
	}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, fw, fh int) {
		w.push(frameloop.Resized(dim(fw), dim(fh)))
	})
	win.SetContentScaleCallback(func(gw *glfw.Window, _, _ float32) {
		fw, fh := gw.GetFramebufferSize()
		w.push(frameloop.ScaleFactorChanged(dim(fw), dim(fh)))
	})
	win.SetCloseCallback(func(*glfw.Window) {
		w.push(frameloop.CloseRequested())
	})
	win.SetRefreshCallback(func(*glfw.Window) {
		w.RequestRedraw()
	})

	fw, fh := win.GetFramebufferSize()
	frameloop.Logger().Info("glfwhost: window created",
		"title", title, "width", fw, "height", fh)
	return w, nil
}

func dim(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}

func (w *Window) push(ev frameloop.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
}

// PollEvents processes pending window system events and returns them,
// followed by a redraw request if one is pending.
func (w *Window) PollEvents() []frameloop.Event {
	glfw.PollEvents()
	return w.drain()
}

func (w *Window) drain() []frameloop.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := w.events
	w.events = nil
	if w.redraw {
		events = append(events, frameloop.RedrawRequested())
		w.redraw = false
	}
	return events
}

// WaitEvents blocks until window system events arrive or waitTimeout
// passes, then returns them like PollEvents.
func (w *Window) WaitEvents() []frameloop.Event {
	glfw.WaitEventsTimeout(waitTimeout.Seconds())
	return w.drain()
}

// RequestRedraw schedules a redraw request for the next poll.
func (w *Window) RequestRedraw() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.redraw = true
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (width, height int) {
	return w.win.GetSize()
}

// FramebufferSize returns the window size in physical pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

// ScaleFactor returns the content scale of the window.
func (w *Window) ScaleFactor() float64 {
	x, _ := w.win.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

// FontScale returns the content scale as the font scale.
func (w *Window) FontScale() float32 {
	return float32(w.ScaleFactor())
}

// ClipboardRead returns the clipboard text.
func (w *Window) ClipboardRead() (string, error) {
	return glfw.GetClipboardString(), nil
}

// ClipboardWrite replaces the clipboard text.
func (w *Window) ClipboardWrite(text string) error {
	glfw.SetClipboardString(text)
	return nil
}

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	for _, c := range w.cursors {
		c.Destroy()
	}
	w.cursors = nil
	w.win.Destroy()
	glfw.Terminate()
}

var (
	_ frameloop.Host              = (*Window)(nil)
	_ frameloop.FramebufferSizer  = (*Window)(nil)
	_ frameloop.EventWaiter       = (*Window)(nil)
	_ gpucontext.PlatformProvider = (*Window)(nil)
)
