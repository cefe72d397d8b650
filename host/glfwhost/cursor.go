// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glfwhost

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
)

// standardCursor maps a cursor shape to the closest GLFW 3.3 standard
// cursor. Shapes without a GLFW equivalent fall back to the arrow.
func standardCursor(shape gpucontext.CursorShape) glfw.StandardCursor {
	switch shape {
	case gpucontext.CursorPointer:
		return glfw.HandCursor
	case gpucontext.CursorText:
		return glfw.IBeamCursor
	case gpucontext.CursorCrosshair:
		return glfw.CrosshairCursor
	case gpucontext.CursorResizeEW:
		return glfw.HResizeCursor
	case gpucontext.CursorResizeNS:
		return glfw.VResizeCursor
	default:
		return glfw.ArrowCursor
	}
}

// SetCursor changes the cursor shown over the window.
// CursorNone hides the cursor.
func (w *Window) SetCursor(shape gpucontext.CursorShape) {
	if shape == gpucontext.CursorNone {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
		w.hidden = true
		return
	}
	if w.hidden {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		w.hidden = false
	}

	std := standardCursor(shape)
	c, ok := w.cursors[std]
	if !ok {
		c = glfw.CreateStandardCursor(std)
		w.cursors[std] = c
	}
	w.win.SetCursor(c)
}
