// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package webgpu provides the GPU presentation backend for frameloop using
// the Pure Go gogpu/wgpu implementation of WebGPU.
//
// The backend negotiates a high-performance adapter compatible with the
// window surface, creates a device and queue, and presents frames with
// FIFO (vsync) pacing. Supported native APIs are Vulkan, Metal, DX12 and
// OpenGL ES, selected by wgpu at runtime.
//
// Importing this package registers it with package backend:
//
//	import _ "github.com/gogpu/frameloop/backend/webgpu"
package webgpu

import (
	"errors"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/wgpu"
)

// Package errors for the webgpu backend.
var (
	// ErrForeignFrame is returned when Submit is given a frame acquired
	// from another backend.
	ErrForeignFrame = errors.New("webgpu: frame not acquired from this backend")

	// ErrNoSurfaceFormat is returned when the adapter reports no usable
	// surface format.
	ErrNoSurfaceFormat = errors.New("webgpu: surface reports no formats")
)

// classify tags a wgpu surface error with its frameloop failure kind.
// Unrecognized errors get fallback.
func classify(op string, err error, fallback frameloop.Kind) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, wgpu.ErrSurfaceLost):
		return frameloop.NewError(frameloop.KindLost, op, err)
	case errors.Is(err, wgpu.ErrOutOfMemory):
		return frameloop.NewError(frameloop.KindOutOfMemory, op, err)
	case errors.Is(err, wgpu.ErrSurfaceOutdated), errors.Is(err, wgpu.ErrTimeout):
		return frameloop.NewError(frameloop.KindTransient, op, err)
	case errors.Is(err, wgpu.ErrDeviceLost), errors.Is(err, wgpu.ErrReleased):
		// Rebuilding the surface cannot bring a device back.
		return frameloop.NewError(frameloop.KindUnknown, op, err)
	default:
		return frameloop.NewError(fallback, op, err)
	}
}

// submitError tags a queue submission error. Only out of memory keeps its
// own kind; surface errors raised here are not recoverable by rebuilding
// the surface.
func submitError(err error) error {
	if errors.Is(err, wgpu.ErrOutOfMemory) {
		return frameloop.NewError(frameloop.KindOutOfMemory, frameloop.OpSubmit, err)
	}
	return frameloop.NewError(frameloop.KindSubmission, frameloop.OpSubmit, err)
}
