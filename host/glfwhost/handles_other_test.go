// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !windows && !linux && !freebsd && !netbsd && !openbsd

package glfwhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNativeHandlesUnsupported verifies the window handle is refused
// rather than guessed on platforms without a wgpu surface path.
func TestNativeHandlesUnsupported(t *testing.T) {
	display, window, err := (&Window{}).NativeHandles()
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Zero(t, display)
	assert.Zero(t, window)
}
