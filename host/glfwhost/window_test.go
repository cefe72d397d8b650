// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glfwhost

import (
	"testing"

	"github.com/gogpu/frameloop"
	"github.com/stretchr/testify/assert"
)

// TestDrain verifies queued callback events are returned once, followed
// by a pending redraw. It does not need a display.
func TestDrain(t *testing.T) {
	w := &Window{}
	w.push(frameloop.Resized(0, 0))
	w.RequestRedraw()

	assert.Equal(t, []frameloop.Event{
		frameloop.Resized(0, 0),
		frameloop.RedrawRequested(),
	}, w.drain())
	assert.Empty(t, w.drain())
}

// TestWaitTimeoutIsBounded keeps WaitEvents short enough for a suspended
// loop to notice cancellation promptly.
func TestWaitTimeoutIsBounded(t *testing.T) {
	assert.Positive(t, waitTimeout)
	assert.LessOrEqual(t, waitTimeout.Seconds(), 0.5)
}
