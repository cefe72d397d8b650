// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(w, h uint32) frameloop.SurfaceConfig {
	return frameloop.SurfaceConfig{
		Width:       w,
		Height:      h,
		Format:      gputypes.TextureFormatRGBA8Unorm,
		PresentMode: gputypes.PresentModeFifo,
	}
}

func fill(c color.RGBA) Op {
	return func(dst *image.RGBA) {
		for i := 0; i < len(dst.Pix); i += 4 {
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = c.A
		}
	}
}

// TestRegistered verifies the package registers itself on import.
func TestRegistered(t *testing.T) {
	require.True(t, backend.IsRegistered(backend.NameSoftware))

	b, err := backend.Open(context.Background(), backend.NameSoftware, backend.Target{})
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, "software", b.Name())
	assert.Equal(t, gputypes.TextureFormatRGBA8Unorm, b.PreferredFormat())
}

// TestPresentCopiesToFrontBuffer verifies submitted ops reach the snapshot.
func TestPresentCopiesToFrontBuffer(t *testing.T) {
	b := New()
	defer b.Close()

	s, err := b.ConfigureSurface(testConfig(4, 3))
	require.NoError(t, err)
	assert.Equal(t, testConfig(4, 3), s.Config())

	f, err := s.Acquire()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), f.Width())
	assert.Equal(t, uint32(3), f.Height())
	_, ok := f.Target().(*image.RGBA)
	require.True(t, ok)

	red := color.RGBA{R: 255, A: 255}
	require.NoError(t, b.Submit(f, Ops{fill(red)}))

	snap := b.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, image.Rect(0, 0, 4, 3), snap.Bounds())
	assert.Equal(t, red, snap.RGBAAt(2, 1))
	assert.Equal(t, 1, b.Stats().Presents)
}

// TestDirectDrawing verifies drawing into the target without ops.
func TestDirectDrawing(t *testing.T) {
	b := New()
	s, err := b.ConfigureSurface(testConfig(2, 2))
	require.NoError(t, err)

	f, err := s.Acquire()
	require.NoError(t, err)
	f.Target().(*image.RGBA).SetRGBA(1, 1, color.RGBA{G: 200, A: 255})
	require.NoError(t, b.Submit(f, nil))

	assert.Equal(t, color.RGBA{G: 200, A: 255}, b.Snapshot().RGBAAt(1, 1))
}

// TestStaleSurfaceIsLost verifies a surface from a previous configuration
// reports loss.
func TestStaleSurfaceIsLost(t *testing.T) {
	b := New()
	old, err := b.ConfigureSurface(testConfig(8, 8))
	require.NoError(t, err)
	stale, err := old.Acquire()
	require.NoError(t, err)

	_, err = b.ConfigureSurface(testConfig(16, 16))
	require.NoError(t, err)

	_, err = old.Acquire()
	assert.Equal(t, frameloop.KindLost, frameloop.KindOf(err))

	err = b.Submit(stale, nil)
	assert.Equal(t, frameloop.KindLost, frameloop.KindOf(err))
	assert.Equal(t, 1, b.Stats().Discards)
}

// TestFaultInjection verifies injected errors are returned once, in order.
func TestFaultInjection(t *testing.T) {
	b := New()
	b.InjectConfigureError(ErrInjectedOutOfMemory)
	_, err := b.ConfigureSurface(testConfig(8, 8))
	assert.ErrorIs(t, err, frameloop.ErrOutOfMemory)

	s, err := b.ConfigureSurface(testConfig(8, 8))
	require.NoError(t, err)

	b.InjectAcquireError(ErrInjectedTimeout, nil, ErrInjectedLost)
	_, err = s.Acquire()
	assert.Equal(t, frameloop.VerdictRetry, frameloop.Classify(err))
	f, err := s.Acquire()
	require.NoError(t, err)
	_, err = s.Acquire()
	assert.Equal(t, frameloop.VerdictReconfigure, frameloop.Classify(err))

	b.InjectSubmitError(ErrInjectedLost)
	err = b.Submit(f, nil)
	assert.ErrorIs(t, err, frameloop.ErrSurfaceLost)
	assert.Equal(t, 1, b.Stats().Discards)
	assert.Equal(t, 0, b.Stats().Presents)
}

// TestPresentFaultInjection verifies present faults run the commands,
// discard the frame and are reported as present failures.
func TestPresentFaultInjection(t *testing.T) {
	b := New()
	s, err := b.ConfigureSurface(testConfig(4, 4))
	require.NoError(t, err)
	f, err := s.Acquire()
	require.NoError(t, err)

	ran := false
	b.InjectPresentError(ErrInjectedTimeout)
	err = b.Submit(f, Op(func(*image.RGBA) { ran = true }))
	assert.True(t, ran)
	assert.Equal(t, frameloop.KindTransient, frameloop.KindOf(err))
	var fe *frameloop.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, frameloop.OpPresent, fe.Op)
	assert.Equal(t, 1, b.Stats().Discards)
	assert.Equal(t, 0, b.Stats().Presents)
}

// TestUnsupportedCommands verifies commands for another backend are rejected.
func TestUnsupportedCommands(t *testing.T) {
	b := New()
	s, err := b.ConfigureSurface(testConfig(2, 2))
	require.NoError(t, err)
	f, err := s.Acquire()
	require.NoError(t, err)

	err = b.Submit(f, "not ops")
	assert.ErrorIs(t, err, frameloop.ErrUnsupportedCommands)
	assert.Equal(t, frameloop.VerdictFatal, frameloop.Classify(err))
	assert.Equal(t, 1, b.Stats().Discards)
}

// TestClosed verifies configuration fails after Close.
func TestClosed(t *testing.T) {
	b := New()
	require.NoError(t, b.Close())
	_, err := b.ConfigureSurface(testConfig(2, 2))
	assert.ErrorIs(t, err, frameloop.ErrClosed)
	assert.Nil(t, b.Snapshot())
}
