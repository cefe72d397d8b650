// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package webgpu

import (
	"github.com/gogpu/frameloop"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// CommandBuffers is the command type accepted by [Backend.Submit].
type CommandBuffers []*wgpu.CommandBuffer

// RenderTarget is what a webgpu [Frame] exposes through Target.
// Compositors record their render passes against View on Device.
type RenderTarget interface {
	Device() *wgpu.Device
	View() *wgpu.TextureView
	Format() gputypes.TextureFormat
	Width() uint32
	Height() uint32
}

// surface is the swap chain bound to one configuration.
type surface struct {
	backend    *Backend
	config     frameloop.SurfaceConfig
	generation uint64
}

func (s *surface) Config() frameloop.SurfaceConfig { return s.config }

// Acquire returns the next swap chain texture. With FIFO presentation it
// may block until the display releases one.
func (s *surface) Acquire() (frameloop.Frame, error) {
	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, frameloop.NewError(frameloop.KindUnknown, "acquire", frameloop.ErrClosed)
	}
	if s.generation != b.generation {
		return nil, frameloop.NewError(frameloop.KindLost, "acquire", frameloop.ErrStaleSurface)
	}

	texture, suboptimal, err := b.surface.GetCurrentTexture()
	if err != nil {
		return nil, classify("acquire", err, frameloop.KindTransient)
	}
	if suboptimal {
		frameloop.Logger().Debug("webgpu: suboptimal swap chain texture",
			"width", s.config.Width, "height", s.config.Height)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		b.surface.DiscardTexture()
		return nil, classify("acquire", err, frameloop.KindTransient)
	}

	return &Frame{
		backend:    b,
		texture:    texture,
		view:       view,
		width:      s.config.Width,
		height:     s.config.Height,
		format:     s.config.Format,
		generation: s.generation,
	}, nil
}

// Frame is an acquired swap chain texture.
type Frame struct {
	backend    *Backend
	texture    *wgpu.SurfaceTexture
	view       *wgpu.TextureView
	width      uint32
	height     uint32
	format     gputypes.TextureFormat
	generation uint64
	done       bool
}

// Width returns the texture width in pixels.
func (f *Frame) Width() uint32 { return f.width }

// Height returns the texture height in pixels.
func (f *Frame) Height() uint32 { return f.height }

// Target returns the frame as a [RenderTarget].
func (f *Frame) Target() any { return f }

// Device returns the device the texture belongs to.
func (f *Frame) Device() *wgpu.Device { return f.backend.device }

// View returns the texture view to render into.
func (f *Frame) View() *wgpu.TextureView { return f.view }

// Format returns the texture format.
func (f *Frame) Format() gputypes.TextureFormat { return f.format }

// Discard returns the texture to the swap chain without presenting it.
func (f *Frame) Discard() {
	f.backend.mu.Lock()
	defer f.backend.mu.Unlock()
	f.discardLocked()
}

func (f *Frame) discardLocked() {
	if f.done {
		return
	}
	f.done = true
	f.releaseView()
	if f.backend.surface != nil && f.generation == f.backend.generation {
		f.backend.surface.DiscardTexture()
	}
}

func (f *Frame) releaseView() {
	if f.view != nil {
		f.view.Release()
		f.view = nil
	}
}

var _ RenderTarget = (*Frame)(nil)
