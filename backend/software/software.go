// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software provides a CPU presentation backend for frameloop.
//
// Frames are *image.RGBA buffers. Compositors either draw into the buffer
// returned by Frame.Target directly or return [Ops] that are applied at
// submit time. Presenting copies the frame into a front buffer that can be
// read back with [Backend.Snapshot].
//
// The backend also supports fault injection, which makes it the reference
// backend for exercising the loop's recovery paths without a GPU.
//
// Importing this package registers it with package backend under
// backend.NameSoftware.
package software

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/gputypes"
)

func init() {
	backend.Register(backend.NameSoftware, backend.OpenerFunc(
		func(context.Context, backend.Target) (frameloop.Backend, error) {
			return New(), nil
		}))
}

// Op is a drawing operation applied to the frame buffer at submit time.
type Op func(dst *image.RGBA)

// Ops is the command type accepted by [Backend.Submit].
type Ops []Op

// Backend presents frames into an in-memory RGBA framebuffer.
//
// Backend is safe for concurrent use: Snapshot and the fault injection
// methods may be called from other goroutines while the loop runs.
type Backend struct {
	mu sync.Mutex

	generation uint64
	config     frameloop.SurfaceConfig
	front      *image.RGBA

	faults faults
	stats  Stats
	closed bool
}

// Stats counts backend activity.
type Stats struct {
	Configures int
	Acquires   int
	Presents   int
	Discards   int
}

// New creates a software backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.NameSoftware
}

// PreferredFormat returns the framebuffer format.
func (b *Backend) PreferredFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// ConfigureSurface sizes the framebuffer for cfg. Surfaces from earlier
// configurations report [frameloop.ErrStaleSurface] as lost.
func (b *Backend) ConfigureSurface(cfg frameloop.SurfaceConfig) (frameloop.PresentableSurface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, frameloop.ErrClosed
	}
	if err := b.faults.configure.pop(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b.generation++
	b.config = cfg
	b.front = image.NewRGBA(image.Rect(0, 0, int(cfg.Width), int(cfg.Height)))
	b.stats.Configures++
	frameloop.Logger().Debug("software: surface configured", "config", cfg.String(), "generation", b.generation)
	return &surface{backend: b, config: cfg, generation: b.generation}, nil
}

// Submit applies ops to the frame and presents it.
func (b *Backend) Submit(frame frameloop.Frame, cmds frameloop.Commands) error {
	f, ok := frame.(*Frame)
	if !ok {
		return frameloop.NewError(frameloop.KindSubmission, frameloop.OpSubmit,
			fmt.Errorf("%w: frame %T", frameloop.ErrUnsupportedTarget, frame))
	}

	var ops Ops
	switch c := cmds.(type) {
	case nil:
	case Ops:
		ops = c
	case Op:
		ops = Ops{c}
	default:
		f.Discard()
		return frameloop.NewError(frameloop.KindSubmission, frameloop.OpSubmit,
			fmt.Errorf("%w: %T", frameloop.ErrUnsupportedCommands, cmds))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.faults.submit.pop(); err != nil {
		b.discardLocked(f)
		return err
	}
	if f.generation != b.generation {
		b.discardLocked(f)
		return frameloop.NewError(frameloop.KindLost, frameloop.OpPresent, frameloop.ErrStaleSurface)
	}

	for _, op := range ops {
		op(f.img)
	}
	if err := b.faults.present.pop(); err != nil {
		b.discardLocked(f)
		return frameloop.NewError(frameloop.KindOf(err), frameloop.OpPresent, err)
	}
	draw.Draw(b.front, b.front.Bounds(), f.img, image.Point{}, draw.Src)
	f.consumed = true
	b.stats.Presents++
	return nil
}

// Snapshot returns a copy of the last presented frame, or nil before the
// first configuration.
func (b *Backend) Snapshot() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.front == nil {
		return nil
	}
	out := image.NewRGBA(b.front.Bounds())
	copy(out.Pix, b.front.Pix)
	return out
}

// Config returns the active surface configuration.
func (b *Backend) Config() frameloop.SurfaceConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.config
}

// Stats returns the backend counters.
func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Close releases the framebuffer. Further configuration fails.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.front = nil
	return nil
}

func (b *Backend) discardLocked(f *Frame) {
	if f.consumed {
		return
	}
	f.consumed = true
	b.stats.Discards++
}

// surface is a framebuffer bound to one configuration.
type surface struct {
	backend    *Backend
	config     frameloop.SurfaceConfig
	generation uint64
}

func (s *surface) Config() frameloop.SurfaceConfig { return s.config }

func (s *surface) Acquire() (frameloop.Frame, error) {
	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, frameloop.NewError(frameloop.KindLost, "acquire", frameloop.ErrClosed)
	}
	if s.generation != b.generation {
		return nil, frameloop.NewError(frameloop.KindLost, "acquire", frameloop.ErrStaleSurface)
	}
	if err := b.faults.acquire.pop(); err != nil {
		return nil, err
	}

	b.stats.Acquires++
	img := image.NewRGBA(image.Rect(0, 0, int(s.config.Width), int(s.config.Height)))
	return &Frame{backend: b, img: img, generation: s.generation}, nil
}

// Frame is an acquired software framebuffer.
type Frame struct {
	backend    *Backend
	img        *image.RGBA
	generation uint64
	consumed   bool
}

// Width returns the frame width in pixels.
func (f *Frame) Width() uint32 { return uint32(f.img.Bounds().Dx()) }

// Height returns the frame height in pixels.
func (f *Frame) Height() uint32 { return uint32(f.img.Bounds().Dy()) }

// Target returns the frame's *image.RGBA.
func (f *Frame) Target() any { return f.img }

// Discard drops the frame without presenting it.
func (f *Frame) Discard() {
	f.backend.mu.Lock()
	defer f.backend.mu.Unlock()
	f.backend.discardLocked(f)
}
