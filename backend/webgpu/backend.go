// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package webgpu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

func init() {
	backend.Register(backend.NameWebGPU, backend.OpenerFunc(
		func(ctx context.Context, t backend.Target) (frameloop.Backend, error) {
			return Open(ctx, t)
		}))
}

// Backend presents frames to a native window through wgpu.
//
// Backend is safe for concurrent use, but frames are expected to be
// acquired and submitted from the loop goroutine.
type Backend struct {
	mu sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	format gputypes.TextureFormat
	alpha  gputypes.CompositeAlphaMode
	info   gpucontext.AdapterInfo

	generation uint64
	config     frameloop.SurfaceConfig
	configured bool

	inFlight []submission
	closed   bool
}

// submission tracks command buffers until the GPU has finished with them.
type submission struct {
	index   uint64
	buffers []*wgpu.CommandBuffer
}

// Open brings up wgpu for the target window:
//   - creating a WebGPU instance for the primary native APIs
//   - creating a surface from the native window handles
//   - requesting a high-performance adapter compatible with the surface
//   - creating a logical device and its queue
//
// Open fails with [frameloop.ErrNoCompatibleDevice] when no adapter can
// present to the window. There is no timeout; a stalled driver stalls
// startup.
func Open(ctx context.Context, target backend.Target) (*Backend, error) {
	if target.Headless() {
		return nil, frameloop.NewError(frameloop.KindInitialization, "open", backend.ErrNoWindowHandle)
	}
	b := &Backend{}
	if err := b.init(ctx, target); err != nil {
		b.release()
		return nil, err
	}
	return b, nil
}

func (b *Backend) init(ctx context.Context, target backend.Target) error {
	log := frameloop.Logger()

	// Step 1: Create Instance
	instance, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: wgpu.BackendsPrimary,
	})
	if err != nil {
		return frameloop.NewError(frameloop.KindInitialization, "create instance", err)
	}
	b.instance = instance

	// Step 2: Create Surface
	surface, err := instance.CreateSurface(target.DisplayHandle, target.WindowHandle)
	if err != nil {
		return frameloop.NewError(frameloop.KindInitialization, "create surface", err)
	}
	b.surface = surface

	if err := ctx.Err(); err != nil {
		return err
	}

	// Step 3: Request Adapter (prefer high performance GPU)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
		CompatibleSurface: surface,
	})
	if err != nil {
		return frameloop.NewError(frameloop.KindInitialization, "request adapter",
			fmt.Errorf("%w: %w", frameloop.ErrNoCompatibleDevice, err))
	}
	b.adapter = adapter
	b.info = adapterInfo(adapter.Info())

	if err := ctx.Err(); err != nil {
		return err
	}

	// Step 4: Create Device
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "frameloop-device",
		RequiredLimits: wgpu.DefaultLimits(),
	})
	if err != nil {
		return frameloop.NewError(frameloop.KindInitialization, "request device", err)
	}
	b.device = device

	// Step 5: Get Queue
	b.queue = device.Queue()

	// Step 6: Pick the presentation format and alpha mode
	caps := adapter.GetSurfaceCapabilities(surface)
	format, err := chooseFormat(caps)
	if err != nil {
		return frameloop.NewError(frameloop.KindInitialization, "surface capabilities", err)
	}
	b.format = format
	b.alpha = chooseAlphaMode(caps)

	info := adapter.Info()
	log.Info("webgpu: adapter selected",
		"name", info.Name,
		"vendor", info.Vendor,
		"type", b.info.Type.String(),
		"backend", info.Backend.String(),
		"format", format.String())
	return nil
}

// chooseFormat prefers an sRGB BGRA swap chain and falls back to the
// surface's first reported format.
func chooseFormat(caps *wgpu.SurfaceCapabilities) (gputypes.TextureFormat, error) {
	if caps == nil {
		// Core-only adapters cannot be queried.
		return gputypes.TextureFormatBGRA8UnormSrgb, nil
	}
	for _, f := range []gputypes.TextureFormat{
		gputypes.TextureFormatBGRA8UnormSrgb,
		gputypes.TextureFormatRGBA8UnormSrgb,
	} {
		if slices.Contains(caps.Formats, f) {
			return f, nil
		}
	}
	if len(caps.Formats) == 0 {
		return gputypes.TextureFormatUndefined, ErrNoSurfaceFormat
	}
	return caps.Formats[0], nil
}

// chooseAlphaMode prefers an opaque surface.
func chooseAlphaMode(caps *wgpu.SurfaceCapabilities) gputypes.CompositeAlphaMode {
	if caps == nil || len(caps.AlphaModes) == 0 || slices.Contains(caps.AlphaModes, gputypes.CompositeAlphaModeOpaque) {
		return gputypes.CompositeAlphaModeOpaque
	}
	return caps.AlphaModes[0]
}

// adapterInfo converts wgpu adapter information to the gpucontext form.
func adapterInfo(info wgpu.AdapterInfo) gpucontext.AdapterInfo {
	t := gpucontext.AdapterTypeUnknown
	switch info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		t = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		t = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		t = gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterInfo{Name: info.Name, Type: t}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.NameWebGPU
}

// PreferredFormat returns the swap chain format chosen at open.
func (b *Backend) PreferredFormat() gputypes.TextureFormat {
	return b.format
}

// SetLogger forwards the logger to wgpu.
func (b *Backend) SetLogger(l *slog.Logger) {
	wgpu.SetLogger(l)
}

// ConfigureSurface configures the swap chain. Handles returned by earlier
// calls become stale and report loss when used.
func (b *Backend) ConfigureSurface(cfg frameloop.SurfaceConfig) (frameloop.PresentableSurface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, frameloop.ErrClosed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	err := b.surface.Configure(b.device, &wgpu.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       wgpu.TextureUsageRenderAttachment,
		PresentMode: cfg.PresentMode,
		AlphaMode:   b.alpha,
	})
	if err != nil {
		return nil, classify("configure", err, frameloop.KindConfiguration)
	}

	b.generation++
	b.config = cfg
	b.configured = true
	frameloop.Logger().Debug("webgpu: surface configured",
		"config", cfg.String(), "generation", b.generation)
	return &surface{backend: b, config: cfg, generation: b.generation}, nil
}

// Submit submits the frame's command buffers and presents it.
//
// Command buffers are kept until the queue reports their submission
// complete and are freed on a later Submit or on Close.
func (b *Backend) Submit(frame frameloop.Frame, cmds frameloop.Commands) error {
	f, ok := frame.(*Frame)
	if !ok || f.backend != b {
		if frame != nil {
			frame.Discard()
		}
		return frameloop.NewError(frameloop.KindSubmission, frameloop.OpSubmit, ErrForeignFrame)
	}

	var buffers []*wgpu.CommandBuffer
	switch c := cmds.(type) {
	case nil:
	case CommandBuffers:
		buffers = c
	case *wgpu.CommandBuffer:
		buffers = []*wgpu.CommandBuffer{c}
	default:
		f.Discard()
		return frameloop.NewError(frameloop.KindSubmission, frameloop.OpSubmit,
			fmt.Errorf("%w: %T", frameloop.ErrUnsupportedCommands, cmds))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.reclaimLocked()

	if f.generation != b.generation {
		f.discardLocked()
		b.freeLocked(buffers)
		return frameloop.NewError(frameloop.KindLost, frameloop.OpPresent, frameloop.ErrStaleSurface)
	}

	if len(buffers) > 0 {
		index, err := b.queue.Submit(buffers...)
		if err != nil {
			f.discardLocked()
			b.freeLocked(buffers)
			return submitError(err)
		}
		b.inFlight = append(b.inFlight, submission{index: index, buffers: buffers})
	}

	err := b.surface.Present(f.texture)
	f.releaseView()
	f.done = true
	if err != nil {
		return classify(frameloop.OpPresent, err, frameloop.KindTransient)
	}
	return nil
}

// reclaimLocked frees command buffers whose submissions have completed.
func (b *Backend) reclaimLocked() {
	if len(b.inFlight) == 0 {
		return
	}
	completed := b.queue.Poll()
	kept := b.inFlight[:0]
	for _, s := range b.inFlight {
		if s.index <= completed {
			b.freeLocked(s.buffers)
			continue
		}
		kept = append(kept, s)
	}
	b.inFlight = kept
}

func (b *Backend) freeLocked(buffers []*wgpu.CommandBuffer) {
	for _, cb := range buffers {
		b.device.FreeCommandBuffer(cb)
	}
}

// Close waits for the GPU to go idle and releases all device resources.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if b.device != nil {
		if err := b.device.WaitIdle(); err != nil {
			errs = append(errs, fmt.Errorf("webgpu: wait idle: %w", err))
		}
		for _, s := range b.inFlight {
			b.freeLocked(s.buffers)
		}
		b.inFlight = nil
	}
	if b.surface != nil && b.configured {
		b.surface.Unconfigure()
	}
	b.release()

	frameloop.Logger().Info("webgpu: backend closed")
	return errors.Join(errs...)
}

// release drops GPU objects in reverse creation order.
func (b *Backend) release() {
	if b.device != nil {
		b.device.Release()
		b.device = nil
		b.queue = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// Device returns the wgpu device.
func (b *Backend) Device() gpucontext.Device { return b.device }

// Queue returns the wgpu queue.
func (b *Backend) Queue() gpucontext.Queue { return b.queue }

// Adapter returns the wgpu adapter.
func (b *Backend) Adapter() gpucontext.Adapter { return b.adapter }

// SurfaceFormat returns the swap chain format.
func (b *Backend) SurfaceFormat() gputypes.TextureFormat { return b.format }

// AdapterInfo describes the selected adapter.
func (b *Backend) AdapterInfo() gpucontext.AdapterInfo { return b.info }

var (
	_ frameloop.Backend         = (*Backend)(nil)
	_ gpucontext.DeviceProvider = (*Backend)(nil)
)
