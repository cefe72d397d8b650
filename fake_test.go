package frameloop

import (
	"log/slog"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// fakeBackend is an in-memory Backend with scripted failures. Each failure
// queue is consumed one entry per call; a nil entry means success.
type fakeBackend struct {
	format gputypes.TextureFormat

	configs      []SurfaceConfig
	configureErr []error
	acquireErr   []error
	submitErr    []error

	generation int
	acquired   int
	submitted  int
	discarded  int
	lastCmds   Commands
	logger     *slog.Logger
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{format: gputypes.TextureFormatBGRA8UnormSrgb}
}

func pop(q *[]error) error {
	if len(*q) == 0 {
		return nil
	}
	err := (*q)[0]
	*q = (*q)[1:]
	return err
}

func (b *fakeBackend) Name() string                            { return "fake" }
func (b *fakeBackend) PreferredFormat() gputypes.TextureFormat { return b.format }
func (b *fakeBackend) Close() error                            { return nil }
func (b *fakeBackend) SetLogger(l *slog.Logger)                { b.logger = l }

func (b *fakeBackend) ConfigureSurface(cfg SurfaceConfig) (PresentableSurface, error) {
	if err := pop(&b.configureErr); err != nil {
		return nil, err
	}
	b.configs = append(b.configs, cfg)
	b.generation++
	return &fakeSurface{backend: b, config: cfg, generation: b.generation}, nil
}

func (b *fakeBackend) Submit(frame Frame, cmds Commands) error {
	if err := pop(&b.submitErr); err != nil {
		frame.Discard()
		return err
	}
	b.submitted++
	b.lastCmds = cmds
	return nil
}

type fakeSurface struct {
	backend    *fakeBackend
	config     SurfaceConfig
	generation int
}

func (s *fakeSurface) Config() SurfaceConfig { return s.config }

func (s *fakeSurface) Acquire() (Frame, error) {
	if s.generation != s.backend.generation {
		return nil, NewError(KindLost, "acquire", ErrStaleSurface)
	}
	if err := pop(&s.backend.acquireErr); err != nil {
		return nil, err
	}
	s.backend.acquired++
	return &fakeFrame{backend: s.backend, width: s.config.Width, height: s.config.Height}, nil
}

type fakeFrame struct {
	backend       *fakeBackend
	width, height uint32
}

func (f *fakeFrame) Width() uint32  { return f.width }
func (f *fakeFrame) Height() uint32 { return f.height }
func (f *fakeFrame) Target() any    { return f }
func (f *fakeFrame) Discard()       { f.backend.discarded++ }

// fakeClock is a manually stepped clock.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time       { return c.t }
func (c *fakeClock) Step(d time.Duration) { c.t = c.t.Add(d) }

// fakeHost is a window with scripted event batches. Once the script is
// exhausted it requests close.
type fakeHost struct {
	gpucontext.NullPlatformProvider

	width, height int
	scale         float64
	batches       [][]Event
	redraws       int
	cursors       []gpucontext.CursorShape
}

func (h *fakeHost) Size() (int, int)     { return h.width, h.height }
func (h *fakeHost) ScaleFactor() float64 { return h.scale }
func (h *fakeHost) RequestRedraw()       { h.redraws++ }

func (h *fakeHost) SetCursor(shape gpucontext.CursorShape) {
	h.cursors = append(h.cursors, shape)
}

func (h *fakeHost) PollEvents() []Event {
	if len(h.batches) == 0 {
		return []Event{CloseRequested()}
	}
	batch := h.batches[0]
	h.batches = h.batches[1:]
	return batch
}

// waitingHost is a fakeHost that also implements EventWaiter.
type waitingHost struct {
	fakeHost
	waits int
}

func (h *waitingHost) WaitEvents() []Event {
	h.waits++
	return h.PollEvents()
}

// recordingCompositor records every frame context it is given.
type recordingCompositor struct {
	contexts []FrameContext
	err      error
	cursor   gpucontext.CursorShape
	hasShape bool
	hook     func(FrameContext)
}

func (c *recordingCompositor) Compose(fc FrameContext) (Commands, error) {
	c.contexts = append(c.contexts, fc)
	if c.hook != nil {
		c.hook(fc)
	}
	if c.err != nil {
		return nil, c.err
	}
	return "commands", nil
}

func (c *recordingCompositor) Cursor() (gpucontext.CursorShape, bool) {
	return c.cursor, c.hasShape
}
