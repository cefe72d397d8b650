package frameloop

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gpucontext"
)

// Stats counts what the loop has done since it was created.
type Stats struct {
	Frames           uint64 // frames presented
	Dropped          uint64 // frames dropped by transient failures
	Reconfigurations uint64 // surface rebuilds after loss
	Resizes          uint64 // resize and scale change events applied
}

// Loop is the frame presentation state machine.
//
// A Loop is driven from one goroutine, normally the one that owns the
// window. Events are handled strictly between frame ticks; a tick never
// overlaps another tick or a reconfiguration.
type Loop struct {
	backend    Backend
	compositor Compositor
	host       Host
	platform   gpucontext.PlatformProvider
	surfaces   *SurfaceManager
	timer      *FrameTimer
	now        func() time.Time

	state    State
	maxDrops int
	drops    int
	stats    Stats

	cursor    gpucontext.CursorShape
	cursorSet bool

	done bool
	err  error
}

// New creates a loop presenting through b and drawing with c, and applies
// the initial surface configuration. The backend is not owned by the loop;
// the caller closes it after the loop stops.
func New(b Backend, c Compositor, opts ...Option) (*Loop, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	if c == nil {
		return nil, ErrNilCompositor
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	l := &Loop{
		backend:    b,
		compositor: c,
		host:       o.host,
		surfaces:   NewSurfaceManager(b),
		now:        o.now,
		maxDrops:   o.maxDrops,
	}
	if p, ok := o.host.(gpucontext.PlatformProvider); ok {
		l.platform = p
	}

	width, height := o.width, o.height
	if !o.sizeSet && o.host != nil {
		width, height = physicalSize(o.host)
	}
	activate(b)
	if err := l.surfaces.Configure(width, height); err != nil {
		deactivate(b)
		return nil, err
	}
	l.timer = NewFrameTimer(l.now())

	Logger().Info("frameloop: loop created",
		"backend", b.Name(), "width", width, "height", height)
	return l, nil
}

// physicalSize returns the host size in physical pixels.
func physicalSize(h Host) (width, height uint32) {
	if fs, ok := h.(FramebufferSizer); ok {
		w, ht := fs.FramebufferSize()
		return clampDim(float64(w)), clampDim(float64(ht))
	}
	w, ht := h.Size()
	scale := h.ScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	return clampDim(math.Round(float64(w) * scale)), clampDim(math.Round(float64(ht) * scale))
}

func clampDim(v float64) uint32 {
	switch {
	case v <= 0:
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}

// HandleEvent dispatches one host event. Redraw requests run a frame tick;
// resize and scale changes reconfigure the surface; close requests stop
// the loop with a zero exit code.
func (l *Loop) HandleEvent(ev Event) Outcome {
	if l.done {
		return Outcome{Kind: OutcomeIdle}
	}
	switch ev.Kind {
	case EventRedrawRequested:
		return l.Tick()
	case EventResized, EventScaleFactorChanged:
		return l.resize(ev.Width, ev.Height)
	case EventCloseRequested:
		Logger().Info("frameloop: close requested")
		l.stop(nil)
		return Outcome{Kind: OutcomeIdle}
	default:
		return Outcome{Kind: OutcomeIdle}
	}
}

// resize applies a new surface size immediately.
func (l *Loop) resize(width, height uint32) Outcome {
	if l.state != StateIdle {
		return l.fail(NewError(KindUnknown, "resize", ErrFrameInFlight))
	}
	l.stats.Resizes++
	l.state = StateReconfiguring
	if err := l.surfaces.Configure(width, height); err != nil {
		return l.fail(err)
	}
	l.state = StateIdle
	return Outcome{Kind: OutcomeIdle}
}

// Tick runs one frame: acquire, compose, submit and present.
//
// A suspended surface skips the tick. Acquire and present failures are
// classified with [Classify]; draw and submission failures are fatal
// whatever kind the backend reported.
// The pacing reference advances only when the frame was presented.
func (l *Loop) Tick() Outcome {
	if l.done {
		return Outcome{Kind: OutcomeIdle}
	}
	if l.state != StateIdle {
		return l.fail(NewError(KindUnknown, "tick", ErrFrameInFlight))
	}
	if l.surfaces.Suspended() {
		Logger().Debug("frameloop: tick skipped, surface suspended")
		return Outcome{Kind: OutcomeIdle}
	}

	now := l.now()
	elapsed := l.timer.Elapsed(now)

	l.state = StateAcquiring
	frame, err := l.surfaces.AcquireFrame()
	if err != nil {
		return l.recoverFrame(err)
	}

	l.state = StateDrawing
	cmds, err := l.compositor.Compose(FrameContext{
		Frame:   frame,
		Config:  l.surfaces.Config(),
		Elapsed: elapsed,
		Index:   l.stats.Frames,
	})
	if err != nil {
		frame.Discard()
		return l.fail(NewError(KindDraw, "draw", err))
	}
	if l.done {
		// The compositor re-entered the loop and stopped it.
		frame.Discard()
		if l.err == nil {
			return Outcome{Kind: OutcomeIdle}
		}
		return Outcome{Kind: OutcomeFatal, Verdict: VerdictFatal, Err: l.err}
	}
	l.forwardCursor()

	l.state = StateSubmitting
	if err := l.backend.Submit(frame, cmds); err != nil {
		if isPresentFailure(err) {
			return l.recoverFrame(err)
		}
		return l.fail(asSubmission(err))
	}

	l.timer.Advance(now)
	l.drops = 0
	l.stats.Frames++
	l.state = StateIdle
	return Outcome{
		Kind:    OutcomeSuccess,
		Width:   frame.Width(),
		Height:  frame.Height(),
		Elapsed: elapsed,
	}
}

// recoverFrame applies the verdict for a failed acquire or present.
func (l *Loop) recoverFrame(err error) Outcome {
	v := Classify(err)
	switch v {
	case VerdictReconfigure:
		l.stats.Reconfigurations++
		w, h := l.surfaces.Size()
		Logger().Warn("frameloop: surface lost, reconfiguring",
			"width", w, "height", h, "err", err)
		l.state = StateReconfiguring
		if cerr := l.surfaces.Reconfigure(); cerr != nil {
			return l.fail(cerr)
		}
		l.drops = 0
		l.state = StateIdle
		return Outcome{Kind: OutcomeRecoverable, Verdict: v, Err: err}

	case VerdictRetry:
		l.stats.Dropped++
		l.drops++
		Logger().Warn("frameloop: frame dropped", "consecutive", l.drops, "err", err)
		if l.maxDrops > 0 && l.drops >= l.maxDrops {
			return l.fail(fmt.Errorf("%w: %d in a row: %w", ErrTooManyDroppedFrames, l.drops, err))
		}
		l.state = StateIdle
		return Outcome{Kind: OutcomeRecoverable, Verdict: v, Err: err}

	default:
		return l.fail(err)
	}
}

// fail stops the loop with a fatal error.
func (l *Loop) fail(err error) Outcome {
	Logger().Error("frameloop: fatal error", "state", l.state.String(), "err", err)
	l.stop(err)
	return Outcome{Kind: OutcomeFatal, Verdict: VerdictFatal, Err: err}
}

func (l *Loop) stop(err error) {
	if !l.done {
		deactivate(l.backend)
	}
	l.state = StateTerminating
	l.done = true
	if l.err == nil {
		l.err = err
	}
}

// forwardCursor passes the compositor's cursor request to the host when it
// differs from the last one forwarded.
func (l *Loop) forwardCursor() {
	if l.platform == nil {
		return
	}
	cr, ok := l.compositor.(CursorReporter)
	if !ok {
		return
	}
	shape, ok := cr.Cursor()
	if !ok || (l.cursorSet && shape == l.cursor) {
		return
	}
	l.cursor = shape
	l.cursorSet = true
	l.platform.SetCursor(shape)
}

// Run polls the host for events and dispatches them until a close request,
// a fatal error or cancellation of ctx. Cancellation stops the loop like a
// close request. Run returns the fatal error, if any.
//
// After each batch of events Run asks the host for another redraw, so the
// loop renders continuously. While the surface is suspended no redraw is
// requested and a host implementing [EventWaiter] is waited on instead of
// polled.
func (l *Loop) Run(ctx context.Context) error {
	if l.host == nil {
		return ErrNoHost
	}
	Logger().Info("frameloop: loop started", "backend", l.backend.Name())

	for !l.done {
		if ctx.Err() != nil {
			Logger().Info("frameloop: context canceled", "err", ctx.Err())
			l.stop(nil)
			break
		}
		for _, ev := range l.nextEvents() {
			l.HandleEvent(ev)
			if l.done {
				break
			}
		}
		if !l.done && !l.surfaces.Suspended() {
			l.host.RequestRedraw()
		}
	}

	Logger().Info("frameloop: loop stopped",
		"frames", l.stats.Frames, "dropped", l.stats.Dropped,
		"reconfigurations", l.stats.Reconfigurations, "err", l.err)
	return l.err
}

// nextEvents polls the host, or waits on it while suspended.
func (l *Loop) nextEvents() []Event {
	if w, ok := l.host.(EventWaiter); ok && l.surfaces.Suspended() {
		return w.WaitEvents()
	}
	return l.host.PollEvents()
}

// Close stops the loop. Subsequent ticks and events do nothing.
func (l *Loop) Close() {
	l.stop(nil)
}

// State returns the current loop phase.
func (l *Loop) State() State { return l.state }

// Done reports whether the loop has stopped.
func (l *Loop) Done() bool { return l.done }

// Err returns the fatal error that stopped the loop, or nil.
func (l *Loop) Err() error { return l.err }

// ExitCode returns the process status for the loop: 0 while running or
// after a requested close, 1 after a fatal error.
func (l *Loop) ExitCode() int {
	if l.err != nil {
		return 1
	}
	return 0
}

// Stats returns the loop counters.
func (l *Loop) Stats() Stats { return l.stats }

// Config returns the active surface configuration.
func (l *Loop) Config() SurfaceConfig { return l.surfaces.Config() }

// Suspended reports whether presentation is paused by a zero-sized surface.
func (l *Loop) Suspended() bool { return l.surfaces.Suspended() }
