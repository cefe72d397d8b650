// Package hud provides a frameloop compositor that draws a small
// heads-up display: a background, a triangle and frame statistics.
//
// The compositor draws on both presentation backends. On the webgpu
// backend it records a render pass that clears the swap chain texture and
// draws a triangle whose tint follows elapsed time. On the software backend
// it returns ops that fill the framebuffer and print the title, the frame
// time and the frame counter.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/frameloop/backend/webgpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Option configures a [Compositor].
type Option func(*Compositor)

// WithTitle sets the text in the first HUD line.
func WithTitle(title string) Option {
	return func(c *Compositor) {
		c.title = title
	}
}

// WithBackground sets the clear color.
func WithBackground(bg color.RGBA) Option {
	return func(c *Compositor) {
		c.background = bg
	}
}

// WithLanguage sets the language used to format numbers.
func WithLanguage(tag language.Tag) Option {
	return func(c *Compositor) {
		c.printer = message.NewPrinter(tag)
	}
}

// WithCursor sets the cursor shape requested while the HUD is shown.
func WithCursor(shape gpucontext.CursorShape) Option {
	return func(c *Compositor) {
		c.cursor = shape
	}
}

// Compositor draws the HUD. It implements frameloop.Compositor and
// frameloop.CursorReporter.
//
// A Compositor is used from the loop goroutine only.
type Compositor struct {
	title      string
	background color.RGBA
	cursor     gpucontext.CursorShape
	printer    *message.Printer

	// clock accumulates the elapsed time of presented frames.
	clock time.Duration

	gpu *gpuPipeline
}

// New creates a HUD compositor. The built-in shader is validated up front
// so a broken shader fails at startup rather than on the first frame.
func New(opts ...Option) (*Compositor, error) {
	c := &Compositor{
		title:      "Hello world!",
		background: color.RGBA{R: 25, G: 51, B: 76, A: 255},
		cursor:     gpucontext.CursorDefault,
		printer:    message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := validateShader(triangleShader); err != nil {
		return nil, err
	}
	return c, nil
}

// Compose records the HUD for one frame.
func (c *Compositor) Compose(fc frameloop.FrameContext) (frameloop.Commands, error) {
	c.clock += fc.Elapsed

	switch t := fc.Frame.Target().(type) {
	case webgpu.RenderTarget:
		return c.composeGPU(t)
	case *image.RGBA:
		return c.composeCPU(fc), nil
	default:
		return nil, fmt.Errorf("hud: %w: %T", frameloop.ErrUnsupportedTarget, t)
	}
}

// Cursor reports the configured cursor shape.
func (c *Compositor) Cursor() (gpucontext.CursorShape, bool) {
	return c.cursor, true
}

// Lines returns the HUD text for a frame.
func (c *Compositor) Lines(fc frameloop.FrameContext) []string {
	ms := float64(fc.Elapsed) / float64(time.Millisecond)
	return []string{
		c.title,
		fmt.Sprintf("frametime: %.3fms", ms),
		c.printer.Sprintf("frames: %d", fc.Index),
		fmt.Sprintf("surface: %dx%d", fc.Config.Width, fc.Config.Height),
	}
}

// clearColor returns the background as a WebGPU clear value.
func (c *Compositor) clearColor() gputypes.Color {
	return gputypes.Color{
		R: float64(c.background.R) / 255,
		G: float64(c.background.G) / 255,
		B: float64(c.background.B) / 255,
		A: float64(c.background.A) / 255,
	}
}

// pulse returns a value in [0.5, 1] that cycles once every two seconds.
func (c *Compositor) pulse() float64 {
	phase := c.clock.Seconds() * math.Pi
	return 0.75 + 0.25*math.Sin(phase)
}

// Close releases GPU resources held by the compositor.
func (c *Compositor) Close() {
	if c.gpu != nil {
		c.gpu.release()
		c.gpu = nil
	}
}

var (
	_ frameloop.Compositor     = (*Compositor)(nil)
	_ frameloop.CursorReporter = (*Compositor)(nil)
)
