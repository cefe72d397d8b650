package frameloop

import "time"

// Option configures a [Loop].
type Option func(*loopOptions)

// loopOptions holds configuration for loop creation.
type loopOptions struct {
	host     Host
	now      func() time.Time
	maxDrops int

	width, height uint32
	sizeSet       bool
}

// defaultOptions returns the default loop options.
func defaultOptions() loopOptions {
	return loopOptions{now: time.Now}
}

// WithHost sets the window the loop runs in. The initial surface size is
// taken from the host unless [WithInitialSize] is also given.
//
// Example:
//
//	loop, err := frameloop.New(b, c, frameloop.WithHost(window))
func WithHost(h Host) Option {
	return func(o *loopOptions) {
		o.host = h
	}
}

// WithInitialSize sets the physical size of the first surface
// configuration. A zero dimension starts the loop suspended.
func WithInitialSize(width, height uint32) Option {
	return func(o *loopOptions) {
		o.width, o.height = width, height
		o.sizeSet = true
	}
}

// WithClock replaces the clock used for frame pacing. Mainly useful in tests.
func WithClock(now func() time.Time) Option {
	return func(o *loopOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMaxConsecutiveDrops stops the loop with [ErrTooManyDroppedFrames]
// when n frames in a row are dropped by transient failures. Zero, the
// default, never stops the loop for dropped frames.
func WithMaxConsecutiveDrops(n int) Option {
	return func(o *loopOptions) {
		if n >= 0 {
			o.maxDrops = n
		}
	}
}
