package frameloop

import "time"

// FrameTimer measures the interval between successfully presented frames.
// The zero value is not usable; create one with [NewFrameTimer].
type FrameTimer struct {
	last time.Time
}

// NewFrameTimer returns a timer whose reference point is start.
func NewFrameTimer(start time.Time) *FrameTimer {
	return &FrameTimer{last: start}
}

// Elapsed returns the time since the last presented frame. A clock that
// steps backwards yields zero rather than a negative interval.
func (t *FrameTimer) Elapsed(now time.Time) time.Duration {
	d := now.Sub(t.last)
	if d < 0 {
		return 0
	}
	return d
}

// Advance moves the reference point to now. It never moves backwards.
func (t *FrameTimer) Advance(now time.Time) {
	if now.After(t.last) {
		t.last = now
	}
}

// Last returns the time of the last presented frame.
func (t *FrameTimer) Last() time.Time {
	return t.last
}
