package frameloop

import (
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.host != nil {
		t.Error("default host should be nil")
	}
	if o.now == nil {
		t.Fatal("default clock should not be nil")
	}
	if o.maxDrops != 0 {
		t.Errorf("default maxDrops = %d, want 0", o.maxDrops)
	}
	if o.sizeSet {
		t.Error("default sizeSet should be false")
	}
}

func TestWithInitialSize(t *testing.T) {
	o := defaultOptions()
	WithInitialSize(640, 0)(&o)
	if o.width != 640 || o.height != 0 || !o.sizeSet {
		t.Errorf("WithInitialSize(640, 0) = %dx%d set=%v", o.width, o.height, o.sizeSet)
	}
}

func TestWithClock(t *testing.T) {
	fixed := time.Unix(100, 0)
	o := defaultOptions()
	WithClock(func() time.Time { return fixed })(&o)
	if got := o.now(); !got.Equal(fixed) {
		t.Errorf("now() = %v, want %v", got, fixed)
	}

	WithClock(nil)(&o)
	if got := o.now(); !got.Equal(fixed) {
		t.Error("WithClock(nil) should keep the previous clock")
	}
}

func TestWithMaxConsecutiveDrops(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{5, 5},
		{-1, 0},
	}
	for _, tt := range tests {
		o := defaultOptions()
		WithMaxConsecutiveDrops(tt.n)(&o)
		if o.maxDrops != tt.want {
			t.Errorf("WithMaxConsecutiveDrops(%d): maxDrops = %d, want %d", tt.n, o.maxDrops, tt.want)
		}
	}
}
