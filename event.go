package frameloop

import "fmt"

// EventKind identifies a host event.
type EventKind uint8

const (
	// EventRedrawRequested asks the loop to run one frame tick.
	EventRedrawRequested EventKind = iota

	// EventResized reports a new surface size in physical pixels.
	EventResized

	// EventScaleFactorChanged reports a new DPI scale together with the
	// resulting physical size.
	EventScaleFactorChanged

	// EventCloseRequested asks the loop to shut down.
	EventCloseRequested
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventRedrawRequested:
		return "RedrawRequested"
	case EventResized:
		return "Resized"
	case EventScaleFactorChanged:
		return "ScaleFactorChanged"
	case EventCloseRequested:
		return "CloseRequested"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is a notification delivered by the host between frame ticks.
// Width and Height are set for size-carrying events only.
type Event struct {
	Kind   EventKind
	Width  uint32
	Height uint32
}

// RedrawRequested returns a redraw event.
func RedrawRequested() Event { return Event{Kind: EventRedrawRequested} }

// Resized returns a resize event carrying the new physical size.
func Resized(width, height uint32) Event {
	return Event{Kind: EventResized, Width: width, Height: height}
}

// ScaleFactorChanged returns a scale change event carrying the new
// physical size.
func ScaleFactorChanged(width, height uint32) Event {
	return Event{Kind: EventScaleFactorChanged, Width: width, Height: height}
}

// CloseRequested returns a close event.
func CloseRequested() Event { return Event{Kind: EventCloseRequested} }

func (e Event) String() string {
	switch e.Kind {
	case EventResized, EventScaleFactorChanged:
		return fmt.Sprintf("%s(%dx%d)", e.Kind, e.Width, e.Height)
	default:
		return e.Kind.String()
	}
}
