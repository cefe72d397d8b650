package frameloop

// State is the phase of the frame presentation loop.
type State uint8

const (
	// StateIdle waits for the next host event.
	StateIdle State = iota

	// StateAcquiring is requesting the next drawable texture.
	StateAcquiring

	// StateDrawing is running the compositor for the acquired frame.
	StateDrawing

	// StateSubmitting is submitting commands and presenting the frame.
	StateSubmitting

	// StateReconfiguring is applying a new surface configuration.
	StateReconfiguring

	// StateTerminating is final. No further ticks are run.
	StateTerminating
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAcquiring:
		return "Acquiring"
	case StateDrawing:
		return "Drawing"
	case StateSubmitting:
		return "Submitting"
	case StateReconfiguring:
		return "Reconfiguring"
	case StateTerminating:
		return "Terminating"
	default:
		return "Unknown"
	}
}
