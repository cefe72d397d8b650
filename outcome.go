package frameloop

import (
	"fmt"
	"time"
)

// OutcomeKind is the result class of one loop step.
type OutcomeKind uint8

const (
	// OutcomeIdle means no frame was attempted: the surface is suspended,
	// the event carried no frame work, or the loop has stopped.
	OutcomeIdle OutcomeKind = iota

	// OutcomeSuccess means a frame was presented.
	OutcomeSuccess

	// OutcomeRecoverable means the frame was skipped and the loop continues.
	OutcomeRecoverable

	// OutcomeFatal means the loop has stopped with an error.
	OutcomeFatal
)

// String returns the outcome kind name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIdle:
		return "Idle"
	case OutcomeSuccess:
		return "Success"
	case OutcomeRecoverable:
		return "Recoverable"
	case OutcomeFatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Outcome reports what a single tick or event did.
type Outcome struct {
	Kind OutcomeKind

	// Verdict is the classification of Err for recoverable and fatal outcomes.
	Verdict Verdict

	// Err is the failure that produced a recoverable or fatal outcome.
	Err error

	// Width and Height are the dimensions of the presented frame.
	Width, Height uint32

	// Elapsed is the frame interval handed to the compositor.
	Elapsed time.Duration
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf("Success(%dx%d, %s)", o.Width, o.Height, o.Elapsed)
	case OutcomeRecoverable, OutcomeFatal:
		return fmt.Sprintf("%s(%s: %v)", o.Kind, o.Verdict, o.Err)
	default:
		return o.Kind.String()
	}
}
