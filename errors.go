package frameloop

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure kind. An [*Error] matches the sentinel
// of its kind with errors.Is, so callers do not need to unwrap.
var (
	// ErrInitialization indicates the backend could not be brought up.
	ErrInitialization = errors.New("frameloop: initialization failed")

	// ErrNoCompatibleDevice indicates no adapter can present to the target.
	ErrNoCompatibleDevice = errors.New("frameloop: no compatible GPU device")

	// ErrConfiguration indicates the surface could not be configured.
	ErrConfiguration = errors.New("frameloop: surface configuration failed")

	// ErrSurfaceLost indicates the presentation surface was invalidated.
	ErrSurfaceLost = errors.New("frameloop: surface lost")

	// ErrOutOfMemory indicates the device ran out of memory.
	ErrOutOfMemory = errors.New("frameloop: out of memory")

	// ErrTransient indicates a recoverable acquire or present failure,
	// such as a timeout or an outdated swap chain.
	ErrTransient = errors.New("frameloop: transient surface error")

	// ErrSubmission indicates command submission failed.
	ErrSubmission = errors.New("frameloop: submission failed")

	// ErrDraw indicates the drawing collaborator failed.
	ErrDraw = errors.New("frameloop: draw failed")
)

// Usage errors.
var (
	// ErrInvalidSize is returned for a surface configuration with a zero dimension.
	ErrInvalidSize = errors.New("frameloop: invalid surface size")

	// ErrNotConfigured is returned when a frame is requested before any
	// surface configuration has been applied.
	ErrNotConfigured = errors.New("frameloop: surface not configured")

	// ErrStaleSurface is returned by backends when a surface handle from a
	// previous configuration is used after reconfiguration.
	ErrStaleSurface = errors.New("frameloop: stale surface handle")

	// ErrFrameInFlight is returned when a tick starts while another is running.
	ErrFrameInFlight = errors.New("frameloop: frame already in flight")

	// ErrTooManyDroppedFrames is returned when the consecutive drop limit
	// configured with [WithMaxConsecutiveDrops] is reached.
	ErrTooManyDroppedFrames = errors.New("frameloop: too many consecutive dropped frames")

	// ErrNilBackend is returned by [New] when no backend is provided.
	ErrNilBackend = errors.New("frameloop: nil backend")

	// ErrNilCompositor is returned by [New] when no compositor is provided.
	ErrNilCompositor = errors.New("frameloop: nil compositor")

	// ErrNoHost is returned by [Loop.Run] when the loop has no event source.
	ErrNoHost = errors.New("frameloop: no host configured")

	// ErrUnsupportedTarget is returned by compositors that cannot draw into
	// the render target of the current backend.
	ErrUnsupportedTarget = errors.New("frameloop: unsupported render target")

	// ErrUnsupportedCommands is returned by backends handed commands
	// recorded for a different backend.
	ErrUnsupportedCommands = errors.New("frameloop: unsupported command type")

	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("frameloop: closed")
)

// Kind identifies the failure class of an [Error].
type Kind uint8

const (
	// KindUnknown is an error that carries no classification.
	KindUnknown Kind = iota

	// KindInitialization is a failure while opening the backend.
	KindInitialization

	// KindConfiguration is a failure while applying a surface configuration.
	KindConfiguration

	// KindLost means the surface must be reconfigured before reuse.
	KindLost

	// KindOutOfMemory means the device is out of memory.
	KindOutOfMemory

	// KindTransient is a recoverable acquire or present failure.
	KindTransient

	// KindSubmission is a failure while submitting recorded commands.
	KindSubmission

	// KindDraw is a failure reported by the drawing collaborator.
	KindDraw
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInitialization:
		return "initialization"
	case KindConfiguration:
		return "configuration"
	case KindLost:
		return "lost"
	case KindOutOfMemory:
		return "out of memory"
	case KindTransient:
		return "transient"
	case KindSubmission:
		return "submission"
	case KindDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// sentinel returns the package sentinel matched by errors of this kind.
func (k Kind) sentinel() error {
	switch k {
	case KindInitialization:
		return ErrInitialization
	case KindConfiguration:
		return ErrConfiguration
	case KindLost:
		return ErrSurfaceLost
	case KindOutOfMemory:
		return ErrOutOfMemory
	case KindTransient:
		return ErrTransient
	case KindSubmission:
		return ErrSubmission
	case KindDraw:
		return ErrDraw
	default:
		return nil
	}
}

// Operation names used in [Error.Op] for the two steps of [Backend.Submit].
const (
	OpSubmit  = "submit"
	OpPresent = "present"
)

// Error is a classified failure raised by a backend or by the loop.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError returns an [*Error] of the given kind. Backends use it to tag
// the failures they report so the loop can classify them.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("frameloop: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("frameloop: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf reports the failure class of err. Errors that are not an
// [*Error] are matched against the kind sentinels; anything else is
// [KindUnknown].
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var fe *Error
	if errors.As(err, &fe) && fe.Kind != KindUnknown {
		return fe.Kind
	}
	for k := KindInitialization; k <= KindDraw; k++ {
		if errors.Is(err, k.sentinel()) {
			return k
		}
	}
	return KindUnknown
}

// withKind tags err with kind unless it already carries a classification.
func withKind(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindUnknown {
		return err
	}
	return NewError(kind, op, err)
}

// isPresentFailure reports whether err was raised by the present step of
// [Backend.Submit].
func isPresentFailure(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Op == OpPresent
}

// asSubmission tags a failed submission as [KindSubmission]. Out of memory
// keeps its kind.
func asSubmission(err error) error {
	switch KindOf(err) {
	case KindSubmission, KindOutOfMemory:
		return err
	}
	return NewError(KindSubmission, OpSubmit, err)
}
