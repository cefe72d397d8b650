package frameloop

// Verdict is the recovery action for a classified failure.
type Verdict uint8

const (
	// VerdictNone means there is no failure to recover from.
	VerdictNone Verdict = iota

	// VerdictRetry drops the current frame and continues with the next tick.
	VerdictRetry

	// VerdictReconfigure rebuilds the surface from the last known size and
	// skips the current frame.
	VerdictReconfigure

	// VerdictFatal stops the loop.
	VerdictFatal
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictNone:
		return "none"
	case VerdictRetry:
		return "retry"
	case VerdictReconfigure:
		return "reconfigure"
	case VerdictFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Classify maps a failure to its recovery verdict. It is total: every
// non-nil error yields exactly one of [VerdictRetry], [VerdictReconfigure]
// or [VerdictFatal]. Unclassified errors are fatal.
//
//	KindLost        -> VerdictReconfigure
//	KindTransient   -> VerdictRetry
//	everything else -> VerdictFatal
func Classify(err error) Verdict {
	if err == nil {
		return VerdictNone
	}
	switch KindOf(err) {
	case KindLost:
		return VerdictReconfigure
	case KindTransient:
		return VerdictRetry
	default:
		return VerdictFatal
	}
}
