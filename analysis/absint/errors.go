package absint

import "fmt"

// Kind discriminates the error/diagnostic taxonomy of spec §7.
type Kind int

const (
	InvalidArgCount Kind = iota
	InvalidFree
	InvalidRealloc
	WeakReallocUnsupported
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case InvalidArgCount:
		return "InvalidArgCount"
	case InvalidFree:
		return "InvalidFree"
	case InvalidRealloc:
		return "InvalidRealloc"
	case WeakReallocUnsupported:
		return "WeakReallocUnsupported"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return "?"
	}
}

// AnalysisError is the error that aborts only the current call's path,
// per spec §7's propagation policy: Dispatch returns it directly for an
// unregistered builtin (InvalidArgCount), and recovers it as the panic
// value of InvalidRealloc, WeakReallocUnsupported and
// InvariantViolation. InvalidFree is reported as a Diagnostic instead.
type AnalysisError struct {
	Kind Kind
	Msg  string
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind Kind, format string, args ...interface{}) *AnalysisError {
	return &AnalysisError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// invariantViolation reports a fatal assertion failure: the Validity
// Updater was called on a base that isn't Allocated with Variable
// validity. Per spec §7 this is a host-analyzer fatal, not a
// panic that should escape the process, so callers invoke this
// through a recover-based guard at the top of the dispatcher; the
// panic value is always *AnalysisError with Kind InvariantViolation.
func invariantViolation(format string, args ...interface{}) {
	panic(newError(InvariantViolation, format, args...))
}

// notYetImplemented reports the WeakReallocUnsupported fatal from
// spec §4.9's tis_realloc copy loop.
func notYetImplemented(format string, args ...interface{}) {
	panic(newError(WeakReallocUnsupported, format, args...))
}
