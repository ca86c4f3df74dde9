package callstack

// Oracle is the out-of-scope collaborator (spec §6) that reports the
// analyzer's current call chain. heapabs's CLI driver implements it
// with a Static oracle holding a one-frame stack for each scripted
// Call (every Call replays at top level), but the engine only ever
// depends on the interface.
type Oracle interface {
	CurrentStack() Callstack
	Wrappers() WrapperSet
}

// Static is a trivial Oracle backed by a fixed stack and wrapper set,
// useful for tests and for the CLI driver's scenario replay, where
// each scripted Call carries its own call site explicitly.
type Static struct {
	Stack    Callstack
	WrapperS WrapperSet
}

func (s Static) CurrentStack() Callstack { return s.Stack }
func (s Static) Wrappers() WrapperSet    { return s.WrapperS }

var _ Oracle = Static{}
