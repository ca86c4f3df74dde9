package absint

import "github.com/cs-au-dk/heapabs/analysis/callstack"

// Config is spec §6's configuration table, threaded explicitly through
// the engine rather than read from ambient global flags, so tests can
// exercise several configurations side by side.
type Config struct {
	MallocFunctions   []string
	MallocReturnsNull bool
	Mlevel            uint
	MallocPlevel      uint
	TisAllocWeakSize  int64
}

// DefaultConfig mirrors spec §6's defaults.
func DefaultConfig() Config {
	return Config{
		MallocFunctions:  []string{"malloc"},
		Mlevel:           0,
		MallocPlevel:     3,
		TisAllocWeakSize: 10000,
	}
}

// Wrappers builds a WrapperSet from the configured malloc-functions
// list. The Dispatcher's truncation step does not consult it: it uses
// the WrapperSet of the callstack.Oracle it is given.
func (c Config) Wrappers() callstack.WrapperSet {
	return callstack.NewWrapperSet(c.MallocFunctions)
}
