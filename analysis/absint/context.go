package absint

import (
	"github.com/cs-au-dk/heapabs/analysis/callstack"
	"github.com/cs-au-dk/heapabs/analysis/location"
	"github.com/cs-au-dk/heapabs/analysis/typesys"
)

// Context is the analyzer-wide, process-wide state the Design Notes
// call for: an explicit struct passed to every engine call rather
// than ambient singletons. It owns the Arena (mutable Base metadata)
// and the CallstackRegistry, and tracks the MallocedBases set — all
// three are process-wide with an init-at-analysis-start,
// teardown-at-analysis-end lifecycle, so a fresh Context is created
// per analysis run.
type Context struct {
	Arena    *location.Arena
	Registry *callstack.Registry
	Types    *typesys.Oracle
	Config   Config
	Metrics  *Metrics

	// MallocedBases grows only by insertion (spec §5): every base
	// ever coined by the Base Factory is recorded here and never
	// removed, even once freed, so the Leak Check can still find it.
	mallocedBases map[location.BaseID]bool

	Diagnostics []Diagnostic
}

// NewContext creates a fresh analyzer context for one analysis run.
func NewContext(cfg Config) *Context {
	return &Context{
		Arena:         location.NewArena(),
		Registry:      callstack.NewRegistry(),
		Types:         typesys.NewOracle(),
		Config:        cfg,
		Metrics:       &Metrics{},
		mallocedBases: make(map[location.BaseID]bool),
	}
}

// MarkMalloced records id as a live "malloced" base.
func (c *Context) MarkMalloced(id location.BaseID) {
	c.mallocedBases[id] = true
	c.Metrics.BasesCoined++
}

// IsMalloced reports whether id was ever coined as a malloced base.
func (c *Context) IsMalloced(id location.BaseID) bool {
	return c.mallocedBases[id]
}

// MallocedBases returns every base ever coined, for the Leak Check.
func (c *Context) MallocedBases() []location.BaseID {
	ids := make([]location.BaseID, 0, len(c.mallocedBases))
	for id := range c.mallocedBases {
		ids = append(ids, id)
	}
	return ids
}

func (c *Context) report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
	c.Metrics.Diagnostics++
}
