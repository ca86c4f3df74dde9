package main

import (
	"github.com/cs-au-dk/heapabs/analysis/absint"
	"github.com/cs-au-dk/heapabs/analysis/callstack"
	"github.com/cs-au-dk/heapabs/analysis/lattice"
)

// scenario bundles the mlevel the steps were written against with the
// sequence of calls to replay, reproducing spec §8's literal
// end-to-end scenarios that exercise only the builtin-dispatch
// surface (scenarios needing direct memory-content setup, like the
// realloc byte-content scenarios, live as engine tests instead).
type scenario struct {
	mlevel uint
	steps  []func(ctx *absint.Context) absint.Call
}

func fourBytes(ctx *absint.Context) lattice.Value {
	return lattice.InjectIval(lattice.Singleton(4))
}

var scenarios = map[string]scenario{
	// Two sequential malloc(4) at the same callsite with mlevel=0:
	// the ladder has no strong slots, so the first call already
	// mints a weak base and the second call reuses it, with validity
	// (31, 31) bits.
	"scenario1": {
		mlevel: 0,
		steps: []func(ctx *absint.Context) absint.Call{
			func(ctx *absint.Context) absint.Call {
				return absint.Call{Name: "Frama_C_alloc_by_stack", Site: callStack("L"), Oracle: oracle("L"),
					Size: fourBytes(ctx), ConstantSize: true}
			},
			func(ctx *absint.Context) absint.Call {
				return absint.Call{Name: "Frama_C_alloc_by_stack", Site: callStack("L"), Oracle: oracle("L"),
					Size: fourBytes(ctx), ConstantSize: true}
			},
		},
	},
	// mlevel=2, three malloc(4) at site L: the third call's base is
	// weak, the first two stay strong and distinct.
	"scenario2": {
		mlevel: 2,
		steps: []func(ctx *absint.Context) absint.Call{
			func(ctx *absint.Context) absint.Call {
				return absint.Call{Name: "Frama_C_alloc_by_stack", Site: callStack("L"), Oracle: oracle("L"),
					Size: fourBytes(ctx), ConstantSize: true}
			},
			func(ctx *absint.Context) absint.Call {
				return absint.Call{Name: "Frama_C_alloc_by_stack", Site: callStack("L"), Oracle: oracle("L"),
					Size: fourBytes(ctx), ConstantSize: true}
			},
			func(ctx *absint.Context) absint.Call {
				return absint.Call{Name: "Frama_C_alloc_by_stack", Site: callStack("L"), Oracle: oracle("L"),
					Size: fourBytes(ctx), ConstantSize: true}
			},
		},
	},
	// p = malloc(8); q = malloc(8); free(p); r = malloc(8), mlevel=1:
	// r reuses p's base (strong), q remains bound.
	"scenario3": {
		mlevel: 1,
		steps: []func(ctx *absint.Context) absint.Call{
			func(ctx *absint.Context) absint.Call {
				return absint.Call{Name: "Frama_C_alloc_by_stack", Site: callStack("L"), Oracle: oracle("L"),
					Size: lattice.InjectIval(lattice.Singleton(8)), ConstantSize: true}
			},
			func(ctx *absint.Context) absint.Call {
				return absint.Call{Name: "Frama_C_alloc_by_stack", Site: callStack("L"), Oracle: oracle("L"),
					Size: lattice.InjectIval(lattice.Singleton(8)), ConstantSize: true}
			},
			func(ctx *absint.Context) absint.Call {
				firstBase := ctx.Registry.Pool(callStack("L"))[0]
				return absint.Call{Name: "Frama_C_free", Site: callStack("L"),
					Ptr: lattice.Inject(firstBase, lattice.Singleton(0))}
			},
			func(ctx *absint.Context) absint.Call {
				return absint.Call{Name: "Frama_C_alloc_by_stack", Site: callStack("L"), Oracle: oracle("L"),
					Size: lattice.InjectIval(lattice.Singleton(8)), ConstantSize: true}
			},
		},
	},
}

func callStack(site string) callstack.Callstack {
	return callstack.Callstack{{Func: "main", Site: site}}
}
