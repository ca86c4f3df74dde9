// Command heapabs replays a literal scenario script through the
// allocation-base lifecycle engine and prints the resulting memory
// state, diagnostics, and leak report. The callstack oracle and a
// real program-under-analysis are out of scope (spec §1): rather than
// parsing C or Go source, the driver's "program" is a fixed sequence
// of builtin calls, the same role main.go/pipeline.go play for the
// teacher analyzer (load program -> build CFG -> run absint).
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/cs-au-dk/heapabs/analysis/absint"
	"github.com/cs-au-dk/heapabs/analysis/callstack"
	"github.com/cs-au-dk/heapabs/analysis/lattice"
	"github.com/cs-au-dk/heapabs/utils"
)

func main() {
	if err := utils.ParseArgs(); err != nil {
		log.Fatalf("heapabs: %v", err)
	}

	name := "scenario1"
	if flag.NArg() > 0 {
		name = flag.Arg(0)
	}

	scenario, ok := scenarios[name]
	if !ok {
		log.Fatalf("heapabs: unknown scenario %q", name)
	}

	cfg := absint.DefaultConfig()
	cfg.Mlevel = scenario.mlevel
	cfg.MallocReturnsNull = utils.Opts().MallocReturnsNull()
	cfg.MallocPlevel = utils.Opts().MallocPlevel()
	cfg.TisAllocWeakSize = int64(utils.Opts().TisAllocWeakSize())
	ctx := absint.NewContext(cfg)

	state := lattice.Bottom()
	for _, step := range scenario.steps {
		res, next, err := absint.Dispatch(ctx, state, step(ctx))
		if err != nil {
			utils.VerbosePrint("call error: %v\n", err)
			continue
		}
		state = next
		for _, alt := range res.Values {
			utils.VerbosePrint("-> %s\n", alt.Value)
		}
	}

	fmt.Println("final state bases:", state.Size())
	for _, d := range ctx.Diagnostics {
		fmt.Println(d)
	}

	report := ctx.CheckLeak(state)
	for _, l := range report.Leaked {
		fmt.Println("leak:", l.Name)
	}

	if utils.Opts().Metrics() {
		fmt.Println(ctx.Metrics)
	}
}

// oracle builds a single-frame callstack oracle for a scenario step,
// standing in for the real callstack-oracle collaborator (spec §6).
func oracle(site string) callstack.Oracle {
	return callstack.Static{
		Stack:    callstack.Callstack{{Func: "main", Site: site}},
		WrapperS: callstack.NewWrapperSet(utils.Opts().MallocFunctions()),
	}
}
