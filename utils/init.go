package utils

import (
	"flag"
	"fmt"
	"strings"
)

// options mirrors the configuration table of spec.md §6, plus the
// ambient flags carried over from goat (-no-colorize, -verbose,
// -metrics).
type options struct {
	mallocFunctions string
	mallocRetNull   bool
	mlevel          uint
	mallocPlevel    uint
	tisAllocWeakSz  uint

	noColorize bool
	verbose    bool
	metrics    bool
}

var opts = &options{}

type optInterface struct{}

// Opts returns the accessor for the parsed global configuration.
func Opts() optInterface {
	return optInterface{}
}

// MallocFunctions returns the set of names whose frames are stripped
// from the top of the stack while coining a base.
func (optInterface) MallocFunctions() []string {
	return strings.Split(opts.mallocFunctions, ",")
}

func (optInterface) MallocReturnsNull() bool {
	return opts.mallocRetNull
}

func (optInterface) Mlevel() uint {
	return opts.mlevel
}

func (optInterface) MallocPlevel() uint {
	return opts.mallocPlevel
}

func (optInterface) TisAllocWeakSize() uint {
	return opts.tisAllocWeakSz
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}

func (optInterface) Verbose() bool {
	return opts.verbose
}

func (optInterface) Metrics() bool {
	return opts.metrics
}

// CanColorize wraps a fatih/color string function so that it degrades
// to plain Sprintf when colorization is disabled, the same trick used
// throughout goat's location package.
func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

func init() {
	flag.StringVar(&opts.mallocFunctions, "malloc-functions", "malloc",
		"comma-separated names whose frames are stripped from the top of the stack while coining a base")
	flag.BoolVar(&opts.mallocRetNull, "malloc-returns-null", false,
		"enable the NULL-return failure alternative for fallible allocators")
	flag.UintVar(&opts.mlevel, "mlevel", 0,
		"max-level for alloc_by_stack (the CLI's built-in scenarios each set their own and do not read this value)")
	flag.UintVar(&opts.mallocPlevel, "malloc-plevel", 3,
		"max-level for alloc_tms / tis_alloc")
	flag.UintVar(&opts.tisAllocWeakSz, "tis-alloc-weak-size", 10000,
		"size used by legacy weak alloc (tis_alloc_weak)")

	flag.BoolVar(&opts.noColorize, "no-colorize", false, "disable pretty printer colorization")
	flag.BoolVar(&opts.verbose, "verbose", false, "enable verbose output")
	flag.BoolVar(&opts.metrics, "metrics", false, "print engine metrics after a run")
}

// ParseArgs parses the command line and validates cross-flag constraints.
func ParseArgs() error {
	flag.Parse()

	if strings.TrimSpace(opts.mallocFunctions) == "" {
		return fmt.Errorf("malloc-functions must name at least one function")
	}

	return nil
}

// VerbosePrint prints to stdout only when -verbose is set.
func VerbosePrint(format string, a ...interface{}) {
	if opts.verbose {
		fmt.Printf(format, a...)
	}
}
