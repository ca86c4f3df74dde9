package absint

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/cs-au-dk/heapabs/analysis/callstack"
	"github.com/cs-au-dk/heapabs/analysis/location"
	"github.com/cs-au-dk/heapabs/utils"
)

var diagColor = utils.CanColorize(color.New(color.FgHiRed).SprintFunc())

// Diagnostic is spec §4's supplemented structured form of a
// recoverable error: not just a printed line, but a value tests can
// inspect (spec §8 scenario 4 requires checking both the diagnostic
// and that the surviving base remains bound).
type Diagnostic struct {
	Kind     Kind
	Message  string
	Base     location.BaseID
	HasBase  bool
	Callsite callstack.Callstack
}

func newDiagnostic(kind Kind, msg string, site callstack.Callstack) Diagnostic {
	return Diagnostic{Kind: kind, Message: msg, Callsite: site}
}

func (d Diagnostic) withBase(id location.BaseID) Diagnostic {
	d.Base = id
	d.HasBase = true
	return d
}

func (d Diagnostic) String() string {
	base := ""
	if d.HasBase {
		base = fmt.Sprintf(" (base %d)", d.Base)
	}
	return diagColor(fmt.Sprintf("[%s]", d.Kind)) + " " + d.Message + base + " at " + d.Callsite.String()
}
