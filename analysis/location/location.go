// Package location implements the Base identity model of the
// allocation-base lifecycle engine: symbolic allocation bases,
// their validity records, and the arena that owns them.
package location

import (
	"go/types"

	"github.com/fatih/color"

	"github.com/cs-au-dk/heapabs/utils"
)

// colorize is used for pretty-printing Base names and validity.
var colorize = struct {
	Strong func(...interface{}) string
	Weak   func(...interface{}) string
	Kind   func(...interface{}) string
}{
	Strong: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiGreen).SprintFunc())(is...)
	},
	Weak: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiYellow).SprintFunc())(is...)
	},
	Kind: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
}

// BaseKind discriminates the five base variants. Only Allocated is
// ever created or updated by this module; the other four only ever
// arrive as opaque inputs.
type BaseKind int

const (
	Allocated BaseKind = iota
	Var
	String
	Null
	CLogicVar
)

func (k BaseKind) String() string {
	switch k {
	case Allocated:
		return "Allocated"
	case Var:
		return "Var"
	case String:
		return "String"
	case Null:
		return "Null"
	case CLogicVar:
		return "CLogicVar"
	default:
		return "?"
	}
}

// BaseID is the stable integer handle identifying a Base, per the
// Design Notes' preferred option (a): the memory state references
// bases by id, mutable metadata lives in the Arena.
type BaseID uint32

func (id BaseID) Hash() uint32 { return uint32(id) }

func (id BaseID) Equal(other BaseID) bool { return id == other }

var _ utils.HashableEq[BaseID] = BaseID(0)

// Base is the mutable record the Arena owns: a name, a kind, a
// validity record, and a guessed C type. Only the Arena mutates a
// Base in place; everything else holds it by BaseID.
type Base struct {
	ID       BaseID
	Kind     BaseKind
	Name     string
	Validity Validity
	Typ      types.Type
}

func (b *Base) String() string {
	col := colorize.Strong
	if b.Validity.Kind == Variable && b.Validity.Weak {
		col = colorize.Weak
	}
	return col(b.Name) + " " + colorize.Kind(b.Kind.String()) + " " + b.Validity.String()
}

