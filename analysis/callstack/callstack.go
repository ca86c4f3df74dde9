// Package callstack implements the Callstack Registry of spec §3/§4.4:
// truncating wrapper frames off a call chain and memoizing bases
// coined per truncated callstack.
package callstack

import (
	"strings"

	"github.com/cs-au-dk/heapabs/utils"
)

// Frame is one (function, call-site) pair, identifying a single call
// in the chain that led to the current builtin invocation.
type Frame struct {
	Func string
	Site string
}

// Callstack is an ordered list of frames, outermost first.
type Callstack []Frame

// Hash combines the frame hashes so a Callstack can key a persistent
// map, following utils.HashCombine's use throughout the teacher's
// lattice package.
func (s Callstack) Hash() uint32 {
	var h uint32
	for _, f := range s {
		h = utils.HashCombine(h, hashString(f.Func), hashString(f.Site))
	}
	return h
}

func (s Callstack) Equal(other Callstack) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Callstack) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.Func + "@" + f.Site
	}
	return strings.Join(parts, " -> ")
}

// Top returns the innermost frame (the call site of the current
// builtin invocation).
func (s Callstack) Top() Frame {
	return s[len(s)-1]
}

// WrapperSet names the functions configured as "malloc wrappers":
// frames stripped from the top of the stack while coining a base.
type WrapperSet map[string]bool

// NewWrapperSet builds a WrapperSet from spec §6's malloc-functions
// option.
func NewWrapperSet(names []string) WrapperSet {
	ws := make(WrapperSet, len(names))
	for _, n := range names {
		ws[n] = true
	}
	return ws
}

// NoWrappers implements spec §4.4's call_stack_no_wrappers: while the
// stack has at least two frames and both the top function and its
// immediate caller are configured wrappers, drop the top frame. The
// stack is never reduced to empty.
func (ws WrapperSet) NoWrappers(s Callstack) Callstack {
	for len(s) >= 2 && ws[s[len(s)-1].Func] && ws[s[len(s)-2].Func] {
		s = s[:len(s)-1]
	}
	return s
}

func hashString(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}
