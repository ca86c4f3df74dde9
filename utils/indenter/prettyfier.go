// Package indenter is a tiny pretty-printing helper for nested
// String() output; in heapabs, utils/tree's String rendering uses it.
package indenter

import (
	"fmt"
	"strings"
)

type indenter struct{}

// Indenter starts a fresh pretty-printing session.
func Indenter() indenter {
	return indenter{}
}

var _buffer string
var _level = 0

func indent() string {
	return strings.Repeat("  ", _level)
}

func (indenter) Start(str string) indenter {
	_buffer = str
	return Indenter()
}

type stringableString string

func (s stringableString) String() string {
	return string(s)
}

// NestStrings nests the given strings below the current buffer, one per line.
func (i indenter) NestStrings(strs ...string) indenter {
	return i.NestStringsSep("", strs...)
}

// NestStringsSep nests the given strings below the current buffer, separated by sep.
func (i indenter) NestStringsSep(sep string, strs ...string) indenter {
	stringers := make([]fmt.Stringer, len(strs))
	for i, v := range strs {
		stringers[i] = stringableString(v)
	}
	return i.NestSep(sep, stringers...)
}

// NestSep nests the given stringers below the current buffer, separated by sep.
func (indenter) NestSep(sep string, strs ...fmt.Stringer) indenter {
	if len(strs) == 1 {
		_buffer += strs[0].String()
		return Indenter()
	}

	_level++
	for i, str := range strs {
		_buffer += "\n" + indent() + str.String()
		if i < len(strs)-1 {
			_buffer += sep
		}
	}
	_level--
	_buffer += "\n"
	return Indenter()
}

// NestThunked nests the given thunked strings below the current
// buffer, one per line, evaluating each thunk only once it's its turn
// to render.
func (indenter) NestThunked(strs ...func() string) indenter {
	return Indenter().NestThunkedSep("", strs...)
}

// NestThunkedSep nests the given thunked strings below the current
// buffer, separated by sep.
func (indenter) NestThunkedSep(sep string, strs ...func() string) indenter {
	if len(strs) == 1 {
		_buffer += strs[0]()
		return Indenter()
	}

	_level++
	for i, str := range strs {
		_buffer += "\n" + indent() + str()
		if i < len(strs)-1 {
			_buffer += sep
		}
	}
	_level--
	_buffer += "\n"
	return Indenter()
}

// End closes the current buffer with str and returns the rendered result.
func (indenter) End(str string) string {
	var res string
	if len(_buffer) > 0 && _buffer[len(_buffer)-1] == '\n' {
		res = _buffer + indent() + str
	} else {
		res = _buffer + str
	}
	_buffer = ""
	return res
}
