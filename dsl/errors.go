package dsl

import (
	"errors"
	"fmt"
)

// Error kinds wrapped by *Error.
var (
	ErrSyntax      = errors.New("dsl: syntax error")
	ErrUnknownName = errors.New("dsl: unknown name")
	ErrArity       = errors.New("dsl: wrong number of arguments")
	ErrArgument    = errors.New("dsl: invalid argument")
	ErrCycle       = errors.New("dsl: reference cycle")
)

// Error reports a problem at a byte offset of a hint expression.
type Error struct {
	Kind   error
	Expr   string
	Offset int
	Msg    string
	// Entry names the catalog entry being resolved, if any.
	Entry string
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%v at offset %d of %q", e.Kind, e.Offset, e.Expr)
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Entry != "" {
		s = e.Entry + ": " + s
	}
	return s
}

func (e *Error) Unwrap() error { return e.Kind }

// AsError extracts an *Error from err using errors.As.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
