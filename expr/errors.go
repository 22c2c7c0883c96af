// SPDX-License-Identifier: MIT
// Package expr: sentinel error set and the structured Error type.
//
// Every constructor failure is an *Error that wraps exactly one sentinel,
// so callers branch with errors.Is and recover the offending expressions
// with errors.As. Shape and arity failures are not recoverable inside a
// compile; they abort it.

package expr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShape indicates operands with incompatible shapes (add, multiply,
	// stacking, linear maps) or an invalid index/reshape target.
	ErrShape = errors.New("expr: incompatible shapes")

	// ErrArity indicates a node received the wrong number of arguments
	// for its kind (e.g. an equality indicator with two arguments).
	ErrArity = errors.New("expr: wrong number of arguments")

	// ErrInvalid indicates a malformed node: nil argument, empty variable ID,
	// non-positive dimensions or a missing payload.
	ErrInvalid = errors.New("expr: invalid expression")
)

// Error is the structured failure returned by constructors. It carries the
// offending expressions so callers can report them.
type Error struct {
	// Op is the constructor that failed, e.g. "Add".
	Op string
	// Msg describes the violation.
	Msg string
	// Exprs are the offending operands, in argument order.
	Exprs []*Expr
	// Err is the wrapped sentinel.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("expr: ")
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if len(e.Exprs) > 0 {
		b.WriteString(" [")
		for i, x := range e.Exprs {
			if i > 0 {
				b.WriteString(", ")
			}
			if x == nil {
				b.WriteString("<nil>")
				continue
			}
			fmt.Fprintf(&b, "%s %s", x.Kind, x.Shape)
		}
		b.WriteString("]")
	}
	return b.String()
}

// Unwrap returns the wrapped sentinel.
func (e *Error) Unwrap() error { return e.Err }

func newError(sentinel error, op, msg string, exprs ...*Expr) *Error {
	return &Error{Op: op, Msg: msg, Exprs: exprs, Err: sentinel}
}
