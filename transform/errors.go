// SPDX-License-Identifier: MIT

package transform

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/proxgraph/expr"
)

var (
	// ErrNilGraph indicates a pass was applied to a nil graph.
	ErrNilGraph = errors.New("transform: graph is nil")

	// ErrNotSeparable indicates the compiled problem failed the
	// separability check.
	ErrNotSeparable = errors.New("transform: output is not separable")

	// ErrInvalidConfig indicates a Config that failed validation.
	ErrInvalidConfig = errors.New("transform: invalid config")
)

// InvariantError is the panic value for internal faults: structures that
// valid constructors never produce.
type InvariantError struct {
	Op   string
	Msg  string
	Expr *expr.Expr
}

func (e *InvariantError) Error() string {
	if e.Expr == nil {
		return fmt.Sprintf("transform: %s: invariant violated: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("transform: %s: invariant violated: %s\n%s", e.Op, e.Msg, expr.Format(e.Expr))
}
