// SPDX-License-Identifier: MIT
// Package: proxgraph/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context with `%w`.
//   • Constructors never panic at runtime; validation panics are confined to
//     option constructor functions (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooSmall indicates that a size parameter (rows, columns, groups, chain
// length, term count) is smaller than the allowed minimum.
var ErrTooSmall = errors.New("builder: parameter too small")

// ErrNeedRandSource indicates that a stochastic constructor requires a non-nil
// *rand.Rand in the resolved builderConfig (WithSeed/WithRand must be set).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that an expression could not be assembled,
// e.g. a nil constructor or an expr shape error.
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrVariableConflict indicates two constructors declared the same variable
// ID with different shapes.
var ErrVariableConflict = errors.New("builder: variable redeclared with another shape")

// ErrInvalidBounds indicates lower > upper in a box constraint.
var ErrInvalidBounds = errors.New("builder: lower bound exceeds upper bound")

// builderErrorf prefixes a sentinel with the constructor name and detail.
// The result matches errors.Is(err, sentinel).
func builderErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}

// wrapExpr attaches constructor context to an expr construction error while
// keeping both ErrConstructFailed and the expr sentinel reachable.
func wrapExpr(method string, err error) error {
	return fmt.Errorf("%s: %w: %w", method, ErrConstructFailed, err)
}
