// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..."; callers match with errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrGraphNil indicates that a nil *core.Graph was passed into an adapter.
	ErrGraphNil = errors.New("matrix: graph is nil")

	// ErrUnknownVariable indicates that a variable ID is not a column.
	ErrUnknownVariable = errors.New("matrix: unknown variable id")

	// ErrUnknownFunction indicates that a function is not a row.
	ErrUnknownFunction = errors.New("matrix: unknown function")

	// ErrNotSeparable indicates that some variable is not referenced by
	// exactly one objective term.
	ErrNotSeparable = errors.New("matrix: problem is not separable")
)

// SeparabilityError names the first variable that violates separability and
// the number of objective terms referencing it.
type SeparabilityError struct {
	Variable string
	Terms    int
}

func (e *SeparabilityError) Error() string {
	return fmt.Sprintf("matrix: variable %q referenced by %d objective terms", e.Variable, e.Terms)
}

// Unwrap exposes ErrNotSeparable to errors.Is.
func (e *SeparabilityError) Unwrap() error { return ErrNotSeparable }
