// SPDX-License-Identifier: MIT
// Package matrix: separability check over the objective-only incidence.

package matrix

import (
	"github.com/katalvlaran/proxgraph/core"
)

// CheckSeparable verifies that every variable of g is referenced by exactly
// one objective term. Variables are checked in graph order; the first
// violation is returned as a *SeparabilityError. Degrees are read from the
// graph's variable index, so the check is O(|V| + |E|) and never
// materializes the incidence matrix.
//
// Errors: ErrGraphNil, *SeparabilityError (wraps ErrNotSeparable).
func CheckSeparable(g *core.Graph) error {
	if g == nil {
		return ErrGraphNil
	}
	for _, v := range g.Variables() {
		if d := len(g.ObjEdgesByVariable(v)); d != 1 {
			return &SeparabilityError{Variable: v, Terms: d}
		}
	}

	return nil
}
