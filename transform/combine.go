// SPDX-License-Identifier: MIT

// File: combine.go
// Role: optional pass merging affine objective terms into the term they
// overlap most.
package transform

import (
	"fmt"

	"github.com/katalvlaran/proxgraph/core"
	"github.com/katalvlaran/proxgraph/expr"
	"github.com/katalvlaran/proxgraph/matrix"
)

// MaxOverlapFunction returns the objective term other than f that shares
// the most variables with f. Ties go to the earliest term. It returns nil
// when there is no other objective term or the best overlap is zero. Only
// f's objective neighborhood is materialized.
//
// Errors: ErrNilGraph, or a wrapped matrix error when f is not in g.
func MaxOverlapFunction(g *core.Graph, f *core.Function) (*core.Function, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if f == nil {
		return nil, fmt.Errorf("MaxOverlapFunction: %w", matrix.ErrUnknownFunction)
	}
	im, err := matrix.NewIncidence(g, matrix.WithObjectiveOnly(), matrix.WithBinary(), matrix.WithFocus(f))
	if err != nil {
		return nil, fmt.Errorf("MaxOverlapFunction: %w", err)
	}
	overlaps, err := im.Overlaps(f)
	if err != nil {
		return nil, fmt.Errorf("MaxOverlapFunction: %w", err)
	}

	var best *core.Function
	bestN := 0
	for i, h := range im.Functions {
		if h == f || h.Constraint {
			continue
		}
		if overlaps[i] > bestN {
			best, bestN = h, overlaps[i]
		}
	}

	return best, nil
}

// CombineAffineFunctions replaces every affine prox term f that references
// at least one variable, together with its max-overlap partner h, by the
// single objective term h + f. Terms consumed earlier in the pass are
// skipped.
//
// Returns the number of merges performed.
func CombineAffineFunctions(g *core.Graph) (int, error) {
	if g == nil {
		return 0, ErrNilGraph
	}

	merged := 0
	for _, f := range g.ObjTerms() {
		if !g.HasFunction(f) || !isAffineProx(f.Expr) {
			continue
		}
		edges, err := g.EdgesByFunction(f)
		if err != nil {
			return merged, fmt.Errorf("CombineAffineFunctions: %w", err)
		}
		if len(edges) == 0 {
			continue
		}
		h, err := MaxOverlapFunction(g, f)
		if err != nil {
			return merged, fmt.Errorf("CombineAffineFunctions: %w", err)
		}
		if h == nil {
			continue
		}

		sum, err := expr.Add(h.Expr, f.Expr)
		if err != nil {
			return merged, fmt.Errorf("CombineAffineFunctions: %w", err)
		}
		if err = g.RemoveFunction(f); err != nil {
			return merged, fmt.Errorf("CombineAffineFunctions: %w", err)
		}
		if err = g.RemoveFunction(h); err != nil {
			return merged, fmt.Errorf("CombineAffineFunctions: %w", err)
		}
		if err = g.AddFunction(core.NewFunction(sum, false)); err != nil {
			return merged, fmt.Errorf("CombineAffineFunctions: %w", err)
		}
		merged++
	}

	return merged, nil
}

func isAffineProx(e *expr.Expr) bool {
	return e.Kind == expr.KindProxFunction && e.Prox == expr.ProxAffine
}
