// SPDX-License-Identifier: MIT

// File: equality.go
// Role: optional pass moving equality indicators from the objective into
// the constraint set.
package transform

import (
	"fmt"

	"github.com/katalvlaran/proxgraph/core"
	"github.com/katalvlaran/proxgraph/expr"
)

// IsProxFriendlyConstraint reports whether objective term f is an equality
// indicator that can become a constraint without taking the prox update
// away from another term: for every variable v of f, either f is the only
// objective term referencing v, or f depends on v through a scalar
// multiple only.
//
// It panics with *InvariantError if f is an equality indicator without
// exactly one argument.
func IsProxFriendlyConstraint(g *core.Graph, f *core.Function) bool {
	if f == nil || f.Expr == nil || !f.Expr.IsEqualityIndicator() {
		return false
	}
	if len(f.Expr.Args) != 1 {
		panic(&InvariantError{
			Op:   "IsProxFriendlyConstraint",
			Msg:  fmt.Sprintf("equality indicator with %d arguments", len(f.Expr.Args)),
			Expr: f.Expr,
		})
	}

	edges, err := g.EdgesByFunction(f)
	if err != nil {
		return false
	}
	arg := f.Expr.Args[0]
	for _, e := range edges {
		if len(g.ObjEdgesByVariable(e.Variable)) > 1 && !expr.DependsScalar(arg, e.Variable) {
			return false
		}
	}

	return true
}

// MoveEqualityIndicators reclassifies prox-friendly equality terms as
// constraints I(arg == 0). A term is only moved while more than one
// objective term remains.
//
// Returns the number of terms moved.
func MoveEqualityIndicators(g *core.Graph) (int, error) {
	if g == nil {
		return 0, ErrNilGraph
	}

	moved := 0
	for _, f := range g.ObjTerms() {
		if len(g.ObjTerms()) <= 1 {
			break
		}
		if !g.HasFunction(f) || !IsProxFriendlyConstraint(g, f) {
			continue
		}

		ind, err := expr.NewIndicator(expr.ConeZero, f.Expr.Args[0])
		if err != nil {
			return moved, fmt.Errorf("MoveEqualityIndicators: %w", err)
		}
		if err = g.RemoveFunction(f); err != nil {
			return moved, fmt.Errorf("MoveEqualityIndicators: %w", err)
		}
		f.Expr, f.Constraint = ind, true
		if err = g.AddFunction(f); err != nil {
			return moved, fmt.Errorf("MoveEqualityIndicators: %w", err)
		}
		moved++
	}

	return moved, nil
}
