// SPDX-License-Identifier: MIT

// File: methods_functions.go
// Role: function-node mutations and queries.
// Determinism:
//   - Functions() and ObjTerms() preserve insertion order.
//
// Concurrency:
//   - Mutations take g.mu for writing; queries take it for reading and
//     return snapshots.
package core

import (
	"cmp"
	"fmt"
	"slices"
)

// AddFunction inserts f, derives its edges by walking f.Expr and indexes
// them. f is appended to ObjTerms() unless it is a constraint.
//
// Errors: ErrNilFunction, ErrNilExpr, ErrFunctionExists.
// Complexity: O(|f.Expr|) to derive edges.
func (g *Graph) AddFunction(f *Function) error {
	if f == nil {
		return fmt.Errorf("AddFunction: %w", ErrNilFunction)
	}
	if f.Expr == nil {
		return fmt.Errorf("AddFunction: %w", ErrNilExpr)
	}

	// Walk outside the lock; the expression is immutable.
	edges := deriveEdges(f)

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.present[f]; ok {
		return fmt.Errorf("AddFunction(%s): %w", f.Expr.Kind, ErrFunctionExists)
	}
	g.nextSeq++
	g.present[f] = g.nextSeq
	g.functions = append(g.functions, f)
	if !f.Constraint {
		g.objTerms[f] = struct{}{}
	}
	g.edgesByFunction[f] = nil
	for _, e := range edges {
		g.attachLocked(e)
	}

	return nil
}

// RemoveFunction removes f together with all of its edges. Variables left
// without edges disappear from Variables().
//
// Errors: ErrNilFunction, ErrFunctionNotFound.
func (g *Graph) RemoveFunction(f *Function) error {
	if f == nil {
		return fmt.Errorf("RemoveFunction: %w", ErrNilFunction)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.present[f]; !ok {
		return fmt.Errorf("RemoveFunction: %w", ErrFunctionNotFound)
	}
	for _, e := range g.edgesByFunction[f] {
		g.detachFromVariableLocked(e)
		e.owner = nil
	}
	delete(g.edgesByFunction, f)
	delete(g.objTerms, f)
	delete(g.present, f)
	g.functions = slices.DeleteFunc(g.functions, func(x *Function) bool { return x == f })

	return nil
}

// HasFunction reports whether f is in the graph.
func (g *Graph) HasFunction(f *Function) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.present[f]

	return ok
}

// Functions returns all function nodes in insertion order.
func (g *Graph) Functions() []*Function {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return slices.Clone(g.functions)
}

// ObjTerms returns the objective-term functions in insertion order.
func (g *Graph) ObjTerms() []*Function {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.filterLocked(false)
}

// Constraints returns the constraint functions in insertion order.
func (g *Graph) Constraints() []*Function {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.filterLocked(true)
}

// FunctionCount returns the number of function nodes.
func (g *Graph) FunctionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.functions)
}

// Neighbors returns the functions other than f that share at least one
// variable with f, in insertion order. With objectiveOnly set, constraint
// functions are left out.
//
// Errors: ErrNilFunction, ErrFunctionNotFound.
// Complexity: O(Σ deg(v) + k log k) over f's variables v and k neighbors.
func (g *Graph) Neighbors(f *Function, objectiveOnly bool) ([]*Function, error) {
	if f == nil {
		return nil, fmt.Errorf("Neighbors: %w", ErrNilFunction)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.present[f]; !ok {
		return nil, fmt.Errorf("Neighbors: %w", ErrFunctionNotFound)
	}
	seen := map[*Function]struct{}{f: {}}
	var out []*Function
	for _, e := range g.edgesByFunction[f] {
		for _, o := range g.edgesByVariable[e.Variable] {
			h := o.Function
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			if _, obj := g.objTerms[h]; objectiveOnly && !obj {
				continue
			}
			out = append(out, h)
		}
	}
	slices.SortFunc(out, func(a, b *Function) int { return cmp.Compare(g.present[a], g.present[b]) })

	return out, nil
}

func (g *Graph) filterLocked(constraint bool) []*Function {
	out := make([]*Function, 0, len(g.functions))
	for _, f := range g.functions {
		_, obj := g.objTerms[f]
		if obj != constraint {
			out = append(out, f)
		}
	}

	return out
}
