// SPDX-License-Identifier: MIT

// File: edge.go
// Role: edge derivation from a function expression and per-edge rewriting.
// Determinism:
//   - deriveEdges yields edges in first-appearance (pre-order) variable order.
package core

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/proxgraph/expr"
)

// deriveEdges walks f.Expr and builds one edge per distinct variable.
func deriveEdges(f *Function) []*Edge {
	ids, byID := expr.VariableInstances(f.Expr)
	edges := make([]*Edge, 0, len(ids))
	for _, id := range ids {
		edges = append(edges, newEdge(f, id, byID[id]))
	}

	return edges
}

func newEdge(f *Function, id string, leaves []*expr.Expr) *Edge {
	scalar := expr.DependsScalar(f.Expr, id)
	inst := make([]Instance, len(leaves))
	for i, leaf := range leaves {
		inst[i] = Instance{Leaf: leaf, Shape: leaf.Shape, Scalar: scalar}
	}

	return &Edge{Function: f, Variable: id, Instances: inst}
}

// HasLinops reports whether the function applies a non-scalar linear
// operator to the variable, i.e. the dependency is not a pure scalar
// multiple of the variable.
func (e *Edge) HasLinops() bool {
	for _, in := range e.Instances {
		if !in.Scalar {
			return true
		}
	}

	return false
}

// Attached reports whether the edge is currently indexed by a graph.
func (e *Edge) Attached() bool { return e.owner != nil }

// ReplaceVariable rewrites every instance of the edge's variable inside the
// function expression with a fresh variable newID of the same shape.
//
// The edge must be detached (RemoveEdge) first, and the caller must be the
// only one touching e.Function while it runs: the write to Function.Expr is
// not guarded by any graph lock. Graph.ReplaceEdgeVariable does the same
// rewrite under the graph's lock. On success the function's Expr is
// replaced by the rewritten tree, the edge points at newID and its
// instances at the new leaf. The old and new variable leaves are returned
// so the caller can tie them with an equality constraint.
//
// Errors: ErrEdgeAttached, ErrEmptyVariableID, ErrNoInstances, or a wrapped
// expr error if the new leaf cannot be built.
func (e *Edge) ReplaceVariable(newID string) (oldVar, newVar *expr.Expr, err error) {
	if e.owner != nil {
		return nil, nil, fmt.Errorf("ReplaceVariable(%q): %w", e.Variable, ErrEdgeAttached)
	}

	return e.rewrite("ReplaceVariable", newID)
}

// ReplaceEdgeVariable is ReplaceVariable for an edge that is indexed by g.
// Detaching, rewriting and re-attaching happen under g's write lock, so
// concurrent readers such as Problem never see a half-rewritten function.
// On error the edge stays attached and unchanged.
//
// Errors: ErrNilEdge, ErrEdgeNotFound, ErrEmptyVariableID, ErrNoInstances,
// or a wrapped expr error.
func (g *Graph) ReplaceEdgeVariable(e *Edge, newID string) (oldVar, newVar *expr.Expr, err error) {
	if e == nil {
		return nil, nil, fmt.Errorf("ReplaceEdgeVariable: %w", ErrNilEdge)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if e.owner != g {
		return nil, nil, fmt.Errorf("ReplaceEdgeVariable(%q): %w", e.Variable, ErrEdgeNotFound)
	}
	if newID == "" {
		return nil, nil, fmt.Errorf("ReplaceEdgeVariable(%q): %w", e.Variable, ErrEmptyVariableID)
	}
	g.edgesByFunction[e.Function] = slices.DeleteFunc(g.edgesByFunction[e.Function],
		func(x *Edge) bool { return x == e })
	g.detachFromVariableLocked(e)
	e.owner = nil

	oldVar, newVar, err = e.rewrite("ReplaceEdgeVariable", newID)
	g.attachLocked(e)

	return oldVar, newVar, err
}

// rewrite substitutes newID for the edge's variable. Caller guarantees
// exclusive access to e and e.Function.
func (e *Edge) rewrite(method, newID string) (oldVar, newVar *expr.Expr, err error) {
	if newID == "" {
		return nil, nil, fmt.Errorf("%s(%q): %w", method, e.Variable, ErrEmptyVariableID)
	}
	if len(e.Instances) == 0 {
		return nil, nil, fmt.Errorf("%s(%q): %w", method, e.Variable, ErrNoInstances)
	}

	oldVar = e.Instances[0].Leaf
	newVar, err = expr.NewVariable(oldVar.Shape.Rows, oldVar.Shape.Cols, newID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s(%q): %w", method, e.Variable, err)
	}

	e.Function.Expr = expr.SubstituteVariable(e.Function.Expr, e.Variable, newVar)
	e.Variable = newID
	for i := range e.Instances {
		e.Instances[i].Leaf = newVar
	}

	return oldVar, newVar, nil
}
