// SPDX-License-Identifier: MIT

// File: methods_edges.go
// Role: edge mutations, variable index maintenance and edge/variable queries.
// Determinism:
//   - EdgesByFunction, EdgesByVariable and Variables return insertion order.
//
// Concurrency:
//   - Mutations take g.mu for writing; queries take it for reading and
//     return snapshots.
package core

import (
	"fmt"
	"slices"
)

// AddEdge indexes e under its function and variable. The function must
// already be in the graph. A variable seen for the first time is appended
// to Variables().
//
// Errors: ErrNilEdge, ErrNilFunction, ErrEmptyVariableID, ErrNoInstances,
// ErrFunctionNotFound, ErrEdgeExists (also when e is indexed by another graph).
func (g *Graph) AddEdge(e *Edge) error {
	if e == nil {
		return fmt.Errorf("AddEdge: %w", ErrNilEdge)
	}
	if e.Function == nil {
		return fmt.Errorf("AddEdge: %w", ErrNilFunction)
	}
	if e.Variable == "" {
		return fmt.Errorf("AddEdge: %w", ErrEmptyVariableID)
	}
	if len(e.Instances) == 0 {
		return fmt.Errorf("AddEdge(%q): %w", e.Variable, ErrNoInstances)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if e.owner != nil {
		return fmt.Errorf("AddEdge(%q): %w", e.Variable, ErrEdgeExists)
	}
	if _, ok := g.present[e.Function]; !ok {
		return fmt.Errorf("AddEdge(%q): %w", e.Variable, ErrFunctionNotFound)
	}
	g.attachLocked(e)

	return nil
}

// RemoveEdge un-indexes e from both its function and its variable. If e was
// the variable's last edge the variable disappears from Variables().
//
// Errors: ErrNilEdge, ErrEdgeNotFound.
func (g *Graph) RemoveEdge(e *Edge) error {
	if e == nil {
		return fmt.Errorf("RemoveEdge: %w", ErrNilEdge)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if e.owner != g {
		return fmt.Errorf("RemoveEdge(%q): %w", e.Variable, ErrEdgeNotFound)
	}
	g.edgesByFunction[e.Function] = slices.DeleteFunc(g.edgesByFunction[e.Function],
		func(x *Edge) bool { return x == e })
	g.detachFromVariableLocked(e)
	e.owner = nil

	return nil
}

// EdgesByFunction returns the edges of f in insertion order.
//
// Errors: ErrFunctionNotFound.
func (g *Graph) EdgesByFunction(f *Function) ([]*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.present[f]; !ok {
		return nil, fmt.Errorf("EdgesByFunction: %w", ErrFunctionNotFound)
	}

	return slices.Clone(g.edgesByFunction[f]), nil
}

// EdgesByVariable returns the edges of variable id in insertion order.
// An unknown variable yields an empty slice.
func (g *Graph) EdgesByVariable(id string) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return slices.Clone(g.edgesByVariable[id])
}

// ObjEdgesByVariable returns the edges of variable id whose function is an
// objective term, in insertion order.
func (g *Graph) ObjEdgesByVariable(id string) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []*Edge
	for _, e := range g.edgesByVariable[id] {
		if _, ok := g.objTerms[e.Function]; ok {
			out = append(out, e)
		}
	}

	return out
}

// Variables returns the IDs of all variables that have at least one edge,
// in first-appearance order.
func (g *Graph) Variables() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return slices.Clone(g.variables)
}

// HasVariable reports whether variable id has at least one edge.
func (g *Graph) HasVariable(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.edgesByVariable[id]

	return ok
}

// EdgeCount returns the number of indexed edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, es := range g.edgesByFunction {
		n += len(es)
	}

	return n
}

// attachLocked appends e to both indices. Caller holds g.mu for writing.
func (g *Graph) attachLocked(e *Edge) {
	g.edgesByFunction[e.Function] = append(g.edgesByFunction[e.Function], e)
	if _, ok := g.edgesByVariable[e.Variable]; !ok {
		g.variables = append(g.variables, e.Variable)
	}
	g.edgesByVariable[e.Variable] = append(g.edgesByVariable[e.Variable], e)
	e.owner = g
}

// detachFromVariableLocked removes e from the variable index and drops the
// variable once drained. Caller holds g.mu for writing.
func (g *Graph) detachFromVariableLocked(e *Edge) {
	rest := slices.DeleteFunc(g.edgesByVariable[e.Variable], func(x *Edge) bool { return x == e })
	if len(rest) > 0 {
		g.edgesByVariable[e.Variable] = rest
		return
	}
	delete(g.edgesByVariable, e.Variable)
	g.variables = slices.DeleteFunc(g.variables, func(v string) bool { return v == e.Variable })
}
