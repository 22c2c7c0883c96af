// SPDX-License-Identifier: MIT

// File: separate.go
// Role: separability and coverage passes.
// Determinism:
//   - Variables are visited in graph order, objective edges in reverse
//     insertion order; copy IDs depend only on variable ID and term structure.
package transform

import (
	"fmt"

	"github.com/katalvlaran/proxgraph/core"
	"github.com/katalvlaran/proxgraph/expr"
)

// copyPrefix starts every synthesized copy-variable ID.
const copyPrefix = "separate"

// SeparateObjectiveTerms makes every variable referenced by at most one
// objective term.
//
// For each variable v (snapshot taken before the pass) the objective edges
// of v are scanned in reverse insertion order. The first edge without a
// non-scalar linear operator is kept; if every edge has one, the first edge
// scanned is kept instead. Every other edge has its term rewritten onto a
// fresh copy variable "separate:<v>:<fingerprint of term>" and the
// constraint I(v - copy == 0) is added.
//
// Returns the number of copy variables created.
func SeparateObjectiveTerms(g *core.Graph) (int, error) {
	if g == nil {
		return 0, ErrNilGraph
	}

	used := make(map[string]struct{})
	copies := 0
	for _, v := range g.Variables() {
		edges := g.ObjEdgesByVariable(v)
		if len(edges) < 2 {
			continue
		}

		keep := primaryEdge(edges)
		for i := len(edges) - 1; i >= 0; i-- {
			e := edges[i]
			if e == keep {
				continue
			}
			if err := separateEdge(g, e, copyID(g, used, e)); err != nil {
				return copies, fmt.Errorf("SeparateObjectiveTerms(%q): %w", v, err)
			}
			copies++
		}
	}

	return copies, nil
}

// primaryEdge picks the retained occurrence among edges (insertion order).
func primaryEdge(edges []*core.Edge) *core.Edge {
	for i := len(edges) - 1; i >= 0; i-- {
		if !edges[i].HasLinops() {
			return edges[i]
		}
	}

	return edges[len(edges)-1]
}

// copyID returns a copy-variable ID for e that is unused in this pass and
// in g. Structurally identical terms get distinct IDs by occurrence ordinal.
func copyID(g *core.Graph, used map[string]struct{}, e *core.Edge) string {
	for ord := 0; ; ord++ {
		id := fmt.Sprintf("%s:%s:%s", copyPrefix, e.Variable, expr.FingerprintOccurrence(e.Function.Expr, ord))
		if _, dup := used[id]; dup || g.HasVariable(id) {
			continue
		}
		used[id] = struct{}{}
		return id
	}
}

func separateEdge(g *core.Graph, e *core.Edge, newID string) error {
	oldVar, newVar, err := g.ReplaceEdgeVariable(e, newID)
	if err != nil {
		return err
	}
	link, err := expr.EqConstraint(oldVar, newVar)
	if err != nil {
		return err
	}

	return g.AddFunction(core.NewFunction(link, true))
}

// AddNullProx adds a constant prox term f(v) = 0 for every variable that
// is referenced only by constraints, wrapping the first instance of the
// variable's first edge.
//
// Returns the number of terms added.
func AddNullProx(g *core.Graph) (int, error) {
	if g == nil {
		return 0, ErrNilGraph
	}

	added := 0
	for _, v := range g.Variables() {
		if len(g.ObjEdgesByVariable(v)) > 0 {
			continue
		}
		edges := g.EdgesByVariable(v)
		if len(edges) == 0 {
			continue
		}
		leaf := edges[0].Instances[0].Leaf
		term, err := expr.NewProxFunction(expr.ProxConstant, leaf)
		if err != nil {
			return added, fmt.Errorf("AddNullProx(%q): %w", v, err)
		}
		if err = g.AddFunction(core.NewFunction(term, false)); err != nil {
			return added, fmt.Errorf("AddNullProx(%q): %w", v, err)
		}
		added++
	}

	return added, nil
}
