// SPDX-License-Identifier: MIT

// File: api.go
// Role: conversion between expr.Problem and Graph, plus Stats.
// Determinism:
//   - NewGraphFromProblem inserts objective terms in argument order, then
//     constraints in slice order; Problem() reads them back in the same order.
package core

import (
	"fmt"

	"github.com/katalvlaran/proxgraph/expr"
)

// NewGraphFromProblem builds a graph from p. A top-level ADD objective is
// split into one objective term per argument; any other non-nil objective
// is a single term. Each constraint becomes a constraint function.
//
// Errors: ErrNilExpr (wrapped) for a nil constraint.
func NewGraphFromProblem(p expr.Problem) (*Graph, error) {
	g := NewGraph()

	for _, term := range objectiveTerms(p.Objective) {
		if err := g.AddFunction(NewFunction(term, false)); err != nil {
			return nil, fmt.Errorf("NewGraphFromProblem: objective: %w", err)
		}
	}
	for i, c := range p.Constraints {
		if err := g.AddFunction(NewFunction(c, true)); err != nil {
			return nil, fmt.Errorf("NewGraphFromProblem: constraint %d: %w", i, err)
		}
	}

	return g, nil
}

func objectiveTerms(obj *expr.Expr) []*expr.Expr {
	switch {
	case obj == nil:
		return nil
	case obj.Kind == expr.KindAdd:
		return obj.Args
	default:
		return []*expr.Expr{obj}
	}
}

// Problem rebuilds a problem from the current graph state. The objective is
// the single objective term when there is one, the ADD of all terms when
// there are several and the constant 0 when there are none. A lone term that
// is itself an ADD is still wrapped, so NewGraphFromProblem reads it back as
// one term. Constraints are the constraint functions' expressions in
// insertion order.
//
// Errors: wrapped expr errors if the objective terms cannot be summed.
func (g *Graph) Problem() (expr.Problem, error) {
	g.mu.RLock()
	terms := make([]*expr.Expr, 0, len(g.objTerms))
	var cons []*expr.Expr
	for _, f := range g.functions {
		if _, ok := g.objTerms[f]; ok {
			terms = append(terms, f.Expr)
		} else {
			cons = append(cons, f.Expr)
		}
	}
	g.mu.RUnlock()

	p := expr.Problem{Constraints: cons}
	switch len(terms) {
	case 0:
		p.Objective = expr.Scalar(0)
	case 1:
		if terms[0].Kind != expr.KindAdd {
			p.Objective = terms[0]
			break
		}
		fallthrough
	default:
		obj, err := expr.Add(terms...)
		if err != nil {
			return expr.Problem{}, fmt.Errorf("Problem: objective: %w", err)
		}
		p.Objective = obj
	}

	return p, nil
}

// Stats returns a snapshot of graph counts.
func (g *Graph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := GraphStats{
		Functions: len(g.functions),
		ObjTerms:  len(g.objTerms),
		Variables: len(g.variables),
	}
	s.Constraints = s.Functions - s.ObjTerms
	for _, es := range g.edgesByFunction {
		s.Edges += len(es)
		for _, e := range es {
			s.Instances += len(e.Instances)
		}
	}

	return s
}
