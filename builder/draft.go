// SPDX-License-Identifier: MIT
// Package: proxgraph/builder
//
// draft.go - mutable accumulator shared by constructors.
//
// Determinism: terms and constraints keep insertion order.
// Concurrency: a Draft is owned by one BuildProblem call; not safe for
// concurrent use.

package builder

import (
	"fmt"

	"github.com/katalvlaran/proxgraph/expr"
)

// Draft collects objective terms and constraints while constructors run.
type Draft struct {
	vars        map[string]*expr.Expr
	terms       []*expr.Expr
	constraints []*expr.Expr
}

// NewDraft returns an empty Draft.
func NewDraft() *Draft {
	return &Draft{vars: make(map[string]*expr.Expr)}
}

// Variable returns the m×n leaf named id, creating it on first use. A second
// request with another shape fails with ErrVariableConflict.
func (d *Draft) Variable(m, n int, id string) (*expr.Expr, error) {
	if v, ok := d.vars[id]; ok {
		if v.Shape.Rows != m || v.Shape.Cols != n {
			return nil, fmt.Errorf("Variable %q: have %s, want %dx%d: %w", id, v.Shape, m, n, ErrVariableConflict)
		}
		return v, nil
	}
	v, err := expr.NewVariable(m, n, id)
	if err != nil {
		return nil, fmt.Errorf("Variable %q: %w", id, err)
	}
	d.vars[id] = v

	return v, nil
}

// AddTerm appends an objective term.
func (d *Draft) AddTerm(e *expr.Expr) {
	d.terms = append(d.terms, e)
}

// AddConstraint appends a constraint indicator.
func (d *Draft) AddConstraint(e *expr.Expr) {
	d.constraints = append(d.constraints, e)
}

// Problem assembles the accumulated terms into a Problem: no terms leave the
// objective nil, one term is used as is, more are summed.
func (d *Draft) Problem() (expr.Problem, error) {
	p := expr.Problem{Constraints: append([]*expr.Expr(nil), d.constraints...)}
	switch len(d.terms) {
	case 0:
	case 1:
		p.Objective = d.terms[0]
	default:
		sum, err := expr.Add(d.terms...)
		if err != nil {
			return expr.Problem{}, wrapExpr("Problem", err)
		}
		p.Objective = sum
	}

	return p, nil
}
