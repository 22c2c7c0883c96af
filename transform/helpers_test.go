// SPDX-License-Identifier: MIT

package transform_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/proxgraph/core"
	"github.com/katalvlaran/proxgraph/expr"
)

func mustVar(t *testing.T, m, n int, id string) *expr.Expr {
	t.Helper()
	v, err := expr.NewVariable(m, n, id)
	require.NoError(t, err)
	return v
}

func mustProx(t *testing.T, kind expr.ProxKind, args ...*expr.Expr) *expr.Expr {
	t.Helper()
	p, err := expr.NewProxFunction(kind, args...)
	require.NoError(t, err)
	return p
}

func mustAdd(t *testing.T, args ...*expr.Expr) *expr.Expr {
	t.Helper()
	e, err := expr.Add(args...)
	require.NoError(t, err)
	return e
}

func mustLinearMap(t *testing.T, data []float64, x *expr.Expr) *expr.Expr {
	t.Helper()
	n := x.Shape.Rows
	e, err := expr.ApplyLinearMap(mat.NewDense(len(data)/n, n, data), x)
	require.NoError(t, err)
	return e
}

func mustGraph(t *testing.T, p expr.Problem) *core.Graph {
	t.Helper()
	g, err := core.NewGraphFromProblem(p)
	require.NoError(t, err)
	return g
}

// objective returns the objective terms of p.
func objective(p expr.Problem) []*expr.Expr {
	if p.Objective == nil {
		return nil
	}
	if p.Objective.Kind == expr.KindAdd {
		return p.Objective.Args
	}
	return []*expr.Expr{p.Objective}
}

// copyVariables returns every synthesized copy-variable ID referenced by p,
// in first-appearance order.
func copyVariables(p expr.Problem) []string {
	seen := map[string]bool{}
	var out []string
	collect := func(e *expr.Expr) {
		for _, id := range expr.VariableIDs(e) {
			if strings.HasPrefix(id, "separate:") && !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	collect(p.Objective)
	for _, c := range p.Constraints {
		collect(c)
	}
	return out
}

// termsReferencing counts objective terms of p that reference id.
func termsReferencing(p expr.Problem, id string) int {
	n := 0
	for _, term := range objective(p) {
		for _, v := range expr.VariableIDs(term) {
			if v == id {
				n++
				break
			}
		}
	}
	return n
}

// requireSeparable asserts every variable of p is referenced by exactly one
// objective term.
func requireSeparable(t *testing.T, p expr.Problem) {
	t.Helper()
	vars := map[string]bool{}
	for _, id := range expr.VariableIDs(p.Objective) {
		vars[id] = true
	}
	for _, c := range p.Constraints {
		for _, id := range expr.VariableIDs(c) {
			vars[id] = true
		}
	}
	for id := range vars {
		require.Equal(t, 1, termsReferencing(p, id), "variable %q", id)
	}
}
