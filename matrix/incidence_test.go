// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proxgraph/core"
	"github.com/katalvlaran/proxgraph/expr"
	"github.com/katalvlaran/proxgraph/matrix"
)

func mustVar(t *testing.T, id string) *expr.Expr {
	t.Helper()
	v, err := expr.NewVariable(1, 1, id)
	require.NoError(t, err)
	return v
}

func mustProx(t *testing.T, args ...*expr.Expr) *expr.Expr {
	t.Helper()
	p, err := expr.NewProxFunction(expr.ProxNormL1, args...)
	require.NoError(t, err)
	return p
}

// buildGraph returns f1(x, y) + f2(y) + f3(x, x) subject to I(z - y == 0).
func buildGraph(t *testing.T) *core.Graph {
	t.Helper()
	x, y, z := mustVar(t, "x"), mustVar(t, "y"), mustVar(t, "z")
	xx, err := expr.Add(x, x)
	require.NoError(t, err)
	obj, err := expr.Add(mustProx(t, x, y), mustProx(t, y), mustProx(t, xx))
	require.NoError(t, err)
	c, err := expr.EqConstraint(z, y)
	require.NoError(t, err)

	g, err := core.NewGraphFromProblem(expr.Problem{Objective: obj, Constraints: []*expr.Expr{c}})
	require.NoError(t, err)
	return g
}

func TestNewIncidence_Counts(t *testing.T) {
	g := buildGraph(t)
	im, err := matrix.NewIncidence(g)
	require.NoError(t, err)

	r, c := im.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []string{"x", "y", "z"}, im.Variables)

	// f3 references x twice.
	assert.Equal(t, 2.0, im.Mat.At(2, 0))
	assert.Equal(t, 1.0, im.Mat.At(3, 2))

	bin, err := matrix.NewIncidence(g, matrix.WithBinary())
	require.NoError(t, err)
	assert.Equal(t, 1.0, bin.Mat.At(2, 0))
}

func TestIncidence_DegreeAndOverlaps(t *testing.T) {
	g := buildGraph(t)
	im, err := matrix.NewIncidence(g, matrix.WithObjectiveOnly())
	require.NoError(t, err)

	d, err := im.Degree("x")
	require.NoError(t, err)
	assert.Equal(t, 2, d)
	d, err = im.Degree("z")
	require.NoError(t, err)
	assert.Zero(t, d)
	_, err = im.Degree("nope")
	assert.ErrorIs(t, err, matrix.ErrUnknownVariable)

	ov, err := im.Overlaps(im.Functions[0])
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 1}, ov)

	_, err = im.Overlaps(core.NewFunction(mustVar(t, "x"), false))
	assert.ErrorIs(t, err, matrix.ErrUnknownFunction)
}

func TestCheckSeparable(t *testing.T) {
	err := matrix.CheckSeparable(buildGraph(t))
	require.ErrorIs(t, err, matrix.ErrNotSeparable)
	var se *matrix.SeparabilityError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "x", se.Variable)
	assert.Equal(t, 2, se.Terms)

	x, y := mustVar(t, "x"), mustVar(t, "y")
	obj, err := expr.Add(mustProx(t, x), mustProx(t, y))
	require.NoError(t, err)
	g, err := core.NewGraphFromProblem(expr.Problem{Objective: obj})
	require.NoError(t, err)
	assert.NoError(t, matrix.CheckSeparable(g))

	assert.ErrorIs(t, matrix.CheckSeparable(nil), matrix.ErrGraphNil)
	assert.NoError(t, matrix.CheckSeparable(core.NewGraph()))
}

func TestNewIncidence_Focus(t *testing.T) {
	g := buildGraph(t)
	terms := g.ObjTerms()
	f1, f2, f3 := terms[0], terms[1], terms[2]

	im, err := matrix.NewIncidence(g, matrix.WithObjectiveOnly(), matrix.WithBinary(), matrix.WithFocus(f1))
	require.NoError(t, err)
	assert.Equal(t, []*core.Function{f1, f2, f3}, im.Functions)
	assert.Equal(t, []string{"x", "y"}, im.Variables)
	ov, err := im.Overlaps(f1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 1}, ov)

	all, err := matrix.NewIncidence(g, matrix.WithFocus(f2))
	require.NoError(t, err)
	r, c := all.Dims()
	assert.Equal(t, 3, r, "f2, f1 and the constraint share y")
	assert.Equal(t, 1, c)
	d, err := all.Degree("y")
	require.NoError(t, err)
	assert.Equal(t, 3, d)

	_, err = matrix.NewIncidence(g, matrix.WithFocus(core.NewFunction(mustVar(t, "x"), false)))
	assert.ErrorIs(t, err, matrix.ErrUnknownFunction)
	assert.Panics(t, func() { matrix.WithFocus(nil) })
}

// chainGraph returns |x0 - x1| + |x1 - x2| + ... with n terms.
func chainGraph(tb testing.TB, n int) *core.Graph {
	tb.Helper()
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		a, err := expr.NewVariable(1, 1, fmt.Sprintf("x%d", i))
		require.NoError(tb, err)
		b, err := expr.NewVariable(1, 1, fmt.Sprintf("x%d", i+1))
		require.NoError(tb, err)
		nb, err := expr.Negate(b)
		require.NoError(tb, err)
		d, err := expr.Add(a, nb)
		require.NoError(tb, err)
		p, err := expr.NewProxFunction(expr.ProxNormL1, d)
		require.NoError(tb, err)
		require.NoError(tb, g.AddFunction(core.NewFunction(p, false)))
	}
	return g
}

func TestNewIncidence_FocusSizeIndependentOfGraph(t *testing.T) {
	g := chainGraph(t, 5000)
	mid := g.ObjTerms()[2500]

	im, err := matrix.NewIncidence(g, matrix.WithFocus(mid))
	require.NoError(t, err)
	r, c := im.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)

	err = matrix.CheckSeparable(g)
	var se *matrix.SeparabilityError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "x1", se.Variable)
}

func BenchmarkCheckSeparable_Chain(b *testing.B) {
	g := chainGraph(b, 20000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = matrix.CheckSeparable(g)
	}
}
