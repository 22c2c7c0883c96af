// SPDX-License-Identifier: MIT
// Package: proxgraph/builder
//
// data.go - random data and shared term helpers for the stochastic fixtures.

package builder

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/proxgraph/expr"
)

// randn returns an r×c matrix of standard normal draws in row-major order.
func randn(rng *rand.Rand, r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	return mat.NewDense(r, c, data)
}

// observe returns A·x0 + sigma·ε with ε standard normal.
func observe(rng *rand.Rand, a *mat.Dense, x0 mat.Vector, sigma float64) *mat.VecDense {
	m, _ := a.Dims()
	b := mat.NewVecDense(m, nil)
	b.MulVec(a, x0)
	for i := 0; i < m; i++ {
		b.SetVec(i, b.AtVec(i)+sigma*rng.NormFloat64())
	}

	return b
}

// normalizeColumns scales every column of a to unit Euclidean norm; zero
// columns are left untouched.
func normalizeColumns(a *mat.Dense) {
	r, c := a.Dims()
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, a)
		nrm := floats.Norm(col, 2)
		if nrm == 0 {
			continue
		}
		for i := range col {
			a.Set(i, j, col[i]/nrm)
		}
	}
}

// vecConstant wraps v as an n×1 constant leaf.
func vecConstant(v *mat.VecDense) (*expr.Expr, error) {
	n := v.Len()
	return expr.NewConstant(n, 1, expr.Constant{Dense: mat.NewDense(n, 1, mat.Col(nil, 0, v))})
}

// residual returns A·x - b.
func residual(a *mat.Dense, x *expr.Expr, b *mat.VecDense) (*expr.Expr, error) {
	ax, err := expr.ApplyLinearMap(a, x)
	if err != nil {
		return nil, err
	}
	bc, err := vecConstant(b)
	if err != nil {
		return nil, err
	}
	nb, err := expr.Negate(bc)
	if err != nil {
		return nil, err
	}

	return expr.Add(ax, nb)
}

// weighted returns the PROX_FUNCTION kind(w·x); w == 1 keeps x bare.
func weighted(kind expr.ProxKind, w float64, x *expr.Expr) (*expr.Expr, error) {
	arg := x
	if w != 1 {
		var err error
		if arg, err = expr.Multiply(expr.Scalar(w), x); err != nil {
			return nil, err
		}
	}

	return expr.NewProxFunction(kind, arg)
}

// infNorm returns max_i |v_i|.
func infNorm(v mat.Vector) float64 {
	return mat.Norm(v, math.Inf(1))
}
