// SPDX-License-Identifier: MIT
// Package: proxgraph/builder
//
// impl_lasso.go - Lasso and GroupLasso fixtures.
//
// Both draw data from cfg.rng in a fixed order so that equal seeds produce
// identical problems.

package builder

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/proxgraph/expr"
)

func buildLasso(d *Draft, cfg builderConfig, m, n int) error {
	if m < MinDim || n < MinDim {
		return builderErrorf(MethodLasso, ErrTooSmall, "m=%d, n=%d (min=%d)", m, n, MinDim)
	}
	if cfg.rng == nil {
		return builderErrorf(MethodLasso, ErrNeedRandSource, "m=%d, n=%d", m, n)
	}

	a := randn(cfg.rng, m, n)
	x0 := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if cfg.rng.Float64() < cfg.density {
			x0.SetVec(i, cfg.rng.NormFloat64())
		}
	}
	b := observe(cfg.rng, a, x0, cfg.noise)

	atb := mat.NewVecDense(n, nil)
	atb.MulVec(a.T(), b)
	lam := cfg.lambda * infNorm(atb)
	if lam == 0 {
		lam = cfg.lambda
	}

	x, err := d.Variable(n, 1, cfg.idFn(0))
	if err != nil {
		return fmt.Errorf("%s: %w", MethodLasso, err)
	}
	r, err := residual(a, x, b)
	if err != nil {
		return wrapExpr(MethodLasso, err)
	}
	fit, err := expr.NewProxFunction(expr.ProxSumSquares, r)
	if err != nil {
		return wrapExpr(MethodLasso, err)
	}
	reg, err := weighted(expr.ProxNormL1, lam, x)
	if err != nil {
		return wrapExpr(MethodLasso, err)
	}
	d.AddTerm(fit)
	d.AddTerm(reg)

	return nil
}

func buildGroupLasso(d *Draft, cfg builderConfig, m, niMax, k int) error {
	if m < MinDim || niMax < MinDim || k < MinGroups {
		return builderErrorf(MethodGroupLasso, ErrTooSmall, "m=%d, niMax=%d, K=%d", m, niMax, k)
	}
	if cfg.rng == nil {
		return builderErrorf(MethodGroupLasso, ErrNeedRandSource, "m=%d, niMax=%d, K=%d", m, niMax, k)
	}

	// Group k covers [pa[k], pb[k]).
	pa := make([]int, k)
	pb := make([]int, k)
	n := 0
	for i := 0; i < k; i++ {
		pa[i] = n
		n += 1 + cfg.rng.Intn(niMax)
		pb[i] = n
	}

	x0 := mat.NewVecDense(n, nil)
	for i := 0; i < k; i++ {
		if cfg.rng.Float64() < cfg.density {
			for j := pa[i]; j < pb[i]; j++ {
				x0.SetVec(j, cfg.rng.NormFloat64())
			}
		}
	}

	a := randn(cfg.rng, m, n)
	normalizeColumns(a)
	b := observe(cfg.rng, a, x0, cfg.noise)

	lam := 0.0
	for i := 0; i < k; i++ {
		blk := a.Slice(0, m, pa[i], pb[i])
		g := mat.NewVecDense(pb[i]-pa[i], nil)
		g.MulVec(blk.T(), b)
		lam = math.Max(lam, floats.Norm(g.RawVector().Data, 2))
	}
	lam *= cfg.lambda
	if lam == 0 {
		lam = cfg.lambda
	}

	// ½||Ax-b||² is expressed as ||(Ax-b)/√2||².
	half := math.Sqrt(0.5)
	a.Scale(half, a)
	b.ScaleVec(half, b)

	x, err := d.Variable(n, 1, cfg.idFn(0))
	if err != nil {
		return fmt.Errorf("%s: %w", MethodGroupLasso, err)
	}
	r, err := residual(a, x, b)
	if err != nil {
		return wrapExpr(MethodGroupLasso, err)
	}
	fit, err := expr.NewProxFunction(expr.ProxSumSquares, r)
	if err != nil {
		return wrapExpr(MethodGroupLasso, err)
	}
	d.AddTerm(fit)

	for i := 0; i < k; i++ {
		xi, err := expr.Index(x, expr.Slice{Start: pa[i], Stop: pb[i], Step: 1}, expr.FullSlice(1))
		if err != nil {
			return wrapExpr(MethodGroupLasso, err)
		}
		reg, err := weighted(expr.ProxNormL2, lam, xi)
		if err != nil {
			return wrapExpr(MethodGroupLasso, err)
		}
		d.AddTerm(reg)
	}

	return nil
}
