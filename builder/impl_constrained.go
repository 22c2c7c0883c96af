// SPDX-License-Identifier: MIT
// Package: proxgraph/builder
//
// impl_constrained.go - constraint-only fixtures (Box, AffineEquality).

package builder

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/proxgraph/expr"
)

func buildBox(d *Draft, cfg builderConfig, idx, n int, lo, hi float64) error {
	if n < MinDim {
		return builderErrorf(MethodBox, ErrTooSmall, "n=%d (min=%d)", n, MinDim)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return builderErrorf(MethodBox, ErrInvalidBounds, "lo=%g, hi=%g", lo, hi)
	}

	x, err := d.Variable(n, 1, cfg.idFn(idx))
	if err != nil {
		return fmt.Errorf("%s: %w", MethodBox, err)
	}
	if !math.IsInf(lo, -1) {
		c, err := expr.LeqConstraint(expr.Scalar(lo), x)
		if err != nil {
			return wrapExpr(MethodBox, err)
		}
		d.AddConstraint(c)
	}
	if !math.IsInf(hi, 1) {
		c, err := expr.LeqConstraint(x, expr.Scalar(hi))
		if err != nil {
			return wrapExpr(MethodBox, err)
		}
		d.AddConstraint(c)
	}

	return nil
}

func buildAffineEquality(d *Draft, cfg builderConfig, idx, m, n int) error {
	if m < MinDim || n < MinDim {
		return builderErrorf(MethodAffineEquality, ErrTooSmall, "m=%d, n=%d (min=%d)", m, n, MinDim)
	}
	if cfg.rng == nil {
		return builderErrorf(MethodAffineEquality, ErrNeedRandSource, "m=%d, n=%d", m, n)
	}

	c := randn(cfg.rng, m, n)
	feasible := randn(cfg.rng, n, 1).ColView(0)
	rhs := mat.NewVecDense(m, nil)
	rhs.MulVec(c, feasible)

	x, err := d.Variable(n, 1, cfg.idFn(idx))
	if err != nil {
		return fmt.Errorf("%s: %w", MethodAffineEquality, err)
	}
	cx, err := expr.ApplyLinearMap(c, x)
	if err != nil {
		return wrapExpr(MethodAffineEquality, err)
	}
	dc, err := vecConstant(rhs)
	if err != nil {
		return wrapExpr(MethodAffineEquality, err)
	}
	eq, err := expr.EqConstraint(cx, dc)
	if err != nil {
		return wrapExpr(MethodAffineEquality, err)
	}
	d.AddConstraint(eq)

	return nil
}
