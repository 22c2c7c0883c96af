// SPDX-License-Identifier: MIT
// Package: proxgraph/builder
//
// impl_chain.go - deterministic Chain and stochastic Consensus fixtures.

package builder

import (
	"fmt"

	"github.com/katalvlaran/proxgraph/expr"
)

func buildChain(d *Draft, cfg builderConfig, k, n int) error {
	if k < MinChainLinks {
		return builderErrorf(MethodChain, ErrTooSmall, "k=%d (min=%d)", k, MinChainLinks)
	}
	if n < MinDim {
		return builderErrorf(MethodChain, ErrTooSmall, "n=%d (min=%d)", n, MinDim)
	}

	xs := make([]*expr.Expr, k)
	for i := range xs {
		x, err := d.Variable(n, 1, cfg.idFn(i))
		if err != nil {
			return fmt.Errorf("%s: %w", MethodChain, err)
		}
		xs[i] = x
	}

	anchor, err := expr.NewProxFunction(expr.ProxNormL1, xs[0])
	if err != nil {
		return wrapExpr(MethodChain, err)
	}
	d.AddTerm(anchor)

	for i := 0; i+1 < k; i++ {
		next, err := expr.Negate(xs[i+1])
		if err != nil {
			return wrapExpr(MethodChain, err)
		}
		diff, err := expr.Add(xs[i], next)
		if err != nil {
			return wrapExpr(MethodChain, err)
		}
		link, err := expr.NewProxFunction(expr.ProxSumSquares, diff)
		if err != nil {
			return wrapExpr(MethodChain, err)
		}
		d.AddTerm(link)
	}

	return nil
}

func buildConsensus(d *Draft, cfg builderConfig, k, m, n int) error {
	if k < MinConsensusTerms {
		return builderErrorf(MethodConsensus, ErrTooSmall, "k=%d (min=%d)", k, MinConsensusTerms)
	}
	if m < MinDim || n < MinDim {
		return builderErrorf(MethodConsensus, ErrTooSmall, "m=%d, n=%d (min=%d)", m, n, MinDim)
	}
	if cfg.rng == nil {
		return builderErrorf(MethodConsensus, ErrNeedRandSource, "k=%d", k)
	}

	x, err := d.Variable(n, 1, cfg.idFn(0))
	if err != nil {
		return fmt.Errorf("%s: %w", MethodConsensus, err)
	}
	x0 := randn(cfg.rng, n, 1).ColView(0)
	for i := 0; i < k; i++ {
		a := randn(cfg.rng, m, n)
		b := observe(cfg.rng, a, x0, cfg.noise)
		r, err := residual(a, x, b)
		if err != nil {
			return wrapExpr(MethodConsensus, err)
		}
		fit, err := expr.NewProxFunction(expr.ProxSumSquares, r)
		if err != nil {
			return wrapExpr(MethodConsensus, err)
		}
		d.AddTerm(fit)
	}

	return nil
}
