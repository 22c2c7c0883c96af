// SPDX-License-Identifier: MIT
// Package matrix: dense function-by-variable incidence.
//
// Determinism:
//   - Rows follow core.Graph.Functions() order, columns core.Graph.Variables().
//   - WithFocus(f): f first, then its neighbors in insertion order; columns
//     are f's variables in edge order.
// Complexity:
//   - NewIncidence: O(|F|·|V| + |E|) time and space, or O(k·|vars(f)|) for
//     k neighbors under WithFocus.
//   - Overlaps: one O(rows·cols) matrix-vector product.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/proxgraph/core"
)

// Incidence is a function-by-variable incidence snapshot of a graph.
// Mat is nil when there are no rows or no columns.
type Incidence struct {
	Mat       *mat.Dense
	Functions []*core.Function // row order
	Variables []string         // column order

	rowIndex map[*core.Function]int
	colIndex map[string]int
	opts     Options
}

// NewIncidence builds the incidence matrix of g.
//
// Errors: ErrGraphNil, or a wrapped core error if a function vanishes while
// the snapshot is taken.
func NewIncidence(g *core.Graph, opts ...Option) (*Incidence, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := gatherOptions(opts...)

	rows, cols, err := selectAxes(g, o)
	if err != nil {
		return nil, err
	}

	im := &Incidence{
		Functions: rows,
		Variables: cols,
		rowIndex:  make(map[*core.Function]int, len(rows)),
		colIndex:  make(map[string]int, len(cols)),
		opts:      o,
	}
	for i, f := range rows {
		im.rowIndex[f] = i
	}
	for j, v := range cols {
		im.colIndex[v] = j
	}
	if len(rows) == 0 || len(cols) == 0 {
		return im, nil
	}

	im.Mat = mat.NewDense(len(rows), len(cols), nil)
	for i, f := range rows {
		edges, err := g.EdgesByFunction(f)
		if err != nil {
			return nil, fmt.Errorf("NewIncidence: row %d: %w", i, err)
		}
		for _, e := range edges {
			j, ok := im.colIndex[e.Variable]
			if !ok && o.focus != nil {
				continue
			}
			if !ok {
				return nil, fmt.Errorf("NewIncidence: %q: %w", e.Variable, ErrUnknownVariable)
			}
			v := float64(len(e.Instances))
			if o.binary {
				v = 1
			}
			im.Mat.Set(i, j, im.Mat.At(i, j)+v)
		}
	}

	return im, nil
}

// selectAxes picks the row functions and column variables for o.
func selectAxes(g *core.Graph, o Options) ([]*core.Function, []string, error) {
	if o.focus == nil {
		rows := g.Functions()
		if o.objectiveOnly {
			rows = g.ObjTerms()
		}
		return rows, g.Variables(), nil
	}

	edges, err := g.EdgesByFunction(o.focus)
	if err != nil {
		return nil, nil, fmt.Errorf("NewIncidence: %w: %w", ErrUnknownFunction, err)
	}
	nb, err := g.Neighbors(o.focus, o.objectiveOnly)
	if err != nil {
		return nil, nil, fmt.Errorf("NewIncidence: %w: %w", ErrUnknownFunction, err)
	}
	cols := make([]string, len(edges))
	for i, e := range edges {
		cols[i] = e.Variable
	}

	return append([]*core.Function{o.focus}, nb...), cols, nil
}

// Dims returns the number of rows (functions) and columns (variables).
func (im *Incidence) Dims() (r, c int) {
	return len(im.Functions), len(im.Variables)
}

// Degree returns the number of rows that reference variable v.
//
// Errors: ErrUnknownVariable.
func (im *Incidence) Degree(v string) (int, error) {
	j, ok := im.colIndex[v]
	if !ok {
		return 0, fmt.Errorf("Degree(%q): %w", v, ErrUnknownVariable)
	}
	if im.Mat == nil {
		return 0, nil
	}

	return nonZero(im.Mat.ColView(j)), nil
}

// Overlaps returns, for every row, the number of variables it shares with
// function f. The entry for f itself is f's own variable count.
//
// Errors: ErrUnknownFunction.
func (im *Incidence) Overlaps(f *core.Function) ([]int, error) {
	i, ok := im.rowIndex[f]
	if !ok {
		return nil, fmt.Errorf("Overlaps: %w", ErrUnknownFunction)
	}
	out := make([]int, len(im.Functions))
	if im.Mat == nil {
		return out, nil
	}

	b := im.binary()
	var y mat.VecDense
	y.MulVec(b, b.RowView(i))
	for k := range out {
		out[k] = int(y.AtVec(k))
	}

	return out, nil
}

// binary returns Mat with every non-zero replaced by 1.
func (im *Incidence) binary() *mat.Dense {
	if im.opts.binary {
		return im.Mat
	}
	var b mat.Dense
	b.Apply(func(_, _ int, v float64) float64 {
		if v != 0 {
			return 1
		}
		return 0
	}, im.Mat)

	return &b
}

func nonZero(v mat.Vector) int {
	n := 0
	for k := 0; k < v.Len(); k++ {
		if v.AtVec(k) != 0 {
			n++
		}
	}

	return n
}
