// SPDX-License-Identifier: MIT
// File: constructors.go
// Role: Validating constructors for every expression kind.
// Contract:
//   - Shape/arity violations return *Error wrapping ErrShape/ErrArity.
//   - nil operands return *Error wrapping ErrInvalid.
//   - Affine scalarity attributes are computed here (see affine.go).

package expr

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Constructor names used in error values.
const (
	opAdd       = "Add"
	opMultiply  = "Multiply"
	opNegate    = "Negate"
	opVariable  = "NewVariable"
	opConstant  = "NewConstant"
	opIndex     = "Index"
	opTranspose = "Transpose"
	opReshape   = "Reshape"
	opSum       = "Sum"
	opHstack    = "Hstack"
	opVstack    = "Vstack"
	opLinearMap = "ApplyLinearMap"
	opNormP     = "NormP"
	opAbs       = "Abs"
	opPower     = "Power"
	opIndicator = "NewIndicator"
	opProx      = "NewProxFunction"
	opPSD       = "PSDConstraint"
)

func checkArgs(op string, args []*Expr) error {
	for i, a := range args {
		if a == nil {
			return newError(ErrInvalid, op, fmt.Sprintf("argument %d is nil", i))
		}
	}
	return nil
}

// NewVariable returns a VARIABLE leaf of shape m×n.
func NewVariable(m, n int, id string) (*Expr, error) {
	if id == "" {
		return nil, newError(ErrInvalid, opVariable, "empty variable id")
	}
	shape := Shape{Rows: m, Cols: n}
	if !shape.Valid() {
		return nil, newError(ErrShape, opVariable, fmt.Sprintf("invalid shape %s", shape))
	}
	return &Expr{
		Kind:       KindVariable,
		Shape:      shape,
		Curvature:  CurvatureAffine,
		VariableID: id,
		LinearMaps: map[string]LinearMapInfo{id: {Scalar: true}},
	}, nil
}

// Scalar returns a 1×1 constant.
func Scalar(v float64) *Expr {
	return &Expr{
		Kind:       KindConstant,
		Shape:      ScalarShape,
		Curvature:  CurvatureConstant,
		Sign:       signOf(v),
		Constant:   &Constant{Scalar: v},
		LinearMaps: map[string]LinearMapInfo{},
	}
}

// NewConstant returns an m×n constant. When c.Dense is nil the scalar is
// broadcast over the shape; otherwise the dense dimensions must match.
func NewConstant(m, n int, c Constant) (*Expr, error) {
	shape := Shape{Rows: m, Cols: n}
	if !shape.Valid() {
		return nil, newError(ErrShape, opConstant, fmt.Sprintf("invalid shape %s", shape))
	}
	sign := signOf(c.Scalar)
	if c.Dense != nil {
		r, k := c.Dense.Dims()
		if r != m || k != n {
			return nil, newError(ErrShape, opConstant, fmt.Sprintf("dense data is %dx%d, want %s", r, k, shape))
		}
		sign = denseSign(c.Dense)
	}
	return &Expr{
		Kind:       KindConstant,
		Shape:      shape,
		Curvature:  CurvatureConstant,
		Sign:       sign,
		Constant:   &c,
		LinearMaps: map[string]LinearMapInfo{},
	}, nil
}

func signOf(v float64) Sign {
	switch {
	case v > 0:
		return SignPositive
	case v < 0:
		return SignNegative
	default:
		return SignZero
	}
}

func denseSign(d *mat.Dense) Sign {
	r, c := d.Dims()
	pos, neg := false, false
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := d.At(i, j)
			pos = pos || v > 0
			neg = neg || v < 0
		}
	}
	switch {
	case pos && neg:
		return SignUnknown
	case pos:
		return SignPositive
	case neg:
		return SignNegative
	default:
		return SignZero
	}
}

// Add returns the sum of args. Scalars broadcast; otherwise shapes must match.
func Add(args ...*Expr) (*Expr, error) {
	if len(args) == 0 {
		return nil, newError(ErrArity, opAdd, "adding null args")
	}
	if err := checkArgs(opAdd, args); err != nil {
		return nil, err
	}
	shape := args[0].Shape
	curv := args[0].Curvature
	sign := args[0].Sign
	mono := make([]Monotonicity, len(args))
	mono[0] = MonotonicityIncreasing
	for i := 1; i < len(args); i++ {
		b := args[i]
		switch {
		case shape.IsScalar():
			shape = b.Shape
		case b.Shape.IsScalar():
		case shape == b.Shape:
		default:
			return nil, newError(ErrShape, opAdd, "adding incompatible sizes", args[i-1], b)
		}
		curv = addCurvature(curv, b.Curvature)
		if sign != b.Sign {
			sign = SignUnknown
		}
		mono[i] = MonotonicityIncreasing
	}
	return &Expr{
		Kind:            KindAdd,
		Shape:           shape,
		Args:            args,
		Curvature:       curv,
		Sign:            sign,
		ArgMonotonicity: mono,
		LinearMaps:      linearMapsOf(true, args...),
	}, nil
}

// Multiply returns the matrix product args[0]·args[1]·…; 1×1 factors scale.
func Multiply(args ...*Expr) (*Expr, error) {
	return multiply(KindMultiply, args)
}

// MultiplyElementwise returns the Hadamard product of args; 1×1 factors scale.
func MultiplyElementwise(args ...*Expr) (*Expr, error) {
	return multiply(KindMultiplyElementwise, args)
}

func multiply(kind Kind, args []*Expr) (*Expr, error) {
	if len(args) == 0 {
		return nil, newError(ErrArity, opMultiply, "multiplying null args")
	}
	if err := checkArgs(opMultiply, args); err != nil {
		return nil, err
	}
	elemwise := kind == KindMultiplyElementwise
	shape := args[0].Shape
	for i := 1; i < len(args); i++ {
		b := args[i]
		switch {
		case shape.IsScalar():
			shape = b.Shape
		case b.Shape.IsScalar():
		case !elemwise && shape.Cols == b.Shape.Rows:
			shape = Shape{Rows: shape.Rows, Cols: b.Shape.Cols}
		case elemwise && shape == b.Shape:
		default:
			return nil, newError(ErrShape, opMultiply, "multiplying incompatible sizes", args[i-1], b)
		}
	}

	nonConst := 0
	scalar := true
	sign := SignPositive
	for _, a := range args {
		if a.Curvature != CurvatureConstant {
			nonConst++
		} else if !a.Shape.IsScalar() {
			scalar = false
		}
		switch a.Sign {
		case SignNegative:
			sign = sign.Negate()
		case SignZero:
			sign = SignZero
		case SignUnknown:
			if sign != SignZero {
				sign = SignUnknown
			}
		}
	}
	curv := CurvatureUnknown
	switch nonConst {
	case 0:
		curv = CurvatureConstant
	case 1:
		for _, a := range args {
			if a.Curvature != CurvatureConstant {
				curv = a.Curvature
			}
		}
		if curv != CurvatureAffine {
			curv = CurvatureUnknown
		}
	}
	var maps map[string]LinearMapInfo
	if curv.IsAffine() {
		maps = linearMapsOf(scalar, args...)
	}
	return &Expr{
		Kind:       kind,
		Shape:      shape,
		Args:       args,
		Curvature:  curv,
		Sign:       sign,
		LinearMaps: maps,
	}, nil
}

// Negate returns -x; negate(negate(x)) folds back to x.
func Negate(x *Expr) (*Expr, error) {
	if x == nil {
		return nil, newError(ErrInvalid, opNegate, "nil operand")
	}
	if x.Kind == KindNegate && len(x.Args) == 1 {
		return x.Args[0], nil
	}
	var maps map[string]LinearMapInfo
	if x.IsAffine() {
		maps = mergeLinearMaps(x)
	}
	return &Expr{
		Kind:            KindNegate,
		Shape:           x.Shape,
		Args:            []*Expr{x},
		Curvature:       x.Curvature.Negate(),
		Sign:            x.Sign.Negate(),
		ArgMonotonicity: []Monotonicity{MonotonicityDecreasing},
		LinearMaps:      maps,
	}, nil
}

// linearOperator builds a node that applies a non-scalar linear operator to
// its arguments: curvature is inherited, scalarity is cleared.
func linearOperator(kind Kind, shape Shape, args ...*Expr) *Expr {
	curv := args[0].Curvature
	for _, a := range args[1:] {
		curv = addCurvature(curv, a.Curvature)
	}
	var maps map[string]LinearMapInfo
	if curv.IsAffine() {
		maps = linearMapsOf(false, args...)
	}
	return &Expr{
		Kind:       kind,
		Shape:      shape,
		Args:       args,
		Curvature:  curv,
		LinearMaps: maps,
	}
}

// Index selects x[rows, cols].
func Index(x *Expr, rows, cols Slice) (*Expr, error) {
	if x == nil {
		return nil, newError(ErrInvalid, opIndex, "nil operand")
	}
	for d, s := range [2]Slice{rows, cols} {
		dim := x.Shape.Rows
		if d == 1 {
			dim = x.Shape.Cols
		}
		if s.Step <= 0 || s.Start < 0 || s.Stop > dim || s.Start >= s.Stop {
			return nil, newError(ErrShape, opIndex,
				fmt.Sprintf("slice [%d:%d:%d] invalid for dimension %d of size %d", s.Start, s.Stop, s.Step, d, dim), x)
		}
	}
	e := linearOperator(KindIndex, Shape{Rows: rows.Len(), Cols: cols.Len()}, x)
	e.Key = [2]Slice{rows, cols}
	e.Sign = x.Sign
	return e, nil
}

// Transpose returns xᵀ.
func Transpose(x *Expr) (*Expr, error) {
	if x == nil {
		return nil, newError(ErrInvalid, opTranspose, "nil operand")
	}
	e := linearOperator(KindTranspose, Shape{Rows: x.Shape.Cols, Cols: x.Shape.Rows}, x)
	if x.Shape.IsScalar() && x.IsAffine() {
		e.LinearMaps = mergeLinearMaps(x)
	}
	e.Sign = x.Sign
	return e, nil
}

// Reshape returns x reshaped to m×n. Two reshapes that undo each other cancel.
func Reshape(x *Expr, m, n int) (*Expr, error) {
	if x == nil {
		return nil, newError(ErrInvalid, opReshape, "nil operand")
	}
	if m <= 0 || n <= 0 || m*n != x.Shape.Size() {
		return nil, newError(ErrShape, opReshape, fmt.Sprintf("cant reshape to %d x %d", m, n), x)
	}
	if x.Kind == KindReshape && len(x.Args) == 1 && x.Args[0].Shape == (Shape{Rows: m, Cols: n}) {
		return x.Args[0], nil
	}
	e := linearOperator(KindReshape, Shape{Rows: m, Cols: n}, x)
	e.Sign = x.Sign
	return e, nil
}

// Sum returns the 1×1 sum of the entries of x.
func Sum(x *Expr) (*Expr, error) {
	if x == nil {
		return nil, newError(ErrInvalid, opSum, "nil operand")
	}
	e := linearOperator(KindSum, ScalarShape, x)
	if x.Shape.IsScalar() && x.IsAffine() {
		e.LinearMaps = mergeLinearMaps(x)
	}
	e.Sign = x.Sign
	return e, nil
}

// Hstack concatenates args horizontally; row counts must agree.
func Hstack(args ...*Expr) (*Expr, error) {
	if len(args) == 0 {
		return nil, newError(ErrArity, opHstack, "stacking null args")
	}
	if err := checkArgs(opHstack, args); err != nil {
		return nil, err
	}
	shape := args[0].Shape
	for _, a := range args[1:] {
		if a.Shape.Rows != shape.Rows {
			return nil, newError(ErrShape, opHstack, "row counts differ", args[0], a)
		}
		shape.Cols += a.Shape.Cols
	}
	return linearOperator(KindHstack, shape, args...), nil
}

// Vstack concatenates args vertically; column counts must agree.
func Vstack(args ...*Expr) (*Expr, error) {
	if len(args) == 0 {
		return nil, newError(ErrArity, opVstack, "stacking null args")
	}
	if err := checkArgs(opVstack, args); err != nil {
		return nil, err
	}
	shape := args[0].Shape
	for _, a := range args[1:] {
		if a.Shape.Cols != shape.Cols {
			return nil, newError(ErrShape, opVstack, "column counts differ", args[0], a)
		}
		shape.Rows += a.Shape.Rows
	}
	return linearOperator(KindVstack, shape, args...), nil
}

// ApplyLinearMap returns A·x for a column vector x.
func ApplyLinearMap(a *mat.Dense, x *Expr) (*Expr, error) {
	if a == nil || x == nil {
		return nil, newError(ErrInvalid, opLinearMap, "nil operator or operand", x)
	}
	if x.Shape.Cols != 1 {
		return nil, newError(ErrShape, opLinearMap, "applying linear map to non vector", x)
	}
	r, c := a.Dims()
	if c != x.Shape.Rows {
		return nil, newError(ErrShape, opLinearMap, fmt.Sprintf("linear map has wrong size: %dx%d", r, c), x)
	}
	e := linearOperator(KindLinearMap, Shape{Rows: r, Cols: 1}, x)
	e.Operator = a
	return e, nil
}

// convexAtom builds a non-affine convex node over x.
func convexAtom(kind Kind, shape Shape, mono Monotonicity, x *Expr) *Expr {
	return &Expr{
		Kind:            kind,
		Shape:           shape,
		Args:            []*Expr{x},
		Curvature:       CurvatureConvex,
		Sign:            SignPositive,
		ArgMonotonicity: []Monotonicity{mono},
	}
}

// NormP returns the p-norm of x.
func NormP(x *Expr, p float64) (*Expr, error) {
	if x == nil {
		return nil, newError(ErrInvalid, opNormP, "nil operand")
	}
	if p < 1 {
		return nil, newError(ErrInvalid, opNormP, fmt.Sprintf("p=%g is not a norm", p), x)
	}
	e := convexAtom(KindNormP, ScalarShape, MonotonicitySigned, x)
	e.P = p
	return e, nil
}

// Abs returns |x| elementwise.
func Abs(x *Expr) (*Expr, error) {
	if x == nil {
		return nil, newError(ErrInvalid, opAbs, "nil operand")
	}
	return convexAtom(KindAbs, x.Shape, MonotonicitySigned, x), nil
}

// Power returns x^p elementwise.
func Power(x *Expr, p float64) (*Expr, error) {
	if x == nil {
		return nil, newError(ErrInvalid, opPower, "nil operand")
	}
	e := convexAtom(KindPower, x.Shape, MonotonicitySigned, x)
	e.P = p
	if p > 0 && p < 1 {
		e.Curvature = CurvatureConcave
		e.ArgMonotonicity[0] = MonotonicityIncreasing
	}
	return e, nil
}

// coneArity returns the required argument count for an indicator cone.
func coneArity(c Cone) (int, bool) {
	switch c {
	case ConeZero, ConeNonNegative, ConeSemidefinite:
		return 1, true
	case ConeSecondOrder:
		return 2, true
	default:
		return 0, false
	}
}

// NewIndicator returns the indicator of args lying in cone.
func NewIndicator(cone Cone, args ...*Expr) (*Expr, error) {
	want, ok := coneArity(cone)
	if !ok {
		return nil, newError(ErrInvalid, opIndicator, fmt.Sprintf("unknown cone %s", cone), args...)
	}
	if len(args) != want {
		return nil, newError(ErrArity, opIndicator,
			fmt.Sprintf("cone %s takes %d argument(s), got %d", cone, want, len(args)), args...)
	}
	if err := checkArgs(opIndicator, args); err != nil {
		return nil, err
	}
	return &Expr{
		Kind:      KindIndicator,
		Shape:     ScalarShape,
		Args:      args,
		Curvature: CurvatureConvex,
		Cone:      cone,
	}, nil
}

// NewProxFunction returns the 1×1 term f(args...) whose proximal operator is
// described by kind. ProxZero takes exactly one argument.
func NewProxFunction(kind ProxKind, args ...*Expr) (*Expr, error) {
	if kind == ProxUnknown {
		return nil, newError(ErrInvalid, opProx, "unknown prox function", args...)
	}
	if len(args) == 0 {
		return nil, newError(ErrArity, opProx, fmt.Sprintf("%s needs at least one argument", kind))
	}
	if kind == ProxZero && len(args) != 1 {
		return nil, newError(ErrArity, opProx,
			fmt.Sprintf("%s takes exactly one argument, got %d", kind, len(args)), args...)
	}
	if err := checkArgs(opProx, args); err != nil {
		return nil, err
	}
	return &Expr{
		Kind:      KindProxFunction,
		Shape:     ScalarShape,
		Args:      args,
		Curvature: CurvatureConvex,
		Prox:      kind,
	}, nil
}

// EqConstraint returns I(a - b == 0).
func EqConstraint(a, b *Expr) (*Expr, error) {
	nb, err := Negate(b)
	if err != nil {
		return nil, err
	}
	diff, err := Add(a, nb)
	if err != nil {
		return nil, err
	}
	return NewIndicator(ConeZero, diff)
}

// LeqConstraint returns I(b - a >= 0).
func LeqConstraint(a, b *Expr) (*Expr, error) {
	na, err := Negate(a)
	if err != nil {
		return nil, err
	}
	diff, err := Add(b, na)
	if err != nil {
		return nil, err
	}
	return NewIndicator(ConeNonNegative, diff)
}

// SOCConstraint returns I(||x||_2 <= t).
func SOCConstraint(t, x *Expr) (*Expr, error) {
	return NewIndicator(ConeSecondOrder, t, x)
}

// PSDConstraint returns I(b - a ⪰ 0); operands must be square.
func PSDConstraint(a, b *Expr) (*Expr, error) {
	na, err := Negate(a)
	if err != nil {
		return nil, err
	}
	diff, err := Add(b, na)
	if err != nil {
		return nil, err
	}
	if diff.Shape.Rows != diff.Shape.Cols {
		return nil, newError(ErrShape, opPSD, "semidefinite constraint on non-square operand", a, b)
	}
	return NewIndicator(ConeSemidefinite, diff)
}
