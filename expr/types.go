// SPDX-License-Identifier: MIT
// File: types.go
// Role: Closed enumerations (Kind, Curvature, Sign, Monotonicity, Cone,
//       ProxKind) and small value types (Shape, Slice, Constant).
// Determinism:
//   - Enumeration values are part of the canonical encoding; append only.

package expr

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Kind tags the variant of an expression node.
type Kind uint8

// Expression kinds. The set is closed: code that dispatches over kinds
// switches exhaustively.
const (
	KindUnknown Kind = iota
	KindAdd
	KindMultiply
	KindMultiplyElementwise
	KindNegate
	KindVariable
	KindConstant
	KindIndex
	KindTranspose
	KindReshape
	KindIndicator
	KindProxFunction
	KindLinearMap
	KindSum
	KindHstack
	KindVstack
	KindNormP
	KindAbs
	KindPower
	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:             "UNKNOWN",
	KindAdd:                 "ADD",
	KindMultiply:            "MULTIPLY",
	KindMultiplyElementwise: "MULTIPLY_ELEMENTWISE",
	KindNegate:              "NEGATE",
	KindVariable:            "VARIABLE",
	KindConstant:            "CONSTANT",
	KindIndex:               "INDEX",
	KindTranspose:           "TRANSPOSE",
	KindReshape:             "RESHAPE",
	KindIndicator:           "INDICATOR",
	KindProxFunction:        "PROX_FUNCTION",
	KindLinearMap:           "LINEAR_MAP",
	KindSum:                 "SUM",
	KindHstack:              "HSTACK",
	KindVstack:              "VSTACK",
	KindNormP:               "NORM_P",
	KindAbs:                 "ABS",
	KindPower:               "POWER",
}

// String returns the upper-case kind name.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("KIND(%d)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k is a known, non-zero kind.
func (k Kind) Valid() bool { return k > KindUnknown && k < kindCount }

// Curvature is the DCP curvature of an expression.
type Curvature uint8

// Curvature values.
const (
	CurvatureUnknown Curvature = iota
	CurvatureConstant
	CurvatureAffine
	CurvatureConvex
	CurvatureConcave
)

// String returns the curvature name.
func (c Curvature) String() string {
	switch c {
	case CurvatureConstant:
		return "CONSTANT"
	case CurvatureAffine:
		return "AFFINE"
	case CurvatureConvex:
		return "CONVEX"
	case CurvatureConcave:
		return "CONCAVE"
	default:
		return "UNKNOWN"
	}
}

// Negate returns the curvature of -e for an expression e with curvature c.
func (c Curvature) Negate() Curvature {
	switch c {
	case CurvatureConvex:
		return CurvatureConcave
	case CurvatureConcave:
		return CurvatureConvex
	default:
		return c
	}
}

// IsAffine reports whether c is affine or constant.
func (c Curvature) IsAffine() bool {
	return c == CurvatureAffine || c == CurvatureConstant
}

// Sign is the known sign of an expression's value.
type Sign uint8

// Sign values.
const (
	SignUnknown Sign = iota
	SignPositive
	SignNegative
	SignZero
)

// String returns the sign name.
func (s Sign) String() string {
	switch s {
	case SignPositive:
		return "POSITIVE"
	case SignNegative:
		return "NEGATIVE"
	case SignZero:
		return "ZERO"
	default:
		return "UNKNOWN"
	}
}

// Negate returns the sign of -e for an expression e with sign s.
func (s Sign) Negate() Sign {
	switch s {
	case SignPositive:
		return SignNegative
	case SignNegative:
		return SignPositive
	default:
		return s
	}
}

// Monotonicity describes how a node responds to one of its arguments.
type Monotonicity uint8

// Monotonicity values.
const (
	MonotonicityUnknown Monotonicity = iota
	MonotonicityIncreasing
	MonotonicityDecreasing
	MonotonicitySigned
	MonotonicityConstant
)

// Cone tags the cone of an INDICATOR node.
type Cone uint8

// Cone values. ConeZero is the exact-equality cone {0}.
const (
	ConeUnknown Cone = iota
	ConeZero
	ConeNonNegative
	ConeSecondOrder
	ConeSemidefinite
)

// String returns the cone name.
func (c Cone) String() string {
	switch c {
	case ConeZero:
		return "ZERO"
	case ConeNonNegative:
		return "NON_NEGATIVE"
	case ConeSecondOrder:
		return "SECOND_ORDER"
	case ConeSemidefinite:
		return "SEMIDEFINITE"
	default:
		return "UNKNOWN"
	}
}

// ProxKind tags the proximal-function descriptor of a PROX_FUNCTION node.
type ProxKind uint8

// Proximal function kinds. ProxZero is the exact-equality indicator
// f(x) = I(x == 0); ProxConstant is the null prox f(x) = 0.
const (
	ProxUnknown ProxKind = iota
	ProxConstant
	ProxZero
	ProxAffine
	ProxNonNegative
	ProxNormL1
	ProxNormL2
	ProxSumSquares
	ProxSumLargest
	ProxMaxEntries
	ProxNegativeLog
	ProxLogistic
	ProxHuber
	ProxSecondOrderCone
	ProxSemidefinite
)

var proxNames = map[ProxKind]string{
	ProxConstant:        "CONSTANT",
	ProxZero:            "ZERO",
	ProxAffine:          "AFFINE",
	ProxNonNegative:     "NON_NEGATIVE",
	ProxNormL1:          "NORM_1",
	ProxNormL2:          "NORM_2",
	ProxSumSquares:      "SUM_SQUARE",
	ProxSumLargest:      "SUM_LARGEST",
	ProxMaxEntries:      "MAX",
	ProxNegativeLog:     "NEG_LOG",
	ProxLogistic:        "LOGISTIC",
	ProxHuber:           "HUBER",
	ProxSecondOrderCone: "SECOND_ORDER_CONE",
	ProxSemidefinite:    "SEMIDEFINITE",
}

// String returns the prox descriptor name.
func (p ProxKind) String() string {
	if name, ok := proxNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// Shape is the (rows, cols) size of an expression value.
type Shape struct {
	Rows int
	Cols int
}

// ScalarShape is the 1×1 shape.
var ScalarShape = Shape{Rows: 1, Cols: 1}

// Size returns the number of entries.
func (s Shape) Size() int { return s.Rows * s.Cols }

// IsScalar reports whether s is 1×1.
func (s Shape) IsScalar() bool { return s.Rows == 1 && s.Cols == 1 }

// Valid reports whether both dimensions are positive.
func (s Shape) Valid() bool { return s.Rows > 0 && s.Cols > 0 }

// String formats s as "rows x cols".
func (s Shape) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Cols) }

// Slice is a half-open [Start, Stop) range with positive Step.
type Slice struct {
	Start int
	Stop  int
	Step  int
}

// Len returns the number of selected indices.
func (s Slice) Len() int {
	if s.Stop <= s.Start || s.Step <= 0 {
		return 0
	}
	return (s.Stop - s.Start + s.Step - 1) / s.Step
}

// FullSlice selects every index of a dimension of length n.
func FullSlice(n int) Slice { return Slice{Start: 0, Stop: n, Step: 1} }

// Constant is the payload of a CONSTANT node: either a scalar broadcast over
// the node's shape (Dense == nil) or an explicit dense matrix.
type Constant struct {
	Scalar float64
	Dense  *mat.Dense
}

// LinearMapInfo annotates one variable dependency of an affine node.
// Scalar is true when the node depends on the variable only through a
// scalar multiple (alpha*x).
type LinearMapInfo struct {
	Scalar bool
}
