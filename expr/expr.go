// SPDX-License-Identifier: MIT
// File: expr.go
// Role: The Expr node and the Problem container.

package expr

import "gonum.org/v1/gonum/mat"

// Expr is one node of an expression tree.
//
// Only the payload fields relevant to Kind are populated:
//
//	KindVariable     → VariableID
//	KindConstant     → Constant
//	KindIndicator    → Cone
//	KindProxFunction → Prox
//	KindIndex        → Key
//	KindLinearMap    → Operator
//	KindNormP, Power → P
//
// Nodes must not be mutated once they are reachable from a Problem.
type Expr struct {
	Kind  Kind
	Shape Shape
	Args  []*Expr

	Curvature       Curvature
	Sign            Sign
	ArgMonotonicity []Monotonicity

	// LinearMaps is non-nil on affine nodes and maps every referenced
	// variable ID to its scalarity. Non-affine nodes leave it nil.
	LinearMaps map[string]LinearMapInfo

	VariableID string
	Constant   *Constant
	Cone       Cone
	Prox       ProxKind
	Key        [2]Slice
	Operator   *mat.Dense
	P          float64
}

// Arg returns the i-th argument or nil when out of range.
func (e *Expr) Arg(i int) *Expr {
	if e == nil || i < 0 || i >= len(e.Args) {
		return nil
	}
	return e.Args[i]
}

// OnlyArg returns the single argument of e, or an ErrArity error.
func (e *Expr) OnlyArg() (*Expr, error) {
	if len(e.Args) != 1 {
		return nil, newError(ErrArity, "OnlyArg", "expected exactly one argument", e)
	}
	return e.Args[0], nil
}

// IsAffine reports whether e is an affine (or constant) node.
func (e *Expr) IsAffine() bool { return e.Curvature.IsAffine() }

// IsEqualityIndicator reports whether e is a hard-equality indicator:
// INDICATOR over the zero cone or PROX_FUNCTION of kind ZERO.
func (e *Expr) IsEqualityIndicator() bool {
	switch e.Kind {
	case KindIndicator:
		return e.Cone == ConeZero
	case KindProxFunction:
		return e.Prox == ProxZero
	default:
		return false
	}
}

// Problem is a sum-of-terms objective plus constraint indicators.
type Problem struct {
	// Objective is the objective expression; an ADD node is read as a sum
	// of independent terms. Nil means "no objective terms".
	Objective *Expr
	// Constraints are indicator expressions that must hold.
	Constraints []*Expr
}

// HasVariables reports whether any expression of p references a variable.
func (p Problem) HasVariables() bool {
	if p.Objective != nil && HasVariables(p.Objective) {
		return true
	}
	for _, c := range p.Constraints {
		if c != nil && HasVariables(c) {
			return true
		}
	}
	return false
}
