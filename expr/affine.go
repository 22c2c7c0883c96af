// SPDX-License-Identifier: MIT
// File: affine.go
// Role: Curvature algebra and linear-map scalarity propagation.
//
// Scalarity rules applied by the constructors:
//   - VARIABLE x depends on x as a scalar multiple.
//   - ADD and NEGATE keep scalarity (AND across arguments).
//   - MULTIPLY / MULTIPLY_ELEMENTWISE keep it only when every constant
//     factor is 1×1.
//   - Every other linear operator clears it.

package expr

// mergeLinearMaps unions the LinearMaps of the affine args, AND-ing the
// scalar flags of variables referenced by more than one argument.
func mergeLinearMaps(args ...*Expr) map[string]LinearMapInfo {
	out := make(map[string]LinearMapInfo)
	for _, a := range args {
		for id, info := range a.LinearMaps {
			if prev, ok := out[id]; ok {
				info.Scalar = info.Scalar && prev.Scalar
			}
			out[id] = info
		}
	}
	return out
}

// clearScalar returns a copy of m with every dependency marked non-scalar.
func clearScalar(m map[string]LinearMapInfo) map[string]LinearMapInfo {
	out := make(map[string]LinearMapInfo, len(m))
	for id := range m {
		out[id] = LinearMapInfo{Scalar: false}
	}
	return out
}

// linearMapsOf returns the LinearMaps of an affine result built from args:
// nil when any argument is non-affine, otherwise the merged map.
func linearMapsOf(scalar bool, args ...*Expr) map[string]LinearMapInfo {
	for _, a := range args {
		if !a.IsAffine() {
			return nil
		}
	}
	m := mergeLinearMaps(args...)
	if !scalar {
		return clearScalar(m)
	}
	return m
}

// addCurvature combines the curvature of two summands.
func addCurvature(a, b Curvature) Curvature {
	switch {
	case a == CurvatureConstant:
		return b
	case b == CurvatureConstant:
		return a
	case a == CurvatureAffine:
		return b
	case b == CurvatureAffine:
		return a
	case a == b:
		return a
	default:
		return CurvatureUnknown
	}
}

// DependsScalar reports whether e depends on variable id only through a
// pure scalar multiple. An expression that does not reference id at all
// trivially satisfies the predicate.
//
// Affine nodes answer from their LinearMaps attribute; non-affine nodes
// (prox functions, norms, indicators) delegate to their arguments. Nodes
// that arrive without attributes fall back to structural inspection.
func DependsScalar(e *Expr, id string) bool {
	if e == nil {
		return true
	}
	if e.LinearMaps != nil {
		info, ok := e.LinearMaps[id]
		return !ok || info.Scalar
	}
	switch e.Kind {
	case KindVariable:
		return true
	case KindConstant:
		return true
	case KindIndex, KindTranspose, KindReshape, KindLinearMap, KindSum, KindHstack, KindVstack:
		if e.Kind == KindTranspose && e.Shape.IsScalar() {
			break
		}
		return !references(e, id)
	case KindMultiply, KindMultiplyElementwise:
		for _, a := range e.Args {
			if a.Kind == KindConstant && !a.Shape.IsScalar() && references(e, id) {
				return false
			}
		}
	case KindAdd, KindNegate, KindIndicator, KindProxFunction, KindNormP, KindAbs, KindPower, KindUnknown:
	}
	for _, a := range e.Args {
		if !DependsScalar(a, id) {
			return false
		}
	}
	return true
}

// references reports whether e contains a VARIABLE leaf with the given id.
func references(e *Expr, id string) bool {
	found := false
	Walk(e, func(n *Expr) bool {
		if found {
			return false
		}
		if n.Kind == KindVariable && n.VariableID == id {
			found = true
		}
		return !found
	})
	return found
}
