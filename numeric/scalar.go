// Package numeric provides the scalar trait that every geometric predicate
// and barrier function in this module is templated over, plus its concrete
// instantiations: float64, certified intervals, and first/second-order dual
// numbers for autodiff.
//
// The trait replaces the single C++ template parameter the reference
// implementation carries through its geometry kernel: a subsystem declares
// the operations it needs on the scalar (Add, Mul, Sqrt, ...) instead of the
// concrete type, and the caller picks float64 for fast paths, Interval for
// certified CCD, or a dual number when it needs a derivative.
package numeric

// Scalar is the set of operations the geometry and barrier kernels require.
// It is intentionally small: every predicate in this module is expressible
// with +, -, *, /, Sqrt, Sin, Cos and an ordering comparison.
type Scalar[S any] interface {
	Add(S) S
	Sub(S) S
	Mul(S) S
	Div(S) S
	Neg() S
	Sqrt() S
	Sin() S
	Cos() S
	// Cmp returns -1, 0, 1 for certainly-less, unknown-or-equal,
	// certainly-greater. Interval comparisons may return 0 ("unknown") for
	// overlapping bounds; predicates built on Cmp must treat 0 as "not
	// proven" rather than "equal" to stay conservative.
	Cmp(S) int
	// Float64 returns the best available point value (midpoint for
	// Interval, value for dual numbers).
	Float64() float64
	// FromFloat64 builds a constant of the same concrete type and, for the
	// dual numbers, the same gradient/Hessian dimension as the receiver —
	// the receiver is only a dimension template, its own value is ignored.
	// This is how generic code obtains a "0" or "1" of the right shape
	// without the trait needing separate factory functions per type.
	FromFloat64(float64) S
}
