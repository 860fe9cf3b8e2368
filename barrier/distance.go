package barrier

import (
	"github.com/ccdkit/rigidccd/errs"
	"github.com/ccdkit/rigidccd/numeric"
)

// DistanceBarrier is the C² penalty function spec.md §4.6 requires: zero for
// d >= eps, strictly decreasing and convex as d approaches zero from above,
// and diverging to +Inf as d -> 0+.
//
// The reference scalar trait (spec.md §9) has only +,-,*,/,sqrt,sin,cos — no
// logarithm — which rules out the usual IPC-style log barrier
// -(d-eps)^2*ln(d/eps). This module instead uses the rational barrier
//
//	phi(d) = (eps-d)^3 / d,   0 < d < eps
//	phi(d) = 0,               d >= eps
//
// which is expressible with the trait's four arithmetic ops alone. Because
// the numerator carries (eps-d) to the third power, both phi and phi' share
// a double root at d=eps with the outer zero region (phi'(eps)=0 from the
// squared factor surviving one differentiation, phi''(eps)=0 from one
// factor still surviving a second), giving the same C² match at the
// boundary a log barrier would, without needing Log in the trait.
func DistanceBarrier[S numeric.Scalar[S]](d, eps S) (S, error) {
	var zero S
	if _, ok := any(d).(numeric.MultiPrecision); ok {
		return zero, errs.New(errs.NotImplemented, "DistanceBarrier at MultiPrecision", nil)
	}

	// Only a *certain* d >= eps may take the zero fast path — an "unknown"
	// Interval comparison at the boundary must fall through to the formula,
	// which is exactly zero at d==eps anyway, so this never changes the
	// evaluated value, only which branch computes it.
	if d.Cmp(eps) == 1 {
		return eps.FromFloat64(0), nil
	}

	diff := eps.Sub(d)
	cubed := diff.Mul(diff).Mul(diff)
	return cubed.Div(d), nil
}

// DistanceBarrierDerivatives evaluates DistanceBarrier and its first and
// second derivatives with respect to d at a point, via the autodiff
// contract (Dual2 seeded on d alone) rather than a hand-differentiated
// closed form — this is the "symbolic differentiation consistency" spec.md
// §4.6 asks for: the same generic DistanceBarrier[S] body produces the
// value at S=float64 and the derivatives at S=Dual2.
func DistanceBarrierDerivatives(d, eps float64) (value, first, second float64, err error) {
	dd := numeric.NewDual2Variable(d, 0, 1)
	de := dd.FromFloat64(eps)
	out, err := DistanceBarrier(dd, de)
	if err != nil {
		return 0, 0, 0, err
	}
	return out.Value, out.Grad[0], out.Hess[0][0], nil
}
