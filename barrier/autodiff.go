package barrier

import "github.com/ccdkit/rigidccd/numeric"

// Gradient evaluates f at x by seeding numeric.Dual1 variables for every
// component of x and returns both the scalar value and its gradient — the
// autodiff contract spec.md §4.6 requires: the barrier/volume kernels are
// written once, generic over numeric.Scalar, and this is how a caller
// extracts first derivatives from that same generic body instead of
// hand-differentiating it.
func Gradient(f func(x []numeric.Dual1) numeric.Dual1, x []float64) (value float64, grad []float64) {
	n := len(x)
	vars := make([]numeric.Dual1, n)
	for i, xi := range x {
		vars[i] = numeric.NewDual1Variable(xi, i, n)
	}
	out := f(vars)
	return out.Value, append([]float64{}, out.Grad...)
}

// Hessian is the second-order analogue of Gradient, seeding numeric.Dual2
// variables and returning value, gradient, and Hessian together.
func Hessian(f func(x []numeric.Dual2) numeric.Dual2, x []float64) (value float64, grad []float64, hess [][]float64) {
	n := len(x)
	vars := make([]numeric.Dual2, n)
	for i, xi := range x {
		vars[i] = numeric.NewDual2Variable(xi, i, n)
	}
	out := f(vars)
	hessOut := make([][]float64, n)
	for i := range hessOut {
		hessOut[i] = append([]float64{}, out.Hess[i]...)
	}
	return out.Value, append([]float64{}, out.Grad...), hessOut
}
