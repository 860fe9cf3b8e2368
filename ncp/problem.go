// Package ncp implements the nonlinear-complementarity / linear-complementarity
// solving capability the barrier-Newton outer loop needs: a Newton step on
// the unconstrained objective plus a projected Gauss-Seidel sweep for the
// inequality-constrained (complementarity) part, mirroring the impulse-clamp
// pattern the teacher's constraint package uses for non-penetration.
package ncp

import "github.com/ccdkit/rigidccd/sparse"

// Problem is the capability interface a caller implements to hand an
// optimization problem to Solver: an objective F to minimize subject to
// inequality constraints G(x) >= 0, over a fixed-size variable vector some
// of whose components are pinned (IsDoFFixed).
type Problem interface {
	NumVars() int
	StartingPoint() []float64
	IsDoFFixed(i int) bool

	EvalF(x []float64) float64
	EvalGradF(x []float64) []float64
	EvalHessianF(x []float64) [][]float64

	EvalG(x []float64) []float64
	EvalJacG(x []float64) *sparse.Triplets
}
