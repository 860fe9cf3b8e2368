package ncp

import (
	"math"

	"github.com/ccdkit/rigidccd/errs"
)

// UpdateType names how the NCP matrix M is refreshed between iterations.
// The value is stored on Solver but neither Solve nor SolveNCP reads it:
// SolveNCP evaluates the constraint Jacobian once per outer iteration for
// both values, so the two produce identical iterates.
type UpdateType int

const (
	// Linearized: M built from the Jacobian evaluated once per outer step.
	Linearized UpdateType = iota
	// GGradient: M rebuilt from the constraint gradient; handled exactly
	// like Linearized.
	GGradient
)

// LCPKind selects the backend SolveForActiveConstraints uses.
type LCPKind int

const (
	// GaussSeidel is the projected Gauss-Seidel sweep, grounded on the
	// teacher's ContactConstraint.SolveVelocity impulse clamp.
	GaussSeidel LCPKind = iota
	// Mosek would dispatch to a commercial LCP/QP backend; no such
	// dependency is reachable from this module's corpus.
	Mosek
)

// Solver drives both the unconstrained Newton iteration (Solve) and the
// standalone box-constrained LCP sweep (SolveForActiveConstraints) the
// outer barrier-Newton loop uses to project a step onto the active set.
type Solver struct {
	Kind                 LCPKind
	Update               UpdateType
	MaxIterations        int
	ConvergenceTolerance float64
}

// NewSolver returns a Solver with the defaults the outer loop falls back
// to when a caller doesn't override them explicitly.
func NewSolver() *Solver {
	return &Solver{
		Kind:                 GaussSeidel,
		Update:               Linearized,
		MaxIterations:        100,
		ConvergenceTolerance: 1e-8,
	}
}

// SolveForActiveConstraints solves the linear complementarity problem
// 0 <= lambda ⟂ (M*lambda + q) >= 0 for the rows not pinned by fixed,
// via projected Gauss-Seidel: lambda_i <- max(0, lambda_i - (M*lambda+q)_i
// / M_ii), the direct generalization of the teacher's
// "if lambdaNormal < 0 { lambdaNormal = 0 }" non-penetration clamp to an
// arbitrary number of simultaneously active constraints.
func (s *Solver) SolveForActiveConstraints(M [][]float64, q []float64, fixed []bool) ([]float64, error) {
	if s.Kind == Mosek {
		return nil, errs.New(errs.NotImplemented, "Mosek LCP backend", nil)
	}

	n := len(q)
	lambda := make([]float64, n)
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = 100
	}
	tol := s.ConvergenceTolerance
	if tol <= 0 {
		tol = 1e-8
	}

	for iter := 0; iter < maxIter; iter++ {
		maxResidual := 0.0
		for i := 0; i < n; i++ {
			if fixed != nil && i < len(fixed) && fixed[i] {
				continue
			}
			if M[i][i] == 0 {
				continue
			}
			r := q[i]
			for j := 0; j < n; j++ {
				r += M[i][j] * lambda[j]
			}
			delta := r / M[i][i]
			next := lambda[i] - delta
			if next < 0 {
				next = 0
			}
			if d := math.Abs(next - lambda[i]); d > maxResidual {
				maxResidual = d
			}
			lambda[i] = next
		}
		if maxResidual < tol {
			return lambda, nil
		}
	}
	return lambda, errs.New(errs.ConvergenceFailure, "Gauss-Seidel LCP sweep did not converge", nil)
}

// DoLineSearch performs backtracking along direction from x, halving the
// step until the Armijo sufficient-decrease condition holds on F and every
// constraint stays feasible (EvalG(xNew)[k] >= -tolerance): the same
// "accept only if it doesn't create a new violation" gate the outer
// barrier-Newton solver applies at the collision level, here applied at
// the plain feasibility level.
func (s *Solver) DoLineSearch(problem Problem, x []float64, direction []float64, f0 float64, gradF0 []float64) (step float64, xNew []float64, fNew float64) {
	const armijoC = 1e-4
	const shrink = 0.5
	const minStep = 1e-12

	slope := dot(gradF0, direction)
	step = 1.0
	for step > minStep {
		candidate := addScaled(x, direction, step)
		fc := problem.EvalF(candidate)
		if fc <= f0+armijoC*step*slope && feasible(problem, candidate, s.ConvergenceTolerance) {
			return step, candidate, fc
		}
		step *= shrink
	}
	return 0, append([]float64{}, x...), f0
}

func feasible(problem Problem, x []float64, tol float64) bool {
	if tol <= 0 {
		tol = 1e-8
	}
	for _, g := range problem.EvalG(x) {
		if g < -tol {
			return false
		}
	}
	return true
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func addScaled(x, d []float64, step float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + step*d[i]
	}
	return out
}

// Solve runs a damped Newton iteration on problem.EvalF, projecting fixed
// degrees of freedom out of the step and backtracking via DoLineSearch,
// until the gradient norm (restricted to free dof) falls below
// ConvergenceTolerance or MaxIterations is exhausted.
func (s *Solver) Solve(problem Problem) ([]float64, error) {
	x := append([]float64{}, problem.StartingPoint()...)
	n := problem.NumVars()
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = 100
	}
	tol := s.ConvergenceTolerance
	if tol <= 0 {
		tol = 1e-8
	}

	for iter := 0; iter < maxIter; iter++ {
		f0 := problem.EvalF(x)
		grad := problem.EvalGradF(x)
		hess := problem.EvalHessianF(x)

		for i := 0; i < n; i++ {
			if problem.IsDoFFixed(i) {
				grad[i] = 0
			}
		}

		if gradNorm(grad) < tol {
			return x, nil
		}

		direction, err := solveLinearSystem(hess, negate(grad), problem)
		if err != nil {
			return x, err
		}

		_, xNew, _ := s.DoLineSearch(problem, x, direction, f0, grad)
		x = xNew
	}
	return x, errs.New(errs.ConvergenceFailure, "Newton iteration did not converge", nil)
}

func gradNorm(grad []float64) float64 {
	s := 0.0
	for _, g := range grad {
		s += g * g
	}
	return math.Sqrt(s)
}

func negate(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = -x
	}
	return out
}

// solveLinearSystem solves hess*direction = rhs via Gaussian elimination
// with partial pivoting, pinning fixed dof rows/columns to the identity so
// the returned direction is exactly zero there regardless of what the
// Hessian carries in that row.
func solveLinearSystem(hess [][]float64, rhs []float64, problem Problem) ([]float64, error) {
	n := len(rhs)
	a := make([][]float64, n)
	b := append([]float64{}, rhs...)
	for i := 0; i < n; i++ {
		a[i] = append([]float64{}, hess[i]...)
		if problem.IsDoFFixed(i) {
			for j := 0; j < n; j++ {
				a[i][j] = 0
			}
			a[i][i] = 1
			b[i] = 0
		}
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(a[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(a[r][col]); v > best {
				best, pivot = v, r
			}
		}
		if best < 1e-14 {
			return nil, errs.New(errs.ConvergenceFailure, "Newton system is singular", nil)
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			b[col], b[pivot] = b[pivot], b[col]
		}
		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for c := row + 1; c < n; c++ {
			sum -= a[row][c] * x[c]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}
