package solver

import (
	"math"

	"github.com/ccdkit/rigidccd/errs"
	"github.com/ccdkit/rigidccd/scene"
)

// BarrierNewtonSolver drives the alternating barrier/Newton loop described
// in scene.BarrierSolverSettings.
type BarrierNewtonSolver struct {
	Settings scene.BarrierSolverSettings
}

// NewBarrierNewtonSolver builds a solver from the given on-disk settings.
func NewBarrierNewtonSolver(settings scene.BarrierSolverSettings) *BarrierNewtonSolver {
	return &BarrierNewtonSolver{Settings: settings}
}

// StepResult reports one Newton step's outcome.
type StepResult struct {
	Accepted    bool
	StepSize    float64
	MinDistance *float64
	MeritBefore float64
	MeritAfter  float64
}

// Step performs steps 2-3 (and 5) of the barrier-Newton algorithm: builds
// the active-set barrier term at the current epsilon, assembles gradient
// and Hessian of f(sigma) + Sum(phi(d_k; epsilon)), PSD-shifts the Hessian
// if needed, solves for the Newton direction with fixed dof projected out,
// and backtracks until the merit function decreases and HasCollisions
// reports no intersection along the step.
func (s *BarrierNewtonSolver) Step(problem Problem, sigma []float64, epsilon float64) ([]float64, StepResult, error) {
	n := len(sigma)

	f0 := problem.EvalF(sigma)
	gradF := problem.EvalGradF(sigma)
	hessF := problem.EvalHessianF(sigma)

	barrierVal, barrierGrad, barrierHess := problem.EvalBarrierTerm(sigma, epsilon)

	merit0 := f0 + barrierVal
	grad := make([]float64, n)
	hess := make([][]float64, n)
	for i := 0; i < n; i++ {
		grad[i] = gradF[i] + barrierGrad[i]
		hess[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			hess[i][j] = hessF[i][j] + barrierHess[i][j]
		}
		if problem.IsDoFFixed(i) {
			for j := 0; j < n; j++ {
				hess[i][j] = 0
				hess[j][i] = 0
			}
			hess[i][i] = 1
			grad[i] = 0
		}
	}

	hess = shiftToPSD(hess)

	direction, err := solveSymmetric(hess, negate(grad))
	if err != nil {
		return sigma, StepResult{}, err
	}

	step := 1.0
	const shrink = 0.5
	const minStep = 1e-12
	var accepted bool
	var candidate []float64
	var meritAfter float64

	for step > minStep {
		candidate = addScaled(sigma, direction, step)
		fc := problem.EvalF(candidate)
		bv, _, _ := problem.EvalBarrierTerm(candidate, epsilon)
		meritAfter = fc + bv
		if meritAfter < merit0 && !problem.HasCollisions(sigma, candidate) {
			accepted = true
			break
		}
		step *= shrink
	}

	result := StepResult{Accepted: accepted, StepSize: step, MeritBefore: merit0, MeritAfter: meritAfter}
	if d, ok := problem.MinDistance(sigma); ok {
		result.MinDistance = &d
	}

	if !accepted {
		return sigma, result, nil
	}
	return candidate, result, nil
}

// Solve runs the outer epsilon-decay loop (steps 1 and 4): repeatedly
// calling Step, shrinking epsilon by Settings.BarrierDecayRate after an
// accepted step whose merit change is below Settings.ConvergenceTolerance
// and whose minimum distance is strictly positive, and stopping when a
// step is rejected or MaxIterations is exhausted.
func (s *BarrierNewtonSolver) Solve(problem Problem) ([]float64, scene.StateExport, error) {
	sigma := append([]float64{}, problem.StartingPoint()...)
	epsilon := s.Settings.InitialBarrierStiffness
	if epsilon <= 0 {
		epsilon = 1.0
	}
	maxIter := s.Settings.MaxIterations
	if maxIter <= 0 {
		maxIter = 50
	}
	decay := s.Settings.BarrierDecayRate
	if decay <= 0 || decay >= 1 {
		decay = 0.5
	}

	var last StepResult
	iterations := 0
	for ; iterations < maxIter; iterations++ {
		newSigma, result, err := s.Step(problem, sigma, epsilon)
		if err != nil {
			return sigma, scene.StateExport{Iterations: iterations}, err
		}
		last = result
		if !result.Accepted {
			break
		}
		sigma = newSigma

		if math.Abs(result.MeritBefore-result.MeritAfter) < s.Settings.ConvergenceTolerance &&
			result.MinDistance != nil && *result.MinDistance > 0 {
			epsilon *= decay
			continue
		}
	}

	converged := last.Accepted && iterations < maxIter
	return sigma, scene.StateExport{
		MinDistance:          last.MinDistance,
		NumActiveConstraints: countActive(problem, sigma),
		Iterations:           iterations,
		Converged:            converged,
	}, nil
}

func countActive(problem Problem, sigma []float64) int {
	if _, ok := problem.MinDistance(sigma); !ok {
		return 0
	}
	return 1
}

func negate(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = -x
	}
	return out
}

func addScaled(x, d []float64, step float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + step*d[i]
	}
	return out
}

// isPSD attempts a Cholesky factorization of a (assumed symmetric); it
// returns false on the first non-positive pivot, which is sufficient (not
// a full eigenvalue certificate) to decide whether the diagonal shift
// bisection in shiftToPSD needs to grow further.
func isPSD(a [][]float64) bool {
	n := len(a)
	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum <= 1e-12 {
					return false
				}
				l[i][j] = math.Sqrt(sum)
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	return true
}

// shiftToPSD applies a.M + mu*I for the smallest mu (found by bisection,
// per spec.md's "diagonal shift until it is PSD") that makes the Cholesky
// check above pass, bracketing mu by doubling until isPSD first succeeds.
func shiftToPSD(a [][]float64) [][]float64 {
	if isPSD(a) {
		return a
	}

	n := len(a)
	withShift := func(mu float64) [][]float64 {
		out := make([][]float64, n)
		for i := range out {
			out[i] = append([]float64{}, a[i]...)
			out[i][i] += mu
		}
		return out
	}

	lo, hi := 0.0, 1e-6
	for !isPSD(withShift(hi)) {
		hi *= 2
		if hi > 1e12 {
			break
		}
	}
	for iter := 0; iter < 60 && hi-lo > 1e-10*math.Max(1, hi); iter++ {
		mid := (lo + hi) / 2
		if isPSD(withShift(mid)) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return withShift(hi)
}

// solveSymmetric solves a*x = b via Gaussian elimination with partial
// pivoting; a need not stay symmetric under pivoting, so this does not
// assume/exploit symmetry despite the caller's matrix being symmetric.
func solveSymmetric(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	m := make([][]float64, n)
	rhs := append([]float64{}, b...)
	for i := range m {
		m[i] = append([]float64{}, a[i]...)
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(m[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(m[r][col]); v > best {
				best, pivot = v, r
			}
		}
		if best < 1e-14 {
			return nil, errs.New(errs.ConvergenceFailure, "barrier-Newton system is singular even after PSD shift", nil)
		}
		if pivot != col {
			m[col], m[pivot] = m[pivot], m[col]
			rhs[col], rhs[pivot] = rhs[pivot], rhs[col]
		}
		for r := col + 1; r < n; r++ {
			factor := m[r][col] / m[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				m[r][c] -= factor * m[col][c]
			}
			rhs[r] -= factor * rhs[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := rhs[row]
		for c := row + 1; c < n; c++ {
			sum -= m[row][c] * x[c]
		}
		x[row] = sum / m[row][row]
	}
	return x, nil
}
