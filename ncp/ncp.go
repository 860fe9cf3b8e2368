package ncp

import (
	"math"

	"github.com/ccdkit/rigidccd/errs"
	"github.com/ccdkit/rigidccd/sparse"
)

// SolveNCP solves the full nonlinear complementarity problem spec.md §4.8
// names: min 1/2 xᵀAx - bᵀx subject to g(x) >= 0, λ >= 0, λᵀg(x) = 0, where
// A = EvalHessianF(x) and Ax-b = EvalGradF(x) (both caller-supplied so the
// objective itself need not be literally quadratic, though the linearized
// KKT system solved per outer iteration always is).
//
// Each outer iteration linearizes g about the current x (s.Update is not
// consulted: the Jacobian is evaluated once per outer iteration and held
// fixed for every inner Gauss-Seidel sweep, whichever UpdateType is set),
// eliminates the step dx = A⁻¹(Jg(x)ᵀλ - (Ax-b)) into an LCP purely in λ
// (M = Jg·A⁻¹·Jgᵀ, q = g(x) - Jg·A⁻¹·(Ax-b)), solves it via
// SolveForActiveConstraints, and takes the resulting step. This is the
// direct generalization of the box-constrained case (spec.md §8 scenarios
// 4-6): when g(x) = x, Jg is the identity and this reduces exactly to
// SolveForActiveConstraints(A, -b, ...).
func (s *Solver) SolveNCP(problem Problem) ([]float64, error) {
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
		a := problem.EvalHessianF(x)
		gradF := problem.EvalGradF(x)
		g := problem.EvalG(x)
		jac := denseFromTriplets(problem.EvalJacG(x), len(g), n)

		aInv, err := invert(a)
		if err != nil {
			return x, err
		}

		jAinv := matMul(jac, aInv)
		m := matMul(jAinv, transpose(jac))
		q := subVec(g, matVec(jAinv, gradF))

		lambda, err := s.SolveForActiveConstraints(m, q, nil)
		if err != nil {
			return x, err
		}

		jtLambda := matVecT(jac, lambda, n)
		dx := matVec(aInv, subVec(jtLambda, gradF))
		for i := 0; i < n; i++ {
			if problem.IsDoFFixed(i) {
				dx[i] = 0
			}
		}
		xNew := addVec(x, dx)

		residual := norm(subVec(gradF, jtLambda)) + complementarityNorm(lambda, g)
		x = xNew
		if residual < tol {
			return x, nil
		}
	}
	return x, errs.New(errs.ConvergenceFailure, "NCP linearize-and-LCP loop did not converge", nil)
}

// complementarityNorm is ‖min(λ, g(x))‖, zero exactly when every row is
// either inactive (λ_i=0, g_i(x)>=0) or active (λ_i>=0, g_i(x)=0) — the
// complementarity half of spec.md §4.8's termination residual.
func complementarityNorm(lambda, g []float64) float64 {
	s := 0.0
	for i := range lambda {
		m := math.Min(lambda[i], g[i])
		s += m * m
	}
	return math.Sqrt(s)
}

// denseFromTriplets expands a sparse.Triplets accumulator to a dense
// rows x cols matrix — the Jacobian of g is small (one row per active
// candidate, n columns) so densifying it for the LCP elimination below
// costs nothing next to the Gauss-Seidel sweep itself.
func denseFromTriplets(t *sparse.Triplets, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	csr := t.ToCSR()
	for row := 0; row < csr.NumRows && row < rows; row++ {
		for k := csr.RowPtr[row]; k < csr.RowPtr[row+1]; k++ {
			out[row][csr.ColIdx[k]] = csr.Vals[k]
		}
	}
	return out
}

func norm(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

func subVec(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func addVec(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// matMul multiplies dense a (r x k) by b (k x c).
func matMul(a, b [][]float64) [][]float64 {
	r := len(a)
	if r == 0 {
		return nil
	}
	k := len(a[0])
	c := 0
	if len(b) > 0 {
		c = len(b[0])
	}
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			sum := 0.0
			for t := 0; t < k; t++ {
				sum += a[i][t] * b[t][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// matVec multiplies dense a (r x c) by vector v (c).
func matVec(a [][]float64, v []float64) []float64 {
	out := make([]float64, len(a))
	for i, row := range a {
		sum := 0.0
		for j, val := range row {
			sum += val * v[j]
		}
		out[i] = sum
	}
	return out
}

// matVecT multiplies aᵀ (cols x r) by vector v (r), i.e. computes aᵀ*v
// without materializing the transpose. cols is passed explicitly (rather
// than read off a[0]) so an empty active set (a has zero rows, g(x) is
// empty) still yields the correct zero vector of length cols instead of
// a nil slice that would silently desync the vector arithmetic below it.
func matVecT(a [][]float64, v []float64, cols int) []float64 {
	out := make([]float64, cols)
	for i, row := range a {
		for j, val := range row {
			out[j] += val * v[i]
		}
	}
	return out
}

func transpose(a [][]float64) [][]float64 {
	if len(a) == 0 {
		return nil
	}
	rows, cols := len(a), len(a[0])
	out := make([][]float64, cols)
	for j := 0; j < cols; j++ {
		out[j] = make([]float64, rows)
		for i := 0; i < rows; i++ {
			out[j][i] = a[i][j]
		}
	}
	return out
}

// invert computes the inverse of a square dense matrix via Gauss-Jordan
// elimination with partial pivoting.
func invert(a [][]float64) ([][]float64, error) {
	n := len(a)
	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], a[i])
		aug[i][n+i] = 1
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug[r][col]); v > best {
				best, pivot = v, r
			}
		}
		if best < 1e-14 {
			return nil, errs.New(errs.ConvergenceFailure, "NCP Hessian is singular", nil)
		}
		if pivot != col {
			aug[col], aug[pivot] = aug[pivot], aug[col]
		}
		pivotVal := aug[col][col]
		for c := 0; c < 2*n; c++ {
			aug[col][c] /= pivotVal
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for c := 0; c < 2*n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = append([]float64{}, aug[i][n:]...)
	}
	return out, nil
}
