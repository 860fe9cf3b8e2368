package ncp

import (
	"math"
	"testing"

	"github.com/ccdkit/rigidccd/sparse"
)

// boxNCPProblem is the shared harness spec.md §8 scenarios 4-6 all build
// on: minimize 1/2||x-target||^2 (A=I, b=target) subject to a caller-supplied
// g(x) >= 0, with g and its Jacobian both diagonal (each g_i depends only on
// x_i), the separable structure every one of the three scenarios shares.
type boxNCPProblem struct {
	target []float64
	g      func(x []float64) []float64
	gradG  func(x []float64) []float64 // diagonal entries of Jg, dg_i/dx_i
}

func (p *boxNCPProblem) NumVars() int             { return len(p.target) }
func (p *boxNCPProblem) StartingPoint() []float64 { return make([]float64, len(p.target)) }
func (p *boxNCPProblem) IsDoFFixed(i int) bool     { return false }

func (p *boxNCPProblem) EvalF(x []float64) float64 {
	s := 0.0
	for i, xi := range x {
		d := xi - p.target[i]
		s += 0.5 * d * d
	}
	return s
}

func (p *boxNCPProblem) EvalGradF(x []float64) []float64 {
	g := make([]float64, len(x))
	for i, xi := range x {
		g[i] = xi - p.target[i]
	}
	return g
}

func (p *boxNCPProblem) EvalHessianF(x []float64) [][]float64 {
	h := make([][]float64, len(x))
	for i := range h {
		h[i] = make([]float64, len(x))
		h[i][i] = 1
	}
	return h
}

func (p *boxNCPProblem) EvalG(x []float64) []float64 { return p.g(x) }

func (p *boxNCPProblem) EvalJacG(x []float64) *sparse.Triplets {
	t := sparse.NewTriplets(len(p.target), len(p.target))
	for i, d := range p.gradG(x) {
		t.Add(i, i, d)
	}
	return t
}

// TestSolveNCPLinearConstraintProjectsOntoNonnegativeOrthant is spec.md §8
// scenario 4: A=I_2, b=(-1,-2.5), g(x)=x.
func TestSolveNCPLinearConstraintProjectsOntoNonnegativeOrthant(t *testing.T) {
	problem := &boxNCPProblem{
		target: []float64{-1, -2.5},
		g:      func(x []float64) []float64 { return append([]float64{}, x...) },
		gradG:  func(x []float64) []float64 { return []float64{1, 1} },
	}
	s := NewSolver()
	x, err := s.SolveNCP(problem)
	if err != nil {
		t.Fatalf("SolveNCP: %v", err)
	}
	want := []float64{0, 0}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-6 {
			t.Errorf("x = %v, want %v", x, want)
		}
	}
}

// TestSolveNCPQuadraticConstraintClampsToBox is spec.md §8 scenario 5:
// g(x) = (0.04-x0^2, 0.09-x1^2).
func TestSolveNCPQuadraticConstraintClampsToBox(t *testing.T) {
	problem := &boxNCPProblem{
		target: []float64{-1, -2.5},
		g: func(x []float64) []float64 {
			return []float64{0.04 - x[0]*x[0], 0.09 - x[1]*x[1]}
		},
		gradG: func(x []float64) []float64 { return []float64{-2 * x[0], -2 * x[1]} },
	}
	s := NewSolver()
	s.MaxIterations = 200
	x, err := s.SolveNCP(problem)
	if err != nil {
		t.Fatalf("SolveNCP: %v", err)
	}
	want := []float64{-0.2, -0.3}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-6 {
			t.Errorf("x = %v, want %v", x, want)
		}
	}
}

// TestSolveNCPCircleConstraintClampsToArc is spec.md §8 scenario 6:
// g(x) = (1-(x0-1)^2, 1-(x1-2.5)^2).
func TestSolveNCPCircleConstraintClampsToArc(t *testing.T) {
	problem := &boxNCPProblem{
		target: []float64{-1, -2.5},
		g: func(x []float64) []float64 {
			return []float64{1 - (x[0]-1)*(x[0]-1), 1 - (x[1]-2.5)*(x[1]-2.5)}
		},
		gradG: func(x []float64) []float64 {
			return []float64{-2 * (x[0] - 1), -2 * (x[1] - 2.5)}
		},
	}
	s := NewSolver()
	s.MaxIterations = 200
	x, err := s.SolveNCP(problem)
	if err != nil {
		t.Fatalf("SolveNCP: %v", err)
	}
	want := []float64{0, 1.5}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-6 {
			t.Errorf("x = %v, want %v", x, want)
		}
	}
}
