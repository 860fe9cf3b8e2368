package numeric

import "math"

// Dual2 is a second-order dual number: value, gradient, and Hessian with
// respect to a fixed-size local parameter vector. It is the scalar used to
// cross-check autodiff gradients/Hessians of the barrier and volume kernels
// against finite differences (spec.md §8).
type Dual2 struct {
	Value float64
	Grad  []float64
	Hess  [][]float64 // Hess[i][j], symmetric
}

// NewDual2Constant returns a value with a zero gradient/Hessian of
// dimension n.
func NewDual2Constant(value float64, n int) Dual2 {
	hess := make([][]float64, n)
	for i := range hess {
		hess[i] = make([]float64, n)
	}
	return Dual2{Value: value, Grad: make([]float64, n), Hess: hess}
}

// NewDual2Variable seeds the gradient with the index-th standard basis
// vector; the Hessian of a bare variable is zero.
func NewDual2Variable(value float64, index, n int) Dual2 {
	d := NewDual2Constant(value, n)
	d.Grad[index] = 1
	return d
}

func (a Dual2) dim() int { return len(a.Grad) }

func zeroDual2(n int) Dual2 { return NewDual2Constant(0, n) }

func (a Dual2) Add(b Dual2) Dual2 {
	n := a.dim()
	out := zeroDual2(n)
	out.Value = a.Value + b.Value
	for i := 0; i < n; i++ {
		out.Grad[i] = a.Grad[i] + b.Grad[i]
		for j := 0; j < n; j++ {
			out.Hess[i][j] = a.Hess[i][j] + b.Hess[i][j]
		}
	}
	return out
}

func (a Dual2) Sub(b Dual2) Dual2 {
	n := a.dim()
	out := zeroDual2(n)
	out.Value = a.Value - b.Value
	for i := 0; i < n; i++ {
		out.Grad[i] = a.Grad[i] - b.Grad[i]
		for j := 0; j < n; j++ {
			out.Hess[i][j] = a.Hess[i][j] - b.Hess[i][j]
		}
	}
	return out
}

func (a Dual2) Mul(b Dual2) Dual2 {
	n := a.dim()
	out := zeroDual2(n)
	out.Value = a.Value * b.Value
	for i := 0; i < n; i++ {
		out.Grad[i] = a.Value*b.Grad[i] + b.Value*a.Grad[i]
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Hess[i][j] = a.Value*b.Hess[i][j] + a.Grad[i]*b.Grad[j] +
				a.Grad[j]*b.Grad[i] + b.Value*a.Hess[i][j]
		}
	}
	return out
}

func (a Dual2) Div(b Dual2) Dual2 {
	n := a.dim()
	out := zeroDual2(n)
	out.Value = a.Value / b.Value
	for i := 0; i < n; i++ {
		out.Grad[i] = (a.Grad[i] - out.Value*b.Grad[i]) / b.Value
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Hess[i][j] = (a.Hess[i][j] - out.Grad[i]*b.Grad[j] -
				out.Grad[j]*b.Grad[i] - out.Value*b.Hess[i][j]) / b.Value
		}
	}
	return out
}

func (a Dual2) Neg() Dual2 {
	n := a.dim()
	out := zeroDual2(n)
	out.Value = -a.Value
	for i := 0; i < n; i++ {
		out.Grad[i] = -a.Grad[i]
		for j := 0; j < n; j++ {
			out.Hess[i][j] = -a.Hess[i][j]
		}
	}
	return out
}

func (a Dual2) Sqrt() Dual2 {
	n := a.dim()
	out := zeroDual2(n)
	v := math.Sqrt(a.Value)
	out.Value = v
	if v <= 0 {
		return out
	}
	for i := 0; i < n; i++ {
		out.Grad[i] = a.Grad[i] / (2 * v)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Hess[i][j] = (a.Hess[i][j] - 2*out.Grad[i]*out.Grad[j]) / (2 * v)
		}
	}
	return out
}

func (a Dual2) Sin() Dual2 {
	n := a.dim()
	out := zeroDual2(n)
	s, c := math.Sin(a.Value), math.Cos(a.Value)
	out.Value = s
	for i := 0; i < n; i++ {
		out.Grad[i] = c * a.Grad[i]
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Hess[i][j] = -s*a.Grad[i]*a.Grad[j] + c*a.Hess[i][j]
		}
	}
	return out
}

func (a Dual2) Cos() Dual2 {
	n := a.dim()
	out := zeroDual2(n)
	s, c := math.Sin(a.Value), math.Cos(a.Value)
	out.Value = c
	for i := 0; i < n; i++ {
		out.Grad[i] = -s * a.Grad[i]
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Hess[i][j] = -c*a.Grad[i]*a.Grad[j] - s*a.Hess[i][j]
		}
	}
	return out
}

func (a Dual2) Cmp(b Dual2) int {
	switch {
	case a.Value < b.Value:
		return -1
	case a.Value > b.Value:
		return 1
	default:
		return 0
	}
}

func (a Dual2) Float64() float64 { return a.Value }

// FromFloat64 returns a constant with the same gradient/Hessian dimension
// as a.
func (a Dual2) FromFloat64(v float64) Dual2 { return NewDual2Constant(v, a.dim()) }
