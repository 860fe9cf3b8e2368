package numeric

import "math"

// Dual1 is a first-order dual number: a value paired with its gradient with
// respect to a fixed-size local parameter vector (one body's ndof entries
// in the rigid-body assemblers: 3 in 2D, 6 in 3D; see the rigidbody package). Arithmetic implements
// the chain rule directly instead of carrying a symbolic expression, which
// is the same design the reference implementation's templated autodiff
// scalar uses, just expressed as an explicit Go value type.
//
// All operands in one expression must share the same Grad length; mixing
// constants and variables is done via NewDual1Constant/NewDual1Variable,
// both of which allocate a gradient of the expression's dimension n.
type Dual1 struct {
	Value float64
	Grad  []float64
}

// NewDual1Constant returns a value with a zero gradient of dimension n.
func NewDual1Constant(value float64, n int) Dual1 {
	return Dual1{Value: value, Grad: make([]float64, n)}
}

// NewDual1Variable returns a value whose gradient is the index-th standard
// basis vector of dimension n — i.e. the seed for differentiating with
// respect to local dof `index`.
func NewDual1Variable(value float64, index, n int) Dual1 {
	d := NewDual1Constant(value, n)
	d.Grad[index] = 1
	return d
}

func (a Dual1) dim() int { return len(a.Grad) }

func (a Dual1) Add(b Dual1) Dual1 {
	out := Dual1{Value: a.Value + b.Value, Grad: make([]float64, a.dim())}
	for i := range out.Grad {
		out.Grad[i] = a.Grad[i] + b.Grad[i]
	}
	return out
}

func (a Dual1) Sub(b Dual1) Dual1 {
	out := Dual1{Value: a.Value - b.Value, Grad: make([]float64, a.dim())}
	for i := range out.Grad {
		out.Grad[i] = a.Grad[i] - b.Grad[i]
	}
	return out
}

func (a Dual1) Mul(b Dual1) Dual1 {
	out := Dual1{Value: a.Value * b.Value, Grad: make([]float64, a.dim())}
	for i := range out.Grad {
		out.Grad[i] = a.Value*b.Grad[i] + b.Value*a.Grad[i]
	}
	return out
}

func (a Dual1) Div(b Dual1) Dual1 {
	out := Dual1{Value: a.Value / b.Value, Grad: make([]float64, a.dim())}
	denom := b.Value * b.Value
	for i := range out.Grad {
		out.Grad[i] = (a.Grad[i]*b.Value - a.Value*b.Grad[i]) / denom
	}
	return out
}

func (a Dual1) Neg() Dual1 {
	out := Dual1{Value: -a.Value, Grad: make([]float64, a.dim())}
	for i := range out.Grad {
		out.Grad[i] = -a.Grad[i]
	}
	return out
}

func (a Dual1) Sqrt() Dual1 {
	v := math.Sqrt(a.Value)
	out := Dual1{Value: v, Grad: make([]float64, a.dim())}
	if v > 0 {
		for i := range out.Grad {
			out.Grad[i] = a.Grad[i] / (2 * v)
		}
	}
	return out
}

func (a Dual1) Sin() Dual1 {
	out := Dual1{Value: math.Sin(a.Value), Grad: make([]float64, a.dim())}
	c := math.Cos(a.Value)
	for i := range out.Grad {
		out.Grad[i] = c * a.Grad[i]
	}
	return out
}

func (a Dual1) Cos() Dual1 {
	out := Dual1{Value: math.Cos(a.Value), Grad: make([]float64, a.dim())}
	s := -math.Sin(a.Value)
	for i := range out.Grad {
		out.Grad[i] = s * a.Grad[i]
	}
	return out
}

func (a Dual1) Cmp(b Dual1) int {
	switch {
	case a.Value < b.Value:
		return -1
	case a.Value > b.Value:
		return 1
	default:
		return 0
	}
}

func (a Dual1) Float64() float64 { return a.Value }

// FromFloat64 returns a constant with the same gradient dimension as a.
func (a Dual1) FromFloat64(v float64) Dual1 { return NewDual1Constant(v, a.dim()) }
