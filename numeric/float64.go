package numeric

import "math"

// F64 is float64 promoted to satisfy the Scalar trait. It is the fast,
// non-certified path used whenever a caller only needs a point value rather
// than a certified enclosure or a derivative.
type F64 float64

func (a F64) Add(b F64) F64  { return a + b }
func (a F64) Sub(b F64) F64  { return a - b }
func (a F64) Mul(b F64) F64  { return a * b }
func (a F64) Div(b F64) F64  { return a / b }
func (a F64) Neg() F64       { return -a }
func (a F64) Sqrt() F64      { return F64(math.Sqrt(float64(a))) }
func (a F64) Sin() F64       { return F64(math.Sin(float64(a))) }
func (a F64) Cos() F64       { return F64(math.Cos(float64(a))) }
func (a F64) Float64() float64 { return float64(a) }
func (a F64) FromFloat64(v float64) F64 { return F64(v) }

func (a F64) Cmp(b F64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
