package numeric

import (
	"math"
	"math/big"
)

// MultiPrecisionPrec is the bit precision used for the MultiPrecision
// scalar's underlying big.Float.
const MultiPrecisionPrec = 256

// MultiPrecision is an arbitrary-precision scalar backed by math/big. It
// exists so the Scalar trait has a complete set of instantiations, but the
// distance-barrier constraint evaluator never actually runs its barrier
// formula at this precision — per the reference implementation, that branch
// is unfinished, and this module surfaces that honestly as a typed
// NotImplemented error (see barrier.DistanceBarrier) rather than silently
// returning +Inf or falling back to float64.
type MultiPrecision struct {
	f *big.Float
}

func NewMultiPrecision(v float64) MultiPrecision {
	return MultiPrecision{f: big.NewFloat(v).SetPrec(MultiPrecisionPrec)}
}

func (a MultiPrecision) ensure() *big.Float {
	if a.f == nil {
		return big.NewFloat(0).SetPrec(MultiPrecisionPrec)
	}
	return a.f
}

func (a MultiPrecision) Add(b MultiPrecision) MultiPrecision {
	return MultiPrecision{new(big.Float).SetPrec(MultiPrecisionPrec).Add(a.ensure(), b.ensure())}
}

func (a MultiPrecision) Sub(b MultiPrecision) MultiPrecision {
	return MultiPrecision{new(big.Float).SetPrec(MultiPrecisionPrec).Sub(a.ensure(), b.ensure())}
}

func (a MultiPrecision) Mul(b MultiPrecision) MultiPrecision {
	return MultiPrecision{new(big.Float).SetPrec(MultiPrecisionPrec).Mul(a.ensure(), b.ensure())}
}

func (a MultiPrecision) Div(b MultiPrecision) MultiPrecision {
	return MultiPrecision{new(big.Float).SetPrec(MultiPrecisionPrec).Quo(a.ensure(), b.ensure())}
}

func (a MultiPrecision) Neg() MultiPrecision {
	return MultiPrecision{new(big.Float).SetPrec(MultiPrecisionPrec).Neg(a.ensure())}
}

func (a MultiPrecision) Sqrt() MultiPrecision {
	return MultiPrecision{new(big.Float).SetPrec(MultiPrecisionPrec).Sqrt(a.ensure())}
}

// Sin and Cos round-trip through float64: math/big has no transcendental
// functions, and the one caller path that would reach these (the distance
// barrier at MultiPrecision) is intentionally NotImplemented before it gets
// here.
func (a MultiPrecision) Sin() MultiPrecision {
	v, _ := a.ensure().Float64()
	return NewMultiPrecision(math.Sin(v))
}

func (a MultiPrecision) Cos() MultiPrecision {
	v, _ := a.ensure().Float64()
	return NewMultiPrecision(math.Cos(v))
}

func (a MultiPrecision) Cmp(b MultiPrecision) int {
	return a.ensure().Cmp(b.ensure())
}

func (a MultiPrecision) Float64() float64 {
	v, _ := a.ensure().Float64()
	return v
}

// FromFloat64 returns a new MultiPrecision constant; a's own value is
// unused, only its type.
func (a MultiPrecision) FromFloat64(v float64) MultiPrecision { return NewMultiPrecision(v) }
