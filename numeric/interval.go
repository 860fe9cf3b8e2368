package numeric

import "math"

// Interval is a closed interval [Lo, Hi] with outward-rounded arithmetic.
// It is the scalar type used to produce certified enclosures for the
// narrow-phase CCD predicates: every arithmetic op here widens rather than
// rounds-to-nearest, so a reported "no root" is always true and a reported
// root enclosure always contains the real root.
type Interval struct {
	Lo, Hi float64
}

// FromFloat64 returns the degenerate interval [v, v].
func FromFloat64(v float64) Interval {
	return Interval{Lo: v, Hi: v}
}

// FromBounds builds an interval from explicit bounds, normalizing order.
func FromBounds(lo, hi float64) Interval {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Interval{Lo: lo, Hi: hi}
}

// outwardLo and outwardHi nudge a rounded value one ULP down (toward -Inf)
// or up (toward +Inf) respectively, so outward-rounded
// arithmetic never under-reports the true enclosure. math.Nextafter is used
// instead of a fixed epsilon because interval widths span many magnitudes.
func outwardLo(v float64) float64 { return math.Nextafter(v, math.Inf(-1)) }
func outwardHi(v float64) float64 { return math.Nextafter(v, math.Inf(1)) }

func (a Interval) Add(b Interval) Interval {
	return Interval{outwardLo(a.Lo + b.Lo), outwardHi(a.Hi + b.Hi)}
}

func (a Interval) Sub(b Interval) Interval {
	return Interval{outwardLo(a.Lo - b.Hi), outwardHi(a.Hi - b.Lo)}
}

func (a Interval) Mul(b Interval) Interval {
	products := [4]float64{a.Lo * b.Lo, a.Lo * b.Hi, a.Hi * b.Lo, a.Hi * b.Hi}
	lo, hi := products[0], products[0]
	for _, p := range products[1:] {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return Interval{outwardLo(lo), outwardHi(hi)}
}

func (a Interval) Neg() Interval {
	return Interval{-a.Hi, -a.Lo}
}

// Div follows the conventional extended-interval rule: dividing by an
// interval that contains zero yields the unbounded interval, since the
// quotient could be arbitrarily large in either direction.
func (a Interval) Div(b Interval) Interval {
	if ZeroIn(b) {
		return Interval{math.Inf(-1), math.Inf(1)}
	}
	return a.Mul(Interval{outwardLo(1 / b.Hi), outwardHi(1 / b.Lo)})
}

// Sqrt requires a non-negative interval; the lower bound is clamped to zero
// rather than propagating NaN, since a tiny negative lower bound is usually
// rounding noise around a true zero.
func (a Interval) Sqrt() Interval {
	lo := a.Lo
	if lo < 0 {
		lo = 0
	}
	hi := a.Hi
	if hi < 0 {
		hi = 0
	}
	rootLo := outwardLo(math.Sqrt(lo))
	if rootLo < 0 {
		rootLo = 0
	}
	return Interval{rootLo, outwardHi(math.Sqrt(hi))}
}

// Sin and Cos use coarse enclosures (monotonic-interval bisection is not
// needed anywhere the certified root finder calls trig: screwing
// trajectories only need Sin/Cos of a bounded rotation-angle interval, and
// a conservative [-1,1] fallback when the interval spans a full period is
// acceptable — it only ever widens the candidate root interval, never
// narrows it past a true root).
func (a Interval) Sin() Interval {
	if a.Hi-a.Lo >= 2*math.Pi {
		return Interval{-1, 1}
	}
	return sampledTrig(a, math.Sin)
}

func (a Interval) Cos() Interval {
	if a.Hi-a.Lo >= 2*math.Pi {
		return Interval{-1, 1}
	}
	return sampledTrig(a, math.Cos)
}

// sampledTrig conservatively encloses a monotonic-piecewise trig function by
// sampling the endpoints and the quarter-period critical points inside the
// interval, then rounding outward.
func sampledTrig(a Interval, f func(float64) float64) Interval {
	lo, hi := f(a.Lo), f(a.Lo)
	grow := func(v float64) {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	grow(f(a.Hi))

	quarter := math.Pi / 2
	start := math.Ceil(a.Lo/quarter) * quarter
	for t := start; t <= a.Hi; t += quarter {
		grow(f(t))
	}
	return Interval{outwardLo(lo), outwardHi(hi)}
}

func (a Interval) Cmp(b Interval) int {
	if a.Hi < b.Lo {
		return -1
	}
	if a.Lo > b.Hi {
		return 1
	}
	return 0 // overlapping bounds: unknown
}

// Float64 returns the interval midpoint.
func (a Interval) Float64() float64 {
	return 0.5 * (a.Lo + a.Hi)
}

// FromFloat64 returns the degenerate interval [v, v], satisfying the Scalar
// trait's constant constructor.
func (a Interval) FromFloat64(v float64) Interval {
	return FromFloat64(v)
}

// Width returns Hi - Lo.
func (a Interval) Width() float64 {
	return a.Hi - a.Lo
}

// Mid returns the interval midpoint as a float64, used to split
// subintervals in the certified root finder.
func (a Interval) Mid() float64 {
	return 0.5 * (a.Lo + a.Hi)
}

// Split divides a into [Lo,Mid] and [Mid,Hi].
func (a Interval) Split() (left, right Interval) {
	mid := a.Mid()
	return Interval{a.Lo, mid}, Interval{mid, a.Hi}
}

// ZeroIn reports whether 0 lies in the closed interval.
func ZeroIn(a Interval) bool {
	return a.Lo <= 0 && 0 <= a.Hi
}

// Contains reports whether v lies in the closed interval.
func (a Interval) Contains(v float64) bool {
	return a.Lo <= v && v <= a.Hi
}
