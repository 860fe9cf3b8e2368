package barrier

import (
	"math"
	"testing"

	"github.com/ccdkit/rigidccd/errs"
	"github.com/ccdkit/rigidccd/numeric"
)

func TestDistanceBarrierZeroAtAndAboveEps(t *testing.T) {
	for _, d := range []float64{0.1, 0.15, 1.0} {
		v, err := DistanceBarrier(numeric.F64(d), numeric.F64(0.1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if float64(v) != 0 {
			t.Errorf("phi(%v; eps=0.1) = %v, want exactly 0", d, v)
		}
	}
}

func TestDistanceBarrierDivergesNearZero(t *testing.T) {
	small, err := DistanceBarrier(numeric.F64(1e-6), numeric.F64(0.1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mid, err := DistanceBarrier(numeric.F64(0.05), numeric.F64(0.1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if float64(small) <= float64(mid) {
		t.Errorf("phi should grow as d shrinks toward 0: phi(1e-6)=%v, phi(0.05)=%v", small, mid)
	}
}

func TestDistanceBarrierMonotoneNonIncreasing(t *testing.T) {
	ds := []float64{0.001, 0.01, 0.02, 0.05, 0.08, 0.099}
	prev := math.Inf(1)
	for _, d := range ds {
		v, err := DistanceBarrier(numeric.F64(d), numeric.F64(0.1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if float64(v) > prev {
			t.Errorf("phi(%v) = %v should not exceed phi at a smaller d = %v", d, v, prev)
		}
		prev = float64(v)
	}
}

func TestDistanceBarrierMultiPrecisionNotImplemented(t *testing.T) {
	_, err := DistanceBarrier(numeric.NewMultiPrecision(0.05), numeric.NewMultiPrecision(0.1))
	if !errs.IsKind(err, errs.NotImplemented) {
		t.Errorf("expected a NotImplemented error at MultiPrecision, got %v", err)
	}
}

func TestDistanceBarrierDerivativesMatchFiniteDifference(t *testing.T) {
	const eps = 0.1
	const d0 = 0.04
	const h = 1e-6

	value, first, second, err := DistanceBarrierDerivatives(d0, eps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plus, err := DistanceBarrier(numeric.F64(d0+h), numeric.F64(eps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	minus, err := DistanceBarrier(numeric.F64(d0-h), numeric.F64(eps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	center, err := DistanceBarrier(numeric.F64(d0), numeric.F64(eps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fdFirst := (float64(plus) - float64(minus)) / (2 * h)
	fdSecond := (float64(plus) - 2*float64(center) + float64(minus)) / (h * h)

	if math.Abs(value-float64(center)) > 1e-12 {
		t.Errorf("value mismatch: autodiff %v vs direct %v", value, center)
	}
	if math.Abs(first-fdFirst) > 1e-4*math.Max(1, math.Abs(fdFirst)) {
		t.Errorf("phi' mismatch: autodiff %v vs finite-difference %v", first, fdFirst)
	}
	if math.Abs(second-fdSecond) > 1e-2*math.Max(1, math.Abs(fdSecond)) {
		t.Errorf("phi'' mismatch: autodiff %v vs finite-difference %v", second, fdSecond)
	}
}

func TestDistanceBarrierIsC2AtBoundary(t *testing.T) {
	const eps = 0.1
	value, first, second, err := DistanceBarrierDerivatives(eps, eps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(value) > 1e-9 || math.Abs(first) > 1e-9 || math.Abs(second) > 1e-9 {
		t.Errorf("phi, phi', phi'' should all vanish at d=eps, got %v %v %v", value, first, second)
	}
}
