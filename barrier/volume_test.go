package barrier

import (
	"math"
	"testing"

	"github.com/ccdkit/rigidccd/errs"
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
)

func vec2(x, y float64) geometry.Vec2[numeric.F64] {
	return geometry.Vec2[numeric.F64]{X: numeric.F64(x), Y: numeric.F64(y)}
}

func TestSpaceTimeVolumeIsZeroAtTauOne(t *testing.T) {
	v, err := SpaceTimeVolume(numeric.F64(1), vec2(1, 0), vec2(0, 5), numeric.F64(0.1), 1e-9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if float64(v) != 0 {
		t.Errorf("V(tau=1) = %v, want exactly 0", v)
	}
}

func TestSpaceTimeVolumeIsNonNegative(t *testing.T) {
	taus := []float64{0, 0.25, 0.5, 0.75, 0.99}
	for _, tau := range taus {
		v, err := SpaceTimeVolume(numeric.F64(tau), vec2(1, 0.3), vec2(0.5, -0.2), numeric.F64(0.05), 1e-9)
		if err != nil {
			t.Fatalf("unexpected error at tau=%v: %v", tau, err)
		}
		if float64(v) < 0 {
			t.Errorf("V(tau=%v) = %v, want >= 0", tau, v)
		}
	}
}

func TestSpaceTimeVolumeDegenerateEdgeError(t *testing.T) {
	_, err := SpaceTimeVolume(numeric.F64(0.5), vec2(1e-12, 0), vec2(1, 1), numeric.F64(0.1), 1e-6)
	if !errs.IsKind(err, errs.DegenerateEdge) {
		t.Errorf("expected a DegenerateEdge error for a near-zero edge direction, got %v", err)
	}
}

func TestSpaceTimeVolumeMatchesHandComputationPerpendicularEdge(t *testing.T) {
	// edgeDir = (0,1) (unit, perpendicular component of a horizontal
	// velocity is the velocity's own x-component): perp = (-1,0).
	// velocity.(edgeDir perp) = (2,0).(-1,0) = -2, squared = 4.
	// eps=1, ||edgeDir||^2=1 -> underSqrt = 1*1 + 4 = 5.
	v, err := SpaceTimeVolume(numeric.F64(0), vec2(0, 1), vec2(2, 0), numeric.F64(1), 1e-9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Sqrt(5)
	if math.Abs(float64(v)-want) > 1e-9 {
		t.Errorf("V = %v, want %v", v, want)
	}
}

func TestSpaceTimeVolumeGradientMatchesFiniteDifference(t *testing.T) {
	// Differentiate V with respect to tau alone, holding the rest fixed,
	// and cross-check the Dual1 gradient against a central finite
	// difference — the autodiff contract spec.md §4.6 and §8 require.
	f := func(tau numeric.Dual1) numeric.Dual1 {
		edgeDir := geometry.Vec2[numeric.Dual1]{X: tau.FromFloat64(0.4), Y: tau.FromFloat64(-0.3)}
		velocity := geometry.Vec2[numeric.Dual1]{X: tau.FromFloat64(1.1), Y: tau.FromFloat64(0.2)}
		eps := tau.FromFloat64(0.15)
		v, err := SpaceTimeVolume(tau, edgeDir, velocity, eps, 1e-9)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return v
	}

	const tau0 = 0.37
	analytic := f(numeric.NewDual1Variable(tau0, 0, 1))

	const h = 1e-6
	plus := f(numeric.NewDual1Constant(tau0+h, 1)).Value
	minus := f(numeric.NewDual1Constant(tau0-h, 1)).Value
	fd := (plus - minus) / (2 * h)

	if math.Abs(analytic.Grad[0]-fd) > 1e-5 {
		t.Errorf("dV/dtau analytic = %v, finite-difference = %v", analytic.Grad[0], fd)
	}
}
