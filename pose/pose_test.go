package pose

import (
	"errors"
	"math"
	"testing"

	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
)

func TestPose2RotationMatrixIsOrthonormal(t *testing.T) {
	angles := []float64{0, 0.3, math.Pi / 4, math.Pi / 2, 2.1, -1.7}
	for _, a := range angles {
		p := Pose2[numeric.F64]{Angle: numeric.F64(a)}
		r := p.ConstructRotationMatrix()

		col0 := geometry.Vec2[numeric.F64]{X: r.M[0][0], Y: r.M[1][0]}
		col1 := geometry.Vec2[numeric.F64]{X: r.M[0][1], Y: r.M[1][1]}
		if math.Abs(float64(col0.SquaredNorm())-1) > 1e-9 {
			t.Errorf("angle=%v: column0 squared norm = %v, want 1", a, col0.SquaredNorm())
		}
		if math.Abs(float64(col0.Dot(col1))) > 1e-9 {
			t.Errorf("angle=%v: columns not orthogonal, dot=%v", a, col0.Dot(col1))
		}
	}
}

func TestPose2WorldPointMatchesHandRotation(t *testing.T) {
	p := Pose2[numeric.F64]{
		Translation: geometry.Vec2[numeric.F64]{X: 1, Y: 2},
		Angle:       numeric.F64(math.Pi / 2),
	}
	local := geometry.Vec2[numeric.F64]{X: 1, Y: 0}
	world := p.WorldPoint(local)

	// rotate (1,0) by +90deg -> (0,1), then translate by (1,2) -> (1,3).
	if math.Abs(float64(world.X)-1) > 1e-9 || math.Abs(float64(world.Y)-3) > 1e-9 {
		t.Errorf("WorldPoint = %v, want (1,3)", world)
	}
}

func TestPose3RotationMatrixIsOrthonormal(t *testing.T) {
	axes := []geometry.Vec3[numeric.F64]{
		{X: 0, Y: 0, Z: 0},
		{X: 0.3, Y: 0, Z: 0},
		{X: 0, Y: math.Pi / 2, Z: 0},
		{X: 0.4, Y: 0.5, Z: 0.6},
		{X: 1.5, Y: -1.2, Z: 0.8},
	}
	for _, w := range axes {
		p := Pose3[numeric.F64]{AxisAngle: w}
		r := p.ConstructRotationMatrix()

		for i := 0; i < 3; i++ {
			var rowSq numeric.F64
			for j := 0; j < 3; j++ {
				rowSq = rowSq.Add(r.M[i][j].Mul(r.M[i][j]))
			}
			if math.Abs(float64(rowSq)-1) > 1e-6 {
				t.Errorf("axis=%v: row %d squared norm = %v, want 1", w, i, rowSq)
			}
		}
	}
}

func TestPose3RotationMatrixIdentityAtZero(t *testing.T) {
	p := Pose3[numeric.F64]{AxisAngle: geometry.Vec3[numeric.F64]{X: 0, Y: 0, Z: 0}}
	r := p.ConstructRotationMatrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := numeric.F64(0)
			if i == j {
				want = 1
			}
			if math.Abs(float64(r.M[i][j])-float64(want)) > 1e-12 {
				t.Errorf("R[%d][%d] = %v, want %v", i, j, r.M[i][j], want)
			}
		}
	}
}

func TestPose3RotationAboutZAxisMatchesPose2(t *testing.T) {
	theta := 0.9
	p3 := Pose3[numeric.F64]{AxisAngle: geometry.Vec3[numeric.F64]{X: 0, Y: 0, Z: numeric.F64(theta)}}
	r3 := p3.ConstructRotationMatrix()

	p2 := Pose2[numeric.F64]{Angle: numeric.F64(theta)}
	r2 := p2.ConstructRotationMatrix()

	if math.Abs(float64(r3.M[0][0])-float64(r2.M[0][0])) > 1e-9 ||
		math.Abs(float64(r3.M[0][1])-float64(r2.M[0][1])) > 1e-9 ||
		math.Abs(float64(r3.M[1][0])-float64(r2.M[1][0])) > 1e-9 ||
		math.Abs(float64(r3.M[1][1])-float64(r2.M[1][1])) > 1e-9 {
		t.Errorf("3D rotation about Z does not match 2D rotation by the same angle")
	}
}

func TestLerp2EndpointsRecovered(t *testing.T) {
	a := Pose2[numeric.F64]{Translation: geometry.Vec2[numeric.F64]{X: 0, Y: 0}, Angle: 0}
	b := Pose2[numeric.F64]{Translation: geometry.Vec2[numeric.F64]{X: 2, Y: 4}, Angle: numeric.F64(1.0)}

	at0 := Lerp2(a, b, numeric.F64(0))
	at1 := Lerp2(a, b, numeric.F64(1))
	if at0 != a {
		t.Errorf("Lerp2 at t=0 = %v, want %v", at0, a)
	}
	if at1 != b {
		t.Errorf("Lerp2 at t=1 = %v, want %v", at1, b)
	}
}

func TestTrajectory2WarnsOnLargeAngleDelta(t *testing.T) {
	tr := Trajectory2{
		T0: Pose2[numeric.F64]{Angle: 0},
		T1: Pose2[numeric.F64]{Angle: numeric.F64(4.0)}, // > pi
	}
	_, err := tr.Interpolate(0.5)
	if !errors.Is(err, ErrAngleWrapSuspect) {
		t.Fatalf("Interpolate with large angle delta: err = %v, want ErrAngleWrapSuspect", err)
	}
}

func TestTrajectory2NoWarningForSmallDelta(t *testing.T) {
	tr := Trajectory2{
		T0: Pose2[numeric.F64]{Angle: 0},
		T1: Pose2[numeric.F64]{Angle: numeric.F64(0.2)},
	}
	_, err := tr.Interpolate(0.5)
	if err != nil {
		t.Fatalf("Interpolate with small angle delta: err = %v, want nil", err)
	}
}
