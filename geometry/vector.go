// Package geometry holds the signed-distance, projection, and containment
// predicates the narrow-phase CCD solvers evaluate, all generic over
// numeric.Scalar so the same code runs at float64 speed or through the
// certified Interval / autodiff Dual1/Dual2 scalars.
package geometry

import "github.com/ccdkit/rigidccd/numeric"

// Vec2 is a 2D vector over any Scalar instantiation.
type Vec2[S numeric.Scalar[S]] struct {
	X, Y S
}

func (a Vec2[S]) Add(b Vec2[S]) Vec2[S] { return Vec2[S]{a.X.Add(b.X), a.Y.Add(b.Y)} }
func (a Vec2[S]) Sub(b Vec2[S]) Vec2[S] { return Vec2[S]{a.X.Sub(b.X), a.Y.Sub(b.Y)} }
func (a Vec2[S]) Scale(s S) Vec2[S]     { return Vec2[S]{a.X.Mul(s), a.Y.Mul(s)} }
func (a Vec2[S]) Dot(b Vec2[S]) S       { return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)) }

// Cross returns the scalar (z-component) cross product of two 2D vectors.
func (a Vec2[S]) Cross(b Vec2[S]) S { return a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)) }

// Perp returns the vector rotated +90 degrees: (x,y) -> (-y,x).
func (a Vec2[S]) Perp() Vec2[S] { return Vec2[S]{a.Y.Neg(), a.X} }

func (a Vec2[S]) SquaredNorm() S { return a.Dot(a) }
func (a Vec2[S]) Norm() S        { return a.SquaredNorm().Sqrt() }

// Lerp2 linearly interpolates between a and b at parameter t (any Scalar,
// typically F64, Interval or a dual number): a + (b-a)*t.
func Lerp2[S numeric.Scalar[S]](a, b Vec2[S], t S) Vec2[S] {
	return a.Add(b.Sub(a).Scale(t))
}

// Vec3 is a 3D vector over any Scalar instantiation.
type Vec3[S numeric.Scalar[S]] struct {
	X, Y, Z S
}

func (a Vec3[S]) Add(b Vec3[S]) Vec3[S] {
	return Vec3[S]{a.X.Add(b.X), a.Y.Add(b.Y), a.Z.Add(b.Z)}
}
func (a Vec3[S]) Sub(b Vec3[S]) Vec3[S] {
	return Vec3[S]{a.X.Sub(b.X), a.Y.Sub(b.Y), a.Z.Sub(b.Z)}
}
func (a Vec3[S]) Scale(s S) Vec3[S] {
	return Vec3[S]{a.X.Mul(s), a.Y.Mul(s), a.Z.Mul(s)}
}
func (a Vec3[S]) Dot(b Vec3[S]) S {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)).Add(a.Z.Mul(b.Z))
}
func (a Vec3[S]) Cross(b Vec3[S]) Vec3[S] {
	return Vec3[S]{
		a.Y.Mul(b.Z).Sub(a.Z.Mul(b.Y)),
		a.Z.Mul(b.X).Sub(a.X.Mul(b.Z)),
		a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)),
	}
}

func (a Vec3[S]) SquaredNorm() S { return a.Dot(a) }
func (a Vec3[S]) Norm() S        { return a.SquaredNorm().Sqrt() }

// Lerp3 linearly interpolates between a and b at parameter t: a + (b-a)*t.
func Lerp3[S numeric.Scalar[S]](a, b Vec3[S], t S) Vec3[S] {
	return a.Add(b.Sub(a).Scale(t))
}
