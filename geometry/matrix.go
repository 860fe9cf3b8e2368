package geometry

import "github.com/ccdkit/rigidccd/numeric"

// Mat2 is a 2x2 matrix over any Scalar instantiation, row-major.
type Mat2[S numeric.Scalar[S]] struct {
	M [2][2]S
}

func (m Mat2[S]) MulVec(v Vec2[S]) Vec2[S] {
	return Vec2[S]{
		m.M[0][0].Mul(v.X).Add(m.M[0][1].Mul(v.Y)),
		m.M[1][0].Mul(v.X).Add(m.M[1][1].Mul(v.Y)),
	}
}

// Mat3 is a 3x3 matrix over any Scalar instantiation, row-major.
type Mat3[S numeric.Scalar[S]] struct {
	M [3][3]S
}

func (m Mat3[S]) MulVec(v Vec3[S]) Vec3[S] {
	return Vec3[S]{
		m.M[0][0].Mul(v.X).Add(m.M[0][1].Mul(v.Y)).Add(m.M[0][2].Mul(v.Z)),
		m.M[1][0].Mul(v.X).Add(m.M[1][1].Mul(v.Y)).Add(m.M[1][2].Mul(v.Z)),
		m.M[2][0].Mul(v.X).Add(m.M[2][1].Mul(v.Y)).Add(m.M[2][2].Mul(v.Z)),
	}
}

// AddScaled returns m + k*other, used when assembling the Rodrigues series
// (I + s*K + c*K^2) entry by entry.
func (m Mat3[S]) AddScaled(k S, other Mat3[S]) Mat3[S] {
	var out Mat3[S]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.M[i][j] = m.M[i][j].Add(k.Mul(other.M[i][j]))
		}
	}
	return out
}

func (m Mat3[S]) Mul(other Mat3[S]) Mat3[S] {
	var out Mat3[S]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := m.M[i][0].Mul(other.M[0][j])
			sum = sum.Add(m.M[i][1].Mul(other.M[1][j]))
			sum = sum.Add(m.M[i][2].Mul(other.M[2][j]))
			out.M[i][j] = sum
		}
	}
	return out
}

// Identity3 returns the 3x3 identity matrix, with its zero/one entries
// built from sample's concrete type (and, for the dual numbers, sample's
// gradient/Hessian dimension) via FromFloat64 — sample's own value is
// irrelevant, only its shape.
func Identity3[S numeric.Scalar[S]](sample S) Mat3[S] {
	zero, one := sample.FromFloat64(0), sample.FromFloat64(1)
	return Mat3[S]{M: [3][3]S{
		{one, zero, zero},
		{zero, one, zero},
		{zero, zero, one},
	}}
}

// Identity2 is the 2x2 analogue of Identity3.
func Identity2[S numeric.Scalar[S]](sample S) Mat2[S] {
	zero, one := sample.FromFloat64(0), sample.FromFloat64(1)
	return Mat2[S]{M: [2][2]S{
		{one, zero},
		{zero, one},
	}}
}

// CrossMatrix3 returns the skew-symmetric matrix [w]x such that
// [w]x * v == w.Cross(v).
func CrossMatrix3[S numeric.Scalar[S]](w Vec3[S]) Mat3[S] {
	zero := w.X.FromFloat64(0)
	return Mat3[S]{M: [3][3]S{
		{zero, w.Z.Neg(), w.Y},
		{w.Z, zero, w.X.Neg()},
		{w.Y.Neg(), w.X, zero},
	}}
}
