package rigidbody

import (
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
	"github.com/ccdkit/rigidccd/pose"
	"github.com/ccdkit/rigidccd/sparse"
)

// Body3 is the 3D analogue of Body2.
type Body3 struct {
	LocalVertices []geometry.Vec3[numeric.F64]
}

// Assembler3 is the 3D analogue of Assembler2: NDof3 (6) dof per body,
// body-major in the global sigma vector.
type Assembler3 struct {
	Bodies []Body3
}

func NewAssembler3(bodies []Body3) *Assembler3 {
	return &Assembler3{Bodies: bodies}
}

func (a *Assembler3) NumDof() int { return len(a.Bodies) * pose.NDof3 }

func (a *Assembler3) NumVertices() int {
	n := 0
	for _, b := range a.Bodies {
		n += len(b.LocalVertices)
	}
	return n
}

func (a *Assembler3) PoseAt(sigma []float64, body int) pose.Pose3[numeric.F64] {
	off := body * pose.NDof3
	return pose.Pose3[numeric.F64]{
		Translation: geometry.Vec3[numeric.F64]{X: numeric.F64(sigma[off]), Y: numeric.F64(sigma[off+1]), Z: numeric.F64(sigma[off+2])},
		AxisAngle:   geometry.Vec3[numeric.F64]{X: numeric.F64(sigma[off+3]), Y: numeric.F64(sigma[off+4]), Z: numeric.F64(sigma[off+5])},
	}
}

func (a *Assembler3) WorldVertex(sigma []float64, body, vertex int) geometry.Vec3[numeric.F64] {
	p := a.PoseAt(sigma, body)
	return p.WorldPoint(a.Bodies[body].LocalVertices[vertex])
}

// vertexJacobianRow is the 3D analogue of Assembler2's, differentiating
// WorldPoint with respect to all six of the owning body's dof components.
func (a *Assembler3) vertexJacobianRow(sigma []float64, body, vertex int) (x, y, z [6]float64) {
	off := body * pose.NDof3
	var vars [6]numeric.Dual1
	for i := 0; i < 6; i++ {
		vars[i] = numeric.NewDual1Variable(sigma[off+i], i, 6)
	}
	p := pose.Pose3[numeric.Dual1]{
		Translation: geometry.Vec3[numeric.Dual1]{X: vars[0], Y: vars[1], Z: vars[2]},
		AxisAngle:   geometry.Vec3[numeric.Dual1]{X: vars[3], Y: vars[4], Z: vars[5]},
	}
	local := a.Bodies[body].LocalVertices[vertex]
	localDual := geometry.Vec3[numeric.Dual1]{
		X: vars[0].FromFloat64(local.X.Float64()),
		Y: vars[0].FromFloat64(local.Y.Float64()),
		Z: vars[0].FromFloat64(local.Z.Float64()),
	}
	world := p.WorldPoint(localDual)
	for i := 0; i < 6; i++ {
		x[i], y[i], z[i] = world.X.Grad[i], world.Y.Grad[i], world.Z.Grad[i]
	}
	return
}

func (a *Assembler3) Jacobian(sigma []float64) *sparse.Triplets {
	t := sparse.NewTriplets(a.NumVertices()*3, a.NumDof())
	globalVertex := 0
	for b, body := range a.Bodies {
		colOff := b * pose.NDof3
		for v := range body.LocalVertices {
			rowX, rowY, rowZ := a.vertexJacobianRow(sigma, b, v)
			t.AddBlock(globalVertex*3, colOff, [][]float64{rowX[:], rowY[:], rowZ[:]})
			globalVertex++
		}
	}
	return t
}

func (a *Assembler3) Velocity(sigma, sigmaDot []float64) []geometry.Vec3[numeric.F64] {
	out := make([]geometry.Vec3[numeric.F64], 0, a.NumVertices())
	for b, body := range a.Bodies {
		off := b * pose.NDof3
		local := sigmaDot[off : off+pose.NDof3]
		for v := range body.LocalVertices {
			rowX, rowY, rowZ := a.vertexJacobianRow(sigma, b, v)
			var vx, vy, vz float64
			for i := 0; i < 6; i++ {
				vx += rowX[i] * local[i]
				vy += rowY[i] * local[i]
				vz += rowZ[i] * local[i]
			}
			out = append(out, geometry.Vec3[numeric.F64]{X: numeric.F64(vx), Y: numeric.F64(vy), Z: numeric.F64(vz)})
		}
	}
	return out
}
