// Package rigidbody maps a global degrees-of-freedom vector onto per-body
// poses and onward to world-space vertex positions, velocities, and the
// dof->vertex kinematic Jacobian the NCP/barrier-Newton solver needs.
//
// Adapted from the teacher's actor.RigidBody/actor.Transform: where the
// teacher stores one quaternion-carrying Transform per body and queries a
// shape's support function, this module stacks every body's flat dof
// tuple into one global vector (the shape the outer Newton solver steps)
// and indexes explicit body-local vertices rather than a support mapping,
// since the barrier kernel needs concrete vertex/edge geometry, not GJK
// support points.
package rigidbody

import (
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
	"github.com/ccdkit/rigidccd/pose"
	"github.com/ccdkit/rigidccd/sparse"
)

// Body2 is one rigid body's immutable shape data: its vertices expressed
// in the body's own local frame, about the body's origin (its center of
// mass, by convention, though nothing here enforces that).
type Body2 struct {
	LocalVertices []geometry.Vec2[numeric.F64]
}

// Assembler2 stacks NDof2 dof per body into one global sigma vector,
// ordered body-major: sigma[b*NDof2 : b*NDof2+NDof2] = (tx, ty, theta) for
// body b.
type Assembler2 struct {
	Bodies []Body2
}

// NewAssembler2 builds an assembler over the given bodies, in the order
// their dof blocks will occupy the global sigma vector.
func NewAssembler2(bodies []Body2) *Assembler2 {
	return &Assembler2{Bodies: bodies}
}

// NumDof returns the length of the global sigma vector.
func (a *Assembler2) NumDof() int { return len(a.Bodies) * pose.NDof2 }

// NumVertices returns the total vertex count across every body.
func (a *Assembler2) NumVertices() int {
	n := 0
	for _, b := range a.Bodies {
		n += len(b.LocalVertices)
	}
	return n
}

// PoseAt extracts body b's pose from the global dof vector.
func (a *Assembler2) PoseAt(sigma []float64, body int) pose.Pose2[numeric.F64] {
	off := body * pose.NDof2
	return pose.Pose2[numeric.F64]{
		Translation: geometry.Vec2[numeric.F64]{X: numeric.F64(sigma[off]), Y: numeric.F64(sigma[off+1])},
		Angle:       numeric.F64(sigma[off+2]),
	}
}

// WorldVertex maps body b's local vertex v to world space under sigma.
func (a *Assembler2) WorldVertex(sigma []float64, body, vertex int) geometry.Vec2[numeric.F64] {
	p := a.PoseAt(sigma, body)
	return p.WorldPoint(a.Bodies[body].LocalVertices[vertex])
}

// vertexJacobianRow differentiates WorldPoint for body b's local vertex v
// with respect to that body's three dof components, via the same
// Dual1-seeding autodiff contract barrier.Gradient uses: the generic
// pose.Pose2.WorldPoint body is written once, over numeric.Scalar, and
// this is how a caller extracts its Jacobian instead of hand-deriving
// d(R*local)/d(theta).
func (a *Assembler2) vertexJacobianRow(sigma []float64, body, vertex int) (x, y [3]float64) {
	off := body * pose.NDof2
	vars := [3]numeric.Dual1{
		numeric.NewDual1Variable(sigma[off], 0, 3),
		numeric.NewDual1Variable(sigma[off+1], 1, 3),
		numeric.NewDual1Variable(sigma[off+2], 2, 3),
	}
	p := pose.Pose2[numeric.Dual1]{
		Translation: geometry.Vec2[numeric.Dual1]{X: vars[0], Y: vars[1]},
		Angle:       vars[2],
	}
	local := a.Bodies[body].LocalVertices[vertex]
	localDual := geometry.Vec2[numeric.Dual1]{X: vars[0].FromFloat64(local.X.Float64()), Y: vars[0].FromFloat64(local.Y.Float64())}
	world := p.WorldPoint(localDual)
	return [3]float64{world.X.Grad[0], world.X.Grad[1], world.X.Grad[2]},
		[3]float64{world.Y.Grad[0], world.Y.Grad[1], world.Y.Grad[2]}
}

// Jacobian assembles the block-diagonal dof->vertex velocity map: row
// 2*globalVertex+{0,1} holds d(worldVertex.{x,y})/d(sigma), nonzero only
// in the 3 columns belonging to that vertex's owning body.
func (a *Assembler2) Jacobian(sigma []float64) *sparse.Triplets {
	t := sparse.NewTriplets(a.NumVertices()*2, a.NumDof())
	globalVertex := 0
	for b, body := range a.Bodies {
		colOff := b * pose.NDof2
		for v := range body.LocalVertices {
			rowX, rowY := a.vertexJacobianRow(sigma, b, v)
			t.AddBlock(globalVertex*2, colOff, [][]float64{rowX[:], rowY[:]})
			globalVertex++
		}
	}
	return t
}

// Velocity contracts the per-vertex Jacobian rows with sigmaDot directly,
// without materializing the sparse matrix, returning one world-space
// velocity vector per vertex in the same body-major, vertex-major order
// Jacobian's rows use.
func (a *Assembler2) Velocity(sigma, sigmaDot []float64) []geometry.Vec2[numeric.F64] {
	out := make([]geometry.Vec2[numeric.F64], 0, a.NumVertices())
	for b, body := range a.Bodies {
		off := b * pose.NDof2
		local := sigmaDot[off : off+pose.NDof2]
		for v := range body.LocalVertices {
			rowX, rowY := a.vertexJacobianRow(sigma, b, v)
			vx := rowX[0]*local[0] + rowX[1]*local[1] + rowX[2]*local[2]
			vy := rowY[0]*local[0] + rowY[1]*local[1] + rowY[2]*local[2]
			out = append(out, geometry.Vec2[numeric.F64]{X: numeric.F64(vx), Y: numeric.F64(vy)})
		}
	}
	return out
}
