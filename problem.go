package rigidccd

import (
	"github.com/ccdkit/rigidccd/barrier"
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/impact"
	"github.com/ccdkit/rigidccd/numeric"
	"github.com/ccdkit/rigidccd/scene"
	"github.com/ccdkit/rigidccd/solver"
)

// OptimizeDisplacements runs one barrier-Newton solve (solver.Problem's
// five-step algorithm) to move the scene's dof vector toward the nearest
// collision-free configuration that stays close to its current target —
// the current Trajectory displacement for a free-vertex scene, or the
// current sigma for a rigid-body scene.
func (w *World) OptimizeDisplacements() (scene.StateExport, error) {
	if w.assembler != nil {
		return w.optimizeRigidBodyDisplacements()
	}
	return w.optimizeVertexDisplacements()
}

func (w *World) optimizeVertexDisplacements() (scene.StateExport, error) {
	impacts, err := w.DetectEdgeVertexCollisions()
	if err != nil {
		return scene.StateExport{}, err
	}
	volumes, err := w.ComputeCollisionVolumes(impacts)
	if err != nil {
		return scene.StateExport{}, err
	}

	target := make([]float64, len(w.Geometry.Vertices)*2)
	for i, d := range w.Trajectory.Displacements {
		target[2*i] = d[0]
		target[2*i+1] = d[1]
	}

	problem := &displacementProblem{
		world:    w,
		target:   target,
		impacts:  impacts,
		volumes:  volumes,
		settings: w.Settings.DistanceBarrierConstraint,
	}

	s := solver.NewBarrierNewtonSolver(w.Settings.BarrierSolver)
	result, export, err := s.Solve(problem)
	if err != nil {
		return scene.StateExport{}, err
	}

	for i := range w.Trajectory.Displacements {
		w.Trajectory.Displacements[i] = []float64{result[2*i], result[2*i+1]}
	}
	w.Results = scene.Results{
		MinDistance:          export.MinDistance,
		NumActiveConstraints: export.NumActiveConstraints,
		Converged:            export.Converged,
		Iterations:           export.Iterations,
	}
	return export, nil
}

func (w *World) optimizeRigidBodyDisplacements() (scene.StateExport, error) {
	impacts, err := w.DetectEdgeVertexCollisions()
	if err != nil {
		return scene.StateExport{}, err
	}
	volumes, err := w.ComputeCollisionVolumes(impacts)
	if err != nil {
		return scene.StateExport{}, err
	}

	problem := &rigidBodyProblem{
		world:      w,
		target:     append([]float64{}, w.sigma...),
		startSigma: append([]float64{}, w.sigma...),
		impacts:    impacts,
		volumes:    volumes,
		settings:   w.Settings.DistanceBarrierConstraint,
		fixedDof:   w.Settings.RigidBodyProblem.FixedDof,
	}

	s := solver.NewBarrierNewtonSolver(w.Settings.BarrierSolver)
	result, export, err := s.Solve(problem)
	if err != nil {
		return scene.StateExport{}, err
	}

	w.sigma = result
	w.Results = scene.Results{
		MinDistance:          export.MinDistance,
		NumActiveConstraints: export.NumActiveConstraints,
		Converged:            export.Converged,
		Iterations:           export.Iterations,
	}
	return export, nil
}

func minOf(volumes []float64) (float64, bool) {
	if len(volumes) == 0 {
		return 0, false
	}
	m := volumes[0]
	for _, v := range volumes[1:] {
		if v < m {
			m = v
		}
	}
	return m, true
}

// displacementProblem adapts a free-vertex World to solver.Problem: sigma
// is the flattened per-vertex displacement vector, the Jacobian from sigma
// to vertex world position is the identity, and EvalBarrierTerm chains the
// barrier kernel through that identity map via the Dual2 autodiff contract
// directly — no rigid-body Jacobian is involved.
type displacementProblem struct {
	world    *World
	target   []float64
	impacts  []impact.EdgeVertexImpact
	volumes  []float64
	settings scene.DistanceBarrierSettings
}

func (p *displacementProblem) NumVars() int             { return len(p.target) }
func (p *displacementProblem) StartingPoint() []float64 { return append([]float64{}, p.target...) }
func (p *displacementProblem) IsDoFFixed(i int) bool     { return false }

func (p *displacementProblem) EvalF(x []float64) float64 {
	s := 0.0
	for i, xi := range x {
		d := xi - p.target[i]
		s += 0.5 * d * d
	}
	return s
}

func (p *displacementProblem) EvalGradF(x []float64) []float64 {
	g := make([]float64, len(x))
	for i, xi := range x {
		g[i] = xi - p.target[i]
	}
	return g
}

func (p *displacementProblem) EvalHessianF(x []float64) [][]float64 {
	n := len(x)
	h := make([][]float64, n)
	for i := range h {
		h[i] = make([]float64, n)
		h[i][i] = 1
	}
	return h
}

func dualDelta(xv []numeric.Dual2, idx int) geometry.Vec2[numeric.Dual2] {
	return geometry.Vec2[numeric.Dual2]{X: xv[2*idx], Y: xv[2*idx+1]}
}

func dualConst(sample numeric.Dual2, v geometry.Vec2[numeric.F64]) geometry.Vec2[numeric.Dual2] {
	return geometry.Vec2[numeric.Dual2]{X: sample.FromFloat64(v.X.Float64()), Y: sample.FromFloat64(v.Y.Float64())}
}

func vertexVec2(vertices [][]float64, idx int) geometry.Vec2[numeric.F64] {
	v := vertices[idx]
	return geometry.Vec2[numeric.F64]{X: numeric.F64(v[0]), Y: numeric.F64(v[1])}
}

// EvalBarrierTerm freezes the active set (p.impacts, detected once per
// OptimizeDisplacements call) and its certified Toi, and differentiates the
// barrier value with respect to the candidate displacement x through
// barrier.SpaceTimeVolume and barrier.DistanceBarrier directly — the
// Jacobian from x to vertex position is the identity here, so no chain
// rule through a rigid-body assembler is needed, unlike rigidBodyProblem.
func (p *displacementProblem) EvalBarrierTerm(x []float64, epsilon float64) (float64, []float64, [][]float64) {
	n := len(x)
	zeroHess := func() [][]float64 {
		h := make([][]float64, n)
		for i := range h {
			h[i] = make([]float64, n)
		}
		return h
	}
	if len(p.impacts) == 0 {
		return 0, make([]float64, n), zeroHess()
	}

	f := func(xv []numeric.Dual2) numeric.Dual2 {
		total := xv[0].FromFloat64(0)
		epsD := total.FromFloat64(epsilon)
		fixedEpsD := total.FromFloat64(p.settings.Epsilon)

		for _, im := range p.impacts {
			e := p.world.Geometry.Edges[im.EdgeIndex]
			a0 := dualConst(total, vertexVec2(p.world.Geometry.Vertices, e[0]))
			b0 := dualConst(total, vertexVec2(p.world.Geometry.Vertices, e[1]))

			deltaA := dualDelta(xv, e[0])
			deltaB := dualDelta(xv, e[1])
			deltaV := dualDelta(xv, im.VertexIndex)

			a1 := a0.Add(deltaA)
			b1 := b0.Add(deltaB)
			tauD := total.FromFloat64(im.Toi)
			edgeDirAtTau := geometry.Lerp2(b0, b1, tauD).Sub(geometry.Lerp2(a0, a1, tauD))
			velocity := deltaV.Sub(deltaA)

			vol, err := barrier.SpaceTimeVolume(tauD, edgeDirAtTau, velocity, fixedEpsD, p.settings.EpsilonEdge)
			if err != nil {
				continue
			}
			phi, err := barrier.DistanceBarrier(vol, epsD)
			if err != nil {
				continue
			}
			total = total.Add(phi)
		}
		return total
	}

	value, grad, hess := barrier.Hessian(f, x)
	return value, grad, hess
}

func (p *displacementProblem) MinDistance(x []float64) (float64, bool) { return minOf(p.volumes) }
func (p *displacementProblem) HasCollisions(from, to []float64) bool   { return p.world.HasCollisions(from, to) }

// rigidBodyProblem adapts a rigid-body World to solver.Problem: sigma is
// the stacked per-body dof vector, and the barrier term's gradient/Hessian
// are assembled by chaining a per-vertex contact-normal gradient through
// rigidbody.Assembler2's Jacobian (the dof->vertex linear map) via a
// Gauss-Newton approximation — J^T*diag(phi'')*J — rather than full
// second-order autodiff through the assembler's rotation, since
// Assembler2 only exposes a Dual1 Jacobian, not a Dual2 one.
type rigidBodyProblem struct {
	world      *World
	target     []float64
	startSigma []float64
	impacts    []impact.EdgeVertexImpact
	volumes    []float64
	settings   scene.DistanceBarrierSettings
	fixedDof   []int
}

func (p *rigidBodyProblem) NumVars() int             { return p.world.assembler.NumDof() }
func (p *rigidBodyProblem) StartingPoint() []float64 { return append([]float64{}, p.startSigma...) }
func (p *rigidBodyProblem) IsDoFFixed(i int) bool {
	for _, f := range p.fixedDof {
		if f == i {
			return true
		}
	}
	return false
}

func (p *rigidBodyProblem) EvalF(x []float64) float64 {
	s := 0.0
	for i, xi := range x {
		d := xi - p.target[i]
		s += 0.5 * d * d
	}
	return s
}

func (p *rigidBodyProblem) EvalGradF(x []float64) []float64 {
	g := make([]float64, len(x))
	for i, xi := range x {
		g[i] = xi - p.target[i]
	}
	return g
}

func (p *rigidBodyProblem) EvalHessianF(x []float64) [][]float64 {
	n := len(x)
	h := make([][]float64, n)
	for i := range h {
		h[i] = make([]float64, n)
		h[i][i] = 1
	}
	return h
}

func (p *rigidBodyProblem) EvalBarrierTerm(sigma []float64, epsilon float64) (float64, []float64, [][]float64) {
	n := len(sigma)
	grad := make([]float64, n)
	hess := make([][]float64, n)
	for i := range hess {
		hess[i] = make([]float64, n)
	}
	if len(p.impacts) == 0 {
		return 0, grad, hess
	}

	assembler := p.world.assembler
	jac := assembler.Jacobian(sigma).ToCSR()
	value := 0.0
	perVertexGrad := make([]float64, jac.NumRows)
	perVertexWeight := make([]float64, jac.NumRows)

	for k, im := range p.impacts {
		e := p.world.Geometry.Edges[im.EdgeIndex]
		phiVal, phi1, phi2, err := barrier.DistanceBarrierDerivatives(p.volumes[k], epsilon)
		if err != nil {
			continue
		}
		value += phiVal

		av := assembler.WorldVertex(sigma, p.world.bodyOf(e[0]), p.world.localIndexOf(e[0]))
		bv := assembler.WorldVertex(sigma, p.world.bodyOf(e[1]), p.world.localIndexOf(e[1]))
		perp := bv.Sub(av).Perp()
		perpLen := perp.Norm().Float64()
		if perpLen < 1e-12 {
			continue
		}
		nx, ny := perp.X.Float64()/perpLen, perp.Y.Float64()/perpLen

		addContribution := func(vertexIdx int, weight float64) {
			row0 := 2 * vertexIdx
			perVertexGrad[row0] += weight * phi1 * nx
			perVertexGrad[row0+1] += weight * phi1 * ny
			perVertexWeight[row0] += weight * weight * phi2
			perVertexWeight[row0+1] += weight * weight * phi2
		}
		addContribution(im.VertexIndex, 1)
		addContribution(e[0], -(1 - im.Alpha))
		addContribution(e[1], -im.Alpha)
	}

	for row := 0; row < jac.NumRows; row++ {
		for k := jac.RowPtr[row]; k < jac.RowPtr[row+1]; k++ {
			grad[jac.ColIdx[k]] += jac.Vals[k] * perVertexGrad[row]
		}
	}
	for row := 0; row < jac.NumRows; row++ {
		weight := perVertexWeight[row]
		if weight == 0 {
			continue
		}
		for k1 := jac.RowPtr[row]; k1 < jac.RowPtr[row+1]; k1++ {
			c1, v1 := jac.ColIdx[k1], jac.Vals[k1]
			for k2 := jac.RowPtr[row]; k2 < jac.RowPtr[row+1]; k2++ {
				c2, v2 := jac.ColIdx[k2], jac.Vals[k2]
				hess[c1][c2] += weight * v1 * v2
			}
		}
	}

	return value, grad, hess
}

func (p *rigidBodyProblem) MinDistance(x []float64) (float64, bool) { return minOf(p.volumes) }
func (p *rigidBodyProblem) HasCollisions(from, to []float64) bool   { return p.world.HasCollisions(from, to) }
