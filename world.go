package rigidccd

import (
	"io"
	"math"

	"github.com/ccdkit/rigidccd/barrier"
	"github.com/ccdkit/rigidccd/broadphase"
	"github.com/ccdkit/rigidccd/ccd"
	"github.com/ccdkit/rigidccd/errs"
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/impact"
	"github.com/ccdkit/rigidccd/internal/workerpool"
	"github.com/ccdkit/rigidccd/numeric"
	"github.com/ccdkit/rigidccd/pose"
	"github.com/ccdkit/rigidccd/rigidbody"
	"github.com/ccdkit/rigidccd/scene"
)

// DefaultWorkers is the worker-pool fan-out used when World.Workers is left
// unset, the same fallback the teacher's World.Step applies via
// max(DEFAULT_WORKERS, w.Workers).
const DefaultWorkers = 1

// World is the root orchestration type: the in-process API spec.md §6
// names, assembled from three step-scoped views — Geometry (immutable
// mesh), Trajectory (mutable per-vertex displacement), Results
// (re-materialized detection/optimization output) — plus, for scenes that
// carry rigid bodies, a rigidbody.Assembler2 mapping body dof to the same
// vertex set.
type World struct {
	Geometry   scene.Geometry
	Trajectory scene.Trajectory
	Results    scene.Results
	Settings   scene.Settings
	Workers    int

	assembler *rigidbody.Assembler2
	perBody   int
	sigma     []float64
	sigmaDot  []float64
}

// NewWorld builds an empty World under the given problem settings.
func NewWorld(settings scene.Settings) *World {
	return &World{Settings: settings, Workers: DefaultWorkers}
}

func (w *World) workers() int {
	if w.Workers < 1 {
		return DefaultWorkers
	}
	return w.Workers
}

func vertexDim(vertices [][]float64) int {
	if len(vertices) == 0 {
		return 2
	}
	return len(vertices[0])
}

// LoadScene decodes a scene document and replaces Geometry/Trajectory/
// Results with it. A RigidBodies block, if present, is assembled into a
// rigidbody.Assembler2 splitting the vertex set contiguously and evenly
// across Settings.RigidBodyProblem.NumBodies bodies (or len(Sigma) rows
// when NumBodies is left at zero) — the document format has no other way
// to say which vertices belong to which body.
func (w *World) LoadScene(r io.Reader) error {
	doc, err := scene.LoadScene(r)
	if err != nil {
		return errs.New(errs.InvalidInput, "decoding scene document", err)
	}
	for _, e := range doc.Edges {
		if e[0] < 0 || e[0] >= len(doc.Vertices) || e[1] < 0 || e[1] >= len(doc.Vertices) {
			return errs.New(errs.InvalidInput, "edge references a vertex outside Vertices", nil)
		}
	}

	w.Geometry = scene.NewGeometry(doc)
	w.Trajectory = scene.NewTrajectory(len(doc.Vertices), vertexDim(doc.Vertices))
	for i, d := range doc.Displacements {
		if i >= len(w.Trajectory.Displacements) {
			break
		}
		w.Trajectory.SetDisplacement(i, d)
	}
	w.Results = scene.Results{}
	w.assembler = nil
	w.perBody = 0
	w.sigma = nil
	w.sigmaDot = nil

	if doc.RigidBodies != nil {
		return w.loadRigidBodies(doc)
	}
	return nil
}

func (w *World) loadRigidBodies(doc scene.SceneDocument) error {
	rb := doc.RigidBodies
	numBodies := w.Settings.RigidBodyProblem.NumBodies
	if numBodies <= 0 {
		numBodies = len(rb.Sigma)
	}
	if numBodies <= 0 || len(rb.Sigma) != numBodies {
		return errs.New(errs.InvalidInput, "rigid_bodies.sigma length does not match num_bodies", nil)
	}
	numVertices := len(doc.Vertices)
	if numBodies == 0 || numVertices%numBodies != 0 {
		return errs.New(errs.InvalidInput, "vertex count does not split evenly across rigid bodies", nil)
	}
	perBody := numVertices / numBodies

	sigma := make([]float64, 0, numBodies*pose.NDof2)
	bodies := make([]rigidbody.Body2, numBodies)
	for b := 0; b < numBodies; b++ {
		s := rb.Sigma[b]
		if len(s) != pose.NDof2 {
			return errs.New(errs.InvalidInput, "rigid body sigma row must have 3 components (tx,ty,theta)", nil)
		}
		sigma = append(sigma, s...)

		cosT, sinT := math.Cos(s[2]), math.Sin(s[2])
		verts := make([]geometry.Vec2[numeric.F64], perBody)
		for i := 0; i < perBody; i++ {
			v := doc.Vertices[b*perBody+i]
			dx, dy := v[0]-s[0], v[1]-s[1]
			// local = R(-theta) * (world - translation); R(theta) is
			// orthogonal, so its inverse is its transpose.
			verts[i] = geometry.Vec2[numeric.F64]{
				X: numeric.F64(cosT*dx + sinT*dy),
				Y: numeric.F64(-sinT*dx + cosT*dy),
			}
		}
		bodies[b] = rigidbody.Body2{LocalVertices: verts}
	}

	sigmaDot := make([]float64, len(sigma))
	if len(rb.SigmaDot) == numBodies {
		for b, sd := range rb.SigmaDot {
			copy(sigmaDot[b*pose.NDof2:], sd)
		}
	}

	w.assembler = rigidbody.NewAssembler2(bodies)
	w.perBody = perBody
	w.sigma = sigma
	w.sigmaDot = sigmaDot
	return nil
}

func (w *World) bodyOf(globalVertex int) int       { return globalVertex / w.perBody }
func (w *World) localIndexOf(globalVertex int) int { return globalVertex % w.perBody }

// SaveScene encodes the current Geometry/Trajectory (and rigid-body dof, if
// any) back out as a scene document.
func (w *World) SaveScene(out io.Writer) error {
	doc := scene.SceneDocument{
		Vertices:      w.Geometry.Vertices,
		Displacements: w.Trajectory.Displacements,
	}
	doc.Edges = make([][]int, len(w.Geometry.Edges))
	for i, e := range w.Geometry.Edges {
		doc.Edges[i] = []int{e[0], e[1]}
	}
	if len(w.Geometry.Faces) > 0 {
		doc.Faces = make([][]int, len(w.Geometry.Faces))
		for i, f := range w.Geometry.Faces {
			doc.Faces[i] = []int{f[0], f[1], f[2]}
		}
	}
	if w.assembler != nil {
		doc.RigidBodies = w.rigidBodyDocument()
	}
	return scene.SaveScene(out, doc)
}

func (w *World) rigidBodyDocument() *scene.RigidBodyDocument {
	n := len(w.assembler.Bodies)
	sigma := make([][]float64, n)
	sigmaDot := make([][]float64, n)
	for b := 0; b < n; b++ {
		off := b * pose.NDof2
		sigma[b] = append([]float64{}, w.sigma[off:off+pose.NDof2]...)
		sigmaDot[b] = append([]float64{}, w.sigmaDot[off:off+pose.NDof2]...)
	}
	return &scene.RigidBodyDocument{Sigma: sigma, SigmaDot: sigmaDot}
}

// ResetScene zeroes every step-scoped quantity (displacements, rigid-body
// rates, detection/optimization results) while keeping Geometry intact.
func (w *World) ResetScene() {
	w.Trajectory = scene.NewTrajectory(len(w.Geometry.Vertices), vertexDim(w.Geometry.Vertices))
	w.Results = scene.Results{}
	for i := range w.sigmaDot {
		w.sigmaDot[i] = 0
	}
}

// AddVertex appends a vertex (with a zero displacement) and returns its index.
func (w *World) AddVertex(position []float64) int {
	w.Geometry.Vertices = append(w.Geometry.Vertices, append([]float64{}, position...))
	w.Trajectory.Displacements = append(w.Trajectory.Displacements, make([]float64, len(position)))
	return len(w.Geometry.Vertices) - 1
}

// AddEdges appends edges, rejecting any that reference a vertex out of range.
func (w *World) AddEdges(edges [][2]int) error {
	for _, e := range edges {
		if e[0] < 0 || e[0] >= len(w.Geometry.Vertices) || e[1] < 0 || e[1] >= len(w.Geometry.Vertices) {
			return errs.New(errs.InvalidInput, "edge references a vertex outside Vertices", nil)
		}
	}
	w.Geometry.Edges = append(w.Geometry.Edges, edges...)
	return nil
}

// SetVertexPosition overwrites a vertex's base (un-displaced) position.
func (w *World) SetVertexPosition(index int, position []float64) error {
	if index < 0 || index >= len(w.Geometry.Vertices) {
		return errs.New(errs.InvalidInput, "vertex index out of range", nil)
	}
	w.Geometry.Vertices[index] = append([]float64{}, position...)
	return nil
}

// MoveVertex sets vertex index's displacement so it lands at target.
func (w *World) MoveVertex(index int, target []float64) error {
	if index < 0 || index >= len(w.Geometry.Vertices) {
		return errs.New(errs.InvalidInput, "vertex index out of range", nil)
	}
	w.Trajectory.MoveVertex(index, w.Geometry.Vertices[index], target)
	return nil
}

// MoveDisplacement sets vertex index's displacement directly.
func (w *World) MoveDisplacement(index int, displacement []float64) error {
	if index < 0 || index >= len(w.Trajectory.Displacements) {
		return errs.New(errs.InvalidInput, "vertex index out of range", nil)
	}
	w.Trajectory.SetDisplacement(index, displacement)
	return nil
}

// currentDofBounds returns the (from, to) dof vectors spanning the current
// step: for a rigid-body scene, (sigma, sigma+sigmaDot); for a free-vertex
// scene, (zero displacement, the flattened current displacement vector).
func (w *World) currentDofBounds() (from, to []float64) {
	if w.assembler != nil {
		return w.sigma, addVectors(w.sigma, w.sigmaDot)
	}
	n := len(w.Geometry.Vertices)
	from = make([]float64, n*2)
	to = make([]float64, n*2)
	for i, d := range w.Trajectory.Displacements {
		to[2*i] = d[0]
		to[2*i+1] = d[1]
	}
	return from, to
}

// sweptPositions maps two dof vectors (in whichever dof space this World is
// currently configured for — rigid-body sigma or flat vertex displacement)
// to the start/end 2D positions of every vertex, the common input every
// edge-vertex CCD query needs.
func (w *World) sweptPositions(dofFrom, dofTo []float64) (p0, p1 [][2]float64, err error) {
	if w.assembler != nil {
		n := w.assembler.NumVertices()
		p0 = make([][2]float64, n)
		p1 = make([][2]float64, n)
		idx := 0
		for b, body := range w.assembler.Bodies {
			for v := range body.LocalVertices {
				a := w.assembler.WorldVertex(dofFrom, b, v)
				c := w.assembler.WorldVertex(dofTo, b, v)
				p0[idx] = [2]float64{a.X.Float64(), a.Y.Float64()}
				p1[idx] = [2]float64{c.X.Float64(), c.Y.Float64()}
				idx++
			}
		}
		return p0, p1, nil
	}

	if vertexDim(w.Geometry.Vertices) != 2 {
		return nil, nil, errs.New(errs.InvalidInput, "edge-vertex CCD requires 2D vertex positions", nil)
	}
	n := len(w.Geometry.Vertices)
	if len(dofFrom) != n*2 || len(dofTo) != n*2 {
		return nil, nil, errs.New(errs.InvalidInput, "displacement dof vector length must be 2*numVertices", nil)
	}
	p0 = make([][2]float64, n)
	p1 = make([][2]float64, n)
	for i, v := range w.Geometry.Vertices {
		p0[i] = [2]float64{v[0] + dofFrom[2*i], v[1] + dofFrom[2*i+1]}
		p1[i] = [2]float64{v[0] + dofTo[2*i], v[1] + dofTo[2*i+1]}
	}
	return p0, p1, nil
}

func vec2From(p [2]float64) geometry.Vec2[numeric.F64] {
	return geometry.Vec2[numeric.F64]{X: numeric.F64(p[0]), Y: numeric.F64(p[1])}
}

func addVectors(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

func (w *World) toi() float64 {
	tol := w.Settings.BarrierSolver.ConvergenceTolerance
	if tol <= 0 {
		tol = 1e-6
	}
	return tol
}

// DetectEdgeVertexCollisions runs broad phase followed by certified
// edge-vertex time-of-impact over the current step (Geometry plus
// Trajectory, or the rigid-body sigma/sigma+sigmaDot bracket), in parallel
// across candidates via the workerpool package, and returns the hits
// canonically time-sorted.
func (w *World) DetectEdgeVertexCollisions() ([]impact.EdgeVertexImpact, error) {
	from, to := w.currentDofBounds()
	p0, p1, err := w.sweptPositions(from, to)
	if err != nil {
		return nil, err
	}
	displacements := make([][2]float64, len(p0))
	for i := range p0 {
		displacements[i] = [2]float64{p1[i][0] - p0[i][0], p1[i][1] - p0[i][1]}
	}

	inflate := w.Settings.DistanceBarrierConstraint.Epsilon
	candidates := broadphase.DetectEdgeVertexCandidates2D(p0, displacements, w.Geometry.Edges, inflate, broadphase.HashGrid)
	tol := w.toi()

	type maybeImpact struct {
		impact.EdgeVertexImpact
		hit bool
	}
	results := workerpool.MapIndexed(w.workers(), candidates, func(_ int, c broadphase.EdgeVertexCandidate) maybeImpact {
		e := w.Geometry.Edges[c.Edge]
		edgeA := ccd.IntervalTrajectory2(vec2From(p0[e[0]]), vec2From(displacements[e[0]]))
		edgeB := ccd.IntervalTrajectory2(vec2From(p0[e[1]]), vec2From(displacements[e[1]]))
		vertex := ccd.IntervalTrajectory2(vec2From(p0[c.Vertex]), vec2From(displacements[c.Vertex]))
		r := ccd.EdgeVertexTimeOfImpact(edgeA, edgeB, vertex, tol)
		if !r.Hit {
			return maybeImpact{}
		}
		return maybeImpact{
			EdgeVertexImpact: impact.EdgeVertexImpact{Toi: r.Toi, EdgeIndex: c.Edge, VertexIndex: c.Vertex, Alpha: r.Alpha},
			hit:              true,
		}
	})

	var hits []impact.EdgeVertexImpact
	for _, r := range results {
		if r.hit {
			hits = append(hits, r.EdgeVertexImpact)
		}
	}
	impact.SortEdgeVertexImpacts(hits)
	w.Results.NumActiveConstraints = len(hits)
	return hits, nil
}

// ComputeCollisionVolumes evaluates barrier.SpaceTimeVolume for each impact
// in parallel, records the minimum as Results.MinDistance, and returns the
// per-impact volumes in the same order as impacts.
func (w *World) ComputeCollisionVolumes(impacts []impact.EdgeVertexImpact) ([]float64, error) {
	from, to := w.currentDofBounds()
	p0, p1, err := w.sweptPositions(from, to)
	if err != nil {
		return nil, err
	}

	eps := numeric.F64(w.Settings.DistanceBarrierConstraint.Epsilon)
	epsEdge := w.Settings.DistanceBarrierConstraint.EpsilonEdge

	type volResult struct {
		volume float64
		err    error
	}
	raw := workerpool.MapIndexed(w.workers(), impacts, func(_ int, im impact.EdgeVertexImpact) volResult {
		e := w.Geometry.Edges[im.EdgeIndex]
		tau := numeric.F64(im.Toi)
		edgeA0, edgeB0, v0 := vec2From(p0[e[0]]), vec2From(p0[e[1]]), vec2From(p0[im.VertexIndex])
		edgeA1, edgeB1, v1 := vec2From(p1[e[0]]), vec2From(p1[e[1]]), vec2From(p1[im.VertexIndex])

		edgeDirAtTau := geometry.Lerp2(edgeB0, edgeB1, tau).Sub(geometry.Lerp2(edgeA0, edgeA1, tau))
		velocity := v1.Sub(v0).Sub(edgeA1.Sub(edgeA0))

		vol, err := barrier.SpaceTimeVolume(tau, edgeDirAtTau, velocity, eps, epsEdge)
		if err != nil {
			return volResult{err: err}
		}
		return volResult{volume: vol.Float64()}
	})

	volumes := make([]float64, len(impacts))
	var firstErr error
	minVol := math.Inf(1)
	for i, r := range raw {
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		volumes[i] = r.volume
		if r.volume < minVol {
			minVol = r.volume
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if len(impacts) > 0 {
		w.Results.MinDistance = &minVol
	} else {
		w.Results.MinDistance = nil
	}
	return volumes, nil
}

// RunFullPipeline runs detection followed by volume computation and
// returns the resulting state export, without touching Trajectory — use
// OptimizeDisplacements to actually move vertices toward a collision-free
// configuration.
func (w *World) RunFullPipeline() (scene.StateExport, error) {
	impacts, err := w.DetectEdgeVertexCollisions()
	if err != nil {
		return scene.StateExport{}, err
	}
	if _, err := w.ComputeCollisionVolumes(impacts); err != nil {
		return scene.StateExport{}, err
	}
	w.Results.Converged = true
	return w.Results.Export(), nil
}

// HasCollisions reports whether moving the scene's dof vector in a straight
// line from sigmaI to sigmaJ passes through an edge-vertex intersection —
// the callback solver.BarrierNewtonSolver.Step gates its backtracking
// linesearch on.
func (w *World) HasCollisions(sigmaI, sigmaJ []float64) bool {
	p0, p1, err := w.sweptPositions(sigmaI, sigmaJ)
	if err != nil {
		return false
	}
	displacements := make([][2]float64, len(p0))
	for i := range p0 {
		displacements[i] = [2]float64{p1[i][0] - p0[i][0], p1[i][1] - p0[i][1]}
	}
	candidates := broadphase.DetectEdgeVertexCandidates2D(
		p0, displacements, w.Geometry.Edges, w.Settings.DistanceBarrierConstraint.Epsilon, broadphase.HashGrid)
	tol := w.toi()

	for _, c := range candidates {
		e := w.Geometry.Edges[c.Edge]
		edgeA := ccd.IntervalTrajectory2(vec2From(p0[e[0]]), vec2From(displacements[e[0]]))
		edgeB := ccd.IntervalTrajectory2(vec2From(p0[e[1]]), vec2From(displacements[e[1]]))
		vertex := ccd.IntervalTrajectory2(vec2From(p0[c.Vertex]), vec2From(displacements[c.Vertex]))
		if ccd.EdgeVertexTimeOfImpact(edgeA, edgeB, vertex, tol).Hit {
			return true
		}
	}
	return false
}
