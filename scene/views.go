package scene

// Geometry is the immutable step-scoped view of a scene's mesh: vertices
// (in the ambient dimension the caller chose, 2 or 3 components per row),
// edges, and optional faces. Stepping never changes it — only Trajectory
// (positions over the step) and Results (re-materialized detection output)
// change as the world steps; World's AddVertex, AddEdges and
// SetVertexPosition edit it directly.
type Geometry struct {
	Vertices [][]float64
	Edges    [][2]int
	Faces    [][3]int
}

// NewGeometry builds a Geometry view from a decoded SceneDocument.
func NewGeometry(doc SceneDocument) Geometry {
	edges := make([][2]int, len(doc.Edges))
	for i, e := range doc.Edges {
		edges[i] = [2]int{e[0], e[1]}
	}
	faces := make([][3]int, len(doc.Faces))
	for i, f := range doc.Faces {
		faces[i] = [3]int{f[0], f[1], f[2]}
	}
	return Geometry{Vertices: doc.Vertices, Edges: edges, Faces: faces}
}

// Trajectory is the mutable step-scoped view: each vertex's displacement
// over the current step, i.e. the screwing trajectory's end pose relative
// to Geometry's start pose. AddVertex/AddEdges on the root World type grow
// Geometry; MoveVertex/MoveDisplacement mutate this view.
type Trajectory struct {
	Displacements [][]float64
}

// NewTrajectory builds a zero-displacement Trajectory sized for
// numVertices vertices of the given dimension (2 or 3).
func NewTrajectory(numVertices, dim int) Trajectory {
	d := make([][]float64, numVertices)
	for i := range d {
		d[i] = make([]float64, dim)
	}
	return Trajectory{Displacements: d}
}

// SetDisplacement overwrites the displacement of one vertex.
func (t *Trajectory) SetDisplacement(vertex int, displacement []float64) {
	t.Displacements[vertex] = append([]float64{}, displacement...)
}

// MoveVertex sets the displacement to move vertex from its current
// Geometry position to target, given that position.
func (t *Trajectory) MoveVertex(vertex int, current, target []float64) {
	d := make([]float64, len(current))
	for i := range current {
		d[i] = target[i] - current[i]
	}
	t.Displacements[vertex] = d
}

// Results is the re-materialized, step-scoped detection/optimization
// output: rebuilt every RunFullPipeline call rather than carried forward,
// since a broad-phase candidate set or impact list from a stale pose pair
// would silently mislead the next step's active-set construction.
type Results struct {
	MinDistance          *float64
	NumActiveConstraints int
	Converged            bool
	Iterations           int
}

// Export converts Results into the on-disk StateExport shape.
func (r Results) Export() StateExport {
	return StateExport{
		MinDistance:          r.MinDistance,
		NumActiveConstraints: r.NumActiveConstraints,
		Iterations:           r.Iterations,
		Converged:            r.Converged,
	}
}
