package scene

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSaveSceneThenLoadSceneRoundTripsEdgesAsInts(t *testing.T) {
	doc := SceneDocument{
		Vertices: [][]float64{{0, 0}, {1, 0}, {0.5, 1}},
		Edges:    [][]int{{0, 1}, {1, 2}},
	}
	var buf bytes.Buffer
	if err := SaveScene(&buf, doc); err != nil {
		t.Fatalf("SaveScene: %v", err)
	}

	// The edges must serialize as bare integers, never "0.0"-style floats.
	if bytes.Contains(buf.Bytes(), []byte("0.0")) {
		t.Errorf("edge indices serialized with a float coercion: %s", buf.String())
	}

	got, err := LoadScene(&buf)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if len(got.Edges) != 2 || got.Edges[0][0] != 0 || got.Edges[0][1] != 1 {
		t.Errorf("round-tripped edges = %v, want [[0 1] [1 2]]", got.Edges)
	}
	if len(got.Vertices) != 3 || got.Vertices[2][1] != 1 {
		t.Errorf("round-tripped vertices = %v", got.Vertices)
	}
}

func TestStateExportMinDistanceNullWhenAbsent(t *testing.T) {
	state := StateExport{MinDistance: nil, NumActiveConstraints: 0}
	b, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Contains(b, []byte(`"min_distance":null`)) {
		t.Errorf("expected min_distance:null, got %s", b)
	}
}

func TestStateExportMinDistanceRoundTripsWhenPresent(t *testing.T) {
	d := 0.037
	state := StateExport{MinDistance: &d}
	b, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back StateExport
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.MinDistance == nil || *back.MinDistance != d {
		t.Errorf("round-tripped MinDistance = %v, want %v", back.MinDistance, d)
	}
}

func TestTrajectoryMoveVertexComputesDisplacement(t *testing.T) {
	tr := NewTrajectory(1, 2)
	tr.MoveVertex(0, []float64{1, 1}, []float64{4, -2})
	want := []float64{3, -3}
	for i := range want {
		if tr.Displacements[0][i] != want[i] {
			t.Errorf("Displacements[0] = %v, want %v", tr.Displacements[0], want)
		}
	}
}

func TestNewGeometryConvertsEdgesAndFaces(t *testing.T) {
	doc := SceneDocument{
		Vertices: [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Edges:    [][]int{{0, 1}},
		Faces:    [][]int{{0, 1, 2}},
	}
	g := NewGeometry(doc)
	if g.Edges[0] != [2]int{0, 1} {
		t.Errorf("Edges[0] = %v, want [0 1]", g.Edges[0])
	}
	if g.Faces[0] != [3]int{0, 1, 2} {
		t.Errorf("Faces[0] = %v, want [0 1 2]", g.Faces[0])
	}
}
