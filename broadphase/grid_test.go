package broadphase

import "testing"

func TestWorldToCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	tests := []struct {
		name     string
		position [3]float64
		expected CellKey
	}{
		{"origin", [3]float64{0, 0, 0}, CellKey{0, 0, 0}},
		{"positive", [3]float64{1.5, 2.3, 3.7}, CellKey{1, 2, 3}},
		{"negative", [3]float64{-1.5, -2.3, -3.7}, CellKey{-2, -3, -4}},
		{"fractional", [3]float64{0.5, 0.5, 0.5}, CellKey{0, 0, 0}},
		{"large", [3]float64{100.7, -200.3, 50.1}, CellKey{100, -201, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.worldToCell(tt.position)
			if result != tt.expected {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.position, result, tt.expected)
			}
		})
	}
}

func TestHashCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16) // 16 cells, mask = 15

	tests := []struct {
		name     string
		key      CellKey
		expected int
	}{
		{"origin", CellKey{0, 0, 0}, 0},
		{"simple", CellKey{1, 2, 3}, 6},
		{"negative", CellKey{-1, -2, -3}, 10},
		{"large", CellKey{100, 200, 300}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.hashCell(tt.key)
			if result < 0 || result >= len(grid.cells) {
				t.Errorf("hashCell(%v) = %d, out of range [0, %d)", tt.key, result, len(grid.cells))
			}
			if result != tt.expected {
				t.Errorf("hashCell(%v) = %d, want %d", tt.key, result, tt.expected)
			}
		})
	}
}

func TestInsertFindsOwnBoxViaQuery(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	box := AABB3{Min: [3]float64{1.3, 2.3, 3.3}, Max: [3]float64{1.7, 2.7, 3.7}}
	id := grid.Insert(box)

	found := false
	for _, c := range grid.QueryCandidates(box) {
		if c == id {
			found = true
		}
	}
	if !found {
		t.Error("inserted box not returned by a query against itself")
	}
}

func TestClearEmptiesEveryCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	grid.Insert(AABB3{Min: [3]float64{0, 0, 0}, Max: [3]float64{0, 0, 0}})
	grid.Insert(AABB3{Min: [3]float64{2, 2, 2}, Max: [3]float64{2, 2, 2}})

	grid.Clear()

	if len(grid.boxes) != 0 {
		t.Error("box store should be empty after Clear")
	}
	for _, c := range grid.cells {
		if len(c.items) != 0 {
			t.Error("cells should be empty after Clear")
		}
	}
}

func TestSelfPairsNoCollision(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	grid.Insert(AABB3{Min: [3]float64{0, 0, 0}, Max: [3]float64{0.4, 0.4, 0.4}})
	grid.Insert(AABB3{Min: [3]float64{10, 10, 10}, Max: [3]float64{10.4, 10.4, 10.4}})

	pairs := grid.SelfPairs()
	if len(pairs) != 0 {
		t.Errorf("expected 0 pairs for far-apart boxes, got %d", len(pairs))
	}
}

func TestSelfPairsWithCollision(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	grid.Insert(AABB3{Min: [3]float64{0, 0, 0}, Max: [3]float64{0.4, 0.4, 0.4}})
	grid.Insert(AABB3{Min: [3]float64{0.2, 0.2, 0.2}, Max: [3]float64{0.6, 0.6, 0.6}})

	pairs := grid.SelfPairs()
	if len(pairs) != 1 || pairs[0] != [2]int{0, 1} {
		t.Errorf("expected the single pair (0,1), got %v", pairs)
	}
}

func TestLargeBoxSpansExpectedCellCount(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	box := AABB3{Min: [3]float64{0, 0, 0}, Max: [3]float64{5, 5, 5}}
	grid.Insert(box)

	minCell := grid.worldToCell(box.Min)
	maxCell := grid.worldToCell(box.Max)
	expected := (maxCell.X - minCell.X + 1) * (maxCell.Y - minCell.Y + 1) * (maxCell.Z - minCell.Z + 1)

	seen := make(map[CellKey]bool)
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				seen[CellKey{x, y, z}] = true
			}
		}
	}
	if len(seen) != expected {
		t.Errorf("expected the box to span %d distinct cells, counted %d", expected, len(seen))
	}
}
