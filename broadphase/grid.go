package broadphase

// CellKey identifies a grid cell by its integer coordinates. 2D callers
// leave Z at 0.
type CellKey struct {
	X, Y, Z int
}

type cell struct {
	items []int
}

// SpatialGrid is a uniform hash grid over AABB3 boxes, translated from the
// teacher's SpatialGrid (power-of-two bucket count, multiplicative-prime
// hash, masked index) and generalized from a single self-pairing body list
// to an indexed item store any number of independent queries can probe.
type SpatialGrid struct {
	cellSize float64
	cells    []cell
	cellMask int
	boxes    []AABB3 // boxes[i] is the box last inserted under item id i
}

// NewSpatialGrid creates a grid with the given cell size and at least
// numCells buckets (rounded up to a power of two, as the teacher's does, so
// the hash can be masked instead of modulo'd).
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)
	cells := make([]cell, numCells)
	for i := range cells {
		cells[i].items = make([]int, 0, 8)
	}
	return &SpatialGrid{cellSize: cellSize, cells: cells, cellMask: numCells - 1}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Clear empties every cell and the box store, ready for the next step.
func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].items = sg.cells[i].items[:0]
	}
	sg.boxes = sg.boxes[:0]
}

// Insert adds an item's box under a freshly assigned id and returns that id.
// Callers insert in the same order as their source slice so id == index.
func (sg *SpatialGrid) Insert(box AABB3) int {
	id := len(sg.boxes)
	sg.boxes = append(sg.boxes, box)

	minCell := sg.worldToCell(box.Min)
	maxCell := sg.worldToCell(box.Max)
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				idx := sg.hashCell(CellKey{x, y, z})
				sg.cells[idx].items = append(sg.cells[idx].items, id)
			}
		}
	}
	return id
}

// QueryCandidates returns the ids of items sharing a cell with box,
// deduplicated, without regard to which grid built them relative to box —
// callers that probe a different grid than the one they inserted into
// (cross-pairing, e.g. vertices probing an edge grid) get every edge that
// might overlap, pending the caller's own exact AABB.Overlaps check.
func (sg *SpatialGrid) QueryCandidates(box AABB3) []int {
	minCell := sg.worldToCell(box.Min)
	maxCell := sg.worldToCell(box.Max)

	seen := make(map[int]bool)
	var out []int
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				idx := sg.hashCell(CellKey{x, y, z})
				for _, id := range sg.cells[idx].items {
					if !seen[id] {
						seen[id] = true
						out = append(out, id)
					}
				}
			}
		}
	}
	return out
}

// SelfPairs returns index pairs (a,b) with a<b whose inserted boxes overlap,
// the same deterministic-ordering scan as the teacher's FindPairs, minus the
// body-type/sleep filtering this module has no analogue for.
func (sg *SpatialGrid) SelfPairs() [][2]int {
	var pairs [][2]int
	seenPair := make(map[[2]int]bool)
	for a, boxA := range sg.boxes {
		for _, b := range sg.QueryCandidates(boxA) {
			if b <= a {
				continue
			}
			if !boxA.Overlaps(sg.boxes[b]) {
				continue
			}
			key := [2]int{a, b}
			if !seenPair[key] {
				seenPair[key] = true
				pairs = append(pairs, key)
			}
		}
	}
	return pairs
}

// Box returns the box inserted under id.
func (sg *SpatialGrid) Box(id int) AABB3 { return sg.boxes[id] }

func (sg *SpatialGrid) worldToCell(p [3]float64) CellKey {
	return CellKey{
		X: floorDiv(p[0], sg.cellSize),
		Y: floorDiv(p[1], sg.cellSize),
		Z: floorDiv(p[2], sg.cellSize),
	}
}

func floorDiv(v, cellSize float64) int {
	q := v / cellSize
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}

// hashCell hashes a cell key to a bucket index, the same three large primes
// and XOR-fold the teacher's hashCell uses.
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
