// Package sparse provides the minimal sparse-matrix contract the assembler,
// barrier kernel, and NCP solver pass Jacobians and Hessians through:
// spec.md treats sparse linear algebra as an external collaborator, so this
// module only needs a row/col/val accumulator a caller-supplied production
// solver can consume, not a solver itself. No sparse/linear-algebra library
// appears in any retrieved example repo's go.mod, so this is a deliberately
// minimal stdlib-only component (see DESIGN.md).
package sparse

import "sort"

// Triplets accumulates (row, col, val) entries for a sparse matrix being
// built up incrementally, the same role the teacher's assembler code would
// give to a dense scratch buffer if the linear system were small enough for
// one; here it stays sparse because the dof->vertex Jacobian is
// block-diagonal and most entries are structurally zero.
type Triplets struct {
	Rows, Cols []int
	Vals       []float64
	NumRows    int
	NumCols    int
}

// NewTriplets returns an empty accumulator sized for an numRows x numCols
// matrix.
func NewTriplets(numRows, numCols int) *Triplets {
	return &Triplets{NumRows: numRows, NumCols: numCols}
}

// Add records one entry. Duplicate (row,col) pairs accumulate by summation
// when converted to CSR, the conventional COO semantics.
func (t *Triplets) Add(row, col int, val float64) {
	t.Rows = append(t.Rows, row)
	t.Cols = append(t.Cols, col)
	t.Vals = append(t.Vals, val)
}

// AddBlock writes a dense rows x cols block at the given offset — the shape
// every per-body Jacobian contribution takes before being scattered into
// the global matrix.
func (t *Triplets) AddBlock(rowOffset, colOffset int, block [][]float64) {
	for i, row := range block {
		for j, v := range row {
			if v != 0 {
				t.Add(rowOffset+i, colOffset+j, v)
			}
		}
	}
}

// CSR is a compressed-sparse-row matrix: the format a caller-supplied
// production sparse solver receives.
type CSR struct {
	NumRows, NumCols int
	RowPtr           []int
	ColIdx           []int
	Vals             []float64
}

// ToCSR converts the accumulated triplets to compressed-sparse-row form,
// summing duplicate (row,col) entries and sorting column indices within
// each row ascending.
func (t *Triplets) ToCSR() CSR {
	type entry struct {
		row, col int
		val      float64
	}
	merged := make(map[[2]int]float64)
	order := make([][2]int, 0, len(t.Rows))
	for i := range t.Rows {
		key := [2]int{t.Rows[i], t.Cols[i]}
		if _, seen := merged[key]; !seen {
			order = append(order, key)
		}
		merged[key] += t.Vals[i]
	}

	entries := make([]entry, 0, len(order))
	for _, key := range order {
		entries = append(entries, entry{row: key[0], col: key[1], val: merged[key]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].row != entries[j].row {
			return entries[i].row < entries[j].row
		}
		return entries[i].col < entries[j].col
	})

	csr := CSR{NumRows: t.NumRows, NumCols: t.NumCols, RowPtr: make([]int, t.NumRows+1)}
	for _, e := range entries {
		csr.ColIdx = append(csr.ColIdx, e.col)
		csr.Vals = append(csr.Vals, e.val)
		csr.RowPtr[e.row+1]++
	}
	for i := 1; i <= t.NumRows; i++ {
		csr.RowPtr[i] += csr.RowPtr[i-1]
	}
	return csr
}
