package sparse

import "testing"

func TestToCSRSumsDuplicateEntries(t *testing.T) {
	tr := NewTriplets(2, 2)
	tr.Add(0, 0, 1)
	tr.Add(0, 0, 2)
	tr.Add(1, 1, 5)
	csr := tr.ToCSR()

	got := valueAt(csr, 0, 0)
	if got != 3 {
		t.Errorf("(0,0) = %v, want 3 (1+2 summed)", got)
	}
	if got := valueAt(csr, 1, 1); got != 5 {
		t.Errorf("(1,1) = %v, want 5", got)
	}
	if got := valueAt(csr, 0, 1); got != 0 {
		t.Errorf("(0,1) = %v, want 0 (never set)", got)
	}
}

func TestToCSRRowPtrCountsEntriesPerRow(t *testing.T) {
	tr := NewTriplets(3, 3)
	tr.Add(0, 0, 1)
	tr.Add(0, 2, 1)
	tr.Add(2, 1, 1)
	csr := tr.ToCSR()

	wantCounts := []int{2, 0, 1}
	for row, want := range wantCounts {
		got := csr.RowPtr[row+1] - csr.RowPtr[row]
		if got != want {
			t.Errorf("row %d has %d entries, want %d", row, got, want)
		}
	}
}

func TestAddBlockSkipsStructuralZeros(t *testing.T) {
	tr := NewTriplets(2, 2)
	tr.AddBlock(0, 0, [][]float64{{1, 0}, {0, 2}})
	csr := tr.ToCSR()
	if len(csr.Vals) != 2 {
		t.Errorf("AddBlock recorded %d nonzero entries, want 2", len(csr.Vals))
	}
	if valueAt(csr, 0, 0) != 1 || valueAt(csr, 1, 1) != 2 {
		t.Errorf("block entries misplaced: (0,0)=%v (1,1)=%v", valueAt(csr, 0, 0), valueAt(csr, 1, 1))
	}
}

func valueAt(csr CSR, row, col int) float64 {
	for k := csr.RowPtr[row]; k < csr.RowPtr[row+1]; k++ {
		if csr.ColIdx[k] == col {
			return csr.Vals[k]
		}
	}
	return 0
}
