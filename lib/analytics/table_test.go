package analytics

import (
	"math/rand"
	"testing"

	"github.com/meshkv/meshkv/lib/concurrent"
)

// TestAddRowAndShape tests row/column bookkeeping
func TestAddRowAndShape(t *testing.T) {
	tbl := NewTable()

	if tbl.NumRows() != 0 {
		t.Errorf("Empty table should have 0 rows, got %d", tbl.NumRows())
	}

	tbl.AddRow([]int{1, 2, 3})
	tbl.AddRow([]int{4, 5, 6})

	if tbl.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", tbl.NumRows())
	}

	col, ok := tbl.Column(1)
	if !ok {
		t.Fatal("Column 1 should exist")
	}
	if len(col) != 2 || col[0] != 2 || col[1] != 5 {
		t.Errorf("Column 1 mismatch: %v", col)
	}

	if _, ok := tbl.Column(3); ok {
		t.Error("Column 3 should not exist")
	}
}

// TestScalarFilter tests the linear scan count
func TestScalarFilter(t *testing.T) {
	tbl := NewTable()
	for _, v := range []int{10, 20, 30, 40, 50} {
		tbl.AddRow([]int{v})
	}

	if got := tbl.FilterLessThan(nil, 0, 35); got != 3 {
		t.Errorf("Expected 3 values below 35, got %d", got)
	}
	if got := tbl.FilterLessThan(nil, 0, 10); got != 0 {
		t.Errorf("Expected 0 values below 10, got %d", got)
	}
	if got := tbl.FilterLessThan(nil, 7, 100); got != 0 {
		t.Errorf("Out-of-range column should count 0, got %d", got)
	}
}

// TestBackendEquivalence tests that the parallel backend counts exactly like
// the scalar one for random columns
func TestBackendEquivalence(t *testing.T) {
	pool := concurrent.NewWorkerPool(4)
	defer pool.Close()

	rng := rand.New(rand.NewSource(1))

	tbl := NewTable()
	const numRows = 50000
	for i := 0; i < numRows; i++ {
		tbl.AddRow([]int{rng.Intn(1000), rng.Intn(1000)})
	}

	parallel := NewParallelBackend(pool, 8)
	for _, threshold := range []int{0, 1, 250, 500, 999, 1000} {
		for col := 0; col < 2; col++ {
			scalarCount := tbl.FilterLessThan(ScalarBackend{}, col, threshold)
			parallelCount := tbl.FilterLessThan(parallel, col, threshold)
			if scalarCount != parallelCount {
				t.Errorf("Column %d threshold %d: scalar %d, parallel %d",
					col, threshold, scalarCount, parallelCount)
			}
		}
	}
}

// TestParallelSmallColumn tests the inline fast path for short columns
func TestParallelSmallColumn(t *testing.T) {
	pool := concurrent.NewWorkerPool(2)
	defer pool.Close()

	tbl := NewTable()
	tbl.AddRow([]int{1})
	tbl.AddRow([]int{2})
	tbl.AddRow([]int{3})

	parallel := NewParallelBackend(pool, 4)
	if got := tbl.FilterLessThan(parallel, 0, 3); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
}
