package analytics

// Table stores rows of integer tuples column-wise, so a filter over one
// column touches contiguous memory only.
type Table struct {
	columns [][]int
}

// NewTable creates an empty columnar table.
func NewTable() *Table {
	return &Table{}
}

// AddRow appends one row. The column count grows to the widest row ever
// added; shorter rows leave the missing cells untouched.
func (t *Table) AddRow(row []int) {
	if len(row) > len(t.columns) {
		grown := make([][]int, len(row))
		copy(grown, t.columns)
		t.columns = grown
	}
	for i, cell := range row {
		t.columns[i] = append(t.columns[i], cell)
	}
}

// Column returns the backing slice of the given column. The second return
// value is false if the column does not exist.
func (t *Table) Column(index int) ([]int, bool) {
	if index < 0 || index >= len(t.columns) {
		return nil, false
	}
	return t.columns[index], true
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0])
}

// FilterLessThan counts the values below threshold in the given column using
// the provided backend. A nil backend selects the scalar scan. An
// out-of-range column yields zero.
func (t *Table) FilterLessThan(backend FilterBackend, column, threshold int) int {
	col, ok := t.Column(column)
	if !ok {
		return 0
	}
	if backend == nil {
		backend = ScalarBackend{}
	}
	return backend.CountLessThan(col, threshold)
}
