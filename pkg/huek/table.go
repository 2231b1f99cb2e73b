package huek

import (
	"math"
)

// Row is the merged result of one catchment.
type Row struct {
	ID     string
	Values []float64
}

// Table is the output of the aggregator: one row per catchment, indexed by
// catchment ID, with one column per category.
type Table struct {
	IndexName string
	Columns   []string
	Rows      []Row

	// Excluded lists catchments dropped under DegenerateExclude.
	Excluded []string
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the value of a column for a catchment. With duplicate IDs
// the first row wins.
func (t *Table) Value(id, column string) (float64, bool) {
	col := t.ColumnIndex(column)
	if col < 0 {
		return 0, false
	}
	for _, r := range t.Rows {
		if r.ID == id {
			return r.Values[col], true
		}
	}
	return 0, false
}

// Column returns all values of one column in row order.
func (t *Table) Column(name string) ([]float64, bool) {
	col := t.ColumnIndex(name)
	if col < 0 {
		return nil, false
	}
	values := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		values[i] = r.Values[col]
	}
	return values, true
}

// Round rounds every value to the given number of decimals, half to even.
func (t *Table) Round(decimals int) {
	for _, r := range t.Rows {
		for i, v := range r.Values {
			r.Values[i] = roundHalfEven(v, decimals)
		}
	}
}

// roundHalfEven scales, rounds to the nearest even integer on ties, and
// scales back, which is how numpy rounds to decimals.
func roundHalfEven(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*scale) / scale
}
