// Package dataset holds the survey data as an immutable, column-named table.
// Every field is a small-integer survey code stored as float64; missing values
// are math.NaN(). All derivations return independent copies so successive
// analysis runs never share mutable state.
package dataset

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoColumn is returned (wrapped with the column name) when a requested
// column is not present in the table.
var ErrNoColumn = errors.New("dataset: no such column")

// Table is a read-only respondent-by-column matrix.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]float64
}

// New builds a table from column names and row data. Rows must be rectangular
// and match the number of columns.
func New(cols []string, rows [][]float64) (*Table, error) {
	if len(cols) == 0 {
		return nil, errors.New("dataset: no columns")
	}
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("dataset: duplicate column %q", c)
		}
		index[c] = i
	}
	for i, r := range rows {
		if len(r) != len(cols) {
			return nil, fmt.Errorf("dataset: row %d has %d values, want %d", i, len(r), len(cols))
		}
	}
	t := &Table{
		cols:  append([]string(nil), cols...),
		index: index,
		rows:  make([][]float64, len(rows)),
	}
	for i, r := range rows {
		t.rows[i] = append([]float64(nil), r...)
	}
	return t, nil
}

// Len returns the number of respondents.
func (t *Table) Len() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns a copy of the column names in table order.
func (t *Table) Columns() []string { return append([]string(nil), t.cols...) }

// Has reports whether the table contains the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[j]
	}
	return out, nil
}

// At returns the value at a row/column pair.
func (t *Table) At(row int, name string) (float64, error) {
	j, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	if row < 0 || row >= len(t.rows) {
		return 0, fmt.Errorf("dataset: row %d out of range [0,%d)", row, len(t.rows))
	}
	return t.rows[row][j], nil
}

// Select returns a new table containing only the named columns, in the
// given order.
func (t *Table) Select(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	for k, name := range names {
		j, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
		}
		idx[k] = j
	}
	rows := make([][]float64, len(t.rows))
	for i, r := range t.rows {
		row := make([]float64, len(idx))
		for k, j := range idx {
			row[k] = r[j]
		}
		rows[i] = row
	}
	return New(names, rows)
}

// Drop returns a new table without the named columns. Unknown names are
// ignored so callers can list every potentially leaky column without first
// probing the schema.
func (t *Table) Drop(names ...string) *Table {
	dropped := make(map[string]bool, len(names))
	for _, n := range names {
		dropped[n] = true
	}
	keep := make([]string, 0, len(t.cols))
	for _, c := range t.cols {
		if !dropped[c] {
			keep = append(keep, c)
		}
	}
	out, err := t.Select(keep...)
	if err != nil {
		// Select over the table's own column set cannot fail.
		panic(err)
	}
	return out
}

// Subset returns a new table containing the given rows, in index order.
func (t *Table) Subset(rows []int) (*Table, error) {
	out := make([][]float64, len(rows))
	for k, i := range rows {
		if i < 0 || i >= len(t.rows) {
			return nil, fmt.Errorf("dataset: row %d out of range [0,%d)", i, len(t.rows))
		}
		out[k] = append([]float64(nil), t.rows[i]...)
	}
	return New(t.cols, out)
}

// Replace returns a new table with every occurrence of from in the named
// column rewritten to to. NaN may be used on either side to recode sentinel
// codes to missing or to collapse missing into an explicit category.
func (t *Table) Replace(name string, from, to float64) (*Table, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	rows := make([][]float64, len(t.rows))
	for i, r := range t.rows {
		row := append([]float64(nil), r...)
		if row[j] == from || (math.IsNaN(from) && math.IsNaN(row[j])) {
			row[j] = to
		}
		rows[i] = row
	}
	return New(t.cols, rows)
}

// Matrix returns a copy of the table as a dense row-major matrix.
func (t *Table) Matrix() [][]float64 {
	out := make([][]float64, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}
