/**
 * @description
 * In-memory column-ordered table of listing rows.
 * The pipeline's unit of work: constructed fresh from a raw source, cloned
 * defensively before any in-place transform, discarded after the request.
 *
 * @dependencies
 * - standard "encoding/json", "strings"
 */

package dataset

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Table is an ordered collection of rows sharing one schema snapshot.
// Column names are unique; duplicate inbound labels get a numeric suffix.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Value
}

// NewTable creates an empty table with the given column labels.
func NewTable(columns []string) *Table {
	t := &Table{
		index: make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		t.addColumnLabel(c)
	}
	return t
}

// addColumnLabel registers a label, suffixing duplicates ("col", "col_2", ...).
func (t *Table) addColumnLabel(name string) int {
	unique := name
	for n := 2; ; n++ {
		if _, exists := t.index[unique]; !exists {
			break
		}
		unique = name + "_" + strconv.Itoa(n)
	}
	t.index[unique] = len(t.cols)
	t.cols = append(t.cols, unique)
	return len(t.cols) - 1
}

// Columns returns a copy of the column labels in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// HasColumn reports whether a column label exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex resolves a label to its position.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// AppendRow adds a row, padding or truncating to the table width.
func (t *Table) AppendRow(cells []Value) {
	row := make([]Value, len(t.cols))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// At returns the cell at (row, column label). Missing for unknown columns.
func (t *Table) At(row int, name string) Value {
	i, ok := t.index[name]
	if !ok || row < 0 || row >= len(t.rows) {
		return Missing()
	}
	return t.rows[row][i]
}

// Set replaces the cell at (row, column label). Unknown columns are ignored.
func (t *Table) Set(row int, name string, v Value) {
	i, ok := t.index[name]
	if !ok || row < 0 || row >= len(t.rows) {
		return
	}
	t.rows[row][i] = v
}

// AddColumn appends a new column filled per-row by fn. If the label already
// exists the existing column is overwritten instead.
func (t *Table) AddColumn(name string, fn func(row int) Value) {
	if i, ok := t.index[name]; ok {
		for r := range t.rows {
			t.rows[r][i] = fn(r)
		}
		return
	}
	i := t.addColumnLabel(name)
	for r := range t.rows {
		t.rows[r] = append(t.rows[r], Value{})
		t.rows[r][i] = fn(r)
	}
}

// CopyColumn duplicates the cells of src under the label dst.
func (t *Table) CopyColumn(dst, src string) {
	si, ok := t.index[src]
	if !ok {
		return
	}
	t.AddColumn(dst, func(row int) Value {
		return t.rows[row][si]
	})
}

// RenameColumns rewrites every column label through fn, keeping cell content.
// Collisions produced by fn are resolved with numeric suffixes.
func (t *Table) RenameColumns(fn func(string) string) {
	old := t.cols
	t.cols = nil
	t.index = make(map[string]int, len(old))
	for _, c := range old {
		t.addColumnLabel(fn(c))
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable(t.cols)
	c.rows = make([][]Value, len(t.rows))
	for r, row := range t.rows {
		dup := make([]Value, len(row))
		copy(dup, row)
		c.rows[r] = dup
	}
	return c
}

// Filter returns a new table containing only rows for which keep is true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := NewTable(t.cols)
	for r := range t.rows {
		if keep(r) {
			out.AppendRow(t.rows[r])
		}
	}
	return out
}

// Equal reports whether two tables have identical columns and cells.
func (t *Table) Equal(o *Table) bool {
	if o == nil || len(t.cols) != len(o.cols) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.cols {
		if t.cols[i] != o.cols[i] {
			return false
		}
	}
	for r := range t.rows {
		for c := range t.rows[r] {
			if !t.rows[r][c].Equal(o.rows[r][c]) {
				return false
			}
		}
	}
	return true
}

// RowFingerprint renders a row as a stable string key for exact-duplicate
// detection across all columns.
func (t *Table) RowFingerprint(row int) string {
	var b strings.Builder
	for _, v := range t.rows[row] {
		s, ok := v.AsString()
		if !ok {
			b.WriteString("\x00")
		} else {
			b.WriteString(s)
		}
		b.WriteString("\x1f")
	}
	return b.String()
}

// RowMap converts a row to a plain map for API responses.
func (t *Table) RowMap(row int) map[string]interface{} {
	out := make(map[string]interface{}, len(t.cols))
	for i, c := range t.cols {
		out[c] = t.rows[row][i].Interface()
	}
	return out
}

// tableJSON is the wire form for cache and snapshot payloads.
type tableJSON struct {
	Columns []string  `json:"columns"`
	Rows    [][]Value `json:"rows"`
}

// MarshalJSON implements json.Marshaler.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableJSON{Columns: t.cols, Rows: t.rows})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Table) UnmarshalJSON(data []byte) error {
	var w tableJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	rebuilt := NewTable(w.Columns)
	for _, row := range w.Rows {
		rebuilt.AppendRow(row)
	}
	*t = *rebuilt
	return nil
}
