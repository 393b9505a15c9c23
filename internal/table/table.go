// Package table holds the in-memory tabular model shared by every stage of
// the pipeline: typed values, tables with an ordered column set, and the
// named set of retail tables read from a source directory.
package table

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a named table or column does not exist.
var ErrNotFound = errors.New("not found")

// Row is a slice of values aligned with Table.Columns.
type Row []Value

// Table is a named, ordered sequence of rows over an ordered column set.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// New returns an empty table with a copy of the given columns.
func New(name string, columns []string) *Table {
	return &Table{Name: name, Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of column or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Has reports whether every named column is present.
func (t *Table) Has(columns ...string) bool {
	for _, c := range columns {
		if t.Index(c) < 0 {
			return false
		}
	}
	return true
}

// Lookup finds a column by its standardized name, so a raw header such as
// "List Price" resolves for "list_price". It returns the index or -1.
func (t *Table) Lookup(standard string) int {
	if i := t.Index(standard); i >= 0 {
		return i
	}
	for i, c := range t.Columns {
		if StandardName(c) == standard {
			return i
		}
	}
	return -1
}

// Get returns the value of column in row r, or null when the column is absent.
func (t *Table) Get(r int, column string) Value {
	i := t.Index(column)
	if i < 0 {
		return Null()
	}
	return t.Rows[r][i]
}

// AddColumn appends a column filled with v and returns its index. When the
// column already exists its index is returned unchanged.
func (t *Table) AddColumn(name string, v Value) int {
	if i := t.Index(name); i >= 0 {
		return i
	}
	t.Columns = append(t.Columns, name)
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r], v)
	}
	return len(t.Columns) - 1
}

// Append adds a row. Short rows are padded with nulls.
func (t *Table) Append(row Row) {
	for len(row) < len(t.Columns) {
		row = append(row, Null())
	}
	t.Rows = append(t.Rows, row)
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	out := New(t.Name, t.Columns)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = append(Row(nil), r...)
	}
	return out
}

// Filter returns a copy of t holding the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.Name, t.Columns)
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// ColumnKind returns the narrowest kind covering every non-null value of the
// column at index i: all ints are int, an int/float mix is float, all
// timestamps are datetime, anything else is string.
func (t *Table) ColumnKind(i int) Kind {
	kind := KindNull
	for _, r := range t.Rows {
		k := r[i].Kind()
		switch {
		case k == KindNull || k == kind:
		case kind == KindNull:
			kind = k
		case k.Numeric() && kind.Numeric():
			kind = KindFloat
		default:
			return KindString
		}
	}
	return kind
}

// AllNull reports whether the column at index i holds no non-null value.
func (t *Table) AllNull(i int) bool {
	for _, r := range t.Rows {
		if !r[i].IsNull() {
			return false
		}
	}
	return true
}

// StandardName lowercases a column name and replaces spaces with underscores.
func StandardName(column string) string {
	return strings.ReplaceAll(strings.ToLower(column), " ", "_")
}
