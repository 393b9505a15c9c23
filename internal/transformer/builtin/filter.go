package builtin

import (
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
)

// Predicate matches a numeric cell.
type Predicate func(float64) bool

// Below matches values strictly less than x.
func Below(x float64) Predicate { return func(f float64) bool { return f < x } }

// AtMost matches values less than or equal to x.
func AtMost(x float64) Predicate { return func(f float64) bool { return f <= x } }

// Outside matches values not in [lo, hi].
func Outside(lo, hi float64) Predicate { return func(f float64) bool { return f < lo || f > hi } }

// Filter drops rows whose numeric value in Column matches Reject. Nulls and
// non-numeric cells are kept; Coerce handles those.
type Filter struct {
	Column string
	Reject Predicate
	Reason string
}

func (f Filter) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	i := t.Index(f.Column)
	if i < 0 {
		return t
	}
	return t.Filter(func(r table.Row) bool {
		if v, ok := r[i].AsFloat(); ok && f.Reject(v) {
			st.Drop(f.Reason, 1)
			return false
		}
		return true
	})
}

// Flag counts rows whose numeric value in Column matches Match without
// removing them.
type Flag struct {
	Column string
	Match  Predicate
	Reason string
}

func (f Flag) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	i := t.Index(f.Column)
	if i < 0 {
		return t
	}
	n := 0
	for _, r := range t.Rows {
		if v, ok := r[i].AsFloat(); ok && f.Match(v) {
			n++
		}
	}
	st.Flag(f.Reason, n)
	return t
}

// FlagNull counts rows with a null in any of Columns.
type FlagNull struct {
	Columns []string
	Reason  string
}

func (f FlagNull) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	var idx []int
	for _, c := range f.Columns {
		if i := t.Index(c); i >= 0 {
			idx = append(idx, i)
		}
	}
	n := 0
	for _, r := range t.Rows {
		for _, i := range idx {
			if r[i].IsNull() {
				n++
				break
			}
		}
	}
	st.Flag(f.Reason, n)
	return t
}
