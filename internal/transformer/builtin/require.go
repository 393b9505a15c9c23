package builtin

import (
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
)

// Require removes any row with a null in one of Fields. Fields the table
// does not have are ignored. Drops are counted under "null_<field>" for the
// first null field found.
type Require struct {
	Fields []string
}

func (r Require) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	var idx []int
	var names []string
	for _, f := range r.Fields {
		if i := t.Index(f); i >= 0 {
			idx = append(idx, i)
			names = append(names, f)
		}
	}
	if len(idx) == 0 {
		return t
	}
	return t.Filter(func(row table.Row) bool {
		for k, i := range idx {
			if row[i].IsNull() {
				st.Drop("null_"+names[k], 1)
				return false
			}
		}
		return true
	})
}
