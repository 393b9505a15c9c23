package builtin

import (
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
)

// FullName derives Target as "<First> <Last>" when the table has both name
// columns but no Target column yet. Rows with a null name part get a null
// Target.
type FullName struct {
	First, Last, Target string
}

func (f FullName) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	if t.Index(f.Target) >= 0 || !t.Has(f.First, f.Last) {
		return t
	}
	fi, li := t.Index(f.First), t.Index(f.Last)
	ti := t.AddColumn(f.Target, table.Null())
	n := 0
	for _, r := range t.Rows {
		if r[fi].IsNull() || r[li].IsNull() {
			continue
		}
		r[ti] = table.String(r[fi].Text() + " " + r[li].Text())
		n++
	}
	st.Fix("derived_"+f.Target, n)
	return t
}
