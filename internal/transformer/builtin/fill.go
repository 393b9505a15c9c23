package builtin

import (
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
)

// Sentinels substituted for missing values.
const (
	UnknownText  = "Unknown"
	UnknownEmail = "unknown@email.com"
	UnknownZip   = "00000"
)

// Fill replaces nulls in Column with Value. A missing column is left alone.
type Fill struct {
	Column string
	Value  table.Value
}

func (f Fill) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	i := t.Index(f.Column)
	if i < 0 {
		return t
	}
	n := 0
	for _, r := range t.Rows {
		if r[i].IsNull() {
			r[i] = f.Value
			n++
		}
	}
	st.Fix("filled_"+f.Column, n)
	return t
}

// FillText returns one Fill per column, all with the same text sentinel.
func FillText(value string, columns ...string) transformer.Chain {
	c := make(transformer.Chain, len(columns))
	for i, col := range columns {
		c[i] = Fill{Column: col, Value: table.String(value)}
	}
	return c
}
