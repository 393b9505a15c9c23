package builtin

import (
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
)

// Coerce converts columns to int, float or string. Nulls stay null. A row
// holding a value that cannot be converted is dropped and counted under
// "invalid_<column>" for the first such column in table order. Columns the
// table does not have are ignored.
type Coerce struct {
	Types map[string]table.Kind
}

// Ints is a Coerce of every column to int.
func Ints(columns ...string) Coerce { return of(table.KindInt, columns) }

// Floats is a Coerce of every column to float.
func Floats(columns ...string) Coerce { return of(table.KindFloat, columns) }

func of(k table.Kind, columns []string) Coerce {
	c := Coerce{Types: make(map[string]table.Kind, len(columns))}
	for _, col := range columns {
		c.Types[col] = k
	}
	return c
}

func (c Coerce) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	if len(c.Types) == 0 {
		return t
	}
	type target struct {
		i    int
		name string
		kind table.Kind
	}
	var targets []target
	for i, col := range t.Columns {
		if k, ok := c.Types[col]; ok {
			targets = append(targets, target{i: i, name: col, kind: k})
		}
	}
	if len(targets) == 0 {
		return t
	}

	return t.Filter(func(r table.Row) bool {
		for _, tg := range targets {
			v, ok := convert(r[tg.i], tg.kind)
			if !ok {
				st.Drop("invalid_"+tg.name, 1)
				return false
			}
			r[tg.i] = v
		}
		return true
	})
}

func convert(v table.Value, k table.Kind) (table.Value, bool) {
	if v.IsNull() || v.Kind() == k {
		return v, true
	}
	switch k {
	case table.KindInt:
		i, ok := v.AsInt()
		return table.Int(i), ok
	case table.KindFloat:
		f, ok := v.AsFloat()
		return table.Float(f), ok
	case table.KindTime:
		tm, ok := v.AsTime()
		return table.Time(tm), ok
	case table.KindString:
		return table.String(v.Text()), true
	}
	return v, true
}
