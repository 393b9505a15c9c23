package loader

import (
	"errors"
	"fmt"
	"math"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

// ConversionError reports a cell that cannot be written as its column's
// logical type.
type ConversionError struct {
	Table  string
	Column string
	Row    int
	Value  string
	Type   ddl.Type
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s.%s row %d: cannot convert %q to %s", e.Table, e.Column, e.Row+1, e.Value, e.Type)
}

// Rows converts t into driver values aligned with def's columns. Schema
// columns the table lacks load as NULL; table columns the schema lacks are
// ignored. Columns are matched by standardized name.
func Rows(t *table.Table, def ddl.TableDef) ([][]any, error) {
	idx := make([]int, len(def.Columns))
	for j, c := range def.Columns {
		idx[j] = t.Lookup(c.Name)
	}

	out := make([][]any, len(t.Rows))
	for r, row := range t.Rows {
		vals := make([]any, len(def.Columns))
		for j, c := range def.Columns {
			if idx[j] < 0 {
				continue
			}
			v, err := convert(row[idx[j]], c.Type)
			if err != nil {
				return nil, &ConversionError{Table: def.FQN, Column: c.Name, Row: r, Value: row[idx[j]].Text(), Type: c.Type}
			}
			vals[j] = v
		}
		out[r] = vals
	}
	return out, nil
}

var errConvert = errors.New("conversion failed")

func convert(v table.Value, typ ddl.Type) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	switch typ {
	case ddl.Int:
		i, ok := v.AsInt()
		if !ok {
			return nil, errConvert
		}
		return i, nil
	case ddl.Float:
		f, ok := v.AsFloat()
		if !ok {
			return nil, errConvert
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, nil
		}
		return f, nil
	case ddl.Datetime:
		ts, ok := v.AsTime()
		if !ok {
			return nil, errConvert
		}
		return ts, nil
	default:
		return v.Text(), nil
	}
}
