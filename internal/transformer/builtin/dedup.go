// Package builtin contains the reusable cleaning rules the per-table
// routines are composed from.
//
// DeDup collapses exact duplicate rows: a row is dropped when every cell
// equals the same cell of an earlier row. The earliest occurrence survives
// and survivors keep their relative order. Rows are bucketed by their xxh3
// hash and compared cell by cell within a bucket.
package builtin

import (
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
)

// ReasonDuplicate is the Stats key for rows removed by DeDup.
const ReasonDuplicate = "duplicate"

// DeDup removes exact duplicate rows, keeping the first.
type DeDup struct{}

func (DeDup) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	if t.Len() == 0 {
		return t
	}

	buckets := make(map[uint64][]int, t.Len())
	keep := make([]int, 0, t.Len())
	for i, r := range t.Rows {
		h := r.Hash()
		dup := false
		for _, j := range buckets[h] {
			if t.Rows[j].Equal(r) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		buckets[h] = append(buckets[h], i)
		keep = append(keep, i)
	}

	if len(keep) == t.Len() {
		return t
	}

	out := table.New(t.Name, t.Columns)
	out.Rows = make([]table.Row, 0, len(keep))
	for _, i := range keep {
		out.Rows = append(out.Rows, t.Rows[i])
	}
	st.Drop(ReasonDuplicate, t.Len()-out.Len())
	return out
}
