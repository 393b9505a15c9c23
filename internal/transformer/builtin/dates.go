package builtin

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
)

const (
	// MinYear is the first year accepted without repair.
	MinYear = 1900
	// DefaultReferenceYear anchors year repair when none is configured.
	DefaultReferenceYear = 2025
)

// Dates parses Columns into timestamps. Unparseable cells become null and
// are flagged under "unparseable_<column>".
//
// Years below MinYear are flagged under "year_out_of_range_<column>" unless
// Repair is set, in which case they are shifted forward by the multiple of
// 1000 closest to ReferenceYear (at least one), counted under
// "year_repaired_<column>" and logged one warning per cell.
type Dates struct {
	Columns       []string
	Repair        bool
	ReferenceYear int
	Log           logrus.FieldLogger
}

func (d Dates) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	ref := d.ReferenceYear
	if ref == 0 {
		ref = DefaultReferenceYear
	}
	for _, col := range d.Columns {
		i := t.Index(col)
		if i < 0 {
			continue
		}
		var unparseable, outOfRange, repaired int
		for n, r := range t.Rows {
			v := r[i]
			if v.IsNull() {
				continue
			}
			ts, ok := v.AsTime()
			if !ok {
				ts, ok = table.ParseTime(v.Text())
			}
			if !ok {
				r[i] = table.Null()
				unparseable++
				continue
			}
			if ts.Year() < MinYear {
				if !d.Repair {
					outOfRange++
					r[i] = table.Time(ts)
					continue
				}
				fixed := ShiftYear(ts, RepairYear(ts.Year(), ref))
				if d.Log != nil {
					d.Log.WithFields(logrus.Fields{
						"table":  t.Name,
						"column": col,
						"row":    n,
						"from":   table.Time(ts).Text(),
						"to":     table.Time(fixed).Text(),
					}).Warn("repaired out-of-range year")
				}
				ts = fixed
				repaired++
			}
			r[i] = table.Time(ts)
		}
		st.Flag("unparseable_"+col, unparseable)
		st.Flag("year_out_of_range_"+col, outOfRange)
		st.Fix("year_repaired_"+col, repaired)
	}
	return t
}

// RepairYear shifts year forward by k*1000, k >= 1, choosing the k that
// lands closest to ref: 1016 becomes 2016 for any ref below 2516.
func RepairYear(year, ref int) int {
	k := int(math.Round(float64(ref-year) / 1000))
	if k < 1 {
		k = 1
	}
	return year + 1000*k
}

// ShiftYear returns ts with its year replaced. February 29 rolls over to
// March 1 when the target year is not a leap year.
func ShiftYear(ts time.Time, year int) time.Time {
	return time.Date(year, ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), ts.Location())
}
