package profile

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

// MaxNamingIssues caps the examples reported by CheckColumnNames.
const MaxNamingIssues = 5

// Run profiles every table in set. checkedAt is recorded on the report and
// is the only time-dependent part of the output.
func Run(set *table.Set, checkedAt time.Time) *Report {
	r := &Report{
		CheckedAt: checkedAt,
		Datasets:  make(map[string]Dataset, set.Len()),
	}
	for _, t := range set.Tables() {
		r.Datasets[t.Name] = Table(t)
	}
	r.Transformations = CheckTransformations(set)
	return r
}

// Table runs the generic checks and, where one applies, the table-specific
// quality check.
func Table(t *table.Table) Dataset {
	return Dataset{
		RowCount:    t.Len(),
		ColumnCount: len(t.Columns),
		Checks: Checks{
			ColumnStandardization: CheckColumnNames(t),
			Duplicates:            CheckDuplicates(t),
			MissingValues:         CheckMissing(t),
			DataTypes:             CheckTypes(t),
			Quality:               CheckQuality(t),
		},
	}
}

// CheckColumnNames flags names with uppercase letters or spaces.
func CheckColumnNames(t *table.Table) NamingCheck {
	c := NamingCheck{Issues: []string{}}
	for _, col := range t.Columns {
		var found []string
		if col != strings.ToLower(col) {
			found = append(found, fmt.Sprintf("Uppercase: '%s'", col))
		}
		if strings.Contains(col, " ") {
			found = append(found, fmt.Sprintf("Spaces: '%s'", col))
		}
		if len(found) > 0 {
			c.Needed = true
		}
		for _, f := range found {
			if len(c.Issues) < MaxNamingIssues {
				c.Issues = append(c.Issues, f)
			}
		}
	}
	return c
}

// CheckDuplicates counts rows equal to an earlier row.
func CheckDuplicates(t *table.Table) DuplicateCheck {
	n := CountDuplicates(t.Rows)
	return DuplicateCheck{
		Needed:     n > 0,
		Count:      n,
		Percentage: percent(n, t.Len()),
	}
}

// CountDuplicates returns how many rows repeat an earlier row.
func CountDuplicates(rows []table.Row) int {
	seen := make(map[uint64][]int, len(rows))
	dups := 0
	for i, r := range rows {
		h := r.Hash()
		dup := false
		for _, j := range seen[h] {
			if rows[j].Equal(r) {
				dup = true
				break
			}
		}
		if dup {
			dups++
			continue
		}
		seen[h] = append(seen[h], i)
	}
	return dups
}

// CheckMissing counts nulls per column.
func CheckMissing(t *table.Table) MissingCheck {
	c := MissingCheck{Columns: map[string]MissingColumn{}}
	for i, col := range t.Columns {
		n := 0
		for _, r := range t.Rows {
			if r[i].IsNull() {
				n++
			}
		}
		if n > 0 {
			c.Columns[col] = MissingColumn{Count: n, Percentage: percent(n, t.Len())}
			c.Needed = true
		}
	}
	return c
}

// CheckTypes applies the naming heuristics: *id is an integer, *price* is
// numeric, *date* is a timestamp.
func CheckTypes(t *table.Table) TypeCheck {
	c := TypeCheck{Issues: map[string]TypeIssue{}}
	for i, col := range t.Columns {
		name := strings.ToLower(col)
		kind := t.ColumnKind(i)
		var expected string
		switch {
		case strings.HasSuffix(name, "id"):
			if kind != table.KindInt {
				expected = table.KindInt.String()
			}
		case strings.Contains(name, "price"):
			if !kind.Numeric() {
				expected = table.KindFloat.String()
			}
		case strings.Contains(name, "date"):
			if kind != table.KindTime {
				expected = table.KindTime.String()
			}
		}
		if expected != "" {
			c.Issues[col] = TypeIssue{Current: kind.String(), Expected: expected}
			c.Needed = true
		}
	}
	return c
}

// CheckQuality returns the table-specific check, or nil for tables that
// have none.
func CheckQuality(t *table.Table) *QualityCheck {
	switch t.Name {
	case table.Products:
		return checkProducts(t)
	case table.OrderItems:
		return checkOrderItems(t)
	case table.Customers:
		return checkCustomers(t)
	}
	return nil
}

func checkProducts(t *table.Table) *QualityCheck {
	c := &QualityCheck{}
	if i := t.Lookup("list_price"); i >= 0 {
		n := countNumeric(t, i, func(f float64) bool { return f < 0 })
		c.Issues.NegativePrices = &n
		c.Needed = n > 0
	}
	return c
}

func checkOrderItems(t *table.Table) *QualityCheck {
	c := &QualityCheck{}
	if i := t.Lookup("quantity"); i >= 0 {
		q := QuantityIssues{
			Negative: countNumeric(t, i, func(f float64) bool { return f < 0 }),
			Zero:     countNumeric(t, i, func(f float64) bool { return f == 0 }),
		}
		c.Issues.InvalidQuantities = &q
		c.Needed = q.Negative > 0 || q.Zero > 0
	}
	if i := t.Lookup("discount"); i >= 0 {
		n := countNumeric(t, i, func(f float64) bool { return f < 0 || f > 1 })
		c.Issues.InvalidDiscounts = &n
		c.Needed = c.Needed || n > 0
	}
	return c
}

func checkCustomers(t *table.Table) *QualityCheck {
	c := &QualityCheck{}
	if i := t.Lookup("phone"); i >= 0 {
		n := 0
		for _, r := range t.Rows {
			if !r[i].IsNull() && strings.Contains(r[i].Text(), ",") {
				n++
			}
		}
		c.Issues.MultiplePhones = &n
		c.Needed = n > 0
	}
	if t.Lookup("full_name") < 0 && t.Lookup("first_name") >= 0 && t.Lookup("last_name") >= 0 {
		c.Issues.MissingFullNameColumn = true
		c.Needed = true
	}
	return c
}

// CheckTransformations looks across tables for derivations that have not
// been applied yet.
func CheckTransformations(set *table.Set) Transformations {
	var tr Transformations
	if p, ok := set.Get(table.Products); ok {
		var missing []string
		for _, col := range []string{"brand_name", "category_name"} {
			if p.Lookup(col) < 0 {
				missing = append(missing, col)
			}
		}
		tr.EnrichProducts = &Transformation{Needed: len(missing) > 0, MissingColumns: missing}
	}
	if oi, ok := set.Get(table.OrderItems); ok {
		tr.CalculateItemTotal = &Transformation{Needed: oi.Lookup("total_price") < 0}
	}
	if o, ok := set.Get(table.Orders); ok {
		tr.CalculateOrderTotal = &Transformation{Needed: o.Lookup("order_total") < 0}
	}
	return tr
}

func countNumeric(t *table.Table, i int, match func(float64) bool) int {
	n := 0
	for _, r := range t.Rows {
		if f, ok := r[i].AsFloat(); ok && match(f) {
			n++
		}
	}
	return n
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(n) / float64(total) * 100)
}

// Round2 rounds to two decimals.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
