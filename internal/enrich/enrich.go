// Package enrich derives the cross-table columns: brand and category names
// on products, line totals on order items and order totals on orders. Every
// derivation checks its own input columns and never reads the clock.
package enrich

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

// ErrMissingInput is returned when a derivation lacks a table or column it
// needs.
var ErrMissingInput = errors.New("missing input")

// Names of the derived columns.
const (
	BrandName    = "brand_name"
	CategoryName = "category_name"
	TotalPrice   = "total_price"
	OrderTotal   = "order_total"
)

const (
	brandID    = "brand_id"
	categoryID = "category_id"
	orderID    = "order_id"
	quantity   = "quantity"
	listPrice  = "list_price"
	discount   = "discount"
)

// EnrichProducts left-joins brand and category names onto products by id.
// A name column that already holds a non-null value is kept; an absent or
// all-null one is replaced by the joined value. Either lookup table may be
// nil, in which case that side is not joined. The input is not modified.
func EnrichProducts(products, brands, categories *table.Table) (*table.Table, error) {
	if products == nil {
		return nil, fmt.Errorf("%w: products table", ErrMissingInput)
	}
	out := products.Clone()
	usable := 0
	for _, j := range []struct {
		lookup   *table.Table
		key, val string
	}{
		{brands, brandID, BrandName},
		{categories, categoryID, CategoryName},
	} {
		if j.lookup == nil || !j.lookup.Has(j.key, j.val) || !out.Has(j.key) {
			continue
		}
		usable++
		if i := out.Index(j.val); i >= 0 && !out.AllNull(i) {
			continue
		}
		join(out, j.lookup, j.key, j.val)
	}
	if usable == 0 {
		return nil, fmt.Errorf("%w: no lookup table joinable on brand_id or category_id", ErrMissingInput)
	}
	return out, nil
}

// join sets column val on t from lookup, matching key by rendered text. The
// first lookup row for a key wins.
func join(t, lookup *table.Table, key, val string) {
	ki, vi := lookup.Index(key), lookup.Index(val)
	names := make(map[string]table.Value, lookup.Len())
	for _, r := range lookup.Rows {
		if r[ki].IsNull() {
			continue
		}
		k := r[ki].Text()
		if _, seen := names[k]; !seen {
			names[k] = r[vi]
		}
	}

	dst := t.AddColumn(val, table.Null())
	src := t.Index(key)
	for _, r := range t.Rows {
		v := table.Null()
		if !r[src].IsNull() {
			if name, ok := names[r[src].Text()]; ok {
				v = name
			}
		}
		r[dst] = v
	}
}

// LineTotals adds total_price = quantity * list_price * (1 - discount) to
// order items. It reports false and returns items unchanged when the column
// already exists. Rows with a null or non-numeric factor get a null total.
func LineTotals(items *table.Table) (*table.Table, bool, error) {
	if items == nil {
		return nil, false, fmt.Errorf("%w: order_items table", ErrMissingInput)
	}
	if items.Has(TotalPrice) {
		return items, false, nil
	}
	if missing := missingColumns(items, quantity, listPrice, discount); len(missing) > 0 {
		return nil, false, fmt.Errorf("%w: order_items lacks %s", ErrMissingInput, strings.Join(missing, ", "))
	}

	out := items.Clone()
	qi, pi, di := out.Index(quantity), out.Index(listPrice), out.Index(discount)
	ti := out.AddColumn(TotalPrice, table.Null())
	for _, r := range out.Rows {
		q, ok1 := r[qi].AsFloat()
		p, ok2 := r[pi].AsFloat()
		d, ok3 := r[di].AsFloat()
		if ok1 && ok2 && ok3 {
			r[ti] = table.Float(q * p * (1 - d))
		}
	}
	return out, true, nil
}

// OrderTotals sums total_price per order_id and merges it onto orders as
// order_total. An existing order_total with any non-null value is kept.
// Remaining nulls, including orders without items, become 0.
func OrderTotals(orders, items *table.Table) (*table.Table, error) {
	if orders == nil || items == nil {
		return nil, fmt.Errorf("%w: orders and order_items tables", ErrMissingInput)
	}
	if !orders.Has(orderID) {
		return nil, fmt.Errorf("%w: orders lacks order_id", ErrMissingInput)
	}
	if missing := missingColumns(items, orderID, TotalPrice); len(missing) > 0 {
		return nil, fmt.Errorf("%w: order_items lacks %s", ErrMissingInput, strings.Join(missing, ", "))
	}

	oi, ti := items.Index(orderID), items.Index(TotalPrice)
	sums := make(map[string]float64, items.Len())
	for _, r := range items.Rows {
		if r[oi].IsNull() {
			continue
		}
		if f, ok := r[ti].AsFloat(); ok {
			sums[r[oi].Text()] += f
		}
	}

	out := orders.Clone()
	keep := false
	if i := out.Index(OrderTotal); i >= 0 && !out.AllNull(i) {
		keep = true
	}
	dst := out.AddColumn(OrderTotal, table.Null())
	key := out.Index(orderID)
	for _, r := range out.Rows {
		if keep {
			if r[dst].IsNull() {
				r[dst] = table.Float(0)
			}
			continue
		}
		r[dst] = table.Float(sums[r[key].Text()])
	}
	return out, nil
}

func missingColumns(t *table.Table, cols ...string) []string {
	var out []string
	for _, c := range cols {
		if !t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
