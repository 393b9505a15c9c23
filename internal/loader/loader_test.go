package loader_test

import (
	"context"
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/loader"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/storage"
	_ "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/storage/sqlite"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

func build(name string, cols []string, rows ...[]string) *table.Table {
	t := table.New(name, cols)
	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, s := range r {
			row[i] = table.Parse(s)
		}
		t.Append(row)
	}
	return t
}

func openSQLite(t *testing.T) (storage.Repository, *loader.Loader) {
	t.Helper()

	ctx := context.Background()
	repo, err := storage.New(ctx, storage.Config{Kind: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	d, err := storage.DialectFor("sqlite")
	require.NoError(t, err)

	log, _ := logtest.NewNullLogger()
	return repo, loader.New(repo, d, loader.Options{BatchSize: 2, Job: "test"}, log)
}

func retailSet() *table.Set {
	return table.NewSet(
		build(table.Brands, []string{"brand_id", "brand_name"},
			[]string{"1", "Electra"}, []string{"2", "Haro"}, []string{"3", "Trek"}),
		build(table.Categories, []string{"category_id", "category_name"},
			[]string{"6", "Mountain Bikes"}),
		build(table.Stores, []string{"store_id", "store_name", "zip_code"},
			[]string{"1", "Santa Cruz Bikes", "95060"}),
		build(table.Staffs, []string{"staff_id", "first_name", "store_id", "active", "manager_id"},
			[]string{"1", "Fabiola", "1", "1", "0"}),
		build(table.Products, []string{"product_id", "product_name", "brand_id", "category_id", "model_year", "list_price"},
			[]string{"1", "Trek 820 - 2016", "3", "6", "2016", "379.99"},
			[]string{"2", "Heller Shagamaw", "2", "6", "2016", "749.99"}),
		build(table.Customers, []string{"customer_id", "first_name", "last_name"},
			[]string{"1", "Debra", "Burks"}),
		build(table.Orders, []string{"order_id", "customer_id", "order_status", "order_date", "store_id", "staff_id"},
			[]string{"1", "1", "4", "2016-01-01", "1", "1"}),
		build(table.OrderItems, []string{"order_id", "item_id", "product_id", "quantity", "list_price", "discount", "total_price"},
			[]string{"1", "1", "1", "2", "379.99", "0.2", "607.98"},
			[]string{"1", "2", "2", "1", "749.99", "0.07", "697.49"}),
		build(table.Stocks, []string{"store_id", "product_id", "quantity"},
			[]string{"1", "1", "27"}, []string{"1", "2", "5"}),
	)
}

func TestLoad_AllTablesInOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, l := openSQLite(t)

	set := retailSet()
	want := 0
	for _, tbl := range set.Tables() {
		want += tbl.Len()
	}

	res, err := l.Load(ctx, set)
	require.NoError(t, err)
	require.Len(t, res.Tables, 9)

	var order []string
	for _, tl := range res.Tables {
		order = append(order, tl.Table)
		assert.False(t, tl.Skipped, tl.Table)
	}
	assert.Equal(t, []string{"Brands", "Categories", "Stores", "Staffs", "Products", "Customers", "Orders", "OrderItems", "Stocks"}, order)
	assert.EqualValues(t, 14, want)
	assert.EqualValues(t, want, res.Inserted)
	assert.EqualValues(t, 2, res.Tables[0].Batches, "3 brands in batches of 2")

	n, err := repo.CountRows(ctx, "OrderItems")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	v, err := l.Verify(ctx, res)
	require.NoError(t, err)
	assert.True(t, v.OK())
	assert.Len(t, v.Counts, 9)
}

func TestLoad_SkipsAbsentTables(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, l := openSQLite(t)

	set := table.NewSet(
		build(table.Brands, []string{"brand_id", "brand_name"}, []string{"1", "Electra"}),
		build(table.Products, []string{"product_id", "product_name", "brand_id"}, []string{"1", "Townie", "1"}),
	)
	res, err := l.Load(ctx, set)
	require.NoError(t, err)

	skipped := 0
	for _, tl := range res.Tables {
		if tl.Skipped {
			skipped++
		}
	}
	assert.Equal(t, 7, skipped)
	assert.EqualValues(t, 2, res.Inserted)

	v, err := l.Verify(ctx, res)
	require.NoError(t, err)
	assert.Len(t, v.Counts, 2)
	assert.True(t, v.OK())
}

func TestLoad_ReloadReplacesData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, l := openSQLite(t)

	for i := 0; i < 2; i++ {
		_, err := l.Load(ctx, retailSet())
		require.NoError(t, err)
	}
	n, err := repo.CountRows(ctx, "Brands")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestLoad_ConversionErrorAborts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, l := openSQLite(t)

	set := table.NewSet(
		build(table.Brands, []string{"brand_id", "brand_name"}, []string{"1", "Electra"}),
		build(table.Categories, []string{"category_id", "category_name"}, []string{"six", "Mountain Bikes"}),
		build(table.Stores, []string{"store_id", "store_name"}, []string{"1", "Santa Cruz Bikes"}),
	)
	res, err := l.Load(ctx, set)

	var ce *loader.ConversionError
	require.True(t, errors.As(err, &ce), "want *ConversionError, got %v", err)
	assert.Contains(t, err.Error(), "load Categories")
	require.Len(t, res.Tables, 2)
	assert.EqualValues(t, 1, res.Tables[0].Inserted)

	n, err := repo.CountRows(ctx, "Stores")
	require.NoError(t, err)
	assert.Zero(t, n, "loads after the failure must not run")
}

func TestLoad_ForeignKeyViolationAborts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, l := openSQLite(t)

	set := table.NewSet(
		build(table.Brands, []string{"brand_id", "brand_name"}, []string{"1", "Electra"}),
		build(table.Products, []string{"product_id", "product_name", "brand_id"}, []string{"1", "Orphan", "99"}),
	)
	res, err := l.Load(ctx, set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load Products")
	assert.EqualValues(t, 1, res.Inserted)
}

func TestLoad_NoTables(t *testing.T) {
	t.Parallel()

	_, l := openSQLite(t)
	_, err := l.Load(context.Background(), table.NewSet())
	require.Error(t, err)
}

// countRepo serves CountRows from a fixed map and ignores writes.
type countRepo struct {
	counts map[string]int64
}

func (c *countRepo) CopyFrom(_ context.Context, _ string, _ []string, rows [][]any) (int64, error) {
	return int64(len(rows)), nil
}
func (c *countRepo) Exec(context.Context, string) error { return nil }
func (c *countRepo) CountRows(_ context.Context, tbl string) (int64, error) {
	n, ok := c.counts[tbl]
	if !ok {
		return 0, errors.New("no such table")
	}
	return n, nil
}
func (c *countRepo) Close() {}

func TestVerify_ReportsMismatch(t *testing.T) {
	t.Parallel()

	log, hook := logtest.NewNullLogger()
	repo := &countRepo{counts: map[string]int64{"Brands": 2, "Products": 5}}
	l := loader.New(repo, storageDialect(t), loader.Options{}, log)

	res := loader.Result{Tables: []loader.TableLoad{
		{Table: "Brands", Rows: 2},
		{Table: "Products", Rows: 4},
		{Table: "Stocks", Skipped: true},
	}}
	v, err := l.Verify(context.Background(), res)
	require.NoError(t, err)
	assert.False(t, v.OK())
	assert.Equal(t, []loader.Count{{Table: "Products", Expected: 4, Actual: 5}}, v.Mismatches())
	assert.Equal(t, "row count mismatch", hook.LastEntry().Message)

	_, err = l.Verify(context.Background(), loader.Result{Tables: []loader.TableLoad{{Table: "Missing"}}})
	require.Error(t, err)
}

func storageDialect(t *testing.T) ddl.Dialect {
	t.Helper()
	d, err := storage.DialectFor("sqlite")
	require.NoError(t, err)
	return d
}
