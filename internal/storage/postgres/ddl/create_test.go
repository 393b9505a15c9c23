package ddl

import (
	"strings"
	"testing"

	gddl "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
)

// TestBuildCreateTableSQL checks quoting, type mapping and constraint
// clauses for a table with a composite key and two foreign keys.
func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	def := gddl.TableDef{
		FQN: "public.OrderItems",
		Columns: []gddl.ColumnDef{
			{Name: "order_id", Type: gddl.Int, PrimaryKey: true},
			{Name: "item_id", Type: gddl.Int, PrimaryKey: true},
			{Name: "product_id", Type: gddl.Int, Nullable: true},
			{Name: "list_price", Type: gddl.Float, Nullable: true},
		},
		ForeignKeys: []gddl.ForeignKey{
			{Columns: []string{"order_id"}, RefTable: "public.Orders", RefColumns: []string{"order_id"}},
			{Columns: []string{"product_id"}, RefTable: "public.Products", RefColumns: []string{"product_id"}},
		},
	}

	got, err := BuildCreateTableSQL(def)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL() error = %v", err)
	}
	want := `CREATE TABLE IF NOT EXISTS "public"."OrderItems" (
  "order_id" INTEGER NOT NULL,
  "item_id" INTEGER NOT NULL,
  "product_id" INTEGER,
  "list_price" DOUBLE PRECISION,
  PRIMARY KEY ("order_id", "item_id"),
  FOREIGN KEY ("order_id") REFERENCES "public"."Orders"("order_id"),
  FOREIGN KEY ("product_id") REFERENCES "public"."Products"("product_id")
);`
	if got != want {
		t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildCreateTableSQLErrors(t *testing.T) {
	t.Parallel()

	_, err := BuildCreateTableSQL(gddl.TableDef{FQN: "t", Columns: []gddl.ColumnDef{{Name: "a"}}})
	if err == nil || !strings.Contains(err.Error(), "postgres ddl: column a missing type") {
		t.Fatalf("BuildCreateTableSQL(untyped) error = %v", err)
	}
}

func TestQuoteFQN(t *testing.T) {
	t.Parallel()

	if got := QuoteFQN(`public.we"ird`); got != `"public"."we""ird"` {
		t.Fatalf("QuoteFQN() = %q", got)
	}
	got, err := gddl.BuildDropTableSQL("Stocks", Dialect)
	if err != nil || got != `DROP TABLE IF EXISTS "Stocks";` {
		t.Fatalf("BuildDropTableSQL() = (%q, %v)", got, err)
	}
}
