package ddl

import (
	"fmt"
	"strings"

	gddl "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
)

// Dialect renders double-quoted identifiers and guards statements with
// IF NOT EXISTS / IF EXISTS:
//
//	CREATE TABLE IF NOT EXISTS "table" (
//	  "col1" TYPE [NOT NULL] [DEFAULT expr],
//	  PRIMARY KEY ("pk1", "pk2"),
//	  FOREIGN KEY ("fk") REFERENCES "parent"("fk")
//	);
var Dialect = gddl.Dialect{
	Name:    "sqlite",
	Quote:   quoteIdent,
	MapType: MapType,
	Create: func(fqn, body string) string {
		return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);", fqn, body)
	},
	Drop: func(fqn string) string {
		return fmt.Sprintf("DROP TABLE IF EXISTS %s;", fqn)
	},
}

// BuildCreateTableSQL returns a SQLite CREATE TABLE statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect)
}

// QuoteFQN quotes each dot-separated segment of a table name, e.g.
// main.events -> "main"."events".
func QuoteFQN(fqn string) string { return Dialect.QuoteFQN(fqn) }

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
