// Package ddl provides Postgres-specific helpers for generating CREATE TABLE
// and DROP TABLE statements from the generic ddl.TableDef model. Identifiers
// are double-quoted, so mixed-case names such as "OrderItems" are preserved.
package ddl

import (
	"fmt"
	"strings"

	gddl "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
)

// Dialect renders CREATE TABLE IF NOT EXISTS / DROP TABLE IF EXISTS with
// double-quoted identifiers.
var Dialect = gddl.Dialect{
	Name:    "postgres",
	Quote:   quoteIdent,
	MapType: MapType,
	Create: func(fqn, body string) string {
		return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);", fqn, body)
	},
	Drop: func(fqn string) string {
		return fmt.Sprintf("DROP TABLE IF EXISTS %s;", fqn)
	},
}

// BuildCreateTableSQL returns a Postgres CREATE TABLE statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect)
}

// QuoteFQN quotes a possibly schema-qualified name like public.orders to
// "public"."orders".
func QuoteFQN(fqn string) string { return Dialect.QuoteFQN(fqn) }

func quoteIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }
