// Package ddl provides MSSQL-specific helpers for generating CREATE TABLE
// and DROP TABLE statements from the generic ddl.TableDef model.
//
// The dialect here:
//   - Uses SQL Server-style identifier quoting: [schema].[table], [col].
//   - Guards statements with IF OBJECT_ID(...) since T-SQL has no
//     CREATE TABLE IF NOT EXISTS.
package ddl

import (
	"fmt"
	"strings"

	gddl "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
)

// Dialect renders scripts of the form:
//
//	IF OBJECT_ID(N'[dbo].[table]', N'U') IS NULL
//	BEGIN
//	CREATE TABLE [dbo].[table] (
//	  [col1] TYPE [NOT NULL] [DEFAULT expr],
//	  PRIMARY KEY ([pk1], [pk2])
//	);
//	END;
var Dialect = gddl.Dialect{
	Name:    "mssql",
	Quote:   quoteIdent,
	MapType: MapType,
	Create: func(fqn, body string) string {
		return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\nCREATE TABLE %s (\n  %s\n);\nEND;",
			escapeLiteral(fqn), fqn, body)
	},
	Drop: func(fqn string) string {
		return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NOT NULL DROP TABLE %s;", escapeLiteral(fqn), fqn)
	},
}

// BuildCreateTableSQL returns a guarded T-SQL CREATE TABLE script for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect)
}

// QuoteFQN quotes a possibly schema-qualified table name, e.g.:
//
//	"dbo.Users"   -> [dbo].[Users]
//	"Users"       -> [Users]
func QuoteFQN(fqn string) string { return Dialect.QuoteFQN(fqn) }

// quoteIdent quotes a single identifier segment using bracket syntax,
// escaping any closing brackets.
//
//	name      -> [name]
//	weird]id  -> [weird]]id]
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

func escapeLiteral(s string) string { return strings.ReplaceAll(s, "'", "''") }
