// Package ddl contains MSSQL-specific helpers for generating DDL.
package ddl

import (
	"fmt"

	gddl "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
)

// MapType maps a column's logical type into a SQL Server column type. Text
// columns become NVARCHAR(Size), or NVARCHAR(MAX) when unsized. Datetime is
// DATETIME2 so years before 1753 still load.
func MapType(c gddl.ColumnDef) string {
	switch c.Type {
	case gddl.Int:
		return "INT"
	case gddl.Float:
		return "FLOAT"
	case gddl.Datetime:
		return "DATETIME2"
	}
	if c.Size > 0 && c.Size <= 4000 {
		return fmt.Sprintf("NVARCHAR(%d)", c.Size)
	}
	return "NVARCHAR(MAX)"
}
