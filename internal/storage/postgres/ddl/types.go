// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

import (
	"fmt"

	gddl "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
)

// MapType maps a column's logical type into a Postgres SQL type.
//
//	int      -> INTEGER
//	float    -> DOUBLE PRECISION
//	datetime -> TIMESTAMP
//	text     -> VARCHAR(Size), or TEXT when unsized
func MapType(c gddl.ColumnDef) string {
	switch c.Type {
	case gddl.Int:
		return "INTEGER"
	case gddl.Float:
		return "DOUBLE PRECISION"
	case gddl.Datetime:
		return "TIMESTAMP"
	}
	if c.Size > 0 {
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	}
	return "TEXT"
}
