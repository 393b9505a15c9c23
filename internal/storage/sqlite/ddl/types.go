// Package ddl contains SQLite-specific helpers for generating DDL.
//
// SQLite uses dynamic typing, so logical types map to storage affinities:
// integers to INTEGER, floats to REAL and everything else, timestamps
// included, to TEXT (ISO-8601). Text sizes are not enforced.
package ddl

import gddl "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"

// MapType maps a column's logical type to a SQLite column type.
func MapType(c gddl.ColumnDef) string {
	switch c.Type {
	case gddl.Int:
		return "INTEGER"
	case gddl.Float:
		return "REAL"
	default:
		return "TEXT"
	}
}
