// Package ddl defines a small, backend-agnostic model for SQL DDL and renders
// CREATE TABLE and DROP TABLE statements from it through a Dialect.
//
// Backend packages (e.g., internal/storage/postgres/ddl) supply a Dialect
// with their identifier quoting, type mapping and existence guards. The
// Generic dialect emits names as-is and is meant for tests and previews.
package ddl

import (
	"fmt"
	"strings"
)

// Dialect adapts rendering to one SQL backend.
//
//   - Quote quotes a single identifier segment.
//   - MapType returns the SQL type for a column.
//   - Create wraps the quoted table name and column body into the final
//     statement (e.g., adds IF NOT EXISTS or an OBJECT_ID guard).
//   - Drop renders a statement dropping the quoted table if it exists.
type Dialect struct {
	Name    string
	Quote   func(ident string) string
	MapType func(c ColumnDef) string
	Create  func(fqn, body string) string
	Drop    func(fqn string) string
}

// Generic renders unquoted identifiers, portable type names and a plain
// CREATE TABLE.
var Generic = Dialect{
	Name:  "generic",
	Quote: func(id string) string { return id },
	MapType: func(c ColumnDef) string {
		switch c.Type {
		case Int:
			return "INT"
		case Float:
			return "FLOAT"
		case Datetime:
			return "TIMESTAMP"
		}
		if c.Size > 0 {
			return fmt.Sprintf("VARCHAR(%d)", c.Size)
		}
		return "TEXT"
	},
	Create: func(fqn, body string) string {
		return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", fqn, body)
	},
	Drop: func(fqn string) string {
		return fmt.Sprintf("DROP TABLE IF EXISTS %s;", fqn)
	},
}

// QuoteFQN quotes every dot-separated segment of fqn with d.Quote.
func (d Dialect) QuoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, d.Quote(p))
	}
	return strings.Join(out, ".")
}

// BuildCreateTableSQL renders a CREATE TABLE statement for t in dialect d.
//
// Rules:
//
//   - t.FQN must be non-empty and t must have at least one column.
//
//   - Each column must have a non-empty Name and a Type.
//
//   - A column is rendered as:
//
//     <Name> <SQL type> [NOT NULL] [DEFAULT <Default>]
//
//   - Primary key columns are collected into one PRIMARY KEY (...) clause,
//     followed by one FOREIGN KEY (...) REFERENCES ... clause per foreign key.
func BuildCreateTableSQL(t TableDef, d Dialect) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("%s ddl: table FQN must not be empty", d.Name)
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("%s ddl: at least one column is required", d.Name)
	}

	cols := make([]string, 0, len(t.Columns)+1+len(t.ForeignKeys))
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("%s ddl: column with empty name in table %s", d.Name, fqn)
		}
		if c.Type == "" {
			return "", fmt.Errorf("%s ddl: column %s missing type", d.Name, name)
		}

		var sb strings.Builder
		sb.WriteString(d.Quote(name))
		sb.WriteByte(' ')
		sb.WriteString(d.MapType(c))

		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}
		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, d.Quote(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	for _, fk := range t.ForeignKeys {
		if len(fk.Columns) == 0 || len(fk.Columns) != len(fk.RefColumns) || fk.RefTable == "" {
			return "", fmt.Errorf("%s ddl: invalid foreign key on %s: %v -> %s%v",
				d.Name, fqn, fk.Columns, fk.RefTable, fk.RefColumns)
		}
		cols = append(cols, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)",
			strings.Join(quoteAll(d, fk.Columns), ", "),
			d.QuoteFQN(fk.RefTable),
			strings.Join(quoteAll(d, fk.RefColumns), ", "),
		))
	}

	return d.Create(d.QuoteFQN(fqn), strings.Join(cols, ",\n  ")), nil
}

// BuildDropTableSQL renders a statement dropping fqn if it exists.
func BuildDropTableSQL(fqn string, d Dialect) (string, error) {
	fqn = strings.TrimSpace(fqn)
	if fqn == "" {
		return "", fmt.Errorf("%s ddl: table FQN must not be empty", d.Name)
	}
	return d.Drop(d.QuoteFQN(fqn)), nil
}

func quoteAll(d Dialect, ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = d.Quote(id)
	}
	return out
}
