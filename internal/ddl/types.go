package ddl

// Type is the logical type of a column. Backends map it to a concrete SQL
// type through their Dialect.
type Type string

const (
	Int      Type = "int"
	Float    Type = "float"
	Text     Type = "text"
	Datetime Type = "datetime"
)

// ColumnDef describes a single column in a table definition.
//
// Fields:
//   - Name: column name (unquoted; quoting happens at render time)
//   - Type: logical type, mapped by the dialect
//   - Size: maximum length for Text columns; 0 means unbounded
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key
//   - Default: raw default expression (e.g., 0, 'Unknown')
type ColumnDef struct {
	Name       string
	Type       Type
	Size       int
	Nullable   bool
	PrimaryKey bool
	Default    string
}

// ForeignKey references RefColumns of RefTable from Columns of the owning
// table.
type ForeignKey struct {
	Columns    []string
	RefTable   string
	RefColumns []string
}

// TableDef holds the table name (FQN, dotted form allowed), its ordered
// columns and its foreign keys.
type TableDef struct {
	FQN         string
	Columns     []ColumnDef
	ForeignKeys []ForeignKey
}

// ColumnNames returns the column names in definition order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// PrimaryKey returns the primary key column names in definition order.
func (t TableDef) PrimaryKey() []string {
	var out []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			out = append(out, c.Name)
		}
	}
	return out
}
