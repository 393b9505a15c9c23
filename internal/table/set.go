package table

// Retail table names.
const (
	Brands     = "brands"
	Categories = "categories"
	Products   = "products"
	Customers  = "customers"
	Orders     = "orders"
	OrderItems = "order_items"
	Staffs     = "staffs"
	Stores     = "stores"
	Stocks     = "stocks"
)

// Names lists the retail tables in the order they are read and reported.
var Names = []string{Brands, Categories, Products, Customers, Orders, OrderItems, Staffs, Stores, Stocks}

// Set is a collection of tables keyed by name. Iteration follows Names, then
// any extra tables in insertion order.
type Set struct {
	byName map[string]*Table
	extra  []string
}

// NewSet returns a set holding the given tables.
func NewSet(tables ...*Table) *Set {
	s := &Set{byName: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		s.Put(t)
	}
	return s
}

// Put adds or replaces a table.
func (s *Set) Put(t *Table) {
	if _, ok := s.byName[t.Name]; !ok && !isRetail(t.Name) {
		s.extra = append(s.extra, t.Name)
	}
	s.byName[t.Name] = t
}

// Get returns the named table.
func (s *Set) Get(name string) (*Table, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Len returns the number of tables in the set.
func (s *Set) Len() int { return len(s.byName) }

// Names returns the names of the tables present, in stable order.
func (s *Set) Names() []string {
	out := make([]string, 0, len(s.byName))
	for _, n := range Names {
		if _, ok := s.byName[n]; ok {
			out = append(out, n)
		}
	}
	return append(out, s.extra...)
}

// Tables returns the tables present, in the order of Names.
func (s *Set) Tables() []*Table {
	names := s.Names()
	out := make([]*Table, len(names))
	for i, n := range names {
		out[i] = s.byName[n]
	}
	return out
}

func isRetail(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}
