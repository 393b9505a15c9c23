// Package profile runs the data-quality battery over raw retail tables and
// produces a Report. Every check returns a needed flag plus the detail an
// operator needs to see why. Profiling never mutates its input.
package profile

import "time"

// NamingCheck flags column names that are not lowercase-with-underscores.
// Issues holds at most MaxNamingIssues examples.
type NamingCheck struct {
	Needed bool     `yaml:"needed"`
	Issues []string `yaml:"issues"`
}

// DuplicateCheck counts rows that repeat an earlier row exactly.
type DuplicateCheck struct {
	Needed     bool    `yaml:"needed"`
	Count      int     `yaml:"count"`
	Percentage float64 `yaml:"percentage"`
}

// MissingColumn is the null count of one column.
type MissingColumn struct {
	Count      int     `yaml:"count"`
	Percentage float64 `yaml:"percentage"`
}

// MissingCheck lists columns with at least one null.
type MissingCheck struct {
	Needed  bool                     `yaml:"needed"`
	Columns map[string]MissingColumn `yaml:"columns"`
}

// TypeIssue is a column whose kind does not match its name.
type TypeIssue struct {
	Current  string `yaml:"current"`
	Expected string `yaml:"expected"`
}

// TypeCheck holds name-heuristic type mismatches keyed by column.
type TypeCheck struct {
	Needed bool                 `yaml:"needed"`
	Issues map[string]TypeIssue `yaml:"issues"`
}

// QuantityIssues splits invalid order item quantities.
type QuantityIssues struct {
	Negative int `yaml:"negative"`
	Zero     int `yaml:"zero"`
}

// QualityIssues are the table-specific findings. Only the fields that apply
// to the profiled table are set.
type QualityIssues struct {
	NegativePrices        *int            `yaml:"negative_prices,omitempty"`
	InvalidQuantities     *QuantityIssues `yaml:"invalid_quantities,omitempty"`
	InvalidDiscounts      *int            `yaml:"invalid_discounts,omitempty"`
	MultiplePhones        *int            `yaml:"multiple_phones,omitempty"`
	MissingFullNameColumn bool            `yaml:"missing_full_name_column,omitempty"`
}

// QualityCheck is the table-specific check for products, order_items and
// customers.
type QualityCheck struct {
	Needed bool          `yaml:"needed"`
	Issues QualityIssues `yaml:"issues"`
}

// Checks groups the results for one table.
type Checks struct {
	ColumnStandardization NamingCheck    `yaml:"column_standardization"`
	Duplicates            DuplicateCheck `yaml:"duplicates"`
	MissingValues         MissingCheck   `yaml:"missing_values"`
	DataTypes             TypeCheck      `yaml:"data_types"`
	Quality               *QualityCheck  `yaml:"quality,omitempty"`
}

// NeedsCleaning reports whether any cleaning-related check needs action.
func (c Checks) NeedsCleaning() bool {
	return c.Duplicates.Needed || c.MissingValues.Needed || c.DataTypes.Needed ||
		(c.Quality != nil && c.Quality.Needed)
}

// Tally returns how many checks were evaluated and how many passed.
func (c Checks) Tally() (total, passed int) {
	flags := []bool{
		c.ColumnStandardization.Needed,
		c.Duplicates.Needed,
		c.MissingValues.Needed,
		c.DataTypes.Needed,
	}
	if c.Quality != nil {
		flags = append(flags, c.Quality.Needed)
	}
	for _, needed := range flags {
		total++
		if !needed {
			passed++
		}
	}
	return total, passed
}

// Dataset is the profile of one table.
type Dataset struct {
	RowCount    int    `yaml:"row_count"`
	ColumnCount int    `yaml:"column_count"`
	Checks      Checks `yaml:"checks"`
}

// Transformation is a cross-table derivation need.
type Transformation struct {
	Needed         bool     `yaml:"needed"`
	MissingColumns []string `yaml:"missing_columns,omitempty"`
}

// Transformations are evaluated only when their input table was loaded; a
// nil entry was not evaluated.
type Transformations struct {
	EnrichProducts      *Transformation `yaml:"enrich_products,omitempty"`
	CalculateItemTotal  *Transformation `yaml:"calculate_item_total,omitempty"`
	CalculateOrderTotal *Transformation `yaml:"calculate_order_total,omitempty"`
}

// AnyNeeded reports whether at least one evaluated transformation is needed.
func (t Transformations) AnyNeeded() bool {
	for _, tr := range []*Transformation{t.EnrichProducts, t.CalculateItemTotal, t.CalculateOrderTotal} {
		if tr != nil && tr.Needed {
			return true
		}
	}
	return false
}

// Report is the outcome of one profiling run.
type Report struct {
	CheckedAt       time.Time
	Datasets        map[string]Dataset
	Transformations Transformations
}
