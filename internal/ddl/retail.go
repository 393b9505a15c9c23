package ddl

import "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"

// Entity binds a dataset name to the sink table it loads into.
type Entity struct {
	Dataset string
	Table   TableDef
}

// Schema is an ordered list of entities. The order is a valid creation and
// load order: every table comes after the tables it references.
type Schema []Entity

// Reversed returns the entities in drop order.
func (s Schema) Reversed() Schema {
	out := make(Schema, len(s))
	for i, e := range s {
		out[len(s)-1-i] = e
	}
	return out
}

// Lookup returns the entity loaded from dataset.
func (s Schema) Lookup(dataset string) (Entity, bool) {
	for _, e := range s {
		if e.Dataset == dataset {
			return e, true
		}
	}
	return Entity{}, false
}

func pk(name string) ColumnDef { return ColumnDef{Name: name, Type: Int, PrimaryKey: true} }

func intCol(name string) ColumnDef { return ColumnDef{Name: name, Type: Int, Nullable: true} }

func floatCol(name string) ColumnDef { return ColumnDef{Name: name, Type: Float, Nullable: true} }

func dateCol(name string) ColumnDef { return ColumnDef{Name: name, Type: Datetime, Nullable: true} }

func textCol(name string, size int) ColumnDef {
	return ColumnDef{Name: name, Type: Text, Size: size, Nullable: true}
}

func fk(col, ref string) ForeignKey {
	return ForeignKey{Columns: []string{col}, RefTable: ref, RefColumns: []string{col}}
}

// Retail returns the nine-table retail schema in creation order: Brands,
// Categories, Stores, Staffs, Products, Customers, Orders, OrderItems, Stocks.
func Retail() Schema {
	return Schema{
		{table.Brands, TableDef{
			FQN: "Brands",
			Columns: []ColumnDef{
				pk("brand_id"),
				{Name: "brand_name", Type: Text, Size: 255},
			},
		}},
		{table.Categories, TableDef{
			FQN: "Categories",
			Columns: []ColumnDef{
				pk("category_id"),
				{Name: "category_name", Type: Text, Size: 255},
			},
		}},
		{table.Stores, TableDef{
			FQN: "Stores",
			Columns: []ColumnDef{
				pk("store_id"),
				textCol("store_name", 255),
				textCol("phone", 25),
				textCol("email", 255),
				textCol("street", 255),
				textCol("city", 255),
				textCol("state", 10),
				textCol("zip_code", 10),
			},
		}},
		{table.Staffs, TableDef{
			FQN: "Staffs",
			Columns: []ColumnDef{
				pk("staff_id"),
				textCol("first_name", 50),
				textCol("last_name", 50),
				textCol("email", 255),
				textCol("phone", 25),
				intCol("active"),
				intCol("store_id"),
				intCol("manager_id"),
			},
			ForeignKeys: []ForeignKey{fk("store_id", "Stores")},
		}},
		{table.Products, TableDef{
			FQN: "Products",
			Columns: []ColumnDef{
				pk("product_id"),
				{Name: "product_name", Type: Text, Size: 255},
				intCol("brand_id"),
				intCol("category_id"),
				intCol("model_year"),
				floatCol("list_price"),
				textCol("brand_name", 255),
				textCol("category_name", 255),
			},
			ForeignKeys: []ForeignKey{fk("brand_id", "Brands"), fk("category_id", "Categories")},
		}},
		{table.Customers, TableDef{
			FQN: "Customers",
			Columns: []ColumnDef{
				pk("customer_id"),
				textCol("first_name", 255),
				textCol("last_name", 255),
				textCol("phone", 25),
				textCol("email", 255),
				textCol("street", 255),
				textCol("city", 255),
				textCol("state", 10),
				textCol("zip_code", 10),
				textCol("full_name", 510),
			},
		}},
		{table.Orders, TableDef{
			FQN: "Orders",
			Columns: []ColumnDef{
				pk("order_id"),
				intCol("customer_id"),
				intCol("order_status"),
				dateCol("order_date"),
				dateCol("required_date"),
				dateCol("shipped_date"),
				intCol("store_id"),
				intCol("staff_id"),
				floatCol("order_total"),
			},
			ForeignKeys: []ForeignKey{
				fk("customer_id", "Customers"),
				fk("store_id", "Stores"),
				fk("staff_id", "Staffs"),
			},
		}},
		{table.OrderItems, TableDef{
			FQN: "OrderItems",
			Columns: []ColumnDef{
				pk("order_id"),
				pk("item_id"),
				intCol("product_id"),
				intCol("quantity"),
				floatCol("list_price"),
				floatCol("discount"),
				floatCol("total_price"),
			},
			ForeignKeys: []ForeignKey{fk("order_id", "Orders"), fk("product_id", "Products")},
		}},
		{table.Stocks, TableDef{
			FQN: "Stocks",
			Columns: []ColumnDef{
				pk("store_id"),
				pk("product_id"),
				intCol("quantity"),
			},
			ForeignKeys: []ForeignKey{fk("store_id", "Stores"), fk("product_id", "Products")},
		}},
	}
}
