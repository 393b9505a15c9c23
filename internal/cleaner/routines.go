package cleaner

import (
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer/builtin"
)

// Reasons reported by the routines in addition to the builtin ones.
const (
	ReasonNegativePrice   = "negative_price"
	ReasonNonPositiveQty  = "non_positive_quantity"
	ReasonNegativeQty     = "negative_quantity"
	ReasonDiscountOutside = "discount_out_of_range"
	ReasonNullOrderDates  = "null_order_or_required_date"
)

const (
	orderDate    = "order_date"
	requiredDate = "required_date"
)

func (c *Cleaner) routine(name string) (transformer.Chain, bool) {
	switch name {
	case table.Brands:
		return lookupTable("brand_id", "brand_name"), true
	case table.Categories:
		return lookupTable("category_id", "category_name"), true
	case table.Products:
		return products(), true
	case table.Customers:
		return customers(), true
	case table.Orders:
		return c.orders(), true
	case table.OrderItems:
		return orderItems(), true
	case table.Staffs:
		return staffs(), true
	case table.Stores:
		return stores(), true
	case table.Stocks:
		return stocks(), true
	}
	return nil, false
}

func base(required ...string) transformer.Chain {
	return transformer.Chain{
		builtin.Normalize{},
		builtin.DeDup{},
		builtin.Require{Fields: required},
	}
}

func lookupTable(id, name string) transformer.Chain {
	return append(base(id),
		builtin.Ints(id),
		builtin.FillText(builtin.UnknownText, name),
	)
}

func products() transformer.Chain {
	return append(base("product_id", "product_name"),
		builtin.Fill{Column: "model_year", Value: table.Int(0)},
		builtin.Ints("model_year", "product_id", "brand_id", "category_id"),
		builtin.Floats("list_price"),
		builtin.Filter{Column: "list_price", Reject: builtin.Below(0), Reason: ReasonNegativePrice},
	)
}

func customers() transformer.Chain {
	return append(base("customer_id"),
		builtin.FillText(builtin.UnknownText, "first_name", "last_name", "phone", "street", "city", "state"),
		builtin.FillText(builtin.UnknownEmail, "email"),
		builtin.FillText(builtin.UnknownZip, "zip_code"),
		builtin.Ints("customer_id"),
		builtin.FullName{First: "first_name", Last: "last_name", Target: "full_name"},
		builtin.Phone{Column: "phone"},
	)
}

func (c *Cleaner) orders() transformer.Chain {
	return append(base("order_id", "customer_id"),
		builtin.Ints("order_id", "customer_id", "order_status", "store_id", "staff_id"),
		builtin.Dates{
			Columns:       []string{orderDate, requiredDate, "shipped_date"},
			Repair:        c.opts.RepairYears,
			ReferenceYear: c.opts.ReferenceYear,
			Log:           c.log,
		},
		builtin.FlagNull{Columns: []string{orderDate, requiredDate}, Reason: ReasonNullOrderDates},
	)
}

func orderItems() transformer.Chain {
	return append(base("order_id", "product_id", "item_id", "quantity", "list_price", "discount"),
		builtin.Ints("order_id", "item_id", "product_id", "quantity"),
		builtin.Floats("list_price", "discount"),
		builtin.Filter{Column: "quantity", Reject: builtin.AtMost(0), Reason: ReasonNonPositiveQty},
		builtin.Flag{Column: "discount", Match: builtin.Outside(0, 1), Reason: ReasonDiscountOutside},
	)
}

func staffs() transformer.Chain {
	return append(base("staff_id"),
		builtin.FillText(builtin.UnknownText, "first_name", "last_name", "phone"),
		builtin.FillText(builtin.UnknownEmail, "email"),
		builtin.Fill{Column: "manager_id", Value: table.Int(0)},
		builtin.Require{Fields: []string{"store_id", "active"}},
		builtin.Ints("staff_id", "store_id", "active", "manager_id"),
		builtin.Phone{Column: "phone"},
	)
}

func stores() transformer.Chain {
	return append(base("store_id"),
		builtin.FillText(builtin.UnknownText, "store_name", "phone", "street", "city", "state"),
		builtin.FillText(builtin.UnknownEmail, "email"),
		builtin.FillText(builtin.UnknownZip, "zip_code"),
		builtin.Ints("store_id"),
		builtin.Phone{Column: "phone"},
	)
}

func stocks() transformer.Chain {
	return append(base("store_id", "product_id"),
		builtin.Ints("store_id", "product_id"),
		builtin.Fill{Column: "quantity", Value: table.Int(0)},
		builtin.Ints("quantity"),
		builtin.Filter{Column: "quantity", Reject: builtin.Below(0), Reason: ReasonNegativeQty},
	)
}
