package entities

import "github.com/shopspring/decimal"

// MinColumnSentinel is larger than any real column so an empty aggregate never wins a lowest-column comparison
const MinColumnSentinel = 99

// ProductAggregate is all pickable stock of one product, joined with its recent demand
type ProductAggregate struct {
	ProductCode         ProductCode
	ProductName         string
	TotalQuantity       decimal.Decimal
	MinColumn           int
	Locations           []LocationStock
	EasyAccessLocations []LocationStock
	SalesQuantity       decimal.Decimal
	Sequence            int // source row of first appearance; stable tie-break
}

// NewProductAggregate starts an empty aggregate for a product first seen at row sequence
func NewProductAggregate(code ProductCode, name string, sequence int) ProductAggregate {
	return ProductAggregate{
		ProductCode:   code,
		ProductName:   name,
		TotalQuantity: decimal.Zero,
		MinColumn:     MinColumnSentinel,
		SalesQuantity: decimal.Zero,
		Sequence:      sequence,
	}
}

// WithStock returns a copy of the aggregate with stock appended
func (p ProductAggregate) WithStock(stock LocationStock, easyAccess bool) ProductAggregate {
	p.Locations = append(cloneStock(p.Locations), stock)
	if easyAccess {
		p.EasyAccessLocations = append(cloneStock(p.EasyAccessLocations), stock)
	}
	p.TotalQuantity = p.TotalQuantity.Add(stock.Quantity)
	if column := stock.Location.ColumnIndex(); column < p.MinColumn {
		p.MinColumn = column
	}
	return p
}

// WithSales returns a copy of the aggregate carrying the given demand
func (p ProductAggregate) WithSales(quantity decimal.Decimal) ProductAggregate {
	p.SalesQuantity = quantity
	return p
}

// HasEasyAccess reports whether any of the product's locations is easy to reach
func (p ProductAggregate) HasEasyAccess() bool {
	return len(p.EasyAccessLocations) > 0
}

func cloneStock(stock []LocationStock) []LocationStock {
	if stock == nil {
		return nil
	}
	out := make([]LocationStock, len(stock), len(stock)+1)
	copy(out, stock)
	return out
}
