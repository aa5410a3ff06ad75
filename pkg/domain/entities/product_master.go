package entities

import "github.com/shopspring/decimal"

// ProductMaster holds packaging data for a product
type ProductMaster struct {
	ProductCode ProductCode
	BoxWeight   decimal.Decimal // weight of one full box
	EachPerBox  int64           // units per box
	EachWeight  decimal.Decimal
}

// BoxesFor returns how many boxes are needed to hold quantity units, rounded up.
// ok is false when the master has no box count.
func (m ProductMaster) BoxesFor(quantity decimal.Decimal) (decimal.Decimal, bool) {
	if m.EachPerBox <= 0 {
		return decimal.Zero, false
	}
	return quantity.Div(decimal.NewFromInt(m.EachPerBox)).Ceil(), true
}
