package slotting

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/slotting/pkg/domain/entities"
)

// ApplyProductMasters fills BoxWeight and BoxesOnHand on records whose product
// has a master entry and returns how many records were enriched. Records
// without a master entry are left untouched.
func ApplyProductMasters(records []entities.RankedProduct, masters map[entities.ProductCode]*entities.ProductMaster) int {
	enriched := 0
	for i := range records {
		master, ok := masters[records[i].ProductCode]
		if !ok || master == nil {
			continue
		}
		if !master.BoxWeight.IsZero() {
			records[i].BoxWeight = decimal.NewNullDecimal(master.BoxWeight)
		}
		if boxes, ok := master.BoxesFor(records[i].TotalQuantity); ok {
			records[i].BoxesOnHand = decimal.NewNullDecimal(boxes)
		}
		enriched++
	}
	return enriched
}

// ProductCodes returns the distinct product codes across the classification, in first-seen order
func (c *Classification) ProductCodes() []entities.ProductCode {
	seen := make(map[entities.ProductCode]struct{})
	var codes []entities.ProductCode
	for _, category := range entities.Categories {
		for _, r := range c.Category(category) {
			if _, ok := seen[r.ProductCode]; ok {
				continue
			}
			seen[r.ProductCode] = struct{}{}
			codes = append(codes, r.ProductCode)
		}
	}
	return codes
}
