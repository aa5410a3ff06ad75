package slotting

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/slotting/pkg/domain/entities"
)

// DemandIndex maps product code to recent outbound quantity for one sales channel
type DemandIndex struct {
	quantities map[entities.ProductCode]decimal.Decimal
	Rows       int
	Dropped    map[string]int
}

// BuildDemandIndex indexes rows whose channel contains channelFilter.
// A later row for the same product replaces the earlier one; quantities are not summed.
func BuildDemandIndex(rows []*entities.SalesRecord, channelFilter string) *DemandIndex {
	index := &DemandIndex{
		quantities: make(map[entities.ProductCode]decimal.Decimal, len(rows)),
		Dropped:    make(map[string]int),
	}

	for _, row := range rows {
		index.Rows++
		if row == nil {
			index.Dropped[entities.DefectMissingProductCode]++
			continue
		}
		if !strings.Contains(row.Channel, channelFilter) {
			index.Dropped[entities.DefectChannelMismatch]++
			continue
		}
		code := entities.NormalizeProductCode(string(row.ProductCode))
		if code == "" {
			index.Dropped[entities.DefectMissingProductCode]++
			continue
		}
		if row.Defect != "" {
			index.Dropped[row.Defect]++
			continue
		}
		index.quantities[code] = row.DeliveredQuantity
	}

	return index
}

// Quantity returns the indexed quantity for a product, or zero when absent
func (d *DemandIndex) Quantity(code entities.ProductCode) decimal.Decimal {
	if q, ok := d.quantities[code]; ok {
		return q
	}
	return decimal.Zero
}

// Lookup returns the indexed quantity and whether the product was present
func (d *DemandIndex) Lookup(code entities.ProductCode) (decimal.Decimal, bool) {
	q, ok := d.quantities[code]
	return q, ok
}

// Len returns the number of indexed products
func (d *DemandIndex) Len() int {
	return len(d.quantities)
}
