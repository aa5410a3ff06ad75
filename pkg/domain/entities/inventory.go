package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductCode is the primary join key between inventory, sales and product master data
type ProductCode string

// NormalizeProductCode trims surrounding whitespace; case is preserved
func NormalizeProductCode(raw string) ProductCode {
	return ProductCode(strings.TrimSpace(raw))
}

// Row defects recorded by row sources when a cell cannot be interpreted.
// A row carrying a defect is excluded from aggregation and counted.
const (
	DefectMissingProductCode = "missing_product_code"
	DefectZoneMismatch       = "zone_mismatch"
	DefectInvalidLocation    = "invalid_location"
	DefectInvalidQuantity    = "invalid_quantity"
	DefectChannelMismatch    = "channel_mismatch"
)

// InventoryRecord is one row of on-hand stock at a single location
type InventoryRecord struct {
	ProductCode ProductCode
	ProductName string
	LocationRaw string
	Quantity    decimal.Decimal
	Defect      string // set by row sources when a cell could not be parsed
}

// NewInventoryRecord creates a validated InventoryRecord
func NewInventoryRecord(productCode, productName, location string, quantity decimal.Decimal) (*InventoryRecord, error) {
	code := NormalizeProductCode(productCode)
	if code == "" {
		return nil, fmt.Errorf("product code cannot be empty")
	}
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity.String())
	}

	return &InventoryRecord{
		ProductCode: code,
		ProductName: strings.TrimSpace(productName),
		LocationRaw: strings.TrimSpace(location),
		Quantity:    quantity,
	}, nil
}

// LocationStock is the quantity of a product held at one location
type LocationStock struct {
	Location LocationCode
	Quantity decimal.Decimal
	Sequence int // index of the source row
}

// String renders the stock as "location(quantity)"
func (s LocationStock) String() string {
	return fmt.Sprintf("%s(%s)", s.Location.Raw, s.Quantity.String())
}
