package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SalesRecord is one row of historical outbound shipment
type SalesRecord struct {
	ProductCode       ProductCode
	Channel           string
	DeliveredQuantity decimal.Decimal
	Defect            string
}

// NewSalesRecord creates a validated SalesRecord
func NewSalesRecord(productCode, channel string, delivered decimal.Decimal) (*SalesRecord, error) {
	code := NormalizeProductCode(productCode)
	if code == "" {
		return nil, fmt.Errorf("product code cannot be empty")
	}
	if delivered.IsNegative() {
		return nil, fmt.Errorf("delivered quantity cannot be negative, got %s", delivered.String())
	}

	return &SalesRecord{
		ProductCode:       code,
		Channel:           strings.TrimSpace(channel),
		DeliveredQuantity: delivered,
	}, nil
}
