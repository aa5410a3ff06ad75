package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInventoryRecord_Validation(t *testing.T) {
	record, err := NewInventoryRecord("  P100 ", "Paper towel", "CC-01-02-01", decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("Expected valid record creation to succeed: %v", err)
	}
	if record.ProductCode != "P100" {
		t.Errorf("Expected trimmed product code P100, got %q", record.ProductCode)
	}
	if !record.Quantity.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected quantity 10, got %s", record.Quantity)
	}

	testCases := []struct {
		name        string
		productCode string
		location    string
		quantity    decimal.Decimal
		expectError string
	}{
		{"empty product code", " ", "CC-01-02-01", decimal.NewFromInt(1), "product code cannot be empty"},
		{"empty location", "P100", "", decimal.NewFromInt(1), "location cannot be empty"},
		{"negative quantity", "P100", "CC-01-02-01", decimal.NewFromInt(-5), "quantity cannot be negative, got -5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInventoryRecord(tc.productCode, "name", tc.location, tc.quantity)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestSalesRecord_Validation(t *testing.T) {
	record, err := NewSalesRecord("p100", " B2C-online ", decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("Expected valid sales record creation to succeed: %v", err)
	}
	if record.ProductCode != "p100" {
		t.Errorf("Expected case-preserved code p100, got %q", record.ProductCode)
	}
	if record.Channel != "B2C-online" {
		t.Errorf("Expected trimmed channel, got %q", record.Channel)
	}

	if _, err := NewSalesRecord("", "B2C", decimal.Zero); err == nil {
		t.Error("Expected error for empty product code")
	}
	if _, err := NewSalesRecord("P1", "B2C", decimal.NewFromInt(-1)); err == nil {
		t.Error("Expected error for negative delivered quantity")
	}
}

func TestLocationStock_String(t *testing.T) {
	loc, _ := ParseLocation("CC-01-02-01")
	stock := LocationStock{Location: loc, Quantity: decimal.RequireFromString("12.5")}
	if stock.String() != "CC-01-02-01(12.5)" {
		t.Errorf("Unexpected rendering: %s", stock.String())
	}
}
