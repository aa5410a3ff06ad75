// Package xlsx loads slotting data from Excel workbooks.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/infrastructure/repositories/sheet"
)

// Loader reads one worksheet per workbook. An empty sheet name selects the first sheet.
type Loader struct {
	sheetName string
}

// NewLoader creates a new workbook loader
func NewLoader(sheetName string) *Loader {
	return &Loader{sheetName: sheetName}
}

// LoadInventory loads inventory rows from a workbook
func (l *Loader) LoadInventory(filename string) ([]*entities.InventoryRecord, error) {
	table, err := l.readTable(filename, "inventory")
	if err != nil {
		return nil, err
	}
	records, err := sheet.ParseInventory(table)
	if err != nil {
		return nil, fmt.Errorf("inventory workbook %s: %w", filename, err)
	}
	return records, nil
}

// LoadSales loads sales rows from a workbook
func (l *Loader) LoadSales(filename string) ([]*entities.SalesRecord, error) {
	table, err := l.readTable(filename, "sales")
	if err != nil {
		return nil, err
	}
	records, err := sheet.ParseSales(table)
	if err != nil {
		return nil, fmt.Errorf("sales workbook %s: %w", filename, err)
	}
	return records, nil
}

// LoadProductMasters loads product master entries from a workbook
func (l *Loader) LoadProductMasters(filename string) ([]*entities.ProductMaster, error) {
	table, err := l.readTable(filename, "product master")
	if err != nil {
		return nil, err
	}
	masters, err := sheet.ParseProductMasters(table)
	if err != nil {
		return nil, fmt.Errorf("product master workbook %s: %w", filename, err)
	}
	return masters, nil
}

func (l *Loader) readTable(filename, kind string) (*sheet.Table, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s workbook %s: %w", kind, filename, err)
	}
	defer f.Close()

	name := l.sheetName
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s workbook %s has no sheets", kind, filename)
		}
		name = sheets[0]
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s workbook: %w", name, kind, err)
	}

	table, err := sheet.NewTable(rows)
	if err != nil {
		return nil, fmt.Errorf("%s workbook %s: %w", kind, filename, err)
	}
	return table, nil
}
