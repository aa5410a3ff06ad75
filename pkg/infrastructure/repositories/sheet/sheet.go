// Package sheet maps tabular rows (from CSV files or workbooks) onto domain records.
//
// Columns are located by header name, so exports with extra or reordered
// columns load without changes. Cells that cannot be interpreted mark the
// record with a defect instead of failing the load; only a missing required
// header is a structural error.
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/slotting/pkg/domain/entities"
)

// ErrMissingColumn is returned when a required header is absent
var ErrMissingColumn = errors.New("missing required column")

// Table is a header row followed by data rows
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable splits raw rows into header and data. Leading blank rows are skipped.
func NewTable(rows [][]string) (*Table, error) {
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		return &Table{Header: row, Rows: rows[i+1:]}, nil
	}
	return nil, fmt.Errorf("no header row found")
}

// Column aliases recognised in export headers
var (
	productCodeAliases = []string{"product_code", "productcode", "sku", "상품코드", "품목코드", "상품번호"}
	productNameAliases = []string{"product_name", "productname", "name", "상품명", "품목명"}
	locationAliases    = []string{"location", "location_code", "로케이션", "로케이션코드", "위치"}
	quantityAliases    = []string{"quantity", "qty", "on_hand", "재고", "재고수량", "수량"}
	channelAliases     = []string{"channel", "sales_channel", "판매채널", "채널", "주문유형"}
	deliveredAliases   = []string{"delivered_quantity", "delivered_qty", "shipped_quantity", "출고수량", "배송수량", "quantity", "qty", "수량"}
	boxWeightAliases   = []string{"box_weight", "boxweight", "박스중량", "박스무게"}
	eachPerBoxAliases  = []string{"each_per_box", "eachperbox", "units_per_box", "입수", "박스입수"}
	eachWeightAliases  = []string{"each_weight", "unit_weight", "낱개중량", "낱개무게"}
)

// columnMap resolves header names to indexes
type columnMap map[string]int

func mapHeader(header []string) columnMap {
	columns := make(columnMap, len(header))
	for i, name := range header {
		key := normalizeHeader(name)
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
	}
	return columns
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	return name
}

func (c columnMap) find(aliases []string) (int, bool) {
	for _, alias := range aliases {
		if i, ok := c[alias]; ok {
			return i, true
		}
	}
	return -1, false
}

func (c columnMap) require(name string, aliases []string) (int, error) {
	i, ok := c.find(aliases)
	if !ok {
		return -1, fmt.Errorf("%w: %s (accepted headers: %s)", ErrMissingColumn, name, strings.Join(aliases, ", "))
	}
	return i, nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func isBlank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// ParseQuantity parses a numeric cell. Thousands separators are accepted and
// an empty cell is zero.
func ParseQuantity(value string) (decimal.Decimal, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return decimal.Zero, nil
	}
	q, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid quantity %q", value)
	}
	return q, nil
}

// ParseInventory maps a table onto inventory records
func ParseInventory(table *Table) ([]*entities.InventoryRecord, error) {
	columns := mapHeader(table.Header)
	codeCol, err := columns.require("product code", productCodeAliases)
	if err != nil {
		return nil, err
	}
	locationCol, err := columns.require("location", locationAliases)
	if err != nil {
		return nil, err
	}
	quantityCol, err := columns.require("quantity", quantityAliases)
	if err != nil {
		return nil, err
	}
	nameCol, _ := columns.find(productNameAliases)

	records := make([]*entities.InventoryRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		if isBlank(row) {
			continue
		}
		record := &entities.InventoryRecord{
			ProductCode: entities.NormalizeProductCode(cell(row, codeCol)),
			ProductName: cell(row, nameCol),
			LocationRaw: cell(row, locationCol),
		}
		quantity, err := ParseQuantity(cell(row, quantityCol))
		if err != nil || quantity.IsNegative() {
			record.Defect = entities.DefectInvalidQuantity
		}
		record.Quantity = quantity
		records = append(records, record)
	}
	return records, nil
}

// ParseSales maps a table onto sales records
func ParseSales(table *Table) ([]*entities.SalesRecord, error) {
	columns := mapHeader(table.Header)
	codeCol, err := columns.require("product code", productCodeAliases)
	if err != nil {
		return nil, err
	}
	channelCol, err := columns.require("channel", channelAliases)
	if err != nil {
		return nil, err
	}
	deliveredCol, err := columns.require("delivered quantity", deliveredAliases)
	if err != nil {
		return nil, err
	}

	records := make([]*entities.SalesRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		if isBlank(row) {
			continue
		}
		record := &entities.SalesRecord{
			ProductCode: entities.NormalizeProductCode(cell(row, codeCol)),
			Channel:     cell(row, channelCol),
		}
		delivered, err := ParseQuantity(cell(row, deliveredCol))
		if err != nil || delivered.IsNegative() {
			record.Defect = entities.DefectInvalidQuantity
		}
		record.DeliveredQuantity = delivered
		records = append(records, record)
	}
	return records, nil
}

// ParseProductMasters maps a table onto product master entries. Rows without a
// product code or with unreadable numbers are skipped.
func ParseProductMasters(table *Table) ([]*entities.ProductMaster, error) {
	columns := mapHeader(table.Header)
	codeCol, err := columns.require("product code", productCodeAliases)
	if err != nil {
		return nil, err
	}
	weightCol, err := columns.require("box weight", boxWeightAliases)
	if err != nil {
		return nil, err
	}
	eachCol, _ := columns.find(eachPerBoxAliases)
	eachWeightCol, _ := columns.find(eachWeightAliases)

	masters := make([]*entities.ProductMaster, 0, len(table.Rows))
	for _, row := range table.Rows {
		code := entities.NormalizeProductCode(cell(row, codeCol))
		if code == "" {
			continue
		}
		weight, err := ParseQuantity(cell(row, weightCol))
		if err != nil {
			continue
		}
		each, err := ParseQuantity(cell(row, eachCol))
		if err != nil {
			continue
		}
		eachWeight, err := ParseQuantity(cell(row, eachWeightCol))
		if err != nil {
			continue
		}
		masters = append(masters, &entities.ProductMaster{
			ProductCode: code,
			BoxWeight:   weight,
			EachPerBox:  each.IntPart(),
			EachWeight:  eachWeight,
		})
	}
	return masters, nil
}
