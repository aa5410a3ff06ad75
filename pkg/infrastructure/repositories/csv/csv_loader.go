package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/infrastructure/repositories/sheet"
)

// Encoding of the source files
const (
	EncodingUTF8  = "utf-8"
	EncodingEUCKR = "euc-kr"
)

// Loader handles loading slotting data from CSV files
type Loader struct {
	encoding string
}

// NewLoader creates a new CSV loader for UTF-8 files
func NewLoader() *Loader {
	return &Loader{encoding: EncodingUTF8}
}

// NewLoaderWithEncoding creates a CSV loader for the given encoding ("utf-8" or "euc-kr")
func NewLoaderWithEncoding(encoding string) (*Loader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return &Loader{encoding: EncodingUTF8}, nil
	case EncodingEUCKR, "cp949":
		return &Loader{encoding: EncodingEUCKR}, nil
	default:
		return nil, fmt.Errorf("unsupported CSV encoding: %s (expected utf-8 or euc-kr)", encoding)
	}
}

// LoadInventory loads inventory rows from a CSV file
func (l *Loader) LoadInventory(filename string) ([]*entities.InventoryRecord, error) {
	table, err := l.readTable(filename, "inventory")
	if err != nil {
		return nil, err
	}
	records, err := sheet.ParseInventory(table)
	if err != nil {
		return nil, fmt.Errorf("inventory CSV %s: %w", filename, err)
	}
	return records, nil
}

// LoadSales loads sales rows from a CSV file
func (l *Loader) LoadSales(filename string) ([]*entities.SalesRecord, error) {
	table, err := l.readTable(filename, "sales")
	if err != nil {
		return nil, err
	}
	records, err := sheet.ParseSales(table)
	if err != nil {
		return nil, fmt.Errorf("sales CSV %s: %w", filename, err)
	}
	return records, nil
}

// LoadProductMasters loads product master entries from a CSV file
func (l *Loader) LoadProductMasters(filename string) ([]*entities.ProductMaster, error) {
	table, err := l.readTable(filename, "product master")
	if err != nil {
		return nil, err
	}
	masters, err := sheet.ParseProductMasters(table)
	if err != nil {
		return nil, fmt.Errorf("product master CSV %s: %w", filename, err)
	}
	return masters, nil
}

func (l *Loader) readTable(filename, kind string) (*sheet.Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	var source io.Reader = file
	if l.encoding == EncodingEUCKR {
		source = transform.NewReader(file, korean.EUCKR.NewDecoder())
	}

	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	table, err := sheet.NewTable(records)
	if err != nil {
		return nil, fmt.Errorf("%s CSV %s: %w", kind, filename, err)
	}
	return table, nil
}
