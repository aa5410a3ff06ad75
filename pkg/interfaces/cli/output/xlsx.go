package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/slotting/pkg/application/dto"
	"github.com/vsinha/slotting/pkg/domain/entities"
)

// column widths in Header order
var xlsxColumnWidths = []float64{6, 16, 32, 11, 11, 11, 60, 44, 11, 9}

// WriteWorkbook writes one sheet per category to filename
func WriteWorkbook(report *dto.SlottingReport, categories []entities.Category, filename string) error {
	if len(categories) == 0 {
		categories = entities.Categories
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#305496"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, category := range categories {
		sheet := category.Title()
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}

		if err := writeCategorySheet(f, sheet, report.Category(category), headerStyle, numberStyle); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeCategorySheet(f *excelize.File, sheet string, items []entities.RankedProduct, headerStyle, numberStyle int) error {
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(Header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			item.Rank,
			string(item.ProductCode),
			item.ProductName,
			item.SalesQuantity.InexactFloat64(),
			item.TotalQuantity.InexactFloat64(),
			item.MinColumn,
			item.LocationSummary,
			item.Reason,
			nullCell(item.BoxWeight),
			nullCell(item.BoxesOnHand),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(items) > 0 {
		if err := f.SetCellStyle(sheet, "D2", fmt.Sprintf("E%d", len(items)+1), numberStyle); err != nil {
			return err
		}
	}

	for i, width := range xlsxColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func nullCell(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

// generateXLSXOutput writes the report workbook into the output directory
func generateXLSXOutput(report *dto.SlottingReport, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for xlsx format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, ReportBaseName+".xlsx")
	if err := WriteWorkbook(report, config.Categories, filename); err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 Workbook saved to: %s\n", filename)
	}
	return nil
}
