package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/vsinha/slotting/pkg/application/dto"
	"github.com/vsinha/slotting/pkg/domain/entities"
)

// Formats lists the supported output formats
var Formats = []string{"text", "tsv", "json", "csv", "xlsx", "html"}

// ReportBaseName is the file name (without extension) of single-file reports
const ReportBaseName = "slotting_report"

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	// Categories restricts the rendered lists (empty = all, in report order)
	Categories []entities.Category
	Verbose    bool
	// Writer receives stdout output (os.Stdout when nil)
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

func (c Config) categories() []entities.Category {
	if len(c.Categories) == 0 {
		return entities.Categories
	}
	return c.Categories
}

// Generate creates output in the specified format
func Generate(report *dto.SlottingReport, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "tsv":
		return generateTSVOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	case "xlsx":
		return generateXLSXOutput(report, config)
	case "html":
		return generateHTMLOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// Header is the column header of every category table
var Header = []string{
	"Rank", "Product Code", "Product Name", "Sales Qty", "On Hand",
	"Min Column", "Locations", "Reason", "Box Weight", "Boxes",
}

// Row renders a ranked product as table cells in Header order
func Row(p entities.RankedProduct) []string {
	return []string{
		fmt.Sprintf("%d", p.Rank),
		string(p.ProductCode),
		p.ProductName,
		p.SalesQuantity.String(),
		p.TotalQuantity.String(),
		fmt.Sprintf("%d", p.MinColumn),
		p.LocationSummary,
		p.Reason,
		nullString(p.BoxWeight),
		nullString(p.BoxesOnHand),
	}
}

// FileStem returns the snake_case file name used for a category
func FileStem(category entities.Category) string {
	switch category {
	case entities.MoveToFront:
		return "move_to_front"
	case entities.MoveFromFront:
		return "move_from_front"
	case entities.ZeroDemandEasyAccess:
		return "zero_demand_easy_access"
	case entities.FullRanking:
		return "full_ranking"
	default:
		return strings.ToLower(category.String())
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *dto.SlottingReport, config Config) error {
	out := config.writer()

	fmt.Fprintf(out, "📦 Slotting Report\n")
	fmt.Fprintf(out, "==================\n\n")
	fmt.Fprintf(out, "Run ID: %s\n", report.Metadata.RunID)
	fmt.Fprintf(out, "Channel: %s  Zone: %s\n", report.Metadata.ChannelFilter, report.Metadata.ZonePrefix)
	fmt.Fprintf(out, "Products: %d  Elapsed: %v\n\n", report.Diagnostics.Products, report.Metadata.Elapsed)

	for _, category := range config.categories() {
		items := report.Category(category)
		fmt.Fprintf(out, "📋 %s (%d)\n", category.Title(), len(items))
		if len(items) == 0 {
			fmt.Fprintf(out, "  (none)\n\n")
			continue
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(textHeader(), "\t"))
		for _, item := range items {
			cells := Row(item)
			fmt.Fprintln(tw, strings.Join(cells[:7], "\t"))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
		fmt.Fprintln(out)
	}

	if config.Verbose {
		printDiagnostics(out, report.Diagnostics)
	}
	return nil
}

// textHeader is Header without the reason and box columns
func textHeader() []string {
	return Header[:7]
}

func printDiagnostics(out io.Writer, diag dto.Diagnostics) {
	fmt.Fprintf(out, "🔎 Diagnostics\n")
	fmt.Fprintf(out, "  Inventory rows: %d\n", diag.InventoryRows)
	for _, reason := range sortedKeys(diag.InventoryDropped) {
		fmt.Fprintf(out, "    dropped %-22s %d\n", reason, diag.InventoryDropped[reason])
	}
	fmt.Fprintf(out, "  Sales rows: %d\n", diag.SalesRows)
	for _, reason := range sortedKeys(diag.SalesDropped) {
		fmt.Fprintf(out, "    dropped %-22s %d\n", reason, diag.SalesDropped[reason])
	}
	fmt.Fprintf(out, "  Demand products: %d\n", diag.DemandProducts)
	fmt.Fprintf(out, "  Master enriched: %d\n", diag.MasterEnriched)
}

// generateTSVOutput writes tab-separated tables for pasting into a spreadsheet
func generateTSVOutput(report *dto.SlottingReport, config Config) error {
	categories := config.categories()

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		for _, category := range categories {
			filename := filepath.Join(config.OutputDir, FileStem(category)+".tsv")
			if err := writeDelimitedFile(filename, '\t', report.Category(category)); err != nil {
				return fmt.Errorf("failed to write %s TSV: %w", category.Title(), err)
			}
			if config.Verbose {
				fmt.Fprintf(config.writer(), "💾 %s saved to: %s\n", category.Title(), filename)
			}
		}
		return nil
	}

	out := config.writer()
	for i, category := range categories {
		if len(categories) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# %s\n", category.Title())
		}
		if err := writeDelimited(out, '\t', report.Category(category)); err != nil {
			return fmt.Errorf("failed to write TSV: %w", err)
		}
	}
	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report *dto.SlottingReport, config Config) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, ReportBaseName+".json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one CSV file per category
func generateCSVOutput(report *dto.SlottingReport, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, category := range config.categories() {
		filename := filepath.Join(config.OutputDir, FileStem(category)+".csv")
		if err := writeDelimitedFile(filename, ',', report.Category(category)); err != nil {
			return fmt.Errorf("failed to write %s CSV: %w", category.Title(), err)
		}
		if config.Verbose {
			fmt.Fprintf(config.writer(), "💾 %s saved to: %s\n", category.Title(), filename)
		}
	}
	return nil
}

func writeDelimitedFile(filename string, comma rune, items []entities.RankedProduct) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	// BOM so spreadsheet applications detect UTF-8
	if _, err := file.WriteString("\ufeff"); err != nil {
		return err
	}
	if err := writeDelimited(file, comma, items); err != nil {
		return err
	}
	return file.Close()
}

func writeDelimited(w io.Writer, comma rune, items []entities.RankedProduct) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma
	if err := writer.Write(Header); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write(Row(item)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
