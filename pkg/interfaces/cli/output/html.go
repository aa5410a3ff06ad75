package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/slotting/pkg/application/dto"
	"github.com/vsinha/slotting/pkg/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLSection is one category table of the HTML report
type HTMLSection struct {
	Anchor string
	Title  string
	Reason string
	Header []string
	Rows   [][]string
}

// TemplateData contains all data for rendering the HTML template
type TemplateData struct {
	Metadata    dto.RunMetadata
	Diagnostics dto.Diagnostics
	Sections    []HTMLSection
	GeneratedAt string
	Elapsed     string
}

// GenerateHTML renders the report as a self-contained HTML page
func GenerateHTML(report *dto.SlottingReport, categories []entities.Category) (string, error) {
	if len(categories) == 0 {
		categories = entities.Categories
	}

	data := &TemplateData{
		Metadata:    report.Metadata,
		Diagnostics: report.Diagnostics,
		GeneratedAt: report.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"),
		Elapsed:     formatDuration(report.Metadata.Elapsed),
	}
	for _, category := range categories {
		section := HTMLSection{
			Anchor: FileStem(category),
			Title:  category.Title(),
			Reason: category.Reason(),
			Header: Header[:8],
		}
		for _, item := range report.Category(category) {
			section.Rows = append(section.Rows, Row(item)[:8])
		}
		data.Sections = append(data.Sections, section)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// generateHTMLOutput writes the HTML report to the output directory or stdout
func generateHTMLOutput(report *dto.SlottingReport, config Config) error {
	html, err := GenerateHTML(report, config.Categories)
	if err != nil {
		return err
	}

	if config.OutputDir == "" {
		fmt.Fprint(config.writer(), html)
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, ReportBaseName+".html")
	if err := os.WriteFile(filename, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 HTML report saved to: %s\n", filename)
	}
	return nil
}
