package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/slotting/pkg/application/dto"
	"github.com/vsinha/slotting/pkg/domain/entities"
)

func sampleReport() *dto.SlottingReport {
	p1 := entities.RankedProduct{
		Rank:            1,
		ProductCode:     "P1",
		ProductName:     "세제",
		SalesQuantity:   decimal.NewFromInt(1200),
		TotalQuantity:   decimal.NewFromInt(40),
		MinColumn:       5,
		LocationCount:   2,
		LocationSummary: "CC-01-05-01(30), CC-02-07-03(10)",
		Reason:          entities.MoveToFront.Reason(),
		BoxWeight:       decimal.NewNullDecimal(decimal.RequireFromString("8.5")),
		BoxesOnHand:     decimal.NewNullDecimal(decimal.NewFromInt(4)),
	}
	p2 := entities.RankedProduct{
		Rank:            2,
		ProductCode:     "P2",
		ProductName:     "Tissue",
		SalesQuantity:   decimal.Zero,
		TotalQuantity:   decimal.NewFromInt(7),
		MinColumn:       1,
		LocationCount:   1,
		LocationSummary: "CC-01-01-01(7)",
		Reason:          entities.FullRanking.Reason(),
	}
	full1 := p1
	full1.Reason = entities.FullRanking.Reason()

	return &dto.SlottingReport{
		Metadata: dto.RunMetadata{
			RunID:         "run-1",
			GeneratedAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			Elapsed:       1500 * time.Microsecond,
			ChannelFilter: "B2C",
			ZonePrefix:    "CC",
		},
		MoveToFront: []entities.RankedProduct{p1},
		FullRanking: []entities.RankedProduct{full1, p2},
		Diagnostics: dto.Diagnostics{
			InventoryRows:    5,
			InventoryDropped: map[string]int{entities.DefectZoneMismatch: 2},
			Products:         2,
		},
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(sampleReport(), Config{Format: "pdf"})
	assert.Error(t, err)
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(sampleReport(), Config{Format: "text", Writer: &buf, Verbose: true})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Move to front (1)")
	assert.Contains(t, out, "Move from front (0)")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "CC-01-05-01(30), CC-02-07-03(10)")
	assert.Contains(t, out, "zone_mismatch")
}

func TestGenerate_TSVSingleCategory(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(sampleReport(), Config{
		Format:     "tsv",
		Writer:     &buf,
		Categories: []entities.Category{entities.FullRanking},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Header, "\t"), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "2\tP2\tTissue\t0\t7\t1\t"))
	assert.NotContains(t, buf.String(), "# ")
}

func TestGenerate_TSVAllCategories(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleReport(), Config{Format: "tsv", Writer: &buf}))
	for _, category := range entities.Categories {
		assert.Contains(t, buf.String(), "# "+category.Title())
	}
}

func TestGenerate_JSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleReport(), Config{Format: "json", OutputDir: dir}))

	data, err := os.ReadFile(filepath.Join(dir, ReportBaseName+".json"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "move_to_front")
	assert.Contains(t, decoded, "diagnostics")
}

func TestGenerate_CSV(t *testing.T) {
	err := Generate(sampleReport(), Config{Format: "csv"})
	assert.Error(t, err, "output directory is required")

	dir := t.TempDir()
	require.NoError(t, Generate(sampleReport(), Config{Format: "csv", OutputDir: dir}))

	for _, category := range entities.Categories {
		_, err := os.Stat(filepath.Join(dir, FileStem(category)+".csv"))
		assert.NoError(t, err, category.Title())
	}

	data, err := os.ReadFile(filepath.Join(dir, "move_to_front.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\ufeffRank,"))
	assert.Contains(t, string(data), `"CC-01-05-01(30), CC-02-07-03(10)"`)
	assert.Contains(t, string(data), ",8.5,4")
}

func TestGenerate_XLSX(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleReport(), Config{Format: "xlsx", OutputDir: dir}))

	f, err := excelize.OpenFile(filepath.Join(dir, ReportBaseName+".xlsx"))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, len(entities.Categories))
	for i, category := range entities.Categories {
		assert.Equal(t, category.Title(), sheets[i])
	}

	rows, err := f.GetRows(entities.FullRanking.Title())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header[0], rows[0][0])
	assert.Equal(t, "P2", rows[2][1])

	value, err := f.GetCellValue(entities.MoveToFront.Title(), "G2")
	require.NoError(t, err)
	assert.Equal(t, "CC-01-05-01(30), CC-02-07-03(10)", value)

	panes, err := f.GetPanes(entities.MoveToFront.Title())
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
}

func TestGenerate_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleReport(), Config{Format: "html", Writer: &buf}))

	html := buf.String()
	assert.Contains(t, html, `<h2 id="move_to_front">Move to front</h2>`)
	assert.Contains(t, html, "세제")
	assert.Contains(t, html, "No products in this category.")
	assert.Contains(t, html, "1.5ms")
}

func TestFileStem(t *testing.T) {
	seen := make(map[string]bool)
	for _, category := range entities.Categories {
		stem := FileStem(category)
		assert.False(t, seen[stem], "duplicate stem %s", stem)
		seen[stem] = true
	}
}
