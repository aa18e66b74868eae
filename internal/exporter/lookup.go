package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/moalamir52/Operations-Portal/internal/model"
	"github.com/moalamir52/Operations-Portal/internal/service/reconcile"
)

// ExportLookup renders the full reconciliation result as a workbook:
// every computed field, one row per record, row number in front.
func ExportLookup(records []model.LookupRecord, p reconcile.Profile) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Results"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"#", p.KeyTitle}
	for _, attr := range p.Attributes {
		headers = append(headers, attr.Title)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#7B1FA2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(sheetName, 1, 1, headerStyle)

	for i, rec := range records {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), rec.Key)
		for j, attr := range p.Attributes {
			cell, _ := excelize.CoordinatesToCellName(j+3, row)
			f.SetCellValue(sheetName, cell, rec.Fields[attr.Field])
		}
	}

	f.SetColWidth(sheetName, "A", "A", 6)
	end, _ := excelize.ColumnNumberToName(len(headers))
	f.SetColWidth(sheetName, "B", end, 18)

	return f, nil
}

// RenderTSV renders the selected fields of the result set as
// tab-separated plain text, one line per record, in record order.
// "key" selects the business key column; unknown fields are skipped.
func RenderTSV(records []model.LookupRecord, p reconcile.Profile, selected []string) string {
	known := map[string]bool{"key": true}
	for _, f := range p.FieldNames() {
		known[f] = true
	}

	fields := make([]string, 0, len(selected))
	for _, f := range selected {
		if known[f] {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return ""
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		cells := make([]string, 0, len(fields))
		for _, f := range fields {
			if f == "key" {
				cells = append(cells, rec.Key)
				continue
			}
			cells = append(cells, rec.Fields[f])
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return strings.Join(lines, "\n")
}
