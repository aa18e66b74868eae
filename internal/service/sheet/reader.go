package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/moalamir52/Operations-Portal/internal/model"
)

// ErrEmptySheet is returned when a workbook or CSV has no header row.
var ErrEmptySheet = errors.New("sheet has no header row")

// ReadWorkbook reads the first sheet of an xlsx stream into flat rows.
// The first row is the header; short data rows are padded so every
// header is present (with an empty value) on every row.
func ReadWorkbook(r io.Reader) ([]model.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return toRows(rows)
}

// ReadCSV reads a delimited-text stream into flat rows. Used for the
// published reference sheet which arrives as CSV.
func ReadCSV(r io.Reader) ([]model.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return toRows(records)
}

// toRows zips a header row with the remaining rows. Column order is
// irrelevant to callers, row order is preserved end-to-end.
func toRows(raw [][]string) ([]model.Row, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySheet
	}

	header := raw[0]
	rows := make([]model.Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(model.Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
