package model

// Row is one flat spreadsheet row: column header to raw cell text.
// Cells that were absent in the source are present with an empty value,
// so "column missing from a match" can stay distinct from "blank cell."
type Row map[string]string

// Get returns the cell under header, or "" when the column is absent.
func (r Row) Get(header string) string {
	return r[header]
}
