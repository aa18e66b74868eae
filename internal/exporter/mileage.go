package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/moalamir52/Operations-Portal/internal/dates"
	"github.com/moalamir52/Operations-Portal/internal/model"
)

// Mileage report block colors, carried over from the on-screen report:
// banner yellow, info violet, allowance green, usage blue, overage red.
const (
	bannerFill    = "#FFFDE7"
	bannerFont    = "B28704"
	infoFill      = "#EFF0FF"
	infoFont      = "6A1B9A"
	tableHeadFill = "#6A1B9A"
	tableZebra    = "#F3E5F5"
	daysFill      = "#F0E6FF"
	daysFont      = "4B2991"
	allowedFill   = "#E6F4EA"
	allowedFont   = "256029"
	usedFill      = "#E3F2FD"
	usedFont      = "0D47A1"
	exceededFill  = "#FFEBEE"
	exceededFont  = "B71C1C"
)

// ExportMileage renders the mileage report workbook: contract start
// banner, booking info block, the records table and the four summary
// lines (elapsed days, allowed, used, exceeded).
func ExportMileage(snap model.LedgerSnapshot, summary model.MileageSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Records"
	f.SetSheetName("Sheet1", sheet)

	rowIdx := 1
	writeBanner := func(text, fill, font string, size float64) error {
		cell := fmt.Sprintf("A%d", rowIdx)
		f.SetCellValue(sheet, cell, text)
		if err := f.MergeCell(sheet, cell, fmt.Sprintf("D%d", rowIdx)); err != nil {
			return err
		}
		style, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: font, Size: size},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
			Alignment: &excelize.Alignment{Vertical: "center"},
		})
		if err != nil {
			return err
		}
		f.SetRowStyle(sheet, rowIdx, rowIdx, style)
		rowIdx++
		return nil
	}

	if snap.StartLocked {
		if err := writeBanner("Contract Start Date: "+snap.StartDate.DMY(), bannerFill, bannerFont, 16); err != nil {
			return nil, err
		}
		rowIdx++ // spacer
	}

	if snap.Contract != nil {
		infoStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: infoFont, Size: 13},
			Fill: excelize.Fill{Type: "pattern", Color: []string{infoFill}, Pattern: 1},
		})
		block := [][2]string{
			{"Booking:", snap.Contract.Booking},
			{"Contract:", snap.Contract.Contract},
			{"Customer:", snap.Contract.Customer},
		}
		for _, kv := range block {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), kv[0])
			f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), kv[1])
			f.SetRowStyle(sheet, rowIdx, rowIdx, infoStyle)
			rowIdx++
		}
		rowIdx++ // spacer
	}

	// Records table.
	headStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 13},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{tableHeadFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	zebraStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{tableZebra}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	plainStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	headers := []string{"#", "OUT", "IN", "Distance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetRowStyle(sheet, rowIdx, rowIdx, headStyle)
	rowIdx++

	for i, e := range snap.Entries {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), e.Out)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowIdx), e.In)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowIdx), e.Distance())
		if i%2 == 0 {
			f.SetRowStyle(sheet, rowIdx, rowIdx, zebraStyle)
		} else {
			f.SetRowStyle(sheet, rowIdx, rowIdx, plainStyle)
		}
		rowIdx++
	}
	rowIdx++ // spacer

	summaryLines := []struct {
		text string
		fill string
		font string
	}{
		{fmt.Sprintf("Days since contract start: %d days", summary.ElapsedDays), daysFill, daysFont},
		{fmt.Sprintf("Allowed KM: %d km", summary.AllowedKm), allowedFill, allowedFont},
		{fmt.Sprintf("Used KM: %d km", summary.UsedKm), usedFill, usedFont},
		{fmt.Sprintf("Exceeded KM: %d km", summary.ExceededKm), exceededFill, exceededFont},
	}
	for _, line := range summaryLines {
		if err := writeBanner(line.text, line.fill, line.font, 13); err != nil {
			return nil, err
		}
	}

	f.SetColWidth(sheet, "A", "D", 18)
	return f, nil
}

// MileageFilename picks the export file name: booking id when known,
// otherwise the contract start date, otherwise today.
func MileageFilename(snap model.LedgerSnapshot) string {
	if snap.Booking != "" {
		return fmt.Sprintf("Booking-%s.xlsx", snap.Booking)
	}
	if snap.StartLocked {
		return fmt.Sprintf("%02d-%02d-%04d-records.xlsx", snap.StartDate.Day, snap.StartDate.Month, snap.StartDate.Year)
	}
	today := dates.Today()
	return fmt.Sprintf("%02d-%02d-%04d-records.xlsx", today.Day, today.Month, today.Year)
}
