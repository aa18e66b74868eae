package exporter

import (
	"strings"
	"testing"

	"github.com/moalamir52/Operations-Portal/internal/dates"
	"github.com/moalamir52/Operations-Portal/internal/model"
	"github.com/moalamir52/Operations-Portal/internal/service/reconcile"
)

func sampleRecords() []model.LookupRecord {
	return []model.LookupRecord{
		{Key: "C-1", Fields: map[string]string{"plate": "A 1111", "model": "Sunny", "pickup": "01/06/2025", "dropoff": "14/06/2025"}},
		{Key: "C-2", Fields: map[string]string{"plate": model.Missing, "model": model.Missing, "pickup": model.Missing, "dropoff": model.Missing}},
	}
}

func TestExportLookup(t *testing.T) {
	t.Parallel()

	f, err := ExportLookup(sampleRecords(), reconcile.Contracts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "Contract No" || rows[0][2] != "Plate No" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "C-1" || rows[1][2] != "A 1111" {
		t.Fatalf("unexpected data row: %v", rows[1])
	}
	if rows[2][2] != model.Missing {
		t.Fatalf("missing sentinel must survive export: %v", rows[2])
	}
}

func TestRenderTSV(t *testing.T) {
	t.Parallel()

	got := RenderTSV(sampleRecords(), reconcile.Contracts, []string{"key", "plate", "model"})
	want := "C-1\tA 1111\tSunny\nC-2\t❌\t❌"
	if got != want {
		t.Fatalf("tsv mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderTSV_NoSelection(t *testing.T) {
	t.Parallel()

	if got := RenderTSV(sampleRecords(), reconcile.Contracts, nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := RenderTSV(sampleRecords(), reconcile.Contracts, []string{"bogus"}); got != "" {
		t.Fatalf("unknown fields must be skipped, got %q", got)
	}
}

func TestExportMileage(t *testing.T) {
	t.Parallel()

	snap := model.LedgerSnapshot{
		Booking:     "B-42",
		Contract:    &model.ContractInfo{Booking: "B-42", Contract: "C-9", Customer: "Ali"},
		StartDate:   dates.Date{Year: 2025, Month: 6, Day: 1},
		StartLocked: true,
		Entries: []model.LedgerEntry{
			{Date: dates.Date{Year: 2025, Month: 6, Day: 1}, Out: 100, In: 150},
			{Date: dates.Date{Year: 2025, Month: 6, Day: 2}, Out: 150, In: 200},
		},
	}
	summary := model.MileageSummary{ElapsedDays: 13, AllowedKm: 1083, UsedKm: 100, ExceededKm: 0}

	f, err := ExportMileage(snap, summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Records")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	flat := ""
	for _, row := range rows {
		for _, cell := range row {
			flat += cell + "|"
		}
	}
	for _, want := range []string{
		"Contract Start Date: 01/06/2025",
		"Booking:", "B-42",
		"Days since contract start: 13 days",
		"Allowed KM: 1083 km",
		"Used KM: 100 km",
		"Exceeded KM: 0 km",
	} {
		if !strings.Contains(flat, want) {
			t.Fatalf("report missing %q in %s", want, flat)
		}
	}
}

func TestMileageFilename(t *testing.T) {
	t.Parallel()

	snap := model.LedgerSnapshot{Booking: "B-42"}
	if got := MileageFilename(snap); got != "Booking-B-42.xlsx" {
		t.Fatalf("got %q", got)
	}

	snap = model.LedgerSnapshot{
		StartDate:   dates.Date{Year: 2025, Month: 6, Day: 1},
		StartLocked: true,
	}
	if got := MileageFilename(snap); got != "01-06-2025-records.xlsx" {
		t.Fatalf("got %q", got)
	}
}
