package reconcile

import (
	"testing"

	"github.com/moalamir52/Operations-Portal/internal/model"
)

func TestReconcile_CaseAndSpaceInsensitiveMatch(t *testing.T) {
	t.Parallel()

	driver := []model.Row{
		{"Contract No.": "ABC"},
	}
	target := []model.Row{
		{"Contract No.": "  abc ", "Plate No.": "K-12345", "Model": "Sunny", "Pick-up Date": "13/07/2025 16:54", "Drop-off Date": "20/07/2025"},
	}

	records, summary := Engine{}.Reconcile(driver, target, Contracts)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Key != "ABC" {
		t.Fatalf("key must stay verbatim, got %q", r.Key)
	}
	if r.Fields["plate"] != "K-12345" || r.Fields["model"] != "Sunny" {
		t.Fatalf("unexpected fields: %v", r.Fields)
	}
	if r.Fields["pickup"] != "13/07/2025" {
		t.Fatalf("pickup not display-formatted: %q", r.Fields["pickup"])
	}
	if summary.Complete != 1 || summary.MissingData != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestReconcile_DuplicateTargetKeyLastWriteWins(t *testing.T) {
	t.Parallel()

	driver := []model.Row{
		{"Contract No.": "abc"},
	}
	target := []model.Row{
		{"Contract No.": "ABC", "Plate No.": "OLD-1", "Model": "Old", "Pick-up Date": "01/01/2025", "Drop-off Date": "02/01/2025"},
		{"Contract No.": "ABC ", "Plate No.": "NEW-2", "Model": "New", "Pick-up Date": "03/01/2025", "Drop-off Date": "04/01/2025"},
	}

	records, summary := Engine{}.Reconcile(driver, target, Contracts)

	if records[0].Fields["plate"] != "NEW-2" {
		t.Fatalf("expected later target row to win, got %q", records[0].Fields["plate"])
	}
	if summary.KeyCollisions != 1 {
		t.Fatalf("expected 1 reported collision, got %d", summary.KeyCollisions)
	}
}

func TestReconcile_MissSetsSentinelKeepsKey(t *testing.T) {
	t.Parallel()

	driver := []model.Row{
		{"Contract No.": " C-77 "},
	}
	target := []model.Row{
		{"Contract No.": "C-99", "Plate No.": "X", "Model": "Y", "Pick-up Date": "01/01/2025", "Drop-off Date": "02/01/2025"},
	}

	records, summary := Engine{}.Reconcile(driver, target, Contracts)

	r := records[0]
	if r.Key != "C-77" {
		t.Fatalf("unexpected key: %q", r.Key)
	}
	for _, f := range Contracts.FieldNames() {
		if r.Fields[f] != model.Missing {
			t.Fatalf("field %s: expected missing sentinel, got %q", f, r.Fields[f])
		}
	}
	if summary.MissingData != 1 || summary.Complete != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestReconcile_BlankCellOnHitStaysBlank(t *testing.T) {
	t.Parallel()

	driver := []model.Row{
		{"Contract No.": "C-1"},
	}
	target := []model.Row{
		{"Contract No.": "C-1", "Plate No.": "", "Model": "Sunny", "Pick-up Date": "01/01/2025", "Drop-off Date": "02/01/2025"},
	}

	records, summary := Engine{}.Reconcile(driver, target, Contracts)

	if records[0].Fields["plate"] != "" {
		t.Fatalf("blank-but-present cell must not become the sentinel, got %q", records[0].Fields["plate"])
	}
	if summary.Complete != 1 {
		t.Fatalf("blank cell must still count as complete: %+v", summary)
	}
}

func TestReconcile_OrderPreserved(t *testing.T) {
	t.Parallel()

	driver := []model.Row{
		{"Contract No.": "C-3"},
		{"Contract No.": "C-1"},
		{"Contract No.": "C-2"},
	}

	records, _ := Engine{}.Reconcile(driver, nil, Contracts)

	want := []string{"C-3", "C-1", "C-2"}
	for i, r := range records {
		if r.Key != want[i] {
			t.Fatalf("position %d: got %s want %s", i, r.Key, want[i])
		}
	}
}

func TestReconcile_FleetSerialExpiryFormatting(t *testing.T) {
	t.Parallel()

	driver := []model.Row{
		{"Plate No": "B 71462"},
	}
	target := []model.Row{
		{"plate": "B 71462", "model": "Attrage", "chassis": "MMB123", "regExpiry": "45489", "insExpiry": "soon", "color": "White"},
	}

	records, _ := Engine{}.Reconcile(driver, target, Fleet)

	r := records[0]
	if r.Fields["regExpiry"] != "16/07/2024" {
		t.Fatalf("serial expiry not formatted: %q", r.Fields["regExpiry"])
	}
	// Values that do not parse as dates pass through untouched.
	if r.Fields["insExpiry"] != "soon" {
		t.Fatalf("non-date expiry mangled: %q", r.Fields["insExpiry"])
	}
}

func TestProfileByName(t *testing.T) {
	t.Parallel()

	if _, err := ProfileByName("contracts"); err != nil {
		t.Fatalf("contracts profile missing: %v", err)
	}
	if _, err := ProfileByName("fleet"); err != nil {
		t.Fatalf("fleet profile missing: %v", err)
	}
	if _, err := ProfileByName("nope"); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}
