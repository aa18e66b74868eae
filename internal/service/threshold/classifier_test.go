package threshold

import (
	"testing"

	"github.com/moalamir52/Operations-Portal/internal/dates"
	"github.com/moalamir52/Operations-Portal/internal/model"
)

func TestClassify_ExactThresholdOnly(t *testing.T) {
	t.Parallel()

	today := dates.Date{Year: 2025, Month: 7, Day: 27}
	rows := []model.Row{
		{"Contract No.": "C-1", "Drop-off Date": "14/07/2025"}, // 13 days
		{"Contract No.": "C-2", "Drop-off Date": "15/07/2025"}, // 12 days
		{"Contract No.": "C-3", "Drop-off Date": "13/07/2025"}, // 14 days
	}

	c := Classifier{DateColumn: "Drop-off Date", ThresholdDays: 13}
	res := c.Classify(rows, today)

	if len(res.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(res.Matches))
	}
	if res.Matches[0].Row.Get("Contract No.") != "C-1" {
		t.Fatalf("unexpected match: %v", res.Matches[0].Row)
	}
	if res.Matches[0].Days != 13 {
		t.Fatalf("unexpected day count: %d", res.Matches[0].Days)
	}
}

func TestClassify_FilterNotFail(t *testing.T) {
	t.Parallel()

	today := dates.Date{Year: 2025, Month: 7, Day: 27}
	rows := []model.Row{
		{"Contract No.": "C-1", "Drop-off Date": "not a date"},
		{"Contract No.": "C-2", "Drop-off Date": ""},
		{"Contract No.": "C-3", "Drop-off Date": "14/07/2025"},
	}

	c := Classifier{DateColumn: "Drop-off Date", ThresholdDays: 13}
	res := c.Classify(rows, today)

	if res.Excluded != 2 {
		t.Fatalf("expected 2 excluded rows, got %d", res.Excluded)
	}
	if len(res.Matches) != 1 || res.Matches[0].Row.Get("Contract No.") != "C-3" {
		t.Fatalf("unexpected matches: %v", res.Matches)
	}
}

func TestClassify_OrderPreservedNoDedup(t *testing.T) {
	t.Parallel()

	today := dates.Date{Year: 2025, Month: 7, Day: 27}
	rows := []model.Row{
		{"Contract No.": "C-9", "Drop-off Date": "14/07/2025"},
		{"Contract No.": "C-1", "Drop-off Date": "14/07/2025"},
		{"Contract No.": "C-9", "Drop-off Date": "14/07/2025"},
	}

	c := Classifier{DateColumn: "Drop-off Date", ThresholdDays: 13}
	res := c.Classify(rows, today)

	if len(res.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(res.Matches))
	}
	want := []string{"C-9", "C-1", "C-9"}
	for i, m := range res.Matches {
		if m.Row.Get("Contract No.") != want[i] {
			t.Fatalf("position %d: got %s want %s", i, m.Row.Get("Contract No."), want[i])
		}
	}
}

func TestClassify_ExcelSerialDates(t *testing.T) {
	t.Parallel()

	// Serial 45489 renders as 16/07/2024 in spreadsheet tools.
	today := dates.Date{Year: 2024, Month: 7, Day: 29}
	rows := []model.Row{
		{"Contract No.": "C-1", "Drop-off Date": "45489"},
	}

	c := Classifier{DateColumn: "Drop-off Date", ThresholdDays: 13}
	res := c.Classify(rows, today)

	if len(res.Matches) != 1 {
		t.Fatalf("expected serial-dated row to match, got %d", len(res.Matches))
	}
	if got := res.Matches[0].Date.DMY(); got != "16/07/2024" {
		t.Fatalf("unexpected normalized date: %s", got)
	}
}
