package dates

import (
	"errors"
	"testing"
)

func TestNormalize_StringWithTime(t *testing.T) {
	t.Parallel()

	d, err := Normalize("13/07/2025 16:54", CenturyWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Date{Year: 2025, Month: 7, Day: 13}) {
		t.Fatalf("unexpected date: %+v", d)
	}
}

func TestNormalize_Separators(t *testing.T) {
	t.Parallel()

	want := Date{Year: 2024, Month: 2, Day: 5}
	for _, raw := range []string{"05/02/2024", "5-2-2024", "05.02.2024", "5 2 2024"} {
		d, err := Normalize(raw, CenturyWindow)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if d != want {
			t.Fatalf("%q: got %+v want %+v", raw, d, want)
		}
	}
}

func TestNormalize_Serial(t *testing.T) {
	t.Parallel()

	d, err := Normalize("45489", CenturyWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Date{Year: 2024, Month: 7, Day: 16}) {
		t.Fatalf("serial 45489: got %+v", d)
	}

	// Fractional part is time-of-day and must not shift the day.
	d, err = Normalize("45489.9", CenturyWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Date{Year: 2024, Month: 7, Day: 16}) {
		t.Fatalf("serial 45489.9: got %+v", d)
	}
}

func TestNormalize_SerialEpochEdges(t *testing.T) {
	t.Parallel()

	cases := []struct {
		serial string
		want   Date
	}{
		{"1", Date{1900, 1, 1}},
		{"59", Date{1900, 2, 28}},
		{"61", Date{1900, 3, 1}},
		{"25569", Date{1970, 1, 1}},
	}
	for _, tc := range cases {
		d, err := Normalize(tc.serial, CenturyWindow)
		if err != nil {
			t.Fatalf("serial %s: unexpected error: %v", tc.serial, err)
		}
		if d != tc.want {
			t.Fatalf("serial %s: got %+v want %+v", tc.serial, d, tc.want)
		}
	}

	// Serial 60 is the phantom 1900-02-29.
	if _, err := Normalize("60", CenturyWindow); !errors.Is(err, ErrUnparseable) {
		t.Fatalf("serial 60: expected ErrUnparseable, got %v", err)
	}
	if _, err := Normalize("0", CenturyWindow); !errors.Is(err, ErrUnparseable) {
		t.Fatalf("serial 0: expected ErrUnparseable, got %v", err)
	}
}

func TestNormalize_TwoDigitYears(t *testing.T) {
	t.Parallel()

	d, err := Normalize("01/06/25", CenturyWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year != 2025 {
		t.Fatalf("window 25: got year %d", d.Year)
	}

	d, err = Normalize("01/06/75", CenturyWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year != 1975 {
		t.Fatalf("window 75: got year %d", d.Year)
	}

	d, err = Normalize("01/06/25", CenturyLiteral)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year != 25 {
		t.Fatalf("literal 25: got year %d", d.Year)
	}
}

func TestNormalize_Failures(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "  ", "13/07", "aa/bb/cccc", "32/01/2024", "29/02/2023", "01/13/2024"} {
		if _, err := Normalize(raw, CenturyWindow); !errors.Is(err, ErrUnparseable) {
			t.Fatalf("%q: expected ErrUnparseable, got %v", raw, err)
		}
	}
}

func TestNormalize_DMYRoundTrip(t *testing.T) {
	t.Parallel()

	for _, d := range []Date{
		{2024, 2, 29},
		{2025, 12, 31},
		{1999, 1, 1},
		{2000, 6, 15},
	} {
		got, err := Normalize(d.DMY(), CenturyWindow)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", d.DMY(), err)
		}
		if got != d {
			t.Fatalf("round trip %s: got %+v", d.DMY(), got)
		}
	}
}

func TestParseISO(t *testing.T) {
	t.Parallel()

	d, err := ParseISO("2025-07-13")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Date{2025, 7, 13}) {
		t.Fatalf("got %+v", d)
	}
	if _, err := ParseISO("13/07/2025"); err == nil {
		t.Fatalf("expected error for non-ISO input")
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	a := Date{2025, 7, 1}
	b := Date{2025, 7, 14}
	if got := DaysBetween(a, b); got != 13 {
		t.Fatalf("got %d want 13", got)
	}
	if DaysBetween(a, b) != -DaysBetween(b, a) {
		t.Fatalf("diff is not antisymmetric")
	}

	// Across a leap day.
	if got := DaysBetween(Date{2024, 2, 28}, Date{2024, 3, 1}); got != 2 {
		t.Fatalf("leap span: got %d want 2", got)
	}
	if got := DaysBetween(Date{2023, 2, 28}, Date{2023, 3, 1}); got != 1 {
		t.Fatalf("non-leap span: got %d want 1", got)
	}
	// Across a year boundary.
	if got := DaysBetween(Date{2024, 12, 25}, Date{2025, 1, 7}); got != 13 {
		t.Fatalf("year span: got %d want 13", got)
	}
}
