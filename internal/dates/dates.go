package dates

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseable marks a cell value that could not be turned into a
// calendar date. Callers are expected to drop the row, not abort the batch.
var ErrUnparseable = errors.New("unparseable date")

// CenturyPolicy controls how two-digit years are expanded.
type CenturyPolicy int

const (
	// CenturyWindow maps 00-49 to 2000-2049 and 50-99 to 1950-1999.
	CenturyWindow CenturyPolicy = iota
	// CenturyLiteral keeps two-digit years as-is (year 25 stays 25 AD).
	CenturyLiteral
)

// ParseCenturyPolicy resolves a config string to a policy.
// Unknown values fall back to the windowing rule.
func ParseCenturyPolicy(s string) CenturyPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "literal") {
		return CenturyLiteral
	}
	return CenturyWindow
}

// Date is a calendar date with no time-of-day component.
// Equality and ordering are purely calendar based.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns the date at UTC midnight.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DMY formats the date as zero-padded DD/MM/YYYY for display.
func (d Date) DMY() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// ISO formats the date as YYYY-MM-DD, suitable for lexical sorting.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Today returns the current calendar date in local time.
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// tokenSplit matches the separator runs accepted between date tokens:
// whitespace, slash, colon, period and hyphen.
var tokenSplit = regexp.MustCompile(`[\s/:.\-]+`)

// Normalize converts a raw cell value into a canonical date.
//
// Numeric values are treated as spreadsheet day serials. Strings are
// tokenized and the first three numeric tokens are read day-first as
// (day, month, year); trailing tokens such as a time-of-day are dropped.
// Anything else yields ErrUnparseable.
func Normalize(raw string, policy CenturyPolicy) (Date, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}, ErrUnparseable
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(serial)
	}

	tokens := tokenSplit.Split(s, -1)
	fields := tokens[:0]
	for _, t := range tokens {
		if t != "" {
			fields = append(fields, t)
		}
	}
	if len(fields) < 3 {
		return Date{}, ErrUnparseable
	}

	day, err1 := strconv.Atoi(fields[0])
	month, err2 := strconv.Atoi(fields[1])
	year, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}, ErrUnparseable
	}

	if policy == CenturyWindow && year >= 0 && year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	d := Date{Year: year, Month: month, Day: day}
	if !d.valid() {
		return Date{}, ErrUnparseable
	}
	return d, nil
}

// ParseISO parses a YYYY-MM-DD string as produced by ISO().
func ParseISO(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrUnparseable
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// fromSerial converts an Excel day serial to a calendar date.
//
// Excel counts serial 1 as 1900-01-01 but also counts the nonexistent
// 1900-02-29 (serial 60), so serials below 60 sit one day off the usual
// 1899-12-30 epoch. Both ranges are handled so every serial >= 1 maps to
// the date a spreadsheet tool would display; serial 60 itself is not a
// real calendar date and is rejected.
func fromSerial(serial float64) (Date, error) {
	days := int(math.Floor(serial))
	if days < 1 || days == 60 {
		return Date{}, ErrUnparseable
	}

	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	if days < 60 {
		epoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	t := epoch.AddDate(0, 0, days)
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// valid reports whether the (year, month, day) triple is a real calendar
// date, checked by round-tripping through time.Date.
func (d Date) valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return false
	}
	t := d.Time()
	return t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

// DaysBetween returns the whole-day difference b minus a.
//
// Both dates are anchored at UTC midnight so the result is an exact
// multiple of 24h; the value is negative when b is earlier than a.
func DaysBetween(a, b Date) int {
	return int(b.Time().Sub(a.Time()) / (24 * time.Hour))
}
