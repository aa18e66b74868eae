package threshold

import (
	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/dates"
	"github.com/moalamir52/Operations-Portal/internal/model"
)

// Match is one row whose event date sits exactly thresholdDays before today.
type Match struct {
	Row  model.Row
	Date dates.Date
	Days int
}

// Result is the classified output for one upload.
type Result struct {
	Matches []Match
	// Excluded counts rows whose event date failed to parse. Those rows
	// are dropped silently from Matches; this is a diagnostic only.
	Excluded int
}

// Classifier surfaces rows whose day-difference from today equals an
// exact target. It is a point-in-time reminder: a row matches on one
// single day of its lifecycle, never on a window.
type Classifier struct {
	DateColumn    string
	ThresholdDays int
	Century       dates.CenturyPolicy
}

// Classify walks rows in order and keeps those whose normalized event
// date is exactly ThresholdDays before today. Rows with unparseable
// dates are filtered, not failed. Duplicates are kept as-is.
func (c Classifier) Classify(rows []model.Row, today dates.Date) Result {
	var res Result
	for _, row := range rows {
		d, err := dates.Normalize(row.Get(c.DateColumn), c.Century)
		if err != nil {
			res.Excluded++
			continue
		}
		days := dates.DaysBetween(d, today)
		if days == c.ThresholdDays {
			res.Matches = append(res.Matches, Match{Row: row, Date: d, Days: days})
		}
	}
	if res.Excluded > 0 {
		log.Debug().
			Int("excluded", res.Excluded).
			Str("column", c.DateColumn).
			Msg("rows dropped with unparseable event dates")
	}
	return res
}
