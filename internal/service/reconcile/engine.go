package reconcile

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/dates"
	"github.com/moalamir52/Operations-Portal/internal/model"
)

// Engine joins a driver dataset against a target dataset by a normalized
// business key and fills the missing sentinel where the match is absent.
// A failed lookup is local to the field: the engine itself never errors
// on a miss.
type Engine struct {
	Century dates.CenturyPolicy
}

// normalizeKey folds a business key for index lookups: surrounding
// whitespace trimmed, case ignored.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// buildIndex maps normalized target keys to their rows. Duplicate keys
// resolve last-write-wins; the collision count is surfaced so the
// operator can see the soft spot, it does not reject the dataset.
func buildIndex(target []model.Row, keyColumn string) (map[string]model.Row, int) {
	index := make(map[string]model.Row, len(target))
	collisions := 0
	for _, row := range target {
		key := normalizeKey(row.Get(keyColumn))
		if key == "" {
			continue
		}
		if _, dup := index[key]; dup {
			collisions++
		}
		index[key] = row
	}
	return index, collisions
}

// Reconcile walks driver rows in their original order and copies the
// profile's attributes from the matching target row, or the missing
// sentinel when no target row carries the key. The key itself is kept
// verbatim as uploaded, only trimmed for display.
func (e Engine) Reconcile(driver, target []model.Row, p Profile) ([]model.LookupRecord, model.LookupSummary) {
	index, collisions := buildIndex(target, p.TargetKeyColumn)

	fields := p.FieldNames()
	records := make([]model.LookupRecord, 0, len(driver))
	summary := model.LookupSummary{KeyCollisions: collisions}

	for _, row := range driver {
		rawKey := strings.TrimSpace(row.Get(p.KeyColumn))
		match, ok := index[normalizeKey(rawKey)]

		rec := model.LookupRecord{
			Key:    rawKey,
			Fields: make(map[string]string, len(p.Attributes)),
		}
		if rec.Key == "" {
			rec.Key = model.Missing
		}

		for _, attr := range p.Attributes {
			// On a hit the value is copied as-is; a present-but-blank
			// cell stays blank and only a true miss gets the sentinel.
			value := model.Missing
			if ok {
				value = match.Get(attr.Column)
			}
			if attr.IsDate && value != model.Missing {
				if d, err := dates.Normalize(value, e.Century); err == nil {
					value = d.DMY()
				}
			}
			rec.Fields[attr.Field] = value
		}

		records = append(records, rec)
		if rec.Complete(fields) {
			summary.Complete++
		} else {
			summary.MissingData++
		}
	}

	summary.Total = len(records)
	log.Info().
		Str("profile", p.Name).
		Int("total", summary.Total).
		Int("complete", summary.Complete).
		Int("collisions", collisions).
		Msg("reconciliation finished")
	return records, summary
}
