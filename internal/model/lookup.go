package model

// Missing is the sentinel shown for an attribute absent from a match.
// It is deliberately distinct from the empty string: a blank but present
// cell stays blank, only a failed lookup shows the sentinel.
const Missing = "❌"

// LookupRecord is one reconciled row: the business key as it appeared in
// the driver dataset plus the configured attributes copied from the match.
type LookupRecord struct {
	Key    string            `json:"key"`
	Fields map[string]string `json:"fields"`
}

// Complete reports whether none of the given fields holds the missing
// sentinel. Used for summary counts only, never for filtering.
func (r LookupRecord) Complete(fields []string) bool {
	for _, f := range fields {
		if r.Fields[f] == Missing {
			return false
		}
	}
	return true
}

// LookupSummary are the counters shown above a reconciliation result.
type LookupSummary struct {
	Total         int `json:"total"`
	Complete      int `json:"complete"`
	MissingData   int `json:"missingData"`
	KeyCollisions int `json:"keyCollisions"`
}
