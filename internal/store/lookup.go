package store

import (
	"database/sql"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/model"
)

// SaveLookupResults persists the reconciled records for one profile,
// replacing the previous result set wholesale.
func (s *Store) SaveLookupResults(profile string, records []model.LookupRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO lookup_state (profile, results, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(profile) DO UPDATE SET results = ?, saved_at = CURRENT_TIMESTAMP
	`, profile, string(data), string(data))
	return err
}

// LoadLookupResults restores the persisted records for one profile;
// nil when nothing was saved. Malformed stored data is dropped, not fatal.
func (s *Store) LoadLookupResults(profile string) ([]model.LookupRecord, error) {
	var data string
	err := s.db.QueryRow("SELECT results FROM lookup_state WHERE profile = ?", profile).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []model.LookupRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		log.Warn().Err(err).Str("profile", profile).Msg("discarding malformed lookup results")
		_, _ = s.db.Exec("DELETE FROM lookup_state WHERE profile = ?", profile)
		return nil, nil
	}
	return records, nil
}

// SaveSelectedColumns persists the operator's export column selection.
func (s *Store) SaveSelectedColumns(profile string, columns []string) error {
	data, err := json.Marshal(columns)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO lookup_state (profile, results, columns) VALUES (?, '[]', ?)
		ON CONFLICT(profile) DO UPDATE SET columns = ?
	`, profile, string(data), string(data))
	return err
}

// LoadSelectedColumns restores the saved column selection, empty when
// nothing was saved or the stored value is malformed.
func (s *Store) LoadSelectedColumns(profile string) ([]string, error) {
	var data string
	err := s.db.QueryRow("SELECT columns FROM lookup_state WHERE profile = ?", profile).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var columns []string
	if err := json.Unmarshal([]byte(data), &columns); err != nil {
		log.Warn().Err(err).Str("profile", profile).Msg("discarding malformed column selection")
		return nil, nil
	}
	return columns, nil
}

// ClearLookup wipes the persisted results and selection for one profile.
func (s *Store) ClearLookup(profile string) error {
	_, err := s.db.Exec("DELETE FROM lookup_state WHERE profile = ?", profile)
	return err
}
