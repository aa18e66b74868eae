package store

import (
	"database/sql"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/model"
)

// SaveMileageSnapshot persists the single-slot ledger snapshot,
// replacing whatever was saved before.
func (s *Store) SaveMileageSnapshot(snap model.LedgerSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO mileage_snapshot (id, snapshot, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET snapshot = ?, saved_at = CURRENT_TIMESTAMP
	`, string(data), string(data))
	return err
}

// LoadMileageSnapshot restores the last-saved ledger snapshot.
// A missing row returns (nil, nil). A malformed stored snapshot is
// discarded with a warning instead of failing the load: bad persisted
// state must never crash the portal.
func (s *Store) LoadMileageSnapshot() (*model.LedgerSnapshot, error) {
	var data string
	err := s.db.QueryRow("SELECT snapshot FROM mileage_snapshot WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap model.LedgerSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		log.Warn().Err(err).Msg("discarding malformed mileage snapshot")
		_, _ = s.db.Exec("DELETE FROM mileage_snapshot WHERE id = 1")
		return nil, nil
	}
	return &snap, nil
}

// ClearMileageSnapshot removes the saved snapshot.
func (s *Store) ClearMileageSnapshot() error {
	_, err := s.db.Exec("DELETE FROM mileage_snapshot WHERE id = 1")
	return err
}
