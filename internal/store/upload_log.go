package store

import "fmt"

// UploadLogEntry records one processed upload.
type UploadLogEntry struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	View        string `json:"view"`
	TotalRows   int    `json:"totalRows"`
	MatchedRows int    `json:"matchedRows"`
	CreatedAt   string `json:"createdAt"`
}

// InsertUploadLog appends one upload to the log.
func (s *Store) InsertUploadLog(filename, view string, totalRows, matchedRows int) error {
	_, err := s.db.Exec(`
		INSERT INTO upload_log (filename, view, total_rows, matched_rows)
		VALUES (?, ?, ?, ?)
	`, filename, view, totalRows, matchedRows)
	return err
}

// ListUploadLogs returns the most recent uploads, newest first.
func (s *Store) ListUploadLogs(limit int) ([]UploadLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, filename, view, total_rows, matched_rows, created_at
		FROM upload_log ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query upload log failed: %w", err)
	}
	defer rows.Close()

	var out []UploadLogEntry
	for rows.Next() {
		var e UploadLogEntry
		if err := rows.Scan(&e.ID, &e.Filename, &e.View, &e.TotalRows, &e.MatchedRows, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan upload log failed: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
