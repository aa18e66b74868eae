package refdata

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/model"
	"github.com/moalamir52/Operations-Portal/internal/service/sheet"
)

// Service fetches the published reference sheet (CSV export of the
// master registry) and caches the rows in memory. Refresh is a one-shot
// request with no retry: on failure the previously cached rows stay
// untouched and the error surfaces to the operator.
type Service struct {
	url    string
	client *http.Client

	mu        sync.RWMutex
	rows      []model.Row
	fetchedAt time.Time
}

// New creates a service for the given CSV export URL.
func New(url string) *Service {
	return &Service{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Rows returns the cached reference rows; nil before the first
// successful refresh.
func (s *Service) Rows() []model.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// FetchedAt reports when the cache was last refreshed.
func (s *Service) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// Refresh downloads and parses the reference sheet, replacing the cache
// only on full success.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	if s.url == "" {
		return 0, fmt.Errorf("no reference sheet url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, fmt.Errorf("build reference request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch reference sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch reference sheet: unexpected status %s", resp.Status)
	}

	rows, err := sheet.ReadCSV(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("parse reference sheet: %w", err)
	}

	s.mu.Lock()
	s.rows = rows
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	log.Info().Int("rows", len(rows)).Msg("reference sheet refreshed")
	return len(rows), nil
}

// FindBooking returns the reference row whose "Booking Number" equals
// the trimmed id exactly, or false when no such row exists.
func (s *Service) FindBooking(id string) (model.Row, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.rows {
		if strings.TrimSpace(row.Get("Booking Number")) == id {
			return row, true
		}
	}
	return nil, false
}
