package track

import (
	"encoding/json"
	"fmt"
	"sort"

	"jt-go/internal/model"
)

// StatusUpdate is a ledger entry resolved against the catalog, as
// returned by RecentUpdates.
type StatusUpdate struct {
	Posting model.Posting
	model.StatusEntry
}

// loadLedger reads the whole status ledger. A missing or unparseable
// value yields an empty ledger.
func (s *Service) loadLedger() (map[string]model.StatusEntry, error) {
	raw, ok, err := s.store.Get(ledgerKey)
	if err != nil {
		return nil, fmt.Errorf("reading status ledger: %w", err)
	}
	if !ok {
		return map[string]model.StatusEntry{}, nil
	}

	var ledger map[string]model.StatusEntry
	if err := json.Unmarshal([]byte(raw), &ledger); err != nil {
		s.logger.Warn("discarding unparseable status ledger", "error", err)
		return map[string]model.StatusEntry{}, nil
	}
	if ledger == nil {
		ledger = map[string]model.StatusEntry{}
	}
	return ledger, nil
}

// saveLedger writes the whole status ledger back to the store.
func (s *Service) saveLedger(ledger map[string]model.StatusEntry) error {
	raw, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encoding status ledger: %w", err)
	}
	if err := s.store.Put(ledgerKey, string(raw)); err != nil {
		return fmt.Errorf("saving status ledger: %w", err)
	}
	return nil
}

// AllStatuses returns the raw ledger keyed by posting identifier.
func (s *Service) AllStatuses() (map[string]model.StatusEntry, error) {
	return s.loadLedger()
}

// GetStatus returns the application status for a posting. Postings
// absent from the ledger are Not Applied; that default is never
// persisted.
func (s *Service) GetStatus(postingID string) (model.Status, error) {
	ledger, err := s.loadLedger()
	if err != nil {
		return "", err
	}
	entry, ok := ledger[postingID]
	if !ok {
		return model.StatusNotApplied, nil
	}
	return entry.Status, nil
}

// SetStatus upserts the status for a posting with updatedAt set from
// the service clock, then persists the whole ledger. Any status may be
// set at any time; re-issuing the current status still refreshes the
// timestamp.
func (s *Service) SetStatus(postingID string, status model.Status) error {
	ledger, err := s.loadLedger()
	if err != nil {
		return err
	}

	ledger[postingID] = model.StatusEntry{
		Status:    status,
		UpdatedAt: s.clock.Now(),
	}
	if err := s.saveLedger(ledger); err != nil {
		return err
	}

	s.logger.Info("status updated", "posting", postingID, "status", string(status))
	return nil
}

// RecentUpdates returns up to n ledger entries with a status other
// than Not Applied, newest first, resolved against the catalog.
// Entries whose posting no longer resolves are excluded.
func (s *Service) RecentUpdates(n int) ([]StatusUpdate, error) {
	ledger, err := s.loadLedger()
	if err != nil {
		return nil, err
	}

	var updates []StatusUpdate
	for id, entry := range ledger {
		if entry.Status == model.StatusNotApplied {
			continue
		}
		posting, ok := s.catalog.ByID(id)
		if !ok {
			continue
		}
		updates = append(updates, StatusUpdate{Posting: posting, StatusEntry: entry})
	}

	// Ledger iteration order is random; break timestamp ties by posting
	// ID so output is stable across runs.
	sort.Slice(updates, func(i, j int) bool {
		if !updates[i].UpdatedAt.Equal(updates[j].UpdatedAt) {
			return updates[i].UpdatedAt.After(updates[j].UpdatedAt)
		}
		return updates[i].Posting.ID < updates[j].Posting.ID
	})

	if n >= 0 && len(updates) > n {
		updates = updates[:n]
	}
	return updates, nil
}
