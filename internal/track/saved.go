package track

import (
	"encoding/json"
	"fmt"
	"slices"

	"jt-go/internal/model"
)

// loadSavedIDs reads the saved-set as an insertion-ordered id list. A
// missing or unparseable value yields an empty set.
func (s *Service) loadSavedIDs() ([]string, error) {
	raw, ok, err := s.store.Get(savedKey)
	if err != nil {
		return nil, fmt.Errorf("reading saved set: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Warn("discarding unparseable saved set", "error", err)
		return nil, nil
	}
	return ids, nil
}

// saveSavedIDs writes the saved-set back to the store.
func (s *Service) saveSavedIDs(ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding saved set: %w", err)
	}
	if err := s.store.Put(savedKey, string(raw)); err != nil {
		return fmt.Errorf("saving saved set: %w", err)
	}
	return nil
}

// SavedIDs returns the bookmarked posting identifiers in insertion order.
func (s *Service) SavedIDs() ([]string, error) {
	return s.loadSavedIDs()
}

// ToggleSaved bookmarks a posting, or removes the bookmark if it is
// already present. Returns whether the posting is saved afterwards.
func (s *Service) ToggleSaved(postingID string) (bool, error) {
	ids, err := s.loadSavedIDs()
	if err != nil {
		return false, err
	}

	idx := slices.Index(ids, postingID)
	saved := idx < 0
	if saved {
		ids = append(ids, postingID)
	} else {
		ids = slices.Delete(ids, idx, idx+1)
	}

	if err := s.saveSavedIDs(ids); err != nil {
		return false, err
	}

	s.logger.Info("saved set toggled", "posting", postingID, "saved", saved)
	return saved, nil
}

// IsSaved reports whether a posting is bookmarked.
func (s *Service) IsSaved(postingID string) (bool, error) {
	ids, err := s.loadSavedIDs()
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, postingID), nil
}

// SavedPostings resolves the saved-set against the catalog in insertion
// order. Identifiers that no longer resolve are silently dropped; the
// stored set is not rewritten.
func (s *Service) SavedPostings() ([]model.Posting, error) {
	ids, err := s.loadSavedIDs()
	if err != nil {
		return nil, err
	}

	var postings []model.Posting
	for _, id := range ids {
		if p, ok := s.catalog.ByID(id); ok {
			postings = append(postings, p)
		}
	}
	return postings, nil
}
