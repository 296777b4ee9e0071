package track

import (
	"encoding/json"
	"fmt"

	"jt-go/internal/model"
)

// Preferences returns the saved preference record. The second return
// distinguishes "never saved" from "saved, even if equal to defaults":
// downstream gates (scoring activation, digest availability, the
// threshold toggle) check existence, not equality to defaults.
//
// A stored value that fails to parse is treated as absent.
func (s *Service) Preferences() (model.Preferences, bool, error) {
	raw, ok, err := s.store.Get(prefsKey)
	if err != nil {
		return model.Preferences{}, false, fmt.Errorf("reading preferences: %w", err)
	}
	if !ok {
		return model.Preferences{}, false, nil
	}

	var prefs model.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.logger.Warn("discarding unparseable preference record", "error", err)
		return model.Preferences{}, false, nil
	}
	return prefs, true, nil
}

// HasPreferences reports whether a preference record exists,
// independent of its contents.
func (s *Service) HasPreferences() (bool, error) {
	_, ok, err := s.Preferences()
	return ok, err
}

// SavePreferences overwrites the preference record wholesale.
func (s *Service) SavePreferences(prefs model.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := s.store.Put(prefsKey, string(raw)); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	s.logger.Info("preferences saved", "minMatchScore", prefs.MinMatchScore)
	return nil
}
