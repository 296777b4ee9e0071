// Package track implements the matching, filtering and daily-digest
// engine: the scoring function, the filter/sort pipeline, the status
// ledger, the saved-set, and the idempotent per-day digest snapshot.
//
// All persisted state lives behind a store.Store, one key per concern.
// Values are JSON; a value that fails to parse is treated as absent
// rather than surfaced as an error, so a corrupt record can never wedge
// the tracker.
package track

import (
	"errors"

	"jt-go/internal/catalog"
	"jt-go/internal/store"
)

// Store keys, one per persisted concern.
const (
	prefsKey        = "preferences"
	ledgerKey       = "status_ledger"
	savedKey        = "saved_jobs"
	digestKeyPrefix = "digest_" // digest_<YYYY-MM-DD>
)

// ErrNoPreferences is returned by operations that require a saved
// preference record when none exists. Saving defaults counts as a
// record; never having saved does not.
var ErrNoPreferences = errors.New("no preferences set")

// Service is the orchestration layer that coordinates the catalog, the
// persisted store, and the pure scoring/filtering functions to perform
// the high-level operations needed by the CLI.
type Service struct {
	store   store.Store
	catalog *catalog.Catalog
	logger  Logger
	clock   Clock
	idgen   IDGenerator
}

// NewService creates a new Service with the provided dependencies.
func NewService(st store.Store, cat *catalog.Catalog, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		store:   st,
		catalog: cat,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
	}
}

// Catalog returns the posting catalog the service was built with.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }
