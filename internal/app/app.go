package app

import (
	"fmt"
	"os"
	"time"

	"jt-go/internal/catalog"
	"jt-go/internal/config"
	"jt-go/internal/encryption"
	"jt-go/internal/model"
	"jt-go/internal/store"
	"jt-go/internal/track"
	"jt-go/internal/vault"
)

// JTApp is the application layer between the CLI and the track.Service.
// It constructs all dependencies from config, exposes high-level
// operations on raw string inputs, and manages the store lifecycle on
// Close.
type JTApp struct {
	cfg       *config.Config
	store     store.Store
	catalog   *catalog.Catalog
	vault     track.Vault // nil when no vault is configured
	encryptor track.Encryptor
	service   *track.Service
	clock     track.Clock
	logFile   *os.File
}

// NewJTApp creates a fully wired JTApp from the given config.
// operation identifies the CLI command being run (e.g. "SetStatus",
// "GenerateDigest"). The caller must call Close when done.
func NewJTApp(cfg *config.Config, operation string) (*JTApp, error) {
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	st, err := store.NewStoreFromConfig(cfg.Store, cfg.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	var v track.Vault
	if len(cfg.Vaults) > 0 {
		v, err = vault.NewVaultFromConfig(cfg.Vaults[0])
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("creating vault: %w", err)
		}
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger = logger.With("op", operation)

	clock := track.RealClock{}
	svc := track.NewService(st, cat, &slogAdapter{l: logger}, clock, track.UUIDGenerator{})

	return &JTApp{
		cfg:       cfg,
		store:     st,
		catalog:   cat,
		vault:     v,
		encryptor: enc,
		service:   svc,
		clock:     clock,
		logFile:   logFile,
	}, nil
}

// Catalog returns the loaded posting catalog.
func (a *JTApp) Catalog() *catalog.Catalog { return a.catalog }

// Preferences returns the saved preference record and whether one exists.
func (a *JTApp) Preferences() (model.Preferences, bool, error) {
	return a.service.Preferences()
}

// PreferencesForEdit returns the base record for a partial update:
// the stored record verbatim when one exists, otherwise a fresh
// default record. A stored value is never reshaped, so an explicit
// zero threshold survives later edits of unrelated fields.
func (a *JTApp) PreferencesForEdit() (model.Preferences, error) {
	prefs, ok, err := a.service.Preferences()
	if err != nil {
		return model.Preferences{}, err
	}
	if !ok {
		return model.DefaultPreferences(), nil
	}
	return prefs, nil
}

// SavePreferences overwrites the preference record wholesale.
func (a *JTApp) SavePreferences(prefs model.Preferences) error {
	return a.service.SavePreferences(prefs)
}

// ListPostings runs the scored catalog through the filter/sort pipeline.
func (a *JTApp) ListPostings(spec track.FilterSpec) ([]track.ScoredPosting, error) {
	return a.service.ListPostings(spec)
}

// GetStatus returns the application status for a posting.
func (a *JTApp) GetStatus(postingID string) (model.Status, error) {
	return a.service.GetStatus(postingID)
}

// SetStatus parses and records an application status for a posting.
func (a *JTApp) SetStatus(postingID, rawStatus string) (model.Status, error) {
	status, err := model.ParseStatus(rawStatus)
	if err != nil {
		return "", err
	}
	if _, ok := a.catalog.ByID(postingID); !ok {
		return "", fmt.Errorf("unknown posting: %s", postingID)
	}
	return status, a.service.SetStatus(postingID, status)
}

// AllStatuses returns the raw status ledger keyed by posting identifier.
func (a *JTApp) AllStatuses() (map[string]model.StatusEntry, error) {
	return a.service.AllStatuses()
}

// SavedIDs returns the bookmarked posting identifiers in insertion order.
func (a *JTApp) SavedIDs() ([]string, error) {
	return a.service.SavedIDs()
}

// RecentUpdates returns the n most recent non-default status updates.
func (a *JTApp) RecentUpdates(n int) ([]track.StatusUpdate, error) {
	return a.service.RecentUpdates(n)
}

// ToggleSaved bookmarks or un-bookmarks a posting.
func (a *JTApp) ToggleSaved(postingID string) (bool, error) {
	if _, ok := a.catalog.ByID(postingID); !ok {
		return false, fmt.Errorf("unknown posting: %s", postingID)
	}
	return a.service.ToggleSaved(postingID)
}

// SavedPostings resolves the saved-set in insertion order.
func (a *JTApp) SavedPostings() ([]model.Posting, error) {
	return a.service.SavedPostings()
}

// IsSaved reports whether a posting is bookmarked.
func (a *JTApp) IsSaved(postingID string) (bool, error) {
	return a.service.IsSaved(postingID)
}

// GenerateTodayDigest generates (or returns, if already committed)
// today's digest snapshot.
func (a *JTApp) GenerateTodayDigest() (model.DigestSnapshot, error) {
	return a.service.GenerateDigest(track.DayKey(a.clock.Now()))
}

// TodayDigest returns today's stored snapshot without generating one.
func (a *JTApp) TodayDigest() (model.DigestSnapshot, bool, error) {
	return a.service.DigestForDay(track.DayKey(a.clock.Now()))
}

// HydrateDigest resolves a snapshot against the catalog.
func (a *JTApp) HydrateDigest(snap model.DigestSnapshot) []track.DigestEntry {
	return a.service.HydrateDigest(snap)
}

// DigestText renders today's stored digest as plain text. The second
// return is false when today has no snapshot yet.
func (a *JTApp) DigestText() (string, bool, error) {
	snap, ok, err := a.TodayDigest()
	if err != nil || !ok {
		return "", ok, err
	}
	entries := a.service.HydrateDigest(snap)
	return track.RenderDigestText(entries, a.clock.Now()), true, nil
}

// CryptInit performs one-time encryption key setup.
func (a *JTApp) CryptInit(passphrase string) error {
	return a.encryptor.Setup(passphrase)
}

// Close closes all resources.
func (a *JTApp) Close() error {
	err := a.store.Close()
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}
