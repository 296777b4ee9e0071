package track

import "io"

// Vault provides an interface for store snapshot storage backends.
// A snapshot is the full serialized contents of the persisted store
// (preferences, status ledger, saved-set, digest snapshots), uploaded
// as one blob per profile.
type Vault interface {
	// PutSnapshot stores the snapshot for a profile, replacing any
	// previous one. size is the number of bytes that will be read from r.
	// version is stored alongside the snapshot for consistency checks.
	PutSnapshot(profileID string, r io.Reader, size int64, version int64) error

	// GetSnapshot retrieves the snapshot for a profile and writes it to w.
	GetSnapshot(profileID string, w io.Writer) error

	// GetSnapshotVersion returns the stored snapshot version for a
	// profile. Returns 0 if no snapshot has been stored.
	GetSnapshotVersion(profileID string) (int64, error)

	// ValidateSetup verifies that the vault is accessible and properly configured.
	ValidateSetup() error
}
