package vault

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"jt-go/internal/track"
)

// MemoryVault is an in-memory implementation of the Vault interface.
// It stores snapshots in memory, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryVault struct {
	name      string
	snapshots map[string][]byte // profileID -> snapshot
	versions  map[string]int64  // profileID -> version
	mu        sync.RWMutex
}

var _ track.Vault = (*MemoryVault)(nil)

// NewMemoryVault creates a new in-memory vault with the given name.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:      name,
		snapshots: make(map[string][]byte),
		versions:  make(map[string]int64),
	}
}

// PutSnapshot stores the snapshot for a profile, replacing any previous one.
func (m *MemoryVault) PutSnapshot(profileID string, r io.Reader, size int64, version int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[profileID] = data
	m.versions[profileID] = version
	return nil
}

// GetSnapshot retrieves the snapshot for a profile.
func (m *MemoryVault) GetSnapshot(profileID string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.snapshots[profileID]
	if !ok {
		return fmt.Errorf("snapshot not found for profile: %s", profileID)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

// GetSnapshotVersion returns the snapshot version for a profile.
// Returns 0 if no snapshot has been stored for this profile.
func (m *MemoryVault) GetSnapshotVersion(profileID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.versions[profileID], nil
}

// ValidateSetup always succeeds for in-memory vault.
func (m *MemoryVault) ValidateSetup() error {
	return nil
}
