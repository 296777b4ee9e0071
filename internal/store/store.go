// Package store provides the durable key-value store behind every
// persisted concern: the preference record, the status ledger, the
// saved-set, and the per-day digest snapshots.
//
// The store is string key to string value, last-write-wins per key.
// The tracker assumes a single active writer (one user, one session);
// concurrent writers are not guarded against.
package store

// Store is the persisted key-value store.
type Store interface {
	// Get returns the value for key. The second return is false when
	// the key is absent.
	Get(key string) (string, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error

	// All returns every key-value pair in the store. Used for snapshot
	// backup and restore.
	All() (map[string]string, error)

	// Replace atomically swaps the entire store contents for the given
	// pairs. Used when restoring a snapshot.
	Replace(pairs map[string]string) error

	// Close closes the store.
	Close() error
}
