package store

import "sync"

// MemoryStore is an in-memory implementation of the Store interface.
// Nothing survives process exit, making it useful for tests and
// throwaway runs. This implementation is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	pairs map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pairs: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.pairs[key]
	return value, ok, nil
}

func (m *MemoryStore) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairs[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pairs, key)
	return nil
}

func (m *MemoryStore) All() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pairs := make(map[string]string, len(m.pairs))
	for k, v := range m.pairs {
		pairs[k] = v
	}
	return pairs, nil
}

func (m *MemoryStore) Replace(pairs map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairs = make(map[string]string, len(pairs))
	for k, v := range pairs {
		m.pairs[k] = v
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
