package testutil

import (
	"testing"

	"jt-go/internal/store"
)

// NewTestStore creates an in-memory store. The store is closed when the
// test completes.
func NewTestStore(t *testing.T) store.Store {
	t.Helper()

	st := store.NewMemoryStore()
	t.Cleanup(func() {
		st.Close()
	})
	return st
}
