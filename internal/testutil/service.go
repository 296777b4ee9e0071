package testutil

import (
	"testing"

	"jt-go/internal/store"
	"jt-go/internal/track"
)

// NewTestService creates a Service over an in-memory store, the fixture
// catalog, a fixed clock and a sequential ID generator. The store is
// returned for tests that need to seed or inspect persisted values
// directly.
func NewTestService(t *testing.T) (*track.Service, store.Store, *StubClock) {
	t.Helper()

	st := NewTestStore(t)
	clock := FixedClock()
	svc := track.NewService(st, FixtureCatalog(), track.NewNopLogger(), clock, NewStubIDGenerator())
	return svc, st, clock
}
