package watcher

import (
	"testing"
	"time"

	"github.com/blackwell-systems/leafcare/internal/plants"
	"github.com/blackwell-systems/leafcare/internal/store"
)

// setupTestStore creates an in-memory SQLite store for tests and registers
// cleanup with t.Cleanup so callers don't need explicit defer.
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("setupTestStore: open: %v", err)
	}
	if err := st.CreateSchema(); err != nil {
		st.Close()
		t.Fatalf("setupTestStore: schema: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// insertPlant is a convenience helper for test plant creation.
func insertPlant(t *testing.T, st *store.Store, id, nickname string) {
	t.Helper()
	p := &plants.Plant{
		ID:                      id,
		Nickname:                nickname,
		CommonName:              "pothos",
		Archetype:               "pothos",
		WateringIntervalDays:    7,
		FertilizingIntervalDays: 30,
		CreatedAt:               time.Now().Add(-30 * 24 * time.Hour),
	}
	if err := st.InsertPlant(p); err != nil {
		t.Fatalf("InsertPlant(%s): %v", id, err)
	}
}
