package analyzer

import "github.com/blackwell-systems/leafcare/internal/store"

// Analyzer scores stored plants and derives reminders from their care history.
type Analyzer struct {
	store *store.Store
}

// New creates a new Analyzer instance with the given store.
func New(store *store.Store) *Analyzer {
	return &Analyzer{store: store}
}
