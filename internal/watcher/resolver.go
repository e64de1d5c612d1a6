package watcher

import (
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/blackwell-systems/leafcare/internal/config"
	"github.com/blackwell-systems/leafcare/internal/store"
)

// Resolver maps care-log plant references to plant IDs. References go
// through the alias table first, then the store's ID, prefix and nickname
// lookup. Results are cached until Reset.
type Resolver struct {
	store   *store.Store
	aliases *config.AliasConfig

	mu    sync.RWMutex
	cache map[string]string
}

// NewResolver creates a Resolver. aliases may be nil.
func NewResolver(st *store.Store, aliases *config.AliasConfig) *Resolver {
	return &Resolver{
		store:   st,
		aliases: aliases,
		cache:   make(map[string]string),
	}
}

// Resolve returns the plant ID for ref and whether it was found.
func (r *Resolver) Resolve(ref string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(ref))

	r.mu.RLock()
	id, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return id, true
	}

	p, err := r.store.FindPlant(r.aliases.Resolve(ref))
	if err != nil {
		if !errors.Is(err, store.ErrPlantNotFound) {
			log.Printf("resolver: %v", err)
		}
		return "", false
	}

	r.mu.Lock()
	r.cache[key] = p.ID
	r.mu.Unlock()

	return p.ID, true
}

// Reset drops cached lookups, e.g. after plants are added or removed.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]string)
}
