// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/intake/internal/core/domain"

// CacheStore owns the cache directory and stores byte content keyed by cache identifier.
//
//go:generate mockgen -source=cache_store.go -destination=mocks/mock_cache_store.go -package=mocks
type CacheStore interface {
	// Put writes data under id.
	// It fails with domain.ErrCacheIDConflict if an entry for id already exists.
	Put(id string, data []byte) (domain.CacheEntry, error)

	// Get returns the content stored under id.
	// It fails with domain.ErrNotFound if no entry exists.
	Get(id string) ([]byte, error)

	// Stat returns the metadata of the entry stored under id.
	Stat(id string) (domain.CacheEntry, error)

	// List returns every entry in the store, ordered by identifier.
	List() ([]domain.CacheEntry, error)

	// Clear removes every entry from the store, leaving the directory in place.
	Clear() error
}
