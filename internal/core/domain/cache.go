package domain

import (
	"errors"
	"time"

	"go.trai.ch/zerr"
)

// CacheIDAlphabet is the set of characters cache identifiers are drawn from.
const CacheIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const maxCacheIDLength = 64

// CacheEntry describes one cached copy in the cache store.
type CacheEntry struct {
	ID          string
	Size        int64
	Checksum    string
	ContentType string
	ModTime     time.Time
}

// ValidateCacheID reports whether id is a filesystem-safe cache identifier.
func ValidateCacheID(id string) error {
	if id == "" {
		return errors.Join(ErrInvalidArgument, zerr.New("cache id is empty"))
	}
	if len(id) > maxCacheIDLength {
		return errors.Join(ErrInvalidArgument, zerr.With(zerr.New("cache id is too long"), "cache_id", id))
	}
	for i := 0; i < len(id); i++ {
		if !isAlphanumeric(id[i]) {
			return errors.Join(ErrInvalidArgument, zerr.With(zerr.New("cache id must be alphanumeric"), "cache_id", id))
		}
	}
	return nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
