// Package domain holds the core types of intake: cache entries, the ingestion
// index, configuration and the error taxonomy.
package domain

import (
	"maps"
	"slices"
	"sync"
)

// Index is the in-memory bookkeeping of ingested files, keyed by display name.
// It holds four independent mappings; a name may appear in some and not others.
// Index performs no validation of its own.
type Index struct {
	mu           sync.RWMutex
	content      map[string]string
	cacheIDs     map[string]string
	memoryDeltas map[string]int64
	accessCounts map[string]int64
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{
		content:      make(map[string]string),
		cacheIDs:     make(map[string]string),
		memoryDeltas: make(map[string]int64),
		accessCounts: make(map[string]int64),
	}
}

// SetContent records the text content for name.
func (x *Index) SetContent(name, text string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.content[name] = text
}

// Content returns the text content recorded for name.
func (x *Index) Content(name string) (string, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	text, ok := x.content[name]
	return text, ok
}

// SetCacheID records the cache identifier for name.
func (x *Index) SetCacheID(name, id string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.cacheIDs[name] = id
}

// CacheID returns the cache identifier recorded for name.
func (x *Index) CacheID(name string) (string, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	id, ok := x.cacheIDs[name]
	return id, ok
}

// RecordUpload sets both the content and the cache identifier of name in one step.
func (x *Index) RecordUpload(name, text, id string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.content[name] = text
	x.cacheIDs[name] = id
}

// SetMemoryDelta records the memory growth attributed to ingesting name.
func (x *Index) SetMemoryDelta(name string, delta int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.memoryDeltas[name] = delta
}

// MemoryDelta returns the memory growth recorded for name.
func (x *Index) MemoryDelta(name string) (int64, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	delta, ok := x.memoryDeltas[name]
	return delta, ok
}

// IncrementAccess bumps the access count of name and returns the new value.
func (x *Index) IncrementAccess(name string) int64 {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.accessCounts[name]++
	return x.accessCounts[name]
}

// AccessCount returns how often the cached copy of name was read.
func (x *Index) AccessCount(name string) int64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.accessCounts[name]
}

// Has reports whether name has content or a cache identifier recorded.
func (x *Index) Has(name string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, inContent := x.content[name]
	_, inCache := x.cacheIDs[name]
	return inContent || inCache
}

// NamesForCacheID returns the display names whose cache identifier is id, sorted.
func (x *Index) NamesForCacheID(id string) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var names []string
	for name, cacheID := range x.cacheIDs {
		if cacheID == id {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Names returns every display name known to the index, sorted.
func (x *Index) Names() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	seen := make(map[string]struct{}, len(x.content)+len(x.cacheIDs))
	for name := range x.content {
		seen[name] = struct{}{}
	}
	for name := range x.cacheIDs {
		seen[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Contents returns a copy of the content mapping.
func (x *Index) Contents() map[string]string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return maps.Clone(x.content)
}

// CacheIDs returns a copy of the cache identifier mapping.
func (x *Index) CacheIDs() map[string]string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return maps.Clone(x.cacheIDs)
}

// MemoryDeltas returns a copy of the memory delta mapping.
func (x *Index) MemoryDeltas() map[string]int64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return maps.Clone(x.memoryDeltas)
}

// AccessCounts returns a copy of the access count mapping.
func (x *Index) AccessCounts() map[string]int64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return maps.Clone(x.accessCounts)
}
