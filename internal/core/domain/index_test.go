package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/intake/internal/core/domain"
)

func TestIndex_MappingsAreIndependent(t *testing.T) {
	t.Parallel()

	idx := domain.NewIndex()
	idx.SetContent("x.txt", "1")
	idx.RecordUpload("a.txt", "hello", "AbCdEf123456")

	text, ok := idx.Content("x.txt")
	require.True(t, ok)
	assert.Equal(t, "1", text)

	_, ok = idx.CacheID("x.txt")
	assert.False(t, ok, "folder content must not imply a cache id")

	id, ok := idx.CacheID("a.txt")
	require.True(t, ok)
	assert.Equal(t, "AbCdEf123456", id)

	assert.Equal(t, []string{"a.txt", "x.txt"}, idx.Names())
	assert.True(t, idx.Has("x.txt"))
	assert.False(t, idx.Has("missing"))
}

func TestIndex_LastWriteWins(t *testing.T) {
	t.Parallel()

	idx := domain.NewIndex()
	idx.RecordUpload("a.txt", "first", "AAAAAAAAAAAA")
	idx.RecordUpload("a.txt", "second", "BBBBBBBBBBBB")

	text, _ := idx.Content("a.txt")
	id, _ := idx.CacheID("a.txt")
	assert.Equal(t, "second", text)
	assert.Equal(t, "BBBBBBBBBBBB", id)
}

func TestIndex_SnapshotsAreCopies(t *testing.T) {
	t.Parallel()

	idx := domain.NewIndex()
	idx.SetContent("a.txt", "hello")

	snapshot := idx.Contents()
	snapshot["a.txt"] = "mutated"
	snapshot["b.txt"] = "added"

	text, _ := idx.Content("a.txt")
	assert.Equal(t, "hello", text)
	assert.False(t, idx.Has("b.txt"))

	assert.Empty(t, idx.CacheIDs())
	assert.Empty(t, idx.MemoryDeltas())
	assert.Empty(t, idx.AccessCounts())
}

func TestIndex_AccessCounts(t *testing.T) {
	t.Parallel()

	idx := domain.NewIndex()
	idx.RecordUpload("a.txt", "hello", "AAAAAAAAAAAA")
	idx.RecordUpload("b.txt", "hello", "AAAAAAAAAAAA")
	idx.RecordUpload("c.txt", "other", "CCCCCCCCCCCC")

	assert.Equal(t, []string{"a.txt", "b.txt"}, idx.NamesForCacheID("AAAAAAAAAAAA"))
	assert.Empty(t, idx.NamesForCacheID("ZZZZZZZZZZZZ"))

	assert.Equal(t, int64(1), idx.IncrementAccess("a.txt"))
	assert.Equal(t, int64(2), idx.IncrementAccess("a.txt"))
	assert.Equal(t, int64(2), idx.AccessCount("a.txt"))
	assert.Equal(t, int64(0), idx.AccessCount("b.txt"))
}

func TestIndex_MemoryDeltas(t *testing.T) {
	t.Parallel()

	idx := domain.NewIndex()
	idx.SetMemoryDelta("a.txt", 4096)
	idx.SetMemoryDelta("b.txt", -128)

	delta, ok := idx.MemoryDelta("a.txt")
	require.True(t, ok)
	assert.Equal(t, int64(4096), delta)
	assert.Equal(t, map[string]int64{"a.txt": 4096, "b.txt": -128}, idx.MemoryDeltas())
}

func TestIndex_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	idx := domain.NewIndex()
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx.SetContent("shared", string(rune('a'+i%26)))
			idx.IncrementAccess("shared")
		}()
	}
	wg.Wait()

	assert.True(t, idx.Has("shared"))
	assert.Equal(t, int64(32), idx.AccessCount("shared"))
}
