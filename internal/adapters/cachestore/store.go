// Package cachestore implements the private on-disk cache of ingested uploads.
package cachestore

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/zerr"
)

const tempPrefix = ".put-"

// Store implements ports.CacheStore as one file per entry in a flat directory.
type Store struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

// NewStore creates a Store rooted at dir. The directory must already exist.
func NewStore(fsys afero.Fs, dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.Join(domain.ErrInvalidArgument, zerr.New("cache directory is empty"))
	}
	info, err := fsys.Stat(dir)
	if err != nil {
		return nil, errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to open cache directory"), "path", dir))
	}
	if !info.IsDir() {
		return nil, errors.Join(domain.ErrInvalidArgument, zerr.With(zerr.New("cache path is not a directory"), "path", dir))
	}
	return &Store{fs: fsys, dir: filepath.Clean(dir)}, nil
}

// Put writes data under id using a temp file and a rename.
func (s *Store) Put(id string, data []byte) (domain.CacheEntry, error) {
	if err := domain.ValidateCacheID(id); err != nil {
		return domain.CacheEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(id)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return domain.CacheEntry{}, s.wrap(err, "failed to check cache entry", id)
	}
	if exists {
		return domain.CacheEntry{}, errors.Join(domain.ErrCacheIDConflict, zerr.With(zerr.New("cache entry exists"), "cache_id", id))
	}

	tmp, err := afero.TempFile(s.fs, s.dir, tempPrefix+"*")
	if err != nil {
		return domain.CacheEntry{}, s.wrap(err, "failed to create temp file", id)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpPath)
		return domain.CacheEntry{}, s.wrap(err, "failed to write cache entry", id)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpPath)
		return domain.CacheEntry{}, s.wrap(err, "failed to close cache entry", id)
	}
	if err := s.fs.Chmod(tmpPath, domain.PrivateFilePerm); err != nil {
		_ = s.fs.Remove(tmpPath)
		return domain.CacheEntry{}, s.wrap(err, "failed to restrict cache entry", id)
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return domain.CacheEntry{}, s.wrap(err, "failed to commit cache entry", id)
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return domain.CacheEntry{}, s.wrap(err, "failed to stat cache entry", id)
	}
	return entryFor(id, info, data), nil
}

// Get returns the bytes stored under id.
func (s *Store) Get(id string) ([]byte, error) {
	if err := domain.ValidateCacheID(id); err != nil {
		return nil, notFound(id)
	}
	data, err := afero.ReadFile(s.fs, s.path(id))
	if err != nil {
		return nil, s.wrap(err, "failed to read cache entry", id)
	}
	return data, nil
}

// Stat returns the metadata of the entry stored under id.
func (s *Store) Stat(id string) (domain.CacheEntry, error) {
	if err := domain.ValidateCacheID(id); err != nil {
		return domain.CacheEntry{}, notFound(id)
	}
	path := s.path(id)
	info, err := s.fs.Stat(path)
	if err != nil {
		return domain.CacheEntry{}, s.wrap(err, "failed to stat cache entry", id)
	}
	if !info.Mode().IsRegular() {
		return domain.CacheEntry{}, notFound(id)
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return domain.CacheEntry{}, s.wrap(err, "failed to read cache entry", id)
	}
	return entryFor(id, info, data), nil
}

// List returns every entry, ordered by identifier. Files that are not
// cache entries are skipped.
func (s *Store) List() ([]domain.CacheEntry, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to list cache directory"), "path", s.dir))
	}

	entries := make([]domain.CacheEntry, 0, len(infos))
	for _, info := range infos {
		if !info.Mode().IsRegular() || domain.ValidateCacheID(info.Name()) != nil {
			continue
		}
		entry, err := s.Stat(info.Name())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Clear removes every entry and any leftover temp file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to list cache directory"), "path", s.dir))
	}
	for _, info := range infos {
		name := info.Name()
		if !info.Mode().IsRegular() {
			continue
		}
		if domain.ValidateCacheID(name) != nil && !strings.HasPrefix(name, tempPrefix) {
			continue
		}
		if err := s.fs.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s.wrap(err, "failed to remove cache entry", name)
		}
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id)
}

func (s *Store) wrap(err error, msg, id string) error {
	return errors.Join(domain.Classify(err), zerr.With(zerr.With(zerr.Wrap(err, msg), "cache_id", id), "path", s.dir))
}

func notFound(id string) error {
	return errors.Join(domain.ErrNotFound, zerr.With(zerr.New("no cache entry"), "cache_id", id))
}

func entryFor(id string, info fs.FileInfo, data []byte) domain.CacheEntry {
	return domain.CacheEntry{
		ID:          id,
		Size:        info.Size(),
		Checksum:    fmt.Sprintf("%016x", xxhash.Sum64(data)),
		ContentType: mimetype.Detect(data).String(),
		ModTime:     info.ModTime(),
	}
}
