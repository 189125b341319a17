// Package ingest implements the file ingestion service: reading resident
// files, caching size-bounded uploads, batch and folder ingestion.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/intake/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options tunes the ingestion policies.
type Options struct {
	MaxUploadSize int64
	Duplicates    domain.DuplicatePolicy
	OnError       domain.FailurePolicy
}

// OptionsFromConfig extracts the ingestion options from cfg.
func OptionsFromConfig(cfg *domain.Config) Options {
	return Options{
		MaxUploadSize: cfg.MaxUploadBytes,
		Duplicates:    cfg.Duplicates,
		OnError:       cfg.OnError,
	}
}

// Service ingests file content into the index and the cache store.
// Mutating operations are serialised, so batch memory windows never overlap.
type Service struct {
	fs      afero.Fs
	store   ports.CacheStore
	ids     ports.IdentifierGenerator
	probe   ports.MemoryProbe
	logger  ports.Logger
	tracer  ports.Tracer
	metrics ports.Metrics
	opts    Options

	mu             sync.Mutex
	index          *domain.Index
	selectedFolder string
}

// NewService creates a Service with an empty index.
func NewService(
	fsys afero.Fs,
	store ports.CacheStore,
	ids ports.IdentifierGenerator,
	probe ports.MemoryProbe,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
	opts Options,
) *Service {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = domain.MaxUploadSize
	}
	if opts.Duplicates == "" {
		opts.Duplicates = domain.DuplicatesOverwrite
	}
	if opts.OnError == "" {
		opts.OnError = domain.FailAbort
	}
	return &Service{
		fs:      fsys,
		store:   store,
		ids:     ids,
		probe:   probe,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
		opts:    opts,
		index:   domain.NewIndex(),
	}
}

// Index returns the ingestion index.
func (s *Service) Index() *domain.Index {
	return s.index
}

// SelectedFolder returns the path the last IngestFolder call received from its picker.
func (s *Service) SelectedFolder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedFolder
}

// ReadPath returns the text of the file at path. It does not touch the index or the cache.
func (s *Service) ReadPath(ctx context.Context, path string) (text string, err error) {
	_, span := s.tracer.Start(ctx, "ingest.read_path")
	defer func() {
		span.RecordError(err)
		span.End()
	}()
	span.SetAttribute("path", path)

	if path == "" {
		return "", errors.Join(domain.ErrInvalidArgument, zerr.New("path is empty"))
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return "", errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path))
	}
	if info.IsDir() {
		return "", errors.Join(domain.ErrNotFound, zerr.With(zerr.New("path is a directory"), "path", path))
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to read file"), "path", path))
	}
	return decodeText(data)
}

// IngestUpload reads u, stores a private copy under a fresh cache identifier
// and records its text and identifier under the upload's display name.
// Nothing is recorded when the upload fails.
func (s *Service) IngestUpload(ctx context.Context, u ports.Upload) (domain.IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ingestUpload(ctx, u)
}

func (s *Service) ingestUpload(ctx context.Context, u ports.Upload) (result domain.IngestResult, err error) {
	name := u.Name()
	_, span := s.tracer.Start(ctx, "ingest.upload")
	defer func() {
		s.metrics.ObserveIngest(domain.SourceUpload, result.Entry.Size, err)
		span.RecordError(err)
		span.End()
	}()
	span.SetAttribute("name", name)

	if name == "" {
		return result, errors.Join(domain.ErrInvalidArgument, zerr.New("upload has no display name"))
	}
	if err := s.checkDuplicate(name); err != nil {
		return result, err
	}

	limit := s.opts.MaxUploadSize
	if declared := u.Size(); declared > limit {
		return result, sizeExceeded(name, declared, limit)
	}

	data, err := readLimited(u, limit)
	if err != nil {
		return result, err
	}
	if int64(len(data)) > limit {
		return result, sizeExceeded(name, int64(len(data)), limit)
	}

	entry, err := s.putWithFreshID(data)
	if err != nil {
		return result, err
	}
	span.SetAttribute("cache_id", entry.ID)

	cached, err := s.store.Get(entry.ID)
	if err != nil {
		return result, err
	}
	text, err := decodeText(cached)
	if err != nil {
		return result, err
	}

	s.index.RecordUpload(name, text, entry.ID)
	s.logger.Info(fmt.Sprintf("cached %s as %s (%s)", name, entry.ID, humanize.Bytes(uint64(entry.Size)))) //nolint:gosec // sizes are non-negative

	return domain.IngestResult{Name: name, Entry: entry}, nil
}

// readLimited reads at most limit+1 bytes so oversized streams are detected without buffering them.
func readLimited(u ports.Upload, limit int64) ([]byte, error) {
	rc, err := u.Open()
	if err != nil {
		return nil, errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to open upload"), "name", u.Name()))
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to read upload"), "name", u.Name()))
	}
	return data, nil
}

// putWithFreshID stores data under a generated identifier, drawing a new one
// whenever the store reports a collision.
func (s *Service) putWithFreshID(data []byte) (domain.CacheEntry, error) {
	for attempt := 1; attempt <= domain.MaxIDAttempts; attempt++ {
		id := s.ids.Next()
		entry, err := s.store.Put(id, data)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, domain.ErrCacheIDConflict) {
			return domain.CacheEntry{}, err
		}
		s.logger.Warn(fmt.Sprintf("cache id %s already in use, drawing another", id))
	}
	return domain.CacheEntry{}, errors.Join(domain.ErrIOFailure,
		zerr.With(zerr.New("no free cache identifier"), "attempts", domain.MaxIDAttempts))
}

// ReadCached returns the text of the cached copy id and counts one access for
// every display name mapped to it.
func (s *Service) ReadCached(ctx context.Context, id string) (text string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.tracer.Start(ctx, "ingest.read_cached")
	defer func() {
		s.metrics.ObserveCacheRead(err)
		span.RecordError(err)
		span.End()
	}()
	span.SetAttribute("cache_id", id)

	data, err := s.store.Get(id)
	if err != nil {
		return "", err
	}
	text, err = decodeText(data)
	if err != nil {
		return "", err
	}
	for _, name := range s.index.NamesForCacheID(id) {
		s.index.IncrementAccess(name)
	}
	return text, nil
}

// IngestBatch ingests uploads one at a time in input order, recording the
// memory growth around each successful item.
//
// With domain.FailAbort the batch stops at the first failing item and returns
// its error; items before it stay ingested. With domain.FailContinue every item
// is attempted and the failures are returned joined. A cancelled context stops
// the batch between items under either policy.
func (s *Service) IngestBatch(ctx context.Context, uploads []ports.Upload) (result domain.BatchResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result.ID = uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "ingest.batch")
	defer func() {
		span.RecordError(err)
		span.End()
	}()
	span.SetAttribute("batch_id", result.ID)
	span.SetAttribute("items", len(uploads))

	var failures []error
	for i, u := range uploads {
		if ctxErr := ctx.Err(); ctxErr != nil {
			failures = append(failures, errors.Join(ctxErr,
				zerr.With(zerr.With(zerr.New("batch cancelled"), "batch_id", result.ID), "position", i)))
			break
		}

		before := s.probe.Snapshot()
		res, itemErr := s.ingestUpload(ctx, u)
		after := s.probe.Snapshot()

		item := domain.BatchItem{Position: i, Name: u.Name(), Entry: res.Entry}
		if itemErr != nil {
			item.Err = batchItemError(result.ID, i, item.Name, itemErr)
			result.Items = append(result.Items, item)
			if s.opts.OnError == domain.FailAbort {
				s.logBatch(result, len(uploads))
				return result, item.Err
			}
			failures = append(failures, item.Err)
			continue
		}

		item.MemoryDelta = after - before
		s.index.SetMemoryDelta(item.Name, item.MemoryDelta)
		s.metrics.ObserveMemoryDelta(item.MemoryDelta)
		result.Items = append(result.Items, item)
	}

	s.logBatch(result, len(uploads))
	return result, errors.Join(failures...)
}

func (s *Service) logBatch(result domain.BatchResult, total int) {
	s.logger.Info(fmt.Sprintf("batch %s: %d of %d uploads ingested", result.ID, result.Succeeded(), total))
}

func batchItemError(batchID string, position int, name string, err error) error {
	detail := zerr.With(zerr.New("batch item failed"), "batch_id", batchID)
	detail = zerr.With(detail, "position", position)
	detail = zerr.With(detail, "name", name)
	return errors.Join(domain.ErrBatchItemFailed, detail, err)
}

// IngestFolder asks picker for a directory and reads every regular file directly
// inside it into the index. Symbolic links to regular files count as files. The picked path becomes the selected folder even
// when it is not a directory, in which case nothing else happens.
// Folder files are never written to the cache store.
func (s *Service) IngestFolder(ctx context.Context, picker ports.FolderPicker) (result domain.FolderResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "ingest.folder")
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	path := picker.PickFolder(ctx)
	s.selectedFolder = path
	result.Path = path
	span.SetAttribute("path", path)

	if path == "" {
		return result, nil
	}
	if ok, statErr := afero.DirExists(s.fs, path); statErr != nil || !ok {
		return result, nil
	}

	infos, err := afero.ReadDir(s.fs, path)
	if err != nil {
		return result, errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to list folder"), "path", path))
	}
	result.Ingested = true

	for _, info := range infos {
		name := info.Name()
		full := filepath.Join(path, name)
		if info.Mode()&fs.ModeSymlink != 0 {
			// Dangling links are skipped.
			target, statErr := s.fs.Stat(full)
			if statErr != nil {
				continue
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if err := s.ingestFolderFile(full, name); err != nil {
			return result, err
		}
		result.Files = append(result.Files, name)
	}

	span.SetAttribute("files", result.Files)
	s.logger.Info(fmt.Sprintf("read %d files from %s", len(result.Files), path))
	return result, nil
}

func (s *Service) ingestFolderFile(path, name string) (err error) {
	var size int64
	defer func() { s.metrics.ObserveIngest(domain.SourceFolder, size, err) }()

	if err := s.checkDuplicate(name); err != nil {
		return err
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to read folder file"), "path", path))
	}
	size = int64(len(data))
	text, err := decodeText(data)
	if err != nil {
		return err
	}
	s.index.SetContent(name, text)
	return nil
}

func (s *Service) checkDuplicate(name string) error {
	if s.opts.Duplicates == domain.DuplicatesReject && s.index.Has(name) {
		return errors.Join(domain.ErrDuplicateName, zerr.With(zerr.New("display name already ingested"), "name", name))
	}
	return nil
}

func sizeExceeded(name string, size, limit int64) error {
	detail := zerr.With(zerr.New("upload too large"), "name", name)
	detail = zerr.With(detail, "size", size)
	detail = zerr.With(detail, "max", limit)
	return errors.Join(domain.ErrSizeExceeded, detail)
}
