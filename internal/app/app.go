// Package app implements the application layer for intake.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"go.trai.ch/intake/internal/adapters/picker" //nolint:depguard // Wired in app layer
	"go.trai.ch/intake/internal/adapters/upload" //nolint:depguard // Wired in app layer
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/intake/internal/core/ports"
	"go.trai.ch/intake/internal/engine/ingest"
	"go.trai.ch/zerr"
)

// MetricsExporter writes the collected metrics to a file.
type MetricsExporter interface {
	WriteTextfile(path string) error
}

// App represents the main application logic.
type App struct {
	service *ingest.Service
	store   ports.CacheStore
	picker  ports.FolderPicker
	logger  ports.Logger
	fs      afero.Fs
	stdin   io.Reader
	metrics MetricsExporter
}

// New creates a new App instance.
func New(
	service *ingest.Service,
	store ports.CacheStore,
	folderPicker ports.FolderPicker,
	logger ports.Logger,
	fsys afero.Fs,
	metrics MetricsExporter,
) *App {
	return &App{
		service: service,
		store:   store,
		picker:  folderPicker,
		logger:  logger,
		fs:      fsys,
		stdin:   os.Stdin,
		metrics: metrics,
	}
}

// WithStdin sets the reader used for the "-" upload path.
func (a *App) WithStdin(r io.Reader) *App {
	a.stdin = r
	return a
}

// Read returns the text of the file at path.
func (a *App) Read(ctx context.Context, path string) (string, error) {
	return a.service.ReadPath(ctx, path)
}

// StdinPath is the upload path that reads standard input.
const StdinPath = "-"

// UploadOptions configures the Upload method.
type UploadOptions struct {
	// StdinName is the display name of content read from standard input.
	StdinName string
}

// Upload ingests the local files at paths as one batch.
// The path "-" reads standard input once, under opts.StdinName.
func (a *App) Upload(ctx context.Context, paths []string, opts UploadOptions) (domain.BatchResult, error) {
	if len(paths) == 0 {
		return domain.BatchResult{}, domain.ErrNoFilesSpecified
	}

	uploads := make([]ports.Upload, 0, len(paths))
	stdinUsed := false
	for _, p := range paths {
		if p != StdinPath {
			uploads = append(uploads, upload.NewFile(a.fs, p))
			continue
		}
		if stdinUsed {
			return domain.BatchResult{}, errors.Join(domain.ErrInvalidArgument, zerr.New("standard input can only be uploaded once"))
		}
		stdinUsed = true
		name := opts.StdinName
		if name == "" {
			name = "stdin"
		}
		uploads = append(uploads, upload.NewStream(name, a.stdin, -1))
	}

	return a.service.IngestBatch(ctx, uploads)
}

// FolderOptions configures the Folder method.
type FolderOptions struct {
	// Path skips the interactive picker when set.
	Path string
}

// Folder ingests every regular file of a picked folder.
func (a *App) Folder(ctx context.Context, opts FolderOptions) (domain.FolderResult, error) {
	var folderPicker ports.FolderPicker = a.picker
	if opts.Path != "" {
		folderPicker = picker.NewStatic(opts.Path)
	}

	result, err := a.service.IngestFolder(ctx, folderPicker)
	if err != nil {
		return result, err
	}
	if !result.Ingested {
		a.logger.Warn("no folder selected")
	}
	return result, nil
}

// Cached returns the text stored under the cache identifier id.
func (a *App) Cached(ctx context.Context, id string) (string, error) {
	return a.service.ReadCached(ctx, id)
}

// List returns every entry of the cache store.
func (a *App) List(_ context.Context) ([]domain.CacheEntry, error) {
	entries, err := a.store.List()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list cache entries")
	}
	return entries, nil
}

// Clean removes every cached copy.
func (a *App) Clean(_ context.Context) error {
	entries, err := a.store.List()
	if err != nil {
		return zerr.Wrap(err, "failed to list cache entries")
	}

	var total int64
	for _, e := range entries {
		total += e.Size
	}

	a.logger.Info(fmt.Sprintf("removing %d cache entries...", len(entries)))
	if err := a.store.Clear(); err != nil {
		return errors.Join(domain.ErrCleanFailed, err)
	}
	a.logger.Info(fmt.Sprintf("removed %d cache entries (%s)", len(entries), humanize.Bytes(uint64(total)))) //nolint:gosec // sizes are non-negative
	return nil
}

// WriteMetrics writes the metrics collected by this process to path.
func (a *App) WriteMetrics(path string) error {
	if a.metrics == nil {
		return nil
	}
	return a.metrics.WriteTextfile(path)
}
