package domain

import (
	"errors"
	"io/fs"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidArgument is returned when a required input is missing or malformed.
	ErrInvalidArgument = zerr.New("invalid argument")

	// ErrNotFound is returned when a path or cache identifier does not resolve.
	ErrNotFound = zerr.New("not found")

	// ErrSizeExceeded is returned when an upload is larger than the accepted maximum.
	ErrSizeExceeded = zerr.New("upload exceeds maximum size")

	// ErrPermissionDenied is returned when the underlying storage rejects access.
	ErrPermissionDenied = zerr.New("permission denied")

	// ErrIOFailure is returned for every other storage or stream error.
	ErrIOFailure = zerr.New("i/o failure")

	// ErrDuplicateName is returned when a display name is already indexed and duplicates are rejected.
	ErrDuplicateName = zerr.New("display name already ingested")

	// ErrCacheIDConflict is returned when a cache entry with the same identifier already exists.
	ErrCacheIDConflict = zerr.New("cache identifier already in use")

	// ErrBatchItemFailed marks a single failed item of a batch ingestion.
	ErrBatchItemFailed = zerr.New("batch item failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is outside its allowed set.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrNoFilesSpecified is returned when an upload is requested without any file.
	ErrNoFilesSpecified = zerr.New("no files specified")

	// ErrCleanFailed is returned when the cache directory cannot be emptied.
	ErrCleanFailed = zerr.New("failed to clean cache")
)

// Classify maps a filesystem or stream error onto the ingestion error taxonomy.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	default:
		return ErrIOFailure
	}
}

// Kind returns a short label for the taxonomy member err belongs to.
// It is used for metric labels and log attributes.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrSizeExceeded):
		return "size_exceeded"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrDuplicateName):
		return "duplicate_name"
	default:
		return "io_failure"
	}
}
