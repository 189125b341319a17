package domain

import "path/filepath"

const (
	// IntakeDirName is the name of the internal workspace directory.
	IntakeDirName = ".intake"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "intake.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// PrivateFilePerm is the permission for cached copies (rw-------).
	PrivateFilePerm = 0o600

	// MaxUploadSize is the largest accepted upload, in bytes (3000 KiB).
	MaxUploadSize int64 = 1024 * 3000

	// CacheIDLength is the length of generated cache identifiers.
	CacheIDLength = 12

	// MaxIDAttempts bounds how often a colliding cache identifier is redrawn.
	MaxIDAttempts = 8
)

// DefaultCachePath returns the default cache directory.
// It joins .intake and cache.
func DefaultCachePath() string {
	return filepath.Join(IntakeDirName, CacheDirName)
}
