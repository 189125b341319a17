package ports

import "io"

// Upload is a handle to one file offered for ingestion.
//
//go:generate mockgen -source=upload.go -destination=mocks/mock_upload.go -package=mocks
type Upload interface {
	// Name returns the display name of the file.
	Name() string

	// Size returns the declared size in bytes, or -1 when unknown.
	// It is a hint; readers must still cap the stream.
	Size() int64

	// Open returns a fresh reader over the file content.
	Open() (io.ReadCloser, error)
}
