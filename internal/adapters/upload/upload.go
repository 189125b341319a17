// Package upload provides ports.Upload handles over files, byte slices and streams.
package upload

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// File is an upload backed by a file on an afero filesystem.
// Its display name is the base name of the path.
type File struct {
	fs   afero.Fs
	path string
}

// NewFile creates an upload for path on fsys.
func NewFile(fsys afero.Fs, path string) *File {
	return &File{fs: fsys, path: path}
}

// Name returns the base name of the file.
func (f *File) Name() string {
	return filepath.Base(f.path)
}

// Path returns the full path of the file.
func (f *File) Path() string {
	return f.path
}

// Size returns the size reported by the filesystem, or -1 if it cannot be read.
func (f *File) Size() int64 {
	info, err := f.fs.Stat(f.path)
	if err != nil || info.IsDir() {
		return -1
	}
	return info.Size()
}

// Open opens the file for reading.
func (f *File) Open() (io.ReadCloser, error) {
	return f.fs.Open(f.path)
}

// Bytes is an upload over an in-memory buffer.
type Bytes struct {
	name string
	data []byte
}

// NewBytes creates an upload named name holding data.
func NewBytes(name string, data []byte) *Bytes {
	return &Bytes{name: name, data: data}
}

// Name returns the display name.
func (b *Bytes) Name() string { return b.name }

// Size returns the length of the buffer.
func (b *Bytes) Size() int64 { return int64(len(b.data)) }

// Open returns a reader over the buffer.
func (b *Bytes) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

// Stream is a single-use upload over an arbitrary reader whose length may be unknown.
type Stream struct {
	name string
	r    io.Reader
	size int64
}

// NewStream creates an upload named name reading from r. Pass -1 when size is unknown.
func NewStream(name string, r io.Reader, size int64) *Stream {
	return &Stream{name: name, r: r, size: size}
}

// Name returns the display name.
func (s *Stream) Name() string { return s.name }

// Size returns the declared size.
func (s *Stream) Size() int64 { return s.size }

// Open returns the underlying reader. Closing it closes r if r is an io.Closer.
func (s *Stream) Open() (io.ReadCloser, error) {
	if rc, ok := s.r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(s.r), nil
}
