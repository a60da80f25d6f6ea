// Package filesystem implements sinks, sources and a document store on the
// local filesystem and on plain io streams.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	pkgerrors "cathedral-bridge/pkg/errors"
)

// DefaultMaxBytes bounds how much a source reads before giving up
const DefaultMaxBytes int64 = 64 << 20

// FileSink writes a document atomically: the bytes go to a temporary file in
// the target directory, which is synced and then renamed over the target.
// On any failure the temporary file is removed and the target is untouched.
type FileSink struct {
	path string
	perm os.FileMode

	// wrap lets tests interpose on the temp file writer
	wrap func(io.Writer) io.Writer
}

// NewFileSink creates a sink for path
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, perm: 0o644}
}

// Location implements ports.Sink
func (s *FileSink) Location() string {
	return s.path
}

// Write implements ports.Sink
func (s *FileSink) Write(ctx context.Context, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.NewSinkError(s.path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return pkgerrors.NewSinkError(s.path, err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	var w io.Writer = tmp
	if s.wrap != nil {
		w = s.wrap(tmp)
	}
	if _, err := w.Write(data); err != nil {
		return pkgerrors.NewSinkError(s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		return pkgerrors.NewSinkError(s.path, err)
	}
	if err := tmp.Chmod(s.perm); err != nil {
		return pkgerrors.NewSinkError(s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.NewSinkError(s.path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return pkgerrors.NewSinkError(s.path, err)
	}
	committed = true

	syncDir(dir)
	return nil
}

// syncDir flushes the rename to disk where the platform allows it
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}

// FileSource reads a whole document from a file
type FileSource struct {
	path     string
	maxBytes int64
}

// NewFileSource creates a source for path; maxBytes <= 0 uses DefaultMaxBytes
func NewFileSource(path string, maxBytes int64) *FileSource {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &FileSource{path: path, maxBytes: maxBytes}
}

// Location implements ports.Source
func (s *FileSource) Location() string {
	return s.path
}

// Read implements ports.Source
func (s *FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, pkgerrors.NewSourceError(s.path, err)
	}
	defer f.Close()
	return readAll(s.path, f, s.maxBytes)
}

// WriterSink writes each document with a single call to an io.Writer such as stdout
type WriterSink struct {
	w        io.Writer
	location string
}

// NewWriterSink creates a sink over w
func NewWriterSink(w io.Writer, location string) *WriterSink {
	return &WriterSink{w: w, location: location}
}

// Location implements ports.Sink
func (s *WriterSink) Location() string {
	return s.location
}

// Write implements ports.Sink
func (s *WriterSink) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := s.w.Write(data)
	if err == nil && n != len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return pkgerrors.NewSinkError(s.location, err)
	}
	return nil
}

// ReaderSource reads one document from an io.Reader such as stdin
type ReaderSource struct {
	r        io.Reader
	location string
	maxBytes int64
}

// NewReaderSource creates a source over r; maxBytes <= 0 uses DefaultMaxBytes
func NewReaderSource(r io.Reader, location string, maxBytes int64) *ReaderSource {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &ReaderSource{r: r, location: location, maxBytes: maxBytes}
}

// Location implements ports.Source
func (s *ReaderSource) Location() string {
	return s.location
}

// Read implements ports.Source
func (s *ReaderSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readAll(s.location, s.r, s.maxBytes)
}

func readAll(location string, r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, pkgerrors.NewSourceError(location, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, pkgerrors.NewSourceError(location, fmt.Errorf("document exceeds %d bytes", maxBytes))
	}
	return data, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
