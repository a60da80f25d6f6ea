package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cathedral-bridge/application/ports"
	pkgerrors "cathedral-bridge/pkg/errors"
)

const documentExt = ".json"

// DirectoryStore keeps each named document as <dir>/<name>.json
type DirectoryStore struct {
	dir      string
	maxBytes int64
}

// NewDirectoryStore creates a store rooted at dir
func NewDirectoryStore(dir string, maxBytes int64) *DirectoryStore {
	return &DirectoryStore{dir: dir, maxBytes: maxBytes}
}

// Dir returns the store root
func (s *DirectoryStore) Dir() string {
	return s.dir
}

func (s *DirectoryStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name)+documentExt)
}

// Sink implements ports.DocumentStore
func (s *DirectoryStore) Sink(name string) ports.Sink {
	return NewFileSink(s.path(name))
}

// Source implements ports.DocumentStore. A missing document reads as NotFound.
func (s *DirectoryStore) Source(name string) ports.Source {
	return &storedSource{FileSource: NewFileSource(s.path(name), s.maxBytes), name: name}
}

// List implements ports.DocumentStore
func (s *DirectoryStore) List(ctx context.Context) ([]ports.DocumentInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if isNotExist(err) {
			return []ports.DocumentInfo{}, nil
		}
		return nil, pkgerrors.NewSourceError(s.dir, err)
	}

	out := make([]ports.DocumentInfo, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != documentExt {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		out = append(out, ports.DocumentInfo{
			Name:      strings.TrimSuffix(name, documentExt),
			Location:  filepath.Join(s.dir, name),
			Size:      info.Size(),
			UpdatedAt: info.ModTime().UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type storedSource struct {
	*FileSource
	name string
}

func (s *storedSource) Read(ctx context.Context) ([]byte, error) {
	data, err := s.FileSource.Read(ctx)
	if err != nil && isNotExist(err) {
		return nil, pkgerrors.NewNotFoundError("document", s.name).WithCause(fs.ErrNotExist)
	}
	return data, err
}
