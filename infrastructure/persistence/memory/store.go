// Package memory keeps documents in process memory. It backs tests, the CLI's
// dry runs and the memory store backend.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cathedral-bridge/application/ports"
	pkgerrors "cathedral-bridge/pkg/errors"
)

// Buffer is a single in-memory document slot usable as both sink and source
type Buffer struct {
	mu       sync.RWMutex
	location string
	data     []byte
	written  bool
}

// NewBuffer creates an empty buffer
func NewBuffer(location string) *Buffer {
	if location == "" {
		location = "memory://buffer"
	}
	return &Buffer{location: location}
}

// Write replaces the buffer contents with a copy of data
func (b *Buffer) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = cp
	b.written = true
	return nil
}

// Read returns a copy of the last written document
func (b *Buffer) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.written {
		return nil, pkgerrors.NewNotFoundError("document", b.location)
	}
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return cp, nil
}

// Bytes returns the current contents without copying; nil until the first write
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.data
}

// Location implements ports.Sink and ports.Source
func (b *Buffer) Location() string {
	return b.location
}

type entry struct {
	data      []byte
	updatedAt time.Time
}

// Store is an in-memory ports.DocumentStore
type Store struct {
	mu   sync.RWMutex
	docs map[string]entry
	now  func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		docs: make(map[string]entry),
		now:  time.Now,
	}
}

// Sink returns a sink that stores the document under name
func (s *Store) Sink(name string) ports.Sink {
	return &storeSlot{store: s, name: name}
}

// Source returns a source reading the document stored under name
func (s *Store) Source(name string) ports.Source {
	return &storeSlot{store: s, name: name}
}

// List returns the stored documents sorted by name
func (s *Store) List(ctx context.Context) ([]ports.DocumentInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.DocumentInfo, 0, len(s.docs))
	for name, e := range s.docs {
		out = append(out, ports.DocumentInfo{
			Name:      name,
			Location:  location(name),
			Size:      int64(len(e.data)),
			UpdatedAt: e.updatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func location(name string) string {
	return "memory://" + name
}

type storeSlot struct {
	store *Store
	name  string
}

func (s *storeSlot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.docs[s.name] = entry{data: cp, updatedAt: s.store.now()}
	return nil
}

func (s *storeSlot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	e, ok := s.store.docs[s.name]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("document", s.name)
	}
	cp := make([]byte, len(e.data))
	copy(cp, e.data)
	return cp, nil
}

func (s *storeSlot) Location() string {
	return location(s.name)
}
