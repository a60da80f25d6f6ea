package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cathedral-bridge/infrastructure/persistence/filesystem"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Validator checks one serialized interchange document
type Validator interface {
	Validate(ctx context.Context, data []byte) error
}

// Result is the outcome of validating one dropped document
type Result struct {
	Path string
	Err  error
}

// DocumentWatcher validates every .json document written into a directory.
// Bursts of events for the same file are collapsed into one validation.
type DocumentWatcher struct {
	dir       string
	validator Validator
	onResult  func(Result)
	logger    *zap.Logger
	debounce  time.Duration
	maxBytes  int64
}

// Option configures a DocumentWatcher
type Option func(*DocumentWatcher)

// WithDebounce sets how long the watcher waits for writes to settle
func WithDebounce(d time.Duration) Option {
	return func(w *DocumentWatcher) { w.debounce = d }
}

// WithMaxBytes caps the size of documents read from the directory
func WithMaxBytes(n int64) Option {
	return func(w *DocumentWatcher) { w.maxBytes = n }
}

// NewDocumentWatcher creates a watcher for dir. onResult is called from the
// watch loop for every validated document.
func NewDocumentWatcher(dir string, validator Validator, onResult func(Result), logger *zap.Logger, opts ...Option) *DocumentWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &DocumentWatcher{
		dir:       dir,
		validator: validator,
		onResult:  onResult,
		logger:    logger,
		debounce:  100 * time.Millisecond,
		maxBytes:  16 << 20,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. The underlying fsnotify watcher is
// closed before Run returns.
func (w *DocumentWatcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info("Document watcher started", zap.String("dir", w.dir))

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Document watcher stopped", zap.String("dir", w.dir))
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !isDocument(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", zap.Error(err))

		case <-timer.C:
			for path := range pending {
				w.check(ctx, path)
				delete(pending, path)
			}
		}
	}
}

func (w *DocumentWatcher) check(ctx context.Context, path string) {
	data, err := filesystem.NewFileSource(path, w.maxBytes).Read(ctx)
	if err == nil {
		err = w.validator.Validate(ctx, data)
	}

	if err != nil {
		w.logger.Warn("Document rejected", zap.String("path", path), zap.Error(err))
	} else {
		w.logger.Info("Document valid", zap.String("path", path), zap.Int("bytes", len(data)))
	}
	if w.onResult != nil {
		w.onResult(Result{Path: path, Err: err})
	}
}

// isDocument skips hidden files, which covers the temp files of atomic writes
func isDocument(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".json") && !strings.HasPrefix(base, ".")
}
