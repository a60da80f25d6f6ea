package filesystem

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingWriter accepts limit bytes and then fails
type failingWriter struct {
	w     io.Writer
	limit int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if len(p) <= f.limit {
		return f.w.Write(p)
	}
	n, _ := f.w.Write(p[:f.limit])
	return n, errors.New("device lost")
}

func TestFileSink_WritesAtomically(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "triangle.json")
	sink := NewFileSink(target)

	require.NoError(t, sink.Write(context.Background(), []byte(`{"first":true}`)))
	require.NoError(t, sink.Write(context.Background(), []byte(`{"second":true}`)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"second":true}`, string(data))
	assert.Empty(t, tempFiles(t, filepath.Dir(target)))
}

func TestFileSink_MidWriteFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "broken.json")
	sink := NewFileSink(target)
	sink.wrap = func(w io.Writer) io.Writer { return &failingWriter{w: w, limit: 10} }

	err := sink.Write(context.Background(), bytes.Repeat([]byte("x"), 100))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsSink(err))

	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr), "no partial document may be visible")
	assert.Empty(t, tempFiles(t, dir), "temporary file must be removed")
}

func TestFileSink_MidWriteFailureKeepsPreviousDocument(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(target, []byte(`{"old":true}`), 0o644))

	sink := NewFileSink(target)
	sink.wrap = func(w io.Writer) io.Writer { return &failingWriter{w: w, limit: 3} }
	require.Error(t, sink.Write(context.Background(), []byte(`{"new":true}`)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"old":true}`, string(data))
}

func TestFileSink_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileSink(filepath.Join(dir, "doc.json")).Write(ctx, []byte("{}"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, tempFiles(t, dir))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	data, err := NewFileSource(path, 0).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	_, err = NewFileSource(path, 5).Read(context.Background())
	assert.True(t, pkgerrors.IsSource(err))

	_, err = NewFileSource(filepath.Join(dir, "missing.json"), 0).Read(context.Background())
	assert.True(t, pkgerrors.IsSource(err))
}

func TestWriterSinkAndReaderSource(t *testing.T) {
	var out bytes.Buffer
	sink := NewWriterSink(&out, "stdout")
	require.NoError(t, sink.Write(context.Background(), []byte(`{"a":1}`)))
	assert.Equal(t, `{"a":1}`, out.String())

	src := NewReaderSource(strings.NewReader(`{"b":2}`), "stdin", 0)
	data, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(data))
	assert.Equal(t, "stdin", src.Location())
}

func TestDirectoryStore(t *testing.T) {
	dir := t.TempDir()
	store := NewDirectoryStore(dir, 0)
	ctx := context.Background()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, store.Sink("tree_of_life").Write(ctx, []byte(`{"t":1}`)))
	require.NoError(t, store.Sink("merkaba").Write(ctx, []byte(`{"m":1}`)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))

	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "merkaba", list[0].Name)
	assert.Equal(t, int64(7), list[1].Size)

	data, err := store.Source("tree_of_life").Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"t":1}`, string(data))

	_, err = store.Source("missing").Read(ctx)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.False(t, pkgerrors.IsSource(err), "a missing document is not a read failure")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	missing := NewDirectoryStore(filepath.Join(dir, "nope"), 0)
	list, err = missing.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			out = append(out, e.Name())
		}
	}
	return out
}
