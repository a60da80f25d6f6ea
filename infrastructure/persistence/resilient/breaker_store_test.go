package resilient

import (
	"context"
	"errors"
	"testing"
	"time"

	"cathedral-bridge/application/ports"
	"cathedral-bridge/infrastructure/persistence/filesystem"
	"cathedral-bridge/infrastructure/persistence/memory"
	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// brokenStore fails every write and counts the attempts
type brokenStore struct {
	*memory.Store
	writes int
}

func (b *brokenStore) Sink(name string) ports.Sink {
	return &brokenSink{store: b, name: name}
}

type brokenSink struct {
	store *brokenStore
	name  string
}

func (s *brokenSink) Write(ctx context.Context, data []byte) error {
	s.store.writes++
	return pkgerrors.NewSinkError(s.Location(), errors.New("disk unavailable"))
}

func (s *brokenSink) Location() string { return "broken://" + s.name }

// wrappedNotFoundStore reports missing documents as NotFound caused by a source error
type wrappedNotFoundStore struct {
	*memory.Store
}

func (w *wrappedNotFoundStore) Source(name string) ports.Source {
	return &wrappedNotFoundSource{name: name}
}

type wrappedNotFoundSource struct {
	name string
}

func (s *wrappedNotFoundSource) Read(ctx context.Context) ([]byte, error) {
	cause := pkgerrors.NewSourceError(s.Location(), errors.New("no such file"))
	return nil, pkgerrors.NewNotFoundError("document", s.name).WithCause(cause)
}

func (s *wrappedNotFoundSource) Location() string { return "wrapped://" + s.name }

func testConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      3,
	}
}

func TestBreakerStore_OpensAfterFailures(t *testing.T) {
	ctx := context.Background()
	inner := &brokenStore{Store: memory.NewStore()}
	store := NewBreakerStore(inner, testConfig(), zap.NewNop())

	for i := 0; i < 3; i++ {
		err := store.Sink("doc").Write(ctx, []byte("{}"))
		require.Error(t, err)
		assert.True(t, pkgerrors.IsSink(err))
	}
	assert.Equal(t, gobreaker.StateOpen, store.State())

	err := store.Sink("doc").Write(ctx, []byte("{}"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsSink(err))
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, inner.writes, "an open breaker must not reach the backend")
}

func TestBreakerStore_NotFoundDoesNotTrip(t *testing.T) {
	tests := []struct {
		name  string
		inner ports.DocumentStore
	}{
		{name: "memory", inner: memory.NewStore()},
		{name: "directory", inner: filesystem.NewDirectoryStore(t.TempDir(), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewBreakerStore(tt.inner, testConfig(), zap.NewNop())

			for i := 0; i < 5; i++ {
				_, err := store.Source("missing").Read(ctx)
				assert.True(t, pkgerrors.IsNotFound(err))
			}
			assert.Equal(t, gobreaker.StateClosed, store.State())

			require.NoError(t, store.Sink("doc").Write(ctx, []byte(`{"ok":true}`)))
			data, err := store.Source("doc").Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, `{"ok":true}`, string(data))

			list, err := store.List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestBreakerStore_NotFoundWrappingSourceError(t *testing.T) {
	ctx := context.Background()
	inner := &wrappedNotFoundStore{Store: memory.NewStore()}
	store := NewBreakerStore(inner, testConfig(), zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := store.Source("missing").Read(ctx)
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.True(t, pkgerrors.IsSource(err))
	}
	assert.Equal(t, gobreaker.StateClosed, store.State())
	require.NoError(t, store.Sink("fresh").Write(ctx, []byte(`{"ok":true}`)))
}
