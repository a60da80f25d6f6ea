package memory

import (
	"context"
	"sync"
	"testing"

	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	ctx := context.Background()
	b := NewBuffer("")
	assert.Equal(t, "memory://buffer", b.Location())

	_, err := b.Read(ctx)
	assert.True(t, pkgerrors.IsNotFound(err))

	payload := []byte(`{"a":1}`)
	require.NoError(t, b.Write(ctx, payload))
	payload[0] = 'X'

	data, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data), "buffer must keep its own copy")
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for _, name := range []string{"vesica_piscis", "merkaba", "seed_of_life"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			assert.NoError(t, s.Sink(name).Write(ctx, []byte(name)))
		}(name)
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "merkaba", list[0].Name)
	assert.Equal(t, "memory://merkaba", list[0].Location)

	data, err := s.Source("seed_of_life").Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "seed_of_life", string(data))

	_, err = s.Source("flower_of_life").Read(ctx)
	assert.True(t, pkgerrors.IsNotFound(err))
}
