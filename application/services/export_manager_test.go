package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cathedral-bridge/domain/core/aggregates"
	"cathedral-bridge/domain/core/entities"
	"cathedral-bridge/domain/core/valueobjects"
	"cathedral-bridge/domain/events"
	"cathedral-bridge/domain/interchange"
	"cathedral-bridge/infrastructure/persistence/memory"
	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	return m.Called(ctx, batch).Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) ObserveOperation(operation string, duration time.Duration, bytes int, err error) {
	m.Called(operation, bytes, err)
}

type failingSink struct {
	err error
}

func (s failingSink) Write(context.Context, []byte) error { return s.err }
func (s failingSink) Location() string                     { return "broken://sink" }

func triangle(t *testing.T) *aggregates.Bundle {
	t.Helper()
	g := entities.NewGeometry()
	g.AddVertex(valueobjects.NewVertex(0, 0))
	g.AddVertex(valueobjects.NewVertex(1, 0))
	g.AddVertex(valueobjects.NewVertex(0.5, 0.866))
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(1, 2))
	require.NoError(t, g.AddEdge(2, 0))
	b, err := aggregates.NewBundle(g, nil, valueobjects.NewMetadata("cathedral", "1.0"))
	require.NoError(t, err)
	return b
}

func newManager(t *testing.T, publisher *mockPublisher, metrics *mockMetrics) *ExportManager {
	return NewExportManager(nil, interchange.VertexFormObject, publisher, metrics, nil, zaptest.NewLogger(t))
}

func TestExportManager_RoundTrip(t *testing.T) {
	ctx := context.Background()
	publisher := new(mockPublisher)
	metrics := new(mockMetrics)
	publisher.On("Publish", ctx, mock.AnythingOfType("events.DocumentExported")).Return(nil).Once()
	publisher.On("Publish", ctx, mock.AnythingOfType("events.DocumentImported")).Return(nil).Once()
	metrics.On("ObserveOperation", OperationExport, mock.Anything, nil).Once()
	metrics.On("ObserveOperation", OperationImport, mock.Anything, nil).Once()

	m := NewExportManager(nil, interchange.VertexFormObject, publisher, metrics, nil, zap.NewNop())
	buf := memory.NewBuffer("")
	original := triangle(t)

	require.NoError(t, m.ExportTo(ctx, buf, original))
	restored, err := m.ImportFrom(ctx, buf)
	require.NoError(t, err)

	assert.Equal(t, original.Geometry.Vertices(), restored.Geometry.Vertices())
	assert.Equal(t, original.Geometry.Edges(), restored.Geometry.Edges())
	assert.Equal(t, original.Metadata, restored.Metadata)
	publisher.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestExportManager_ExportErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty bundle never reaches the sink", func(t *testing.T) {
		metrics := new(mockMetrics)
		metrics.On("ObserveOperation", OperationExport, 0, mock.Anything).Once()
		buf := memory.NewBuffer("")

		err := newManager(t, nil, metrics).ExportTo(ctx, buf, &aggregates.Bundle{})
		assert.True(t, pkgerrors.IsEmptyInput(err))
		_, readErr := buf.Read(ctx)
		assert.True(t, pkgerrors.IsNotFound(readErr))
		metrics.AssertExpectations(t)
	})

	t.Run("write failure becomes a sink error", func(t *testing.T) {
		cause := errors.New("disk full")
		err := newManager(t, nil, nil).ExportTo(ctx, failingSink{err: cause}, triangle(t))
		require.Error(t, err)
		assert.True(t, pkgerrors.IsSink(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("cancelled context skips the write", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		buf := memory.NewBuffer("")
		err := newManager(t, nil, nil).ExportTo(cctx, buf, triangle(t))
		assert.ErrorIs(t, err, context.Canceled)
		_, readErr := buf.Read(ctx)
		assert.Error(t, readErr)
	})

	t.Run("publish failure does not fail the export", func(t *testing.T) {
		publisher := new(mockPublisher)
		publisher.On("Publish", ctx, mock.Anything).Return(errors.New("bus down"))
		assert.NoError(t, newManager(t, publisher, nil).ExportTo(ctx, memory.NewBuffer(""), triangle(t)))
	})
}

func TestExportManager_ImportErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		payload string
		check   func(error) bool
	}{
		{
			name:    "reference",
			payload: `{"geometry":{"vertices":[{"x":0,"y":0},{"x":1,"y":0},{"x":0,"y":1}],"edges":[[0,5]]},"metadata":{"system":"s","version":"1"}}`,
			check:   pkgerrors.IsReference,
		},
		{
			name:    "duplicate id",
			payload: `{"fractals":{"nodes":[{"id":"a"},{"id":"a"}],"connections":[]},"metadata":{"system":"s","version":"1"}}`,
			check:   pkgerrors.IsDuplicateID,
		},
		{
			name:    "shape",
			payload: `{"geometry":{"vertices":[],"edges":[]}}`,
			check:   pkgerrors.IsShape,
		},
		{
			name:    "not json",
			payload: `<xml/>`,
			check:   pkgerrors.IsShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher := new(mockPublisher)
			bundle, err := newManager(t, publisher, nil).ImportFrom(ctx, NewPayloadSource([]byte(tt.payload), "test"))
			require.Error(t, err)
			assert.Nil(t, bundle)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}

	t.Run("missing document stays not found", func(t *testing.T) {
		_, err := newManager(t, nil, nil).ImportFrom(ctx, memory.NewBuffer(""))
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestExportManager_Validate(t *testing.T) {
	m := newManager(t, nil, nil)
	assert.NoError(t, m.Validate(context.Background(),
		[]byte(`{"fractals":{"nodes":[{"id":"a"}],"connections":[]},"metadata":{"system":"s","version":"1"}}`)))

	err := m.Validate(context.Background(), []byte(`{"metadata":{"system":"s","version":"1"}}`))
	assert.True(t, pkgerrors.IsShape(err))
}

func TestExportManager_WithVertexForm(t *testing.T) {
	m := newManager(t, nil, nil)
	data, err := m.WithVertexForm(interchange.VertexFormArray).Render(triangle(t))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"x"`)

	data, err = m.Render(triangle(t))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"x": 0`)
}
