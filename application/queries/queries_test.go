package queries

import (
	"context"
	"testing"

	"cathedral-bridge/application/queries/bus"
	"cathedral-bridge/application/services"
	"cathedral-bridge/domain/catalog"
	"cathedral-bridge/domain/core/valueobjects"
	"cathedral-bridge/domain/interchange"
	"cathedral-bridge/infrastructure/persistence/memory"
	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const triangleJSON = `{"geometry":{"vertices":[{"x":0,"y":0},{"x":1,"y":0},{"x":0.5,"y":0.866}],"edges":[[0,1],[1,2],[2,0]]},"metadata":{"system":"cathedral","version":"1.0"}}`

func newQueryBus(t *testing.T, store *memory.Store) *bus.QueryBus {
	t.Helper()
	manager := services.NewExportManager(nil, interchange.VertexFormObject, nil, nil, nil, zap.NewNop())
	presets := NewPresetHandler(manager, catalog.New(), valueobjects.NewMetadata("cathedral", "1.0"))

	b := bus.NewQueryBus()
	require.NoError(t, b.Register(GetDocumentQuery{}, NewGetDocumentHandler(manager, store)))
	require.NoError(t, b.Register(ListDocumentsQuery{}, NewListDocumentsHandler(store)))
	require.NoError(t, b.Register(ValidateDocumentQuery{}, NewValidateDocumentHandler(manager)))
	require.NoError(t, b.Register(ListPresetsQuery{}, presets))
	require.NoError(t, b.Register(RenderPresetQuery{}, presets))
	return b
}

func TestGetDocument(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Sink("triangle").Write(ctx, []byte(triangleJSON)))
	b := newQueryBus(t, store)

	result, err := b.Ask(ctx, GetDocumentQuery{Name: "triangle"})
	require.NoError(t, err)
	doc := result.(*DocumentResult)
	assert.Equal(t, "triangle", doc.Name)
	assert.Equal(t, 3, doc.Summary.VertexCount)
	assert.Equal(t, "memory://triangle", doc.Location)
	assert.Contains(t, string(doc.Data), `"edges"`)

	_, err = b.Ask(ctx, GetDocumentQuery{Name: "missing"})
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = b.Ask(ctx, GetDocumentQuery{Name: "a/b"})
	assert.True(t, pkgerrors.IsInvalidRequest(err))
}

func TestGetDocument_CorruptStoredDocument(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Sink("bad").Write(ctx, []byte(`{"metadata":{"system":"s","version":"1"}}`)))

	_, err := newQueryBus(t, store).Ask(ctx, GetDocumentQuery{Name: "bad"})
	assert.True(t, pkgerrors.IsShape(err))
}

func TestListDocuments(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, store.Sink(name).Write(ctx, []byte(triangleJSON)))
	}
	b := newQueryBus(t, store)

	result, err := b.Ask(ctx, ListDocumentsQuery{Limit: 2})
	require.NoError(t, err)
	list := result.(*ListDocumentsResult)
	assert.Equal(t, 3, list.TotalCount)
	require.Len(t, list.Documents, 2)
	assert.Equal(t, "a", list.Documents[0].Name)

	_, err = b.Ask(ctx, ListDocumentsQuery{Limit: -1})
	assert.True(t, pkgerrors.IsInvalidRequest(err))

	result, err = newQueryBus(t, memory.NewStore()).Ask(ctx, ListDocumentsQuery{})
	require.NoError(t, err)
	assert.NotNil(t, result.(*ListDocumentsResult).Documents)
}

func TestValidateDocument(t *testing.T) {
	ctx := context.Background()
	b := newQueryBus(t, memory.NewStore())

	tests := []struct {
		name      string
		payload   string
		valid     bool
		wantPaths []string
		wantCode  string
	}{
		{name: "valid", payload: triangleJSON, valid: true},
		{
			name:      "dangling edge",
			payload:   `{"geometry":{"vertices":[[0,0],[1,0],[0,1]],"edges":[[0,5]]},"metadata":{"system":"s","version":"1"}}`,
			wantPaths: []string{"geometry.edges[0][1]"},
			wantCode:  pkgerrors.CodeReference,
		},
		{
			name:      "duplicate node",
			payload:   `{"fractals":{"nodes":[{"id":"a"},{"id":"a"}],"connections":[]},"metadata":{"system":"s","version":"1"}}`,
			wantPaths: []string{"fractals.nodes[1].id"},
			wantCode:  pkgerrors.CodeDuplicateID,
		},
		{
			name:      "syntax error",
			payload:   `{"geometry":`,
			wantPaths: []string{"document"},
			wantCode:  pkgerrors.CodeShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := b.Ask(ctx, ValidateDocumentQuery{Payload: []byte(tt.payload)})
			require.NoError(t, err)
			res := result.(*ValidationResult)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.valid {
				assert.Empty(t, res.Violations)
				return
			}
			var paths []string
			for _, v := range res.Violations {
				paths = append(paths, v.Path)
			}
			assert.Equal(t, tt.wantPaths, paths)
			assert.Equal(t, tt.wantCode, res.Violations[0].Code)
		})
	}

	_, err := b.Ask(ctx, ValidateDocumentQuery{})
	assert.True(t, pkgerrors.IsInvalidRequest(err))
}

func TestPresets(t *testing.T) {
	ctx := context.Background()
	b := newQueryBus(t, memory.NewStore())

	result, err := b.Ask(ctx, ListPresetsQuery{})
	require.NoError(t, err)
	presets := result.(*PresetsResult)
	assert.Len(t, presets.Geometries, 10)
	assert.Len(t, presets.Fractals, 5)

	result, err = b.Ask(ctx, RenderPresetQuery{Geometry: "merkaba", Form: "array", System: "godot"})
	require.NoError(t, err)
	rendered := result.(*RenderResult)
	assert.True(t, rendered.Summary.Is3D)
	assert.Equal(t, "godot", rendered.Summary.System)
	assert.Equal(t, "1.0", rendered.Summary.Version)
	assert.NotContains(t, string(rendered.Data), `"x"`)

	_, err = b.Ask(ctx, RenderPresetQuery{})
	assert.True(t, pkgerrors.IsInvalidRequest(err))

	_, err = b.Ask(ctx, RenderPresetQuery{Fractal: "oath_abyss_sigil"})
	assert.True(t, pkgerrors.IsNotFound(err))
}
