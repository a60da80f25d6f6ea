package entities

import (
	"testing"

	"cathedral-bridge/domain/core/valueobjects"
	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry_AddEdge(t *testing.T) {
	g := NewGeometry()
	g.AddVertex(valueobjects.NewVertex(0, 0))
	g.AddVertex(valueobjects.NewVertex(1, 0))
	g.AddVertex(valueobjects.NewVertex(0.5, 0.866))

	require.NoError(t, g.AddEdge(0, 1))

	err := g.AddEdge(0, 5)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsReference(err))
	assert.Equal(t, "geometry.edges[1]", pkgerrors.GetDomainError(err).Path())
	assert.Equal(t, 1, g.EdgeCount(), "a rejected edge must not be stored")
}

func TestGeometry_AddPolygonClosesLoop(t *testing.T) {
	g := NewGeometry()
	g.AddVertex(valueobjects.NewVertex(9, 9))

	first := g.AddPolygon(
		valueobjects.NewVertex(0, 0),
		valueobjects.NewVertex(1, 0),
		valueobjects.NewVertex(0.5, 0.866),
	)

	assert.Equal(t, 1, first)
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, []valueobjects.Edge{{From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 1}}, g.Edges())
}

func TestGeometry_AccessorsReturnCopies(t *testing.T) {
	g := NewGeometry()
	g.AddVertex(valueobjects.NewVertex(0, 0))

	vertices := g.Vertices()
	vertices[0] = valueobjects.NewVertex(5, 5)

	assert.Equal(t, valueobjects.NewVertex(0, 0), g.Vertices()[0])
	assert.False(t, g.Is3D())

	g.AddVertex(valueobjects.NewVertex3D(0, 0, 1))
	assert.True(t, g.Is3D())
}

func TestReconstructGeometry_CopiesInput(t *testing.T) {
	vertices := []valueobjects.Vertex{valueobjects.NewVertex(0, 0), valueobjects.NewVertex(1, 1)}
	edges := []valueobjects.Edge{valueobjects.NewEdge(0, 1)}

	g := ReconstructGeometry(vertices, edges)
	vertices[0] = valueobjects.NewVertex(7, 7)

	assert.Equal(t, valueobjects.NewVertex(0, 0), g.Vertices()[0])
	assert.Equal(t, edges, g.Edges())
}

func TestFractalGraph_AddNode(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		checkErr func(error) bool
		path     string
	}{
		{
			name: "unique ids",
			ids:  []string{"a", "b"},
		},
		{
			name:     "duplicate id",
			ids:      []string{"a", "a"},
			checkErr: pkgerrors.IsDuplicateID,
			path:     "fractals.nodes[1].id",
		},
		{
			name:     "empty id",
			ids:      []string{""},
			checkErr: pkgerrors.IsShape,
			path:     "fractals.nodes[0].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewFractalGraph()
			var err error
			for _, id := range tt.ids {
				if err = g.AddNode(id, nil); err != nil {
					break
				}
			}
			if tt.checkErr == nil {
				require.NoError(t, err)
				assert.Equal(t, len(tt.ids), g.NodeCount())
				return
			}
			require.Error(t, err)
			assert.True(t, tt.checkErr(err))
			assert.Equal(t, tt.path, pkgerrors.GetDomainError(err).Path())
		})
	}
}

func TestFractalGraph_Connect(t *testing.T) {
	g := NewFractalGraph()
	require.NoError(t, g.AddNode("root", map[string]valueobjects.Scalar{"iterations": valueobjects.IntValue(100)}))
	require.NoError(t, g.AddNode("leaf", nil))

	require.NoError(t, g.Connect("root", "leaf"))
	assert.Equal(t, []string{"leaf"}, g.Neighbors("root"))

	err := g.Connect("root", "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsReference(err))
	assert.Equal(t, 1, g.ConnectionCount())
}

func TestFractalGraph_NodesAreIsolatedCopies(t *testing.T) {
	attrs := map[string]valueobjects.Scalar{"frequency": valueobjects.IntValue(528)}
	g := NewFractalGraph()
	require.NoError(t, g.AddNode("a", attrs))

	attrs["frequency"] = valueobjects.IntValue(0)
	node, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, 528.0, node.Attributes["frequency"].Number())

	node.Attributes["frequency"] = valueobjects.IntValue(1)
	again, _ := g.Node("a")
	assert.Equal(t, 528.0, again.Attributes["frequency"].Number())

	require.NoError(t, g.AddNode("b", nil))
	leaf, _ := g.Node("b")
	assert.NotNil(t, leaf.Attributes)
	assert.Empty(t, leaf.AttributeKeys())
}
