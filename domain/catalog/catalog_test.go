package catalog

import (
	"testing"

	"cathedral-bridge/domain/codec"
	"cathedral-bridge/domain/core/valueobjects"
	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryPresets(t *testing.T) {
	tests := []struct {
		name      string
		vertices  int
		edges     int
		is3D      bool
		frequency int
	}{
		{name: "vesica_piscis", vertices: 4, edges: 6, frequency: 396},
		{name: "seed_of_life", vertices: 7, edges: 12, frequency: 417},
		{name: "flower_of_life", vertices: 19, edges: 30, frequency: 528},
		{name: "metatrons_cube", vertices: 13, edges: 78, frequency: 741},
		{name: "tree_of_life", vertices: 10, edges: 22, frequency: 741},
		{name: "achad_tree", vertices: 10, edges: 22, frequency: 418},
		{name: "sri_yantra", vertices: 27, edges: 27, frequency: 852},
		{name: "merkaba", vertices: 8, edges: 12, is3D: true, frequency: 963},
		{name: "golden_spiral", vertices: 200, edges: 199, frequency: 639},
		{name: "qblh_cube", vertices: 15, edges: 18, is3D: true, frequency: 777},
	}

	c := New()
	require.Len(t, c.Geometries(), len(tests))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := c.Geometry(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.vertices, g.VertexCount())
			assert.Equal(t, tt.edges, g.EdgeCount())
			assert.Equal(t, tt.is3D, g.Is3D())

			for _, v := range g.Vertices() {
				assert.True(t, v.IsFinite())
			}

			var preset GeometryPreset
			for _, p := range c.Geometries() {
				if p.Name == tt.name {
					preset = p
				}
			}
			assert.Equal(t, tt.frequency, preset.Frequency)
		})
	}
}

func TestFractalPresets(t *testing.T) {
	c := New()
	presets := c.Fractals()
	require.Len(t, presets, 5)
	assert.Equal(t, "abyss_crossing", presets[0].Name)

	g, err := c.FractalGraph("achad_reversal")
	require.NoError(t, err)

	// root + properties + five color bands
	assert.Equal(t, 7, g.NodeCount())
	assert.Equal(t, 6, g.ConnectionCount())

	root, ok := g.Node("achad_reversal")
	require.True(t, ok)
	assert.Equal(t, 418.0, root.Attributes["iterations"].Number())
	assert.Equal(t, "julia", root.Attributes["algorithm"].Str())
	assert.Equal(t, []string{"achad_reversal/properties", "achad_reversal/color/0"}, g.Neighbors("achad_reversal"))

	last, ok := g.Node("achad_reversal/color/4")
	require.True(t, ok)
	assert.Equal(t, "#dda0dd", last.Attributes["hex"].Str())
	assert.Equal(t, 1.0, last.Attributes["upper"].Number())
}

func TestCatalog_NotFound(t *testing.T) {
	c := New()

	_, err := c.Geometry("oath_abyss_sigil")
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = c.Bundle("tree_of_life", "unknown", valueobjects.NewMetadata("cathedral", "1.0"))
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = c.Bundle("", "", valueobjects.NewMetadata("cathedral", "1.0"))
	assert.True(t, pkgerrors.IsEmptyInput(err))
}

func TestCatalog_EveryBundleIsAValidDocument(t *testing.T) {
	c := New()
	metadata := valueobjects.NewMetadata("cathedral", "1.0")

	for _, g := range c.Geometries() {
		for _, f := range c.Fractals() {
			bundle, err := c.Bundle(g.Name, f.Name, metadata)
			require.NoError(t, err)

			doc, err := codec.NewEncoder(codec.EncoderOptions{}).Encode(bundle)
			require.NoError(t, err)

			_, err = codec.NewDecoder(nil).Decode(doc)
			assert.NoError(t, err, "%s + %s", g.Name, f.Name)
		}
	}
}
