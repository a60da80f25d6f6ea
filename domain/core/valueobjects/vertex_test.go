package valueobjects

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertex(t *testing.T) {
	tests := []struct {
		name     string
		vertex   Vertex
		want3D   bool
		finite   bool
		expected string
	}{
		{
			name:     "2D vertex",
			vertex:   NewVertex(1, 2),
			want3D:   false,
			finite:   true,
			expected: "(1, 2)",
		},
		{
			name:     "3D vertex at z=0 stays 3D",
			vertex:   NewVertex3D(1, 2, 0),
			want3D:   true,
			finite:   true,
			expected: "(1, 2, 0)",
		},
		{
			name:     "NaN coordinate",
			vertex:   NewVertex(math.NaN(), 0),
			want3D:   false,
			finite:   false,
			expected: "(NaN, 0)",
		},
		{
			name:     "infinite z",
			vertex:   NewVertex3D(0, 0, math.Inf(1)),
			want3D:   true,
			finite:   false,
			expected: "(0, 0, +Inf)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want3D, tt.vertex.Is3D())
			assert.Equal(t, tt.finite, tt.vertex.IsFinite())
			assert.Equal(t, tt.expected, tt.vertex.String())
		})
	}
}

func TestVertex_TranslateAndScaleKeepDimension(t *testing.T) {
	flat := NewVertex(1, 1).Translate(1, 2, 3)
	assert.False(t, flat.Is3D())
	assert.Equal(t, NewVertex(2, 3), flat)

	solid := NewVertex3D(1, 1, 1).Scale(2)
	z, ok := solid.Z()
	require.True(t, ok)
	assert.Equal(t, 2.0, z)
	assert.True(t, solid.Equals(NewVertex3D(2, 2, 2)))
}

func TestEdge_InRange(t *testing.T) {
	tests := []struct {
		name  string
		edge  Edge
		count int
		want  bool
	}{
		{"both inside", NewEdge(0, 2), 3, true},
		{"self loop", NewEdge(1, 1), 3, true},
		{"upper bound is exclusive", NewEdge(0, 3), 3, false},
		{"negative index", NewEdge(-1, 0), 3, false},
		{"empty geometry", NewEdge(0, 0), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.edge.InRange(tt.count))
		})
	}
}

func TestScalarFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		wantKind ScalarKind
		want     interface{}
		wantErr  bool
	}{
		{name: "string", input: "528", wantKind: KindString, want: "528"},
		{name: "bool", input: true, wantKind: KindBool, want: true},
		{name: "float", input: 0.93, wantKind: KindNumber, want: 0.93},
		{name: "int", input: 333, wantKind: KindNumber, want: 333.0},
		{name: "json number", input: json.Number("741"), wantKind: KindNumber, want: 741.0},
		{name: "json number out of range", input: json.Number("1e400"), wantErr: true},
		{name: "nested object", input: map[string]interface{}{"a": 1}, wantErr: true},
		{name: "array", input: []interface{}{1, 2}, wantErr: true},
		{name: "null", input: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ScalarFrom(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, s.Kind())
			assert.Equal(t, tt.want, s.Value())
		})
	}
}

func TestScalar_ZeroValueIsEmptyString(t *testing.T) {
	var s Scalar
	assert.Equal(t, KindString, s.Kind())
	assert.Equal(t, "", s.Value())
	assert.True(t, s.IsFinite())
	assert.False(t, NumberValue(math.NaN()).IsFinite())
}

func TestMetadata(t *testing.T) {
	m := NewMetadata("  cathedral ", "1.0")
	assert.Equal(t, "cathedral", m.System)
	assert.True(t, m.IsComplete())
	assert.Equal(t, "cathedral@1.0", m.String())
	assert.False(t, NewMetadata("cathedral", " ").IsComplete())

	defaults := NewMetadata("cathedral", "1.0")
	assert.Equal(t, defaults, NewMetadata("", " ").WithDefaults(defaults))
	assert.Equal(t, NewMetadata("godot", "1.0"), NewMetadata("godot", "").WithDefaults(defaults))
}
