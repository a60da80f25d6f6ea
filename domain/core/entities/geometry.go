package entities

import (
	"fmt"

	"cathedral-bridge/domain/core/valueobjects"
	pkgerrors "cathedral-bridge/pkg/errors"
)

// Geometry is an ordered vertex list plus edges that reference vertices by position.
// Insertion order is meaningful: consumers re-render in exactly this order.
type Geometry struct {
	vertices []valueobjects.Vertex
	edges    []valueobjects.Edge
}

// NewGeometry creates an empty geometry
func NewGeometry() *Geometry {
	return &Geometry{
		vertices: []valueobjects.Vertex{},
		edges:    []valueobjects.Edge{},
	}
}

// ReconstructGeometry rebuilds a geometry from already-validated slices.
// The slices are copied.
func ReconstructGeometry(vertices []valueobjects.Vertex, edges []valueobjects.Edge) *Geometry {
	g := &Geometry{
		vertices: make([]valueobjects.Vertex, len(vertices)),
		edges:    make([]valueobjects.Edge, len(edges)),
	}
	copy(g.vertices, vertices)
	copy(g.edges, edges)
	return g
}

// AddVertex appends a vertex and returns its index
func (g *Geometry) AddVertex(v valueobjects.Vertex) int {
	g.vertices = append(g.vertices, v)
	return len(g.vertices) - 1
}

// AddEdge appends an edge between two existing vertices
func (g *Geometry) AddEdge(from, to int) error {
	edge := valueobjects.NewEdge(from, to)
	if !edge.InRange(len(g.vertices)) {
		return pkgerrors.NewReferenceError(
			fmt.Sprintf("geometry.edges[%d]", len(g.edges)),
			fmt.Sprintf("edge (%d, %d) references a vertex outside [0, %d)", from, to, len(g.vertices)),
		)
	}
	g.edges = append(g.edges, edge)
	return nil
}

// AddPolygon appends the vertices in order and closes them into a loop.
// It returns the index of the first added vertex.
func (g *Geometry) AddPolygon(points ...valueobjects.Vertex) int {
	first := len(g.vertices)
	for _, p := range points {
		g.AddVertex(p)
	}
	for i := range points {
		g.edges = append(g.edges, valueobjects.NewEdge(first+i, first+(i+1)%len(points)))
	}
	return first
}

// Vertices returns a copy of the vertex list
func (g *Geometry) Vertices() []valueobjects.Vertex {
	out := make([]valueobjects.Vertex, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// Edges returns a copy of the edge list
func (g *Geometry) Edges() []valueobjects.Edge {
	out := make([]valueobjects.Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// VertexCount returns the number of vertices
func (g *Geometry) VertexCount() int {
	return len(g.vertices)
}

// EdgeCount returns the number of edges
func (g *Geometry) EdgeCount() int {
	return len(g.edges)
}

// Is3D reports whether any vertex carries a z coordinate
func (g *Geometry) Is3D() bool {
	for _, v := range g.vertices {
		if v.Is3D() {
			return true
		}
	}
	return false
}
