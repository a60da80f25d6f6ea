package valueobjects

import (
	"fmt"
	"math"
)

// Vertex is a value object for a point in 2D or 3D space
type Vertex struct {
	x    float64
	y    float64
	z    float64
	has3 bool
}

// NewVertex creates a 2D vertex
func NewVertex(x, y float64) Vertex {
	return Vertex{x: x, y: y}
}

// NewVertex3D creates a 3D vertex
func NewVertex3D(x, y, z float64) Vertex {
	return Vertex{x: x, y: y, z: z, has3: true}
}

// X returns the X coordinate
func (v Vertex) X() float64 {
	return v.x
}

// Y returns the Y coordinate
func (v Vertex) Y() float64 {
	return v.y
}

// Z returns the Z coordinate and whether the vertex carries one
func (v Vertex) Z() (float64, bool) {
	return v.z, v.has3
}

// Is3D reports whether the vertex has a z coordinate.
// A 3D vertex at z=0 is still 3D.
func (v Vertex) Is3D() bool {
	return v.has3
}

// IsFinite reports whether every coordinate is a finite number
func (v Vertex) IsFinite() bool {
	return isFinite(v.x) && isFinite(v.y) && (!v.has3 || isFinite(v.z))
}

// Equals checks if two vertices are equal
func (v Vertex) Equals(other Vertex) bool {
	return v == other
}

// Translate moves the vertex by the given offsets, keeping its dimension
func (v Vertex) Translate(dx, dy, dz float64) Vertex {
	if v.has3 {
		return NewVertex3D(v.x+dx, v.y+dy, v.z+dz)
	}
	return NewVertex(v.x+dx, v.y+dy)
}

// Scale multiplies every coordinate by factor
func (v Vertex) Scale(factor float64) Vertex {
	if v.has3 {
		return NewVertex3D(v.x*factor, v.y*factor, v.z*factor)
	}
	return NewVertex(v.x*factor, v.y*factor)
}

func (v Vertex) String() string {
	if v.has3 {
		return fmt.Sprintf("(%g, %g, %g)", v.x, v.y, v.z)
	}
	return fmt.Sprintf("(%g, %g)", v.x, v.y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
