// Package interchange defines the wire shape of the document exchanged between
// the geometry generator, the web renderer and the game engine.
//
// The types here are deliberately lenient: missing keys decode to nil so the
// validator can report them with a path instead of failing inside encoding/json.
package interchange

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the top-level envelope
type Document struct {
	Geometry *GeometrySection `json:"geometry,omitempty"`
	Fractals *FractalSection  `json:"fractals,omitempty"`
	Metadata *MetadataSection `json:"metadata" validate:"required"`
}

// GeometrySection holds vertices and the edges that reference them by position
type GeometrySection struct {
	Vertices []VertexRecord `json:"vertices" validate:"required"`
	Edges    []IndexPair    `json:"edges" validate:"required"`
}

// FractalSection holds fractal nodes and the connections between their ids
type FractalSection struct {
	Nodes       []NodeRecord `json:"nodes" validate:"required"`
	Connections []IDPair     `json:"connections" validate:"required"`
}

// MetadataSection is the provenance tag
type MetadataSection struct {
	System  string `json:"system" validate:"required"`
	Version string `json:"version" validate:"required"`
}

// IndexPair is an edge on the wire: [from, to]
type IndexPair []int

// IDPair is a connection on the wire: [sourceId, targetId]
type IDPair []string

// NodeRecord is a fractal node on the wire. Attribute values are whatever the
// JSON decoder produced; the validator accepts only strings, numbers and booleans.
type NodeRecord struct {
	ID         string                 `json:"id"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// VertexForm selects how vertices are written
type VertexForm string

const (
	// VertexFormObject writes {"x":..,"y":..,"z":..}
	VertexFormObject VertexForm = "object"
	// VertexFormArray writes [x, y] or [x, y, z], the layout the game engine loads
	VertexFormArray VertexForm = "array"
)

// ParseVertexForm maps a config or query value to a VertexForm
func ParseVertexForm(s string) (VertexForm, error) {
	switch VertexForm(s) {
	case "", VertexFormObject:
		return VertexFormObject, nil
	case VertexFormArray:
		return VertexFormArray, nil
	default:
		return "", fmt.Errorf("unknown vertex form %q (want %q or %q)", s, VertexFormObject, VertexFormArray)
	}
}

// VertexRecord is a vertex on the wire, in either object or array form
type VertexRecord struct {
	X    *float64   `json:"x"`
	Y    *float64   `json:"y"`
	Z    *float64   `json:"z,omitempty"`
	Form VertexForm `json:"-"`

	// arity is the element count when the record was read from array form
	arity int
}

// NewVertexRecord builds a record from coordinates; z may be nil
func NewVertexRecord(x, y float64, z *float64, form VertexForm) VertexRecord {
	rec := VertexRecord{X: &x, Y: &y, Form: form}
	if z != nil {
		zv := *z
		rec.Z = &zv
	}
	return rec
}

// Arity returns the number of coordinates read from array form, or 0 for object form
func (v VertexRecord) Arity() int {
	return v.arity
}

// MarshalJSON writes the record in its form
func (v VertexRecord) MarshalJSON() ([]byte, error) {
	if v.Form == VertexFormArray {
		coords := []*float64{v.X, v.Y}
		if v.Z != nil {
			coords = append(coords, v.Z)
		}
		return json.Marshal(coords)
	}
	type object struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
		Z *float64 `json:"z,omitempty"`
	}
	return json.Marshal(object{X: v.X, Y: v.Y, Z: v.Z})
}

// UnmarshalJSON accepts {"x":..,"y":..[,"z":..]} or [x, y[, z]]
func (v *VertexRecord) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("vertex is empty")
	}

	switch trimmed[0] {
	case '[':
		var coords []*float64
		if err := json.Unmarshal(trimmed, &coords); err != nil {
			return fmt.Errorf("vertex array must hold numbers: %w", err)
		}
		*v = VertexRecord{Form: VertexFormArray, arity: len(coords)}
		if len(coords) > 0 {
			v.X = coords[0]
		}
		if len(coords) > 1 {
			v.Y = coords[1]
		}
		if len(coords) > 2 {
			v.Z = coords[2]
		}
		return nil
	case '{':
		var obj struct {
			X *float64 `json:"x"`
			Y *float64 `json:"y"`
			Z *float64 `json:"z"`
		}
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&obj); err != nil {
			return fmt.Errorf("vertex object must hold only numeric x, y and optional z: %w", err)
		}
		*v = VertexRecord{X: obj.X, Y: obj.Y, Z: obj.Z, Form: VertexFormObject}
		return nil
	default:
		return fmt.Errorf("vertex must be an object or an array, got %s", string(trimmed))
	}
}
