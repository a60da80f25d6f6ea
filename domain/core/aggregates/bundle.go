package aggregates

import (
	"cathedral-bridge/domain/core/entities"
	"cathedral-bridge/domain/core/valueobjects"
	pkgerrors "cathedral-bridge/pkg/errors"
)

// Bundle is the runtime-side triple a producer exports and a consumer imports.
// Geometry and Fractals are optional, but a bundle always carries at least one.
type Bundle struct {
	Geometry *entities.Geometry
	Fractals *entities.FractalGraph
	Metadata valueobjects.Metadata
}

// NewBundle creates a bundle, refusing one with nothing to exchange
func NewBundle(geometry *entities.Geometry, fractals *entities.FractalGraph, metadata valueobjects.Metadata) (*Bundle, error) {
	b := &Bundle{
		Geometry: geometry,
		Fractals: fractals,
		Metadata: metadata,
	}
	if b.IsEmpty() {
		return nil, pkgerrors.NewEmptyInputError()
	}
	return b, nil
}

// IsEmpty reports whether the bundle has neither geometry nor fractals
func (b *Bundle) IsEmpty() bool {
	return b == nil || (b.Geometry == nil && b.Fractals == nil)
}

// Summary describes a bundle without its payload
type Summary struct {
	System          string `json:"system"`
	Version         string `json:"version"`
	HasGeometry     bool   `json:"hasGeometry"`
	HasFractals     bool   `json:"hasFractals"`
	VertexCount     int    `json:"vertexCount"`
	EdgeCount       int    `json:"edgeCount"`
	NodeCount       int    `json:"nodeCount"`
	ConnectionCount int    `json:"connectionCount"`
	Is3D            bool   `json:"is3d"`
}

// Summarize returns counts and provenance for logs and API responses
func (b *Bundle) Summarize() Summary {
	s := Summary{
		System:  b.Metadata.System,
		Version: b.Metadata.Version,
	}
	if b.Geometry != nil {
		s.HasGeometry = true
		s.VertexCount = b.Geometry.VertexCount()
		s.EdgeCount = b.Geometry.EdgeCount()
		s.Is3D = b.Geometry.Is3D()
	}
	if b.Fractals != nil {
		s.HasFractals = true
		s.NodeCount = b.Fractals.NodeCount()
		s.ConnectionCount = b.Fractals.ConnectionCount()
	}
	return s
}
