// Package codec converts between runtime bundles and interchange documents,
// and between documents and JSON bytes.
package codec

import (
	"cathedral-bridge/domain/core/aggregates"
	"cathedral-bridge/domain/core/entities"
	"cathedral-bridge/domain/core/valueobjects"
	"cathedral-bridge/domain/interchange"
	pkgerrors "cathedral-bridge/pkg/errors"
)

// EncoderOptions tunes the produced document
type EncoderOptions struct {
	VertexForm interchange.VertexForm
}

// Encoder builds interchange documents from runtime values.
// It is pure: inputs are copied, never retained or mutated.
type Encoder struct {
	opts EncoderOptions
}

// NewEncoder creates an encoder
func NewEncoder(opts EncoderOptions) *Encoder {
	if opts.VertexForm == "" {
		opts.VertexForm = interchange.VertexFormObject
	}
	return &Encoder{opts: opts}
}

// Encode builds a document with the default options
func Encode(geometry *entities.Geometry, fractals *entities.FractalGraph, metadata valueobjects.Metadata) (*interchange.Document, error) {
	return NewEncoder(EncoderOptions{}).EncodeParts(geometry, fractals, metadata)
}

// Encode builds a document from a bundle
func (e *Encoder) Encode(bundle *aggregates.Bundle) (*interchange.Document, error) {
	if bundle.IsEmpty() {
		return nil, pkgerrors.NewEmptyInputError()
	}
	return e.EncodeParts(bundle.Geometry, bundle.Fractals, bundle.Metadata)
}

// EncodeParts builds a document from its optional parts; at least one of
// geometry or fractals is required.
func (e *Encoder) EncodeParts(geometry *entities.Geometry, fractals *entities.FractalGraph, metadata valueobjects.Metadata) (*interchange.Document, error) {
	if geometry == nil && fractals == nil {
		return nil, pkgerrors.NewEmptyInputError()
	}

	doc := &interchange.Document{
		Metadata: &interchange.MetadataSection{
			System:  metadata.System,
			Version: metadata.Version,
		},
	}
	if geometry != nil {
		doc.Geometry = e.encodeGeometry(geometry)
	}
	if fractals != nil {
		doc.Fractals = encodeFractals(fractals)
	}
	return doc, nil
}

func (e *Encoder) encodeGeometry(g *entities.Geometry) *interchange.GeometrySection {
	vertices := g.Vertices()
	edges := g.Edges()

	section := &interchange.GeometrySection{
		Vertices: make([]interchange.VertexRecord, len(vertices)),
		Edges:    make([]interchange.IndexPair, len(edges)),
	}
	for i, v := range vertices {
		var z *float64
		if zv, ok := v.Z(); ok {
			z = &zv
		}
		section.Vertices[i] = interchange.NewVertexRecord(v.X(), v.Y(), z, e.opts.VertexForm)
	}
	for i, edge := range edges {
		section.Edges[i] = interchange.IndexPair{edge.From, edge.To}
	}
	return section
}

func encodeFractals(f *entities.FractalGraph) *interchange.FractalSection {
	nodes := f.Nodes()
	connections := f.Connections()

	section := &interchange.FractalSection{
		Nodes:       make([]interchange.NodeRecord, len(nodes)),
		Connections: make([]interchange.IDPair, len(connections)),
	}
	for i, n := range nodes {
		rec := interchange.NodeRecord{ID: n.ID}
		if len(n.Attributes) > 0 {
			rec.Attributes = make(map[string]interface{}, len(n.Attributes))
			for k, v := range n.Attributes {
				rec.Attributes[k] = v.Value()
			}
		}
		section.Nodes[i] = rec
	}
	for i, c := range connections {
		section.Connections[i] = interchange.IDPair{c.Source, c.Target}
	}
	return section
}
