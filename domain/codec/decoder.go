package codec

import (
	"cathedral-bridge/domain/core/aggregates"
	"cathedral-bridge/domain/core/entities"
	"cathedral-bridge/domain/core/validators"
	"cathedral-bridge/domain/core/valueobjects"
	"cathedral-bridge/domain/interchange"
)

// Decoder rebuilds runtime values from interchange documents
type Decoder struct {
	validator *validators.DocumentValidator
}

// NewDecoder creates a decoder; a nil validator uses the default limits
func NewDecoder(validator *validators.DocumentValidator) *Decoder {
	if validator == nil {
		validator = validators.NewDocumentValidator(nil)
	}
	return &Decoder{validator: validator}
}

// Decode validates doc and reconstructs the bundle it describes. Validation
// errors are returned unchanged and nothing is built from an invalid document.
func (d *Decoder) Decode(doc *interchange.Document) (*aggregates.Bundle, error) {
	if err := d.validator.Validate(doc); err != nil {
		return nil, err
	}

	var (
		geometry *entities.Geometry
		fractals *entities.FractalGraph
	)
	if doc.Geometry != nil {
		geometry = decodeGeometry(doc.Geometry)
	}
	if doc.Fractals != nil {
		fractals = decodeFractals(doc.Fractals)
	}
	metadata := valueobjects.Metadata{System: doc.Metadata.System, Version: doc.Metadata.Version}

	return aggregates.NewBundle(geometry, fractals, metadata)
}

func decodeGeometry(section *interchange.GeometrySection) *entities.Geometry {
	vertices := make([]valueobjects.Vertex, len(section.Vertices))
	for i, rec := range section.Vertices {
		if rec.Z != nil {
			vertices[i] = valueobjects.NewVertex3D(*rec.X, *rec.Y, *rec.Z)
		} else {
			vertices[i] = valueobjects.NewVertex(*rec.X, *rec.Y)
		}
	}
	edges := make([]valueobjects.Edge, len(section.Edges))
	for i, pair := range section.Edges {
		edges[i] = valueobjects.NewEdge(pair[0], pair[1])
	}
	return entities.ReconstructGeometry(vertices, edges)
}

func decodeFractals(section *interchange.FractalSection) *entities.FractalGraph {
	nodes := make([]entities.FractalNode, len(section.Nodes))
	for i, rec := range section.Nodes {
		attrs := make(map[string]valueobjects.Scalar, len(rec.Attributes))
		for k, v := range rec.Attributes {
			// already checked by the validator
			attrs[k], _ = valueobjects.ScalarFrom(v)
		}
		nodes[i] = entities.FractalNode{ID: rec.ID, Attributes: attrs}
	}
	connections := make([]valueobjects.Connection, len(section.Connections))
	for i, pair := range section.Connections {
		connections[i] = valueobjects.NewConnection(pair[0], pair[1])
	}
	return entities.ReconstructFractalGraph(nodes, connections)
}
