// Package validators checks interchange documents before anything is
// reconstructed from them.
package validators

import (
	"fmt"
	"math"
	"sort"

	"cathedral-bridge/domain/config"
	"cathedral-bridge/domain/core/valueobjects"
	"cathedral-bridge/domain/interchange"
	pkgerrors "cathedral-bridge/pkg/errors"
	"cathedral-bridge/pkg/utils"
)

// DocumentValidator checks the shape and internal references of a document.
// It never mutates the document and is safe for concurrent use.
type DocumentValidator struct {
	config *config.BridgeConfig
}

// NewDocumentValidator creates a validator; a nil config uses the defaults
func NewDocumentValidator(cfg *config.BridgeConfig) *DocumentValidator {
	if cfg == nil {
		cfg = config.DefaultBridgeConfig()
	}
	return &DocumentValidator{config: cfg}
}

// Validate checks doc with the default limits
func Validate(doc *interchange.Document) error {
	return NewDocumentValidator(nil).Validate(doc)
}

// Validate returns nil or a *ValidationErrors holding every violation found,
// up to the configured maximum. Shape violations are collected first; reference
// and duplicate-id checks only run on a document whose shape is sound.
func (v *DocumentValidator) Validate(doc *interchange.Document) error {
	c := &collector{errs: pkgerrors.NewValidationErrors(), limit: v.config.MaxValidationErrors}

	if doc == nil {
		c.add(pkgerrors.NewShapeError("document", "document is required"))
		return c.result()
	}

	v.checkShape(doc, c)
	if c.errs.HasErrors() {
		return c.result()
	}

	v.checkReferences(doc, c)
	return c.result()
}

func (v *DocumentValidator) checkShape(doc *interchange.Document, c *collector) {
	violations, err := utils.StructViolations(doc)
	if err != nil {
		c.add(pkgerrors.NewShapeError("document", err.Error()))
		return
	}
	for _, fv := range violations {
		c.add(pkgerrors.NewShapeError(fv.Path, fv.Message))
	}

	if doc.Geometry == nil && doc.Fractals == nil {
		c.add(pkgerrors.NewShapeError("document", "document must contain geometry or fractals"))
	}

	if doc.Geometry != nil {
		v.checkGeometryShape(doc.Geometry, c)
	}
	if doc.Fractals != nil {
		v.checkFractalShape(doc.Fractals, c)
	}
}

func (v *DocumentValidator) checkGeometryShape(g *interchange.GeometrySection, c *collector) {
	if limit := v.config.MaxVertices; limit > 0 && len(g.Vertices) > limit {
		c.add(pkgerrors.NewShapeErrorf("geometry.vertices", "%d vertices exceed the limit of %d", len(g.Vertices), limit))
	}
	if limit := v.config.MaxEdges; limit > 0 && len(g.Edges) > limit {
		c.add(pkgerrors.NewShapeErrorf("geometry.edges", "%d edges exceed the limit of %d", len(g.Edges), limit))
	}

	for i, vert := range g.Vertices {
		path := fmt.Sprintf("geometry.vertices[%d]", i)
		if vert.Form == interchange.VertexFormArray && (vert.Arity() < 2 || vert.Arity() > 3) {
			c.add(pkgerrors.NewShapeErrorf(path, "vertex array must have 2 or 3 coordinates, got %d", vert.Arity()))
			continue
		}
		checkCoordinate(c, path+".x", vert.X, true)
		checkCoordinate(c, path+".y", vert.Y, true)
		checkCoordinate(c, path+".z", vert.Z, false)
	}

	for i, edge := range g.Edges {
		if len(edge) != 2 {
			c.add(pkgerrors.NewShapeErrorf(fmt.Sprintf("geometry.edges[%d]", i), "edge must be a pair of vertex indices, got %d values", len(edge)))
		}
	}
}

func checkCoordinate(c *collector, path string, value *float64, required bool) {
	if value == nil {
		if required {
			c.add(pkgerrors.NewShapeError(path, "coordinate is required"))
		}
		return
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		c.add(pkgerrors.NewShapeError(path, "coordinate must be a finite number"))
	}
}

func (v *DocumentValidator) checkFractalShape(f *interchange.FractalSection, c *collector) {
	if limit := v.config.MaxNodes; limit > 0 && len(f.Nodes) > limit {
		c.add(pkgerrors.NewShapeErrorf("fractals.nodes", "%d nodes exceed the limit of %d", len(f.Nodes), limit))
	}
	if limit := v.config.MaxConnections; limit > 0 && len(f.Connections) > limit {
		c.add(pkgerrors.NewShapeErrorf("fractals.connections", "%d connections exceed the limit of %d", len(f.Connections), limit))
	}

	for i, node := range f.Nodes {
		path := fmt.Sprintf("fractals.nodes[%d]", i)
		if node.ID == "" {
			c.add(pkgerrors.NewShapeError(path+".id", "node id must not be empty"))
		}
		if limit := v.config.MaxAttributesPerNode; limit > 0 && len(node.Attributes) > limit {
			c.add(pkgerrors.NewShapeErrorf(path+".attributes", "%d attributes exceed the limit of %d", len(node.Attributes), limit))
			continue
		}

		keys := make([]string, 0, len(node.Attributes))
		for k := range node.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			scalar, err := valueobjects.ScalarFrom(node.Attributes[k])
			if err != nil {
				c.add(pkgerrors.NewShapeErrorf(path+".attributes."+k, "attribute must be a string, number or boolean: %v", err))
				continue
			}
			if !scalar.IsFinite() {
				c.add(pkgerrors.NewShapeError(path+".attributes."+k, "attribute must be a finite number"))
			}
		}
	}

	for i, conn := range f.Connections {
		if len(conn) != 2 {
			c.add(pkgerrors.NewShapeErrorf(fmt.Sprintf("fractals.connections[%d]", i), "connection must be a pair of node ids, got %d values", len(conn)))
		}
	}
}

func (v *DocumentValidator) checkReferences(doc *interchange.Document, c *collector) {
	if g := doc.Geometry; g != nil {
		n := len(g.Vertices)
		for i, edge := range g.Edges {
			for k, idx := range edge {
				if idx < 0 || idx >= n {
					c.add(pkgerrors.NewReferenceError(
						fmt.Sprintf("geometry.edges[%d][%d]", i, k),
						fmt.Sprintf("vertex index %d is outside [0, %d)", idx, n),
					))
				}
			}
		}
	}

	if f := doc.Fractals; f != nil {
		ids := make(map[string]int, len(f.Nodes))
		for i, node := range f.Nodes {
			if first, dup := ids[node.ID]; dup {
				c.add(pkgerrors.NewDuplicateIDError(fmt.Sprintf("fractals.nodes[%d].id", i), node.ID).
					WithDetail("firstIndex", first))
				continue
			}
			ids[node.ID] = i
		}

		for i, conn := range f.Connections {
			for k, id := range conn {
				if _, ok := ids[id]; !ok {
					c.add(pkgerrors.NewReferenceError(
						fmt.Sprintf("fractals.connections[%d][%d]", i, k),
						fmt.Sprintf("node id %q is not defined", id),
					))
				}
			}
		}
	}
}

// collector accumulates violations up to a limit
type collector struct {
	errs  *pkgerrors.ValidationErrors
	limit int
}

func (c *collector) add(err *pkgerrors.DomainError) {
	if c.full() {
		c.errs.Truncated = true
		return
	}
	c.errs.AddError(err)
}

func (c *collector) full() bool {
	return c.limit > 0 && c.errs.Len() >= c.limit
}

func (c *collector) result() error {
	if !c.errs.HasErrors() {
		return nil
	}
	return c.errs
}
