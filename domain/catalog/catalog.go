// Package catalog holds the built-in sacred geometry and fractal presets that
// the bridge can export without an external producer.
package catalog

import (
	"sort"

	"cathedral-bridge/domain/core/aggregates"
	"cathedral-bridge/domain/core/entities"
	"cathedral-bridge/domain/core/valueobjects"
	pkgerrors "cathedral-bridge/pkg/errors"
)

// Catalog indexes presets by name
type Catalog struct {
	geometries map[string]GeometryPreset
	fractals   map[string]FractalPreset
}

// New creates a catalog with every built-in preset
func New() *Catalog {
	c := &Catalog{
		geometries: make(map[string]GeometryPreset),
		fractals:   make(map[string]FractalPreset),
	}
	for _, p := range geometryPresets() {
		c.geometries[p.Name] = p
	}
	for _, p := range fractalPresets() {
		c.fractals[p.Name] = p
	}
	return c
}

// Geometries lists the geometry presets sorted by name
func (c *Catalog) Geometries() []GeometryPreset {
	out := make([]GeometryPreset, 0, len(c.geometries))
	for _, p := range c.geometries {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Fractals lists the fractal presets sorted by name
func (c *Catalog) Fractals() []FractalPreset {
	out := make([]FractalPreset, 0, len(c.fractals))
	for _, p := range c.fractals {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Geometry builds the named geometry preset
func (c *Catalog) Geometry(name string) (*entities.Geometry, error) {
	p, ok := c.geometries[name]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("geometry preset", name)
	}
	return p.Build(), nil
}

// FractalGraph builds the named fractal preset
func (c *Catalog) FractalGraph(name string) (*entities.FractalGraph, error) {
	p, ok := c.fractals[name]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("fractal preset", name)
	}
	return p.Build(), nil
}

// Bundle combines a geometry preset and a fractal preset; either name may be
// empty, but not both.
func (c *Catalog) Bundle(geometryName, fractalName string, metadata valueobjects.Metadata) (*aggregates.Bundle, error) {
	var (
		geometry *entities.Geometry
		fractals *entities.FractalGraph
		err      error
	)
	if geometryName != "" {
		if geometry, err = c.Geometry(geometryName); err != nil {
			return nil, err
		}
	}
	if fractalName != "" {
		if fractals, err = c.FractalGraph(fractalName); err != nil {
			return nil, err
		}
	}
	return aggregates.NewBundle(geometry, fractals, metadata)
}
