package queries

import (
	"context"
	"fmt"

	"cathedral-bridge/application/queries/bus"
	"cathedral-bridge/application/services"
	"cathedral-bridge/domain/catalog"
	"cathedral-bridge/domain/core/aggregates"
	"cathedral-bridge/domain/core/valueobjects"
	"cathedral-bridge/domain/interchange"
	pkgerrors "cathedral-bridge/pkg/errors"
	"cathedral-bridge/pkg/utils"
)

// ListPresetsQuery lists the built-in geometry and fractal presets
type ListPresetsQuery struct{}

// Validate validates the query
func (q ListPresetsQuery) Validate() error {
	return nil
}

// PresetsResult represents the preset catalog
type PresetsResult struct {
	Geometries []catalog.GeometryPreset `json:"geometries"`
	Fractals   []catalog.FractalPreset  `json:"fractals"`
}

// RenderPresetQuery renders presets as an interchange document without storing it
type RenderPresetQuery struct {
	Geometry string `json:"geometry" validate:"required_without=Fractal"`
	Fractal  string `json:"fractal" validate:"required_without=Geometry"`
	Form     string `json:"form" validate:"omitempty,oneof=object array"`
	System   string `json:"system"`
	Version  string `json:"version"`
}

// Validate validates the query
func (q RenderPresetQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return pkgerrors.NewInvalidRequestError(err.Error())
	}
	return nil
}

// RenderResult is a rendered document
type RenderResult struct {
	Summary aggregates.Summary `json:"summary"`
	Data    []byte             `json:"-"`
}

// PresetHandler handles ListPresetsQuery and RenderPresetQuery
type PresetHandler struct {
	manager  *services.ExportManager
	catalog  *catalog.Catalog
	defaults valueobjects.Metadata
}

// NewPresetHandler creates a new handler instance
func NewPresetHandler(manager *services.ExportManager, cat *catalog.Catalog, defaults valueobjects.Metadata) *PresetHandler {
	return &PresetHandler{manager: manager, catalog: cat, defaults: defaults}
}

// Handle serves both preset queries
func (h *PresetHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	switch query := q.(type) {
	case ListPresetsQuery:
		return &PresetsResult{
			Geometries: h.catalog.Geometries(),
			Fractals:   h.catalog.Fractals(),
		}, nil
	case RenderPresetQuery:
		return h.render(query)
	default:
		return nil, fmt.Errorf("%w: %T", bus.ErrUnexpectedType, q)
	}
}

func (h *PresetHandler) render(query RenderPresetQuery) (*RenderResult, error) {
	form, err := interchange.ParseVertexForm(query.Form)
	if err != nil {
		return nil, pkgerrors.NewInvalidRequestError(err.Error())
	}

	metadata := valueobjects.NewMetadata(query.System, query.Version).WithDefaults(h.defaults)
	bundle, err := h.catalog.Bundle(query.Geometry, query.Fractal, metadata)
	if err != nil {
		return nil, err
	}

	manager := h.manager
	if query.Form != "" {
		manager = manager.WithVertexForm(form)
	}
	data, err := manager.Render(bundle)
	if err != nil {
		return nil, err
	}
	return &RenderResult{Summary: bundle.Summarize(), Data: data}, nil
}
