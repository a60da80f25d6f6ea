package commands

import (
	"context"
	"fmt"

	"cathedral-bridge/application/commands/bus"
	"cathedral-bridge/application/ports"
	"cathedral-bridge/application/services"
	"cathedral-bridge/domain/catalog"
	"cathedral-bridge/domain/core/valueobjects"
	"cathedral-bridge/domain/interchange"
	pkgerrors "cathedral-bridge/pkg/errors"
	"cathedral-bridge/pkg/utils"

	"go.uber.org/zap"
)

// ExportPresetCommand builds a bundle from catalog presets and stores it
type ExportPresetCommand struct {
	Name     string `json:"name"`
	Geometry string `json:"geometry" validate:"required_without=Fractal"`
	Fractal  string `json:"fractal" validate:"required_without=Geometry"`
	Form     string `json:"form" validate:"omitempty,oneof=object array"`
	System   string `json:"system"`
	Version  string `json:"version"`
}

// Validate validates the command
func (c ExportPresetCommand) Validate() error {
	if _, err := valueobjects.NewDocumentName(c.Name); err != nil {
		return err
	}
	if err := utils.ValidateStruct(c); err != nil {
		return pkgerrors.NewInvalidRequestError(err.Error())
	}
	return nil
}

// ExportPresetHandler handles the ExportPresetCommand
type ExportPresetHandler struct {
	manager  *services.ExportManager
	catalog  *catalog.Catalog
	store    ports.DocumentStore
	defaults valueobjects.Metadata
	logger   *zap.Logger
}

// NewExportPresetHandler creates a new handler instance. defaults fills
// metadata the command leaves empty.
func NewExportPresetHandler(
	manager *services.ExportManager,
	cat *catalog.Catalog,
	store ports.DocumentStore,
	defaults valueobjects.Metadata,
	logger *zap.Logger,
) *ExportPresetHandler {
	return &ExportPresetHandler{
		manager:  manager,
		catalog:  cat,
		store:    store,
		defaults: defaults,
		logger:   logger,
	}
}

// Handle builds the preset bundle and exports it to the store
func (h *ExportPresetHandler) Handle(ctx context.Context, c bus.Command) error {
	cmd, ok := c.(ExportPresetCommand)
	if !ok {
		return fmt.Errorf("%w: %T", bus.ErrUnexpectedType, c)
	}
	name, err := valueobjects.NewDocumentName(cmd.Name)
	if err != nil {
		return err
	}
	form, err := interchange.ParseVertexForm(cmd.Form)
	if err != nil {
		return pkgerrors.NewInvalidRequestError(err.Error())
	}

	bundle, err := h.catalog.Bundle(cmd.Geometry, cmd.Fractal, valueobjects.NewMetadata(cmd.System, cmd.Version).WithDefaults(h.defaults))
	if err != nil {
		return err
	}

	manager := h.manager
	if cmd.Form != "" {
		manager = manager.WithVertexForm(form)
	}
	return manager.ExportTo(ctx, h.store.Sink(name.String()), bundle)
}
