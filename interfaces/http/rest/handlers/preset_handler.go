package handlers

import (
	"encoding/json"
	"net/http"

	"cathedral-bridge/application/commands"
	"cathedral-bridge/application/commands/bus"
	"cathedral-bridge/application/queries"
	querybus "cathedral-bridge/application/queries/bus"
	"cathedral-bridge/domain/core/valueobjects"
	pkgerrors "cathedral-bridge/pkg/errors"

	"go.uber.org/zap"
)

// PresetHandler serves the built-in preset catalog
type PresetHandler struct {
	base
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
	maxBytes int64,
) *PresetHandler {
	return &PresetHandler{
		base:       base{errors: errorHandler, logger: logger, maxBytes: maxBytes},
		commandBus: commandBus,
		queryBus:   queryBus,
	}
}

// ListPresets handles GET /presets
func (h *PresetHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListPresetsQuery{})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// RenderPreset handles GET /presets/render?geometry=&fractal=&form=&system=&version=
func (h *PresetHandler) RenderPreset(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.queryBus.Ask(r.Context(), queries.RenderPresetQuery{
		Geometry: q.Get("geometry"),
		Fractal:  q.Get("fractal"),
		Form:     q.Get("form"),
		System:   q.Get("system"),
		Version:  q.Get("version"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondDocument(w, result.(*queries.RenderResult).Data)
}

// ExportPreset handles POST /presets/export, storing a rendered preset
func (h *PresetHandler) ExportPreset(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var cmd commands.ExportPresetCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		h.respondError(w, r, pkgerrors.NewInvalidRequestError("request body must be a JSON object"))
		return
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.respondError(w, r, err)
		return
	}
	name, _ := valueobjects.NewDocumentName(cmd.Name)
	h.respondJSON(w, http.StatusCreated, map[string]string{
		"name":   name.String(),
		"status": "stored",
	})
}
