package handlers

import (
	"net/http"
	"strconv"

	"cathedral-bridge/application/commands"
	"cathedral-bridge/application/commands/bus"
	"cathedral-bridge/application/queries"
	querybus "cathedral-bridge/application/queries/bus"
	"cathedral-bridge/domain/core/valueobjects"
	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DocumentHandler handles interchange document requests
type DocumentHandler struct {
	base
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
	maxBytes int64,
) *DocumentHandler {
	return &DocumentHandler{
		base:       base{errors: errorHandler, logger: logger, maxBytes: maxBytes},
		commandBus: commandBus,
		queryBus:   queryBus,
	}
}

// ValidateDocument handles POST /documents/validate. Invalid documents get
// 422 with the list of violations.
func (h *DocumentHandler) ValidateDocument(w http.ResponseWriter, r *http.Request) {
	payload, err := h.readBody(w, r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ValidateDocumentQuery{Payload: payload})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	validation := result.(*queries.ValidationResult)
	status := http.StatusOK
	if !validation.Valid {
		status = http.StatusUnprocessableEntity
	}
	h.respondJSON(w, status, validation)
}

// PutDocument handles PUT /documents/{name}
func (h *DocumentHandler) PutDocument(w http.ResponseWriter, r *http.Request) {
	name, err := valueobjects.NewDocumentName(chi.URLParam(r, "name"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	payload, err := h.readBody(w, r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.commandBus.Send(r.Context(), commands.StoreDocumentCommand{Name: name.String(), Payload: payload}); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]string{
		"name":   name.String(),
		"status": "stored",
	})
}

// GetDocument handles GET /documents/{name}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetDocumentQuery{Name: chi.URLParam(r, "name")})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	doc := result.(*queries.DocumentResult)
	w.Header().Set("X-Document-Location", doc.Location)
	h.respondDocument(w, doc.Data)
}

// ListDocuments handles GET /documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, r, pkgerrors.NewInvalidRequestError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListDocumentsQuery{Limit: limit})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}
