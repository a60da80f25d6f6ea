package queries

import (
	"context"
	"fmt"

	"cathedral-bridge/application/ports"
	"cathedral-bridge/application/queries/bus"
	"cathedral-bridge/application/services"
	"cathedral-bridge/domain/core/aggregates"
	"cathedral-bridge/domain/core/valueobjects"
)

// GetDocumentQuery loads a stored document by name
type GetDocumentQuery struct {
	Name string
}

// Validate validates the query
func (q GetDocumentQuery) Validate() error {
	_, err := valueobjects.NewDocumentName(q.Name)
	return err
}

// DocumentResult is a stored document, revalidated on read
type DocumentResult struct {
	Name     string             `json:"name"`
	Location string             `json:"location"`
	Summary  aggregates.Summary `json:"summary"`
	Data     []byte             `json:"-"`
}

// GetDocumentHandler handles the GetDocumentQuery
type GetDocumentHandler struct {
	manager *services.ExportManager
	store   ports.DocumentStore
}

// NewGetDocumentHandler creates a new handler instance
func NewGetDocumentHandler(manager *services.ExportManager, store ports.DocumentStore) *GetDocumentHandler {
	return &GetDocumentHandler{manager: manager, store: store}
}

// Handle imports the stored document and renders it again, so callers only
// ever see documents that pass validation.
func (h *GetDocumentHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(GetDocumentQuery)
	if !ok {
		return nil, fmt.Errorf("%w: %T", bus.ErrUnexpectedType, q)
	}
	name, err := valueobjects.NewDocumentName(query.Name)
	if err != nil {
		return nil, err
	}

	source := h.store.Source(name.String())
	bundle, err := h.manager.ImportFrom(ctx, source)
	if err != nil {
		return nil, err
	}
	data, err := h.manager.Render(bundle)
	if err != nil {
		return nil, err
	}

	return &DocumentResult{
		Name:     name.String(),
		Location: source.Location(),
		Summary:  bundle.Summarize(),
		Data:     data,
	}, nil
}
