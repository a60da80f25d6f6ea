package queries

import (
	"context"
	"fmt"

	"cathedral-bridge/application/ports"
	"cathedral-bridge/application/queries/bus"
	pkgerrors "cathedral-bridge/pkg/errors"
)

// ListDocumentsQuery lists stored documents
type ListDocumentsQuery struct {
	Limit int
}

// Validate validates the query
func (q ListDocumentsQuery) Validate() error {
	if q.Limit < 0 {
		return pkgerrors.NewInvalidRequestError("limit cannot be negative")
	}
	return nil
}

// ListDocumentsResult represents the result of listing documents
type ListDocumentsResult struct {
	Documents  []ports.DocumentInfo `json:"documents"`
	TotalCount int                  `json:"totalCount"`
}

// ListDocumentsHandler handles the ListDocumentsQuery
type ListDocumentsHandler struct {
	store ports.DocumentStore
}

// NewListDocumentsHandler creates a new handler instance
func NewListDocumentsHandler(store ports.DocumentStore) *ListDocumentsHandler {
	return &ListDocumentsHandler{store: store}
}

// Handle lists documents sorted by name; Limit zero means all
func (h *ListDocumentsHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(ListDocumentsQuery)
	if !ok {
		return nil, fmt.Errorf("%w: %T", bus.ErrUnexpectedType, q)
	}

	docs, err := h.store.List(ctx)
	if err != nil {
		return nil, err
	}
	total := len(docs)
	if query.Limit > 0 && len(docs) > query.Limit {
		docs = docs[:query.Limit]
	}
	if docs == nil {
		docs = []ports.DocumentInfo{}
	}
	return &ListDocumentsResult{Documents: docs, TotalCount: total}, nil
}
