package queries

import (
	"context"
	"fmt"

	"cathedral-bridge/application/queries/bus"
	"cathedral-bridge/application/services"
	pkgerrors "cathedral-bridge/pkg/errors"
)

// ValidateDocumentQuery checks a serialized document without storing it
type ValidateDocumentQuery struct {
	Payload []byte
}

// Validate validates the query
func (q ValidateDocumentQuery) Validate() error {
	if len(q.Payload) == 0 {
		return pkgerrors.NewInvalidRequestError("document payload is required")
	}
	return nil
}

// Violation is one problem found in a document
type Violation struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult reports whether a document is valid and why not
type ValidationResult struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
	Truncated  bool        `json:"truncated,omitempty"`
}

// ValidateDocumentHandler handles the ValidateDocumentQuery
type ValidateDocumentHandler struct {
	manager *services.ExportManager
}

// NewValidateDocumentHandler creates a new handler instance
func NewValidateDocumentHandler(manager *services.ExportManager) *ValidateDocumentHandler {
	return &ValidateDocumentHandler{manager: manager}
}

// Handle reports document problems as a result rather than an error. Only
// failures unrelated to the document itself are returned as errors.
func (h *ValidateDocumentHandler) Handle(ctx context.Context, q bus.Query) (interface{}, error) {
	query, ok := q.(ValidateDocumentQuery)
	if !ok {
		return nil, fmt.Errorf("%w: %T", bus.ErrUnexpectedType, q)
	}

	err := h.manager.Validate(ctx, query.Payload)
	if err == nil {
		return &ValidationResult{Valid: true, Violations: []Violation{}}, nil
	}

	if verrs, ok := pkgerrors.AsValidationErrors(err); ok {
		result := &ValidationResult{Truncated: verrs.Truncated}
		for _, e := range verrs.Errors {
			result.Violations = append(result.Violations, violationOf(e))
		}
		return result, nil
	}
	if domainErr := pkgerrors.GetDomainError(err); domainErr != nil && domainErr.Type == pkgerrors.DomainValidationError {
		return &ValidationResult{Violations: []Violation{violationOf(domainErr)}}, nil
	}
	return nil, err
}

func violationOf(e *pkgerrors.DomainError) Violation {
	path := e.Path()
	if path == "" {
		path = "document"
	}
	return Violation{Path: path, Code: e.Code, Message: e.Message}
}
