package errors

import (
	"encoding/json"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorResponse represents the API error response format
type ErrorResponse struct {
	Error      bool                   `json:"error"`
	Type       string                 `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Violations map[string][]string    `json:"violations,omitempty"`
	RequestID  string                 `json:"request_id,omitempty"`
}

// ErrorHandler renders domain errors as HTTP responses
type ErrorHandler struct {
	logger *zap.Logger
	debug  bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
		debug:  debug,
	}
}

// Handle processes an error and sends an HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	requestID := requestIDFrom(r)
	status := http.StatusInternalServerError
	response := ErrorResponse{
		Error:     true,
		Type:      "INTERNAL",
		Code:      "INTERNAL",
		Message:   "An internal error occurred",
		RequestID: requestID,
	}

	if verrs, ok := AsValidationErrors(err); ok && verrs.HasErrors() {
		first := verrs.First()
		status = first.StatusCode
		response.Type = string(first.Type)
		response.Code = first.Code
		response.Message = verrs.Error()
		response.Violations = verrs.ToMap()
	} else if domainErr := GetDomainError(err); domainErr != nil {
		status = domainErr.StatusCode
		if status == 0 {
			status = domainErrorTypeToStatusCode(domainErr.Type)
		}
		response.Type = string(domainErr.Type)
		response.Code = domainErr.Code
		response.Message = domainErr.Message
		if len(domainErr.Details) > 0 {
			response.Details = domainErr.Details
		}
	} else if h.debug {
		response.Message = err.Error()
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", response.Code),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestID),
		zap.Int("status", status),
	}
	switch {
	case status >= 500:
		h.logger.Error("Request failed", fields...)
	default:
		h.logger.Warn("Request rejected", fields...)
	}

	h.sendJSON(w, status, response)
}

func (h *ErrorHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}

func requestIDFrom(r *http.Request) string {
	if id := chimiddleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}
