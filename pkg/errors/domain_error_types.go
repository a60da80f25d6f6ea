package errors

import (
	"errors"
	"fmt"
	"strings"
)

// DomainErrorType represents the category of domain error
type DomainErrorType string

const (
	// DomainValidationError indicates a malformed document or input
	DomainValidationError DomainErrorType = "VALIDATION_ERROR"

	// DomainConflictError indicates a collision with existing state (duplicate ids)
	DomainConflictError DomainErrorType = "CONFLICT"

	// DomainNotFoundError indicates a resource was not found
	DomainNotFoundError DomainErrorType = "NOT_FOUND"

	// DomainInfrastructureError indicates an I/O failure at a sink or source
	DomainInfrastructureError DomainErrorType = "INFRASTRUCTURE_ERROR"

	// DomainAuthenticationError indicates authentication failure
	DomainAuthenticationError DomainErrorType = "AUTHENTICATION_ERROR"
)

// DomainError represents a domain-specific error with rich context
type DomainError struct {
	Type       DomainErrorType        `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	Retryable  bool                   `json:"retryable"`
	StatusCode int                    `json:"status_code"`
}

// NewDomainError creates a new domain error
func NewDomainError(errorType DomainErrorType, code string, message string) *DomainError {
	return &DomainError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		Details:    make(map[string]interface{}),
		StatusCode: domainErrorTypeToStatusCode(errorType),
	}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// WithCause adds a cause to the error
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithRetryable sets whether the error is retryable
func (e *DomainError) WithRetryable(retryable bool) *DomainError {
	e.Retryable = retryable
	return e
}

// Is reports whether target is a DomainError with the same type and code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Path returns the document path attached to the error, if any.
func (e *DomainError) Path() string {
	path, _ := e.Details["path"].(string)
	return path
}

func domainErrorTypeToStatusCode(errorType DomainErrorType) int {
	switch errorType {
	case DomainValidationError:
		return 422
	case DomainConflictError:
		return 409
	case DomainNotFoundError:
		return 404
	case DomainAuthenticationError:
		return 401
	case DomainInfrastructureError:
		return 502
	default:
		return 500
	}
}

// ValidationErrors aggregates every violation found in one document
type ValidationErrors struct {
	Errors    []*DomainError `json:"errors"`
	Truncated bool           `json:"truncated,omitempty"`
}

// NewValidationErrors creates a new validation errors collection
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]*DomainError, 0),
	}
}

// AddError adds a pre-existing domain error
func (v *ValidationErrors) AddError(err *DomainError) {
	v.Errors = append(v.Errors, err)
}

// HasErrors returns true if there are validation errors
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Len returns the number of collected errors
func (v *ValidationErrors) Len() int {
	return len(v.Errors)
}

// Error implements the error interface
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return ""
	}

	messages := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		if path := err.Path(); path != "" {
			messages[i] = fmt.Sprintf("%s: %s", path, err.Message)
		} else {
			messages[i] = err.Message
		}
	}
	msg := fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
	if v.Truncated {
		msg += " (further errors omitted)"
	}
	return msg
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (v *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v.Errors))
	for i, err := range v.Errors {
		errs[i] = err
	}
	return errs
}

// First returns the first collected error, or nil.
func (v *ValidationErrors) First() *DomainError {
	if len(v.Errors) == 0 {
		return nil
	}
	return v.Errors[0]
}

// ToMap groups messages by document path for JSON responses
func (v *ValidationErrors) ToMap() map[string][]string {
	result := make(map[string][]string)

	for _, err := range v.Errors {
		path := err.Path()
		if path == "" {
			path = "document"
		}
		result[path] = append(result[path], err.Message)
	}

	return result
}

// AsValidationErrors extracts a ValidationErrors from an error chain.
func AsValidationErrors(err error) (*ValidationErrors, bool) {
	var verrs *ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
