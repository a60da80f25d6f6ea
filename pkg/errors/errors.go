package errors

import (
	"errors"
	"fmt"
)

// Interchange error codes
const (
	CodeShape        = "SHAPE_ERROR"
	CodeReference    = "REFERENCE_ERROR"
	CodeDuplicateID  = "DUPLICATE_ID"
	CodeEmptyInput   = "EMPTY_INPUT"
	CodeSink         = "SINK_ERROR"
	CodeSource       = "SOURCE_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInvalid      = "INVALID_REQUEST"
)

// Sentinels for errors.Is. Never mutate or return these directly; the
// constructors below build fresh values.
var (
	ErrShape        = &DomainError{Type: DomainValidationError, Code: CodeShape}
	ErrReference    = &DomainError{Type: DomainValidationError, Code: CodeReference}
	ErrDuplicateID  = &DomainError{Type: DomainConflictError, Code: CodeDuplicateID}
	ErrEmptyInput   = &DomainError{Type: DomainValidationError, Code: CodeEmptyInput}
	ErrSink         = &DomainError{Type: DomainInfrastructureError, Code: CodeSink}
	ErrSource       = &DomainError{Type: DomainInfrastructureError, Code: CodeSource}
	ErrNotFound     = &DomainError{Type: DomainNotFoundError, Code: CodeNotFound}
	ErrUnauthorized = &DomainError{Type: DomainAuthenticationError, Code: CodeUnauthorized}
	ErrInvalid      = &DomainError{Type: DomainValidationError, Code: CodeInvalid}
)

// NewShapeError reports a malformed envelope or section at path.
func NewShapeError(path, message string) *DomainError {
	return NewDomainError(DomainValidationError, CodeShape, message).WithDetail("path", path)
}

// NewShapeErrorf is NewShapeError with a formatted message.
func NewShapeErrorf(path, format string, args ...interface{}) *DomainError {
	return NewShapeError(path, fmt.Sprintf(format, args...))
}

// NewReferenceError reports a dangling vertex index or node id at path.
func NewReferenceError(path, message string) *DomainError {
	return NewDomainError(DomainValidationError, CodeReference, message).WithDetail("path", path)
}

// NewDuplicateIDError reports a node id that appears more than once.
func NewDuplicateIDError(path, id string) *DomainError {
	return NewDomainError(DomainConflictError, CodeDuplicateID,
		fmt.Sprintf("node id %q is already defined", id)).
		WithDetail("path", path).
		WithDetail("id", id)
}

// NewEmptyInputError reports an encode call with neither geometry nor fractals.
func NewEmptyInputError() *DomainError {
	return NewDomainError(DomainValidationError, CodeEmptyInput,
		"at least one of geometry or fractals is required")
}

// NewSinkError wraps an I/O failure while writing to location.
func NewSinkError(location string, cause error) *DomainError {
	return NewDomainError(DomainInfrastructureError, CodeSink,
		fmt.Sprintf("failed to write document to %s", location)).
		WithDetail("location", location).
		WithCause(cause)
}

// NewSourceError wraps an I/O failure while reading from location.
func NewSourceError(location string, cause error) *DomainError {
	return NewDomainError(DomainInfrastructureError, CodeSource,
		fmt.Sprintf("failed to read document from %s", location)).
		WithDetail("location", location).
		WithCause(cause)
}

// NewNotFoundError creates a not found error for a named resource
func NewNotFoundError(resource, name string) *DomainError {
	return NewDomainError(DomainNotFoundError, CodeNotFound,
		fmt.Sprintf("%s %q not found", resource, name)).
		WithDetail("resource", resource).
		WithDetail("name", name)
}

// NewUnauthorizedError creates an authentication error
func NewUnauthorizedError(message string) *DomainError {
	if message == "" {
		message = "unauthorized"
	}
	return NewDomainError(DomainAuthenticationError, CodeUnauthorized, message)
}

// NewInvalidRequestError reports a malformed command, query or request parameter
func NewInvalidRequestError(message string) *DomainError {
	err := NewDomainError(DomainValidationError, CodeInvalid, message)
	err.StatusCode = 400
	return err
}

// GetDomainError extracts the first DomainError from an error chain
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// IsShape checks if an error carries a shape error
func IsShape(err error) bool {
	return errors.Is(err, ErrShape)
}

// IsReference checks if an error carries a reference error
func IsReference(err error) bool {
	return errors.Is(err, ErrReference)
}

// IsDuplicateID checks if an error carries a duplicate id error
func IsDuplicateID(err error) bool {
	return errors.Is(err, ErrDuplicateID)
}

// IsEmptyInput checks if an error is an empty input error
func IsEmptyInput(err error) bool {
	return errors.Is(err, ErrEmptyInput)
}

// IsSink checks if an error is a sink error
func IsSink(err error) bool {
	return errors.Is(err, ErrSink)
}

// IsSource checks if an error is a source error
func IsSource(err error) bool {
	return errors.Is(err, ErrSource)
}

// IsInvalidRequest checks if an error is an invalid request error
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Code returns the code of the first domain error in the chain, or "INTERNAL".
func Code(err error) string {
	if verrs, ok := AsValidationErrors(err); ok && verrs.HasErrors() {
		return verrs.First().Code
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code
	}
	return "INTERNAL"
}
