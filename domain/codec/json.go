package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cathedral-bridge/domain/interchange"
	pkgerrors "cathedral-bridge/pkg/errors"
)

// Marshal serializes a document; indent produces two-space indented output
func Marshal(doc *interchange.Document, indent bool) ([]byte, error) {
	if doc == nil {
		return nil, pkgerrors.NewShapeError("document", "document is required")
	}
	if indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// Parse reads a JSON document. Malformed JSON, values of the wrong JSON type,
// unknown keys and trailing data are reported as shape errors. Attribute numbers
// are kept as json.Number.
func Parse(data []byte) (*interchange.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, pkgerrors.NewShapeError("document", "document is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var doc interchange.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, parseError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, pkgerrors.NewShapeErrorf("document", "unexpected data after the document at offset %d", dec.InputOffset())
	}
	return &doc, nil
}

func parseError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return pkgerrors.NewShapeErrorf("document", "malformed JSON at offset %d: %v", syntaxErr.Offset, syntaxErr).WithCause(err)
	case errors.As(err, &typeErr):
		path := typeErr.Field
		if path == "" {
			path = "document"
		}
		return pkgerrors.NewShapeErrorf(path, "expected %s, got JSON %s", typeErr.Type, typeErr.Value).WithCause(err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return pkgerrors.NewShapeError("document", "unexpected end of JSON input").WithCause(err)
	default:
		return pkgerrors.NewShapeError("document", fmt.Sprintf("invalid document: %v", err)).WithCause(err)
	}
}
