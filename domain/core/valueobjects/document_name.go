package valueobjects

import (
	"fmt"
	"regexp"
	"strings"

	pkgerrors "cathedral-bridge/pkg/errors"
)

var documentNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// DocumentName names a stored interchange document. It is safe to use as a
// file name and as a DynamoDB key component.
type DocumentName string

// NewDocumentName validates and normalizes a document name. A trailing
// ".json" is stripped so "tree.json" and "tree" name the same document.
func NewDocumentName(raw string) (DocumentName, error) {
	name := strings.TrimSuffix(strings.TrimSpace(raw), ".json")
	if name == "" {
		return "", pkgerrors.NewInvalidRequestError("document name is required")
	}
	if !documentNamePattern.MatchString(name) || strings.Contains(name, "..") {
		return "", pkgerrors.NewInvalidRequestError(
			fmt.Sprintf("document name %q must be 1-128 letters, digits, '.', '_' or '-'", raw))
	}
	return DocumentName(name), nil
}

func (n DocumentName) String() string {
	return string(n)
}
