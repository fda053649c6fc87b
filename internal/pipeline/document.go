package pipeline

import (
	"encoding/json"
	"fmt"
	"slices"
)

// DocumentType selects which document shape the pipeline validates and assembles.
type DocumentType string

// Supported document types.
const (
	DocOrder       DocumentType = "order"
	DocConsignment DocumentType = "consignment"
)

var documentTypes = []DocumentType{DocOrder, DocConsignment}

// ParseDocumentType validates a string as a known document type.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	if !slices.Contains(documentTypes, t) {
		return "", fmt.Errorf("unknown document type: %q", s)
	}
	return t, nil
}

// UnmarshalJSON validates that the decoded string is a known document type.
func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDocumentType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
