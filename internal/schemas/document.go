package schemas

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-editor/internal/types"
)

// DocumentError reports a document that passes the schema but cannot be used:
// it does not decode, has no id, or breaks a field constraint
type DocumentError struct {
	Field   string
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid document %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid document %s: %s", e.Field, e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// ParseDocument checks data against the document schema, decodes it and
// validates its field constraints. Schema failures come back as
// *ValidationError or *SchemaLoadError; everything after that as *DocumentError.
func ParseDocument(data []byte) (*types.Document, error) {
	if err := ValidateDocumentJSON(data); err != nil {
		return nil, err
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DocumentError{Field: "body", Message: "failed to unmarshal document JSON", Cause: err}
	}
	if doc.ID == "" {
		return nil, &DocumentError{Field: "id", Message: "document id is required"}
	}
	if err := doc.Validate(); err != nil {
		return nil, &DocumentError{Field: "document", Message: "field constraints not met", Cause: err}
	}
	return &doc, nil
}
