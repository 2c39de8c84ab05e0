// Package transcode converts between the hierarchical resume document and the
// flat, ordered block list used for editing.
package transcode

import "fmt"

// StructuralError reports a block list that cannot form a document
type StructuralError struct {
	Message string
	Cause   error
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("structural error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("structural error: %s", e.Message)
}

func (e *StructuralError) Unwrap() error {
	return e.Cause
}
