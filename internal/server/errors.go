package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-editor/internal/blocks"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/transcode"
)

// ErrSessionNotFound indicates no editing session is open for the document
type ErrSessionNotFound struct {
	DocumentID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("no open session for document: %s", e.DocumentID)
}

// ErrDocumentNotFound indicates the store has no document with the id
type ErrDocumentNotFound struct {
	DocumentID string
}

func (e *ErrDocumentNotFound) Error() string {
	return fmt.Sprintf("document not found: %s", e.DocumentID)
}

// ErrBlockNotFound indicates the session has no block with the id
type ErrBlockNotFound struct {
	BlockID string
}

func (e *ErrBlockNotFound) Error() string {
	return fmt.Sprintf("block not found: %s", e.BlockID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		sessionErr    *ErrSessionNotFound
		documentErr   *ErrDocumentNotFound
		blockErr      *ErrBlockNotFound
		validationErr *ErrValidation
		patchErr      *blocks.PatchError
		schemaErr     *schemas.ValidationError
		docErr        *schemas.DocumentError
		structuralErr *transcode.StructuralError
	)
	switch {
	case errors.As(err, &sessionErr), errors.As(err, &documentErr), errors.As(err, &blockErr):
		return http.StatusNotFound
	case errors.As(err, &validationErr), errors.As(err, &patchErr), errors.As(err, &schemaErr),
		errors.As(err, &docErr):
		return http.StatusBadRequest
	case errors.As(err, &structuralErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
