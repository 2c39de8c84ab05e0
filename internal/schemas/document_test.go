package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "document.json"))
	require.NoError(t, err)

	doc, err := ParseDocument(data)
	require.NoError(t, err)
	assert.Equal(t, "doc_001", doc.ID)
	assert.Equal(t, "Jane Doe", doc.PersonalInfo.Name)
	assert.Len(t, doc.Sections, 3)
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantField string
	}{
		{
			name:      "missing id",
			json:      `{"id": "", "personalInfo": {"name": "A"}, "sections": []}`,
			wantField: "id",
		},
		{
			name:      "bad email",
			json:      `{"id": "d", "personalInfo": {"name": "A", "email": "nope"}, "sections": []}`,
			wantField: "document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.json))
			require.Error(t, err)

			var docErr *DocumentError
			require.True(t, errors.As(err, &docErr), "expected DocumentError, got %T: %v", err, err)
			assert.Equal(t, tt.wantField, docErr.Field)
		})
	}
}

func TestParseDocument_SchemaErrors(t *testing.T) {
	_, err := ParseDocument([]byte(`{"id": "d", "sections": []}`))
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = ParseDocument([]byte(`{ not json`))
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}
