package schemas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_ValidJSON(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "valid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	assert.NoError(t, err)
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "invalid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "type_mismatch.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	schemaPath := "testdata/nonexistent_schema.json"
	jsonPath := filepath.Join("testdata", "valid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := "testdata/nonexistent_json.json"

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	malformedJSON := filepath.Join(t.TempDir(), "malformed.json")
	err := os.WriteFile(malformedJSON, []byte("{ invalid json }"), 0644)
	require.NoError(t, err)

	schemaPath := filepath.Join("testdata", "valid_schema.json")

	valErr := ValidateJSON(schemaPath, malformedJSON)
	require.Error(t, valErr)
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "expected SchemaLoadError, got %T", err)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}

func TestValidateDocumentJSON_Valid(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "document.json"))
	require.NoError(t, err)

	assert.NoError(t, ValidateDocumentJSON(data))
	assert.NoError(t, ValidateDocumentFile(filepath.Join("testdata", "document.json")))
}

func TestValidateDocumentJSON_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantField string
	}{
		{
			name:      "missing personal info",
			json:      `{"id": "d", "sections": []}`,
			wantField: "(root)",
		},
		{
			name:      "unknown section type",
			json:      `{"id": "d", "personalInfo": {"name": "A"}, "sections": [{"id": "s", "type": "hobbies", "items": []}]}`,
			wantField: "sections.0.type",
		},
		{
			name:      "experience item missing company",
			json:      `{"id": "d", "personalInfo": {"name": "A"}, "sections": [{"id": "s", "type": "experience", "items": [{"position": "Dev"}]}]}`,
			wantField: "sections.0.items.0",
		},
		{
			name:      "summary item not a string",
			json:      `{"id": "d", "personalInfo": {"name": "A"}, "sections": [{"id": "s", "type": "summary", "items": [{"content": "x"}]}]}`,
			wantField: "sections.0.items.0",
		},
		{
			name:      "bad skill level",
			json:      `{"id": "d", "personalInfo": {"name": "A"}, "sections": [{"id": "s", "type": "skills", "items": [{"name": "Go", "level": "guru"}]}]}`,
			wantField: "sections.0.items.0.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentJSON([]byte(tt.json))
			require.Error(t, err)

			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "expected ValidationError, got %T: %v", err, err)

			var fields []string
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField, "fields: %s", strings.Join(fields, ", "))
		})
	}
}

func TestValidateDocumentJSON_CustomItemsAreFree(t *testing.T) {
	doc := `{"id": "d", "personalInfo": {"name": "A"}, "sections": [
		{"id": "s", "type": "custom", "items": [{"anything": [1, 2]}, "text", 3]}
	]}`
	assert.NoError(t, ValidateDocumentJSON([]byte(doc)))
}

func TestValidateDocumentFile_Missing(t *testing.T) {
	err := ValidateDocumentFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestValidateBlocksJSON(t *testing.T) {
	valid := `[
		{"id": "h", "type": "header", "order": 0, "payload": {"name": "Jane"}},
		{"id": "d", "type": "divider", "order": 1, "payload": {}, "style": {"align": "center"}}
	]`
	assert.NoError(t, ValidateBlocksJSON([]byte(valid)))

	invalid := `[{"id": "x", "type": "paragraph", "order": 0, "payload": {}}]`
	err := ValidateBlocksJSON([]byte(invalid))
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.True(t, ok)
}
