package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-editor/internal/blocks"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "blocks.json")

	stdout, _, err := executeCommand(t, "decompose", "--in", testDocumentPath(), "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Decomposed doc_001 into 7 blocks")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var list []blocks.Block
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 7)
	assert.Equal(t, blocks.TypeHeader, list[0].Type)
	assert.Equal(t, "sec_exp", list[1].ID)
}

func TestDecompose_ToStdout(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "decompose", "--in", testDocumentPath())
	require.NoError(t, err)

	var list []blocks.Block
	require.NoError(t, json.Unmarshal([]byte(stdout), &list))
	assert.Len(t, list, 7)
	assert.Contains(t, stderr, "Decomposed")
}

func TestDecompose_Verbose(t *testing.T) {
	_, stderr, err := executeCommand(t, "decompose", "--in", testDocumentPath(), "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "DOCUMENT")
	assert.Contains(t, stderr, "BLOCKS")
}

func TestDecompose_MissingInFlag(t *testing.T) {
	_, _, err := executeCommand(t, "decompose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "in" not set`)
}

func TestDecompose_InvalidDocument(t *testing.T) {
	path := writeFile(t, "bad.json", `{"id": "d", "sections": []}`)

	_, _, err := executeCommand(t, "decompose", "--in", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestDecomposeComposeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	blocksPath := filepath.Join(dir, "blocks.json")
	docPath := filepath.Join(dir, "doc.json")

	_, _, err := executeCommand(t, "decompose", "--in", testDocumentPath(), "--out", blocksPath)
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, "compose", "--blocks", blocksPath, "--base", testDocumentPath(), "--out", docPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "into 3 sections")

	original, err := readDocument(testDocumentPath())
	require.NoError(t, err)
	composed, err := readDocument(docPath)
	require.NoError(t, err)

	assert.Equal(t, original.ID, composed.ID)
	assert.Equal(t, original.PersonalInfo, composed.PersonalInfo)
	assert.Equal(t, original.Template, composed.Template)
	require.Len(t, composed.Sections, len(original.Sections))
	for i := range original.Sections {
		assert.Equal(t, original.Sections[i].ID, composed.Sections[i].ID)
		assert.Equal(t, original.Sections[i].Type, composed.Sections[i].Type)
		assert.Equal(t, original.Sections[i].Items, composed.Sections[i].Items)
	}
}

func TestCompose_RequiresID(t *testing.T) {
	blocksPath := writeFile(t, "blocks.json", `[{"id": "h", "type": "header", "order": 0, "payload": {"name": "Jane"}}]`)

	_, _, err := executeCommand(t, "compose", "--blocks", blocksPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document id is required")

	stdout, _, err := executeCommand(t, "compose", "--blocks", blocksPath, "--id", "doc_x")
	require.NoError(t, err)
	var doc types.Document
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "doc_x", doc.ID)
	assert.Equal(t, "Jane", doc.PersonalInfo.Name)
}

func TestCompose_NoHeader(t *testing.T) {
	blocksPath := writeFile(t, "blocks.json", `[{"id": "d", "type": "divider", "order": 0, "payload": {}}]`)

	_, _, err := executeCommand(t, "compose", "--blocks", blocksPath, "--id", "doc_x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header block")
}

func TestCompose_InvalidBlocks(t *testing.T) {
	blocksPath := writeFile(t, "blocks.json", `[{"id": "x", "type": "paragraph", "order": 0, "payload": {}}]`)

	_, _, err := executeCommand(t, "compose", "--blocks", blocksPath, "--id", "doc_x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCompose_RejectsBadFieldValue(t *testing.T) {
	blocksPath := writeFile(t, "blocks.json", `[
		{"id": "h", "type": "header", "order": 0, "payload": {"name": "Jane", "email": "not-an-email"}}
	]`)

	_, _, err := executeCommand(t, "compose", "--blocks", blocksPath, "--id", "doc_x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid block")
}

func TestValidate(t *testing.T) {
	stdout, _, err := executeCommand(t, "validate", testDocumentPath(), testDocumentPath())
	require.NoError(t, err)
	assert.Contains(t, stdout, "All 2 documents valid")
}

func TestValidate_ReportsEveryInvalidFile(t *testing.T) {
	bad1 := writeFile(t, "bad1.json", `{"id": "d", "sections": []}`)
	bad2 := writeFile(t, "bad2.json", `{"id": "d", "personalInfo": {"name": "A", "email": "nope"}, "sections": []}`)

	stdout, _, err := executeCommand(t, "validate", testDocumentPath(), bad1, bad2, "--verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 documents invalid")
	assert.Contains(t, stdout, "✓ "+testDocumentPath())
	assert.Contains(t, stdout, "✗ "+bad1)
	assert.Contains(t, stdout, "✗ "+bad2)
}

func TestValidate_NoArgs(t *testing.T) {
	_, _, err := executeCommand(t, "validate")
	require.Error(t, err)
}

func TestRenderLaTeX_FromFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "resume.tex")

	stdout, _, err := executeCommand(t, "render-latex", "--in", testDocumentPath(), "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully rendered LaTeX resume")

	tex, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(tex), "Jane Doe")
	assert.Contains(t, string(tex), `\documentclass`)
}

func TestRenderLaTeX_CustomTemplate(t *testing.T) {
	tmpl := writeFile(t, "custom.tex", `NAME={{escape .Name}}`)

	stdout, _, err := executeCommand(t, "render-latex", "--in", testDocumentPath(), "--template", tmpl)
	require.NoError(t, err)
	assert.Equal(t, "NAME=Jane Doe", stdout)
}

func TestRenderLaTeX_FlagRules(t *testing.T) {
	_, _, err := executeCommand(t, "render-latex")
	require.Error(t, err)

	_, _, err = executeCommand(t, "render-latex", "--in", testDocumentPath(), "--id", "doc_001")
	require.Error(t, err)
}

// storeDocument saves the sample document into a fresh SQLite file and
// returns a config file pointing at it
func storeDocument(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "resumes.db")

	doc, err := readDocument(testDocumentPath())
	require.NoError(t, err)

	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveDocument(ctx, doc))
	store.Close()

	return writeFile(t, "config.yaml", "sqlite_path: "+dbPath+"\n")
}

func TestRenderLaTeX_FromStore(t *testing.T) {
	cfgPath := storeDocument(t)

	stdout, _, err := executeCommand(t, "render-latex", "--config", cfgPath, "--id", "doc_001")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Jane Doe")

	_, _, err = executeCommand(t, "render-latex", "--config", cfgPath, "--id", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document not found: missing")
}

func TestBlocks(t *testing.T) {
	stdout, _, err := executeCommand(t, "blocks", "--in", testDocumentPath(), "--select", "sec_exp")
	require.NoError(t, err)
	assert.Contains(t, stdout, "EDITOR STATE")
	assert.Contains(t, stdout, "Blocks:   7")
	assert.Contains(t, stdout, "Selected: sec_exp")
	assert.Contains(t, stdout, "▸")
}

func TestBlocks_FromStore(t *testing.T) {
	cfgPath := storeDocument(t)

	stdout, _, err := executeCommand(t, "blocks", "--config", cfgPath, "--id", "doc_001", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, "DOCUMENT")
	assert.Contains(t, stdout, "Blocks:   7")
}

func TestBlocks_UnknownSelection(t *testing.T) {
	_, _, err := executeCommand(t, "blocks", "--in", testDocumentPath(), "--select", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block not found: nope")
}

func TestServe_RequiresStore(t *testing.T) {
	_, _, err := executeCommand(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a document store is required")
}

func TestLoadSettings_ConfigConflicts(t *testing.T) {
	cfgPath := writeFile(t, "config.json", `{"database_url": "postgres://x", "sqlite_path": "y.db"}`)

	_, _, err := executeCommand(t, "blocks", "--config", cfgPath, "--in", testDocumentPath())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
