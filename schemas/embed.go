// Package schemas holds the JSON Schemas for persisted documents and block lists.
package schemas

import "embed"

// Schema file names within FS
const (
	DocumentSchema = "document.schema.json"
	BlocksSchema   = "blocks.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Load returns the raw contents of the named schema.
func Load(name string) ([]byte, error) {
	return FS.ReadFile(name)
}
