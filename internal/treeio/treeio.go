// Package treeio loads contract trees from files or in-memory documents,
// detecting OpenAPI 3.x documents and falling back to the tree format.
package treeio

import (
	"fmt"
	"os"

	"github.com/erraggy/apiverify/contract"
	"github.com/erraggy/apiverify/contract/openapi"
)

// MaxDocumentSize bounds documents read by Load.
const MaxDocumentSize int64 = 10 * 1024 * 1024

// Format identifies the document format a tree was decoded from.
type Format string

const (
	// FormatTree is the YAML/JSON resource tree format.
	FormatTree Format = "tree"
	// FormatOpenAPI is an OpenAPI 3.x document.
	FormatOpenAPI Format = "openapi"
)

// Detect reports the format of data.
func Detect(data []byte) Format {
	if openapi.IsOpenAPI(data) {
		return FormatOpenAPI
	}
	return FormatTree
}

// Load reads the document at path and decodes it in its detected format.
// It has the signature of verifier.TreeLoader.
func Load(path string) (*contract.API, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("treeio: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("treeio: %s is a directory", path)
	}
	if info.Size() > MaxDocumentSize {
		return nil, fmt.Errorf("treeio: %s is %d bytes, exceeding the %d byte limit", path, info.Size(), MaxDocumentSize)
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is caller-provided by design
	if err != nil {
		return nil, fmt.Errorf("treeio: %w", err)
	}
	// OpenAPI documents are reloaded by path so relative $refs resolve.
	if Detect(data) == FormatOpenAPI {
		return openapi.Load(path)
	}
	return contract.LoadFile(path)
}

// Decode decodes an in-memory document in its detected format.
func Decode(data []byte) (*contract.API, error) {
	if Detect(data) == FormatOpenAPI {
		return openapi.LoadData(data)
	}
	return contract.Decode(data)
}
