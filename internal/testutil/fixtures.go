// Package testutil provides fixtures and file helpers shared by tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// OrdersTree is a tree document with two resources. POST /orders accepts
// JSON and XML bodies and GET /orders/{id} answers 200 and 404.
const OrdersTree = `title: Orders
version: v1
/orders:
  get:
    queryParameters:
      page: {type: integer}
  post:
    body:
      application/json:
      application/xml:
  /{id}:
    get:
      responses:
        200:
          body:
            application/json:
        404:
/customers:
  get:
`

// OrdersOpenAPI is an OpenAPI 3.0 rendition of OrdersTree whose POST /orders
// declares only a JSON body.
const OrdersOpenAPI = `openapi: "3.0.3"
info:
  title: Orders
  version: v1
paths:
  /orders:
    get:
      parameters:
        - {name: page, in: query, schema: {type: integer}}
      responses:
        "200": {description: OK}
    post:
      requestBody:
        content:
          application/json: {}
      responses:
        "201": {description: Created}
  /orders/{id}:
    get:
      parameters:
        - {name: id, in: path, required: true, schema: {type: string}}
      responses:
        "200":
          description: OK
          content:
            application/json: {}
        "404": {description: Not found}
  /customers:
    get:
      responses:
        "200": {description: OK}
`

// WriteTempFile writes content to name inside a fresh temporary directory
// and returns the file path. The directory is removed when the test completes.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return path
}

// WriteTempYAML marshals doc to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", string(data))
}
