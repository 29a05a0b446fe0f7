package treeio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apiverify/apierrors"
	"github.com/erraggy/apiverify/contract"
	"github.com/erraggy/apiverify/internal/testutil"
	"github.com/erraggy/apiverify/verifier"
)

const treeDoc = `title: Orders
/orders:
  get:
  post:
`

const openAPIDoc = `openapi: "3.0.3"
info:
  title: Orders
  version: "1.0"
paths:
  /orders:
    get:
      responses:
        "200":
          description: OK
`

func TestDetect(t *testing.T) {
	assert.Equal(t, FormatTree, Detect([]byte(treeDoc)))
	assert.Equal(t, FormatOpenAPI, Detect([]byte(openAPIDoc)))
	assert.Equal(t, FormatOpenAPI, Detect([]byte(`{"openapi": "3.1.0", "info": {}}`)))
	assert.Equal(t, FormatTree, Detect(nil))
}

func TestLoad(t *testing.T) {
	api, err := Load(testutil.WriteTempFile(t, "tree.yaml", treeDoc))
	require.NoError(t, err)
	assert.Equal(t, "Orders", api.Title)
	require.NotNil(t, api.Resource("/orders"))
	assert.Len(t, api.Resource("/orders").Actions, 2)

	api, err = Load(testutil.WriteTempFile(t, "openapi.yaml", openAPIDoc))
	require.NoError(t, err)
	assert.Equal(t, "1.0", api.Version)
	require.NotNil(t, api.Resource("/orders"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = Load(testutil.WriteTempFile(t, "bad.yaml", "- 1\n"))
	assert.ErrorIs(t, err, apierrors.ErrParse)
}

func TestDecode(t *testing.T) {
	api, err := Decode([]byte(treeDoc))
	require.NoError(t, err)
	assert.NotNil(t, api.Resource("/orders"))

	api, err = Decode([]byte(openAPIDoc))
	require.NoError(t, err)
	assert.Equal(t, "Orders", api.Title)

	_, err = Decode([]byte("openapi: 3.0.0\npaths: [\n"))
	assert.Error(t, err)
}

func TestLoadAsTreeLoader(t *testing.T) {
	report, err := verifier.CompareWithOptions(
		verifier.WithReferenceFilePath(testutil.WriteTempFile(t, "orders.yaml", testutil.OrdersTree)),
		verifier.WithTargetFilePath(testutil.WriteTempFile(t, "openapi.yaml", testutil.OrdersOpenAPI)),
		verifier.WithTreeLoader(Load),
		verifier.WithCheckers(verifier.DefaultCheckers()...),
		verifier.WithStrict(true),
	)
	require.NoError(t, err)

	want := contract.Stats{Resources: 3, Actions: 4}
	assert.Equal(t, want, report.ReferenceStats())
	assert.Equal(t, want, report.TargetStats())

	require.Equal(t, 1, report.Len())
	issue := report.Errors()[0]
	assert.Equal(t, "POST /orders", issue.Path)
	assert.Equal(t, "application/xml", issue.Subject)
}
