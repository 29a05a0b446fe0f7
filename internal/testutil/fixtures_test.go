package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestWriteTempFile(t *testing.T) {
	path := WriteTempFile(t, "tree.yaml", OrdersTree)
	assert.Equal(t, "tree.yaml", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, OrdersTree, string(data))
}

func TestWriteTempYAML(t *testing.T) {
	path := WriteTempYAML(t, map[string]any{"strict": true})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, true, got["strict"])
}

func TestFixturesAreYAML(t *testing.T) {
	for name, doc := range map[string]string{"OrdersTree": OrdersTree, "OrdersOpenAPI": OrdersOpenAPI} {
		var node yaml.Node
		assert.NoError(t, yaml.Unmarshal([]byte(doc), &node), name)
	}
}
