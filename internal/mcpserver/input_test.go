package mcpserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecInputResolveContent(t *testing.T) {
	result, err := specInput{Content: testSpec31}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.1.0", result.Document.OpenAPI)
}

func TestSpecInputResolveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSpec31), 0o600))

	result, err := specInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.1.0", result.Document.OpenAPI)
}

func TestSpecInputResolveNeither(t *testing.T) {
	_, err := specInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one of file or content")
}

func TestSpecInputResolveBoth(t *testing.T) {
	_, err := specInput{File: "spec.yaml", Content: testSpec31}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestSpecInputResolveMissingFile(t *testing.T) {
	_, err := specInput{File: filepath.Join(t.TempDir(), "missing.yaml")}.resolve()
	require.Error(t, err)
}
