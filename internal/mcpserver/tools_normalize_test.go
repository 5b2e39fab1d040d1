package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestNormalizeTool_Defaults(t *testing.T) {
	input := normalizeInput{
		Spec: specInput{Content: testSpec31},
	}
	_, output, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, "3.1.0", output.Version)
	assert.True(t, output.Changed)
	assert.Equal(t, 1, output.SchemaCount)
	assert.Equal(t, []string{"Pet"}, output.ChangedSchemas)
	assert.Zero(t, output.WebhookCount, "webhook structuring is off by default")
	assert.Zero(t, output.Conflicts)

	// rendered yaml carries the rewritten union
	assert.Contains(t, output.Document, "openapi: 3.1.0")
	assert.Contains(t, output.Document, "nullable: true")
	assert.NotContains(t, output.Document, "webhooks:")
}

func TestNormalizeTool_Webhooks(t *testing.T) {
	input := normalizeInput{
		Spec:     specInput{Content: testSpec31},
		Webhooks: boolPtr(true),
	}
	_, output, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 1, output.WebhookCount)
	assert.Contains(t, output.Document, "newPet")
}

func TestNormalizeTool_DisabledTransform(t *testing.T) {
	input := normalizeInput{
		Spec:               specInput{Content: testSpec31},
		StrictNullHandling: boolPtr(false),
	}
	_, output, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.False(t, output.Changed)
	assert.Empty(t, output.ChangedSchemas)
	assert.NotContains(t, output.Document, "nullable:")
}

func TestNormalizeTool_JSONFormat(t *testing.T) {
	input := normalizeInput{
		Spec:   specInput{Content: testSpec31},
		Format: "json",
	}
	_, output, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(output.Document), &doc))
	assert.Equal(t, "3.1.0", doc["openapi"])
	assert.Contains(t, doc, "components")
}

func TestNormalizeTool_UnsupportedFormat(t *testing.T) {
	input := normalizeInput{
		Spec:   specInput{Content: testSpec31},
		Format: "toml",
	}
	result, _, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestNormalizeTool_Legacy30(t *testing.T) {
	input := normalizeInput{
		Spec: specInput{Content: testSpec30},
	}
	_, output, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", output.Version)
	assert.True(t, output.Changed)
	assert.Contains(t, output.Document, "anyOf")
}

func TestNormalizeTool_InvalidSpec(t *testing.T) {
	input := normalizeInput{
		Spec: specInput{Content: "openapi: [broken"},
	}
	result, output, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Empty(t, output.Document)
}

func TestNormalizeTool_TransformError(t *testing.T) {
	spec := strings.Join([]string{
		"openapi: 3.1.0",
		"info:",
		"  title: Broken",
		"  version: \"1.0.0\"",
		"components:",
		"  schemas:",
		"    Bad:",
		"      type: array",
		"      contains:",
		"        type: string",
		"      minContains: 3",
		"      maxContains: 1",
	}, "\n")

	input := normalizeInput{
		Spec: specInput{Content: spec},
	}
	result, _, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "minContains")
}
