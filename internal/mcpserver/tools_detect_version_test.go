package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpec31 = `openapi: 3.1.0
info:
  title: Pet Events
  version: "1.0.0"
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
        tag:
          type: [string, "null"]
webhooks:
  newPet:
    post:
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
`

const testSpec30 = `openapi: 3.0.3
info:
  title: Pet Store
  version: "1.0.0"
components:
  schemas:
    Pet:
      type: object
      properties:
        tag:
          type: string
          nullable: true
`

func TestDetectVersionTool_31(t *testing.T) {
	input := detectVersionInput{
		Spec: specInput{Content: testSpec31},
	}
	_, output, err := handleDetectVersion(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, "3.1.0", output.Version)
	assert.Equal(t, 3, output.Major)
	assert.Equal(t, 1, output.Minor)
	assert.Equal(t, 0, output.Patch)
	assert.True(t, output.IsVersion31)
	assert.False(t, output.IsVersion30)

	assert.True(t, output.Features.Webhooks)
	assert.True(t, output.Features.TypeArrays)
	assert.True(t, output.Features.PrefixItems)
	assert.True(t, output.Features.EnhancedDiscriminator)
}

func TestDetectVersionTool_30(t *testing.T) {
	input := detectVersionInput{
		Spec: specInput{Content: testSpec30},
	}
	_, output, err := handleDetectVersion(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", output.Version)
	assert.True(t, output.IsVersion30)
	assert.False(t, output.Features.Webhooks)
	assert.False(t, output.Features.TypeArrays)
}

func TestDetectVersionTool_Unsupported(t *testing.T) {
	input := detectVersionInput{
		Spec: specInput{Content: "openapi: 2.0.0\ninfo:\n  title: Old\n  version: \"1.0\"\n"},
	}
	result, output, err := handleDetectVersion(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Empty(t, output.Version)
}

func TestDetectVersionTool_InvalidSpec(t *testing.T) {
	input := detectVersionInput{
		Spec: specInput{Content: "not valid yaml: ["},
	}
	result, _, err := handleDetectVersion(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
