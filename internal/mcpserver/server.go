// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasnorm capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasnorm"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasnorm MCP server — detects OpenAPI versions and normalizes 3.0/3.1 schema documents for Draft-07 era tooling.

Tools:
- detect_version — parse and validate the openapi version string, report per-feature support flags
- normalize — run the transformation pipeline (null types, const, prefixItems, contains, if/then/else, discriminator, unevaluated keywords, webhooks) over a document and return the normalized result

Provide specs inline via content or as a file path. Individual transforms can be toggled per call; defaults enable every structural rewrite except webhook structuring.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasnorm", Version: oasnorm.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_version",
		Description: "Detect and validate the OpenAPI version of a document. Returns the parsed version components and the per-feature support flags (webhooks, type arrays, conditional schemas, prefixItems, unevaluated properties, const, contains, enhanced discriminator).",
	}, handleDetectVersion)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "normalize",
		Description: "Normalize an OpenAPI 3.0/3.1 document for Draft-07 era tooling. Runs the structural rewrite pipeline over every component schema and optionally structures 3.1 webhooks. Individual transforms can be disabled per call; output format is yaml (default) or json.",
	}, handleNormalize)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
