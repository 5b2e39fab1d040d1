package mcpserver

import (
	"context"

	"github.com/erraggy/oasnorm/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type detectVersionInput struct {
	Spec specInput `json:"spec" jsonschema:"The OAS document to inspect"`
}

type featureFlags struct {
	Webhooks              bool `json:"webhooks"`
	TypeArrays            bool `json:"type_arrays"`
	ConditionalSchemas    bool `json:"conditional_schemas"`
	PrefixItems           bool `json:"prefix_items"`
	UnevaluatedProperties bool `json:"unevaluated_properties"`
	ConstKeyword          bool `json:"const_keyword"`
	ContainsKeyword       bool `json:"contains_keyword"`
	EnhancedDiscriminator bool `json:"enhanced_discriminator"`
}

type detectVersionOutput struct {
	Version     string       `json:"version"`
	Major       int          `json:"major"`
	Minor       int          `json:"minor"`
	Patch       int          `json:"patch"` // -1 when absent
	IsVersion30 bool         `json:"is_version_30"`
	IsVersion31 bool         `json:"is_version_31"`
	Features    featureFlags `json:"features"`
}

func handleDetectVersion(_ context.Context, _ *mcp.CallToolRequest, input detectVersionInput) (*mcp.CallToolResult, detectVersionOutput, error) {
	loaded, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), detectVersionOutput{}, nil
	}

	info, err := parser.DetectVersion(loaded.Document)
	if err != nil {
		return errResult(err), detectVersionOutput{}, nil
	}

	features := info.Features()
	return nil, detectVersionOutput{
		Version:     info.Version,
		Major:       info.Major,
		Minor:       info.Minor,
		Patch:       info.Patch,
		IsVersion30: info.IsVersion30,
		IsVersion31: info.IsVersion31,
		Features: featureFlags{
			Webhooks:              features.Webhooks,
			TypeArrays:            features.TypeArrays,
			ConditionalSchemas:    features.ConditionalSchemas,
			PrefixItems:           features.PrefixItems,
			UnevaluatedProperties: features.UnevaluatedProperties,
			ConstKeyword:          features.ConstKeyword,
			ContainsKeyword:       features.ContainsKeyword,
			EnhancedDiscriminator: features.EnhancedDiscriminator,
		},
	}, nil
}
