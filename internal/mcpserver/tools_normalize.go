package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/erraggy/oasnorm/normalizer"
	"github.com/erraggy/oasnorm/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"
)

type normalizeInput struct {
	Spec                  specInput `json:"spec"                              jsonschema:"The OAS document to normalize"`
	StrictNullHandling    *bool     `json:"strict_null_handling,omitempty"    jsonschema:"Toggle null-type normalization (default true)"`
	ConditionalSchemas    *bool     `json:"conditional_schemas,omitempty"     jsonschema:"Toggle if/then/else validation (default true)"`
	PrefixItems           *bool     `json:"prefix_items,omitempty"            jsonschema:"Toggle prefixItems tuple rewriting (default true)"`
	UnevaluatedProperties *bool     `json:"unevaluated_properties,omitempty"  jsonschema:"Toggle unevaluated keyword approximation (default true)"`
	ConstKeyword          *bool     `json:"const_keyword,omitempty"           jsonschema:"Toggle const normalization (default true)"`
	ContainsKeyword       *bool     `json:"contains_keyword,omitempty"        jsonschema:"Toggle contains validation (default true)"`
	EnhancedDiscriminator *bool     `json:"enhanced_discriminator,omitempty"  jsonschema:"Toggle discriminator enhancement (default true)"`
	Webhooks              *bool     `json:"webhooks,omitempty"                jsonschema:"Toggle webhook structuring on 3.1 documents (default false)"`
	FallbackTo30          *bool     `json:"fallback_to_30,omitempty"          jsonschema:"Treat a 3.1 document as 3.0 (default false)"`
	Format                string    `json:"format,omitempty"                  jsonschema:"Output format: yaml (default) or json"`
}

type normalizeOutput struct {
	Version        string   `json:"version"`
	Changed        bool     `json:"changed"`
	SchemaCount    int      `json:"schema_count"`
	ChangedSchemas []string `json:"changed_schemas,omitempty"`
	WebhookCount   int      `json:"webhook_count"`
	Conflicts      int      `json:"conflicts"`
	Document       string   `json:"document"`
}

func handleNormalize(_ context.Context, _ *mcp.CallToolRequest, input normalizeInput) (*mcp.CallToolResult, normalizeOutput, error) {
	loaded, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	opts := normalizer.DefaultOptions()
	applyToggle(&opts.StrictNullHandling, input.StrictNullHandling)
	applyToggle(&opts.EnableConditionalSchemas, input.ConditionalSchemas)
	applyToggle(&opts.EnablePrefixItems, input.PrefixItems)
	applyToggle(&opts.EnableUnevaluatedProperties, input.UnevaluatedProperties)
	applyToggle(&opts.EnableConstKeyword, input.ConstKeyword)
	applyToggle(&opts.EnableContainsKeyword, input.ContainsKeyword)
	applyToggle(&opts.EnableEnhancedDiscriminator, input.EnhancedDiscriminator)
	applyToggle(&opts.EnableWebhooks, input.Webhooks)
	applyToggle(&opts.FallbackToOpenAPI30, input.FallbackTo30)

	result, err := normalizer.NormalizeDocument(loaded.Document, normalizer.WithOptions(opts))
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	output := normalizeOutput{
		Version:      result.Version.String(),
		Changed:      result.Changed,
		SchemaCount:  len(result.Schemas),
		WebhookCount: len(result.Webhooks),
	}
	for name, res := range result.Schemas {
		if res.Changed {
			output.ChangedSchemas = append(output.ChangedSchemas, name)
		}
		output.Conflicts += len(res.Conflicts)
	}

	rendered, err := renderDocument(loaded.Document, result, input.Format)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}
	output.Document = rendered

	return nil, output, nil
}

func applyToggle(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// renderDocument assembles the normalized document from the per-schema
// results and serializes it.
func renderDocument(doc *parser.Document, result *normalizer.DocumentResult, format string) (string, error) {
	out := map[string]any{
		"openapi": doc.OpenAPI,
	}
	if doc.Info != nil {
		out["info"] = doc.Info
	}
	if len(result.Schemas) > 0 {
		schemas := make(map[string]*parser.Schema, len(result.Schemas))
		for name, res := range result.Schemas {
			schemas[name] = res.Schema
		}
		out["components"] = map[string]any{"schemas": schemas}
	}
	if len(result.Webhooks) > 0 {
		out["webhooks"] = result.Webhooks
	}

	switch format {
	case "", "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported format %q (use yaml or json)", format)
	}
}
