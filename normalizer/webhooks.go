package normalizer

import (
	"fmt"

	"github.com/erraggy/oasnorm/internal/naming"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

// WebhookInfo records one structured webhook.
type WebhookInfo struct {
	// Name is the webhook key from the document
	Name string
	// Methods are the HTTP methods that contributed a schema, in the
	// fixed method order
	Methods []string
}

// webhookStructurer converts the 3.1 webhooks map into plain object
// schemas: one per webhook name, with the present HTTP methods as
// properties and each method aggregating its request body, responses,
// parameters, and headers as JSON Schema. Operations contributing
// nothing usable are omitted; webhooks left with no operations are
// dropped.
type webhookStructurer struct{}

func (w *webhookStructurer) structure(webhooks map[string]*parser.PathItem) (map[string]*parser.Schema, []WebhookInfo, error) {
	if len(webhooks) == 0 {
		return nil, nil, nil
	}

	out := make(map[string]*parser.Schema, len(webhooks))
	var infos []WebhookInfo

	for _, name := range sortedKeys(webhooks) {
		item := webhooks[name]
		loc := joinPtr("", "webhooks", name)
		if unknown := item.UnknownMethods(); len(unknown) > 0 {
			return nil, nil, &oaserrors.StructuralError{
				Location: loc,
				Keyword:  "webhooks",
				Message:  fmt.Sprintf("invalid HTTP method %q", unknown[0]),
			}
		}

		hook := &parser.Schema{
			Type:        "object",
			Description: item.Description,
			Properties:  make(map[string]*parser.Schema),
		}
		var methods []string
		for _, mo := range item.Operations() {
			opSchema := w.operationSchema(mo.Operation)
			if opSchema == nil {
				continue
			}
			hook.Properties[mo.Method] = opSchema
			methods = append(methods, mo.Method)
		}
		if len(hook.Properties) == 0 {
			continue
		}
		out[name] = hook
		infos = append(infos, WebhookInfo{Name: name, Methods: methods})
	}

	if len(out) == 0 {
		return nil, nil, nil
	}
	return out, infos, nil
}

// operationSchema aggregates one operation into an object schema, or
// returns nil when the operation carries no usable content.
func (w *webhookStructurer) operationSchema(op *parser.Operation) *parser.Schema {
	props := make(map[string]*parser.Schema)
	var required []string

	if body := w.requestBodySchema(op.RequestBody); body != nil {
		props["requestBody"] = body
		if op.RequestBody.Required {
			required = append(required, "requestBody")
		}
	}
	if resp := w.responsesSchema(op.Responses); resp != nil {
		props["responses"] = resp
	}
	if params := w.parametersSchema(op.Parameters); params != nil {
		props["parameters"] = params
	}
	if headers := w.headerParamsSchema(op.Parameters); headers != nil {
		props["headers"] = headers
	}

	if len(props) == 0 {
		return nil
	}
	return &parser.Schema{
		Type:        "object",
		Description: op.Description,
		Properties:  props,
		Required:    required,
	}
}

// requestBodySchema keys the request body content by normalized media
// type identifier.
func (w *webhookStructurer) requestBodySchema(rb *parser.RequestBody) *parser.Schema {
	if rb == nil {
		return nil
	}
	props := w.contentSchemas(rb.Content)
	if len(props) == 0 {
		return nil
	}
	return &parser.Schema{
		Type:        "object",
		Description: rb.Description,
		Properties:  props,
	}
}

// responsesSchema keys responses by status code; each response carries
// its content keyed by normalized media type, plus its headers.
func (w *webhookStructurer) responsesSchema(responses map[string]*parser.Response) *parser.Schema {
	if len(responses) == 0 {
		return nil
	}
	props := make(map[string]*parser.Schema, len(responses))
	for _, code := range sortedKeys(responses) {
		resp := responses[code]
		if resp == nil {
			continue
		}
		respProps := w.contentSchemas(resp.Content)
		if headers := w.responseHeadersSchema(resp.Headers); headers != nil {
			if respProps == nil {
				respProps = make(map[string]*parser.Schema, 1)
			}
			respProps["headers"] = headers
		}
		if len(respProps) == 0 {
			continue
		}
		props[code] = &parser.Schema{
			Type:        "object",
			Description: resp.Description,
			Properties:  respProps,
		}
	}
	if len(props) == 0 {
		return nil
	}
	return &parser.Schema{Type: "object", Properties: props}
}

// parametersSchema converts non-header parameters into an object schema
// keyed by parameter name, with required entries mirrored.
func (w *webhookStructurer) parametersSchema(params []*parser.Parameter) *parser.Schema {
	props := make(map[string]*parser.Schema)
	var required []string
	for _, p := range params {
		if p == nil || p.Name == "" || p.In == "header" || p.Schema == nil {
			continue
		}
		props[p.Name] = p.Schema.DeepCopy()
		if p.Required {
			required = append(required, p.Name)
		}
	}
	if len(props) == 0 {
		return nil
	}
	return &parser.Schema{Type: "object", Properties: props, Required: required}
}

// headerParamsSchema converts header parameters into an object schema.
func (w *webhookStructurer) headerParamsSchema(params []*parser.Parameter) *parser.Schema {
	props := make(map[string]*parser.Schema)
	var required []string
	for _, p := range params {
		if p == nil || p.Name == "" || p.In != "header" || p.Schema == nil {
			continue
		}
		props[p.Name] = p.Schema.DeepCopy()
		if p.Required {
			required = append(required, p.Name)
		}
	}
	if len(props) == 0 {
		return nil
	}
	return &parser.Schema{Type: "object", Properties: props, Required: required}
}

func (w *webhookStructurer) responseHeadersSchema(headers map[string]*parser.Header) *parser.Schema {
	if len(headers) == 0 {
		return nil
	}
	props := make(map[string]*parser.Schema, len(headers))
	var required []string
	for _, name := range sortedKeys(headers) {
		h := headers[name]
		if h == nil || h.Schema == nil {
			continue
		}
		props[name] = h.Schema.DeepCopy()
		if h.Required {
			required = append(required, name)
		}
	}
	if len(props) == 0 {
		return nil
	}
	return &parser.Schema{Type: "object", Properties: props, Required: required}
}

// contentSchemas converts a content map into properties keyed by
// normalized media type identifier, e.g. "application/json" becomes
// "applicationJson".
func (w *webhookStructurer) contentSchemas(content map[string]*parser.MediaType) map[string]*parser.Schema {
	if len(content) == 0 {
		return nil
	}
	props := make(map[string]*parser.Schema, len(content))
	for _, mt := range sortedKeys(content) {
		media := content[mt]
		if media == nil || media.Schema == nil {
			continue
		}
		key := naming.MediaTypeKey(mt)
		if key == "" {
			continue
		}
		props[key] = media.Schema.DeepCopy()
	}
	if len(props) == 0 {
		return nil
	}
	return props
}
