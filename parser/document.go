package parser

// Document is a pre-resolved OpenAPI 3.x document reduced to the surfaces
// the normalizer consumes: the version string, named component schemas,
// and webhooks. $ref pointers are expected to be resolved before loading;
// any that remain are passed through untouched.
type Document struct {
	// OpenAPI is the raw version string from the openapi field
	OpenAPI string `yaml:"openapi" json:"openapi"`
	// Info is the document info block
	Info *Info `yaml:"info,omitempty" json:"info,omitempty"`
	// Components holds the named schema definitions
	Components *Components `yaml:"components,omitempty" json:"components,omitempty"`
	// Webhooks maps webhook names to path items (OAS 3.1)
	Webhooks map[string]*PathItem `yaml:"webhooks,omitempty" json:"webhooks,omitempty"`
	// Extra captures specification extensions (x-*)
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Info represents the document info block.
type Info struct {
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string         `yaml:"version" json:"version"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Components holds the reusable objects the normalizer operates on.
type Components struct {
	Schemas map[string]*Schema `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Extra   map[string]any     `yaml:",inline" json:"-"`
}

// PathItem represents the operations available for a webhook.
type PathItem struct {
	Summary     string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Get         *Operation     `yaml:"get,omitempty" json:"get,omitempty"`
	Post        *Operation     `yaml:"post,omitempty" json:"post,omitempty"`
	Put         *Operation     `yaml:"put,omitempty" json:"put,omitempty"`
	Patch       *Operation     `yaml:"patch,omitempty" json:"patch,omitempty"`
	Delete      *Operation     `yaml:"delete,omitempty" json:"delete,omitempty"`
	Head        *Operation     `yaml:"head,omitempty" json:"head,omitempty"`
	Options     *Operation     `yaml:"options,omitempty" json:"options,omitempty"`
	Trace       *Operation     `yaml:"trace,omitempty" json:"trace,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
	// unknownMethods records mapping keys that are neither known HTTP
	// methods, extensions, nor path item metadata. The webhook structurer
	// reports these as InvalidHttpMethod failures.
	unknownMethods []string
}

// Operations returns the present operations keyed by lowercase HTTP method,
// in the fixed method order get, post, put, patch, delete, head, options, trace.
func (p *PathItem) Operations() []MethodOperation {
	if p == nil {
		return nil
	}
	all := []MethodOperation{
		{Method: "get", Operation: p.Get},
		{Method: "post", Operation: p.Post},
		{Method: "put", Operation: p.Put},
		{Method: "patch", Operation: p.Patch},
		{Method: "delete", Operation: p.Delete},
		{Method: "head", Operation: p.Head},
		{Method: "options", Operation: p.Options},
		{Method: "trace", Operation: p.Trace},
	}
	present := make([]MethodOperation, 0, len(all))
	for _, mo := range all {
		if mo.Operation != nil {
			present = append(present, mo)
		}
	}
	return present
}

// UnknownMethods returns mapping keys that did not decode as HTTP methods.
func (p *PathItem) UnknownMethods() []string {
	if p == nil {
		return nil
	}
	return p.unknownMethods
}

// MethodOperation pairs an HTTP method with its operation.
type MethodOperation struct {
	Method    string
	Operation *Operation
}

// Operation represents a single webhook operation.
type Operation struct {
	OperationID string               `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Summary     string               `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Parameters  []*Parameter         `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody         `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   map[string]*Response `yaml:"responses,omitempty" json:"responses,omitempty"`
	Deprecated  bool                 `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Extra       map[string]any       `yaml:",inline" json:"-"`
}

// Parameter represents an OpenAPI parameter object.
type Parameter struct {
	Name        string         `yaml:"name" json:"name"`
	In          string         `yaml:"in" json:"in"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool           `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Schema      *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// RequestBody represents an OpenAPI request body object.
type RequestBody struct {
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// MediaType represents an OpenAPI media type object.
type MediaType struct {
	Schema *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Extra  map[string]any `yaml:",inline" json:"-"`
}

// Response represents an OpenAPI response object.
type Response struct {
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Headers     map[string]*Header    `yaml:"headers,omitempty" json:"headers,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// Header represents an OpenAPI header object.
type Header struct {
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool           `yaml:"required,omitempty" json:"required,omitempty"`
	Schema      *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// pathItemMetadataKeys are mapping keys on a path item that are not
// HTTP methods but are still valid per the specification.
var pathItemMetadataKeys = map[string]bool{
	"summary":     true,
	"description": true,
	"servers":     true,
	"parameters":  true,
	"$ref":        true,
}

// decodeFromMap populates the document from a generic map.
func (d *Document) decodeFromMap(m map[string]any) {
	d.OpenAPI = mapGetString(m, "openapi")
	if info := mapGetMap(m, "info"); info != nil {
		d.Info = &Info{
			Title:       mapGetString(info, "title"),
			Description: mapGetString(info, "description"),
			Version:     mapGetString(info, "version"),
			Extra:       extractExtensionsFromMap(info),
		}
	}
	if comp := mapGetMap(m, "components"); comp != nil {
		d.Components = &Components{
			Schemas: schemaMapFromAny(comp["schemas"]),
			Extra:   extractExtensionsFromMap(comp),
		}
	}
	if hooks := mapGetMap(m, "webhooks"); hooks != nil {
		d.Webhooks = make(map[string]*PathItem, len(hooks))
		for name, raw := range hooks {
			item, ok := raw.(map[string]any)
			if !ok {
				d.Webhooks[name] = &PathItem{}
				continue
			}
			pi := &PathItem{}
			pi.decodeFromMap(item)
			d.Webhooks[name] = pi
		}
	}
	d.Extra = extractExtensionsFromMap(m)
}

// decodeFromMap populates the path item from a generic map, recording any
// mapping keys that are not recognized HTTP methods.
func (p *PathItem) decodeFromMap(m map[string]any) {
	p.Summary = mapGetString(m, "summary")
	p.Description = mapGetString(m, "description")
	for key, raw := range m {
		if isExtensionKey(key) || pathItemMetadataKeys[key] {
			continue
		}
		opMap, ok := raw.(map[string]any)
		if !ok {
			p.unknownMethods = append(p.unknownMethods, key)
			continue
		}
		op := &Operation{}
		op.decodeFromMap(opMap)
		switch key {
		case "get":
			p.Get = op
		case "post":
			p.Post = op
		case "put":
			p.Put = op
		case "patch":
			p.Patch = op
		case "delete":
			p.Delete = op
		case "head":
			p.Head = op
		case "options":
			p.Options = op
		case "trace":
			p.Trace = op
		default:
			p.unknownMethods = append(p.unknownMethods, key)
		}
	}
	p.Extra = extractExtensionsFromMap(m)
}

// decodeFromMap populates the operation from a generic map.
func (o *Operation) decodeFromMap(m map[string]any) {
	o.OperationID = mapGetString(m, "operationId")
	o.Summary = mapGetString(m, "summary")
	o.Description = mapGetString(m, "description")
	o.Deprecated = mapGetBool(m, "deprecated")

	if params, ok := m["parameters"].([]any); ok {
		o.Parameters = make([]*Parameter, 0, len(params))
		for _, raw := range params {
			pm, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			o.Parameters = append(o.Parameters, &Parameter{
				Name:        mapGetString(pm, "name"),
				In:          mapGetString(pm, "in"),
				Description: mapGetString(pm, "description"),
				Required:    mapGetBool(pm, "required"),
				Deprecated:  mapGetBool(pm, "deprecated"),
				Schema:      SchemaFromAny(pm["schema"]),
				Extra:       extractExtensionsFromMap(pm),
			})
		}
	}

	if rb := mapGetMap(m, "requestBody"); rb != nil {
		o.RequestBody = &RequestBody{
			Description: mapGetString(rb, "description"),
			Required:    mapGetBool(rb, "required"),
			Content:     mediaTypesFromAny(rb["content"]),
			Extra:       extractExtensionsFromMap(rb),
		}
	}

	if resp := mapGetMap(m, "responses"); resp != nil {
		o.Responses = make(map[string]*Response, len(resp))
		for code, raw := range resp {
			rm, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			o.Responses[code] = &Response{
				Description: mapGetString(rm, "description"),
				Content:     mediaTypesFromAny(rm["content"]),
				Headers:     headersFromAny(rm["headers"]),
				Extra:       extractExtensionsFromMap(rm),
			}
		}
	}

	o.Extra = extractExtensionsFromMap(m)
}

// mediaTypesFromAny decodes a content map (media type -> media object).
func mediaTypesFromAny(v any) map[string]*MediaType {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]*MediaType, len(m))
	for mt, raw := range m {
		mm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		out[mt] = &MediaType{
			Schema: SchemaFromAny(mm["schema"]),
			Extra:  extractExtensionsFromMap(mm),
		}
	}
	return out
}

// headersFromAny decodes a headers map (header name -> header object).
func headersFromAny(v any) map[string]*Header {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]*Header, len(m))
	for name, raw := range m {
		hm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		out[name] = &Header{
			Description: mapGetString(hm, "description"),
			Required:    mapGetBool(hm, "required"),
			Schema:      SchemaFromAny(hm["schema"]),
			Extra:       extractExtensionsFromMap(hm),
		}
	}
	return out
}
