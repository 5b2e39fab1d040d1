package parser

// Schema represents a JSON Schema node.
// Supports OAS 3.0 and OAS 3.1 (JSON Schema Draft 2020-12) keywords, plus
// the Draft-07 era fields the normalizer synthesizes for downstream tools.
type Schema struct {
	// JSON Schema Core
	Ref    string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Schema string `yaml:"$schema,omitempty" json:"$schema,omitempty"` // JSON Schema Draft version

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Examples    []any  `yaml:"examples,omitempty" json:"examples,omitempty"`

	// Type validation
	Type  any   `yaml:"type,omitempty" json:"type,omitempty"` // string or []string (OAS 3.1)
	Enum  []any `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const any   `yaml:"const,omitempty" json:"const,omitempty"` // JSON Schema Draft 2020-12
	// HasConst distinguishes an explicit const: null from an absent const.
	// Set during decoding; never serialized.
	HasConst bool `yaml:"-" json:"-"`

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum any      `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"` // bool in OAS 3.0, number in 3.1
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum any      `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"` // bool in OAS 3.0, number in 3.1

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Array validation
	Items           any       `yaml:"items,omitempty" json:"items,omitempty"`                     // *Schema, []*Schema (tuple form), or bool
	PrefixItems     []*Schema `yaml:"prefixItems,omitempty" json:"prefixItems,omitempty"`         // JSON Schema Draft 2020-12
	AdditionalItems any       `yaml:"additionalItems,omitempty" json:"additionalItems,omitempty"` // *Schema or bool
	MaxItems        *int      `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems        *int      `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems     bool      `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`
	Contains        *Schema   `yaml:"contains,omitempty" json:"contains,omitempty"`       // JSON Schema Draft 2020-12
	MaxContains     *int      `yaml:"maxContains,omitempty" json:"maxContains,omitempty"` // JSON Schema Draft 2020-12
	MinContains     *int      `yaml:"minContains,omitempty" json:"minContains,omitempty"` // JSON Schema Draft 2020-12
	// MinContainsInvalid / MaxContainsInvalid mark bounds that decoded to a
	// non-integral value; the contains pass rejects the document.
	// Set during decoding; never serialized.
	MinContainsInvalid bool `yaml:"-" json:"-"`
	MaxContainsInvalid bool `yaml:"-" json:"-"`

	// Object validation
	Properties           map[string]*Schema  `yaml:"properties,omitempty" json:"properties,omitempty"`
	PatternProperties    map[string]*Schema  `yaml:"patternProperties,omitempty" json:"patternProperties,omitempty"`
	AdditionalProperties any                 `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // *Schema or bool
	Required             []string            `yaml:"required,omitempty" json:"required,omitempty"`
	PropertyNames        *Schema             `yaml:"propertyNames,omitempty" json:"propertyNames,omitempty"` // JSON Schema Draft 2020-12
	MaxProperties        *int                `yaml:"maxProperties,omitempty" json:"maxProperties,omitempty"`
	MinProperties        *int                `yaml:"minProperties,omitempty" json:"minProperties,omitempty"`
	DependentRequired    map[string][]string `yaml:"dependentRequired,omitempty" json:"dependentRequired,omitempty"` // JSON Schema Draft 2020-12
	DependentSchemas     map[string]*Schema  `yaml:"dependentSchemas,omitempty" json:"dependentSchemas,omitempty"`   // JSON Schema Draft 2020-12

	// Unevaluated keywords (JSON Schema Draft 2020-12)
	UnevaluatedProperties any `yaml:"unevaluatedProperties,omitempty" json:"unevaluatedProperties,omitempty"` // *Schema or bool
	UnevaluatedItems      any `yaml:"unevaluatedItems,omitempty" json:"unevaluatedItems,omitempty"`           // *Schema or bool

	// Conditional schemas (JSON Schema Draft 2020-12, OAS 3.1)
	If   *Schema `yaml:"if,omitempty" json:"if,omitempty"`
	Then *Schema `yaml:"then,omitempty" json:"then,omitempty"`
	Else *Schema `yaml:"else,omitempty" json:"else,omitempty"`

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`

	// OAS specific extensions
	Nullable      bool           `yaml:"nullable,omitempty" json:"nullable,omitempty"`           // OAS 3.0 only (replaced by type: [T, "null"] in 3.1)
	Discriminator *Discriminator `yaml:"discriminator,omitempty" json:"discriminator,omitempty"` // OAS 3.0+
	ReadOnly      bool           `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly     bool           `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`
	ExternalDocs  *ExternalDocs  `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Example       any            `yaml:"example,omitempty" json:"example,omitempty"` // OAS 3.0 (deprecated in 3.1)
	Deprecated    bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Format
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // e.g., "date-time", "email", "uri", etc.

	// JSON Schema Draft 2020-12 additional fields
	ID      string             `yaml:"$id,omitempty" json:"$id,omitempty"`
	Anchor  string             `yaml:"$anchor,omitempty" json:"$anchor,omitempty"`
	Comment string             `yaml:"$comment,omitempty" json:"$comment,omitempty"`
	Defs    map[string]*Schema `yaml:"$defs,omitempty" json:"$defs,omitempty"`

	// Extension fields
	// Extra captures specification extensions (fields starting with "x-"),
	// including the x-discriminator-enhanced metadata the normalizer attaches.
	Extra map[string]any `yaml:",inline" json:"-"`
}

// ConstDefined reports whether the schema carries a const keyword. A decoded
// const: null leaves Const nil, so presence is tracked separately; schemas
// constructed in code with a non-nil Const count as defined too.
func (s *Schema) ConstDefined() bool {
	return s != nil && (s.HasConst || s.Const != nil)
}

// Discriminator represents a discriminator for polymorphism (OAS 3.0+)
type Discriminator struct {
	PropertyName string            `yaml:"propertyName" json:"propertyName"`
	Mapping      map[string]string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
	Extra        map[string]any    `yaml:",inline" json:"-"`
}

// ExternalDocs represents external documentation (OAS 3.0+)
type ExternalDocs struct {
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string         `yaml:"url" json:"url"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}
