package parser

// This file contains deep copy support for the schema model. The normalizer
// never mutates its input tree; every transformation copies at the boundary
// so concurrent callers sharing a cached result never observe partial writes.

// DeepCopy returns a deep copy of the schema.
// Returns nil if the receiver is nil.
func (s *Schema) DeepCopy() *Schema {
	if s == nil {
		return nil
	}

	cp := &Schema{
		Ref:              s.Ref,
		Schema:           s.Schema,
		Title:            s.Title,
		Description:      s.Description,
		Default:          deepCopyJSONValue(s.Default),
		Type:             deepCopySchemaType(s.Type),
		Const:            deepCopyJSONValue(s.Const),
		HasConst:         s.HasConst,
		ExclusiveMaximum: deepCopyBoolOrNumber(s.ExclusiveMaximum),
		ExclusiveMinimum: deepCopyBoolOrNumber(s.ExclusiveMinimum),
		Pattern:          s.Pattern,
		UniqueItems:      s.UniqueItems,
		Contains:         s.Contains.DeepCopy(),
		PropertyNames:    s.PropertyNames.DeepCopy(),
		If:               s.If.DeepCopy(),
		Then:             s.Then.DeepCopy(),
		Else:             s.Else.DeepCopy(),
		Not:              s.Not.DeepCopy(),
		Nullable:         s.Nullable,
		ReadOnly:         s.ReadOnly,
		WriteOnly:        s.WriteOnly,
		Example:          deepCopyJSONValue(s.Example),
		Deprecated:       s.Deprecated,
		Format:           s.Format,
		ID:               s.ID,
		Anchor:           s.Anchor,
		Comment:          s.Comment,
	}

	cp.MultipleOf = copyFloatPtr(s.MultipleOf)
	cp.Maximum = copyFloatPtr(s.Maximum)
	cp.Minimum = copyFloatPtr(s.Minimum)
	cp.MaxLength = copyIntPtr(s.MaxLength)
	cp.MinLength = copyIntPtr(s.MinLength)
	cp.MaxItems = copyIntPtr(s.MaxItems)
	cp.MinItems = copyIntPtr(s.MinItems)
	cp.MaxContains = copyIntPtr(s.MaxContains)
	cp.MinContains = copyIntPtr(s.MinContains)
	cp.MaxContainsInvalid = s.MaxContainsInvalid
	cp.MinContainsInvalid = s.MinContainsInvalid
	cp.MaxProperties = copyIntPtr(s.MaxProperties)
	cp.MinProperties = copyIntPtr(s.MinProperties)

	if s.Examples != nil {
		cp.Examples = deepCopyAnySlice(s.Examples)
	}
	if s.Enum != nil {
		cp.Enum = deepCopyAnySlice(s.Enum)
	}
	if s.Required != nil {
		cp.Required = make([]string, len(s.Required))
		copy(cp.Required, s.Required)
	}

	cp.Items = deepCopySchemaOrBool(s.Items)
	cp.AdditionalItems = deepCopySchemaOrBool(s.AdditionalItems)
	cp.AdditionalProperties = deepCopySchemaOrBool(s.AdditionalProperties)
	cp.UnevaluatedProperties = deepCopySchemaOrBool(s.UnevaluatedProperties)
	cp.UnevaluatedItems = deepCopySchemaOrBool(s.UnevaluatedItems)

	cp.PrefixItems = deepCopySchemaSlice(s.PrefixItems)
	cp.AllOf = deepCopySchemaSlice(s.AllOf)
	cp.AnyOf = deepCopySchemaSlice(s.AnyOf)
	cp.OneOf = deepCopySchemaSlice(s.OneOf)

	cp.Properties = deepCopySchemaMap(s.Properties)
	cp.PatternProperties = deepCopySchemaMap(s.PatternProperties)
	cp.DependentSchemas = deepCopySchemaMap(s.DependentSchemas)
	cp.Defs = deepCopySchemaMap(s.Defs)
	cp.DependentRequired = deepCopyDependentRequired(s.DependentRequired)

	cp.Discriminator = s.Discriminator.DeepCopy()
	cp.ExternalDocs = s.ExternalDocs.DeepCopy()
	cp.Extra = deepCopyExtensions(s.Extra)

	return cp
}

// DeepCopy returns a deep copy of the discriminator.
func (d *Discriminator) DeepCopy() *Discriminator {
	if d == nil {
		return nil
	}
	cp := &Discriminator{
		PropertyName: d.PropertyName,
		Extra:        deepCopyExtensions(d.Extra),
	}
	if d.Mapping != nil {
		cp.Mapping = make(map[string]string, len(d.Mapping))
		for k, v := range d.Mapping {
			cp.Mapping[k] = v
		}
	}
	return cp
}

// DeepCopy returns a deep copy of the external documentation.
func (e *ExternalDocs) DeepCopy() *ExternalDocs {
	if e == nil {
		return nil
	}
	return &ExternalDocs{
		Description: e.Description,
		URL:         e.URL,
		Extra:       deepCopyExtensions(e.Extra),
	}
}

// deepCopySchemaType handles Schema.Type which can be:
// - string (OAS 3.0, 3.1)
// - []string or []any (OAS 3.1 type arrays like ["string", "null"])
func deepCopySchemaType(v any) any {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case string:
		return t // strings are immutable
	case []string:
		cp := make([]string, len(t))
		copy(cp, t)
		return cp
	case []any:
		// YAML may unmarshal as []any instead of []string
		cp := make([]any, len(t))
		copy(cp, t)
		return cp
	default:
		return v // Unknown type, return as-is
	}
}

// deepCopySchemaOrBool handles fields that can be *Schema, []*Schema, or bool:
// - Schema.Items (tuple form after normalization is []*Schema)
// - Schema.AdditionalProperties / AdditionalItems
// - Schema.UnevaluatedProperties / UnevaluatedItems
func deepCopySchemaOrBool(v any) any {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case bool:
		return t
	case *Schema:
		return t.DeepCopy()
	case []*Schema:
		return deepCopySchemaSlice(t)
	default:
		return v // Unknown type, return as-is
	}
}

// deepCopyBoolOrNumber handles ExclusiveMinimum/ExclusiveMaximum:
// - bool (OAS 3.0)
// - float64/number (OAS 3.1 JSON Schema Draft 2020-12)
func deepCopyBoolOrNumber(v any) any {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t
	case int:
		return t
	case int64:
		return t
	default:
		return v
	}
}

// deepCopyJSONValue recursively deep copies any JSON-compatible value.
// This handles Default, Example, Const, and other fields that can hold
// arbitrary JSON values.
func deepCopyJSONValue(v any) any {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case string, bool, float64, int, int64, float32, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return t // Primitives copy by value
	case []any:
		cp := make([]any, len(t))
		for i, item := range t {
			cp[i] = deepCopyJSONValue(item)
		}
		return cp
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, item := range t {
			cp[k] = deepCopyJSONValue(item)
		}
		return cp
	default:
		// Unknown type - could be custom types in extensions
		// Return as-is (shallow copy)
		return v
	}
}

// deepCopyAnySlice deep copies a []any slice, e.g. enum values.
func deepCopyAnySlice(v []any) []any {
	if v == nil {
		return nil
	}
	cp := make([]any, len(v))
	for i, item := range v {
		cp[i] = deepCopyJSONValue(item)
	}
	return cp
}

// deepCopySchemaSlice deep copies a slice of schema pointers.
func deepCopySchemaSlice(v []*Schema) []*Schema {
	if v == nil {
		return nil
	}
	cp := make([]*Schema, len(v))
	for i, item := range v {
		cp[i] = item.DeepCopy()
	}
	return cp
}

// deepCopySchemaMap deep copies a map of schema pointers.
func deepCopySchemaMap(v map[string]*Schema) map[string]*Schema {
	if v == nil {
		return nil
	}
	cp := make(map[string]*Schema, len(v))
	for k, item := range v {
		cp[k] = item.DeepCopy()
	}
	return cp
}

// deepCopyExtensions deep copies a map[string]any containing x-* extensions.
// Extension values can be any JSON-compatible value.
func deepCopyExtensions(v map[string]any) map[string]any {
	if v == nil {
		return nil
	}
	cp := make(map[string]any, len(v))
	for k, item := range v {
		cp[k] = deepCopyJSONValue(item)
	}
	return cp
}

// deepCopyDependentRequired deep copies a map[string][]string.
func deepCopyDependentRequired(v map[string][]string) map[string][]string {
	if v == nil {
		return nil
	}
	cp := make(map[string][]string, len(v))
	for k, val := range v {
		if val != nil {
			cpVal := make([]string, len(val))
			copy(cpVal, val)
			cp[k] = cpVal
		}
	}
	return cp
}

func copyIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

func copyFloatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
