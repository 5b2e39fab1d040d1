package parser

// This file converts the generic map[string]any trees produced by
// yaml.Unmarshal / json.Unmarshal into the typed document model.
// Polymorphic keywords (type, items, additionalProperties, the unevaluated
// pair) keep their bool/schema/array distinction so the normalizer can
// branch on concrete Go types instead of re-inspecting raw maps.

// SchemaFromAny converts a decoded YAML/JSON value into a *Schema.
// Booleans are returned as boolean schemas ({} / {not:{}} equivalents are
// not synthesized; the bool is preserved where the keyword allows it, so
// this function returns nil for non-map inputs other than maps).
func SchemaFromAny(v any) *Schema {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	s := &Schema{}
	s.decodeFromMap(m)
	return s
}

// schemaOrBoolFromAny decodes a value that may be a boolean or a schema
// object (items, additionalProperties, additionalItems, unevaluated*).
func schemaOrBoolFromAny(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		return t
	case map[string]any:
		return SchemaFromAny(t)
	case []any:
		// Array-valued items (legacy tuple form). Preserved so the tuple
		// normalizer can reject prefixItems + items-array conflicts.
		out := make([]*Schema, 0, len(t))
		for _, item := range t {
			out = append(out, SchemaFromAny(item))
		}
		return out
	default:
		return nil
	}
}

// decodeFromMap populates the schema from a generic map.
func (s *Schema) decodeFromMap(m map[string]any) {
	s.Ref = mapGetString(m, "$ref")
	s.Schema = mapGetString(m, "$schema")
	s.Title = mapGetString(m, "title")
	s.Description = mapGetString(m, "description")
	s.Default = m["default"]
	s.Examples = mapGetAnySlice(m, "examples")

	// type may be a scalar or an array (OAS 3.1)
	switch t := m["type"].(type) {
	case string:
		s.Type = t
	case []any:
		types := make([]string, 0, len(t))
		for _, item := range t {
			if str, ok := item.(string); ok {
				types = append(types, str)
			}
		}
		s.Type = types
	}

	s.Enum = mapGetAnySlice(m, "enum")
	if c, ok := m["const"]; ok {
		s.Const = c
		s.HasConst = true
	}

	s.MultipleOf = mapGetFloat64Ptr(m, "multipleOf")
	s.Maximum = mapGetFloat64Ptr(m, "maximum")
	s.Minimum = mapGetFloat64Ptr(m, "minimum")
	s.ExclusiveMaximum = m["exclusiveMaximum"]
	s.ExclusiveMinimum = m["exclusiveMinimum"]

	s.MaxLength = mapGetIntPtr(m, "maxLength")
	s.MinLength = mapGetIntPtr(m, "minLength")
	s.Pattern = mapGetString(m, "pattern")

	s.Items = schemaOrBoolFromAny(m["items"])
	if arr, ok := m["prefixItems"].([]any); ok {
		s.PrefixItems = make([]*Schema, 0, len(arr))
		for _, item := range arr {
			s.PrefixItems = append(s.PrefixItems, SchemaFromAny(item))
		}
	}
	s.AdditionalItems = schemaOrBoolFromAny(m["additionalItems"])
	s.MaxItems = mapGetIntPtr(m, "maxItems")
	s.MinItems = mapGetIntPtr(m, "minItems")
	s.UniqueItems = mapGetBool(m, "uniqueItems")
	s.Contains = SchemaFromAny(m["contains"])
	s.MaxContains, s.MaxContainsInvalid = mapGetCountPtr(m, "maxContains")
	s.MinContains, s.MinContainsInvalid = mapGetCountPtr(m, "minContains")

	s.Properties = schemaMapFromAny(m["properties"])
	s.PatternProperties = schemaMapFromAny(m["patternProperties"])
	s.AdditionalProperties = schemaOrBoolFromAny(m["additionalProperties"])
	s.Required = mapGetStringSlice(m, "required")
	s.PropertyNames = SchemaFromAny(m["propertyNames"])
	s.MaxProperties = mapGetIntPtr(m, "maxProperties")
	s.MinProperties = mapGetIntPtr(m, "minProperties")
	s.DependentSchemas = schemaMapFromAny(m["dependentSchemas"])
	if dr := mapGetMap(m, "dependentRequired"); dr != nil {
		s.DependentRequired = make(map[string][]string, len(dr))
		for k := range dr {
			s.DependentRequired[k] = mapGetStringSlice(dr, k)
		}
	}

	s.UnevaluatedProperties = schemaOrBoolFromAny(m["unevaluatedProperties"])
	s.UnevaluatedItems = schemaOrBoolFromAny(m["unevaluatedItems"])

	s.If = SchemaFromAny(m["if"])
	s.Then = SchemaFromAny(m["then"])
	s.Else = SchemaFromAny(m["else"])

	s.AllOf = schemaSliceFromAny(m["allOf"])
	s.AnyOf = schemaSliceFromAny(m["anyOf"])
	s.OneOf = schemaSliceFromAny(m["oneOf"])
	s.Not = SchemaFromAny(m["not"])

	s.Nullable = mapGetBool(m, "nullable")
	if d := mapGetMap(m, "discriminator"); d != nil {
		s.Discriminator = &Discriminator{
			PropertyName: mapGetString(d, "propertyName"),
			Mapping:      mapGetStringMap(d, "mapping"),
			Extra:        extractExtensionsFromMap(d),
		}
	}
	s.ReadOnly = mapGetBool(m, "readOnly")
	s.WriteOnly = mapGetBool(m, "writeOnly")
	if ed := mapGetMap(m, "externalDocs"); ed != nil {
		s.ExternalDocs = &ExternalDocs{
			Description: mapGetString(ed, "description"),
			URL:         mapGetString(ed, "url"),
			Extra:       extractExtensionsFromMap(ed),
		}
	}
	s.Example = m["example"]
	s.Deprecated = mapGetBool(m, "deprecated")
	s.Format = mapGetString(m, "format")

	s.ID = mapGetString(m, "$id")
	s.Anchor = mapGetString(m, "$anchor")
	s.Comment = mapGetString(m, "$comment")
	s.Defs = schemaMapFromAny(m["$defs"])

	s.Extra = extractExtensionsFromMap(m)
}

// schemaSliceFromAny decodes combiner arrays (allOf/anyOf/oneOf).
func schemaSliceFromAny(v any) []*Schema {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]*Schema, 0, len(arr))
	for _, item := range arr {
		out = append(out, SchemaFromAny(item))
	}
	return out
}

// schemaMapFromAny decodes name -> schema maps (properties, $defs, ...).
func schemaMapFromAny(v any) map[string]*Schema {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]*Schema, len(m))
	for k, item := range m {
		out[k] = SchemaFromAny(item)
	}
	return out
}
