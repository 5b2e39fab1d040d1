package schemautil

import (
	"fmt"
	"hash"
	"hash/fnv"
	"reflect"
	"sort"
	"strconv"

	"github.com/erraggy/oasnorm/parser"
)

// SchemaHasher computes structural hashes for schemas.
// The hash is computed over a canonicalized view of the schema: map-valued
// keywords are visited in sorted key order, so two schemas that differ only
// in map iteration order hash identically. Order-sensitive keywords
// (prefixItems, combiners, enum) are hashed in declaration order.
type SchemaHasher struct {
	visited map[uintptr]bool
}

// NewSchemaHasher creates a new SchemaHasher.
func NewSchemaHasher() *SchemaHasher {
	return &SchemaHasher{
		visited: make(map[uintptr]bool),
	}
}

// Hash computes a content hash for a schema covering validation keywords
// and annotations alike, so any two schemas that could normalize to
// different trees hash differently.
// Note: Hash collisions are possible; the transformation cache tolerates
// them because a colliding entry simply yields an equivalent rewrite.
func (h *SchemaHasher) Hash(schema *parser.Schema) uint64 {
	clear(h.visited) // Reset visited map without reallocating
	hasher := fnv.New64a()
	h.hashSchema(hasher, schema)
	return hasher.Sum64()
}

// hashSchema recursively hashes a schema's structural properties.
func (h *SchemaHasher) hashSchema(hasher hash.Hash64, schema *parser.Schema) {
	if schema == nil {
		h.writeString(hasher, "nil")
		return
	}

	// Check for circular reference
	ptr := reflect.ValueOf(schema).Pointer()
	if h.visited[ptr] {
		h.writeString(hasher, "circular")
		return
	}
	h.visited[ptr] = true
	defer func() { h.visited[ptr] = false }()

	// Hash $ref if present (schema is just a reference). 2020-12 allows
	// annotation siblings next to $ref, so metadata still contributes.
	if schema.Ref != "" {
		h.writeString(hasher, "$ref:")
		h.writeString(hasher, schema.Ref)
		h.hashMetadata(hasher, schema)
		return
	}

	// Type (handle string, []string, and []any)
	h.hashType(hasher, schema.Type)

	h.writeString(hasher, "format:")
	h.writeString(hasher, schema.Format)

	h.writeString(hasher, "pattern:")
	h.writeString(hasher, schema.Pattern)

	// Enum (order matters)
	if len(schema.Enum) > 0 {
		h.writeString(hasher, "enum:")
		for _, v := range schema.Enum {
			h.writeString(hasher, fmt.Sprintf("%v", v))
		}
	}

	// Const (an explicit const: null still contributes)
	if schema.HasConst || schema.Const != nil {
		h.writeString(hasher, "const:")
		h.writeString(hasher, fmt.Sprintf("%v", schema.Const))
	}

	// Required (sort for order-independent comparison)
	if len(schema.Required) > 0 {
		h.writeString(hasher, "required:")
		sorted := make([]string, len(schema.Required))
		copy(sorted, schema.Required)
		sort.Strings(sorted)
		for _, r := range sorted {
			h.writeString(hasher, r)
		}
	}

	h.hashSchemaMap(hasher, "properties:", schema.Properties)
	h.hashSchemaMap(hasher, "patternProperties:", schema.PatternProperties)

	if schema.AdditionalProperties != nil {
		h.writeString(hasher, "additionalProperties:")
		h.hashSchemaOrBool(hasher, schema.AdditionalProperties)
	}

	if schema.Items != nil {
		h.writeString(hasher, "items:")
		h.hashSchemaOrBool(hasher, schema.Items)
	}

	if len(schema.PrefixItems) > 0 {
		h.writeString(hasher, "prefixItems:")
		for _, item := range schema.PrefixItems {
			h.hashSchema(hasher, item)
		}
	}

	if schema.AdditionalItems != nil {
		h.writeString(hasher, "additionalItems:")
		h.hashSchemaOrBool(hasher, schema.AdditionalItems)
	}

	if schema.UnevaluatedProperties != nil {
		h.writeString(hasher, "unevaluatedProperties:")
		h.hashSchemaOrBool(hasher, schema.UnevaluatedProperties)
	}
	if schema.UnevaluatedItems != nil {
		h.writeString(hasher, "unevaluatedItems:")
		h.hashSchemaOrBool(hasher, schema.UnevaluatedItems)
	}

	h.hashNumericConstraints(hasher, schema)
	h.hashLengthConstraints(hasher, schema)

	// Composition (allOf, anyOf, oneOf, not)
	if len(schema.AllOf) > 0 {
		h.writeString(hasher, "allOf:")
		for _, s := range schema.AllOf {
			h.hashSchema(hasher, s)
		}
	}
	if len(schema.AnyOf) > 0 {
		h.writeString(hasher, "anyOf:")
		for _, s := range schema.AnyOf {
			h.hashSchema(hasher, s)
		}
	}
	if len(schema.OneOf) > 0 {
		h.writeString(hasher, "oneOf:")
		for _, s := range schema.OneOf {
			h.hashSchema(hasher, s)
		}
	}
	if schema.Not != nil {
		h.writeString(hasher, "not:")
		h.hashSchema(hasher, schema.Not)
	}

	// Conditionals (if/then/else)
	if schema.If != nil {
		h.writeString(hasher, "if:")
		h.hashSchema(hasher, schema.If)
	}
	if schema.Then != nil {
		h.writeString(hasher, "then:")
		h.hashSchema(hasher, schema.Then)
	}
	if schema.Else != nil {
		h.writeString(hasher, "else:")
		h.hashSchema(hasher, schema.Else)
	}

	// Nullable (OAS 3.0)
	if schema.Nullable {
		h.writeString(hasher, "nullable:true")
	}
	if schema.ReadOnly {
		h.writeString(hasher, "readOnly:true")
	}
	if schema.WriteOnly {
		h.writeString(hasher, "writeOnly:true")
	}

	// Discriminator
	if schema.Discriminator != nil {
		h.writeString(hasher, "discriminator:")
		h.writeString(hasher, schema.Discriminator.PropertyName)
		if len(schema.Discriminator.Mapping) > 0 {
			keys := make([]string, 0, len(schema.Discriminator.Mapping))
			for k := range schema.Discriminator.Mapping {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				h.writeString(hasher, k)
				h.writeString(hasher, schema.Discriminator.Mapping[k])
			}
		}
	}

	// Contains
	if schema.Contains != nil {
		h.writeString(hasher, "contains:")
		h.hashSchema(hasher, schema.Contains)
	}

	// PropertyNames
	if schema.PropertyNames != nil {
		h.writeString(hasher, "propertyNames:")
		h.hashSchema(hasher, schema.PropertyNames)
	}

	// DependentRequired
	if len(schema.DependentRequired) > 0 {
		h.writeString(hasher, "dependentRequired:")
		keys := make([]string, 0, len(schema.DependentRequired))
		for k := range schema.DependentRequired {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.writeString(hasher, k)
			deps := make([]string, len(schema.DependentRequired[k]))
			copy(deps, schema.DependentRequired[k])
			sort.Strings(deps)
			for _, d := range deps {
				h.writeString(hasher, d)
			}
		}
	}

	h.hashSchemaMap(hasher, "dependentSchemas:", schema.DependentSchemas)
	h.hashSchemaMap(hasher, "$defs:", schema.Defs)

	h.hashMetadata(hasher, schema)
}

// hashMetadata hashes annotation fields. They do not affect validation,
// but cached result trees carry them through, so the content address
// must distinguish schemas that differ only in annotations.
func (h *SchemaHasher) hashMetadata(hasher hash.Hash64, schema *parser.Schema) {
	if schema.Title != "" {
		h.writeString(hasher, "title:"+schema.Title)
	}
	if schema.Description != "" {
		h.writeString(hasher, "description:"+schema.Description)
	}
	if schema.Default != nil {
		h.writeString(hasher, fmt.Sprintf("default:%v", schema.Default))
	}
	if len(schema.Examples) > 0 {
		h.writeString(hasher, "examples:")
		for _, v := range schema.Examples {
			h.writeString(hasher, fmt.Sprintf("%v", v))
		}
	}
	if schema.Example != nil {
		h.writeString(hasher, fmt.Sprintf("example:%v", schema.Example))
	}
	if schema.Deprecated {
		h.writeString(hasher, "deprecated:true")
	}
	if schema.ID != "" {
		h.writeString(hasher, "$id:"+schema.ID)
	}
	if schema.Anchor != "" {
		h.writeString(hasher, "$anchor:"+schema.Anchor)
	}
	if schema.Comment != "" {
		h.writeString(hasher, "$comment:"+schema.Comment)
	}
	if len(schema.Extra) > 0 {
		h.writeString(hasher, "extensions:")
		keys := make([]string, 0, len(schema.Extra))
		for k := range schema.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.writeString(hasher, k)
			// %v prints maps in sorted key order, keeping nested
			// extension values deterministic
			h.writeString(hasher, fmt.Sprintf("%v", schema.Extra[k]))
		}
	}
}

// hashSchemaMap hashes a name -> schema map in sorted key order.
func (h *SchemaHasher) hashSchemaMap(hasher hash.Hash64, label string, m map[string]*parser.Schema) {
	if len(m) == 0 {
		return
	}
	h.writeString(hasher, label)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.writeString(hasher, k)
		h.hashSchema(hasher, m[k])
	}
}

// hashType handles string, []string, and []any type values.
func (h *SchemaHasher) hashType(hasher hash.Hash64, t any) {
	h.writeString(hasher, "type:")
	switch v := t.(type) {
	case string:
		h.writeString(hasher, v)
	case []any:
		// Sort for consistent hashing
		types := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
		sort.Strings(types)
		for _, s := range types {
			h.writeString(hasher, s)
		}
	case []string:
		// Sort for consistent hashing
		sorted := make([]string, len(v))
		copy(sorted, v)
		sort.Strings(sorted)
		for _, s := range sorted {
			h.writeString(hasher, s)
		}
	}
}

// hashSchemaOrBool handles fields that can be *Schema, []*Schema, or bool.
func (h *SchemaHasher) hashSchemaOrBool(hasher hash.Hash64, v any) {
	switch val := v.(type) {
	case *parser.Schema:
		h.hashSchema(hasher, val)
	case []*parser.Schema:
		for _, s := range val {
			h.hashSchema(hasher, s)
		}
	case bool:
		if val {
			h.writeString(hasher, "true")
		} else {
			h.writeString(hasher, "false")
		}
	}
}

// hashNumericConstraints hashes numeric validation fields.
func (h *SchemaHasher) hashNumericConstraints(hasher hash.Hash64, schema *parser.Schema) {
	if schema.Minimum != nil {
		h.writeString(hasher, "minimum:"+strconv.FormatFloat(*schema.Minimum, 'g', -1, 64))
	}
	if schema.Maximum != nil {
		h.writeString(hasher, "maximum:"+strconv.FormatFloat(*schema.Maximum, 'g', -1, 64))
	}
	if schema.ExclusiveMinimum != nil {
		h.writeString(hasher, fmt.Sprintf("exclusiveMinimum:%v", schema.ExclusiveMinimum))
	}
	if schema.ExclusiveMaximum != nil {
		h.writeString(hasher, fmt.Sprintf("exclusiveMaximum:%v", schema.ExclusiveMaximum))
	}
	if schema.MultipleOf != nil {
		h.writeString(hasher, "multipleOf:"+strconv.FormatFloat(*schema.MultipleOf, 'g', -1, 64))
	}
}

// hashLengthConstraints hashes string, array, and object size bounds.
func (h *SchemaHasher) hashLengthConstraints(hasher hash.Hash64, schema *parser.Schema) {
	if schema.MinLength != nil {
		h.writeString(hasher, "minLength:"+strconv.Itoa(*schema.MinLength))
	}
	if schema.MaxLength != nil {
		h.writeString(hasher, "maxLength:"+strconv.Itoa(*schema.MaxLength))
	}
	if schema.MinItems != nil {
		h.writeString(hasher, "minItems:"+strconv.Itoa(*schema.MinItems))
	}
	if schema.MaxItems != nil {
		h.writeString(hasher, "maxItems:"+strconv.Itoa(*schema.MaxItems))
	}
	if schema.UniqueItems {
		h.writeString(hasher, "uniqueItems:true")
	}
	if schema.MinContains != nil {
		h.writeString(hasher, "minContains:"+strconv.Itoa(*schema.MinContains))
	}
	if schema.MinContainsInvalid {
		h.writeString(hasher, "minContains:invalid")
	}
	if schema.MaxContains != nil {
		h.writeString(hasher, "maxContains:"+strconv.Itoa(*schema.MaxContains))
	}
	if schema.MaxContainsInvalid {
		h.writeString(hasher, "maxContains:invalid")
	}
	if schema.MinProperties != nil {
		h.writeString(hasher, "minProperties:"+strconv.Itoa(*schema.MinProperties))
	}
	if schema.MaxProperties != nil {
		h.writeString(hasher, "maxProperties:"+strconv.Itoa(*schema.MaxProperties))
	}
}

// writeString writes a string to the hash.
func (h *SchemaHasher) writeString(hasher hash.Hash64, s string) {
	_, _ = hasher.Write([]byte(s))
}
