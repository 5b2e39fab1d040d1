// Package schemautil provides utilities for working with OpenAPI schema types.
//
// This package centralizes type assertion patterns for version-specific
// fields, particularly the difference between OAS 3.0 (string types) and
// OAS 3.1 (array types for nullable support), plus the structural hashing
// used by the transformation cache.
package schemautil

import "github.com/erraggy/oasnorm/parser"

// GetSchemaTypes returns the type(s) from a schema, handling string (OAS
// 3.0), []string, and []any (OAS 3.1) representations.
//
// Examples:
//   - OAS 3.0: {"type": "string"} returns ["string"]
//   - OAS 3.1: {"type": ["string", "null"]} returns ["string", "null"]
func GetSchemaTypes(schema *parser.Schema) []string {
	if schema == nil {
		return nil
	}
	switch t := schema.Type.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}

// HasTypeArray reports whether the schema's type keyword is array-valued.
func HasTypeArray(schema *parser.Schema) bool {
	if schema == nil {
		return false
	}
	switch schema.Type.(type) {
	case []any, []string:
		return true
	}
	return false
}

// GetPrimaryType returns the first non-null type from a schema.
// This is useful for OAS 3.1 where type arrays may include "null".
//
// Returns an empty string if the schema is nil or has no types.
func GetPrimaryType(schema *parser.Schema) string {
	types := GetSchemaTypes(schema)
	for _, t := range types {
		if t != "null" {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// IsNullable checks if the schema allows null values via its type array.
// The OAS 3.0 nullable flag is a separate signal and is not checked here.
func IsNullable(schema *parser.Schema) bool {
	for _, t := range GetSchemaTypes(schema) {
		if t == "null" {
			return true
		}
	}
	return false
}

// HasType checks if the schema includes the specified type.
func HasType(schema *parser.Schema, targetType string) bool {
	for _, t := range GetSchemaTypes(schema) {
		if t == targetType {
			return true
		}
	}
	return false
}

// NonNullTypes returns the schema's types with any "null" entries removed.
func NonNullTypes(schema *parser.Schema) []string {
	types := GetSchemaTypes(schema)
	result := make([]string, 0, len(types))
	for _, t := range types {
		if t != "null" {
			result = append(result, t)
		}
	}
	return result
}
