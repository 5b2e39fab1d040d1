// Package parser provides the schema model, document loading, and OAS
// version detection for oasnorm.
//
// The package decodes pre-resolved OpenAPI 3.0.x / 3.1.x documents from YAML
// or JSON into a typed model. Polymorphic JSON Schema keywords (type, items,
// additionalProperties, the unevaluated pair) are modeled as `any` fields
// holding a small closed set of Go types (string, []string, bool, *Schema,
// []*Schema), letting the normalizer branch on concrete types rather than
// reflecting over raw maps.
//
// # Version Detection
//
//	result, err := parser.LoadFile("api.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	info, err := parser.DetectVersion(result.Document)
//	if err != nil {
//	    log.Fatal(err) // *oaserrors.VersionError
//	}
//	if info.Features().PrefixItems {
//	    // 3.1 document
//	}
//
// # Immutability
//
// Schemas returned by the loader should be treated as read-only by callers
// that share them; the normalizer itself always deep-copies before rewriting
// (see Schema.DeepCopy).
//
// $ref resolution is out of scope: documents are expected to arrive with
// references already resolved, and any remaining $ref values pass through
// transformations untouched.
package parser
