// Package oasnorm normalizes OpenAPI 3.x documents for Draft-07 era tooling.
//
// oasnorm ingests an OpenAPI 3.0.x or 3.1.x document, detects its dialect,
// and rewrites JSON Schema Draft 2020-12 constructs (type arrays with "null",
// prefixItems, contains constraints, if/then/else, unevaluatedProperties,
// enhanced discriminators, webhooks) into forms that a Draft-07 oriented type
// generator and schema validator can consume.
//
// # Overview
//
// The library consists of two primary packages:
//
//   - parser: document loading, schema model, and OAS version detection
//   - normalizer: the transformation pipeline, per-construct rewrites, and
//     the content-addressed transformation cache
//
// Supported OpenAPI Specification versions:
//   - OAS 3.0.x (3.0.0 - 3.0.4): https://spec.openapis.org/oas/v3.0.0.html
//   - OAS 3.1.x (3.1.0 - 3.1.2): https://spec.openapis.org/oas/v3.1.0.html
//
// # Quick Start
//
// Normalize a document:
//
//	import (
//	    "github.com/erraggy/oasnorm/normalizer"
//	    "github.com/erraggy/oasnorm/parser"
//	)
//
//	doc, err := parser.LoadFile("openapi.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := normalizer.NormalizeDocument(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for name, schema := range result.Schemas {
//	    fmt.Printf("%s normalized (changed=%v)\n", name, schema != nil)
//	}
//
// Normalize a single schema with explicit options:
//
//	info, err := parser.ParseVersionInfo("3.1.0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n := normalizer.New(info, normalizer.DefaultOptions())
//	res, err := n.Normalize(schema)
//
// # Transformation Pipeline
//
// Rewrites run in a fixed dependency order: null types, const, prefixItems,
// contains, conditionals, discriminators, unevaluatedProperties. Each rewrite
// is gated twice: by its option flag and by a structural detect pass over the
// tree. Transformers never mutate their input; every rewrite produces a new
// tree, so cached results are safe to share between goroutines.
//
// # Transformation Cache
//
// Results are memoized by a content-addressed key (structural schema hash,
// OAS version, options hash, transform kind) in a bounded in-memory cache
// with LRU and TTL eviction. The cache is an explicit, injectable component;
// normalizer.DefaultCache() provides a process-wide instance for convenience.
//
// # Error Handling
//
// Structural problems (malformed conditionals, tuple configuration
// conflicts, invalid contains bounds, non-serializable const values,
// unknown webhook HTTP methods) abort the pipeline for that document and
// surface as typed errors in the oaserrors package, each carrying a
// JSON-Pointer style location. See the oaserrors package documentation.
//
// # Out of Scope
//
// oasnorm does not resolve $ref pointers (documents are expected to be
// pre-resolved), does not emit target-language types, and does not compile
// or execute validators. It rewrites structure only.
package oasnorm
