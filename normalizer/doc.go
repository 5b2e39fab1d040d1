// Package normalizer rewrites OpenAPI 3.0/3.1 schema trees into a form
// that Draft-07 era tooling can consume.
//
// Eight independent passes run in a fixed dependency order: null-type
// collapsing, const synthesis, prefixItems tuples, contains validation,
// if/then/else validation, discriminator enhancement, unevaluated
// keyword approximation, and webhook structuring. Each pass detects
// whether it structurally applies before doing any work, operates on a
// deep copy of the input, and reports what it changed.
//
// Typical use goes through the document surface:
//
//	result, err := normalizer.NormalizeDocument(doc,
//	    normalizer.WithOptions(opts),
//	    normalizer.WithLogger(logger),
//	)
//
// Per-schema pipelines are available through Normalizer.Normalize, and
// individual passes through Normalizer.ApplyTransformation. Results are
// memoized in a bounded content-addressed Cache keyed by structural
// schema hash, document version, option set, and transform kind.
package normalizer
