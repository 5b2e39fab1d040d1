package normalizer

import "github.com/erraggy/oasnorm/parser"

// Result is the outcome of running the pipeline (or a single transform)
// over one schema tree. The Schema field is always a fresh tree; the input
// is never mutated.
type Result struct {
	// Schema is the normalized schema tree
	Schema *parser.Schema
	// Changed is true if any applied transform rewrote the tree
	Changed bool
	// Applied lists the transform kinds that ran, in pipeline order.
	// Extraction-only transforms (contains, conditional) appear here even
	// when they leave the tree unchanged.
	Applied []TransformKind
	// Unions lists type-array collapses performed by the null-type pass
	Unions []UnionTypeInfo
	// Consts lists const synthesis sites
	Consts []ConstInfo
	// Tuples lists prefixItems rewrites
	Tuples []TupleInfo
	// ContainsPatterns lists contains occurrences for diagnostics
	ContainsPatterns []ContainsPattern
	// Conditionals lists if/then/else occurrences for diagnostics
	Conditionals []ConditionalPattern
	// Discriminators lists discriminator enhancement sites
	Discriminators []DiscriminatorInfo
	// Unevaluated lists unevaluatedProperties/unevaluatedItems sites
	Unevaluated []UnevaluatedInfo
	// Conflicts lists unevaluated/additional keyword disagreements; these
	// are diagnostics and never fail the pipeline
	Conflicts []ConflictInfo
}

// WasApplied reports whether the given transform kind ran.
func (r *Result) WasApplied(kind TransformKind) bool {
	for _, k := range r.Applied {
		if k == kind {
			return true
		}
	}
	return false
}

// UnionTypeInfo records a single type-array or nullable collapse.
type UnionTypeInfo struct {
	// Location is the JSON-Pointer style path to the rewritten node
	Location string
	// Types are the non-null member types of the original union
	Types []string
	// Nullable is true if the original union included null
	Nullable bool
}

// ConstInfo records a const synthesis site.
type ConstInfo struct {
	// Location is the JSON-Pointer style path to the node
	Location string
	// InferredType is the JSON Schema type inferred from the const value
	InferredType string
}

// TupleInfo records a prefixItems rewrite.
type TupleInfo struct {
	// Location is the JSON-Pointer style path to the node
	Location string
	// Length is the number of positional schemas
	Length int
	// Closed is true when the tuple admits no trailing items (maxItems set)
	Closed bool
	// HasAdditionalSchema is true when trailing items validate against a schema
	HasAdditionalSchema bool
}

// ContainsPattern records one contains occurrence. The schema pointer
// refers into the result tree.
type ContainsPattern struct {
	// Schema is the contains subschema
	Schema *parser.Schema
	// MinContains is the lower bound, if declared
	MinContains *int
	// MaxContains is the upper bound, if declared
	MaxContains *int
	// Location is the JSON-Pointer style path to the carrying node
	Location string
}

// ConditionalPattern records one if/then/else occurrence. The schema
// pointers refer into the result tree.
type ConditionalPattern struct {
	If   *parser.Schema
	Then *parser.Schema
	Else *parser.Schema
	// Location is the JSON-Pointer style path to the carrying node
	Location string
}

// DiscriminatorInfo records a discriminator enhancement site.
type DiscriminatorInfo struct {
	// PropertyName is the discriminator property
	PropertyName string
	// Mapping maps discriminator values to $ref targets. Inline union
	// members have no ref target and are covered by their injected const
	// property instead.
	Mapping map[string]string
	// Location is the JSON-Pointer style path to the carrying node
	Location string
	// IsInheritance is true for the allOf base-schema case
	IsInheritance bool
	// IsNested is true when the discriminator was found below the root
	// of the transformed tree
	IsNested bool
}

// UnevaluatedInfo records an unevaluatedProperties/unevaluatedItems site.
type UnevaluatedInfo struct {
	// Location is the JSON-Pointer style path to the carrying node
	Location string
	// Keyword is "unevaluatedProperties" or "unevaluatedItems"
	Keyword string
	// Synthesized is true when the pass wrote the corresponding
	// additionalProperties/additionalItems approximation
	Synthesized bool
}

// ConflictKind classifies an unevaluated/additional keyword disagreement.
type ConflictKind string

const (
	// ConflictBooleanMismatch: both keywords are booleans with different values.
	ConflictBooleanMismatch ConflictKind = "boolean-mismatch"
	// ConflictSchemaOverride: one keyword is a boolean and the other a schema.
	ConflictSchemaOverride ConflictKind = "schema-override"
	// ConflictComplex: both keywords are schema-valued.
	ConflictComplex ConflictKind = "complex"
)

// ConflictInfo describes a disagreement between an unevaluated keyword and
// its synthesized additional counterpart. Conflicts are diagnostics only;
// they never fail the pipeline.
type ConflictInfo struct {
	// Location is the JSON-Pointer style path to the carrying node
	Location string
	// Keyword is "unevaluatedProperties" or "unevaluatedItems"
	Keyword string
	// Kind classifies the conflict
	Kind ConflictKind
}
