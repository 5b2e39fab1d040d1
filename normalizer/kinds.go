package normalizer

// TransformKind identifies one structural rewrite in the pipeline.
type TransformKind string

const (
	// KindNullTypes converts type arrays and legacy nullable flags.
	KindNullTypes TransformKind = "null-types"
	// KindConst synthesizes type and enum for const values.
	KindConst TransformKind = "const"
	// KindPrefixItems rewrites prefixItems tuples into Draft-07 item arrays.
	KindPrefixItems TransformKind = "prefix-items"
	// KindContains validates and extracts contains constraints.
	KindContains TransformKind = "contains"
	// KindConditional validates and extracts if/then/else conditionals.
	KindConditional TransformKind = "conditional"
	// KindDiscriminator infers mappings and injects discriminator constants.
	KindDiscriminator TransformKind = "discriminator"
	// KindUnevaluated synthesizes additionalProperties/additionalItems from
	// the unevaluated keywords.
	KindUnevaluated TransformKind = "unevaluated-properties"
	// KindDocument keys whole-document results in the transformation cache.
	KindDocument TransformKind = "document"
)

// transformOrder is the fixed dependency order the pipeline runs in.
// Null types first so later passes see scalar types; discriminator after
// the structural array rewrites; unevaluated last so it sees the final
// additionalProperties state.
var transformOrder = []TransformKind{
	KindNullTypes,
	KindConst,
	KindPrefixItems,
	KindContains,
	KindConditional,
	KindDiscriminator,
	KindUnevaluated,
}

// maxSchemaDepth bounds recursion over schema trees. Documents nested
// deeper than this fail with a structural error instead of overflowing
// the stack.
const maxSchemaDepth = 100
