package normalizer

import "hash/fnv"

// Options controls which rewrites the pipeline applies. Each flag
// independently gates exactly one transformer; the transformer still only
// runs when its structural detect pass finds something to rewrite.
type Options struct {
	// StrictNullHandling gates the null-type normalizer (type arrays on
	// 3.1 documents, legacy nullable collapsing on 3.0 documents).
	StrictNullHandling bool
	// EnableConditionalSchemas gates if/then/else validation and
	// pattern extraction.
	EnableConditionalSchemas bool
	// EnablePrefixItems gates the tuple (prefixItems) normalizer.
	EnablePrefixItems bool
	// EnableUnevaluatedProperties gates unevaluatedProperties /
	// unevaluatedItems normalization.
	EnableUnevaluatedProperties bool
	// EnableConstKeyword gates const normalization.
	EnableConstKeyword bool
	// EnableContainsKeyword gates contains constraint validation and
	// pattern extraction.
	EnableContainsKeyword bool
	// EnableEnhancedDiscriminator gates discriminator mapping inference
	// and const property injection.
	EnableEnhancedDiscriminator bool
	// EnableWebhooks gates webhook structuring (3.1 documents only).
	EnableWebhooks bool
	// FallbackToOpenAPI30 treats a 3.1 document as 3.0 for transformation
	// purposes: type arrays are left alone, legacy nullable collapsing
	// applies, and webhooks are skipped.
	FallbackToOpenAPI30 bool
}

// DefaultOptions returns the default option set: every structural rewrite
// enabled except webhook structuring and the 3.0 fallback.
func DefaultOptions() Options {
	return Options{
		StrictNullHandling:          true,
		EnableConditionalSchemas:    true,
		EnablePrefixItems:           true,
		EnableUnevaluatedProperties: true,
		EnableConstKeyword:          true,
		EnableContainsKeyword:       true,
		EnableEnhancedDiscriminator: true,
		EnableWebhooks:              false,
		FallbackToOpenAPI30:         false,
	}
}

// hash folds the transformation-relevant flags into a cache key
// component. EnableWebhooks is excluded: webhook structuring operates on
// the webhooks map and never touches cached schema results.
func (o Options) hash() uint64 {
	flags := []bool{
		o.StrictNullHandling,
		o.EnableConditionalSchemas,
		o.EnablePrefixItems,
		o.EnableUnevaluatedProperties,
		o.EnableConstKeyword,
		o.EnableContainsKeyword,
		o.EnableEnhancedDiscriminator,
		o.FallbackToOpenAPI30,
	}
	h := fnv.New64a()
	var buf [1]byte
	for _, f := range flags {
		buf[0] = 0
		if f {
			buf[0] = 1
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}

// enabled reports whether the option flag gating the given transform kind
// is set. The webhook structurer is gated separately by the document
// pipeline since it operates on the webhooks map, not on schema trees.
func (o Options) enabled(kind TransformKind) bool {
	switch kind {
	case KindNullTypes:
		return o.StrictNullHandling
	case KindConst:
		return o.EnableConstKeyword
	case KindPrefixItems:
		return o.EnablePrefixItems
	case KindContains:
		return o.EnableContainsKeyword
	case KindConditional:
		return o.EnableConditionalSchemas
	case KindDiscriminator:
		return o.EnableEnhancedDiscriminator
	case KindUnevaluated:
		return o.EnableUnevaluatedProperties
	default:
		return false
	}
}
