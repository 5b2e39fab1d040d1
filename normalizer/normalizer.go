package normalizer

import (
	"fmt"

	"github.com/erraggy/oasnorm/internal/schemautil"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

// transformer is one structural rewrite over a schema tree. detect is a
// cheap structural scan; apply mutates the (already copied) tree in
// place and accumulates metadata on the result.
type transformer interface {
	kind() TransformKind
	detect(*parser.Schema) bool
	apply(*parser.Schema, *Result) error
}

// Normalizer runs the transformation pipeline for one document version.
// The zero Cache and Logger fields default to the process-wide cache and
// a no-op logger; both may be replaced before use. A Normalizer is
// stateless per call and safe for concurrent use once configured.
type Normalizer struct {
	// Version is the detected (or fallback-adjusted) document version
	Version parser.VersionInfo
	// Options gates the individual transformers
	Options Options
	// Cache memoizes transformation results; nil means DefaultCache()
	Cache *Cache
	// Logger receives per-transform diagnostics; nil means no logging
	Logger parser.Logger
}

// New creates a Normalizer for the given document version. When
// opts.FallbackToOpenAPI30 is set, a 3.1 version is treated as 3.0 for
// every transformation decision.
func New(version parser.VersionInfo, opts Options) *Normalizer {
	if opts.FallbackToOpenAPI30 && version.IsVersion31 {
		version = parser.VersionInfo{
			Version:     version.Version,
			Major:       version.Major,
			Minor:       0,
			Patch:       version.Patch,
			IsVersion30: true,
		}
	}
	return &Normalizer{
		Version: version,
		Options: opts,
	}
}

func (n *Normalizer) cache() *Cache {
	if n.Cache != nil {
		return n.Cache
	}
	return DefaultCache()
}

func (n *Normalizer) logger() parser.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return parser.NopLogger{}
}

// transformer builds the pass for one kind.
func (n *Normalizer) transformer(kind TransformKind) (transformer, error) {
	switch kind {
	case KindNullTypes:
		return &nullTypeTransformer{version: n.Version}, nil
	case KindConst:
		return &constTransformer{}, nil
	case KindPrefixItems:
		return &tupleTransformer{}, nil
	case KindContains:
		return &containsTransformer{}, nil
	case KindConditional:
		return &conditionalTransformer{}, nil
	case KindDiscriminator:
		return &discriminatorTransformer{}, nil
	case KindUnevaluated:
		return &unevaluatedTransformer{}, nil
	default:
		return nil, &oaserrors.ConfigError{
			Option:  "kind",
			Value:   string(kind),
			Message: "unknown transform kind",
		}
	}
}

// key builds the content address for a schema under the current version
// and options.
func (n *Normalizer) key(schema *parser.Schema, kind TransformKind) Key {
	return Key{
		SchemaHash:  schemautil.NewSchemaHasher().Hash(schema),
		Version:     n.Version.String(),
		OptionsHash: n.Options.hash(),
		Kind:        kind,
	}
}

// Normalize runs every enabled, structurally applicable transform over
// the schema in the fixed pipeline order and returns the rewritten tree
// with accumulated metadata. The input schema is never mutated.
// Whole-schema results are memoized in the cache.
func (n *Normalizer) Normalize(schema *parser.Schema) (*Result, error) {
	if schema == nil {
		return nil, &oaserrors.ConfigError{
			Option:  "schema",
			Message: "schema must not be nil",
		}
	}

	cache := n.cache()
	key := n.key(schema, KindDocument)
	if cached, ok := cache.Get(key); ok {
		if res, ok := cached.(*Result); ok {
			return res, nil
		}
	}

	res := &Result{Schema: schema.DeepCopy()}
	log := n.logger()
	for _, kind := range transformOrder {
		if !n.Options.enabled(kind) {
			continue
		}
		tr, err := n.transformer(kind)
		if err != nil {
			return nil, err
		}
		if !tr.detect(res.Schema) {
			continue
		}
		before := res.Changed
		res.Changed = false
		if err := tr.apply(res.Schema, res); err != nil {
			return nil, fmt.Errorf("applying %s transform: %w", kind, err)
		}
		changed := res.Changed
		res.Changed = before || changed
		res.Applied = append(res.Applied, kind)
		log.Debug("applied transform", "kind", string(kind), "changed", changed)
	}

	cache.Set(key, res)
	return res, nil
}

// ApplyTransformation runs a single transform kind over the schema,
// bypassing the option gates. Results are memoized per kind, so
// repeated application of an expensive pass to the same subtree is
// cheap. The input schema is never mutated.
func (n *Normalizer) ApplyTransformation(kind TransformKind, schema *parser.Schema) (*Result, error) {
	if schema == nil {
		return nil, &oaserrors.ConfigError{
			Option:  "schema",
			Message: "schema must not be nil",
		}
	}
	tr, err := n.transformer(kind)
	if err != nil {
		return nil, err
	}

	cache := n.cache()
	key := n.key(schema, kind)
	if cached, ok := cache.Get(key); ok {
		if res, ok := cached.(*Result); ok {
			return res, nil
		}
	}

	res := &Result{Schema: schema.DeepCopy()}
	if tr.detect(res.Schema) {
		if err := tr.apply(res.Schema, res); err != nil {
			return nil, fmt.Errorf("applying %s transform: %w", kind, err)
		}
		res.Applied = append(res.Applied, kind)
	}

	cache.Set(key, res)
	return res, nil
}
