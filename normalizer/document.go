package normalizer

import (
	"fmt"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

// DocumentResult is the outcome of normalizing a whole document.
type DocumentResult struct {
	// Version is the detected document version (after any 3.0 fallback)
	Version parser.VersionInfo
	// Schemas holds the per-schema results keyed by component name
	Schemas map[string]*Result
	// Webhooks holds the structured webhook schemas keyed by webhook
	// name (3.1 documents with webhook structuring enabled only)
	Webhooks map[string]*parser.Schema
	// WebhookInfos lists the structured webhooks in name order
	WebhookInfos []WebhookInfo
	// Changed is true if any schema was rewritten or any webhook was
	// structured
	Changed bool
}

// Option configures a document normalization run.
type Option func(*Normalizer) error

// WithOptions replaces the default transformation options.
func WithOptions(opts Options) Option {
	return func(n *Normalizer) error {
		n.Options = opts
		return nil
	}
}

// WithCache uses the given cache instead of the process-wide default.
func WithCache(cache *Cache) Option {
	return func(n *Normalizer) error {
		if cache == nil {
			return &oaserrors.ConfigError{
				Option:  "cache",
				Message: "cache must not be nil",
			}
		}
		n.Cache = cache
		return nil
	}
}

// WithLogger routes pipeline diagnostics to the given logger.
func WithLogger(logger parser.Logger) Option {
	return func(n *Normalizer) error {
		if logger == nil {
			return &oaserrors.ConfigError{
				Option:  "logger",
				Message: "logger must not be nil",
			}
		}
		n.Logger = logger
		return nil
	}
}

// NormalizeDocument detects the document version, normalizes every
// component schema in name order, and, when webhook structuring is
// enabled on a 3.1 document, converts the webhooks map into plain
// object schemas. The document is never mutated. The pipeline aborts
// on the first transformation error.
func NormalizeDocument(doc *parser.Document, opts ...Option) (*DocumentResult, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{
			Option:  "document",
			Message: "document must not be nil",
		}
	}

	version, err := parser.DetectVersion(doc)
	if err != nil {
		return nil, err
	}

	cfg := &Normalizer{Version: version, Options: DefaultOptions()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	// New applies the 3.0 fallback against the final option set.
	n := New(version, cfg.Options)
	n.Cache = cfg.Cache
	n.Logger = cfg.Logger

	return normalizeDocument(n, doc)
}

func normalizeDocument(n *Normalizer, doc *parser.Document) (*DocumentResult, error) {
	log := n.logger()
	out := &DocumentResult{Version: n.Version}

	if doc.Components != nil && len(doc.Components.Schemas) > 0 {
		out.Schemas = make(map[string]*Result, len(doc.Components.Schemas))
		for _, name := range sortedKeys(doc.Components.Schemas) {
			res, err := n.Normalize(doc.Components.Schemas[name])
			if err != nil {
				return nil, fmt.Errorf("normalizing schema %q: %w", name, err)
			}
			out.Schemas[name] = res
			if res.Changed {
				out.Changed = true
			}
		}
	}

	if n.Options.EnableWebhooks && n.Version.IsVersion31 && len(doc.Webhooks) > 0 {
		structurer := &webhookStructurer{}
		hooks, infos, err := structurer.structure(doc.Webhooks)
		if err != nil {
			return nil, err
		}
		out.Webhooks = hooks
		out.WebhookInfos = infos
		if len(hooks) > 0 {
			out.Changed = true
		}
	}

	log.Info("normalized document",
		"version", n.Version.String(),
		"schemas", len(out.Schemas),
		"webhooks", len(out.Webhooks),
		"changed", out.Changed,
	)
	return out, nil
}
