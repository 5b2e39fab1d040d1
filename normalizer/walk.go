package normalizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

// joinPtr appends JSON-Pointer segments to a base pointer, escaping per
// RFC 6901. The empty base denotes the schema root.
func joinPtr(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(escapePtrSegment(seg))
	}
	return b.String()
}

func escapePtrSegment(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// depthError returns the structural error raised when a schema tree
// exceeds the recursion bound.
func depthError(loc string) error {
	return &oaserrors.StructuralError{
		Location: loc,
		Keyword:  "nesting_depth",
		Message:  fmt.Sprintf("schema nesting exceeds %d levels", maxSchemaDepth),
	}
}

// sortedKeys returns map keys in lexical order so walk order, and with it
// metadata order and error selection, is deterministic.
func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// detectSchema reports whether pred holds anywhere in the schema tree.
// Detection is best-effort: it visits every subschema position a
// transformer may rewrite and gives up silently past the depth bound.
func detectSchema(s *parser.Schema, depth int, pred func(*parser.Schema) bool) bool {
	if s == nil || depth > maxSchemaDepth {
		return false
	}
	if pred(s) {
		return true
	}
	for _, sub := range s.Properties {
		if detectSchema(sub, depth+1, pred) {
			return true
		}
	}
	for _, sub := range s.PatternProperties {
		if detectSchema(sub, depth+1, pred) {
			return true
		}
	}
	switch items := s.Items.(type) {
	case *parser.Schema:
		if detectSchema(items, depth+1, pred) {
			return true
		}
	case []*parser.Schema:
		for _, sub := range items {
			if detectSchema(sub, depth+1, pred) {
				return true
			}
		}
	}
	for _, sub := range s.PrefixItems {
		if detectSchema(sub, depth+1, pred) {
			return true
		}
	}
	if ap, ok := s.AdditionalProperties.(*parser.Schema); ok {
		if detectSchema(ap, depth+1, pred) {
			return true
		}
	}
	if ai, ok := s.AdditionalItems.(*parser.Schema); ok {
		if detectSchema(ai, depth+1, pred) {
			return true
		}
	}
	if up, ok := s.UnevaluatedProperties.(*parser.Schema); ok {
		if detectSchema(up, depth+1, pred) {
			return true
		}
	}
	if ui, ok := s.UnevaluatedItems.(*parser.Schema); ok {
		if detectSchema(ui, depth+1, pred) {
			return true
		}
	}
	for _, group := range [][]*parser.Schema{s.AllOf, s.AnyOf, s.OneOf} {
		for _, sub := range group {
			if detectSchema(sub, depth+1, pred) {
				return true
			}
		}
	}
	for _, sub := range []*parser.Schema{s.Not, s.If, s.Then, s.Else, s.Contains, s.PropertyNames} {
		if detectSchema(sub, depth+1, pred) {
			return true
		}
	}
	for _, sub := range s.DependentSchemas {
		if detectSchema(sub, depth+1, pred) {
			return true
		}
	}
	return false
}
