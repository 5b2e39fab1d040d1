package normalizer

import (
	"reflect"
	"strconv"

	"github.com/erraggy/oasnorm/parser"
)

// unevaluatedTransformer approximates the 2020-12 unevaluatedProperties
// and unevaluatedItems keywords with their Draft-07 additional*
// counterparts. The approximation only fills gaps: an existing
// additionalProperties/additionalItems declaration is never overwritten,
// and a disagreement between the pair is surfaced as a conflict
// diagnostic rather than an error. The unevaluated keywords themselves
// are always retained for tools that understand them.
type unevaluatedTransformer struct{}

func (t *unevaluatedTransformer) kind() TransformKind { return KindUnevaluated }

func (t *unevaluatedTransformer) detect(s *parser.Schema) bool {
	return detectSchema(s, 0, func(node *parser.Schema) bool {
		return node.UnevaluatedProperties != nil || node.UnevaluatedItems != nil
	})
}

func (t *unevaluatedTransformer) apply(s *parser.Schema, res *Result) error {
	return t.walk(s, "", 0, res)
}

func (t *unevaluatedTransformer) walk(s *parser.Schema, loc string, depth int, res *Result) error {
	if s == nil {
		return nil
	}
	if depth > maxSchemaDepth {
		return depthError(loc)
	}

	if s.UnevaluatedProperties != nil {
		s.AdditionalProperties = t.synthesize(
			s.UnevaluatedProperties, s.AdditionalProperties,
			loc, "unevaluatedProperties", res,
		)
	}
	if s.UnevaluatedItems != nil {
		s.AdditionalItems = t.synthesize(
			s.UnevaluatedItems, s.AdditionalItems,
			loc, "unevaluatedItems", res,
		)
	}

	for _, name := range sortedKeys(s.Properties) {
		if err := t.walk(s.Properties[name], joinPtr(loc, "properties", name), depth+1, res); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(s.PatternProperties) {
		if err := t.walk(s.PatternProperties[name], joinPtr(loc, "patternProperties", name), depth+1, res); err != nil {
			return err
		}
	}
	switch items := s.Items.(type) {
	case *parser.Schema:
		if err := t.walk(items, joinPtr(loc, "items"), depth+1, res); err != nil {
			return err
		}
	case []*parser.Schema:
		for i, sub := range items {
			if err := t.walk(sub, joinPtr(loc, "items", strconv.Itoa(i)), depth+1, res); err != nil {
				return err
			}
		}
	}
	for i, sub := range s.PrefixItems {
		if err := t.walk(sub, joinPtr(loc, "prefixItems", strconv.Itoa(i)), depth+1, res); err != nil {
			return err
		}
	}
	if ap, ok := s.AdditionalProperties.(*parser.Schema); ok {
		if err := t.walk(ap, joinPtr(loc, "additionalProperties"), depth+1, res); err != nil {
			return err
		}
	}
	if ai, ok := s.AdditionalItems.(*parser.Schema); ok {
		if err := t.walk(ai, joinPtr(loc, "additionalItems"), depth+1, res); err != nil {
			return err
		}
	}
	if up, ok := s.UnevaluatedProperties.(*parser.Schema); ok {
		if err := t.walk(up, joinPtr(loc, "unevaluatedProperties"), depth+1, res); err != nil {
			return err
		}
	}
	if ui, ok := s.UnevaluatedItems.(*parser.Schema); ok {
		if err := t.walk(ui, joinPtr(loc, "unevaluatedItems"), depth+1, res); err != nil {
			return err
		}
	}
	for i, sub := range s.AllOf {
		if err := t.walk(sub, joinPtr(loc, "allOf", strconv.Itoa(i)), depth+1, res); err != nil {
			return err
		}
	}
	for i, sub := range s.AnyOf {
		if err := t.walk(sub, joinPtr(loc, "anyOf", strconv.Itoa(i)), depth+1, res); err != nil {
			return err
		}
	}
	for i, sub := range s.OneOf {
		if err := t.walk(sub, joinPtr(loc, "oneOf", strconv.Itoa(i)), depth+1, res); err != nil {
			return err
		}
	}
	if err := t.walk(s.Not, joinPtr(loc, "not"), depth+1, res); err != nil {
		return err
	}
	if err := t.walk(s.If, joinPtr(loc, "if"), depth+1, res); err != nil {
		return err
	}
	if err := t.walk(s.Then, joinPtr(loc, "then"), depth+1, res); err != nil {
		return err
	}
	if err := t.walk(s.Else, joinPtr(loc, "else"), depth+1, res); err != nil {
		return err
	}
	return t.walk(s.Contains, joinPtr(loc, "contains"), depth+1, res)
}

// synthesize fills the additional* counterpart from the unevaluated
// keyword value and returns the (possibly updated) additional* value.
// A boolean true only fills a nil counterpart; a boolean false also
// overrides a permissive true, since the unevaluated form is the
// stricter declaration.
func (t *unevaluatedTransformer) synthesize(unevaluated, additional any, loc, keyword string, res *Result) any {
	synthesized := false

	switch uv := unevaluated.(type) {
	case bool:
		switch av := additional.(type) {
		case nil:
			additional = uv
			synthesized = true
		case bool:
			if !uv && av {
				additional = false
				synthesized = true
			}
		}
	case *parser.Schema:
		if additional == nil {
			additional = uv.DeepCopy()
			synthesized = true
		}
	}

	if !synthesized {
		if kind, conflicting := ClassifyConflict(unevaluated, additional); conflicting {
			res.Conflicts = append(res.Conflicts, ConflictInfo{
				Location: loc,
				Keyword:  keyword,
				Kind:     kind,
			})
		}
	}

	res.Unevaluated = append(res.Unevaluated, UnevaluatedInfo{
		Location:    loc,
		Keyword:     keyword,
		Synthesized: synthesized,
	})
	if synthesized {
		res.Changed = true
	}
	return additional
}

// ClassifyConflict classifies the disagreement between an unevaluated
// keyword value and its additional* counterpart. It reports false when
// the two agree or either side is absent.
func ClassifyConflict(unevaluated, additional any) (ConflictKind, bool) {
	if unevaluated == nil || additional == nil {
		return "", false
	}
	ub, uIsBool := unevaluated.(bool)
	ab, aIsBool := additional.(bool)
	switch {
	case uIsBool && aIsBool:
		if ub != ab {
			return ConflictBooleanMismatch, true
		}
		return "", false
	case uIsBool != aIsBool:
		return ConflictSchemaOverride, true
	default:
		if reflect.DeepEqual(unevaluated, additional) {
			return "", false
		}
		return ConflictComplex, true
	}
}
