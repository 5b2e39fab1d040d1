package normalizer

import (
	"strconv"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

// conditionalTransformer validates if/then/else triples and extracts them
// as diagnostics. Like the contains pass it never rewrites the tree; an
// if without either branch is rejected since it constrains nothing and
// almost always indicates an authoring mistake.
type conditionalTransformer struct{}

func (t *conditionalTransformer) kind() TransformKind { return KindConditional }

func (t *conditionalTransformer) detect(s *parser.Schema) bool {
	return detectSchema(s, 0, func(node *parser.Schema) bool {
		return node.If != nil
	})
}

func (t *conditionalTransformer) apply(s *parser.Schema, res *Result) error {
	return t.walk(s, "", 0, res)
}

func (t *conditionalTransformer) walk(s *parser.Schema, loc string, depth int, res *Result) error {
	if s == nil {
		return nil
	}
	if depth > maxSchemaDepth {
		return depthError(loc)
	}

	// then/else without if are ignored per 2020-12 semantics
	if s.If != nil {
		if s.Then == nil && s.Else == nil {
			return &oaserrors.StructuralError{
				Location: loc,
				Keyword:  "if",
				Message:  "if requires at least one of then or else",
			}
		}
		res.Conditionals = append(res.Conditionals, ConditionalPattern{
			If:       s.If,
			Then:     s.Then,
			Else:     s.Else,
			Location: loc,
		})
	}

	for _, name := range sortedKeys(s.Properties) {
		if err := t.walk(s.Properties[name], joinPtr(loc, "properties", name), depth+1, res); err != nil {
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
	return t.walk(s.Else, joinPtr(loc, "else"), depth+1, res)
}
