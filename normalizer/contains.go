package normalizer

import (
	"fmt"
	"strconv"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

// containsTransformer validates contains constraints and extracts them as
// diagnostics. The tree is never rewritten: Draft-07 era tools simply
// ignore the keyword, and stripping it would lose information for tools
// that do understand it.
type containsTransformer struct{}

func (t *containsTransformer) kind() TransformKind { return KindContains }

func (t *containsTransformer) detect(s *parser.Schema) bool {
	return detectSchema(s, 0, func(node *parser.Schema) bool {
		return node.Contains != nil
	})
}

func (t *containsTransformer) apply(s *parser.Schema, res *Result) error {
	return t.walk(s, "", 0, res)
}

func (t *containsTransformer) walk(s *parser.Schema, loc string, depth int, res *Result) error {
	if s == nil {
		return nil
	}
	if depth > maxSchemaDepth {
		return depthError(loc)
	}

	// minContains/maxContains without contains constrain nothing; they are
	// left in place and not validated.
	if s.Contains != nil {
		if err := t.validateCounts(s, loc); err != nil {
			return err
		}
		res.ContainsPatterns = append(res.ContainsPatterns, ContainsPattern{
			Schema:      s.Contains,
			MinContains: s.MinContains,
			MaxContains: s.MaxContains,
			Location:    loc,
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
	if err := t.walk(s.Else, joinPtr(loc, "else"), depth+1, res); err != nil {
		return err
	}
	return t.walk(s.Contains, joinPtr(loc, "contains"), depth+1, res)
}

func (t *containsTransformer) validateCounts(s *parser.Schema, loc string) error {
	if s.MinContainsInvalid {
		return &oaserrors.StructuralError{
			Location: loc,
			Keyword:  "contains",
			Message:  "minContains must be a non-negative integer",
		}
	}
	if s.MaxContainsInvalid {
		return &oaserrors.StructuralError{
			Location: loc,
			Keyword:  "contains",
			Message:  "maxContains must be a non-negative integer",
		}
	}
	if s.MinContains != nil && *s.MinContains < 0 {
		return &oaserrors.StructuralError{
			Location: loc,
			Keyword:  "contains",
			Message:  fmt.Sprintf("minContains must be non-negative, got %d", *s.MinContains),
		}
	}
	if s.MaxContains != nil && *s.MaxContains < 0 {
		return &oaserrors.StructuralError{
			Location: loc,
			Keyword:  "contains",
			Message:  fmt.Sprintf("maxContains must be non-negative, got %d", *s.MaxContains),
		}
	}
	if s.MinContains != nil && s.MaxContains != nil && *s.MinContains > *s.MaxContains {
		return &oaserrors.StructuralError{
			Location: loc,
			Keyword:  "contains",
			Message:  fmt.Sprintf("minContains %d exceeds maxContains %d", *s.MinContains, *s.MaxContains),
		}
	}
	return nil
}
