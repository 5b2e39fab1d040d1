package normalizer

import (
	"strconv"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

// tupleTransformer rewrites 2020-12 prefixItems tuples into the Draft-07
// positional form: items becomes the positional schema array and
// additionalItems carries the trailing-element policy.
type tupleTransformer struct{}

func (t *tupleTransformer) kind() TransformKind { return KindPrefixItems }

func (t *tupleTransformer) detect(s *parser.Schema) bool {
	return detectSchema(s, 0, func(node *parser.Schema) bool {
		return node.PrefixItems != nil
	})
}

func (t *tupleTransformer) apply(s *parser.Schema, res *Result) error {
	return t.walk(s, "", 0, res)
}

func (t *tupleTransformer) walk(s *parser.Schema, loc string, depth int, res *Result) error {
	if s == nil {
		return nil
	}
	if depth > maxSchemaDepth {
		return depthError(loc)
	}

	if s.PrefixItems != nil {
		if err := t.rewriteTuple(s, loc, res); err != nil {
			return err
		}
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
	if ai, ok := s.AdditionalItems.(*parser.Schema); ok {
		if err := t.walk(ai, joinPtr(loc, "additionalItems"), depth+1, res); err != nil {
			return err
		}
	}
	if ap, ok := s.AdditionalProperties.(*parser.Schema); ok {
		if err := t.walk(ap, joinPtr(loc, "additionalProperties"), depth+1, res); err != nil {
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

// rewriteTuple converts one prefixItems node. The tuple length becomes
// the minItems floor; the trailing-element policy is derived from the
// 2020-12 items keyword (or a pre-existing additionalItems) and lands in
// additionalItems, closing the tuple with maxItems when no trailing
// elements are allowed.
func (t *tupleTransformer) rewriteTuple(s *parser.Schema, loc string, res *Result) error {
	prefix := s.PrefixItems
	if len(prefix) == 0 {
		// An empty tuple constrains nothing.
		s.PrefixItems = nil
		res.Changed = true
		return nil
	}
	for i, sub := range prefix {
		if sub == nil {
			return &oaserrors.StructuralError{
				Location: joinPtr(loc, "prefixItems", strconv.Itoa(i)),
				Keyword:  "prefixItems",
				Message:  "tuple position is not a schema",
			}
		}
	}
	if _, ok := s.Items.([]*parser.Schema); ok {
		return &oaserrors.ConflictError{
			Location: loc,
			Keywords: []string{"prefixItems", "items"},
			Message:  "array-valued items cannot be combined with prefixItems",
		}
	}
	itemsBool, itemsIsBool := s.Items.(bool)
	if itemsIsBool && !itemsBool && s.AdditionalItems != nil {
		return &oaserrors.ConflictError{
			Location: loc,
			Keywords: []string{"items", "additionalItems"},
			Message:  "additionalItems has no effect when items is false",
		}
	}

	length := len(prefix)
	closed := false
	hasAdditionalSchema := false

	switch {
	case itemsIsBool && !itemsBool:
		closed = true
	case s.Items != nil && !itemsIsBool:
		// items carries the trailing-element schema in 2020-12
		s.AdditionalItems = s.Items
		hasAdditionalSchema = true
	default:
		switch ai := s.AdditionalItems.(type) {
		case *parser.Schema:
			hasAdditionalSchema = true
		case bool:
			if !ai {
				closed = true
			}
		default:
			s.AdditionalItems = true
		}
	}

	s.Items = prefix
	s.PrefixItems = nil
	if s.MinItems == nil || *s.MinItems < length {
		s.MinItems = &length
	}
	if closed {
		s.AdditionalItems = nil
		if s.MaxItems == nil || *s.MaxItems > length {
			max := length
			s.MaxItems = &max
		}
	}

	res.Changed = true
	res.Tuples = append(res.Tuples, TupleInfo{
		Location:            loc,
		Length:              length,
		Closed:              closed,
		HasAdditionalSchema: hasAdditionalSchema,
	})
	return nil
}
