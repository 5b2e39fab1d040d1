package normalizer

import (
	"strconv"

	"github.com/erraggy/oasnorm/internal/schemautil"
	"github.com/erraggy/oasnorm/parser"
)

// nullTypeTransformer rewrites version-specific null handling into
// representations downstream Draft-07 era tools understand. On 3.1
// documents it collapses type arrays; on 3.0 documents it expands the
// legacy nullable flag into an explicit anyOf union. Each output form is
// a fixed point of its own rewrite, so re-running the pass is a no-op.
type nullTypeTransformer struct {
	version parser.VersionInfo
}

func (t *nullTypeTransformer) kind() TransformKind { return KindNullTypes }

func (t *nullTypeTransformer) detect(s *parser.Schema) bool {
	return detectSchema(s, 0, func(node *parser.Schema) bool {
		if t.version.IsVersion31 {
			return schemautil.HasTypeArray(node)
		}
		return t.nullableScalar(node)
	})
}

// nullableScalar reports whether the node carries the legacy 3.0
// nullable flag alongside a scalar type.
func (t *nullTypeTransformer) nullableScalar(node *parser.Schema) bool {
	if !node.Nullable {
		return false
	}
	typ, ok := node.Type.(string)
	return ok && typ != ""
}

func (t *nullTypeTransformer) apply(s *parser.Schema, res *Result) error {
	return t.walk(s, "", 0, res)
}

func (t *nullTypeTransformer) walk(s *parser.Schema, loc string, depth int, res *Result) error {
	if s == nil {
		return nil
	}
	if depth > maxSchemaDepth {
		return depthError(loc)
	}

	if t.version.IsVersion31 {
		t.collapseTypeArray(s, loc, res)
	} else if t.nullableScalar(s) {
		t.expandNullable(s, loc, res)
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
	if ap, ok := s.AdditionalProperties.(*parser.Schema); ok {
		if err := t.walk(ap, joinPtr(loc, "additionalProperties"), depth+1, res); err != nil {
			return err
		}
	}
	if err := t.walkGroup(s.AllOf, joinPtr(loc, "allOf"), depth, res); err != nil {
		return err
	}
	if err := t.walkGroup(s.AnyOf, joinPtr(loc, "anyOf"), depth, res); err != nil {
		return err
	}
	if err := t.walkGroup(s.OneOf, joinPtr(loc, "oneOf"), depth, res); err != nil {
		return err
	}
	return t.walk(s.Not, joinPtr(loc, "not"), depth+1, res)
}

func (t *nullTypeTransformer) walkGroup(group []*parser.Schema, loc string, depth int, res *Result) error {
	for i, sub := range group {
		if err := t.walk(sub, joinPtr(loc, strconv.Itoa(i)), depth+1, res); err != nil {
			return err
		}
	}
	return nil
}

// collapseTypeArray rewrites an array-valued type keyword in place.
// A single-type array becomes a scalar; a two-type array with null
// becomes a scalar plus nullable; anything wider becomes an anyOf of
// single-type branches.
func (t *nullTypeTransformer) collapseTypeArray(s *parser.Schema, loc string, res *Result) {
	if !schemautil.HasTypeArray(s) {
		return
	}
	nonNull := schemautil.NonNullTypes(s)
	nullable := schemautil.IsNullable(s)
	if len(nonNull) == 0 && !nullable {
		return
	}

	switch {
	case len(nonNull) == 0:
		// ["null"] alone
		s.Type = "null"
	case len(nonNull) == 1:
		s.Type = nonNull[0]
		if nullable {
			s.Nullable = true
		}
	default:
		branches := make([]*parser.Schema, 0, len(nonNull)+1)
		for _, typ := range nonNull {
			branches = append(branches, &parser.Schema{Type: typ})
		}
		if nullable {
			branches = append(branches, &parser.Schema{Type: "null"})
		}
		s.Type = nil
		s.AnyOf = append(s.AnyOf, branches...)
	}

	res.Changed = true
	res.Unions = append(res.Unions, UnionTypeInfo{
		Location: loc,
		Types:    nonNull,
		Nullable: nullable,
	})
}

// expandNullable rewrites the legacy 3.0 nullable flag into an explicit
// anyOf union of the scalar type and null.
func (t *nullTypeTransformer) expandNullable(s *parser.Schema, loc string, res *Result) {
	typ := s.Type.(string)
	s.Type = nil
	s.Nullable = false
	s.AnyOf = append(s.AnyOf,
		&parser.Schema{Type: typ},
		&parser.Schema{Type: "null"},
	)

	res.Changed = true
	res.Unions = append(res.Unions, UnionTypeInfo{
		Location: loc,
		Types:    []string{typ},
		Nullable: true,
	})
}
