package normalizer

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/erraggy/oasnorm/parser"
)

// extDiscriminatorEnhanced is the specification extension the
// discriminator pass attaches to record what it derived.
const extDiscriminatorEnhanced = "x-discriminator-enhanced"

// discriminatorTransformer enhances discriminator usage for tools that
// resolve unions structurally. For oneOf/anyOf unions it infers a
// value-to-member mapping when none is declared and injects a constant
// discriminator property into each member so the branch is decidable
// without following references. For allOf inheritance bases it ensures
// the discriminator property exists and is required.
type discriminatorTransformer struct{}

func (t *discriminatorTransformer) kind() TransformKind { return KindDiscriminator }

func (t *discriminatorTransformer) detect(s *parser.Schema) bool {
	return detectSchema(s, 0, func(node *parser.Schema) bool {
		return node.Discriminator != nil && node.Discriminator.PropertyName != ""
	})
}

func (t *discriminatorTransformer) apply(s *parser.Schema, res *Result) error {
	return t.walk(s, "", 0, res)
}

func (t *discriminatorTransformer) walk(s *parser.Schema, loc string, depth int, res *Result) error {
	if s == nil {
		return nil
	}
	if depth > maxSchemaDepth {
		return depthError(loc)
	}

	if s.Discriminator != nil && s.Discriminator.PropertyName != "" {
		t.enhance(s, loc, res)
	}

	for _, name := range sortedKeys(s.Properties) {
		if err := t.walk(s.Properties[name], joinPtr(loc, "properties", name), depth+1, res); err != nil {
			return err
		}
	}
	if items, ok := s.Items.(*parser.Schema); ok {
		if err := t.walk(items, joinPtr(loc, "items"), depth+1, res); err != nil {
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
	return nil
}

func (t *discriminatorTransformer) enhance(s *parser.Schema, loc string, res *Result) {
	disc := s.Discriminator
	members := s.OneOf
	if len(members) == 0 {
		members = s.AnyOf
	}

	isInheritance := false
	if len(members) > 0 {
		t.enhanceUnion(s, members, loc, res)
	} else {
		// Discriminator without a sibling union marks an inheritance base:
		// subtypes reference this schema via allOf.
		isInheritance = true
		t.ensureProperty(s, disc.PropertyName, "", res)
	}

	meta := map[string]any{
		"propertyName": disc.PropertyName,
		"location":     loc,
	}
	if len(disc.Mapping) > 0 {
		meta["mapping"] = copyMapping(disc.Mapping)
	}
	if isInheritance {
		meta["isInheritance"] = true
	}
	if s.Extra == nil || !reflect.DeepEqual(s.Extra[extDiscriminatorEnhanced], meta) {
		if s.Extra == nil {
			s.Extra = make(map[string]any, 1)
		}
		s.Extra[extDiscriminatorEnhanced] = meta
		res.Changed = true
	}

	res.Discriminators = append(res.Discriminators, DiscriminatorInfo{
		PropertyName:  disc.PropertyName,
		Mapping:       copyMapping(disc.Mapping),
		Location:      loc,
		IsInheritance: isInheritance,
		IsNested:      loc != "",
	})
}

// enhanceUnion processes a oneOf/anyOf union carrying a discriminator.
// With no declared mapping every member gets an inferred value and the
// mapping is persisted for reference members. With a declared mapping,
// members already covered by it are left alone and only uncovered ones
// gain an inferred constant.
func (t *discriminatorTransformer) enhanceUnion(s *parser.Schema, members []*parser.Schema, loc string, res *Result) {
	disc := s.Discriminator
	hadMapping := len(disc.Mapping) > 0

	covered := make(map[*parser.Schema]string, len(members))
	if hadMapping {
		targets := make(map[string]string, len(disc.Mapping))
		for value, ref := range disc.Mapping {
			targets[ref] = value
		}
		for _, m := range members {
			if m == nil || m.Ref == "" {
				continue
			}
			if value, ok := targets[m.Ref]; ok {
				covered[m] = value
			}
		}
	}

	for _, m := range members {
		if m == nil {
			continue
		}
		if _, ok := covered[m]; ok {
			continue
		}
		value := t.inferValue(m, disc.PropertyName)
		if value == "" {
			continue
		}
		if !hadMapping && m.Ref != "" {
			if _, exists := disc.Mapping[value]; !exists {
				if disc.Mapping == nil {
					disc.Mapping = make(map[string]string, len(members))
				}
				disc.Mapping[value] = m.Ref
				res.Changed = true
			}
		}
		t.ensureProperty(m, disc.PropertyName, value, res)
	}
}

// inferValue derives a discriminator value for a union member: the
// trailing segment of its $ref, a constant already declared on the
// discriminator property, or the member title.
func (t *discriminatorTransformer) inferValue(m *parser.Schema, propName string) string {
	if m.Ref != "" {
		return refName(m.Ref)
	}
	if prop, ok := m.Properties[propName]; ok && prop != nil {
		if v, ok := prop.Const.(string); ok && v != "" {
			return v
		}
		if len(prop.Enum) == 1 {
			if v, ok := prop.Enum[0].(string); ok && v != "" {
				return v
			}
		}
	}
	return m.Title
}

// ensureProperty makes propName a required string property on the
// schema, pinned to value when one is known. Existing declarations are
// only replaced when they differ, keeping the pass idempotent.
func (t *discriminatorTransformer) ensureProperty(s *parser.Schema, propName, value string, res *Result) {
	var want *parser.Schema
	if value == "" {
		want = &parser.Schema{Type: "string"}
	} else {
		want = &parser.Schema{Type: "string", Const: value, Enum: []any{value}}
	}

	existing := s.Properties[propName]
	if existing == nil {
		if s.Properties == nil {
			s.Properties = make(map[string]*parser.Schema, 1)
		}
		s.Properties[propName] = want
		res.Changed = true
	} else if value != "" && !reflect.DeepEqual(existing, want) {
		s.Properties[propName] = want
		res.Changed = true
	}

	for _, r := range s.Required {
		if r == propName {
			return
		}
	}
	s.Required = append(s.Required, propName)
	res.Changed = true
}

// refName returns the final segment of a reference path, e.g.
// "#/components/schemas/Dog" yields "Dog".
func refName(ref string) string {
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

func copyMapping(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
