package normalizer

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

// constTransformer synthesizes type and a single-value enum for every
// const keyword so Draft-07 era tools that predate const still enforce
// the fixed value. The const keyword itself is retained.
type constTransformer struct{}

func (t *constTransformer) kind() TransformKind { return KindConst }

func (t *constTransformer) detect(s *parser.Schema) bool {
	return detectSchema(s, 0, func(node *parser.Schema) bool {
		return node.ConstDefined()
	})
}

func (t *constTransformer) apply(s *parser.Schema, res *Result) error {
	return t.walk(s, "", 0, res)
}

func (t *constTransformer) walk(s *parser.Schema, loc string, depth int, res *Result) error {
	if s == nil {
		return nil
	}
	if depth > maxSchemaDepth {
		return depthError(loc)
	}

	if s.ConstDefined() {
		if err := t.normalizeConst(s, loc, res); err != nil {
			return err
		}
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

// normalizeConst infers the JSON Schema type of the const value and
// writes it alongside a single-value enum. Values that cannot be
// canonically serialized fail the document.
func (t *constTransformer) normalizeConst(s *parser.Schema, loc string, res *Result) error {
	if _, err := json.Marshal(s.Const); err != nil {
		return &oaserrors.SerializationError{
			Location: loc,
			Message:  "const value is not serializable",
			Cause:    err,
		}
	}

	inferred, err := inferConstType(s.Const)
	if err != nil {
		return &oaserrors.StructuralError{
			Location: loc,
			Keyword:  "const",
			Message:  err.Error(),
		}
	}

	if typ, ok := s.Type.(string); !ok || typ != inferred {
		s.Type = inferred
		res.Changed = true
	}
	wantEnum := []any{s.Const}
	if !reflect.DeepEqual(s.Enum, wantEnum) {
		s.Enum = wantEnum
		res.Changed = true
	}

	res.Consts = append(res.Consts, ConstInfo{
		Location:     loc,
		InferredType: inferred,
	})
	return nil
}

// inferConstType maps a decoded const value to its JSON Schema type.
// Whole-valued floats count as integers, matching how YAML and JSON
// decoders surface numeric literals.
func inferConstType(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case string:
		return "string", nil
	case bool:
		return "boolean", nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer", nil
	case float32:
		if val == float32(math.Trunc(float64(val))) {
			return "integer", nil
		}
		return "number", nil
	case float64:
		if val == math.Trunc(val) {
			return "integer", nil
		}
		return "number", nil
	case []any:
		return "array", nil
	case map[string]any:
		return "object", nil
	default:
		return "", fmt.Errorf("unsupported const value type %T", v)
	}
}
