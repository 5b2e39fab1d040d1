package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasnorm/parser"
)

func version31(t *testing.T) parser.VersionInfo {
	t.Helper()
	info, err := parser.ParseVersionInfo("3.1.0")
	require.NoError(t, err)
	return info
}

func version30(t *testing.T) parser.VersionInfo {
	t.Helper()
	info, err := parser.ParseVersionInfo("3.0.3")
	require.NoError(t, err)
	return info
}

func applyNullTypes(t *testing.T, version parser.VersionInfo, schema *parser.Schema) (*parser.Schema, *Result) {
	t.Helper()
	tr := &nullTypeTransformer{version: version}
	working := schema.DeepCopy()
	res := &Result{Schema: working}
	require.NoError(t, tr.apply(working, res))
	return working, res
}

func TestNullTypeTwoTypeUnion(t *testing.T) {
	schema := &parser.Schema{Type: []string{"string", "null"}}

	out, res := applyNullTypes(t, version31(t), schema)

	assert.Equal(t, "string", out.Type)
	assert.True(t, out.Nullable)
	assert.True(t, res.Changed)
	require.Len(t, res.Unions, 1)
	assert.Equal(t, []string{"string"}, res.Unions[0].Types)
	assert.True(t, res.Unions[0].Nullable)
}

func TestNullTypeSingleTypeArrayCollapses(t *testing.T) {
	out, res := applyNullTypes(t, version31(t), &parser.Schema{Type: []string{"integer"}})

	assert.Equal(t, "integer", out.Type)
	assert.False(t, out.Nullable)
	assert.True(t, res.Changed)
}

func TestNullTypeNullOnlyArray(t *testing.T) {
	out, res := applyNullTypes(t, version31(t), &parser.Schema{Type: []string{"null"}})

	assert.Equal(t, "null", out.Type)
	assert.True(t, res.Changed)
}

func TestNullTypeMultiTypeUnionBecomesAnyOf(t *testing.T) {
	schema := &parser.Schema{Type: []string{"string", "integer", "null"}}

	out, res := applyNullTypes(t, version31(t), schema)

	assert.Nil(t, out.Type)
	require.Len(t, out.AnyOf, 3)
	assert.Equal(t, "string", out.AnyOf[0].Type)
	assert.Equal(t, "integer", out.AnyOf[1].Type)
	assert.Equal(t, "null", out.AnyOf[2].Type)
	require.Len(t, res.Unions, 1)
	assert.Equal(t, []string{"string", "integer"}, res.Unions[0].Types)
	assert.True(t, res.Unions[0].Nullable)
}

func TestNullTypeMultiTypeAppendsToExistingAnyOf(t *testing.T) {
	schema := &parser.Schema{
		Type:  []string{"string", "integer"},
		AnyOf: []*parser.Schema{{Ref: "#/components/schemas/Existing"}},
	}

	out, _ := applyNullTypes(t, version31(t), schema)

	require.Len(t, out.AnyOf, 3)
	assert.Equal(t, "#/components/schemas/Existing", out.AnyOf[0].Ref)
}

func TestNullType30NullableExpands(t *testing.T) {
	schema := &parser.Schema{Type: "string", Nullable: true}

	out, res := applyNullTypes(t, version30(t), schema)

	assert.Nil(t, out.Type)
	assert.False(t, out.Nullable)
	require.Len(t, out.AnyOf, 2)
	assert.Equal(t, "string", out.AnyOf[0].Type)
	assert.Equal(t, "null", out.AnyOf[1].Type)
	assert.True(t, res.Changed)
}

func TestNullType30LeavesPlainTypes(t *testing.T) {
	schema := &parser.Schema{Type: "string"}

	out, res := applyNullTypes(t, version30(t), schema)

	assert.Equal(t, "string", out.Type)
	assert.False(t, res.Changed)
	assert.Empty(t, res.Unions)
}

func TestNullType31LeavesScalarTypes(t *testing.T) {
	// 3.1 path only fires on arrays; the collapsed form is a fixed point.
	schema := &parser.Schema{Type: "string", Nullable: true}

	out, res := applyNullTypes(t, version31(t), schema)

	assert.Equal(t, "string", out.Type)
	assert.True(t, out.Nullable)
	assert.False(t, res.Changed)
}

func TestNullTypeIdempotent(t *testing.T) {
	schema := &parser.Schema{
		Type: "object",
		Properties: map[string]*parser.Schema{
			"tag":  {Type: []string{"string", "null"}},
			"mode": {Type: []string{"string", "integer"}},
		},
	}

	first, res1 := applyNullTypes(t, version31(t), schema)
	assert.True(t, res1.Changed)

	second, res2 := applyNullTypes(t, version31(t), first)
	assert.False(t, res2.Changed)
	assert.Equal(t, first, second)
}

func TestNullTypeRecursesNestedPositions(t *testing.T) {
	schema := &parser.Schema{
		Type: "object",
		Properties: map[string]*parser.Schema{
			"list": {
				Type:  "array",
				Items: &parser.Schema{Type: []string{"number", "null"}},
			},
		},
		AdditionalProperties: &parser.Schema{Type: []string{"boolean", "null"}},
		OneOf:                []*parser.Schema{{Type: []string{"string", "null"}}},
		Not:                  &parser.Schema{Type: []string{"integer", "null"}},
	}

	out, res := applyNullTypes(t, version31(t), schema)

	assert.Equal(t, "number", out.Properties["list"].Items.(*parser.Schema).Type)
	assert.Equal(t, "boolean", out.AdditionalProperties.(*parser.Schema).Type)
	assert.Equal(t, "string", out.OneOf[0].Type)
	assert.Equal(t, "integer", out.Not.Type)
	assert.Len(t, res.Unions, 4)
	// locations use JSON-Pointer paths
	locations := make([]string, 0, len(res.Unions))
	for _, u := range res.Unions {
		locations = append(locations, u.Location)
	}
	assert.Contains(t, locations, "/properties/list/items")
	assert.Contains(t, locations, "/additionalProperties")
}

func TestNullTypeDetect(t *testing.T) {
	tr31 := &nullTypeTransformer{version: version31(t)}
	assert.True(t, tr31.detect(&parser.Schema{Type: []string{"string", "null"}}))
	assert.True(t, tr31.detect(&parser.Schema{
		Properties: map[string]*parser.Schema{"a": {Type: []string{"string"}}},
	}))
	assert.False(t, tr31.detect(&parser.Schema{Type: "string"}))
	assert.False(t, tr31.detect(nil))

	tr30 := &nullTypeTransformer{version: version30(t)}
	assert.True(t, tr30.detect(&parser.Schema{Type: "string", Nullable: true}))
	assert.False(t, tr30.detect(&parser.Schema{Nullable: true}))
}

func TestNullTypeDepthLimit(t *testing.T) {
	root := &parser.Schema{}
	node := root
	for i := 0; i < maxSchemaDepth+2; i++ {
		child := &parser.Schema{}
		node.Properties = map[string]*parser.Schema{"n": child}
		node = child
	}
	node.Type = []string{"string", "null"}

	tr := &nullTypeTransformer{version: version31(t)}
	res := &Result{}
	err := tr.apply(root, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting")
}
