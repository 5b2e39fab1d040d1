package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/parser"
)

func newTestNormalizer(t *testing.T, version parser.VersionInfo, opts Options) *Normalizer {
	t.Helper()
	n := New(version, opts)
	cache, err := NewCache()
	require.NoError(t, err)
	n.Cache = cache
	return n
}

func TestNormalizePipelineOrder(t *testing.T) {
	// one schema that triggers several transforms at once
	schema := &parser.Schema{
		Type: "object",
		Properties: map[string]*parser.Schema{
			"tag":    {Type: []string{"string", "null"}},
			"status": {Const: "open"},
			"coords": {
				Type:        "array",
				PrefixItems: []*parser.Schema{{Type: "number"}, {Type: "number"}},
				Items:       false,
			},
		},
		UnevaluatedProperties: false,
	}

	n := newTestNormalizer(t, version31(t), DefaultOptions())
	res, err := n.Normalize(schema)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, []TransformKind{KindNullTypes, KindConst, KindPrefixItems, KindUnevaluated}, res.Applied)

	out := res.Schema
	assert.Equal(t, "string", out.Properties["tag"].Type)
	assert.True(t, out.Properties["tag"].Nullable)
	assert.Equal(t, "string", out.Properties["status"].Type)
	assert.Nil(t, out.Properties["coords"].PrefixItems)
	assert.Equal(t, false, out.AdditionalProperties)

	// input untouched
	assert.Equal(t, []string{"string", "null"}, schema.Properties["tag"].Type)
	assert.NotNil(t, schema.Properties["coords"].PrefixItems)
	assert.Nil(t, schema.AdditionalProperties)
}

func TestNormalizeSkipsDisabledTransforms(t *testing.T) {
	schema := &parser.Schema{
		Type: "object",
		Properties: map[string]*parser.Schema{
			"tag":    {Type: []string{"string", "null"}},
			"status": {Const: "open"},
		},
	}

	opts := DefaultOptions()
	opts.EnableConstKeyword = false
	n := newTestNormalizer(t, version31(t), opts)

	res, err := n.Normalize(schema)
	require.NoError(t, err)
	assert.Equal(t, []TransformKind{KindNullTypes}, res.Applied)
	assert.Nil(t, res.Schema.Properties["status"].Enum, "disabled transform must not run")
}

func TestNormalizeSkipsInapplicableTransforms(t *testing.T) {
	n := newTestNormalizer(t, version31(t), DefaultOptions())
	res, err := n.Normalize(&parser.Schema{Type: "string"})
	require.NoError(t, err)
	assert.Empty(t, res.Applied)
	assert.False(t, res.Changed)
}

func TestNormalizeIdempotent(t *testing.T) {
	schema := &parser.Schema{
		Type: "object",
		Properties: map[string]*parser.Schema{
			"tag": {Type: []string{"string", "null"}},
			"pet": {
				OneOf: []*parser.Schema{
					{Ref: "#/components/schemas/Cat"},
					{Ref: "#/components/schemas/Dog"},
				},
				Discriminator: &parser.Discriminator{PropertyName: "petType"},
			},
		},
		UnevaluatedProperties: false,
	}

	n := newTestNormalizer(t, version31(t), DefaultOptions())
	first, err := n.Normalize(schema)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	second, err := n.Normalize(first.Schema)
	require.NoError(t, err)
	assert.False(t, second.Changed, "pipeline output is a fixed point")
	assert.Equal(t, first.Schema, second.Schema)
}

func TestNormalizeAbortsOnFirstError(t *testing.T) {
	schema := &parser.Schema{
		Type: "object",
		Properties: map[string]*parser.Schema{
			"bad": {
				Contains:    &parser.Schema{Type: "string"},
				MinContains: intPtr(2),
				MaxContains: intPtr(1),
			},
		},
	}

	n := newTestNormalizer(t, version31(t), DefaultOptions())
	_, err := n.Normalize(schema)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrStructural))
	assert.Contains(t, err.Error(), "contains")
}

func TestNormalizeNilSchema(t *testing.T) {
	n := newTestNormalizer(t, version31(t), DefaultOptions())
	_, err := n.Normalize(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestNormalizeUsesCache(t *testing.T) {
	schema := &parser.Schema{Type: []string{"string", "null"}}

	n := newTestNormalizer(t, version31(t), DefaultOptions())
	first, err := n.Normalize(schema)
	require.NoError(t, err)

	second, err := n.Normalize(schema)
	require.NoError(t, err)
	assert.Same(t, first, second, "identical input returns the cached result")

	stats := n.Cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
}

func TestNormalizeCacheDistinguishesAnnotations(t *testing.T) {
	cat := &parser.Schema{
		Title: "Cat",
		Type:  "object",
		Properties: map[string]*parser.Schema{
			"tag": {Type: []string{"string", "null"}},
		},
	}
	dog := cat.DeepCopy()
	dog.Title = "Dog"

	n := newTestNormalizer(t, version31(t), DefaultOptions())
	first, err := n.Normalize(cat)
	require.NoError(t, err)
	assert.Equal(t, "Cat", first.Schema.Title)

	second, err := n.Normalize(dog)
	require.NoError(t, err)
	assert.Equal(t, "Dog", second.Schema.Title, "annotation-only differences must not share cache entries")
	assert.Equal(t, uint64(0), n.Cache.Stats().Hits)
}

func TestNormalizeCacheRespectsOptions(t *testing.T) {
	schema := &parser.Schema{Type: []string{"string", "null"}}

	cache, err := NewCache()
	require.NoError(t, err)

	a := New(version31(t), DefaultOptions())
	a.Cache = cache
	_, err = a.Normalize(schema)
	require.NoError(t, err)

	strict := DefaultOptions()
	strict.StrictNullHandling = false
	b := New(version31(t), strict)
	b.Cache = cache
	res, err := b.Normalize(schema)
	require.NoError(t, err)
	assert.Empty(t, res.Applied, "different options must not share cache entries")
}

func TestNormalizeFallbackTo30(t *testing.T) {
	opts := DefaultOptions()
	opts.FallbackToOpenAPI30 = true
	n := newTestNormalizer(t, version31(t), opts)

	assert.True(t, n.Version.IsVersion30)
	assert.False(t, n.Version.IsVersion31)

	// 3.1 type arrays are left alone under the fallback
	res, err := n.Normalize(&parser.Schema{Type: []string{"string", "null"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"string", "null"}, res.Schema.Type)

	// legacy nullable collapsing applies instead
	res, err = n.Normalize(&parser.Schema{Type: "string", Nullable: true})
	require.NoError(t, err)
	require.Len(t, res.Schema.AnyOf, 2)
}

func TestApplyTransformation(t *testing.T) {
	n := newTestNormalizer(t, version31(t), DefaultOptions())

	schema := &parser.Schema{Const: "fixed"}
	res, err := n.ApplyTransformation(KindConst, schema)
	require.NoError(t, err)
	assert.Equal(t, []TransformKind{KindConst}, res.Applied)
	assert.Equal(t, "string", res.Schema.Type)

	// memoized per kind
	again, err := n.ApplyTransformation(KindConst, schema)
	require.NoError(t, err)
	assert.Same(t, res, again)

	// gates bypass: a kind disabled in Options still runs explicitly
	gated := DefaultOptions()
	gated.EnableConstKeyword = false
	g := newTestNormalizer(t, version31(t), gated)
	res2, err := g.ApplyTransformation(KindConst, schema)
	require.NoError(t, err)
	assert.Equal(t, []TransformKind{KindConst}, res2.Applied)
}

func TestApplyTransformationUnknownKind(t *testing.T) {
	n := newTestNormalizer(t, version31(t), DefaultOptions())
	_, err := n.ApplyTransformation(TransformKind("bogus"), &parser.Schema{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}
