package schemautil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasnorm/parser"
)

func TestGetSchemaTypes(t *testing.T) {
	tests := []struct {
		name   string
		schema *parser.Schema
		want   []string
	}{
		{
			name:   "nil schema",
			schema: nil,
			want:   nil,
		},
		{
			name:   "no type",
			schema: &parser.Schema{},
			want:   nil,
		},
		{
			name:   "scalar string",
			schema: &parser.Schema{Type: "string"},
			want:   []string{"string"},
		},
		{
			name:   "string slice",
			schema: &parser.Schema{Type: []string{"string", "null"}},
			want:   []string{"string", "null"},
		},
		{
			name:   "any slice",
			schema: &parser.Schema{Type: []any{"integer", "null"}},
			want:   []string{"integer", "null"},
		},
		{
			name:   "any slice with non-strings skipped",
			schema: &parser.Schema{Type: []any{"integer", 3}},
			want:   []string{"integer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSchemaTypes(tt.schema))
		})
	}
}

func TestHasTypeArray(t *testing.T) {
	assert.False(t, HasTypeArray(nil))
	assert.False(t, HasTypeArray(&parser.Schema{Type: "string"}))
	assert.True(t, HasTypeArray(&parser.Schema{Type: []string{"string"}}))
	assert.True(t, HasTypeArray(&parser.Schema{Type: []any{"string"}}))
}

func TestGetPrimaryType(t *testing.T) {
	assert.Equal(t, "", GetPrimaryType(nil))
	assert.Equal(t, "string", GetPrimaryType(&parser.Schema{Type: "string"}))
	assert.Equal(t, "integer", GetPrimaryType(&parser.Schema{Type: []string{"null", "integer"}}))
	assert.Equal(t, "null", GetPrimaryType(&parser.Schema{Type: []string{"null"}}))
}

func TestIsNullable(t *testing.T) {
	assert.False(t, IsNullable(&parser.Schema{Type: "string"}))
	assert.True(t, IsNullable(&parser.Schema{Type: []string{"string", "null"}}))
	// the 3.0 nullable flag is a separate signal
	assert.False(t, IsNullable(&parser.Schema{Type: "string", Nullable: true}))
}

func TestNonNullTypes(t *testing.T) {
	assert.Equal(t, []string{"string", "integer"},
		NonNullTypes(&parser.Schema{Type: []string{"string", "null", "integer"}}))
	assert.Empty(t, NonNullTypes(&parser.Schema{Type: []string{"null"}}))
}
