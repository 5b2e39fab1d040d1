package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"user_profile", "UserProfile"},
		{"api-client", "ApiClient"},
		{"already", "Already"},
		{"with.dots", "WithDots"},
		{"a/b c", "ABC"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"user_profile", "userProfile"},
		{"API-key", "aPIKey"},
		{"single", "single"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCamelCase(tt.input))
		})
	}
}

func TestMediaTypeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"application/json", "applicationJson"},
		{"application/xml", "applicationXml"},
		{"text/plain", "textPlain"},
		{"application/vnd.api+json", "applicationVndApiJson"},
		{"multipart/form-data", "multipartFormData"},
		{"application/octet-stream", "applicationOctetStream"},
		{"*/*", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MediaTypeKey(tt.input))
		})
	}
}
