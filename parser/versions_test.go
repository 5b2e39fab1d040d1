package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasnorm/oaserrors"
)

func TestParseVersionInfo(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		wantMinor       int
		wantPatch       int
		wantIs30        bool
		wantIs31        bool
		wantMissing     bool
		wantInvalid     bool
		wantUnsupported bool
	}{
		{
			name:      "3.0.0",
			input:     "3.0.0",
			wantMinor: 0,
			wantIs30:  true,
		},
		{
			name:      "3.0.4 patch",
			input:     "3.0.4",
			wantMinor: 0,
			wantPatch: 4,
			wantIs30:  true,
		},
		{
			name:      "3.1.0",
			input:     "3.1.0",
			wantMinor: 1,
			wantIs31:  true,
		},
		{
			name:      "3.1 without patch",
			input:     "3.1",
			wantMinor: 1,
			wantPatch: -1,
			wantIs31:  true,
		},
		{
			name:      "3.1.0-rc1 prerelease",
			input:     "3.1.0-rc1",
			wantMinor: 1,
			wantIs31:  true,
		},
		{
			name:            "swagger 2.0.0 unsupported",
			input:           "2.0.0",
			wantUnsupported: true,
		},
		{
			name:            "future 4.0.0 unsupported",
			input:           "4.0.0",
			wantUnsupported: true,
		},
		{
			name:            "3.2 unsupported minor",
			input:           "3.2.0",
			wantUnsupported: true,
		},
		{
			name:        "garbage",
			input:       "not-a-version",
			wantInvalid: true,
		},
		{
			name:        "single component",
			input:       "3",
			wantInvalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseVersionInfo(tt.input)
			if tt.wantInvalid || tt.wantUnsupported {
				require.Error(t, err)
				var verErr *oaserrors.VersionError
				require.ErrorAs(t, err, &verErr)
				assert.Equal(t, tt.wantInvalid, verErr.IsInvalidFormat)
				assert.Equal(t, tt.wantUnsupported, verErr.IsUnsupported)
				assert.True(t, errors.Is(err, oaserrors.ErrVersion))
				if tt.wantUnsupported {
					assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedVersion))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, info.Version)
			assert.Equal(t, 3, info.Major)
			assert.Equal(t, tt.wantMinor, info.Minor)
			assert.Equal(t, tt.wantIs30, info.IsVersion30)
			assert.Equal(t, tt.wantIs31, info.IsVersion31)
			if tt.wantPatch != 0 {
				assert.Equal(t, tt.wantPatch, info.Patch)
			}
		})
	}
}

func TestParseVersionInfoUnsupportedMessageNamesMajor(t *testing.T) {
	_, err := ParseVersionInfo("2.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "major version 2")
}

func TestDetectVersion(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		info, err := DetectVersion(&Document{OpenAPI: "3.1.0"})
		require.NoError(t, err)
		assert.True(t, info.IsVersion31)
	})

	t.Run("missing openapi field", func(t *testing.T) {
		_, err := DetectVersion(&Document{})
		require.Error(t, err)
		var verErr *oaserrors.VersionError
		require.ErrorAs(t, err, &verErr)
		assert.True(t, verErr.IsMissing)
		assert.True(t, errors.Is(err, oaserrors.ErrMissingVersion))
	})

	t.Run("nil document", func(t *testing.T) {
		_, err := DetectVersion(nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrMissingVersion))
	})
}

func TestFeatures(t *testing.T) {
	t.Run("all true for 3.1", func(t *testing.T) {
		info, err := ParseVersionInfo("3.1.0")
		require.NoError(t, err)
		f := info.Features()
		assert.True(t, f.Webhooks)
		assert.True(t, f.TypeArrays)
		assert.True(t, f.ConditionalSchemas)
		assert.True(t, f.PrefixItems)
		assert.True(t, f.UnevaluatedProperties)
		assert.True(t, f.ConstKeyword)
		assert.True(t, f.ContainsKeyword)
		assert.True(t, f.EnhancedDiscriminator)
	})

	t.Run("all false for 3.0", func(t *testing.T) {
		info, err := ParseVersionInfo("3.0.3")
		require.NoError(t, err)
		assert.Equal(t, FeatureSupport{}, info.Features())
	})
}
