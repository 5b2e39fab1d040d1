package parser

import (
	"strconv"

	"github.com/erraggy/oasnorm/oaserrors"
)

// VersionInfo describes the detected OpenAPI version of a document.
// Only the 3.0.x and 3.1.x series are accepted; anything else is rejected
// before any transformation runs.
type VersionInfo struct {
	// Version is the raw version string from the openapi field (e.g., "3.1.0")
	Version string
	// Major is the parsed major component
	Major int
	// Minor is the parsed minor component
	Minor int
	// Patch is the parsed patch component, or -1 if absent
	Patch int
	// IsVersion30 is true for the 3.0.x series
	IsVersion30 bool
	// IsVersion31 is true for the 3.1.x series
	IsVersion31 bool
}

// FeatureSupport lists the JSON Schema Draft 2020-12 era features available
// at a given OAS version. All flags are true iff the document is 3.1.x.
type FeatureSupport struct {
	Webhooks              bool
	TypeArrays            bool
	ConditionalSchemas    bool
	PrefixItems           bool
	UnevaluatedProperties bool
	ConstKeyword          bool
	ContainsKeyword       bool
	EnhancedDiscriminator bool
}

// DetectVersion extracts and validates the version of a loaded document.
//
// Failure modes, all *oaserrors.VersionError:
//   - the document has no openapi field (IsMissing)
//   - the version string is not major.minor(.patch)?(-prerelease)? (IsInvalidFormat)
//   - the version parsed but major != 3 or minor not in {0, 1} (IsUnsupported)
func DetectVersion(doc *Document) (VersionInfo, error) {
	if doc == nil || doc.OpenAPI == "" {
		return VersionInfo{}, &oaserrors.VersionError{
			IsMissing: true,
			Message:   "document has no openapi field",
		}
	}
	return ParseVersionInfo(doc.OpenAPI)
}

// ParseVersionInfo parses and validates an openapi version string.
// See DetectVersion for the failure modes.
func ParseVersionInfo(s string) (VersionInfo, error) {
	v, err := parseVersion(s)
	if err != nil {
		return VersionInfo{}, &oaserrors.VersionError{
			Version:         s,
			IsInvalidFormat: true,
			Message:         err.Error(),
		}
	}

	if v.major != 3 {
		return VersionInfo{}, &oaserrors.VersionError{
			Version:       s,
			IsUnsupported: true,
			Message:       versionSupportMessage(v.major, v.minor),
		}
	}
	if v.minor != 0 && v.minor != 1 {
		return VersionInfo{}, &oaserrors.VersionError{
			Version:       s,
			IsUnsupported: true,
			Message:       versionSupportMessage(v.major, v.minor),
		}
	}

	info := VersionInfo{
		Version:     s,
		Major:       v.major,
		Minor:       v.minor,
		Patch:       -1,
		IsVersion30: v.minor == 0,
		IsVersion31: v.minor == 1,
	}
	if v.hasPatch {
		info.Patch = v.patch
	}
	return info, nil
}

// versionSupportMessage builds the unsupported-version detail, naming the
// offending major version so callers can pinpoint 2.0 (Swagger) inputs.
func versionSupportMessage(major, minor int) string {
	if major != 3 {
		return "major version " + strconv.Itoa(major) + " is not supported (only OpenAPI 3.0 and 3.1)"
	}
	return "version 3." + strconv.Itoa(minor) + " is not supported (only OpenAPI 3.0 and 3.1)"
}

// Features returns the feature support flags for this version.
// Every 2020-12 feature is available iff the document is 3.1.x.
func (v VersionInfo) Features() FeatureSupport {
	return FeatureSupport{
		Webhooks:              v.IsVersion31,
		TypeArrays:            v.IsVersion31,
		ConditionalSchemas:    v.IsVersion31,
		PrefixItems:           v.IsVersion31,
		UnevaluatedProperties: v.IsVersion31,
		ConstKeyword:          v.IsVersion31,
		ContainsKeyword:       v.IsVersion31,
		EnhancedDiscriminator: v.IsVersion31,
	}
}

// String returns the raw version string.
func (v VersionInfo) String() string {
	return v.Version
}
