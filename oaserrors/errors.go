// Package oaserrors provides structured error types for oasnorm.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - VersionError: missing, malformed, or unsupported openapi version strings
//   - StructuralError: malformed conditional, prefixItems, contains, const,
//     or webhook input within a schema subtree
//   - ConflictError: mutually exclusive keyword configurations
//   - SerializationError: values that cannot be canonically serialized
//   - ConfigError: invalid normalizer or cache configuration
//
// # Usage with errors.Is
//
//	result, err := normalizer.NormalizeDocument(doc)
//	if err != nil {
//	    var verErr *oaserrors.VersionError
//	    if errors.As(err, &verErr) {
//	        if verErr.IsUnsupported {
//	            // Handle unsupported version specifically
//	        }
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrVersion indicates a version detection failure.
	ErrVersion = errors.New("version error")

	// ErrMissingVersion indicates the document has no openapi field.
	ErrMissingVersion = errors.New("missing version")

	// ErrUnsupportedVersion indicates a version outside the 3.0/3.1 range.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrStructural indicates malformed schema structure.
	ErrStructural = errors.New("structural validation error")

	// ErrConflict indicates mutually exclusive keyword configurations.
	ErrConflict = errors.New("configuration conflict")

	// ErrSerialization indicates a value could not be canonically serialized.
	ErrSerialization = errors.New("serialization error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// VersionError represents a failure to detect or accept the document's
// OpenAPI version. Exactly one of the Is* flags is set.
type VersionError struct {
	// Version is the raw version string from the document (empty if missing)
	Version string
	// IsMissing is true if the document has no openapi field
	IsMissing bool
	// IsInvalidFormat is true if the version string is not major.minor(.patch)?(-prerelease)?
	IsInvalidFormat bool
	// IsUnsupported is true if the version parsed but is outside 3.0/3.1
	IsUnsupported bool
	// Message describes the failure
	Message string
}

// Error returns a human-readable error message.
func (e *VersionError) Error() string {
	msg := "version error"
	switch {
	case e.IsMissing:
		msg = "missing version"
	case e.IsInvalidFormat:
		msg = "invalid version format"
	case e.IsUnsupported:
		msg = "unsupported version"
	}
	if e.Version != "" {
		msg += fmt.Sprintf(": %q", e.Version)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as VersionError has no underlying cause.
func (e *VersionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
// Matches ErrVersion, and also ErrMissingVersion or ErrUnsupportedVersion
// when the appropriate flags are set.
func (e *VersionError) Is(target error) bool {
	if target == ErrVersion {
		return true
	}
	if target == ErrMissingVersion && e.IsMissing {
		return true
	}
	if target == ErrUnsupportedVersion && e.IsUnsupported {
		return true
	}
	return false
}

// StructuralError represents malformed schema input detected during a
// transformation pass. The pipeline aborts for the document; no partial
// output is produced.
type StructuralError struct {
	// Location is the JSON-Pointer style path to the offending node
	// (e.g., "/properties/pet/items")
	Location string
	// Keyword is the schema keyword that failed validation
	// Common values: "if", "prefixItems", "contains", "const", "webhooks", "nesting_depth"
	Keyword string
	// Message describes the structural problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *StructuralError) Error() string {
	msg := "structural validation error"
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.Keyword != "" {
		msg += " (" + e.Keyword + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// ConflictError represents mutually exclusive keyword configurations,
// such as prefixItems combined with an array-valued items, or
// additionalItems combined with items: false.
type ConflictError struct {
	// Location is the JSON-Pointer style path to the offending node
	Location string
	// Keywords are the conflicting keywords (e.g., ["prefixItems", "items"])
	Keywords []string
	// Message describes the conflict
	Message string
}

// Error returns a human-readable error message.
func (e *ConflictError) Error() string {
	msg := "configuration conflict"
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if len(e.Keywords) > 0 {
		msg += " between"
		for i, k := range e.Keywords {
			if i > 0 {
				msg += " and"
			}
			msg += " '" + k + "'"
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ConflictError has no underlying cause.
func (e *ConflictError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// SerializationError represents a value that could not be canonically
// serialized, such as a const value containing a cycle.
type SerializationError struct {
	// Location is the JSON-Pointer style path to the offending node
	Location string
	// Message describes the serialization failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SerializationError) Error() string {
	msg := "serialization error"
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SerializationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
