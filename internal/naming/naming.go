// Package naming provides shared string case conversion utilities.
//
// These functions are used by the webhook structurer to derive stable
// identifiers from media type strings and webhook names. As an internal
// package they are not part of the public API and may change without notice.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser performs proper Unicode title casing
// (strings.Title is deprecated).
var titleCaser = cases.Title(language.English, cases.NoLower)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash, plus, space) trigger
// capitalization of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s))

	capitalizeNext := true
	for _, r := range s {
		if isSeparator(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteString(titleCaser.String(string(r)))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// MediaTypeKey normalizes a media type string into a camelCase identifier
// usable as a JSON Schema property name. Every non-alphanumeric rune acts
// as a separator and is collapsed.
// Example: "application/json" -> "applicationJson"
// Example: "application/vnd.api+json" -> "applicationVndApiJson"
func MediaTypeKey(mediaType string) string {
	if mediaType == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(mediaType))

	capitalizeNext := false
	for _, r := range mediaType {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			capitalizeNext = result.Len() > 0
			continue
		}
		if capitalizeNext {
			result.WriteString(titleCaser.String(string(r)))
			capitalizeNext = false
		} else {
			result.WriteRune(unicode.ToLower(r))
		}
	}

	return result.String()
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', '/', '+', ' ':
		return true
	}
	return false
}
