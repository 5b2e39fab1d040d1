package parser

import (
	"math"
	"strings"
)

// isExtensionKey reports whether a map key is a specification extension (x-*).
func isExtensionKey(k string) bool {
	return strings.HasPrefix(k, "x-")
}

// extractExtensionsFromMap collects x-* keys from a map into an extension map.
// Returns nil if no extensions found (not an empty map).
func extractExtensionsFromMap(m map[string]any) map[string]any {
	var extra map[string]any
	for k, v := range m {
		if isExtensionKey(k) {
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[k] = v
		}
	}
	return extra
}

// mapGetString extracts a string from m[key], or "" when absent.
func mapGetString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// mapGetBool extracts a bool from m[key], or false when absent.
func mapGetBool(m map[string]any, key string) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}

// mapGetStringSlice extracts a []string from m[key], handling the []any that
// yaml.Unmarshal / json.Unmarshal produce.
func mapGetStringSlice(m map[string]any, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// mapGetAnySlice extracts a []any from m[key].
func mapGetAnySlice(m map[string]any, key string) []any {
	v, ok := m[key]
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	return arr
}

// mapGetFloat64Ptr extracts a *float64 from m[key].
// Handles both float64 (from JSON) and int (from YAML) numeric values.
func mapGetFloat64Ptr(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case uint64:
		f := float64(n)
		return &f
	default:
		return nil
	}
}

// mapGetIntPtr extracts a *int from m[key].
// Handles both float64 (from JSON) and int (from YAML) numeric values.
// Non-integral floats return nil so the caller can treat them as absent.
func mapGetIntPtr(m map[string]any, key string) *int {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return nil
		}
		i := int(n)
		return &i
	case int:
		return &n
	case int64:
		i := int(n)
		return &i
	case uint64:
		if n > math.MaxInt {
			return nil
		}
		i := int(n)
		return &i
	default:
		return nil
	}
}

// mapGetCountPtr extracts a *int occurrence bound from m[key]. Unlike
// mapGetIntPtr it reports a present-but-non-integral value (2.5, "three")
// as invalid instead of treating it as absent, so the contains pass can
// reject the document.
func mapGetCountPtr(m map[string]any, key string) (*int, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return nil, true
		}
		i := int(n)
		return &i, false
	case int:
		return &n, false
	case int64:
		i := int(n)
		return &i, false
	case uint64:
		if n > math.MaxInt {
			return nil, true
		}
		i := int(n)
		return &i, false
	default:
		return nil, true
	}
}

// mapGetStringMap extracts a map[string]string from m[key].
func mapGetStringMap(m map[string]any, key string) map[string]string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	result := make(map[string]string, len(sub))
	for k, val := range sub {
		if s, ok := val.(string); ok {
			result[k] = s
		}
	}
	return result
}

// mapGetMap extracts a map[string]any from m[key].
func mapGetMap(m map[string]any, key string) map[string]any {
	v, ok := m[key]
	if !ok {
		return nil
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return sub
}
