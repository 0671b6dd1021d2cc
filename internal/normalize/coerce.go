// Package normalize converts raw candidate and job records, possibly missing
// or malformed, into the canonical profile types used by the scorers.
package normalize

import (
	"strconv"
	"strings"
)

// Confidence levels attached to repaired or inferred fields.
const (
	confidenceDefaulted = 0.3 // field absent, safe default substituted
	confidenceRepaired  = 0.5 // field present but malformed, partially recovered
	confidenceInferred  = 0.6 // field inferred from proxy answers
	confidenceLegacy    = 0.8 // field converted from a legacy shape
)

// asString extracts a trimmed string from a raw value, tolerating numbers.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		trimmed := strings.TrimSpace(s)
		return trimmed, trimmed != ""
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	default:
		return "", false
	}
}

// asFloat extracts a float from a raw value, tolerating numeric strings.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// asBool extracts a bool, tolerating "true"/"yes"/"1" style strings.
func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "oui", "1":
			return true, true
		case "false", "no", "non", "0":
			return false, true
		}
	case float64:
		return b != 0, true
	}
	return false, false
}

// asStringSlice extracts a list of non-empty strings from a raw array value.
// A bare string is treated as a single-element list.
func asStringSlice(v any) ([]string, bool) {
	switch list := v.(type) {
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := asString(item); ok {
				out = append(out, s)
			}
		}
		return out, len(out) > 0
	case []string:
		out := make([]string, 0, len(list))
		for _, s := range list {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, len(out) > 0
	case string:
		if trimmed := strings.TrimSpace(list); trimmed != "" {
			return []string{trimmed}, true
		}
	}
	return nil, false
}

// asMap extracts a nested object.
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && len(m) > 0
}

// firstPresent returns the first key of keys found in raw.
func firstPresent(raw map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// clampLevel clamps a proficiency or importance value to the 1..5 domain.
// Zero is preserved as the missing sentinel.
func clampLevel(n int) int {
	if n <= 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

// canonicalToken lowercases and snake-cases a categorical value so legacy
// spellings ("Full Remote", "full-remote") compare equal.
func canonicalToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
