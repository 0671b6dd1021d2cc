package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nexten/smartmatch/internal/types"
)

// salaryRangePattern matches legacy textual ranges such as "45k-55k",
// "45000 - 55000", or "45K€".
var salaryRangePattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*k?\s*[€$]?\s*(?:-|to|à)?\s*(\d+(?:[.,]\d+)?)?\s*k?\s*[€$]?`)

// parseSalary converts a raw salary value into a SalaryRange. Supported
// shapes: {"min": n, "max": n} objects, bare numbers (treated as a point
// range), and legacy strings like "45k-55k". Returns nil and false when the
// value is absent or unrecoverable.
func parseSalary(v any) (*types.SalaryRange, bool) {
	switch s := v.(type) {
	case map[string]any:
		r := &types.SalaryRange{}
		if min, ok := asFloat(s["min"]); ok {
			r.Min = min
		}
		if max, ok := asFloat(s["max"]); ok {
			r.Max = max
		}
		if r.Min == 0 && r.Max == 0 {
			return nil, false
		}
		if r.Max != 0 && r.Max < r.Min {
			r.Min, r.Max = r.Max, r.Min
		}
		return r, true
	case float64:
		if s <= 0 {
			return nil, false
		}
		return &types.SalaryRange{Min: s, Max: s}, true
	case int:
		if s <= 0 {
			return nil, false
		}
		return &types.SalaryRange{Min: float64(s), Max: float64(s)}, true
	case string:
		return parseSalaryString(s)
	default:
		return nil, false
	}
}

// parseSalaryString recovers a range from legacy free-text salary fields.
func parseSalaryString(s string) (*types.SalaryRange, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	m := salaryRangePattern.FindStringSubmatch(s)
	if m == nil || m[1] == "" {
		return nil, false
	}

	min, ok := parseSalaryNumber(m[1], s)
	if !ok {
		return nil, false
	}
	max := min
	if m[2] != "" {
		if v, ok := parseSalaryNumber(m[2], s); ok {
			max = v
		}
	}
	if max < min {
		min, max = max, min
	}
	return &types.SalaryRange{Min: min, Max: max}, true
}

// parseSalaryNumber parses one numeric token, applying the "k" multiplier
// when the source string uses thousands shorthand.
func parseSalaryNumber(token, source string) (float64, bool) {
	token = strings.ReplaceAll(token, ",", ".")
	n, err := strconv.ParseFloat(token, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	// "45k" style shorthand; plain "45000" needs no multiplier.
	if n < 1000 && strings.ContainsAny(strings.ToLower(source), "k") {
		n *= 1000
	}
	return n, true
}
