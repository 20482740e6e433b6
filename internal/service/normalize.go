package service

import (
	"fmt"
	"sort"
	"strings"
)

// Answer normalization: all comparisons between submitted and reference
// answers go through these helpers so that case, surrounding whitespace and
// multi-select ordering never affect scoring.

// NormalizeText trims and lowercases a single answer string.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeList normalizes every element and sorts the result, giving
// order-independent equality for multi-select answers.
func NormalizeList(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = NormalizeText(v)
	}
	sort.Strings(out)
	return out
}

// NormalizeValue canonicalizes any answer shape into a comparable string.
// Strings are trimmed and lowercased; arrays are normalized element-wise and
// sorted; any other scalar is stringified first.
func NormalizeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return NormalizeText(val)
	case []string:
		return strings.Join(NormalizeList(val), "|")
	case []any:
		elems := make([]string, len(val))
		for i, e := range val {
			elems[i] = NormalizeValue(e)
		}
		sort.Strings(elems)
		return strings.Join(elems, "|")
	default:
		return NormalizeText(fmt.Sprintf("%v", val))
	}
}

// IsBlankValue reports whether a submitted answer is effectively empty:
// nil, a whitespace-only string, or an empty array.
func IsBlankValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}
