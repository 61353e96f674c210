// Package strings provides string slice utilities shared across services.
package strings

import (
	"strings"
)

// DedupeAndTrimLower lowercases, trims, and deduplicates a slice, dropping
// empty elements. Order of first occurrence is preserved. Used to normalize
// externally supplied identifier lists such as language codes.
//
// Example:
//
//	DedupeAndTrimLower([]string{" FR ", "en", "fr", ""})
//	// Returns: []string{"fr", "en"}
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		normalized := strings.ToLower(strings.TrimSpace(v))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; !ok {
			seen[normalized] = struct{}{}
			result = append(result, normalized)
		}
	}

	return result
}
