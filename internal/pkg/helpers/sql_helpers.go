package helpers

import "strings"

// NullIfBlank trims s and returns nil when nothing is left, so optional text
// columns store NULL rather than an empty string.
func NullIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ContainsPattern builds an ILIKE pattern matching term anywhere, escaping the
// LIKE wildcards it contains.
func ContainsPattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
