package parser

import "strings"

// Normalize prepares raw instruction text for classification and
// extraction: surrounding whitespace is trimmed and the text is
// lower-cased. Pure function, no failure modes.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
