package provider

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// stripPolicy removes all markup, leaving text content only
var stripPolicy = bluemonday.StrictPolicy()

// PrepareText strips markup, normalizes whitespace and truncates the
// result to maxChars so it fits the provider's input budget. Truncation
// is rune-safe. maxChars <= 0 disables truncation.
func PrepareText(s string, maxChars int) string {
	s = stripPolicy.Sanitize(s)
	// Sanitize escapes entities in its output; undo that so the model
	// sees plain text
	s = html.UnescapeString(s)
	s = strings.Join(strings.Fields(s), " ")

	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}

// TruncateText shortens text to at most maxChars runes, appending an
// ellipsis when it cuts. Used for prompt excerpts and references.
func TruncateText(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return strings.TrimSpace(string(runes[:maxChars])) + "..."
}
