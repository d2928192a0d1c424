// Package convert — text utilities shared by the transducer and the
// document normalizer.
package convert

import (
	"regexp"
	"strings"
)

// whitespaceRun matches any run of spaces, tabs and newlines.
var whitespaceRun = regexp.MustCompile(`[ \t\r\n]+`)

// escapeMarkdown backslash-escapes characters that would otherwise start
// emphasis syntax in running text.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "*", `\*`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// squeezeWhitespace flattens tabs and newlines to spaces and collapses
// consecutive whitespace to a single space.
func squeezeWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}
