// Package render provides output renderers for the treemark pipeline.
// This file implements the Markdown renderer. Markdown is already the
// canonical pipeline format, so rendering is a passthrough with an
// optional front matter header carrying the page metadata.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/treemark/core"
)

// MarkdownRenderer writes Markdown as-is, optionally prefixed with a
// YAML front matter block built from the page metadata.
type MarkdownRenderer struct {
	FrontMatter bool
}

// NewMarkdownRenderer creates a MarkdownRenderer without front matter.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes.
func (r *MarkdownRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	if !r.FrontMatter {
		return []byte(markdown), nil
	}

	var b strings.Builder
	b.WriteString("---\n")
	if meta.Title != "" {
		fmt.Fprintf(&b, "title: %q\n", meta.Title)
	}
	if meta.URL != "" {
		fmt.Fprintf(&b, "source: %s\n", meta.URL)
	}
	if meta.FetchedAt != "" {
		fmt.Fprintf(&b, "fetched_at: %s\n", meta.FetchedAt)
	}
	b.WriteString("---\n\n")
	b.WriteString(markdown)
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
