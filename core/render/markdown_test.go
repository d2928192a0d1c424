package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/treemark/core"
)

func TestMarkdownRenderer_Passthrough(t *testing.T) {
	r := NewMarkdownRenderer()
	out, err := r.Render("# Title\n\nbody\n", core.PageMetadata{Title: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody\n", string(out))
}

func TestMarkdownRenderer_FrontMatter(t *testing.T) {
	r := &MarkdownRenderer{FrontMatter: true}
	meta := core.PageMetadata{
		Title:     "A \"quoted\" title",
		URL:       "https://example.com/a",
		FetchedAt: "2026-08-23T00:00:00Z",
	}

	out, err := r.Render("body\n", meta)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, len(s) > 0 && s[0] == '-')
	assert.Contains(t, s, "title: \"A \\\"quoted\\\" title\"\n")
	assert.Contains(t, s, "source: https://example.com/a\n")
	assert.Contains(t, s, "fetched_at: 2026-08-23T00:00:00Z\n")
	assert.Contains(t, s, "---\n\nbody\n")
}

func TestMarkdownRenderer_FrontMatterSkipsEmptyFields(t *testing.T) {
	r := &MarkdownRenderer{FrontMatter: true}
	out, err := r.Render("x", core.PageMetadata{URL: "https://e.com"})
	require.NoError(t, err)

	s := string(out)
	assert.NotContains(t, s, "title:")
	assert.NotContains(t, s, "fetched_at:")
	assert.Contains(t, s, "source: https://e.com\n")
}

func TestMarkdownRenderer_Extension(t *testing.T) {
	assert.Equal(t, ".md", NewMarkdownRenderer().Extension())
}
