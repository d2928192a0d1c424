// Package extract implements the Extractor interface.
// It isolates the main content of a full HTML page by:
//  1. Removing noise elements (scripts, chrome, embeds)
//  2. Picking the best content container (<main>, <article>, or <body>)
//
// Images are deliberately kept: the converter downstream has an <img>
// rule and turns them into Markdown image syntax.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are elements removed before extraction. They contribute
// no convertible content and would otherwise leak text or warnings out of
// the converter.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header", "aside",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// containerTags are tried in priority order when picking the content
// root. <main> is the most semantically precise, then <article>, then
// the whole <body>.
var containerTags = []string{"main", "article", "body"}

// ContentExtractor strips noise from HTML and returns the main content
// fragment.
type ContentExtractor struct {
	// ExtraNoise holds CSS selectors removed in addition to the built-in
	// noise set.
	ExtraNoise []string
}

// New creates a ContentExtractor with the default noise set.
func New() *ContentExtractor {
	return &ContentExtractor{}
}

// Extract takes raw HTML and returns a cleaned HTML fragment containing
// only the main content.
func (e *ContentExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	for _, sel := range e.ExtraNoise {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range containerTags {
		if sel := doc.Find(tag); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	// Inner HTML: the container element itself is chrome, not content,
	// and the converter has no rule for <main>/<article> wrappers.
	result, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return result, nil
}
