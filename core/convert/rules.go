// Package convert — the per-tag rule table.
// opening and ending map one HTML element to the Markdown emitted before
// and after its children. The tag set is closed; anything outside it is
// an unrecognized-tag condition handled by the caller.
package convert

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// opening returns the fragment emitted before an element's children and
// whether the tag has a rule at all. This is the only place conversion
// state mutates: <ol> resets the item counter, <li> under <ol> bumps it.
func (cv *conversion) opening(n *html.Node, tag string) (string, bool) {
	switch tag {
	case "html", "body", "pre":
		return "", true
	case "li":
		indent := strings.Repeat("  ", listDepth(n))
		if parentTag(n) == "ol" {
			cv.counter++
			return indent + strconv.Itoa(cv.counter) + ". ", true
		}
		return indent + "- ", true
	case "ol":
		cv.counter = 0
		return "\n", true
	case "ul", "root":
		return "\n", true
	case "div":
		if class := dom.GetAttributeOr(n, "class", ""); class != "" {
			return "\n<div markdown=\"1\" class=\"" + class + "\">\n", true
		}
		return "\n", true
	case "p":
		if hasAncestor(n, "blockquote") {
			return "\n\n> ", true
		}
		if isFirstContentChild(n) {
			return "", true
		}
		return "\n\n", true
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(tag[1] - '0')
		return "\n" + strings.Repeat("#", level) + " ", true
	case "em", "i":
		return cv.emphasisMarker(n, "*", "%%em%%", "em", "i"), true
	case "strong", "b":
		return cv.emphasisMarker(n, "**", "%%b%%", "strong", "b"), true
	case "blockquote":
		return "> ", true
	case "code":
		return " " + cv.codeMarker(n), true
	case "a":
		if isUsableLink(n) {
			return " [", true
		}
		return " ", true
	case "img":
		return " ![", true
	case "hr":
		return "\n* * *\n", true
	case "br":
		return "  \n", true
	}
	return "", false
}

// ending returns the fragment emitted after an element's children.
// It never mutates conversion state, so the emphasis and code markers
// computed here mirror the ones from opening exactly.
func (cv *conversion) ending(n *html.Node, tag string) (string, bool) {
	switch tag {
	case "html", "body", "pre":
		return "", true
	case "li", "ol", "ul", "root", "blockquote":
		return "\n", true
	case "div":
		if dom.GetAttributeOr(n, "class", "") != "" {
			return "\n</div>\n", true
		}
		return "\n", true
	case "p":
		return "\n\n", true
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "\n", true
	case "em", "i":
		return cv.emphasisMarker(n, "*", "%%em%%", "em", "i"), true
	case "strong", "b":
		return cv.emphasisMarker(n, "**", "%%b%%", "strong", "b"), true
	case "code":
		return cv.codeMarker(n) + " ", true
	case "a":
		if isUsableLink(n) {
			href := dom.GetAttributeOr(n, "href", "")
			return "](" + href + attrTitle(n) + ")", true
		}
		return "", true
	case "img":
		alt := dom.GetAttributeOr(n, "alt", "")
		src := dom.GetAttributeOr(n, "src", "")
		return alt + "](" + src + attrTitle(n) + ") ", true
	case "hr", "br":
		return "", true
	}
	return "", false
}

// emphasisMarker returns the delimiter pair member for an emphasis-family
// element. Blank text or a redundant same-family ancestor emits nothing;
// inside a code span a placeholder marker is used so literal asterisks
// are not parsed as Markdown by downstream renderers.
func (cv *conversion) emphasisMarker(n *html.Node, marker, codeMarker string, family ...string) string {
	if strings.TrimSpace(textContent(n)) == "" {
		return ""
	}
	if hasAncestor(n, family...) {
		return ""
	}
	if parentTag(n) == "code" {
		return codeMarker
	}
	return marker
}

// codeMarker picks the delimiter for a <code> element: a fence or the
// 4-space indent convention when it renders as a block, otherwise a
// single backtick for an inline span.
func (cv *conversion) codeMarker(n *html.Node) string {
	if cv.isBlockCode(n) {
		if cv.opts.GitHubCodeBlocks {
			return "\n```\n"
		}
		return "\n    "
	}
	return "`"
}

// leadingBlankLine matches code text whose first line is blank.
var leadingBlankLine = regexp.MustCompile(`^[ \t]*\n`)

// isBlockCode reports whether a <code> element renders as a block: its
// parent is <pre>, or implicit detection is on and the text starts with a
// blank line or exceeds the configured length threshold.
func (cv *conversion) isBlockCode(n *html.Node) bool {
	if parentTag(n) == "pre" {
		return true
	}
	if !cv.opts.ImplicitCodeBlocks {
		return false
	}
	text := textContent(n)
	return leadingBlankLine.MatchString(text) || len(text) > cv.opts.ImplicitCodeLength
}

// isUsableLink reports whether an <a> renders as a Markdown link: it
// needs non-blank text and a non-blank, non-fragment href.
func isUsableLink(n *html.Node) bool {
	if strings.TrimSpace(textContent(n)) == "" {
		return false
	}
	href := dom.GetAttributeOr(n, "href", "")
	return href != "" && !strings.HasPrefix(href, "#")
}

// attrTitle renders the optional ` "title"` suffix for links and images.
func attrTitle(n *html.Node) string {
	if title := dom.GetAttributeOr(n, "title", ""); title != "" {
		return " \"" + title + "\""
	}
	return ""
}

// isEmphasisTag reports membership in either emphasis family.
func isEmphasisTag(tag string) bool {
	switch tag {
	case "em", "i", "strong", "b":
		return true
	}
	return false
}

// isFirstContentChild implements the leading-blank suppression for the
// first paragraph directly under <html>/<body>: previous siblings are
// walked backward, skipping pure text nodes and nodes with blank content.
func isFirstContentChild(n *html.Node) bool {
	switch parentTag(n) {
	case "html", "body":
	default:
		return false
	}
	for prev := n.PrevSibling; prev != nil; prev = prev.PrevSibling {
		if prev.Type == html.TextNode {
			continue
		}
		if strings.TrimSpace(textContent(prev)) == "" {
			continue
		}
		return false
	}
	return true
}
