// Package convert — read-only navigation helpers over the parsed tree.
package convert

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeTag returns the symbolic tag name used by the rule table. The
// document node follows the synthetic root rule.
func nodeTag(n *html.Node) string {
	if n.Type == html.DocumentNode {
		return "root"
	}
	return n.Data
}

// parentTag returns the tag of the element parent, or "" at the top.
func parentTag(n *html.Node) string {
	if n.Parent == nil || n.Parent.Type != html.ElementNode {
		return ""
	}
	return n.Parent.Data
}

// hasAncestor reports whether any proper ancestor element matches one of
// the given tags.
func hasAncestor(n *html.Node, tags ...string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		for _, tag := range tags {
			if p.Data == tag {
				return true
			}
		}
	}
	return false
}

// listDepth returns the indentation level of a list item: the number of
// enclosing <ol>/<ul> elements beyond the outermost one, so top-level
// items carry no leading whitespace.
func listDepth(n *html.Node) int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && (p.Data == "ol" || p.Data == "ul") {
			depth++
		}
	}
	if depth > 0 {
		depth--
	}
	return depth
}

// textContent returns the concatenated text of the subtree rooted at n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(m *html.Node) {
		if m.Type == html.TextNode {
			b.WriteString(m.Data)
			return
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// findElement returns the first element with the given tag in document
// order, or nil.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
