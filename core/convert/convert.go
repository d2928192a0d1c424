// Package convert implements the HTML-to-Markdown core of treemark.
// It walks a parsed HTML element tree depth-first, emitting a
// context-sensitive Markdown fragment per node, then runs a document-wide
// whitespace pass that shields fenced code blocks from mutation.
//
// The element tree is the read-only *html.Node tree produced by
// golang.org/x/net/html (as parsed by goquery); the converter never
// mutates it.
package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/treemark/core"
)

// Ensure Converter implements the pipeline interface at compile time.
var _ core.Converter = (*Converter)(nil)

// maxTreeDepth bounds recursion on degenerately deep inputs. Real
// documents stay far below this.
const maxTreeDepth = 512

// Converter converts parsed HTML trees into Markdown.
// It is immutable after construction and safe for concurrent use: the
// mutable ordered-list counter lives in per-call conversion state.
type Converter struct {
	opts Options
}

// New creates a Converter with the given options applied over defaults.
func New(opts ...Option) *Converter {
	return &Converter{opts: applyOptions(opts...)}
}

// Convert parses the HTML string and returns its Markdown rendering.
func (c *Converter) Convert(htmlSrc string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return "", fmt.Errorf("parsing HTML: empty document")
	}
	return c.ConvertNode(doc.Nodes[0])
}

// ConvertNode converts the subtree rooted at n. Document nodes are
// entered at their <body> element so parser-injected <head> content is
// never emitted.
func (c *Converter) ConvertNode(n *html.Node) (string, error) {
	if n.Type == html.DocumentNode {
		if body := findElement(n, "body"); body != nil {
			n = body
		}
	}
	cv := &conversion{opts: c.opts}
	raw, err := cv.visit(n, 0)
	if err != nil {
		return "", err
	}
	return normalizeDocument(raw), nil
}

// conversion is the mutable state of a single Convert call: the running
// ordered-list item counter. It is never shared across calls.
type conversion struct {
	opts    Options
	counter int
}

// visit produces the Markdown fragment for the subtree rooted at n.
// Every descendant is visited exactly once, in document order.
func (cv *conversion) visit(n *html.Node, depth int) (string, error) {
	if depth > maxTreeDepth {
		return "", fmt.Errorf("element tree deeper than %d levels", maxTreeDepth)
	}

	switch n.Type {
	case html.TextNode:
		return cv.textFragment(n), nil
	case html.ElementNode, html.DocumentNode:
		// handled below
	default:
		// Comments, doctypes and raw nodes contribute nothing.
		return "", nil
	}

	tag := nodeTag(n)
	if tag == "head" {
		// Parser-injected metadata subtree; its text must not leak.
		return "", nil
	}

	opening, known := cv.opening(n, tag)
	if !known {
		if err := cv.reportUnrecognized(tag); err != nil {
			return "", err
		}
	}

	children, err := cv.visitChildren(n, depth)
	if err != nil {
		return "", err
	}

	ending, _ := cv.ending(n, tag)

	// Emphasis markers hug the text: **bold**, not ** bold **.
	if isEmphasisTag(tag) && opening != "" {
		children = strings.TrimSpace(children)
	}

	return opening + children + ending, nil
}

// visitChildren concatenates the fragments of n's children, deleting
// separator spaces that would double up against the previous fragment.
func (cv *conversion) visitChildren(n *html.Node, depth int) (string, error) {
	var out strings.Builder
	prev := ""
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		frag, err := cv.visit(child, depth+1)
		if err != nil {
			return "", err
		}
		if frag == "" {
			continue
		}
		prevEndsInSpace := strings.HasSuffix(prev, " ")
		if frag == " " && prevEndsInSpace {
			// Doubled separator from adjacent inline elements.
			continue
		}
		if child.Type == html.TextNode && prevEndsInSpace && strings.HasPrefix(frag, " ") {
			// Local de-dup of whitespace introduced by markup collapsing.
			frag = frag[1:]
			if frag == "" {
				continue
			}
		}
		out.WriteString(frag)
		prev = frag
	}
	return out.String(), nil
}

// textFragment renders a text node. Outside code it is escaped and
// whitespace-collapsed; under a <code> parent it is passed through
// (verbatim for fenced blocks, trimmed and continuation-indented for the
// 4-space convention).
func (cv *conversion) textFragment(n *html.Node) string {
	if parentTag(n) == "code" {
		if cv.opts.GitHubCodeBlocks {
			return n.Data
		}
		return strings.ReplaceAll(strings.TrimSpace(n.Data), "\n", "\n    ")
	}
	return squeezeWhitespace(escapeMarkdown(n.Data))
}

// reportUnrecognized applies the error policy for tags without a rule.
func (cv *conversion) reportUnrecognized(tag string) error {
	if cv.opts.RaiseErrors {
		return &UnrecognizedTagError{Tag: tag}
	}
	if cv.opts.Logger != nil {
		cv.opts.Logger.Log(context.Background(), cv.opts.LogLevel,
			"skipping unrecognized tag", "tag", tag)
	}
	return nil
}
