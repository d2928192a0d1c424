// Package render — PDF renderer.
// Converts Markdown into a styled PDF using gofpdf. Handles headings
// (variable font sizes), paragraphs, code blocks, and lists. Inline
// formatting is stripped rather than styled; PDF output is meant for
// reading, not for round-tripping.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/treemark/core"
)

// headingSizes maps Markdown heading levels to font point sizes.
var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

var numberedItemRegex = regexp.MustCompile(`^\d+\.\s`)

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, meta.Title, "", "L", false)
		pdf.Ln(4)
	}
	if meta.URL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, "Source: "+meta.URL, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	inCodeBlock := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		// Fences toggle code state; the fence line itself is not printed.
		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		switch {
		case inCodeBlock:
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, line, "", "L", true)

		case trimmed == "":
			pdf.Ln(3)

		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			text := strings.TrimSpace(strings.TrimLeft(line, "# "))
			renderHeading(pdf, text, level)

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			text := "• " + cleanInlineMarkdown(strings.TrimSpace(trimmed[2:]))
			pdf.MultiCell(0, 5, text, "", "L", false)

		case numberedItemRegex.MatchString(trimmed):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, cleanInlineMarkdown(trimmed), "", "L", false)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, cleanInlineMarkdown(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	size, ok := headingSizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

var (
	italicRegex = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	pdfLinkRe   = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	pdfCodeRe   = regexp.MustCompile("`([^`]+)`")
)

// cleanInlineMarkdown strips inline Markdown formatting for PDF output.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRegex.ReplaceAllString(text, " $1 ")
	text = pdfCodeRe.ReplaceAllString(text, "$1")
	text = pdfLinkRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
