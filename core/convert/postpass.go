// Package convert — the document normalizer.
// Runs once on the full raw fragment: fenced code blocks are extracted to
// content-addressed placeholders, every other line gets the whitespace
// pass, blank-line runs are collapsed, and the blocks are reinserted
// verbatim. Extraction before collapsing is what guarantees code interior
// whitespace survives untouched.
package convert

import (
	"crypto/md5"
	"fmt"
	"regexp"
	"strings"
)

var (
	// fencedBlock matches one triple-backtick delimited block, newlines
	// included. Lazy matching pairs each opening fence with the nearest
	// closing one so blocks never overlap.
	fencedBlock = regexp.MustCompile("(?s)```.*?```")

	// newlineRun matches three or more consecutive newlines.
	newlineRun = regexp.MustCompile(`\n{3,}`)
)

// normalizeDocument is the final text-level pass over the document
// fragment returned by the transducer.
func normalizeDocument(raw string) string {
	// 1. Protect fenced code blocks. Fingerprints are content hashes, so
	// byte-identical blocks safely share one table entry.
	blocks := make(map[string]string)
	protected := fencedBlock.ReplaceAllStringFunc(raw, func(block string) string {
		token := fmt.Sprintf("{code-block-extraction-%x}", md5.Sum([]byte(block)))
		blocks[token] = block
		return token
	})

	// 2. Per-line whitespace pass.
	lines := strings.Split(protected, "\n")
	for i, line := range lines {
		lines[i] = normalizeLine(line)
	}

	// 3. Rejoin and collapse: at most one blank line between blocks.
	out := strings.Join(lines, "\n")
	out = newlineRun.ReplaceAllString(out, "\n\n")

	// 4. Restore protected blocks.
	for token, block := range blocks {
		out = strings.ReplaceAll(out, token, block)
	}
	return out
}

// normalizeLine applies the per-line rules: 4-space or tab indented code
// lines pass through untouched, a 2-3 space indent survives as exactly
// two spaces (soft continuation), internal whitespace is squeezed, and a
// trailing run of 2+ spaces is preserved as the 2-space hard line break.
func normalizeLine(line string) string {
	if strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
		return line
	}
	soft := strings.HasPrefix(line, "  ")
	hard := strings.HasSuffix(line, "  ")
	normalized := strings.TrimSpace(squeezeWhitespace(line))
	if normalized == "" {
		return ""
	}
	if soft {
		normalized = "  " + normalized
	}
	if hard {
		normalized += "  "
	}
	return normalized
}
