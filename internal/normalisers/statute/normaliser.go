// Package statute normalises raw statute text scraped from OCR or plaintext
// dumps. Output is stable: normalising already-normalised text is a no-op.
package statute

import (
	"regexp"
	"strings"
)

// pageLinePattern matches lines that are purely a page marker,
// like "12", "Page 12" or "page 12 of 304".
var pageLinePattern = regexp.MustCompile(`(?i)^\s*(page\s*)?\d+\s*(of\s*\d+)?\s*$`)

// blankRunPattern matches runs of three or more newlines.
var blankRunPattern = regexp.MustCompile(`\n{3,}`)

// Normalize cleans raw document text:
//   - line endings unified to LF
//   - per-line surrounding whitespace stripped, internal runs collapsed to one space
//   - pure page-marker lines dropped
//   - runs of blank lines collapsed to a single blank line
//   - leading/trailing whitespace of the whole text trimmed
//
// Pure and deterministic; idempotent by construction.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			out = append(out, "")
			continue
		}
		if pageLinePattern.MatchString(stripped) {
			continue
		}
		// Fields splits on any Unicode whitespace, collapsing internal runs.
		out = append(out, strings.Join(strings.Fields(stripped), " "))
	}

	normalized := strings.Join(out, "\n")
	normalized = blankRunPattern.ReplaceAllString(normalized, "\n\n")
	return strings.TrimSpace(normalized)
}

// IsPageMarker reports whether a single line is purely a page marker.
// Shared with the segmenter's heading-candidacy filter.
func IsPageMarker(line string) bool {
	return pageLinePattern.MatchString(line)
}
