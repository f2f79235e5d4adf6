package segmenter

import (
	"regexp"
	"strings"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

// tocLinePattern matches the "number, dot, text" shape of a table-of-contents
// entry ("15A. Power to call for information").
var tocLinePattern = regexp.MustCompile(`^\s*\d+[A-Za-z\-]*\.?\s+.+$`)

// numberedLinePattern matches a bare "digits, dot" list prefix.
var numberedLinePattern = regexp.MustCompile(`^\d+\.`)

// blankRunsPattern collapses runs of blank lines left behind by removal.
var blankRunsPattern = regexp.MustCompile(`\n{3,}`)

const (
	// tocScanWindow is how many leading non-empty lines are inspected.
	tocScanWindow = 20

	// tocLeadLines is how many leading lines may carry a TOC marker phrase.
	tocLeadLines = 5

	// tocLineRatio is the share of list-shaped lines that marks a TOC block.
	tocLineRatio = 0.6

	// minSubstantiveWords is the fewest words a real operative provision has
	// unless it carries a "(1)" sub-clause marker.
	minSubstantiveWords = 25
)

// isSectionsMarker reports whether a line is the literal standalone
// "sections" heading that introduces an embedded table of contents.
func isSectionsMarker(line string) bool {
	lowered := strings.ToLower(strings.TrimSpace(line))
	return lowered == "sections" || lowered == "sections."
}

// IsTOCBlock reports whether a text block looks like a table of contents
// rather than operative legal text.
func IsTOCBlock(text string) bool {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if stripped := strings.TrimSpace(ln); stripped != "" {
			lines = append(lines, stripped)
		}
	}
	if len(lines) == 0 {
		return true
	}

	lead := lines
	if len(lead) > tocLeadLines {
		lead = lead[:tocLeadLines]
	}
	for _, ln := range lead {
		if strings.Contains(strings.ToLower(ln), "table of contents") {
			return true
		}
	}

	if len(lines) >= 6 {
		window := len(lines)
		if window > tocScanWindow {
			window = tocScanWindow
		}
		tocLike := 0
		for _, ln := range lines[:window] {
			if tocLinePattern.MatchString(ln) {
				tocLike++
			}
		}
		if float64(tocLike)/float64(window) >= tocLineRatio {
			return true
		}
	}

	for _, ln := range lead {
		if isSectionsMarker(ln) {
			window := len(lines)
			if window > tocScanWindow {
				window = tocScanWindow
			}
			numbered := 0
			for _, scanned := range lines[:window] {
				if numberedLinePattern.MatchString(scanned) {
					numbered++
				}
			}
			if numbered >= 5 {
				return true
			}
		}
	}
	return false
}

// IsNonSubstantive reports whether a section carries no operative legal text:
// a bare "sections" heading, schedule/appendix apparatus, an embedded table
// of contents, or a body too short to be a real provision.
func IsNonSubstantive(sec domain.Section) bool {
	if isSectionsMarker(sec.Title) {
		return true
	}
	if schedulePattern.MatchString(sec.Title + " " + sec.Text) {
		return true
	}
	if IsTOCBlock(sec.Text) {
		return true
	}
	if sec.WordCount() < minSubstantiveWords && !strings.Contains(sec.Text, "(1)") {
		return true
	}
	return false
}

// RemoveTOCBlocks strips embedded tables of contents that a line-anchored
// heading scan would misread as real section boundaries. A standalone
// "sections" line enters skip mode; blank and list-shaped lines are discarded
// until the first line that is neither, which is kept.
func RemoveTOCBlocks(text string) string {
	var out []string
	skipping := false

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if isSectionsMarker(stripped) {
			skipping = true
			continue
		}
		if skipping {
			if stripped == "" {
				continue
			}
			if tocLinePattern.MatchString(stripped) {
				continue
			}
			skipping = false
		}
		out = append(out, line)
	}

	cleaned := strings.Join(out, "\n")
	cleaned = blankRunsPattern.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
