package segmenter

import (
	"regexp"
	"strings"

	"github.com/legalease/legalease-cli/internal/normalisers/statute"
)

// schedulePattern matches vocabulary that marks schedules, annexes and other
// non-operative apparatus.
var schedulePattern = regexp.MustCompile(`(?i)\b(schedule|schedules|forms|tables?|index|fee chart|fees|appendix)\b`)

// footnotePattern matches amendment footnotes like "2 omitted by the Finance
// Act" that a line-anchored heading scan would otherwise read as headings.
var footnotePattern = regexp.MustCompile(`(?i)^\s*\d+\s*(ins\.|subs\.|omitted)\b`)

// footnotePrefixes are amendment-note openers checked against lowered titles.
var footnotePrefixes = []string{"ins.", "subs.", "omitted", "subs ", "ins "}

// maxTitleLength is the longest plausible heading; anything longer is body
// text that leaked into the title group.
const maxTitleLength = 120

// IsHeadingCandidate reports whether a matched title can plausibly be a real
// section heading. Shared by segmentation and title cleaning.
func IsHeadingCandidate(title string) bool {
	lowered := strings.ToLower(strings.TrimSpace(title))
	if lowered == "" {
		return false
	}
	if lowered == "sections" || lowered == "sections." {
		return false
	}
	if strings.HasPrefix(lowered, "of the ") || strings.HasPrefix(lowered, "of ") {
		return false
	}
	if footnotePattern.MatchString(title) {
		return false
	}
	for _, prefix := range footnotePrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return false
		}
	}
	if statute.IsPageMarker(title) {
		return false
	}
	return true
}

// CleanTitle reduces a raw heading to its display form: candidacy check, then
// cut at em/en dashes, at an inlined first sub-clause, and reject leftovers
// that are page markers, schedule vocabulary or implausibly long. The second
// return value is false when the title should be dropped entirely.
func CleanTitle(raw string) (string, bool) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", false
	}
	if !IsHeadingCandidate(title) {
		return "", false
	}

	for _, sep := range []string{"—", "–"} { // em dash, en dash
		if idx := strings.Index(title, sep); idx >= 0 {
			title = strings.TrimSpace(title[:idx])
		}
	}
	if idx := strings.Index(title, "-("); idx >= 0 {
		title = strings.TrimSpace(title[:idx])
	}
	if idx := strings.Index(title, "(1)"); idx >= 0 {
		title = strings.TrimSpace(title[:idx])
	}

	if statute.IsPageMarker(title) {
		return "", false
	}
	if schedulePattern.MatchString(title) {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(title), "page ") {
		return "", false
	}
	if len(title) > maxTitleLength {
		return "", false
	}
	return title, true
}
