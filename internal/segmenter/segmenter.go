// Package segmenter splits normalised statute text into ordered sections and
// classifies non-substantive blocks (tables of contents, schedules,
// footnotes). Segmentation is a two-pass algorithm: generate candidate
// boundaries from each heading pattern independently, merge them by offset
// with an explicit tie-break, then apply a shared acceptance predicate.
package segmenter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

// The two heading patterns competing for section boundaries. Both anchor at
// line start. NBSP after the section keyword shows up in OCR'd statutes.
var (
	// numberHeadingPattern matches "12. Formation of contracts".
	numberHeadingPattern = regexp.MustCompile(`(?m)^\s*(?P<num>\d+[A-Za-z\-]*)\.\s+(?P<title>[^\n]+)$`)

	// wordHeadingPattern matches "Section 12. Formation" and the looser
	// "Sec 12: Formation" / "SECTION 12 Formation" forms.
	wordHeadingPattern = regexp.MustCompile(`(?mi)^\s*(section|sec\.?)[\s\x{00A0}]+(?P<num>\d+[A-Za-z\-]*)\s*[\.:\-]?\s*(?P<title>.*)$`)
)

// RootSectionID marks the implicit whole-document section emitted when no
// headings survive and the caller asked for the fallback.
const RootSectionID = "root"

type config struct {
	wholeDocumentFallback bool
}

// Option configures segmentation.
type Option func(*config)

// WithWholeDocumentFallback makes Segment return a single implicit section
// covering the whole document when no headings survive. The initial dataset
// build uses this so no document is ever lost; the cleanup path does not, so
// heading-free documents drop out entirely.
func WithWholeDocumentFallback() Option {
	return func(c *config) {
		c.wholeDocumentFallback = true
	}
}

// candidate is a potential section boundary before acceptance filtering.
type candidate struct {
	start   int
	pattern int // 0 = number pattern, 1 = word pattern; lower wins offset ties
	num     string
	title   string
}

// Segment extracts ordered sections from normalised text. Section text spans
// from each surviving heading to the next one (or end of document). Sections
// are contiguous and non-overlapping.
func Segment(text string, opts ...Option) []domain.Section {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	candidates := collectCandidates(text)
	accepted := mergeAndFilter(candidates)

	if len(accepted) == 0 {
		if cfg.wholeDocumentFallback {
			trimmed := strings.TrimSpace(text)
			if trimmed == "" {
				return nil
			}
			return []domain.Section{{SectionID: RootSectionID, Title: "", Text: trimmed}}
		}
		return nil
	}

	sections := make([]domain.Section, 0, len(accepted))
	for i, c := range accepted {
		end := len(text)
		if i+1 < len(accepted) {
			end = accepted[i+1].start
		}
		sections = append(sections, domain.Section{
			SectionID: c.num,
			Title:     strings.TrimSpace(c.title),
			Text:      strings.TrimSpace(text[c.start:end]),
		})
	}
	return sections
}

// collectCandidates gathers boundary candidates from both patterns, number
// pattern first so that stable sorting preserves its priority at equal
// offsets.
func collectCandidates(text string) []candidate {
	var out []candidate

	for _, m := range numberHeadingPattern.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, candidate{
			start:   m[0],
			pattern: 0,
			num:     group(text, m, numberHeadingPattern, "num"),
			title:   group(text, m, numberHeadingPattern, "title"),
		})
	}
	for _, m := range wordHeadingPattern.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, candidate{
			start:   m[0],
			pattern: 1,
			num:     group(text, m, wordHeadingPattern, "num"),
			title:   group(text, m, wordHeadingPattern, "title"),
		})
	}
	return out
}

// mergeAndFilter sorts candidates by position, deduplicates by start offset
// (first pattern wins ties) and drops candidates whose title fails the
// heading-candidacy predicate. A rejected candidate does not reserve its
// offset: a different pattern's match at the same position may still win.
func mergeAndFilter(candidates []candidate) []candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].pattern < candidates[j].pattern
	})

	seen := make(map[int]bool, len(candidates))
	accepted := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.start] {
			continue
		}
		if !IsHeadingCandidate(c.title) {
			continue
		}
		seen[c.start] = true
		accepted = append(accepted, c)
	}
	return accepted
}

// group extracts a named capture group from a FindAllStringSubmatchIndex
// match, trimmed.
func group(text string, match []int, re *regexp.Regexp, name string) string {
	for i, n := range re.SubexpNames() {
		if n != name {
			continue
		}
		lo, hi := match[2*i], match[2*i+1]
		if lo < 0 {
			return ""
		}
		return strings.TrimSpace(text[lo:hi])
	}
	return ""
}
