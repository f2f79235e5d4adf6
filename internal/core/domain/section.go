package domain

import "strings"

// Section is a numbered operative unit of a statute.
// Sections produced from one document are ordered by original position;
// their text spans are contiguous and non-overlapping.
type Section struct {
	// SectionID is the statute section number. It may carry letters or
	// hyphens ("15A", "231-B"); "root" marks the implicit whole-document
	// section when no headings were detected.
	SectionID string

	// Title is the heading text immediately following the number.
	Title string

	// Text spans from the heading to the start of the next heading
	// (or the end of the document), trimmed.
	Text string
}

// WordCount returns the number of whitespace-separated words in the section
// body. Used by the noise classifier's too-short heuristic.
func (s Section) WordCount() int {
	return len(strings.Fields(s.Text))
}
