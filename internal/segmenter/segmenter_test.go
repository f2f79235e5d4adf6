package segmenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	t.Run("splits on numbered headings", func(t *testing.T) {
		text := "1. Short title\nThis Act may be called the Contract Act.\n\n2. Definitions\nIn this Act unless the context otherwise requires."
		sections := Segment(text)
		require.Len(t, sections, 2)

		assert.Equal(t, "1", sections[0].SectionID)
		assert.Equal(t, "Short title", sections[0].Title)
		assert.Contains(t, sections[0].Text, "This Act may be called")

		assert.Equal(t, "2", sections[1].SectionID)
		assert.Equal(t, "Definitions", sections[1].Title)
	})

	t.Run("splits on word headings", func(t *testing.T) {
		text := "Section 10. Recovery of dues\nArrears shall be recovered as arrears of land revenue.\nSEC 11: Appeals\nAny person aggrieved may prefer an appeal."
		sections := Segment(text)
		require.Len(t, sections, 2)

		assert.Equal(t, "10", sections[0].SectionID)
		assert.Equal(t, "Recovery of dues", sections[0].Title)
		assert.Equal(t, "11", sections[1].SectionID)
		assert.Equal(t, "Appeals", sections[1].Title)
	})

	t.Run("letter suffixed section numbers", func(t *testing.T) {
		text := "15A. Power to call for information\nThe Commission may call for information from any company."
		sections := Segment(text)
		require.Len(t, sections, 1)
		assert.Equal(t, "15A", sections[0].SectionID)
	})

	t.Run("sections are contiguous and non overlapping", func(t *testing.T) {
		text := "1. One\nfirst body\n2. Two\nsecond body\n3. Three\nthird body"
		sections := Segment(text)
		require.Len(t, sections, 3)
		assert.Contains(t, sections[0].Text, "first body")
		assert.NotContains(t, sections[0].Text, "second body")
		assert.Contains(t, sections[1].Text, "second body")
		assert.NotContains(t, sections[1].Text, "third body")
	})

	t.Run("rejects footnote shaped headings", func(t *testing.T) {
		text := "1. Short title\nbody text here\n2 omitted by the Finance Act, 2010\nmore text"
		sections := Segment(text)
		require.Len(t, sections, 1)
		assert.Equal(t, "1", sections[0].SectionID)
	})

	t.Run("rejects continuation titles", func(t *testing.T) {
		text := "5. of the said Act\nnot a real heading"
		sections := Segment(text)
		assert.Empty(t, sections)
	})

	t.Run("no headings without fallback yields nothing", func(t *testing.T) {
		assert.Empty(t, Segment("plain prose with no headings at all"))
	})

	t.Run("whole document fallback", func(t *testing.T) {
		sections := Segment("plain prose with no headings at all", WithWholeDocumentFallback())
		require.Len(t, sections, 1)
		assert.Equal(t, RootSectionID, sections[0].SectionID)
		assert.Equal(t, "", sections[0].Title)
		assert.Equal(t, "plain prose with no headings at all", sections[0].Text)
	})

	t.Run("fallback on empty text yields nothing", func(t *testing.T) {
		assert.Empty(t, Segment("   ", WithWholeDocumentFallback()))
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		text := "1. One\nbody one\nSection 2. Two\nbody two"
		first := Segment(text)
		second := Segment(text)
		assert.Equal(t, first, second)
	})
}
