package domain

import "fmt"

// ChunkRecord is one embeddable unit of a built dataset. Records are created
// once per pipeline run and never mutated; a re-run regenerates the full
// dataset. JSON tags match the persisted dataset format.
type ChunkRecord struct {
	DocID        string `json:"doc_id"`
	LawName      string `json:"law_name"`
	Domain       string `json:"domain"`
	Jurisdiction string `json:"jurisdiction"`
	Source       string `json:"source"`
	Language     string `json:"language"`
	SectionID    string `json:"section_id"`
	SectionTitle string `json:"section_title"`
	ChunkID      string `json:"chunk_id"`
	ChunkIndex   int    `json:"chunk_index"`

	// ChunkCharStart/End are rune offsets of the chunk within its section
	// text. Only the sliding-window build path records them; the token-budget
	// clean path omits them.
	ChunkCharStart *int `json:"chunk_char_start,omitempty"`
	ChunkCharEnd   *int `json:"chunk_char_end,omitempty"`

	Text string `json:"text"`
}

// DeriveChunkID builds the deterministic chunk identifier. It is unique
// within a dataset because chunk indexes are unique per (doc, section) pair.
func DeriveChunkID(docID, sectionID string, chunkIndex int) string {
	return fmt.Sprintf("%s::sec-%s::chunk-%d", docID, sectionID, chunkIndex)
}

// Validate checks the record shape at stage boundaries.
func (r ChunkRecord) Validate() error {
	if r.DocID == "" {
		return fmt.Errorf("%w: chunk record missing doc_id", ErrInvalidInput)
	}
	if r.ChunkID == "" {
		return fmt.Errorf("%w: chunk record missing chunk_id", ErrInvalidInput)
	}
	if r.ChunkIndex < 0 {
		return fmt.Errorf("%w: chunk record %s has negative chunk_index", ErrInvalidInput, r.ChunkID)
	}
	if r.Text == "" {
		return fmt.Errorf("%w: chunk record %s has empty text", ErrInvalidInput, r.ChunkID)
	}
	return nil
}

// Metadata reduces the record to the fields stored alongside the vector index.
func (r ChunkRecord) Metadata() ChunkMetadata {
	return ChunkMetadata{
		ChunkID:      r.ChunkID,
		LawName:      r.LawName,
		Domain:       r.Domain,
		Jurisdiction: r.Jurisdiction,
		SectionID:    r.SectionID,
		SectionTitle: r.SectionTitle,
		Text:         r.Text,
	}
}

// ChunkMetadata is the minimal per-chunk record persisted next to the
// embedding artifact. Position i in the metadata array refers to the same
// chunk as row i of the embedding matrix; that alignment is the sole linkage.
type ChunkMetadata struct {
	ChunkID      string `json:"chunk_id"`
	LawName      string `json:"law_name"`
	Domain       string `json:"domain"`
	Jurisdiction string `json:"jurisdiction"`
	SectionID    string `json:"section_id"`
	SectionTitle string `json:"section_title"`
	Text         string `json:"text"`
}
