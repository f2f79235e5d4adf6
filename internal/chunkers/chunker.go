// Package chunkers provides the two interchangeable strategies for splitting
// section text into bounded-size chunks: a character window with overlap, and
// greedy token-budget packing with short-tail merging. Both are pure and
// deterministic.
package chunkers

// Piece is one emitted chunk with its span inside the source text.
// Offsets are rune positions; strategies that do not track spans set both
// to -1.
type Piece struct {
	Start int
	End   int
	Text  string
}

// Chunker splits text into bounded-size pieces.
type Chunker interface {
	// Name identifies the strategy for logging and configuration.
	Name() string

	// Chunk splits the text. Emitted pieces are ordered by position and
	// never empty after trimming.
	Chunk(text string) ([]Piece, error)
}
