package chunkers

import (
	"fmt"
	"strings"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

// Default sliding-window parameters, sized for embedding passages.
const (
	DefaultWindowSize    = 1200
	DefaultWindowOverlap = 200
)

// spaceBreakRatio is how far into the window a space must sit before it is
// accepted as a break point. Breaking earlier would produce degenerate tiny
// chunks on space-sparse text, so the hard cut is kept instead.
const spaceBreakRatio = 0.6

// Window is the character-based sliding-window strategy. Spans are reported
// in rune offsets so Urdu text chunks the same way ASCII does.
type Window struct {
	size    int
	overlap int
}

var _ Chunker = (*Window)(nil)

// NewWindow creates a sliding-window chunker. The size must be positive and
// the overlap must be smaller than the size.
func NewWindow(size, overlap int) (*Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be > 0, got %d", domain.ErrInvalidInput, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: overlap must be in [0, %d), got %d", domain.ErrInvalidInput, size, overlap)
	}
	return &Window{size: size, overlap: overlap}, nil
}

// Name implements Chunker.
func (w *Window) Name() string { return "window" }

// Chunk slides a window of w.size runes across the text. When the window's
// right edge falls short of the end, the cut moves back to the last space in
// the window provided that space lies past spaceBreakRatio of the window.
// Each emitted piece is trimmed; empty pieces are skipped but still advance
// the window. Consecutive pieces overlap by at most w.overlap runes.
func (w *Window) Chunk(text string) ([]Piece, error) {
	runes := []rune(text)
	length := len(runes)

	var pieces []Piece
	start := 0
	for start < length {
		end := start + w.size
		if end > length {
			end = length
		}
		if end < length {
			if lastSpace := lastSpaceIndex(runes[start:end]); float64(lastSpace) > float64(w.size)*spaceBreakRatio {
				end = start + lastSpace
			}
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			pieces = append(pieces, Piece{Start: start, End: end, Text: chunk})
		}
		if end >= length {
			break
		}
		next := end - w.overlap
		if next <= start {
			// A space break near the left edge can pull end-overlap back to
			// the current start; the window must still advance.
			next = start + 1
		}
		start = next
	}
	return pieces, nil
}

// lastSpaceIndex returns the index of the last plain space in the window,
// or -1 when there is none.
func lastSpaceIndex(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == ' ' {
			return i
		}
	}
	return -1
}
