// Package editor defines the read-only view of editor content that the
// simulation engine walks: characters, line/column decomposition, cursors,
// the active selection and named marks.
//
// The engine never writes through a Provider. Buffer is an in-memory
// implementation suitable for tests, fixtures and command-line tools.
package editor

import "strings"

// Position is a zero-based line/column pair. Column counts characters
// (runes) from the start of the line.
type Position struct {
	Line   int
	Column int
}

// Provider exposes subject text as a random-access sequence of characters
// together with the cursor state of the editor.
//
// All methods are synchronous queries. Offsets are character indices in
// [0, Len()].
type Provider interface {
	// Len returns the number of characters in the text.
	Len() int

	// CharAt returns the character at index i. i must be in [0, Len()).
	CharAt(i int) rune

	// OffsetToPosition decomposes an offset into a line and column.
	// An offset equal to Len() is valid and maps past the last character.
	OffsetToPosition(i int) Position

	// Cursors returns the offsets of all active cursors.
	Cursors() []int

	// Caret returns the offset of the primary caret.
	Caret() int

	// Selection returns the active selection as a half-open range.
	// ok is false when nothing is selected.
	Selection() (start, end int, ok bool)

	// Mark returns the offset of the named mark, if it is set.
	Mark(name rune) (offset int, ok bool)
}

// Slice materializes the characters in [start, end) as a string.
// Bounds are clamped to the text.
func Slice(p Provider, start, end int) string {
	if start < 0 {
		start = 0
	}
	if n := p.Len(); end > n {
		end = n
	}
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	for i := start; i < end; i++ {
		sb.WriteRune(p.CharAt(i))
	}
	return sb.String()
}

// LineStart returns the offset of the first character on the line that
// contains offset i.
func LineStart(p Provider, i int) int {
	return i - p.OffsetToPosition(i).Column
}
