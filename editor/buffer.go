package editor

import (
	"slices"
)

// Buffer is an immutable in-memory Provider backed by a rune slice.
//
// Line starts are indexed once at construction so OffsetToPosition is a
// binary search.
type Buffer struct {
	text       []rune
	lineStarts []int // offset of the first character of each line

	cursors  []int
	caret    int
	selStart int
	selEnd   int
	hasSel   bool
	marks    map[rune]int
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithCursors sets the active cursor offsets. The first cursor becomes the
// caret unless WithCaret is also given.
func WithCursors(offsets ...int) Option {
	return func(b *Buffer) {
		b.cursors = append([]int(nil), offsets...)
		if len(offsets) > 0 {
			b.caret = offsets[0]
		}
	}
}

// WithCaret sets the primary caret offset.
func WithCaret(offset int) Option {
	return func(b *Buffer) {
		b.caret = offset
	}
}

// WithSelection sets the active selection to the half-open range [start, end).
func WithSelection(start, end int) Option {
	return func(b *Buffer) {
		if end < start {
			start, end = end, start
		}
		b.selStart, b.selEnd, b.hasSel = start, end, true
	}
}

// WithMark sets a named mark.
func WithMark(name rune, offset int) Option {
	return func(b *Buffer) {
		b.marks[name] = offset
	}
}

// NewBuffer creates a Buffer over s.
// Without WithCursors the buffer has a single cursor at the caret.
func NewBuffer(s string, opts ...Option) *Buffer {
	b := &Buffer{
		text:  []rune(s),
		marks: make(map[rune]int),
	}
	b.lineStarts = append(b.lineStarts, 0)
	for i, r := range b.text {
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.cursors) == 0 {
		b.cursors = []int{b.caret}
	}
	return b
}

// Len returns the number of characters.
func (b *Buffer) Len() int {
	return len(b.text)
}

// CharAt returns the character at index i.
func (b *Buffer) CharAt(i int) rune {
	return b.text[i]
}

// OffsetToPosition maps an offset to its line and column.
func (b *Buffer) OffsetToPosition(i int) Position {
	if i < 0 {
		i = 0
	}
	if i > len(b.text) {
		i = len(b.text)
	}
	line, found := slices.BinarySearch(b.lineStarts, i)
	if !found {
		line--
	}
	return Position{Line: line, Column: i - b.lineStarts[line]}
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// Cursors returns a copy of the active cursor offsets.
func (b *Buffer) Cursors() []int {
	return append([]int(nil), b.cursors...)
}

// Caret returns the primary caret offset.
func (b *Buffer) Caret() int {
	return b.caret
}

// Selection returns the active selection.
func (b *Buffer) Selection() (start, end int, ok bool) {
	return b.selStart, b.selEnd, b.hasSel
}

// Mark looks up a named mark.
func (b *Buffer) Mark(name rune) (int, bool) {
	off, ok := b.marks[name]
	return off, ok
}

// String returns the buffer text.
func (b *Buffer) String() string {
	return string(b.text)
}
