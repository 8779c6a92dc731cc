package nfa

import (
	"unicode"
)

// Zero-width anchors. None of them consume; cursor-aware ones narrow the
// possible-cursor set of the path instead.

// isWordChar follows Vim's default 'iskeyword': letters, digits and '_'.
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// StartOfWord matches where a keyword starts (Vim's \<).
type StartOfWord struct{}

// Match implements Matcher.
func (StartOfWord) Match(ctx *MatchContext, index int) Verdict {
	t := ctx.Text
	if index < 0 || index >= t.Len() || !isWordChar(t.CharAt(index)) {
		return Failure
	}
	if index > 0 && isWordChar(t.CharAt(index-1)) {
		return Failure
	}
	return Success(0)
}

// EndOfWord matches just after a keyword ends (Vim's \>).
type EndOfWord struct{}

// Match implements Matcher.
func (EndOfWord) Match(ctx *MatchContext, index int) Verdict {
	t := ctx.Text
	if index <= 0 || index > t.Len() || !isWordChar(t.CharAt(index-1)) {
		return Failure
	}
	if index < t.Len() && isWordChar(t.CharAt(index)) {
		return Failure
	}
	return Success(0)
}

// StartOfLine matches at the first column of a line (Vim's ^).
type StartOfLine struct{}

// Match implements Matcher.
func (StartOfLine) Match(ctx *MatchContext, index int) Verdict {
	if index == 0 || (index > 0 && index <= ctx.Text.Len() && ctx.Text.CharAt(index-1) == '\n') {
		return Success(0)
	}
	return Failure
}

// EndOfLine matches before a newline or at the end of text (Vim's $).
type EndOfLine struct{}

// Match implements Matcher.
func (EndOfLine) Match(ctx *MatchContext, index int) Verdict {
	n := ctx.Text.Len()
	if index == n || (index >= 0 && index < n && ctx.Text.CharAt(index) == '\n') {
		return Success(0)
	}
	return Failure
}

// StartOfFile matches at offset 0 (Vim's \%^).
type StartOfFile struct{}

// Match implements Matcher.
func (StartOfFile) Match(_ *MatchContext, index int) Verdict {
	if index == 0 {
		return Success(0)
	}
	return Failure
}

// EndOfFile matches at the end of the text (Vim's \%$).
type EndOfFile struct{}

// Match implements Matcher.
func (EndOfFile) Match(ctx *MatchContext, index int) Verdict {
	if index == ctx.Text.Len() {
		return Success(0)
	}
	return Failure
}

// Line matches at, before or after a 1-based line number (Vim's \%23l,
// \%<23l, \%>23l).
type Line struct {
	Line     int
	Relation Relation
}

// Match implements Matcher.
func (m Line) Match(ctx *MatchContext, index int) Verdict {
	if m.Relation.holds(ctx.Text.OffsetToPosition(index).Line+1, m.Line) {
		return Success(0)
	}
	return Failure
}

// Column matches at, before or after a 1-based column (Vim's \%23c,
// \%<23c, \%>23c). Columns count characters.
type Column struct {
	Column   int
	Relation Relation
}

// Match implements Matcher.
func (m Column) Match(ctx *MatchContext, index int) Verdict {
	if m.Relation.holds(ctx.Text.OffsetToPosition(index).Column+1, m.Column) {
		return Success(0)
	}
	return Failure
}

// Mark matches at, before or after the position of a named mark (Vim's
// \%'m, \%<'m, \%>'m). It fails when the mark is not set.
type Mark struct {
	Name     rune
	Relation Relation
}

// Match implements Matcher.
func (m Mark) Match(ctx *MatchContext, index int) Verdict {
	off, ok := ctx.Text.Mark(m.Name)
	if !ok || !m.Relation.holds(index, off) {
		return Failure
	}
	return Success(0)
}

// CursorLine matches on, above or below the line of a cursor (Vim's \%.l,
// \%<.l, \%>.l). With several cursors it keeps the ones the index is
// consistent with.
type CursorLine struct {
	Relation Relation
}

// Match implements Matcher.
func (m CursorLine) Match(ctx *MatchContext, index int) Verdict {
	line := ctx.Text.OffsetToPosition(index).Line
	var kept []int
	for _, c := range ctx.Cursors {
		if m.Relation.holds(line, ctx.Text.OffsetToPosition(c).Line) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return Failure
	}
	return SuccessWithCursors(kept)
}

// Cursor matches at the offset of a possible cursor (Vim's \%#) and narrows
// the possible cursors to that one.
type Cursor struct{}

// Match implements Matcher.
func (Cursor) Match(ctx *MatchContext, index int) Verdict {
	for _, c := range ctx.Cursors {
		if c == index {
			return SuccessWithCursors([]int{c})
		}
	}
	return Failure
}

// Visual matches inside the active selection (Vim's \%V).
type Visual struct{}

// Match implements Matcher.
func (Visual) Match(ctx *MatchContext, index int) Verdict {
	start, end, ok := ctx.Text.Selection()
	if ok && index >= start && index < end {
		return Success(0)
	}
	return Failure
}
