package nfa

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"

	"github.com/coregx/vimregex/editor"
)

func ctxFor(text editor.Provider) *MatchContext {
	return &MatchContext{Text: text, Groups: NewGroups(1), Cursors: text.Cursors()}
}

// accepts lists the indices in [0, Len] at which m succeeds.
func accepts(m Matcher, ctx *MatchContext) []int {
	var out []int
	for i := 0; i <= ctx.Text.Len(); i++ {
		if m.Match(ctx, i).OK() {
			out = append(out, i)
		}
	}
	return out
}

func TestChar(t *testing.T) {
	ctx := ctxFor(buf("aAb"))

	assert.Equal(t, []int{0}, accepts(Char{R: 'a'}, ctx))
	assert.Equal(t, []int{0, 1}, accepts(Char{R: 'a', IgnoreCase: true}, ctx))
	assert.Equal(t, 1, Char{R: 'a'}.Match(ctx, 0).Consumed())

	ctx.CaseInsensitive = true
	assert.Equal(t, []int{0, 1}, accepts(Char{R: 'A'}, ctx))
}

func TestCollection(t *testing.T) {
	tests := []struct {
		name string
		m    *Collection
		text string
		ci   bool
		want []int
	}{
		{"chars", &Collection{Chars: []rune{'a', 'c'}}, "abc", false, []int{0, 2}},
		{"range", &Collection{Ranges: []RuneRange{{'0', '9'}}}, "a1b2", false, []int{1, 3}},
		{"class", &Collection{Classes: []*unicode.RangeTable{unicode.Upper}}, "aBcD", false, []int{1, 3}},
		{"negated", &Collection{Chars: []rune{'a'}, Negated: true}, "aba", false, []int{1}},
		{"newline excluded", &Collection{Chars: []rune{'\n'}}, "a\nb", false, nil},
		{"negated excludes newline", &Collection{Chars: []rune{'a'}, Negated: true}, "a\nb", false, []int{2}},
		{"eol", &Collection{Chars: []rune{'a'}, IncludesEOL: true}, "a\nb", false, []int{0, 1}},
		{"negated eol", &Collection{Chars: []rune{'a'}, Negated: true, IncludesEOL: true}, "a\nb", false, []int{1, 2}},
		{"ignore case", &Collection{Chars: []rune{'k'}, IgnoreCase: true}, "kKK", false, []int{0, 1, 2}},
		{"context case", &Collection{Ranges: []RuneRange{{'a', 'c'}}}, "ABd", true, []int{0, 1}},
		{"negated case", &Collection{Chars: []rune{'a'}, Negated: true}, "aAb", true, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ctxFor(buf(tt.text))
			ctx.CaseInsensitive = tt.ci
			assert.Equal(t, tt.want, accepts(tt.m, ctx))
		})
	}
}

func TestWildcard(t *testing.T) {
	ctx := ctxFor(buf("a\nb"))
	assert.Equal(t, []int{0, 2}, accepts(Wildcard{}, ctx))
	assert.Equal(t, []int{0, 1, 2}, accepts(Wildcard{IncludesNewline: true}, ctx))
}

func TestBackReference(t *testing.T) {
	text := buf("abAB ab")
	ctx := ctxFor(text)

	assert.False(t, BackReference{Group: 1}.Match(ctx, 0).OK(), "unset group")

	ctx.Groups.SetStart(1, 0)
	ctx.Groups.SetEnd(1, 2, text)

	v := BackReference{Group: 1}.Match(ctx, 5)
	assert.True(t, v.OK())
	assert.Equal(t, 2, v.Consumed())
	assert.False(t, BackReference{Group: 1}.Match(ctx, 2).OK())
	assert.True(t, BackReference{Group: 1, IgnoreCase: true}.Match(ctx, 2).OK())
	assert.False(t, BackReference{Group: 1}.Match(ctx, 7).OK(), "runs past the end")
	assert.True(t, requiresBacktracking(BackReference{}))
	assert.False(t, requiresBacktracking(Char{R: 'a'}))

	// An empty capture matches without consuming.
	ctx.Groups.SetStart(2, 3)
	ctx.Groups.SetEnd(2, 3, text)
	v = BackReference{Group: 2}.Match(ctx, 0)
	assert.True(t, v.OK())
	assert.Equal(t, 0, v.Consumed())
}

func TestAnchors(t *testing.T) {
	ctx := ctxFor(buf("ab cd\nef"))

	tests := []struct {
		name string
		m    Matcher
		want []int
	}{
		{"start of word", StartOfWord{}, []int{0, 3, 6}},
		{"end of word", EndOfWord{}, []int{2, 5, 8}},
		{"start of line", StartOfLine{}, []int{0, 6}},
		{"end of line", EndOfLine{}, []int{5, 8}},
		{"start of file", StartOfFile{}, []int{0}},
		{"end of file", EndOfFile{}, []int{8}},
		{"epsilon", Epsilon{}, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accepts(tt.m, ctx))
			for _, i := range tt.want {
				assert.Zero(t, tt.m.Match(ctx, i).Consumed())
			}
		})
	}
}

func TestWordChars(t *testing.T) {
	ctx := ctxFor(buf("x_1 é"))
	assert.Equal(t, []int{0, 4}, accepts(StartOfWord{}, ctx))
	assert.Equal(t, []int{3, 5}, accepts(EndOfWord{}, ctx))
}

func TestLineAndColumn(t *testing.T) {
	ctx := ctxFor(buf("ab\ncd\nef"))

	assert.Equal(t, []int{3, 4, 5}, accepts(Line{Line: 2, Relation: At}, ctx))
	assert.Equal(t, []int{0, 1, 2}, accepts(Line{Line: 2, Relation: Before}, ctx))
	assert.Equal(t, []int{6, 7, 8}, accepts(Line{Line: 2, Relation: After}, ctx))

	assert.Equal(t, []int{0, 3, 6}, accepts(Column{Column: 1, Relation: At}, ctx))
	assert.Equal(t, []int{2, 5, 8}, accepts(Column{Column: 2, Relation: After}, ctx))
	assert.Equal(t, []int{0, 3, 6}, accepts(Column{Column: 2, Relation: Before}, ctx))
}

func TestMark(t *testing.T) {
	ctx := ctxFor(buf("abcdef", editor.WithMark('a', 2)))

	assert.Equal(t, []int{2}, accepts(Mark{Name: 'a', Relation: At}, ctx))
	assert.Equal(t, []int{0, 1}, accepts(Mark{Name: 'a', Relation: Before}, ctx))
	assert.Equal(t, []int{3, 4, 5, 6}, accepts(Mark{Name: 'a', Relation: After}, ctx))
	assert.Empty(t, accepts(Mark{Name: 'b', Relation: At}, ctx), "unset mark")
}

func TestCursorMatchers(t *testing.T) {
	text := buf("ab\ncd\nef", editor.WithCursors(1, 7))
	ctx := ctxFor(text)

	assert.Equal(t, []int{1, 7}, accepts(Cursor{}, ctx))
	v := Cursor{}.Match(ctx, 7)
	assert.Equal(t, []int{7}, v.Cursors())
	assert.Zero(t, v.Consumed())

	assert.Equal(t, []int{0, 1, 2, 6, 7, 8}, accepts(CursorLine{Relation: At}, ctx))
	assert.Equal(t, []int{1}, CursorLine{Relation: At}.Match(ctx, 0).Cursors())
	assert.Equal(t, []int{7}, CursorLine{Relation: Before}.Match(ctx, 4).Cursors())
	assert.Equal(t, []int{1}, CursorLine{Relation: After}.Match(ctx, 4).Cursors())
	assert.False(t, CursorLine{Relation: Before}.Match(ctx, 8).OK())

	ctx.Cursors = []int{7}
	assert.False(t, Cursor{}.Match(ctx, 1).OK(), "narrowed away")
	assert.False(t, CursorLine{Relation: At}.Match(ctx, 0).OK())
}

func TestVisual(t *testing.T) {
	assert.Equal(t, []int{1, 2}, accepts(Visual{}, ctxFor(buf("abcd", editor.WithSelection(3, 1)))))
	assert.Empty(t, accepts(Visual{}, ctxFor(buf("abcd"))))
}

func TestRelationString(t *testing.T) {
	assert.Equal(t, "Before", Before.String())
	assert.Equal(t, "Relation(9)", Relation(9).String())
}
