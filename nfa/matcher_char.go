package nfa

import (
	"unicode"
)

// Char matches a single literal character.
type Char struct {
	R rune

	// IgnoreCase forces case-insensitive comparison regardless of the
	// simulation's setting (Vim's \c inside the pattern).
	IgnoreCase bool
}

// Match implements Matcher.
func (m Char) Match(ctx *MatchContext, index int) Verdict {
	if index < 0 || index >= ctx.Text.Len() {
		return Failure
	}
	c := ctx.Text.CharAt(index)
	if c == m.R || ((m.IgnoreCase || ctx.CaseInsensitive) && equalFold(c, m.R)) {
		return Success(1)
	}
	return Failure
}

// RuneRange is an inclusive character range inside a Collection.
type RuneRange struct {
	Lo, Hi rune
}

// Collection matches one character from an enumerated set, like Vim's
// [abc0-9]. The newline is handled apart from the set: it matches only when
// IncludesEOL is set (Vim's \_[...]), whether or not the set is negated.
type Collection struct {
	Chars   []rune
	Ranges  []RuneRange
	Classes []*unicode.RangeTable
	Negated bool

	IncludesEOL bool
	IgnoreCase  bool
}

// Match implements Matcher.
func (m *Collection) Match(ctx *MatchContext, index int) Verdict {
	if index < 0 || index >= ctx.Text.Len() {
		return Failure
	}
	c := ctx.Text.CharAt(index)
	if c == '\n' {
		if m.IncludesEOL {
			return Success(1)
		}
		return Failure
	}

	in := m.contains(c)
	if !in && (m.IgnoreCase || ctx.CaseInsensitive) {
		for f := unicode.SimpleFold(c); f != c; f = unicode.SimpleFold(f) {
			if m.contains(f) {
				in = true
				break
			}
		}
	}
	if in != m.Negated {
		return Success(1)
	}
	return Failure
}

func (m *Collection) contains(c rune) bool {
	for _, r := range m.Chars {
		if r == c {
			return true
		}
	}
	for _, rg := range m.Ranges {
		if c >= rg.Lo && c <= rg.Hi {
			return true
		}
	}
	for _, tab := range m.Classes {
		if unicode.Is(tab, c) {
			return true
		}
	}
	return false
}

// Wildcard matches any single character. The newline only matches when
// IncludesNewline is set (Vim's \_.).
type Wildcard struct {
	IncludesNewline bool
}

// Match implements Matcher.
func (m Wildcard) Match(ctx *MatchContext, index int) Verdict {
	if index < 0 || index >= ctx.Text.Len() {
		return Failure
	}
	if !m.IncludesNewline && ctx.Text.CharAt(index) == '\n' {
		return Failure
	}
	return Success(1)
}

// BackReference re-matches the text last captured by a group (Vim's \1..\9).
// It fails when the group has no finished capture on the current path.
type BackReference struct {
	Group      int
	IgnoreCase bool
}

// Match implements Matcher.
func (m BackReference) Match(ctx *MatchContext, index int) Verdict {
	g, ok := ctx.Groups.Get(m.Group)
	if !ok {
		return Failure
	}
	fold := m.IgnoreCase || ctx.CaseInsensitive
	n := 0
	for _, want := range g.Text {
		i := index + n
		if i >= ctx.Text.Len() {
			return Failure
		}
		got := ctx.Text.CharAt(i)
		if got != want && !(fold && equalFold(got, want)) {
			return Failure
		}
		n++
	}
	return Success(n)
}

// RequiresBacktracking reports that the outcome depends on path captures.
func (BackReference) RequiresBacktracking() bool {
	return true
}

// equalFold reports whether a and b are equal under simple Unicode case
// folding.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
