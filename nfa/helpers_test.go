package nfa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/vimregex/editor"
)

// pattern builds the body of a test automaton; it is wrapped in group 0.
type pattern func(b *Builder) Fragment

func compileForTest(t testing.TB, p pattern, opts ...BuildOption) *NFA {
	t.Helper()
	b := NewBuilder()
	n, err := b.Finish(p(b), opts...)
	require.NoError(t, err)
	return n
}

func lit(s string) pattern {
	return func(b *Builder) Fragment { return b.Literal(s, false) }
}

func atom(m Matcher) pattern {
	return func(b *Builder) Fragment { return b.Atom(m) }
}

func cat(ps ...pattern) pattern {
	return func(b *Builder) Fragment {
		fs := make([]Fragment, len(ps))
		for i, p := range ps {
			fs[i] = p(b)
		}
		return b.Concat(fs...)
	}
}

func alt(ps ...pattern) pattern {
	return func(b *Builder) Fragment {
		fs := make([]Fragment, len(ps))
		for i, p := range ps {
			fs[i] = p(b)
		}
		return b.Alternate(fs...)
	}
}

func star(p pattern) pattern {
	return func(b *Builder) Fragment { return b.Star(p(b), false) }
}

func lazyStar(p pattern) pattern {
	return func(b *Builder) Fragment { return b.Star(p(b), true) }
}

func plus(p pattern) pattern {
	return func(b *Builder) Fragment { return b.Plus(p(b), false) }
}

func lazyPlus(p pattern) pattern {
	return func(b *Builder) Fragment { return b.Plus(p(b), true) }
}

func opt(p pattern) pattern {
	return func(b *Builder) Fragment { return b.Optional(p(b), false) }
}

func group(n int, p pattern) pattern {
	return func(b *Builder) Fragment { return b.Group(n, p(b)) }
}

func empty() pattern {
	return func(b *Builder) Fragment { return b.Empty() }
}

func look(p pattern, a Assertion) pattern {
	return func(b *Builder) Fragment { return b.Look(p(b), a) }
}

func ahead(p pattern, positive bool) pattern {
	return look(p, Assertion{Ahead: true, Positive: positive})
}

func behind(p pattern, positive bool, limit int) pattern {
	return look(p, Assertion{Positive: positive, Limit: limit})
}

// whole returns group 0 text, failing the test if the result is not Matched.
func whole(t testing.TB, r Result) string {
	t.Helper()
	require.Equal(t, Matched, r.Status(), "result: %v", r)
	g, ok := r.Whole()
	require.True(t, ok)
	return g.Text
}

func groupText(t testing.TB, r Result, n int) string {
	t.Helper()
	g, ok := r.Groups().Get(n)
	require.True(t, ok, "group %d not set", n)
	return g.Text
}

func strategies() map[string]Simulator {
	return map[string]Simulator{
		"backtrack": NewBacktracker(),
		"dfa":       NewImplicitDFA(),
	}
}

// spy wraps a matcher and records the smallest index it was asked about.
type spy struct {
	Matcher
	minIndex *int
}

func (s spy) Match(ctx *MatchContext, index int) Verdict {
	if index < *s.minIndex {
		*s.minIndex = index
	}
	return s.Matcher.Match(ctx, index)
}

func buf(s string, opts ...editor.Option) *editor.Buffer {
	return editor.NewBuffer(s, opts...)
}
