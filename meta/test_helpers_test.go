package meta

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/coregx/vimregex/nfa"
)

// build compiles a test automaton from fragment constructors.
func build(t testing.TB, body func(b *nfa.Builder) nfa.Fragment, opts ...nfa.BuildOption) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	n, err := b.Finish(body(b), opts...)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return n
}

func literal(s string) func(b *nfa.Builder) nfa.Fragment {
	return func(b *nfa.Builder) nfa.Fragment { return b.Literal(s, false) }
}

// lookaheadPattern is a(?!b): the fast scan cannot decide it.
func lookaheadPattern(b *nfa.Builder) nfa.Fragment {
	return b.Concat(
		b.Literal("a", false),
		b.Look(b.Literal("b", false), nfa.Assertion{Ahead: true}),
	)
}

// wordPattern is \<\w\+\>.
func wordPattern(b *nfa.Builder) nfa.Fragment {
	word := &nfa.Collection{Ranges: []nfa.RuneRange{{Lo: 'a', Hi: 'z'}, {Lo: 'A', Hi: 'Z'}}}
	return b.Concat(
		b.Atom(nfa.StartOfWord{}),
		b.Plus(b.Atom(word), false),
		b.Atom(nfa.EndOfWord{}),
	)
}

func newEngine(t testing.TB, n *nfa.NFA, config Config) *Engine {
	t.Helper()
	e, err := NewEngine(n, config)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// debugLogger returns a logger writing every level to the returned buffer.
func debugLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := log.New(&buf)
	l.SetLevel(log.DebugLevel)
	return l, &buf
}

func texts(ms []*Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Text()
	}
	return out
}
