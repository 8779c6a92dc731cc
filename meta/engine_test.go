package meta

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/vimregex/editor"
	"github.com/coregx/vimregex/nfa"
)

func TestEngine_FastPathDecides(t *testing.T) {
	e := newEngine(t, build(t, wordPattern), DefaultConfig())

	r := e.Simulate(editor.NewBuffer("foo bar"), 4, false)
	require.Equal(t, nfa.Matched, r.Status())
	g, _ := r.Whole()
	assert.Equal(t, "bar", g.Text)

	assert.Equal(t, Stats{FastSimulations: 1}, e.Stats())
}

func TestEngine_FallbackOnIncomplete(t *testing.T) {
	logger, out := debugLogger()
	c := DefaultConfig()
	c.Logger = logger
	e := newEngine(t, build(t, lookaheadPattern, nfa.WithPattern("a-not-before-b")), c)

	text := editor.NewBuffer("ab ac")
	assert.Equal(t, nfa.Failed, e.Simulate(text, 0, false).Status())
	r := e.Simulate(text, 3, false)
	require.Equal(t, nfa.Matched, r.Status())

	st := e.Stats()
	assert.Equal(t, uint64(2), st.FastSimulations)
	assert.Equal(t, uint64(2), st.Fallbacks)
	assert.Equal(t, uint64(2), st.BacktrackSimulations)

	assert.Contains(t, out.String(), "implicit DFA incomplete")
	assert.Contains(t, out.String(), "a-not-before-b")

	e.ResetStats()
	assert.Equal(t, Stats{}, e.Stats())
}

func TestEngine_Strategies(t *testing.T) {
	n := build(t, lookaheadPattern)
	text := editor.NewBuffer("ac")

	t.Run("backtrack", func(t *testing.T) {
		c := DefaultConfig()
		c.Strategy = UseBacktracker
		e := newEngine(t, n, c)
		assert.Equal(t, nfa.Matched, e.Simulate(text, 0, false).Status())
		assert.Equal(t, Stats{BacktrackSimulations: 1}, e.Stats())
		assert.Equal(t, UseBacktracker, e.Strategy())
	})

	t.Run("dfa", func(t *testing.T) {
		c := DefaultConfig()
		c.Strategy = UseImplicitDFA
		e := newEngine(t, n, c)
		r := e.Simulate(text, 0, false)
		assert.Equal(t, nfa.Incomplete, r.Status())
		assert.True(t, errors.Is(r.Err(), nfa.ErrNeedsAssertion))
		assert.Equal(t, Stats{FastSimulations: 1}, e.Stats())
	})
}

func TestEngine_NeverIncomplete(t *testing.T) {
	patterns := map[string]func(b *nfa.Builder) nfa.Fragment{
		"lookahead": lookaheadPattern,
		"lazy": func(b *nfa.Builder) nfa.Fragment {
			return b.Concat(b.Star(b.Atom(nfa.Wildcard{}), true), b.Literal("b", false))
		},
		"backreference": func(b *nfa.Builder) nfa.Fragment {
			return b.Concat(b.Group(1, b.Plus(b.Literal("a", false), false)), b.Atom(nfa.BackReference{Group: 1}))
		},
	}
	text := editor.NewBuffer("aaaab ab")

	for name, p := range patterns {
		t.Run(name, func(t *testing.T) {
			n := build(t, p)
			e := newEngine(t, n, DefaultConfig())
			d := NewDispatcher()
			bt := nfa.NewBacktracker()
			for start := 0; start <= text.Len(); start++ {
				want := bt.Simulate(n, text, start, false)
				for _, got := range []nfa.Result{e.Simulate(text, start, false), d.Simulate(n, text, start, false)} {
					require.NotEqual(t, nfa.Incomplete, got.Status())
					require.Equal(t, want.Status(), got.Status(), "start %d", start)
					wg, _ := want.Whole()
					gg, _ := got.Whole()
					assert.Equal(t, wg, gg, "start %d", start)
				}
			}
		})
	}
}

func TestDispatcherIsSimulator(t *testing.T) {
	var sim nfa.Simulator = NewDispatcher()
	r := sim.Simulate(build(t, literal("x")), editor.NewBuffer("x"), 0, false)
	assert.Equal(t, nfa.Matched, r.Status())
}
